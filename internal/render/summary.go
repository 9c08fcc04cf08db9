// Package render produces human-readable artifacts from a workspace
// snapshot.
package render

import (
	"fmt"
	"strings"

	"github.com/dvolkhin/bazelproj/internal/project"
	"github.com/dvolkhin/bazelproj/internal/workspace"
)

// Summary renders a markdown overview of the scanned workspace: schemes,
// packages with their targets, configurations, and diagnostics.
func Summary(snap *workspace.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("# Workspace Summary\n\n")
	sb.WriteString(fmt.Sprintf("Workspace: `%s`\n\n", snap.Meta.Workspace))
	sb.WriteString(fmt.Sprintf(
		"%d BUILD files — %d targets, %d test targets, %d schemes, %d configurations\n\n",
		snap.Meta.BuildFiles, snap.Meta.Targets, snap.Meta.TestTargets,
		snap.Meta.Schemes, snap.Meta.Configurations))

	renderSchemes(&sb, snap)
	renderPackages(&sb, snap)
	renderConfigurations(&sb, snap)
	renderDiagnostics(&sb, snap)

	sb.WriteString(fmt.Sprintf("---\nGenerated at %s in %s\n", snap.Meta.GeneratedAt, snap.Meta.Duration))
	return sb.String()
}

func renderSchemes(sb *strings.Builder, snap *workspace.Snapshot) {
	var schemes []project.Scheme
	for _, pkg := range snap.Packages {
		schemes = append(schemes, pkg.ParseResult.Schemes...)
	}
	if len(schemes) == 0 {
		return
	}

	sb.WriteString("## Schemes\n\n")
	for _, s := range schemes {
		sb.WriteString(fmt.Sprintf("- **%s** (%s)", s.Name, s.Variant))
		if s.LaunchTarget != "" {
			sb.WriteString(" launches `" + s.LaunchTarget + "`")
		}
		if len(s.BuildTargets) > 0 {
			sb.WriteString(" builds " + backtickList(s.BuildTargets))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func renderPackages(sb *strings.Builder, snap *workspace.Snapshot) {
	if len(snap.Packages) == 0 {
		return
	}

	sb.WriteString("## Packages\n\n")
	for _, pkg := range snap.Packages {
		r := pkg.ParseResult
		if len(r.Targets) == 0 && len(r.TestTargets) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("### %s (`%s`)\n\n", pkg.Name, pkg.Path))
		for _, t := range r.Targets {
			sb.WriteString(fmt.Sprintf("- `%s` %s", t.BuildLabel, t.Kind))
			if len(t.Dependencies) > 0 {
				sb.WriteString(fmt.Sprintf(" (%d deps)", len(t.Dependencies)))
			}
			sb.WriteString("\n")
		}
		for _, t := range r.TestTargets {
			sb.WriteString(fmt.Sprintf("- `%s` %s\n", t.TestLabel, t.Kind))
		}
		sb.WriteString("\n")
	}
}

func renderConfigurations(sb *strings.Builder, snap *workspace.Snapshot) {
	var configs []project.XcodeConfiguration
	for _, pkg := range snap.Packages {
		configs = append(configs, pkg.ParseResult.Configurations...)
	}
	if len(configs) == 0 {
		return
	}

	sb.WriteString("## Configurations\n\n")
	for _, c := range configs {
		sb.WriteString("- " + c.Name)
		if src, ok := c.BuildSettings["source"]; ok {
			sb.WriteString(" (from `" + src + "`)")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func renderDiagnostics(sb *strings.Builder, snap *workspace.Snapshot) {
	if len(snap.Diagnostics) == 0 {
		return
	}

	sb.WriteString("## Diagnostics\n\n")
	for _, d := range snap.Diagnostics {
		sb.WriteString(fmt.Sprintf("- **%s**: %s — %s\n", d.Kind, d.Message, backtickList(d.Labels)))
	}
	sb.WriteString("\n")
}

func backtickList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}
