package buildfile

import (
	"regexp"
	"strings"

	"github.com/dvolkhin/bazelproj/internal/project"
)

var (
	swiftLibraryRe   = regexp.MustCompile(`\bswift_library\s*\(`)
	iosApplicationRe = regexp.MustCompile(`\bdd_ios_application\s*\(`)
	topLevelTargetRe = regexp.MustCompile(`\btop_level_target\(\s*"([^"]+)"`)
)

// extractSwiftLibraries emits one library target per swift_library(...) call
// that carries a name.
func extractSwiftLibraries(text, path string, targets []project.Target) []project.Target {
	return extractFlatRules(text, path, swiftLibraryRe, project.KindLibrary, targets)
}

// extractApplications emits one binary target per dd_ios_application(...)
// call that carries a name.
func extractApplications(text, path string, targets []project.Target) []project.Target {
	return extractFlatRules(text, path, iosApplicationRe, project.KindBinary, targets)
}

func extractFlatRules(text, path string, callRe *regexp.Regexp, kind project.TargetKind, targets []project.Target) []project.Target {
	for _, loc := range callRe.FindAllStringIndex(text, -1) {
		params, ok := parenBody(text, loc[1]-1)
		if !ok {
			continue
		}
		name := nameFieldRe.FindStringSubmatch(params)
		if name == nil {
			continue
		}

		t := project.Target{
			Name:       name[1],
			Kind:       kind,
			BuildLabel: buildLabel(path, name[1]),
		}
		if depsLoc := depsArrRe.FindStringIndex(params); depsLoc != nil {
			if deps, ok := bracketBody(params, depsLoc[1]-1); ok {
				t.Dependencies = extractStringArray(deps)
			}
		}
		targets = append(targets, t)
	}
	return targets
}

// extractTopLevelTargets handles top_level_target("label", ...) occurrences.
// The first string argument is taken literally as the label; no balanced
// scanning is needed. A target is classified as a test when the label's
// final path segment contains "test" (case-insensitive) or the full label
// contains "/tests".
func extractTopLevelTargets(text string, targets, testTargets []project.Target) ([]project.Target, []project.Target) {
	for _, m := range topLevelTargetRe.FindAllStringSubmatch(text, -1) {
		label := m[1]
		name := labelName(label)

		if isTestLabel(label, name) {
			testTargets = append(testTargets, project.Target{
				Name:       name,
				Kind:       project.KindTest,
				BuildLabel: label,
				TestLabel:  label,
			})
			continue
		}
		targets = append(targets, project.Target{
			Name:       name,
			Kind:       project.KindBinary,
			BuildLabel: label,
		})
	}
	return targets, testTargets
}

// labelName returns the final segment of a label: the part after ":" when
// present, otherwise the part after the last "/".
func labelName(label string) string {
	if idx := strings.LastIndex(label, ":"); idx >= 0 {
		return label[idx+1:]
	}
	return baseOf(label)
}

func isTestLabel(label, name string) bool {
	return strings.Contains(strings.ToLower(name), "test") ||
		strings.Contains(strings.ToLower(label), "/tests")
}
