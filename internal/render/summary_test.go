package render

import (
	"strings"
	"testing"

	"github.com/dvolkhin/bazelproj/internal/project"
	"github.com/dvolkhin/bazelproj/internal/workspace"
)

func sampleSnapshot() *workspace.Snapshot {
	return &workspace.Snapshot{
		Meta: workspace.Meta{
			Workspace:   "/ws",
			BuildFiles:  1,
			Targets:     1,
			TestTargets: 1,
			Schemes:     1,
		},
		Packages: []project.PackageInfo{{
			Name: "Feed",
			Path: "Packages/Feed",
			ParseResult: project.ParseResult{
				Schemes: []project.Scheme{{
					Name:         "Feed",
					Variant:      project.VariantStructured,
					BuildTargets: []string{"//Packages/Feed:Feed"},
					LaunchTarget: "//Packages/Feed:Feed",
				}},
				Configurations: []project.XcodeConfiguration{{
					Name:          "xcode_configurations",
					BuildSettings: map[string]string{"source": "//tools:c.bzl"},
				}},
				Targets: []project.Target{{
					Name: "Feed", Kind: project.KindLibrary,
					BuildLabel: "//Packages/Feed:Feed", Dependencies: []string{":Models"},
				}},
				TestTargets: []project.Target{{
					Name: "FeedTests", Kind: project.KindTest,
					BuildLabel: "//Packages/Feed:FeedTests", TestLabel: "//Packages/Feed:FeedTests",
				}},
			},
		}},
		Diagnostics: []workspace.Diagnostic{{
			Kind:    workspace.DiagDanglingDep,
			Message: "//Packages/Feed:Feed depends on targets not found in the workspace",
			Labels:  []string{"//Packages/Missing:Models"},
		}},
	}
}

func TestSummary(t *testing.T) {
	got := Summary(sampleSnapshot())

	for _, want := range []string{
		"# Workspace Summary",
		"## Schemes",
		"**Feed** (structured)",
		"launches `//Packages/Feed:Feed`",
		"## Packages",
		"### Feed (`Packages/Feed`)",
		"`//Packages/Feed:Feed` library (1 deps)",
		"`//Packages/Feed:FeedTests` test",
		"## Configurations",
		"xcode_configurations (from `//tools:c.bzl`)",
		"## Diagnostics",
		"`//Packages/Missing:Models`",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q\n---\n%s", want, got)
		}
	}
}

func TestSummaryEmptySnapshot(t *testing.T) {
	got := Summary(&workspace.Snapshot{})
	if !strings.Contains(got, "0 BUILD files") {
		t.Errorf("empty snapshot summary:\n%s", got)
	}
	if strings.Contains(got, "## Schemes") || strings.Contains(got, "## Diagnostics") {
		t.Error("empty sections must be omitted")
	}
}
