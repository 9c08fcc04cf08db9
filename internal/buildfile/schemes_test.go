package buildfile

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dvolkhin/bazelproj/internal/project"
)

func TestExtractSchemesSimple(t *testing.T) {
	text := `
xcodeproj(
    name = "Project",
    xcschemes = [
        doordash_scheme(
            name = "Consumer",
            run_env = {"API_HOST": "localhost", "DEBUG": "1"},
        ),
        doordash_scheme(name = "Dasher"),
    ],
)
`
	got := extractSchemes(text)
	want := []project.Scheme{
		{
			Name:         "Consumer",
			Variant:      project.VariantSimple,
			BuildTargets: []string{},
			Environment:  map[string]string{"API_HOST": "localhost", "DEBUG": "1"},
		},
		{
			Name:         "Dasher",
			Variant:      project.VariantSimple,
			BuildTargets: []string{},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("schemes mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSchemesAppClip(t *testing.T) {
	text := `
xcodeproj(
    xcschemes = [
        doordash_appclip_scheme(name = "ConsumerClip"),
    ],
)
`
	got := extractSchemes(text)
	if len(got) != 1 {
		t.Fatalf("got %d schemes, want 1", len(got))
	}
	if got[0].Name != "ConsumerClip" || got[0].Variant != project.VariantAppClip {
		t.Errorf("got %+v, want app-clip scheme ConsumerClip", got[0])
	}
}

func TestExtractSchemesStructured(t *testing.T) {
	text := `
xcodeproj(
    name = "Project",
    xcschemes = [
        xcschemes.scheme(
            name = "Dev",
            run = xcschemes.run(
                build_targets = ["//A:App"],
                launch_target = "//A:App",
                env = {"K": "V"},
            ),
        ),
    ],
)
`
	got := extractSchemes(text)
	want := []project.Scheme{{
		Name:         "Dev",
		Variant:      project.VariantStructured,
		BuildTargets: []string{"//A:App"},
		LaunchTarget: "//A:App",
		Environment:  map[string]string{"K": "V"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("schemes mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSchemesStructuredFieldsOptional(t *testing.T) {
	text := `
xcodeproj(
    xcschemes = [
        xcschemes.scheme(
            name = "Bare",
            run = xcschemes.run(launch_target = "//B:App"),
        ),
        xcschemes.scheme(name = "NoRun"),
    ],
)
`
	got := extractSchemes(text)
	if len(got) != 2 {
		t.Fatalf("got %d schemes, want 2", len(got))
	}
	if got[0].LaunchTarget != "//B:App" || len(got[0].BuildTargets) != 0 || got[0].Environment != nil {
		t.Errorf("Bare scheme fields wrong: %+v", got[0])
	}
	if got[1].Name != "NoRun" || got[1].LaunchTarget != "" {
		t.Errorf("NoRun scheme fields wrong: %+v", got[1])
	}
}

func TestExtractSchemesSkipsNameless(t *testing.T) {
	text := `
xcodeproj(
    xcschemes = [
        doordash_scheme(run_env = {"A": "1"}),
        doordash_appclip_scheme(),
        xcschemes.scheme(run = xcschemes.run(launch_target = "//A:App")),
    ],
)
`
	if got := extractSchemes(text); len(got) != 0 {
		t.Errorf("nameless schemes must be skipped, got %d", len(got))
	}
}

func TestExtractSchemesOutsideXcodeproj(t *testing.T) {
	// Scheme calls outside an xcodeproj xcschemes array are not schemes.
	text := `doordash_scheme(name = "Stray")`
	if got := extractSchemes(text); len(got) != 0 {
		t.Errorf("got %d schemes, want 0", len(got))
	}
}

func TestExtractSchemesUnbalancedBlock(t *testing.T) {
	text := `xcodeproj(xcschemes = [doordash_scheme(name = "X"`
	if got := extractSchemes(text); len(got) != 0 {
		t.Errorf("unbalanced block must yield no schemes, got %d", len(got))
	}
}
