// Package project defines the normalized project model extracted from Bazel
// BUILD files: targets, schemes, and named Xcode configurations.
package project

// TargetKind classifies a buildable unit.
type TargetKind string

// Target kinds.
const (
	KindLibrary TargetKind = "library"
	KindTest    TargetKind = "test"
	KindBinary  TargetKind = "binary"
)

// Target represents one buildable unit extracted from a BUILD file.
//
// Dependencies are raw dependency strings exactly as written, in source
// order, not resolved and not deduplicated. They may be local (":Name"),
// external ("@repo//path:name"), or absolute ("//path:name").
type Target struct {
	Name         string     `json:"name"`
	Kind         TargetKind `json:"kind"`
	Dependencies []string   `json:"dependencies,omitempty"`
	SourcePath   string     `json:"source_path,omitempty"`
	Resources    []string   `json:"resources,omitempty"` // present only when non-empty
	BuildLabel   string     `json:"build_label"`
	TestLabel    string     `json:"test_label,omitempty"` // set only for KindTest, always equals BuildLabel
}

// SchemeVariant tags which call grammar produced a Scheme.
type SchemeVariant string

// Scheme variants.
const (
	VariantSimple     SchemeVariant = "simple"
	VariantAppClip    SchemeVariant = "app-clip"
	VariantStructured SchemeVariant = "structured"
	VariantCustom     SchemeVariant = "custom"
)

// Scheme represents one named run/build/test configuration synthesized from
// the xcschemes array of an xcodeproj block.
type Scheme struct {
	Name               string            `json:"name"`
	Variant            SchemeVariant     `json:"variant"`
	BuildTargets       []string          `json:"build_targets"`
	LaunchTarget       string            `json:"launch_target,omitempty"`
	TestTargets        []string          `json:"test_targets,omitempty"`
	Environment        map[string]string `json:"environment,omitempty"`
	XcodeConfiguration string            `json:"xcode_configuration,omitempty"`
}

// XcodeConfiguration is a named configuration reference. When derived from a
// load() statement, BuildSettings carries a single "source" key holding the
// loaded file path.
type XcodeConfiguration struct {
	Name          string            `json:"name"`
	BuildSettings map[string]string `json:"build_settings,omitempty"`
}

// ParseResult is the root output of parsing one BUILD file. Targets and
// TestTargets are partitioned by the producer: a test target never appears
// in Targets and vice versa.
type ParseResult struct {
	Schemes        []Scheme             `json:"schemes"`
	Configurations []XcodeConfiguration `json:"configurations"`
	Targets        []Target             `json:"targets"`
	TestTargets    []Target             `json:"test_targets"`
}

// PackageInfo wraps a ParseResult with the inferred package name and the
// caller-supplied directory path.
type PackageInfo struct {
	Name        string      `json:"name"`
	Path        string      `json:"path"`
	ParseResult ParseResult `json:"parse_result"`
}

// AllTargets returns the concatenation of non-test and test targets,
// non-test first.
func (r ParseResult) AllTargets() []Target {
	all := make([]Target, 0, len(r.Targets)+len(r.TestTargets))
	all = append(all, r.Targets...)
	all = append(all, r.TestTargets...)
	return all
}
