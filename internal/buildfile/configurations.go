package buildfile

import (
	"regexp"

	"github.com/dvolkhin/bazelproj/internal/project"
)

var (
	configLoadRe   = regexp.MustCompile(`\bload\(\s*"([^"]+)"\s*,\s*"xcode_configurations"\s*\)`)
	configAssignRe = regexp.MustCompile(`\bxcode_configurations\s*=\s*([A-Za-z_][A-Za-z0-9_]*)`)
)

// extractConfigurations collects named configuration references from two
// whole-file passes: load() statements naming "xcode_configurations" and
// direct xcode_configurations = <identifier> assignments.
//
// Every load occurrence appends an entry carrying the loaded file path under
// the "source" key. Assignments append only when no accumulated entry
// (including load-derived ones) already has that exact name.
func extractConfigurations(text string) []project.XcodeConfiguration {
	configs := []project.XcodeConfiguration{}

	for _, m := range configLoadRe.FindAllStringSubmatch(text, -1) {
		configs = append(configs, project.XcodeConfiguration{
			Name:          "xcode_configurations",
			BuildSettings: map[string]string{"source": m[1]},
		})
	}

	for _, m := range configAssignRe.FindAllStringSubmatch(text, -1) {
		if hasConfiguration(configs, m[1]) {
			continue
		}
		configs = append(configs, project.XcodeConfiguration{Name: m[1]})
	}

	return configs
}

func hasConfiguration(configs []project.XcodeConfiguration, name string) bool {
	for _, c := range configs {
		if c.Name == name {
			return true
		}
	}
	return false
}
