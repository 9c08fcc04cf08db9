package buildfile

import (
	"regexp"

	"github.com/dvolkhin/bazelproj/internal/project"
)

// cx_module carries no target-shaping fields; the body is matched but not
// parsed, so a simple non-nested pattern is enough.
var cxModuleRe = regexp.MustCompile(`\bcx_module\(([\s\S]*?)\)`)

// extractModuleTargets synthesizes targets for every cx_module(...) call.
// One call yields exactly one library target named after the BUILD file's
// containing directory plus one paired <name>Tests test target depending on
// the library, unconditionally.
func extractModuleTargets(text, path string, targets, testTargets []project.Target) ([]project.Target, []project.Target) {
	matches := cxModuleRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return targets, testTargets
	}

	dir := dirOf(path)
	name := baseOf(dir)
	if name == "" {
		name = "CxModule"
	}
	label := buildLabel(path, name)

	for range matches {
		targets = append(targets, project.Target{
			Name:       name,
			Kind:       project.KindLibrary,
			SourcePath: dir,
			BuildLabel: label,
		})
		testTargets = append(testTargets, project.Target{
			Name:         name + "Tests",
			Kind:         project.KindTest,
			Dependencies: []string{":" + name},
			SourcePath:   dir + "/Tests",
			BuildLabel:   label + "Tests",
			TestLabel:    label + "Tests",
		})
	}

	return targets, testTargets
}
