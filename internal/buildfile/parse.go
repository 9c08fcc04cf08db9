package buildfile

import (
	"github.com/dvolkhin/bazelproj/internal/project"
)

// Parse extracts the project model from one BUILD file's text. path is the
// file's filesystem location and is used only for label derivation; an empty
// path degrades label quality (labels fall back to "//:Name") but never
// causes failure.
//
// Parse is a pure function of its inputs: no I/O, no shared state, safe for
// concurrent use. A malformed or empty file yields a ParseResult with all
// four lists empty; there is no error path.
func Parse(text, path string) project.ParseResult {
	result := project.ParseResult{
		Schemes:        extractSchemes(text),
		Configurations: extractConfigurations(text),
		Targets:        []project.Target{},
		TestTargets:    []project.Target{},
	}

	// Target extractors run in a fixed order, threading the same two lists,
	// so ordering across rule kinds is deterministic for a given input.
	result.Targets, result.TestTargets = extractPackageTargets(text, path, result.Targets, result.TestTargets)
	result.Targets, result.TestTargets = extractModuleTargets(text, path, result.Targets, result.TestTargets)
	result.Targets = extractSwiftLibraries(text, path, result.Targets)
	result.Targets = extractApplications(text, path, result.Targets)
	result.Targets, result.TestTargets = extractTopLevelTargets(text, result.Targets, result.TestTargets)

	return result
}

// ParsePackage parses the BUILD file of a package directory. The package
// name is the directory's basename; the parse path is the conventional
// BUILD.bazel location inside it.
func ParsePackage(text, packagePath string) project.PackageInfo {
	return project.PackageInfo{
		Name:        baseOf(packagePath),
		Path:        packagePath,
		ParseResult: Parse(text, packagePath+"/BUILD.bazel"),
	}
}
