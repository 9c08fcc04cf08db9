package buildfile

import (
	"log"
	"regexp"

	"github.com/dvolkhin/bazelproj/internal/project"
)

var (
	iosPackageRe   = regexp.MustCompile(`\bdd_ios_package\s*\(`)
	targetsArrRe   = regexp.MustCompile(`\btargets\s*=\s*\[`)
	depsArrRe      = regexp.MustCompile(`\bdeps\s*=\s*\[`)
	resourcesArrRe = regexp.MustCompile(`\bresources\s*=\s*\[`)
	pathFieldRe    = regexp.MustCompile(`\bpath\s*=\s*"([^"]+)"`)

	// One pattern per target sub-grammar. Non-greedy capture up to the first
	// closing parenthesis; the parameter lists use brackets, not parens, so
	// this isolates exactly one call's parameter text.
	targetLibraryRe = regexp.MustCompile(`target\.library\(([\s\S]*?)\)`)
	targetTestRe    = regexp.MustCompile(`target\.test\(([\s\S]*?)\)`)
	targetBinaryRe  = regexp.MustCompile(`target\.binary\(([\s\S]*?)\)`)
)

// extractPackageTargets scans every dd_ios_package(...) block for its
// targets = [...] array and emits one Target per recognized
// target.library/test/binary call. Packages without a targets array are
// skipped entirely. The two output lists are threaded through so that
// ordering across blocks stays stable.
func extractPackageTargets(text, path string, targets, testTargets []project.Target) ([]project.Target, []project.Target) {
	for _, loc := range iosPackageRe.FindAllStringIndex(text, -1) {
		body, ok := parenBody(text, loc[1]-1)
		if !ok {
			continue
		}

		pkgName := "UnknownPackage"
		if m := nameFieldRe.FindStringSubmatch(body); m != nil {
			pkgName = m[1]
		}

		arrLoc := targetsArrRe.FindStringIndex(body)
		if arrLoc == nil {
			log.Printf("[buildfile] package %s: no targets array, skipping", pkgName)
			continue
		}
		arr, ok := bracketBody(body, arrLoc[1]-1)
		if !ok {
			continue
		}

		for _, m := range targetLibraryRe.FindAllStringSubmatch(arr, -1) {
			if t, ok := parsePackageTarget(m[1], project.KindLibrary, path); ok {
				targets = append(targets, t)
			}
		}
		for _, m := range targetTestRe.FindAllStringSubmatch(arr, -1) {
			if t, ok := parsePackageTarget(m[1], project.KindTest, path); ok {
				testTargets = append(testTargets, t)
			}
		}
		for _, m := range targetBinaryRe.FindAllStringSubmatch(arr, -1) {
			if t, ok := parsePackageTarget(m[1], project.KindBinary, path); ok {
				targets = append(targets, t)
			}
		}
	}

	return targets, testTargets
}

// parsePackageTarget parses one target.* call's parameter text. All three
// kinds share the same parameter shape: name (required), deps, path, and
// resources (optional). The label derives from the BUILD file's path; the
// inner path field is a source-tree-relative directory, not a label path.
func parsePackageTarget(params string, kind project.TargetKind, path string) (project.Target, bool) {
	name := nameFieldRe.FindStringSubmatch(params)
	if name == nil {
		return project.Target{}, false
	}

	t := project.Target{
		Name:       name[1],
		Kind:       kind,
		BuildLabel: buildLabel(path, name[1]),
	}
	if kind == project.KindTest {
		t.TestLabel = t.BuildLabel
	}

	if depsLoc := depsArrRe.FindStringIndex(params); depsLoc != nil {
		if deps, ok := bracketBody(params, depsLoc[1]-1); ok {
			t.Dependencies = extractStringArray(deps)
		}
	}
	if p := pathFieldRe.FindStringSubmatch(params); p != nil {
		t.SourcePath = p[1]
	}
	if resLoc := resourcesArrRe.FindStringIndex(params); resLoc != nil {
		if res, ok := bracketBody(params, resLoc[1]-1); ok {
			// Omitted entirely when empty rather than stored as an empty list.
			if items := extractStringArray(res); len(items) > 0 {
				t.Resources = items
			}
		}
	}

	return t, true
}
