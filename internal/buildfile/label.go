package buildfile

import "strings"

// ResolvePackagePath derives a Bazel package path from a BUILD file's
// filesystem path using ordered directory heuristics. It returns "" when
// sourcePath is empty.
//
// The rules apply to the directory component in this exact priority order,
// first match wins:
//
//  1. "/Apps/"      → substring from "Apps/" onward
//  2. "/Packages/"  → substring from "Packages/" onward
//  3. "/Libraries/" → substring from "Libraries/" onward
//  4. "/Sources/"   → basename of the directory preceding "/Sources/"
//  5. fallback: the last path segment, prefixed with "Packages/" when the
//     second-to-last segment is literally "Packages"
//
// The order is load-bearing: a path containing both "/Apps/" and
// "/Packages/" always resolves via the "/Apps/" rule.
func ResolvePackagePath(sourcePath string) string {
	if sourcePath == "" {
		return ""
	}
	dir := dirOf(sourcePath)

	for _, marker := range []string{"/Apps/", "/Packages/", "/Libraries/"} {
		if idx := strings.Index(dir, marker); idx >= 0 {
			return dir[idx+1:]
		}
	}

	if idx := strings.Index(dir, "/Sources/"); idx >= 0 {
		before := dir[:idx]
		if slash := strings.LastIndex(before, "/"); slash >= 0 {
			return before[slash+1:]
		}
		return before
	}

	var segments []string
	for _, seg := range strings.Split(dir, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	switch {
	case len(segments) >= 2 && segments[len(segments)-2] == "Packages":
		return "Packages/" + segments[len(segments)-1]
	case len(segments) >= 1:
		return segments[len(segments)-1]
	default:
		return ""
	}
}

// buildLabel produces the fully-qualified label //{package}:{name} for a
// target declared in the BUILD file at sourcePath.
func buildLabel(sourcePath, name string) string {
	return "//" + ResolvePackagePath(sourcePath) + ":" + name
}

// dirOf returns the directory component of a slash-separated path, "" when
// there is none.
func dirOf(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[:idx]
	}
	return ""
}

// baseOf returns the final segment of a slash-separated path.
func baseOf(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
