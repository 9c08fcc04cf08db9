// Package discover finds Bazel BUILD files in a workspace tree.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// Options controls a discovery walk.
type Options struct {
	// BuildFileNames lists accepted file names, e.g. BUILD.bazel and BUILD.
	BuildFileNames []string
	// Ignore holds extra glob patterns ("dir/**" or plain globs) applied on
	// top of the workspace .gitignore.
	Ignore []string
}

var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"Pods":         {},
	"DerivedData":  {},
	".build":       {},
}

// BuildFiles walks root and returns the relative paths of all BUILD files,
// sorted for deterministic output. Bazel output trees (bazel-* symlinks and
// directories) are always skipped.
func BuildFiles(root string, opts Options) ([]string, error) {
	names := opts.BuildFileNames
	if len(names) == 0 {
		names = []string{"BUILD.bazel", "BUILD"}
	}
	nameSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		nameSet[n] = struct{}{}
	}

	gi := loadGitignore(root)

	var results []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}

		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "bazel-") {
				return filepath.SkipDir
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && isIgnored(rel, opts.Ignore, gi) {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip symlinks (bazel-out and friends at the top level)
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if _, ok := nameSet[name]; !ok {
			return nil
		}
		if strings.HasPrefix(name, "bazel-") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if isIgnored(rel, opts.Ignore, gi) {
			return nil
		}

		results = append(results, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(results)
	return results, nil
}

// isIgnored checks a relative path against the workspace .gitignore and the
// configured extra patterns.
func isIgnored(rel string, patterns []string, gi *ignore.GitIgnore) bool {
	rel = filepath.ToSlash(rel)

	if gi != nil && gi.MatchesPath(rel) {
		return true
	}

	for _, pattern := range patterns {
		if strings.HasSuffix(pattern, "/**") {
			prefix := strings.TrimSuffix(pattern, "/**")
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
			// Allow globs in the directory prefix itself (e.g. "bazel-*/**").
			if matched, err := filepath.Match(prefix, firstSegment(rel)); err == nil && matched {
				return true
			}
			continue
		}
		if matched, err := filepath.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

func firstSegment(rel string) string {
	if idx := strings.Index(rel, "/"); idx >= 0 {
		return rel[:idx]
	}
	return rel
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
