package buildfile

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindBalanced(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		openIndex int
		open      byte
		close     byte
		want      string
		wantOK    bool
	}{
		{
			name: "simple parens",
			text: `foo(a, b)`, openIndex: 3, open: '(', close: ')',
			want: "a, b", wantOK: true,
		},
		{
			name: "nested parens",
			text: `call(inner(x), y)`, openIndex: 4, open: '(', close: ')',
			want: "inner(x), y", wantOK: true,
		},
		{
			name: "brackets with nesting",
			text: `deps = [[":a"], ":b"]`, openIndex: 7, open: '[', close: ']',
			want: `[":a"], ":b"`, wantOK: true,
		},
		{
			name: "unbalanced",
			text: `foo(a, (b)`, openIndex: 3, open: '(', close: ')',
			wantOK: false,
		},
		{
			name: "index not at opener",
			text: `foo(a)`, openIndex: 0, open: '(', close: ')',
			wantOK: false,
		},
		{
			name: "empty body",
			text: `x()`, openIndex: 1, open: '(', close: ')',
			want: "", wantOK: true,
		},
		{
			name: "trailing text after close",
			text: `a[1, 2] + b`, openIndex: 1, open: '[', close: ']',
			want: "1, 2", wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findBalanced(tt.text, tt.openIndex, tt.open, tt.close)
			if ok != tt.wantOK {
				t.Fatalf("findBalanced ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("findBalanced = %q, want %q", got, tt.want)
			}
		})
	}
}

// The scanner does not distinguish delimiters inside string literals; a
// quoted closer throws off the depth counter. That behavior is intentional
// and must not change silently.
func TestFindBalancedQuotedCloserQuirk(t *testing.T) {
	got, ok := findBalanced(`f(a = ")", b)`, 1, '(', ')')
	if !ok {
		t.Fatal("expected a span")
	}
	if strings.Contains(got, "b") {
		t.Errorf("span %q unexpectedly extends past the quoted closer", got)
	}
}

func TestExtractStringArray(t *testing.T) {
	tests := []struct {
		name string
		span string
		want []string
	}{
		{"basic", `"a", "b", "c"`, []string{"a", "b", "c"}},
		{"no dedup", `":x", ":x"`, []string{":x", ":x"}},
		{"empty span", ``, []string{}},
		{"ignores unquoted tokens", `":a", ident, ":b"`, []string{":a", ":b"}},
		{"multiline", "\":a\",\n  \":b\",\n", []string{":a", ":b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractStringArray(tt.span)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("extractStringArray mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractStringDict(t *testing.T) {
	got := extractStringDict(`"A": "1", "B": "2", "A": "shadowed"`)
	want := map[string]string{"A": "1", "B": "2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("first occurrence of a key must win (-want +got):\n%s", diff)
	}
}
