package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dvolkhin/bazelproj/internal/project"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func samplePackage(name string) project.PackageInfo {
	return project.PackageInfo{
		Name: name,
		Path: "/ws/Packages/" + name,
		ParseResult: project.ParseResult{
			Schemes:        []project.Scheme{},
			Configurations: []project.XcodeConfiguration{},
			Targets: []project.Target{{
				Name:       name,
				Kind:       project.KindLibrary,
				BuildLabel: "//Packages/" + name + ":" + name,
			}},
			TestTargets: []project.Target{},
		},
	}
}

func TestCachePutGet(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	pkg := samplePackage("Feed")
	if err := c.Put(ctx, "Packages/Feed/BUILD.bazel", "hash1", pkg); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := c.Get(ctx, "Packages/Feed/BUILD.bazel", "hash1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(pkg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheMissOnUnknownPath(t *testing.T) {
	c := openTestCache(t)
	if _, err := c.Get(context.Background(), "nope", "h"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCacheMissOnHashMismatch(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "p", "old-hash", samplePackage("Feed")); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "p", "new-hash"); !errors.Is(err, ErrNotFound) {
		t.Errorf("stale entry must miss, got %v", err)
	}
}

func TestCachePutReplaces(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "p", "h1", samplePackage("Old")); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(ctx, "p", "h2", samplePackage("New")); err != nil {
		t.Fatal(err)
	}

	got, err := c.Get(ctx, "p", "h2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "New" {
		t.Errorf("entry not replaced: %+v", got)
	}
	if n, _ := c.Count(ctx); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestCachePrune(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	for _, p := range []string{"a", "b", "c"} {
		if err := c.Put(ctx, p, "h", samplePackage("P")); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := c.Prune(ctx, map[string]struct{}{"a": {}})
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if _, err := c.Get(ctx, "a", "h"); err != nil {
		t.Errorf("kept entry missing: %v", err)
	}
	if _, err := c.Get(ctx, "b", "h"); !errors.Is(err, ErrNotFound) {
		t.Errorf("pruned entry still present")
	}
}
