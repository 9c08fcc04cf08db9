// Package workspace orchestrates the scan pipeline: discover BUILD files,
// parse them (consulting the cache), and aggregate the resulting project
// model into a queryable snapshot.
package workspace

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dvolkhin/bazelproj/internal/buildfile"
	"github.com/dvolkhin/bazelproj/internal/cache"
	"github.com/dvolkhin/bazelproj/internal/config"
	"github.com/dvolkhin/bazelproj/internal/discover"
	"github.com/dvolkhin/bazelproj/internal/project"
)

// parseWorkers bounds the BUILD-file read/parse fan-out.
const parseWorkers = 8

// Snapshot holds the complete result of one workspace scan.
type Snapshot struct {
	Meta        Meta                  `json:"meta"`
	Packages    []project.PackageInfo `json:"packages"`
	Diagnostics []Diagnostic          `json:"diagnostics"`
}

// Meta contains metadata about a scan run.
type Meta struct {
	Workspace      string `json:"workspace"`
	GeneratedAt    string `json:"generated_at"`
	Duration       string `json:"duration"`
	BuildFiles     int    `json:"build_files"`
	Targets        int    `json:"targets"`
	TestTargets    int    `json:"test_targets"`
	Schemes        int    `json:"schemes"`
	Configurations int    `json:"configurations"`
	CacheHits      int    `json:"cache_hits"`
	CacheMisses    int    `json:"cache_misses"`
}

// Diagnostic flags a structural problem found in the parsed model.
type Diagnostic struct {
	Kind    string   `json:"kind"` // "cycle" or "dangling_dep"
	Message string   `json:"message"`
	Labels  []string `json:"labels"`
}

// Diagnostic kinds.
const (
	DiagCycle       = "cycle"
	DiagDanglingDep = "dangling_dep"
)

// Engine runs workspace scans and keeps the latest aggregated model.
type Engine struct {
	cfg   *config.Config
	store *cache.Cache // nil when caching is disabled

	mu       sync.RWMutex
	index    *project.Index
	graph    *project.Graph
	snapshot *Snapshot
}

// New creates an Engine. When caching is enabled in cfg, the cache database
// is opened under the workspace root; failure to open degrades to uncached
// operation rather than failing the engine.
func New(cfg *config.Config) *Engine {
	e := &Engine{
		cfg:   cfg,
		index: project.NewIndex(),
		graph: project.NewGraph(nil),
	}

	if cfg.Cache.Enabled {
		dbPath := cfg.Cache.Path
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(cfg.Workspace, dbPath)
		}
		store, err := cache.Open(dbPath)
		if err != nil {
			log.Printf("[workspace] cache disabled: %v", err)
		} else {
			e.store = store
		}
	}

	return e
}

// Close releases the cache handle, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Index returns the aggregated target index from the last scan.
func (e *Engine) Index() *project.Index {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index
}

// Graph returns the dependency graph from the last scan.
func (e *Engine) Graph() *project.Graph {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.graph
}

// Snapshot returns the last scan result, or nil before the first scan.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// Scan discovers and parses every BUILD file under root and rebuilds the
// aggregated model. An empty root falls back to the configured workspace.
func (e *Engine) Scan(ctx context.Context, root string) (*Snapshot, error) {
	start := time.Now()

	if root == "" {
		root = e.cfg.Workspace
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	files, err := discover.BuildFiles(absRoot, discover.Options{
		BuildFileNames: e.cfg.BuildFileNames,
		Ignore:         e.cfg.Ignore,
	})
	if err != nil {
		return nil, fmt.Errorf("discovering BUILD files: %w", err)
	}
	log.Printf("[workspace] found %d BUILD files in %s", len(files), absRoot)

	packages, hits, misses, err := e.parseAll(ctx, absRoot, files)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.index.Clear()
	for _, pkg := range packages {
		e.index.AddPackage(pkg)
	}
	e.graph = project.NewGraph(e.index.Targets())
	diagnostics := diagnose(e.graph)

	snapshot := &Snapshot{
		Meta: Meta{
			Workspace:      absRoot,
			GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
			Duration:       time.Since(start).String(),
			BuildFiles:     len(files),
			Targets:        len(e.index.ByKind(project.KindLibrary)) + len(e.index.ByKind(project.KindBinary)),
			TestTargets:    len(e.index.ByKind(project.KindTest)),
			Schemes:        len(e.index.Schemes()),
			Configurations: len(e.index.Configurations()),
			CacheHits:      hits,
			CacheMisses:    misses,
		},
		Packages:    packages,
		Diagnostics: diagnostics,
	}
	e.snapshot = snapshot
	e.mu.Unlock()

	if e.store != nil {
		keep := make(map[string]struct{}, len(files))
		for _, f := range files {
			keep[f] = struct{}{}
		}
		if removed, err := e.store.Prune(ctx, keep); err != nil {
			log.Printf("[workspace] cache prune failed: %v", err)
		} else if removed > 0 {
			log.Printf("[workspace] pruned %d stale cache entries", removed)
		}
	}

	log.Printf("[workspace] scan finished in %s: %d targets, %d test targets, %d schemes",
		snapshot.Meta.Duration, snapshot.Meta.Targets, snapshot.Meta.TestTargets, snapshot.Meta.Schemes)
	return snapshot, nil
}

// parseAll reads and parses the given workspace-relative BUILD files,
// preserving discovery order in the result regardless of worker scheduling.
func (e *Engine) parseAll(ctx context.Context, absRoot string, files []string) ([]project.PackageInfo, int, int, error) {
	packages := make([]project.PackageInfo, len(files))
	var mu sync.Mutex
	hits, misses := 0, 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parseWorkers)

	for i, relFile := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(filepath.Join(absRoot, filepath.FromSlash(relFile)))
			if err != nil {
				// A file that vanished mid-scan contributes nothing.
				log.Printf("[workspace] reading %s: %v", relFile, err)
				packages[i] = buildfile.ParsePackage("", packageDir(relFile))
				return nil
			}

			sum := sha256.Sum256(data)
			hash := hex.EncodeToString(sum[:])

			if e.store != nil {
				if pkg, err := e.store.Get(ctx, relFile, hash); err == nil {
					packages[i] = pkg
					mu.Lock()
					hits++
					mu.Unlock()
					return nil
				}
			}

			pkg := buildfile.ParsePackage(string(data), packageDir(relFile))
			packages[i] = pkg
			mu.Lock()
			misses++
			mu.Unlock()

			if e.store != nil {
				if err := e.store.Put(ctx, relFile, hash, pkg); err != nil {
					log.Printf("[workspace] caching %s: %v", relFile, err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, 0, fmt.Errorf("parsing BUILD files: %w", err)
	}
	return packages, hits, misses, nil
}

// packageDir strips the BUILD file name, leaving the workspace-relative
// package directory used for label derivation.
func packageDir(relFile string) string {
	dir := filepath.ToSlash(filepath.Dir(relFile))
	if dir == "." {
		return ""
	}
	return dir
}

// diagnose converts graph findings into snapshot diagnostics.
func diagnose(g *project.Graph) []Diagnostic {
	diagnostics := []Diagnostic{}

	for _, cycle := range g.Cycles() {
		diagnostics = append(diagnostics, Diagnostic{
			Kind:    DiagCycle,
			Message: fmt.Sprintf("%d targets form a dependency cycle", len(cycle)),
			Labels:  cycle,
		})
	}

	dangling := g.DanglingDeps()
	owners := make([]string, 0, len(dangling))
	for owner := range dangling {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	for _, owner := range owners {
		diagnostics = append(diagnostics, Diagnostic{
			Kind:    DiagDanglingDep,
			Message: fmt.Sprintf("%s depends on targets not found in the workspace", owner),
			Labels:  dangling[owner],
		})
	}

	return diagnostics
}
