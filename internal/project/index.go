package project

import (
	"strings"
	"sync"
)

// Index provides in-memory storage and querying of the project model
// aggregated across packages.
type Index struct {
	mu       sync.RWMutex
	packages []PackageInfo
	targets  []Target
	schemes  []Scheme
	configs  []XcodeConfiguration

	// Indexes for fast lookups
	byLabel map[string][]int // build label -> indices into targets
	byKind  map[TargetKind][]int
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		byLabel: make(map[string][]int),
		byKind:  make(map[TargetKind][]int),
	}
}

// AddPackage adds a parsed package and indexes its targets and schemes.
func (x *Index) AddPackage(pkg PackageInfo) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.packages = append(x.packages, pkg)
	for _, t := range pkg.ParseResult.AllTargets() {
		idx := len(x.targets)
		x.targets = append(x.targets, t)
		x.byLabel[t.BuildLabel] = append(x.byLabel[t.BuildLabel], idx)
		x.byKind[t.Kind] = append(x.byKind[t.Kind], idx)
	}
	x.schemes = append(x.schemes, pkg.ParseResult.Schemes...)
	x.configs = append(x.configs, pkg.ParseResult.Configurations...)
}

// Clear removes everything from the index.
func (x *Index) Clear() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.packages = nil
	x.targets = nil
	x.schemes = nil
	x.configs = nil
	x.byLabel = make(map[string][]int)
	x.byKind = make(map[TargetKind][]int)
}

// Packages returns all indexed packages.
func (x *Index) Packages() []PackageInfo {
	x.mu.RLock()
	defer x.mu.RUnlock()
	result := make([]PackageInfo, len(x.packages))
	copy(result, x.packages)
	return result
}

// Targets returns all indexed targets, test and non-test alike.
func (x *Index) Targets() []Target {
	x.mu.RLock()
	defer x.mu.RUnlock()
	result := make([]Target, len(x.targets))
	copy(result, x.targets)
	return result
}

// Schemes returns all indexed schemes.
func (x *Index) Schemes() []Scheme {
	x.mu.RLock()
	defer x.mu.RUnlock()
	result := make([]Scheme, len(x.schemes))
	copy(result, x.schemes)
	return result
}

// Configurations returns all indexed configuration references.
func (x *Index) Configurations() []XcodeConfiguration {
	x.mu.RLock()
	defer x.mu.RUnlock()
	result := make([]XcodeConfiguration, len(x.configs))
	copy(result, x.configs)
	return result
}

// TargetCount returns the number of indexed targets.
func (x *Index) TargetCount() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.targets)
}

// ByLabel returns the targets with the given build label.
func (x *Index) ByLabel(label string) []Target {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.collect(x.byLabel[label])
}

// ByKind returns all targets of the given kind.
func (x *Index) ByKind(kind TargetKind) []Target {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.collect(x.byKind[kind])
}

// Query returns targets matching all provided filter criteria. Empty filter
// values are ignored. name matches by substring.
func (x *Index) Query(kind TargetKind, name string, testsOnly bool) []Target {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var result []Target
	for _, t := range x.targets {
		if kind != "" && t.Kind != kind {
			continue
		}
		if name != "" && !strings.Contains(t.Name, name) {
			continue
		}
		if testsOnly && t.Kind != KindTest {
			continue
		}
		result = append(result, t)
	}
	return result
}

func (x *Index) collect(indices []int) []Target {
	result := make([]Target, 0, len(indices))
	for _, i := range indices {
		result = append(result, x.targets[i])
	}
	return result
}
