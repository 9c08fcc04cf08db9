package project

import "strings"

// Graph provides adjacency-list traversal over target dependency edges.
// It is a derived structure rebuilt from the index after each workspace scan.
//
// Edges connect fully-qualified build labels. Local dependencies (":Name")
// are resolved against the owning target's package; external repository
// dependencies ("@repo//...") are kept as opaque leaf nodes.
type Graph struct {
	forward map[string][]string // label -> labels it depends on
	reverse map[string][]string // label -> labels depending on it
	nodes   map[string]Target   // label -> first target seen with that label
}

// NewGraph builds a dependency graph from targets.
func NewGraph(targets []Target) *Graph {
	g := &Graph{
		forward: make(map[string][]string),
		reverse: make(map[string][]string),
		nodes:   make(map[string]Target, len(targets)),
	}

	for _, t := range targets {
		if _, ok := g.nodes[t.BuildLabel]; !ok {
			g.nodes[t.BuildLabel] = t
		}
		for _, dep := range t.Dependencies {
			target := resolveDepLabel(t.BuildLabel, dep)
			g.forward[t.BuildLabel] = append(g.forward[t.BuildLabel], target)
			g.reverse[target] = append(g.reverse[target], t.BuildLabel)
		}
	}

	return g
}

// resolveDepLabel turns a raw dependency string into a fully-qualified label
// relative to the owner's package. "//path" without a target name is
// normalized to "//path:basename".
func resolveDepLabel(ownerLabel, dep string) string {
	if strings.HasPrefix(dep, ":") {
		pkg := ownerLabel
		if idx := strings.LastIndex(pkg, ":"); idx >= 0 {
			pkg = pkg[:idx]
		}
		return pkg + dep
	}
	if strings.HasPrefix(dep, "//") && !strings.Contains(dep, ":") {
		if idx := strings.LastIndex(dep, "/"); idx >= 0 {
			return dep + ":" + dep[idx+1:]
		}
	}
	return dep
}

// DependenciesOf returns the resolved outgoing edges of a label.
func (g *Graph) DependenciesOf(label string) []string {
	return g.forward[label]
}

// Dependents performs a reverse BFS from the given label and returns every
// label that transitively depends on it, nearest first. The start label is
// not included.
func (g *Graph) Dependents(label string, maxDepth int) []string {
	if maxDepth <= 0 {
		maxDepth = 10
	}

	visited := map[string]bool{label: true}
	type item struct {
		label string
		depth int
	}
	queue := []item{{label, 0}}
	var result []string

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		for _, parent := range g.reverse[cur.label] {
			if visited[parent] {
				continue
			}
			visited[parent] = true
			result = append(result, parent)
			queue = append(queue, item{parent, cur.depth + 1})
		}
	}

	return result
}

// Node returns the target registered under a label, if any.
func (g *Graph) Node(label string) (Target, bool) {
	t, ok := g.nodes[label]
	return t, ok
}

// NodeCount returns the number of targets registered in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Cycles detects dependency cycles among known targets using Tarjan's SCC
// algorithm. Each returned cycle lists its member labels; single nodes
// without self-edges are not cycles. Edges into labels with no registered
// target (external or dangling deps) are ignored.
func (g *Graph) Cycles() [][]string {
	index := 0
	indices := make(map[string]int)
	lowlink := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var cycles [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.forward[v] {
			if _, known := g.nodes[w]; !known {
				continue
			}
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			if len(scc) > 1 {
				cycles = append(cycles, scc)
			} else if len(scc) == 1 && g.hasSelfEdge(scc[0]) {
				cycles = append(cycles, scc)
			}
		}
	}

	for label := range g.nodes {
		if _, seen := indices[label]; !seen {
			strongconnect(label)
		}
	}

	return cycles
}

func (g *Graph) hasSelfEdge(label string) bool {
	for _, w := range g.forward[label] {
		if w == label {
			return true
		}
	}
	return false
}

// DanglingDeps returns, per owning label, the resolved local ("//...") deps
// that have no registered target. External "@repo//" deps are not dangling.
func (g *Graph) DanglingDeps() map[string][]string {
	dangling := make(map[string][]string)
	for owner, deps := range g.forward {
		for _, dep := range deps {
			if !strings.HasPrefix(dep, "//") {
				continue
			}
			if _, ok := g.nodes[dep]; !ok {
				dangling[owner] = append(dangling[owner], dep)
			}
		}
	}
	return dangling
}
