package resolver

import (
	"fmt"
	"sort"

	"bennypowers.dev/vars2css/internal/collections"
	"bennypowers.dev/vars2css/internal/variables"
)

// Graph is a directed graph of alias dependencies between variables
type Graph struct {
	// adjacency list: variable ID -> IDs it aliases
	dependencies map[string][]string
	// reverse lookup: variable ID -> IDs that alias it
	dependents map[string][]string
	// all variable IDs in the graph, sorted
	nodes []string
	known map[string]bool
}

// BuildGraph builds the alias graph of a set of variables.
// Aliases from every mode count as dependencies.
func BuildGraph(vars []*variables.Variable) *Graph {
	graph := &Graph{
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
		known:        make(map[string]bool),
	}

	for _, v := range vars {
		if v == nil || graph.known[v.ID] {
			continue
		}
		graph.known[v.ID] = true
		graph.nodes = append(graph.nodes, v.ID)
	}
	sort.Strings(graph.nodes)

	for _, v := range vars {
		if v == nil {
			continue
		}
		deps := aliasTargets(v)
		if len(deps) == 0 {
			continue
		}
		graph.dependencies[v.ID] = deps
		for _, dep := range deps {
			graph.dependents[dep] = append(graph.dependents[dep], v.ID)
		}
	}

	return graph
}

// aliasTargets returns the distinct alias targets of v, ordered by mode ID
func aliasTargets(v *variables.Variable) []string {
	modes := make([]string, 0, len(v.ValuesByMode))
	for modeID := range v.ValuesByMode {
		modes = append(modes, modeID)
	}
	sort.Strings(modes)

	targets := collections.NewOrderedSet[string]()
	for _, modeID := range modes {
		if a, ok := v.ValuesByMode[modeID].(variables.Alias); ok {
			targets.Add(a.ID)
		}
	}
	return targets.Members()
}

// Dependents returns the sorted IDs of variables aliasing the given ID,
// which need not be a variable in the graph
func (g *Graph) Dependents(id string) []string {
	deps := append([]string{}, g.dependents[id]...)
	sort.Strings(deps)
	return deps
}

// Dangling returns, per variable ID, alias targets that are not in the graph
func (g *Graph) Dangling() map[string][]string {
	dangling := make(map[string][]string)
	for _, node := range g.nodes {
		for _, dep := range g.dependencies[node] {
			if !g.known[dep] {
				dangling[node] = append(dangling[node], dep)
			}
		}
	}
	return dangling
}

// HasCycle returns true if the graph contains a circular alias
func (g *Graph) HasCycle() bool {
	return g.FindCycle() != nil
}

// FindCycle returns the cycle path if one exists, or nil if no cycle
func (g *Graph) FindCycle() []string {
	visited := make(map[string]bool)

	for _, node := range g.nodes {
		path := collections.NewOrderedSet[string]()
		if cycle := g.findCycleDFS(node, visited, path); cycle != nil {
			return cycle
		}
	}

	return nil
}

// findCycleDFS finds a cycle and returns the path.
// path holds the current DFS stack in order.
func (g *Graph) findCycleDFS(node string, visited map[string]bool, path *collections.OrderedSet[string]) []string {
	if path.Has(node) {
		return append(path.From(node), node)
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	path.Add(node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, path); cycle != nil {
			return cycle
		}
	}

	path.Remove(node)
	return nil
}

// Validate reports the first structural problem in the graph:
// a circular alias or an alias to an unknown variable
func (g *Graph) Validate() error {
	if cycle := g.FindCycle(); cycle != nil {
		return variables.NewCircularReferenceError(cycle)
	}
	for _, node := range g.nodes {
		for _, dep := range g.dependencies[node] {
			if !g.known[dep] {
				return variables.NewUnresolvedReferenceError(node, "", dep, variables.NewNotFoundError(dep))
			}
		}
	}
	return nil
}

func (g *Graph) String() string {
	return fmt.Sprintf("Graph(%d variables, %d aliasing)", len(g.nodes), len(g.dependencies))
}
