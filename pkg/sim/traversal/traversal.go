// Package traversal animates breadth-first and depth-first search.
//
// One tick visits one node. BFS uses a FIFO queue and marks nodes when they
// are discovered; DFS uses an explicit stack and pushes neighbors in reverse
// declaration order so the first declared neighbor is explored first.
package traversal

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
)

// Algorithm selects the traversal order.
type Algorithm string

const (
	BFS Algorithm = "bfs"
	DFS Algorithm = "dfs"
)

// State is one traversal snapshot.
type State struct {
	domain.Header

	Algorithm Algorithm             `json:"algorithm"`
	Directed  bool                  `json:"directed"`
	Nodes     []string              `json:"nodes"`
	Edges     []graphs.Edge         `json:"edges"`
	Start     string                `json:"start"`
	Current   string                `json:"current,omitempty"`
	Tags      map[string]domain.Tag `json:"tags"`
	Order     []string              `json:"order"`
	Frontier  []string              `json:"frontier"`
	Depth     map[string]int        `json:"depth"`
	Parent    map[string]string     `json:"parent,omitempty"`
}

// GraphView implements graphs.Viewer.
func (s State) GraphView() graphs.View {
	edges := make(map[string]domain.Tag)
	for child, parent := range s.Parent {
		for _, e := range s.Edges {
			if (e.From == parent && e.To == child) || (!s.Directed && e.From == child && e.To == parent) {
				edges[e.ID()] = domain.TagAccepted
				break
			}
		}
	}
	return graphs.View{
		Directed: s.Directed,
		Nodes:    s.Nodes,
		Edges:    s.Edges,
		NodeTags: s.Tags,
		EdgeTags: edges,
	}
}

// Reached reports how many nodes have been visited.
func (s State) Reached() int { return len(s.Order) }

type entry struct {
	node   string
	parent string
	depth  int
}

// Run produces the full trace of algo over g starting at start.
// An empty start on a non-empty graph selects the first declared node.
func Run(g *graphs.Graph, algo Algorithm, start string) (*sim.Trace[State], error) {
	nodes := g.Nodes()
	if start == "" && len(nodes) > 0 {
		start = nodes[0]
	}
	if start != "" && !g.Has(start) {
		return nil, fmt.Errorf("%w: start node %q not in graph", domain.ErrInvalidParameter, start)
	}

	s := State{
		Header:    domain.Header{Phase: domain.PhaseIdle},
		Algorithm: algo,
		Directed:  g.Directed(),
		Nodes:     nodes,
		Edges:     g.Edges(),
		Start:     start,
		Tags:      make(map[string]domain.Tag, len(nodes)),
		Depth:     make(map[string]int),
		Parent:    make(map[string]string),
	}
	for _, n := range nodes {
		s.Tags[n] = domain.TagUnvisited
	}

	var pending []entry
	if start != "" {
		pending = append(pending, entry{node: start})
		s.Tags[start] = domain.TagFrontier
	}
	visited := make(map[string]bool, len(nodes))
	s.Frontier = frontier(pending, visited, algo)

	tr := sim.NewTrace(s)

	for {
		next := clone(s)

		// 1. Retire the previous current node.
		if s.Current != "" {
			next.Tags[s.Current] = domain.TagVisited
			next.Current = ""
		}

		// 2. Take the next unvisited entry.
		var e entry
		found := false
		for len(pending) > 0 {
			if algo == BFS {
				e, pending = pending[0], pending[1:]
			} else {
				e, pending = pending[len(pending)-1], pending[:len(pending)-1]
			}
			if !visited[e.node] {
				found = true
				break
			}
		}

		if !found {
			next.Frontier = nil
			next.Header = s.Next(domain.PhaseComplete, domain.Step{
				Description: fmt.Sprintf("frontier empty: reached %d of %d nodes", len(s.Order), len(nodes)),
				Changed:     changed(s.Current),
			})
			tr.Emit(next)
			return tr, nil
		}

		// 3. Visit it and expand its neighbors.
		visited[e.node] = true
		next.Current = e.node
		next.Tags[e.node] = domain.TagCurrent
		next.Order = append(next.Order, e.node)
		next.Depth[e.node] = e.depth
		if e.parent != "" {
			next.Parent[e.node] = e.parent
		}

		nbrs, err := g.Neighbors(e.node)
		if err != nil {
			return nil, err
		}
		var discovered []string
		if algo == BFS {
			for _, nb := range nbrs {
				if visited[nb.To] || next.Tags[nb.To] == domain.TagFrontier {
					continue
				}
				pending = append(pending, entry{node: nb.To, parent: e.node, depth: e.depth + 1})
				next.Tags[nb.To] = domain.TagFrontier
				discovered = append(discovered, nb.To)
			}
		} else {
			for i := len(nbrs) - 1; i >= 0; i-- {
				nb := nbrs[i]
				if visited[nb.To] {
					continue
				}
				pending = append(pending, entry{node: nb.To, parent: e.node, depth: e.depth + 1})
				next.Tags[nb.To] = domain.TagFrontier
			}
			for _, nb := range nbrs {
				if !visited[nb.To] {
					discovered = append(discovered, nb.To)
				}
			}
		}
		next.Frontier = frontier(pending, visited, algo)

		desc := fmt.Sprintf("visit %s (depth %d)", e.node, e.depth)
		if len(discovered) > 0 {
			desc += fmt.Sprintf(", frontier += %v", discovered)
		}
		ch := append(changed(s.Current), e.node)
		ch = append(ch, discovered...)
		next.Header = s.Next(domain.PhaseRunning, domain.Step{
			Description: desc,
			Changed:     ch,
			Before:      map[string]string{"visited": strconv.Itoa(len(s.Order))},
			After:       map[string]string{"visited": strconv.Itoa(len(next.Order))},
		})
		s = tr.Emit(next)
	}
}

func clone(s State) State {
	out := s
	out.Tags = maps.Clone(s.Tags)
	out.Order = slices.Clone(s.Order)
	out.Depth = maps.Clone(s.Depth)
	out.Parent = maps.Clone(s.Parent)
	return out
}

func changed(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}

// frontier lists unvisited pending nodes in the order they will be taken, without duplicates.
func frontier(pending []entry, visited map[string]bool, algo Algorithm) []string {
	seen := make(map[string]bool, len(pending))
	out := make([]string, 0, len(pending))
	add := func(n string) {
		if !seen[n] && !visited[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	if algo == BFS {
		for _, e := range pending {
			add(e.node)
		}
		return out
	}
	for i := len(pending) - 1; i >= 0; i-- {
		add(pending[i].node)
	}
	return out
}
