package mst

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
)

// unionFind is a disjoint set with path compression and union by rank.
type unionFind struct {
	parent map[string]string
	rank   map[string]int
}

func newUnionFind(nodes []string) *unionFind {
	uf := &unionFind{parent: make(map[string]string, len(nodes)), rank: make(map[string]int, len(nodes))}
	for _, n := range nodes {
		uf.parent[n] = n
	}
	return uf
}

func (uf *unionFind) find(u string) string {
	for uf.parent[u] != u {
		uf.parent[u] = uf.parent[uf.parent[u]]
		u = uf.parent[u]
	}
	return u
}

// union merges the sets of u and v and reports whether they were distinct.
func (uf *unionFind) union(u, v string) bool {
	ru, rv := uf.find(u), uf.find(v)
	if ru == rv {
		return false
	}
	switch {
	case uf.rank[ru] < uf.rank[rv]:
		uf.parent[ru] = rv
	case uf.rank[ru] > uf.rank[rv]:
		uf.parent[rv] = ru
	default:
		uf.parent[rv] = ru
		uf.rank[ru]++
	}
	return true
}

// RunKruskal produces the Kruskal trace. One tick considers one edge.
func RunKruskal(g *graphs.Graph) (*sim.Trace[State], error) {
	if g.Directed() {
		return nil, fmt.Errorf("%w: spanning trees need an undirected graph", domain.ErrInvalidParameter)
	}

	// 1. Stable sort by weight so equal weights keep declaration order.
	sorted := g.Edges()
	slices.SortStableFunc(sorted, func(a, b graphs.Edge) int { return a.Weight - b.Weight })

	s := initial(Kruskal, g)
	s.Candidates = sorted
	tr := sim.NewTrace(s)
	uf := newUnionFind(s.Nodes)
	need := max(len(s.Nodes)-1, 0)

	// 2. Trivial graphs are spanned without any edge.
	if need == 0 {
		tr.Emit(spanTrivial(s))
		return tr, nil
	}

	for {
		next := s.clone()

		if len(s.Candidates) == 0 {
			tr.Emit(finish(s, next, domain.PhaseDisconnected,
				fmt.Sprintf("edges exhausted with %d components left", s.Components)))
			return tr, nil
		}

		// 3. Take the lightest remaining edge.
		e := s.Candidates[0]
		next.Candidates = s.Candidates[1:]
		next.Considered = &e
		id := e.ID()

		if e.From != e.To && uf.union(e.From, e.To) {
			next.EdgeTags[id] = domain.TagAccepted
			next.NodeTags[e.From] = domain.TagVisited
			next.NodeTags[e.To] = domain.TagVisited
			next.Tree = append(next.Tree, e)
			next.TotalWeight += e.Weight
			next.Components--

			phase := domain.PhaseRunning
			desc := fmt.Sprintf("accept %s (w=%d): joins two components", id, e.Weight)
			if len(next.Tree) == need {
				phase = domain.PhaseComplete
				desc += fmt.Sprintf("; tree complete, total weight %d", next.TotalWeight)
			}
			next.Header = s.Next(phase, edgeStep(desc, e, domain.TagCandidate, domain.TagAccepted))
		} else {
			next.EdgeTags[id] = domain.TagRejected
			next.Header = s.Next(domain.PhaseRunning,
				edgeStep(fmt.Sprintf("reject %s (w=%d): would form a cycle", id, e.Weight), e, domain.TagCandidate, domain.TagRejected))
		}

		s = tr.Emit(next)
		if s.Phase.Terminal() {
			return tr, nil
		}
	}
}

func edgeStep(desc string, e graphs.Edge, from, to domain.Tag) domain.Step {
	return domain.Step{
		Description: desc,
		Changed:     []string{e.ID()},
		Before:      map[string]string{e.ID(): string(from)},
		After:       map[string]string{e.ID(): string(to)},
	}
}

func spanTrivial(s State) State {
	next := s.clone()
	for _, n := range next.Nodes {
		next.NodeTags[n] = domain.TagVisited
	}
	return finish(s, next, domain.PhaseComplete, "no edges needed")
}

func finish(prev, next State, phase domain.Phase, desc string) State {
	next.Header = prev.Next(phase, domain.Step{
		Description: desc,
		After:       map[string]string{"total_weight": strconv.Itoa(next.TotalWeight)},
	})
	return next
}
