package mst

import (
	"container/heap"
	"fmt"
	"slices"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
)

// candidate is an edge leading out of the tree towards node.
type candidate struct {
	edge graphs.Edge
	node string
}

// edgeHeap orders candidates by (weight, declaration index).
type edgeHeap []candidate

func (h edgeHeap) Len() int { return len(h) }
func (h edgeHeap) Less(i, j int) bool {
	if h[i].edge.Weight != h[j].edge.Weight {
		return h[i].edge.Weight < h[j].edge.Weight
	}
	return h[i].edge.Index < h[j].edge.Index
}
func (h edgeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *edgeHeap) Push(x any)   { *h = append(*h, x.(candidate)) }
func (h *edgeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// sorted lists the heap contents in pop order.
func (h edgeHeap) sorted() []graphs.Edge {
	c := slices.Clone(h)
	slices.SortFunc(c, func(a, b candidate) int {
		if a.edge.Weight != b.edge.Weight {
			return a.edge.Weight - b.edge.Weight
		}
		return a.edge.Index - b.edge.Index
	})
	out := make([]graphs.Edge, len(c))
	for i, x := range c {
		out[i] = x.edge
	}
	return out
}

// RunPrim produces the Prim trace from start. One tick pops one candidate.
// An empty start selects the first declared node.
func RunPrim(g *graphs.Graph, start string) (*sim.Trace[State], error) {
	if g.Directed() {
		return nil, fmt.Errorf("%w: spanning trees need an undirected graph", domain.ErrInvalidParameter)
	}
	s := initial(Prim, g)
	if start == "" && len(s.Nodes) > 0 {
		start = s.Nodes[0]
	}
	if start != "" && !g.Has(start) {
		return nil, fmt.Errorf("%w: start node %q not in graph", domain.ErrInvalidParameter, start)
	}

	need := max(len(s.Nodes)-1, 0)
	if need == 0 {
		tr := sim.NewTrace(s)
		tr.Emit(spanTrivial(s))
		return tr, nil
	}

	inTree := map[string]bool{}
	h := &edgeHeap{}
	grow := func(n string) error {
		inTree[n] = true
		nbrs, err := g.Neighbors(n)
		if err != nil {
			return err
		}
		for _, nb := range nbrs {
			if !inTree[nb.To] {
				heap.Push(h, candidate{edge: nb.Edge, node: nb.To})
			}
		}
		return nil
	}

	// 1. Seed the tree with the start vertex.
	if err := grow(start); err != nil {
		return nil, err
	}
	s.NodeTags[start] = domain.TagVisited
	s.Components = len(s.Nodes)
	s.Candidates = h.sorted()
	tr := sim.NewTrace(s)

	for {
		next := s.clone()

		if h.Len() == 0 {
			next.Candidates = nil
			tr.Emit(finish(s, next, domain.PhaseDisconnected,
				fmt.Sprintf("no edge leaves the tree: %d of %d nodes spanned", len(s.Tree)+1, len(s.Nodes))))
			return tr, nil
		}

		// 2. Pop the cheapest edge leaving the tree.
		c := heap.Pop(h).(candidate)
		e := c.edge
		next.Considered = &e
		id := e.ID()

		if inTree[c.node] {
			next.EdgeTags[id] = domain.TagRejected
			next.Candidates = h.sorted()
			next.Header = s.Next(domain.PhaseRunning,
				edgeStep(fmt.Sprintf("reject %s (w=%d): %s already in tree", id, e.Weight, c.node), e, domain.TagCandidate, domain.TagRejected))
			s = tr.Emit(next)
			continue
		}

		// 3. Accept it and push the new vertex's outgoing edges.
		if err := grow(c.node); err != nil {
			return nil, err
		}
		next.EdgeTags[id] = domain.TagAccepted
		next.NodeTags[c.node] = domain.TagVisited
		next.Tree = append(next.Tree, e)
		next.TotalWeight += e.Weight
		next.Components--
		next.Candidates = h.sorted()

		phase := domain.PhaseRunning
		desc := fmt.Sprintf("accept %s (w=%d): add %s to tree", id, e.Weight, c.node)
		if len(next.Tree) == need {
			phase = domain.PhaseComplete
			desc += fmt.Sprintf("; tree complete, total weight %d", next.TotalWeight)
		}
		next.Header = s.Next(phase, edgeStep(desc, e, domain.TagCandidate, domain.TagAccepted))
		s = tr.Emit(next)
		if s.Phase.Terminal() {
			return tr, nil
		}
	}
}
