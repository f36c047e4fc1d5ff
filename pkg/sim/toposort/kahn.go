// Package toposort animates Kahn's topological sort.
//
// The ready queue is FIFO and is seeded in node declaration order; newly
// freed nodes are appended in edge declaration order. Each tick pops one node.
// The final tick is the verdict: complete when every node was output,
// cycle-detected otherwise.
package toposort

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
)

// State is one Kahn snapshot.
type State struct {
	domain.Header

	Nodes     []string              `json:"nodes"`
	Edges     []graphs.Edge         `json:"edges"`
	InDegree  map[string]int        `json:"in_degree"`
	Queue     []string              `json:"queue"`
	Output    []string              `json:"output"`
	Current   string                `json:"current,omitempty"`
	Tags      map[string]domain.Tag `json:"tags"`
	Remaining []string              `json:"remaining,omitempty"` // set on cycle-detected
}

// GraphView implements graphs.Viewer.
func (s State) GraphView() graphs.View {
	done := make(map[string]bool, len(s.Output))
	for _, n := range s.Output {
		done[n] = true
	}
	edges := make(map[string]domain.Tag, len(s.Edges))
	for _, e := range s.Edges {
		if done[e.From] {
			edges[e.ID()] = domain.TagDone
		} else {
			edges[e.ID()] = domain.TagDependency
		}
	}
	return graphs.View{Directed: true, Nodes: s.Nodes, Edges: s.Edges, NodeTags: s.Tags, EdgeTags: edges}
}

// Run produces the full Kahn trace over a directed graph.
func Run(g *graphs.Graph) (*sim.Trace[State], error) {
	if !g.Directed() {
		return nil, fmt.Errorf("%w: topological sort needs a directed graph", domain.ErrInvalidParameter)
	}
	nodes := g.Nodes()
	edges := g.Edges()

	s := State{
		Header:   domain.Header{Phase: domain.PhaseIdle},
		Nodes:    nodes,
		Edges:    edges,
		InDegree: make(map[string]int, len(nodes)),
		Tags:     make(map[string]domain.Tag, len(nodes)),
	}
	for _, n := range nodes {
		s.InDegree[n] = 0
	}
	for _, e := range edges {
		s.InDegree[e.To]++
	}
	for _, n := range nodes {
		if s.InDegree[n] == 0 {
			s.Queue = append(s.Queue, n)
			s.Tags[n] = domain.TagReady
		} else {
			s.Tags[n] = domain.TagPending
		}
	}

	tr := sim.NewTrace(s)
	for {
		next := s
		next.InDegree = maps.Clone(s.InDegree)
		next.Tags = maps.Clone(s.Tags)
		next.Queue = slices.Clone(s.Queue)
		next.Output = slices.Clone(s.Output)
		next.Current = ""
		if s.Current != "" {
			next.Tags[s.Current] = domain.TagDone
		}

		// Verdict once nothing is ready.
		if len(next.Queue) == 0 {
			if len(next.Output) == len(nodes) {
				next.Header = s.Next(domain.PhaseComplete, domain.Step{
					Description: fmt.Sprintf("order complete: %v", next.Output),
					Changed:     changed(s.Current),
				})
			} else {
				for _, n := range nodes {
					if next.InDegree[n] > 0 {
						next.Remaining = append(next.Remaining, n)
					}
				}
				next.Header = s.Next(domain.PhaseCycleDetected, domain.Step{
					Description: fmt.Sprintf("cycle detected: %d of %d nodes still have dependencies %v",
						len(next.Remaining), len(nodes), next.Remaining),
					Changed: next.Remaining,
				})
			}
			tr.Emit(next)
			return tr, nil
		}

		n := next.Queue[0]
		next.Queue = next.Queue[1:]
		next.Output = append(next.Output, n)
		next.Current = n
		next.Tags[n] = domain.TagCurrent

		nbrs, err := g.Neighbors(n)
		if err != nil {
			return nil, err
		}
		ch := append(changed(s.Current), n)
		before := make(map[string]string, len(nbrs))
		after := make(map[string]string, len(nbrs))
		var freed []string
		for _, nb := range nbrs {
			if _, ok := before[nb.To]; !ok {
				before[nb.To] = strconv.Itoa(next.InDegree[nb.To])
			}
			next.InDegree[nb.To]--
			after[nb.To] = strconv.Itoa(next.InDegree[nb.To])
			if next.InDegree[nb.To] == 0 {
				next.Queue = append(next.Queue, nb.To)
				next.Tags[nb.To] = domain.TagReady
				freed = append(freed, nb.To)
			}
			ch = append(ch, nb.To)
		}

		desc := fmt.Sprintf("output %s", n)
		if len(freed) > 0 {
			desc += fmt.Sprintf(", now ready: %v", freed)
		}
		next.Header = s.Next(domain.PhaseRunning, domain.Step{
			Description: desc,
			Changed:     ch,
			Before:      before,
			After:       after,
		})
		s = tr.Emit(next)
	}
}

func changed(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}
