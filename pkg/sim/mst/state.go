// Package mst animates Kruskal's and Prim's minimum spanning tree algorithms.
//
// Both run over the same undirected weighted graph and break weight ties by
// edge declaration order, so on a connected graph they agree on TotalWeight.
// A graph with no spanning tree ends in the disconnected phase.
package mst

import (
	"maps"
	"slices"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
)

// Algorithm selects the MST strategy.
type Algorithm string

const (
	Kruskal Algorithm = "kruskal"
	Prim    Algorithm = "prim"
)

// State is one MST snapshot.
type State struct {
	domain.Header

	Algorithm Algorithm             `json:"algorithm"`
	Nodes     []string              `json:"nodes"`
	Edges     []graphs.Edge         `json:"edges"`
	EdgeTags  map[string]domain.Tag `json:"edge_tags"`
	NodeTags  map[string]domain.Tag `json:"node_tags"`

	// Candidates lists the edges still to be considered, next first.
	Candidates []graphs.Edge `json:"candidates"`
	Considered *graphs.Edge  `json:"considered,omitempty"`

	Tree        []graphs.Edge `json:"tree"`
	TotalWeight int           `json:"total_weight"`
	Components  int           `json:"components"`
}

// GraphView implements graphs.Viewer.
func (s State) GraphView() graphs.View {
	return graphs.View{Nodes: s.Nodes, Edges: s.Edges, NodeTags: s.NodeTags, EdgeTags: s.EdgeTags}
}

func (s State) clone() State {
	out := s
	out.EdgeTags = maps.Clone(s.EdgeTags)
	out.NodeTags = maps.Clone(s.NodeTags)
	out.Tree = slices.Clone(s.Tree)
	out.Considered = nil
	return out
}

func initial(algo Algorithm, g *graphs.Graph) State {
	s := State{
		Header:     domain.Header{Phase: domain.PhaseIdle},
		Algorithm:  algo,
		Nodes:      g.Nodes(),
		Edges:      g.Edges(),
		EdgeTags:   make(map[string]domain.Tag),
		NodeTags:   make(map[string]domain.Tag),
		Components: g.Len(),
	}
	for _, e := range s.Edges {
		s.EdgeTags[e.ID()] = domain.TagCandidate
	}
	for _, n := range s.Nodes {
		s.NodeTags[n] = domain.TagUnvisited
	}
	return s
}
