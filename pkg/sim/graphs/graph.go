// Package graphs provides the small, order-preserving graph model used as
// input by the traversal, topological sort and spanning tree simulations.
//
// Iteration order is part of the contract: Nodes returns nodes in declaration
// order (explicit nodes first, then endpoints in first-appearance order) and
// Neighbors returns edges in declaration order. Every tie-break in the
// simulations is defined in terms of these two orders.
package graphs

import (
	"errors"
	"fmt"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/scenario"
)

// Sentinel errors for graph construction.
var (
	// ErrDuplicateNode is returned when a node id is declared twice.
	ErrDuplicateNode = errors.New("graphs: duplicate node")

	// ErrNodeNotFound is returned when a lookup names an absent node.
	ErrNodeNotFound = errors.New("graphs: node not found")

	// ErrEmptyID is returned for blank node ids.
	ErrEmptyID = errors.New("graphs: empty node id")

	// ErrDuplicateEdge is returned for a second edge between the same endpoints.
	ErrDuplicateEdge = errors.New("graphs: duplicate edge")
)

// Edge is one declared edge. Index is its declaration position.
type Edge struct {
	Index  int    `json:"index"`
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

// ID is a stable label such as "a-b" used for tags and step records.
func (e Edge) ID() string { return e.From + "-" + e.To }

// Neighbor is the far end of an edge as seen from one node.
type Neighbor struct {
	To   string
	Edge Edge
}

// Graph is an immutable-after-build adjacency list.
type Graph struct {
	directed bool
	nodes    []string
	index    map[string]int
	edges    []Edge
	adj      map[string][]Neighbor
	pairs    map[string]bool
}

// New creates an empty graph.
func New(directed bool) *Graph {
	return &Graph{
		directed: directed,
		index:    make(map[string]int),
		adj:      make(map[string][]Neighbor),
		pairs:    make(map[string]bool),
	}
}

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }

// AddNode declares a node.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if _, ok := g.index[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, id)
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, id)
	return nil
}

func (g *Graph) ensure(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if _, ok := g.index[id]; ok {
		return nil
	}
	return g.AddNode(id)
}

// AddEdge declares an edge, adding missing endpoints in first-appearance order.
// Parallel edges are rejected so Edge.ID stays unique.
func (g *Graph) AddEdge(from, to string, weight int) error {
	if err := g.ensure(from); err != nil {
		return err
	}
	if err := g.ensure(to); err != nil {
		return err
	}
	e := Edge{Index: len(g.edges), From: from, To: to, Weight: weight}
	key := e.ID()
	if !g.directed && to < from {
		key = to + "-" + from
	}
	if g.pairs[key] {
		return fmt.Errorf("%w: %s", ErrDuplicateEdge, e.ID())
	}
	g.pairs[key] = true
	g.edges = append(g.edges, e)
	g.adj[from] = append(g.adj[from], Neighbor{To: to, Edge: e})
	if !g.directed && from != to {
		g.adj[to] = append(g.adj[to], Neighbor{To: from, Edge: e})
	}
	return nil
}

// Has reports whether id is a node.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Len is the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns node ids in declaration order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns edges in declaration order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Neighbors returns the edges leaving id in declaration order.
// For undirected graphs both endpoints see the edge.
func (g *Graph) Neighbors(id string) ([]Neighbor, error) {
	if !g.Has(id) {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	out := make([]Neighbor, len(g.adj[id]))
	copy(out, g.adj[id])
	return out, nil
}

// EdgeSpec is the parameter form of one edge.
type EdgeSpec struct {
	From   string `mapstructure:"from" json:"from" validate:"required"`
	To     string `mapstructure:"to" json:"to" validate:"required"`
	Weight int    `mapstructure:"weight" json:"weight,omitempty" validate:"gte=0"`
}

// Spec is the parameter form of a graph.
type Spec struct {
	Directed bool       `mapstructure:"directed" json:"directed,omitempty"`
	Nodes    []string   `mapstructure:"nodes" json:"nodes,omitempty" validate:"max=64,dive,required"`
	Edges    []EdgeSpec `mapstructure:"edges" json:"edges,omitempty" validate:"max=256,dive"`
}

// Build validates the spec and returns the graph.
func (s Spec) Build() (*Graph, error) {
	g := New(s.Directed)
	for _, id := range s.Nodes {
		if err := g.AddNode(id); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidParameter, err)
		}
	}
	for _, e := range s.Edges {
		if err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidParameter, err)
		}
	}
	return g, nil
}

// Decode builds a graph from the "graph" entry of raw params.
func Decode(raw any) (*Graph, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: graph must be a mapping", domain.ErrInvalidParameter)
	}
	var s Spec
	if err := scenario.Decode(m, &s); err != nil {
		return nil, err
	}
	return s.Build()
}
