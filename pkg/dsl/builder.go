package dsl

// Builder accumulates nodes and edges in declaration order.
type Builder struct {
	directed bool
	nodes    []string
	seen     map[string]bool
	edges    []map[string]any
}

// New creates a new graph builder for an undirected graph.
func New() *Builder {
	return &Builder{seen: make(map[string]bool)}
}

// Directed marks every edge as one-way.
func (b *Builder) Directed() *Builder {
	b.directed = true
	return b
}

// Add declares a node and returns a builder for its outgoing edges.
// Declaring the same node twice returns a builder for the existing one.
func (b *Builder) Add(id string) *NodeBuilder {
	if !b.seen[id] {
		b.seen[id] = true
		b.nodes = append(b.nodes, id)
	}
	return &NodeBuilder{id: id, builder: b}
}

// Edge adds a weighted edge without declaring its endpoints.
func (b *Builder) Edge(from, to string, weight int) *Builder {
	b.edges = append(b.edges, map[string]any{"from": from, "to": to, "weight": weight})
	return b
}

// Params returns the graph as a parameter mapping.
func (b *Builder) Params() map[string]any {
	nodes := make([]any, len(b.nodes))
	for i, id := range b.nodes {
		nodes[i] = id
	}
	edges := make([]any, len(b.edges))
	for i, e := range b.edges {
		edges[i] = e
	}
	return map[string]any{
		"directed": b.directed,
		"nodes":    nodes,
		"edges":    edges,
	}
}

// NodeBuilder adds edges leaving one node.
type NodeBuilder struct {
	id      string
	builder *Builder
}

// To adds an unweighted edge to target.
func (n *NodeBuilder) To(target string) *NodeBuilder {
	return n.Weighted(target, 0)
}

// Weighted adds an edge to target with the given weight.
func (n *NodeBuilder) Weighted(target string, weight int) *NodeBuilder {
	n.builder.Edge(n.id, target, weight)
	return n
}
