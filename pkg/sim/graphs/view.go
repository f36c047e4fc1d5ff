package graphs

import "github.com/aretw0/algoviz/pkg/domain"

// View is the renderer-facing picture of a graph at one tick.
type View struct {
	Directed bool                  `json:"directed"`
	Nodes    []string              `json:"nodes"`
	Edges    []Edge                `json:"edges"`
	NodeTags map[string]domain.Tag `json:"node_tags,omitempty"`
	EdgeTags map[string]domain.Tag `json:"edge_tags,omitempty"` // keyed by Edge.ID
}

// Viewer is implemented by snapshots that can be drawn as a graph.
type Viewer interface {
	GraphView() View
}

// Tag returns the tag of a node, or TagUnvisited when untagged.
func (v View) Tag(node string) domain.Tag {
	if t, ok := v.NodeTags[node]; ok {
		return t
	}
	return domain.TagUnvisited
}
