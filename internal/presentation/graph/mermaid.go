package graph

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
)

// nodeStyles are Mermaid classDefs per node tag. Text is forced black
// (color:#000) for contrast on light fills regardless of theme.
var nodeStyles = map[domain.Tag]string{
	domain.TagFrontier: "fill:#fff3e0,stroke:#ef6c00,stroke-width:2px,color:#000",
	domain.TagCurrent:  "fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000",
	domain.TagVisited:  "fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000",
	domain.TagDone:     "fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000",
	domain.TagReady:    "fill:#f3e5f5,stroke:#6a1b9a,stroke-width:2px,color:#000",
	domain.TagPending:  "fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:3,color:#000",
	domain.TagAccepted: "fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000",
	domain.TagRejected: "fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000",
	domain.TagActive:   "fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000",
}

// edgeStyles are Mermaid linkStyles per edge tag.
var edgeStyles = map[domain.Tag]string{
	domain.TagAccepted:   "stroke:#2e7d32,stroke-width:4px",
	domain.TagRejected:   "stroke:#c62828,stroke-dasharray:4",
	domain.TagCandidate:  "stroke:#ef6c00,stroke-width:3px",
	domain.TagCurrent:    "stroke:#fbc02d,stroke-width:4px",
	domain.TagDone:       "stroke:#9e9e9e",
	domain.TagDependency: "stroke:#6a1b9a,stroke-width:2px",
}

// GenerateMermaid produces a Mermaid flowchart for v.
// Node and edge tags become classDef/linkStyle overlays. Weights are shown as
// edge labels when any edge carries a non-zero weight.
func GenerateMermaid(v graphs.View) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, id := range v.Nodes {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", sanitizeMermaidID(id), escape(id))
	}

	weighted := slices.ContainsFunc(v.Edges, func(e graphs.Edge) bool { return e.Weight != 0 })
	arrow := "---"
	if v.Directed {
		arrow = "-->"
	}
	for _, e := range v.Edges {
		from, to := sanitizeMermaidID(e.From), sanitizeMermaidID(e.To)
		if weighted {
			w := strconv.Itoa(e.Weight)
			if v.Directed {
				fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", from, w, to)
			} else {
				fmt.Fprintf(&sb, "    %s -- \"%s\" --- %s\n", from, w, to)
			}
			continue
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", from, arrow, to)
	}

	if len(v.NodeTags) == 0 && len(v.EdgeTags) == 0 {
		return sb.String()
	}

	sb.WriteString("\n    %% Overlay Styles\n")
	used := make(map[domain.Tag][]string)
	for _, id := range v.Nodes {
		tag := v.Tag(id)
		if _, ok := nodeStyles[tag]; ok {
			used[tag] = append(used[tag], sanitizeMermaidID(id))
		}
	}
	tags := make([]domain.Tag, 0, len(used))
	for tag := range used {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	for _, tag := range tags {
		fmt.Fprintf(&sb, "    classDef %s %s;\n", tag, nodeStyles[tag])
		fmt.Fprintf(&sb, "    class %s %s;\n", strings.Join(used[tag], ","), tag)
	}

	// linkStyle indexes follow edge declaration order.
	for i, e := range v.Edges {
		if style, ok := edgeStyles[v.EdgeTags[e.ID()]]; ok {
			fmt.Fprintf(&sb, "    linkStyle %d %s;\n", i, style)
		}
	}
	return sb.String()
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
