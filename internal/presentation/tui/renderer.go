package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/algoviz/pkg/catalog"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Without a usable renderer the markdown is returned as is.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}

// CatalogMarkdown lists domains and modules as a markdown document.
func CatalogMarkdown(c *catalog.Catalog) string {
	var sb strings.Builder
	sb.WriteString("# algoviz catalog\n\n")
	for _, d := range c.Domains {
		fmt.Fprintf(&sb, "## %s\n\n", d.Title)
		sb.WriteString("| module | status | simulation | description |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, m := range d.Modules {
			status := string(m.Status)
			if m.Status == domain.StatusComingSoon {
				status = "_coming soon_"
			}
			sim := m.Simulation
			if sim != "" {
				sim = "`" + sim + "`"
			}
			fmt.Fprintf(&sb, "| **%s** | %s | %s | %s |\n", m.Title, status, sim, m.Description)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
