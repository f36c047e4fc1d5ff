package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the algoviz ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{"        _                   _     ", "#818cf8"},
		{"   __ _| | __ _  ___ __   _(_)____", "#a78bfa"},
		{"  / _` | |/ _` |/ _ \\\\ \\ / / |_  /", "#c084fc"},
		{" | (_| | | (_| | (_) \\ V /| |/ / ", "#e879f9"},
		{"  \\__,_|_|\\__, |\\___/ \\_/ |_/___|", "#f472b6"},
		{"          |___/                   ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
