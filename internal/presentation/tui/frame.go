package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/algoviz/pkg/derived"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/sim/dp"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
	"github.com/aretw0/algoviz/pkg/sim/sched"
	"github.com/aretw0/algoviz/pkg/sim/search"
	"github.com/aretw0/algoviz/pkg/sim/toposort"
	"github.com/aretw0/algoviz/pkg/sim/vclock"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	stepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Italic(true)
	verdictOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	verdictBad  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// tagColors maps tags onto 256-color palette entries.
var tagColors = map[domain.Tag]string{
	domain.TagPending:    "240",
	domain.TagReady:      "141",
	domain.TagRunning:    "220",
	domain.TagDone:       "42",
	domain.TagUnvisited:  "245",
	domain.TagFrontier:   "208",
	domain.TagCurrent:    "220",
	domain.TagVisited:    "39",
	domain.TagCandidate:  "208",
	domain.TagAccepted:   "42",
	domain.TagRejected:   "203",
	domain.TagEliminated: "238",
	domain.TagActive:     "220",
	domain.TagFound:      "42",
	domain.TagFilled:     "39",
	domain.TagDependency: "141",
}

// Paint colors s by tag.
func Paint(tag domain.Tag, s string) string {
	c, ok := tagColors[tag]
	if !ok {
		return s
	}
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	if tag == domain.TagCurrent || tag == domain.TagActive || tag == domain.TagFound {
		st = st.Bold(true)
	}
	return st.Render(s)
}

// RenderFrame draws one snapshot as text. Unknown snapshot types fall back
// to the header only.
func RenderFrame(snap domain.Snapshot) string {
	h := snap.Head()
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s\n", headerStyle.Render(fmt.Sprintf("tick %d", h.Tick)), phase(h.Phase))
	if h.Step.Description != "" {
		sb.WriteString(stepStyle.Render(h.Step.Description))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	switch s := snap.(type) {
	case search.State:
		renderSearch(&sb, s)
	case toposort.State:
		renderGraph(&sb, s.GraphView())
		fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("queue: "), strings.Join(s.Queue, " "))
		fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("output:"), strings.Join(s.Output, " → "))
		if len(s.Remaining) > 0 {
			fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("cycle: "), strings.Join(s.Remaining, " "))
		}
	case dp.State:
		renderTable(&sb, s)
	case vclock.State:
		renderClocks(&sb, s)
	case sched.State:
		renderDevice(&sb, s)
	case sched.CompareState:
		renderDevice(&sb, s.CPU)
		sb.WriteString("\n")
		renderDevice(&sb, s.GPU)
		if s.Speedup != 0 {
			fmt.Fprintf(&sb, "\n%s %.2fx\n", labelStyle.Render("speedup:"), s.Speedup)
		}
	case graphs.Viewer:
		renderGraph(&sb, s.GraphView())
	}
	return sb.String()
}

func phase(p domain.Phase) string {
	switch p {
	case domain.PhaseFound, domain.PhaseComplete:
		return verdictOK.Render(string(p))
	case domain.PhaseNotFound, domain.PhaseCycleDetected, domain.PhaseDisconnected:
		return verdictBad.Render(string(p))
	}
	return labelStyle.Render(string(p))
}

func renderSearch(sb *strings.Builder, s search.State) {
	cells := make([]string, len(s.Values))
	for i, v := range s.Values {
		cells[i] = Paint(s.Tags[i], strconv.Itoa(v))
	}
	fmt.Fprintf(sb, "[%s]\n", strings.Join(cells, " "))
	fmt.Fprintf(sb, "%s %d  %s %d..%d  %s %d\n",
		labelStyle.Render("target"), s.Target,
		labelStyle.Render("range"), s.Low, s.High,
		labelStyle.Render("comparisons"), s.Comparisons)
}

func renderGraph(sb *strings.Builder, v graphs.View) {
	nodes := make([]string, len(v.Nodes))
	for i, n := range v.Nodes {
		nodes[i] = Paint(v.Tag(n), n)
	}
	fmt.Fprintf(sb, "%s %s\n", labelStyle.Render("nodes:"), strings.Join(nodes, " "))

	arrow := "──"
	if v.Directed {
		arrow = "→"
	}
	edges := make([]string, 0, len(v.Edges))
	for _, e := range v.Edges {
		label := e.From + arrow + e.To
		if e.Weight != 0 {
			label += "(" + strconv.Itoa(e.Weight) + ")"
		}
		edges = append(edges, Paint(v.EdgeTags[e.ID()], label))
	}
	fmt.Fprintf(sb, "%s %s\n", labelStyle.Render("edges:"), strings.Join(edges, " "))
}

func renderTable(sb *strings.Builder, s dp.State) {
	width := 3
	for _, l := range slices.Concat(s.RowLabels, s.ColLabels) {
		width = max(width, len([]rune(l))+1)
	}
	pad := func(v string) string { return fmt.Sprintf("%*s", width, v) }

	sb.WriteString(pad(""))
	for _, c := range s.ColLabels {
		sb.WriteString(labelStyle.Render(pad(c)))
	}
	sb.WriteString("\n")
	for r, row := range s.Table {
		label := ""
		if r < len(s.RowLabels) {
			label = s.RowLabels[r]
		}
		sb.WriteString(labelStyle.Render(pad(label)))
		for c, v := range row {
			tag := s.Tags[r][c]
			text := "·"
			if tag != domain.TagPending {
				text = strconv.Itoa(v)
			}
			sb.WriteString(Paint(tag, pad(text)))
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(sb, "%s %d/%d\n", labelStyle.Render("filled"), s.Filled, s.Total)
	if s.Phase.Terminal() {
		fmt.Fprintf(sb, "%s %d %s\n", labelStyle.Render("result"), s.Result, strings.Join(s.Solution, " "))
	}
}

func renderClocks(sb *strings.Builder, s vclock.State) {
	for p, c := range s.Clocks {
		fmt.Fprintf(sb, "%s %s\n", labelStyle.Render(fmt.Sprintf("P%d", p)), c)
	}
	if n := len(s.Events); n > 0 {
		e := s.Events[n-1]
		fmt.Fprintf(sb, "%s %s %s P%d %s %s\n", labelStyle.Render("last:"),
			Paint(s.Tags[e.ID], e.ID), e.Kind, e.Process, e.Message, e.Clock)
	}
	if len(s.InFlight) > 0 {
		msgs := make([]string, 0, len(s.InFlight))
		for m := range s.InFlight {
			msgs = append(msgs, m)
		}
		slices.Sort(msgs)
		fmt.Fprintf(sb, "%s %s\n", labelStyle.Render("in flight:"), strings.Join(msgs, " "))
	}
	fmt.Fprintf(sb, "%s %d\n", labelStyle.Render("remaining:"), s.Remaining)
}

func renderDevice(sb *strings.Builder, s sched.State) {
	fmt.Fprintf(sb, "%s %d cores × speed %d  cycle %d\n",
		headerStyle.Render(s.Device.Name), s.Device.Cores, s.Device.Speed, s.Cycle)
	tasks := make([]string, len(s.Tasks))
	for i, t := range s.Tasks {
		tasks[i] = Paint(t.Tag, fmt.Sprintf("%s:%d", t.ID, t.Remaining))
	}
	fmt.Fprintf(sb, "%s %s\n", labelStyle.Render("tasks:"), strings.Join(tasks, " "))
	fmt.Fprintf(sb, "%s %d/%d  %s %d%%  %s %d%%\n",
		labelStyle.Render("done"), s.Done, len(s.Tasks),
		labelStyle.Render("utilization"), derived.Percent(s.Utilization),
		labelStyle.Render("progress"), derived.Percent(s.Progress))
}
