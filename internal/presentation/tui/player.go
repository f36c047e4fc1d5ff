package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/driver"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minSpeed = 0.25
	maxSpeed = 16
)

var (
	frameStyle = lipgloss.NewStyle().Padding(1, 2)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// SnapshotMsg carries a published snapshot into the event loop.
type SnapshotMsg struct{ Snapshot domain.Snapshot }

// controlMsg reports the outcome of a driver call.
type controlMsg struct{ err error }

// Player is the bubbletea model of the interactive player.
// Driver calls run inside commands because the driver publishes
// synchronously and the subscription feeds back into the program.
type Player struct {
	drv       *driver.Driver
	module    string
	scenarios []string
	snap      domain.Snapshot
	err       error
}

// NewPlayer builds a player for d. scenarios are cycled with tab.
func NewPlayer(d *driver.Driver, module string, scenarios []string) Player {
	return Player{drv: d, module: module, scenarios: scenarios, snap: d.Current()}
}

func (m Player) Init() tea.Cmd { return nil }

func (m Player) control(fn func() error) tea.Cmd {
	return func() tea.Msg { return controlMsg{err: fn()} }
}

// Update handles keys and snapshots.
func (m Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.snap = msg.Snapshot
	case controlMsg:
		m.err = msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			if m.drv.Status() == domain.RunRunning {
				return m, m.control(m.drv.Pause)
			}
			return m, m.control(m.drv.Play)
		case "n", "right", "l":
			return m, m.control(m.drv.Step)
		case "r":
			return m, m.control(m.drv.Reset)
		case "+", "=":
			speed := min(m.drv.Speed()*2, maxSpeed)
			return m, m.control(func() error { return m.drv.SetSpeed(speed) })
		case "-", "_":
			speed := max(m.drv.Speed()/2, minSpeed)
			return m, m.control(func() error { return m.drv.SetSpeed(speed) })
		case "tab":
			if next := m.nextScenario(); next != "" {
				return m, m.control(func() error { return m.drv.SelectScenario(next) })
			}
		}
	}
	return m, nil
}

func (m Player) nextScenario() string {
	if len(m.scenarios) == 0 {
		return ""
	}
	i := slices.Index(m.scenarios, m.drv.Scenario())
	return m.scenarios[(i+1)%len(m.scenarios)]
}

// View renders the current frame and the status bar.
func (m Player) View() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s · %s\n\n", headerStyle.Render(m.module), m.drv.Scenario())
	sb.WriteString(RenderFrame(m.snap))
	sb.WriteString(barStyle.Render(fmt.Sprintf("%s  speed %gx  │  space play/pause · n step · r reset · +/- speed · tab scenario · q quit",
		m.drv.Status(), m.drv.Speed())))
	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(errStyle.Render(m.err.Error()))
	}
	return frameStyle.Render(sb.String())
}

// Run plays d interactively until the user quits or ctx is done.
func Run(ctx context.Context, d *driver.Driver, module string, scenarios []string) error {
	p := tea.NewProgram(NewPlayer(d, module, scenarios), tea.WithContext(ctx), tea.WithAltScreen())
	unsubscribe := d.Subscribe(func(s domain.Snapshot) { p.Send(SnapshotMsg{Snapshot: s}) })
	defer unsubscribe()

	_, err := p.Run()
	return err
}
