// Package sched simulates cycle-stepped task scheduling on CPU-like and
// GPU-like devices.
//
// A device has a number of identical cores, each completing Speed units of
// work per cycle. Every cycle first assigns ready tasks to free cores in task
// declaration order and then advances every running task. A task finishing in
// cycle c frees its core and its dependents from cycle c+1 on.
package sched

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/aretw0/algoviz/pkg/derived"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/sim"
)

// Task is one unit of work in the dependency graph.
type Task struct {
	ID   string   `mapstructure:"id" json:"id" validate:"required"`
	Work int      `mapstructure:"work" json:"work" validate:"gte=1,lte=1000"`
	Deps []string `mapstructure:"deps" json:"deps,omitempty"`
}

// Device is an execution target.
type Device struct {
	Name  string `mapstructure:"name" json:"name"`
	Cores int    `mapstructure:"cores" json:"cores" validate:"gte=1,lte=256"`
	Speed int    `mapstructure:"speed" json:"speed" validate:"gte=1,lte=100"`
}

// Default devices: few fast cores against many slow ones.
var (
	CPU = Device{Name: "cpu", Cores: 4, Speed: 4}
	GPU = Device{Name: "gpu", Cores: 32, Speed: 1}
)

// TaskState is the progress of one task.
type TaskState struct {
	ID        string     `json:"id"`
	Remaining int        `json:"remaining"`
	Core      int        `json:"core"` // -1 when not running
	Tag       domain.Tag `json:"tag"`
	Start     int        `json:"start,omitempty"`
	Finish    int        `json:"finish,omitempty"`
}

// State is one scheduling snapshot.
type State struct {
	domain.Header

	Device Device      `json:"device"`
	Cycle  int         `json:"cycle"`
	Tasks  []TaskState `json:"tasks"`
	Cores  []string    `json:"cores"` // task id per core, empty when idle
	Busy   int         `json:"busy"`  // accumulated busy core-cycles
	Done   int         `json:"done"`

	Utilization float64 `json:"utilization"`
	Progress    float64 `json:"progress"`
}

// Sentinel errors for task graphs. They wrap domain.ErrInvalidParameter.
var (
	ErrUnknownDependency = fmt.Errorf("%w: unknown dependency", domain.ErrInvalidParameter)
	ErrDependencyCycle   = fmt.Errorf("%w: dependency cycle", domain.ErrInvalidParameter)
	ErrDuplicateTask     = fmt.Errorf("%w: duplicate task id", domain.ErrInvalidParameter)
)

// ValidateTasks checks ids, dependencies and acyclicity.
func ValidateTasks(tasks []Task) error {
	index := make(map[string]int, len(tasks))
	var errs []error
	for i, t := range tasks {
		if _, ok := index[t.ID]; ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateTask, t.ID))
		}
		index[t.ID] = i
	}
	for _, t := range tasks {
		for _, d := range t.Deps {
			if _, ok := index[d]; !ok {
				errs = append(errs, fmt.Errorf("task %s: %w %s", t.ID, ErrUnknownDependency, d))
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	// White/Gray/Black walk over dependencies.
	const (
		white = iota
		gray
		black
	)
	color := make([]int, len(tasks))
	var visit func(i int) error
	visit = func(i int) error {
		color[i] = gray
		for _, d := range tasks[i].Deps {
			j := index[d]
			switch color[j] {
			case gray:
				return fmt.Errorf("%w through %s and %s", ErrDependencyCycle, tasks[i].ID, d)
			case white:
				if err := visit(j); err != nil {
					return err
				}
			}
		}
		color[i] = black
		return nil
	}
	for i := range tasks {
		if color[i] == white {
			if err := visit(i); err != nil {
				return err
			}
		}
	}
	return nil
}

// Machine advances one device over a task graph, one cycle per Step.
type Machine struct {
	tasks []Task
	index map[string]int
	state State
}

// NewMachine validates tasks and returns a machine in its initial state.
func NewMachine(tasks []Task, dev Device) (*Machine, error) {
	if dev.Cores < 1 || dev.Speed < 1 {
		return nil, fmt.Errorf("%w: device needs at least one core and positive speed", domain.ErrInvalidParameter)
	}
	if err := ValidateTasks(tasks); err != nil {
		return nil, err
	}
	m := &Machine{tasks: slices.Clone(tasks), index: make(map[string]int, len(tasks))}
	ts := make([]TaskState, len(tasks))
	for i, t := range tasks {
		m.index[t.ID] = i
		ts[i] = TaskState{ID: t.ID, Remaining: t.Work, Core: -1, Tag: domain.TagPending}
	}
	m.state = State{
		Header: domain.Header{Phase: domain.PhaseIdle},
		Device: dev,
		Tasks:  ts,
		Cores:  make([]string, dev.Cores),
	}
	m.markReady(&m.state)
	return m, nil
}

// State returns the current snapshot.
func (m *Machine) State() State { return m.state }

// Done reports whether the machine has reached a terminal snapshot.
func (m *Machine) Done() bool { return m.state.Phase.Terminal() }

func (m *Machine) markReady(s *State) {
	for i, t := range m.tasks {
		if s.Tasks[i].Tag != domain.TagPending {
			continue
		}
		ready := true
		for _, d := range t.Deps {
			if s.Tasks[m.index[d]].Tag != domain.TagDone {
				ready = false
				break
			}
		}
		if ready {
			s.Tasks[i].Tag = domain.TagReady
		}
	}
}

// Step runs one cycle. It is a no-op once the machine is done.
func (m *Machine) Step() State {
	s := m.state
	if s.Phase.Terminal() {
		return s
	}
	next := s
	next.Tasks = slices.Clone(s.Tasks)
	next.Cores = slices.Clone(s.Cores)

	// Empty graph: finish immediately.
	if len(m.tasks) == 0 {
		next.Progress = derived.Progress(0, 0)
		next.Header = s.Next(domain.PhaseComplete, domain.Step{Description: "no tasks"})
		m.state = next
		return next
	}

	next.Cycle = s.Cycle + 1
	var changed, started, finished []string

	// 1. Assign ready tasks to free cores in declaration order.
	for i := range next.Tasks {
		if next.Tasks[i].Tag != domain.TagReady {
			continue
		}
		core := slices.Index(next.Cores, "")
		if core < 0 {
			break
		}
		next.Cores[core] = next.Tasks[i].ID
		next.Tasks[i].Core = core
		next.Tasks[i].Tag = domain.TagRunning
		next.Tasks[i].Start = next.Cycle
		started = append(started, next.Tasks[i].ID)
	}

	// 2. Advance running tasks.
	for i := range next.Tasks {
		t := &next.Tasks[i]
		if t.Tag != domain.TagRunning {
			continue
		}
		next.Busy++
		t.Remaining = max(t.Remaining-s.Device.Speed, 0)
		changed = append(changed, t.ID)
		if t.Remaining == 0 {
			t.Tag = domain.TagDone
			t.Finish = next.Cycle
			next.Cores[t.Core] = ""
			t.Core = -1
			next.Done++
			finished = append(finished, t.ID)
		}
	}

	// 3. Release dependents for the next cycle.
	m.markReady(&next)

	next.Utilization = derived.Utilization(next.Busy, s.Device.Cores, next.Cycle)
	next.Progress = derived.Progress(next.Done, len(next.Tasks))

	phase := domain.PhaseRunning
	desc := fmt.Sprintf("%s cycle %d", s.Device.Name, next.Cycle)
	if len(started) > 0 {
		desc += fmt.Sprintf(": start %v", started)
	}
	if len(finished) > 0 {
		desc += fmt.Sprintf(": finish %v", finished)
	}
	if next.Done == len(next.Tasks) {
		phase = domain.PhaseComplete
		desc += fmt.Sprintf("; all tasks done in %d cycles", next.Cycle)
	}
	next.Header = s.Next(phase, domain.Step{
		Description: desc,
		Changed:     changed,
		Before:      map[string]string{"done": strconv.Itoa(s.Done)},
		After:       map[string]string{"done": strconv.Itoa(next.Done)},
	})
	m.state = next
	return next
}

// Run produces the full trace of tasks on dev.
func Run(tasks []Task, dev Device) (*sim.Trace[State], error) {
	m, err := NewMachine(tasks, dev)
	if err != nil {
		return nil, err
	}
	tr := sim.NewTrace(m.State())
	for !m.Done() {
		tr.Emit(m.Step())
	}
	return tr, nil
}
