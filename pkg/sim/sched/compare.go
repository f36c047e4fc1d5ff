package sched

import (
	"fmt"

	"github.com/aretw0/algoviz/pkg/derived"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/sim"
)

// CompareState is one lockstep snapshot of two devices running the same graph.
type CompareState struct {
	domain.Header

	CPU State `json:"cpu"`
	GPU State `json:"gpu"`

	// Speedup of the GPU over the CPU in cycles, set once both have finished.
	Speedup float64 `json:"speedup"`
}

// RunCompare advances cpu and gpu one cycle per tick over the same tasks.
// A device that has finished keeps its final snapshot while the other runs.
func RunCompare(tasks []Task, cpu, gpu Device) (*sim.Trace[CompareState], error) {
	a, err := NewMachine(tasks, cpu)
	if err != nil {
		return nil, err
	}
	b, err := NewMachine(tasks, gpu)
	if err != nil {
		return nil, err
	}

	s := CompareState{
		Header: domain.Header{Phase: domain.PhaseIdle},
		CPU:    a.State(),
		GPU:    b.State(),
	}
	tr := sim.NewTrace(s)

	for !a.Done() || !b.Done() {
		next := s
		var parts []string
		if !a.Done() {
			next.CPU = a.Step()
			parts = append(parts, next.CPU.Step.Description)
		}
		if !b.Done() {
			next.GPU = b.Step()
			parts = append(parts, next.GPU.Step.Description)
		}

		phase := domain.PhaseRunning
		desc := fmt.Sprint(parts)
		if a.Done() && b.Done() {
			phase = domain.PhaseComplete
			next.Speedup = derived.Speedup(next.CPU.Cycle, next.GPU.Cycle)
			desc += fmt.Sprintf("; gpu speedup %.2fx", next.Speedup)
		}
		next.Header = s.Next(phase, domain.Step{
			Description: desc,
			Changed:     []string{cpu.Name, gpu.Name},
		})
		s = tr.Emit(next)
	}
	return tr, nil
}
