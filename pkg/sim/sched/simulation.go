package sched

import (
	"fmt"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/sim"
)

// Registry ids.
const (
	ID        = "scheduler"
	CompareID = "cpu-vs-gpu"
)

// Batch generates independent tasks of equal work.
type Batch struct {
	Count int `mapstructure:"count" validate:"gte=0,lte=256"`
	Work  int `mapstructure:"work" validate:"gte=1,lte=1000"`
}

// Params is the decoded scenario input.
type Params struct {
	Tasks  []Task  `mapstructure:"tasks" validate:"max=256,dive"`
	Batch  *Batch  `mapstructure:"batch"`
	Random int     `mapstructure:"random" validate:"gte=0,lte=64"` // number of random tasks
	Device *Device `mapstructure:"device"`
	CPU    *Device `mapstructure:"cpu"`
	GPU    *Device `mapstructure:"gpu"`
}

func (p Params) tasks(env sim.Env) ([]Task, error) {
	tasks := append([]Task(nil), p.Tasks...)
	if p.Batch != nil {
		for i := range p.Batch.Count {
			tasks = append(tasks, Task{ID: fmt.Sprintf("b%d", i+1), Work: p.Batch.Work})
		}
	}
	if p.Random > 0 {
		if env.Rand == nil {
			return nil, fmt.Errorf("%w: random scenario needs a random source", domain.ErrInvalidParameter)
		}
		tasks = append(tasks, RandomTasks(env, p.Random)...)
	}
	return tasks, nil
}

// RandomTasks draws a DAG where each task may depend on earlier ones.
func RandomTasks(env sim.Env, n int) []Task {
	out := make([]Task, n)
	for i := range out {
		t := Task{ID: fmt.Sprintf("r%d", i+1), Work: 1 + env.Rand.Intn(12)}
		for j := 0; j < i; j++ {
			if env.Rand.Intn(4) == 0 {
				t.Deps = append(t.Deps, out[j].ID)
			}
		}
		out[i] = t
	}
	return out
}

func pick(d *Device, def Device) Device {
	if d == nil {
		return def
	}
	out := *d
	if out.Name == "" {
		out.Name = def.Name
	}
	return out
}

func task(id string, work int, deps ...string) map[string]any {
	m := map[string]any{"id": id, "work": work}
	if len(deps) > 0 {
		d := make([]any, len(deps))
		for i, x := range deps {
			d[i] = x
		}
		m["deps"] = d
	}
	return m
}

func presets() []scenario.Preset {
	return []scenario.Preset{
		{Name: "render", Description: "Load, 8 parallel tiles, compose", Params: map[string]any{
			"tasks": []any{
				task("load", 4),
				task("tile-1", 8, "load"), task("tile-2", 8, "load"), task("tile-3", 8, "load"), task("tile-4", 8, "load"),
				task("tile-5", 8, "load"), task("tile-6", 8, "load"), task("tile-7", 8, "load"), task("tile-8", 8, "load"),
				task("compose", 4, "tile-1", "tile-2", "tile-3", "tile-4", "tile-5", "tile-6", "tile-7", "tile-8"),
			},
		}},
		{Name: "chain", Description: "Strictly sequential work", Params: map[string]any{
			"tasks": []any{task("parse", 8), task("plan", 8, "parse"), task("exec", 8, "plan"), task("report", 8, "exec")},
		}},
		{Name: "batch", Description: "64 independent equal tasks", Params: map[string]any{
			"batch": map[string]any{"count": 64, "work": 4},
		}},
		{Name: "random", Description: "Random task graph", Params: map[string]any{"random": 16}},
	}
}

// Simulation schedules on one device.
type Simulation struct{}

// New returns the single-device scheduler simulation.
func New() *Simulation { return &Simulation{} }

func (*Simulation) Info() sim.Info {
	return sim.Info{
		ID:          ID,
		Title:       "Task Scheduling",
		Description: "Assign a task DAG to cores cycle by cycle.",
	}
}

func (*Simulation) Presets() []scenario.Preset { return presets() }

func (*Simulation) Prepare(p scenario.Preset, env sim.Env) (sim.Instance, error) {
	var params Params
	if err := scenario.Decode(p.Params, &params); err != nil {
		return nil, err
	}
	tasks, err := params.tasks(env)
	if err != nil {
		return nil, err
	}
	tr, err := Run(tasks, pick(params.Device, CPU))
	if err != nil {
		return nil, err
	}
	return sim.StaticOf(tr), nil
}

// CompareSimulation runs the CPU and GPU devices in lockstep.
type CompareSimulation struct{}

// NewCompare returns the CPU versus GPU simulation.
func NewCompare() *CompareSimulation { return &CompareSimulation{} }

func (*CompareSimulation) Info() sim.Info {
	return sim.Info{
		ID:          CompareID,
		Title:       "CPU vs GPU",
		Description: "Run the same task graph on few fast cores and many slow ones side by side.",
	}
}

func (*CompareSimulation) Presets() []scenario.Preset { return presets() }

func (*CompareSimulation) Prepare(p scenario.Preset, env sim.Env) (sim.Instance, error) {
	var params Params
	if err := scenario.Decode(p.Params, &params); err != nil {
		return nil, err
	}
	tasks, err := params.tasks(env)
	if err != nil {
		return nil, err
	}
	tr, err := RunCompare(tasks, pick(params.CPU, CPU), pick(params.GPU, GPU))
	if err != nil {
		return nil, err
	}
	return sim.StaticOf(tr), nil
}
