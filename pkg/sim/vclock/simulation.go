package vclock

import (
	"fmt"
	"maps"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/sim"
)

// ID is the registry id of the vector clock simulation.
const ID = "vector-clocks"

// Event is an applied action with its timestamp.
type Event struct {
	ID      string `json:"id"`
	Kind    Kind   `json:"kind"`
	Process int    `json:"process"`
	Message string `json:"message,omitempty"`
	Clock   Clock  `json:"clock"`
}

// State is one vector clock snapshot.
type State struct {
	domain.Header

	Processes int                   `json:"processes"`
	Clocks    []Clock               `json:"clocks"`
	Events    []Event               `json:"events"`
	InFlight  map[string]Clock      `json:"in_flight,omitempty"`
	Tags      map[string]domain.Tag `json:"tags"` // keyed by event id
	Remaining int                   `json:"remaining"`
}

// Current returns the event applied by the latest tick.
func (s State) Current() (Event, bool) {
	if s.Tick == 0 || len(s.Events) == 0 {
		return Event{}, false
	}
	return s.Events[len(s.Events)-1], true
}

// Run applies a validated script. Event ids are drawn from ids.
func Run(processes int, script []Action, ids *sim.Sequence) (*sim.Trace[State], error) {
	if err := Validate(processes, script); err != nil {
		return nil, err
	}

	clocks := make([]Clock, processes)
	for i := range clocks {
		clocks[i] = make(Clock, processes)
	}
	s := State{
		Header:    domain.Header{Phase: domain.PhaseIdle},
		Processes: processes,
		Clocks:    clocks,
		InFlight:  map[string]Clock{},
		Tags:      map[string]domain.Tag{},
		Remaining: len(script),
	}
	tr := sim.NewTrace(s)

	if len(script) == 0 {
		next := s
		next.Header = s.Next(domain.PhaseComplete, domain.Step{Description: "empty script"})
		tr.Emit(next)
		return tr, nil
	}

	for i, a := range script {
		next := s
		next.Clocks = make([]Clock, processes)
		copy(next.Clocks, s.Clocks)
		next.Events = append([]Event(nil), s.Events...)
		next.InFlight = maps.Clone(s.InFlight)

		// 1. Advance the owner's clock.
		before := s.Clocks[a.Process]
		var desc string
		switch a.Kind {
		case Local:
			next.Clocks[a.Process] = before.Tick(a.Process)
			desc = fmt.Sprintf("P%d local event", a.Process)
		case Send:
			next.Clocks[a.Process] = before.Tick(a.Process)
			next.InFlight[a.Message] = next.Clocks[a.Process]
			desc = fmt.Sprintf("P%d sends %s", a.Process, a.Message)
		case Receive:
			msg := s.InFlight[a.Message]
			next.Clocks[a.Process] = before.Merge(msg).Tick(a.Process)
			delete(next.InFlight, a.Message)
			desc = fmt.Sprintf("P%d receives %s carrying %s", a.Process, a.Message, msg)
		}

		ev := Event{ID: ids.Next(), Kind: a.Kind, Process: a.Process, Message: a.Message, Clock: next.Clocks[a.Process]}
		next.Events = append(next.Events, ev)
		next.Remaining = len(script) - i - 1

		// 2. Tag the causal past of the new event.
		next.Tags = make(map[string]domain.Tag, len(next.Events))
		for _, past := range s.Events {
			if HappensBefore(past.Clock, ev.Clock) {
				next.Tags[past.ID] = domain.TagDependency
			} else {
				next.Tags[past.ID] = domain.TagDone
			}
		}
		next.Tags[ev.ID] = domain.TagCurrent

		phase := domain.PhaseRunning
		if next.Remaining == 0 {
			phase = domain.PhaseComplete
		}
		next.Header = s.Next(phase, domain.Step{
			Description: fmt.Sprintf("%s: %s -> %s", desc, before, ev.Clock),
			Changed:     []string{ev.ID, fmt.Sprintf("p%d", a.Process)},
			Before:      map[string]string{fmt.Sprintf("p%d", a.Process): before.String()},
			After:       map[string]string{fmt.Sprintf("p%d", a.Process): ev.Clock.String()},
		})
		s = tr.Emit(next)
	}
	return tr, nil
}

// Params is the decoded scenario input.
type Params struct {
	Processes int      `mapstructure:"processes" validate:"gte=1,lte=8"`
	Script    []Action `mapstructure:"script" validate:"max=64,dive"`
	Random    int      `mapstructure:"random" validate:"gte=0,lte=64"` // number of random actions
}

// Simulation is the vector clock engine.
type Simulation struct{}

// New returns the vector clock simulation.
func New() *Simulation { return &Simulation{} }

func (*Simulation) Info() sim.Info {
	return sim.Info{
		ID:          ID,
		Title:       "Vector Clocks",
		Description: "Track causality between processes exchanging messages.",
	}
}

func act(kind Kind, p int, msg string) map[string]any {
	m := map[string]any{"kind": string(kind), "process": p}
	if msg != "" {
		m["message"] = msg
	}
	return m
}

func (*Simulation) Presets() []scenario.Preset {
	return []scenario.Preset{
		{Name: "chat", Description: "Three processes passing two messages", Params: map[string]any{
			"processes": 3,
			"script": []any{
				act(Local, 0, ""),
				act(Send, 0, "hello"),
				act(Local, 2, ""),
				act(Receive, 1, "hello"),
				act(Send, 1, "reply"),
				act(Local, 0, ""),
				act(Receive, 2, "reply"),
				act(Send, 2, "ack"),
				act(Receive, 0, "ack"),
			},
		}},
		{Name: "concurrent", Description: "Two processes that never talk", Params: map[string]any{
			"processes": 2,
			"script":    []any{act(Local, 0, ""), act(Local, 1, ""), act(Local, 0, ""), act(Local, 1, "")},
		}},
		{Name: "random", Description: "Random script over four processes", Params: map[string]any{"processes": 4, "random": 20}},
	}
}

func (*Simulation) Prepare(p scenario.Preset, env sim.Env) (sim.Instance, error) {
	var params Params
	if err := scenario.Decode(p.Params, &params); err != nil {
		return nil, err
	}
	script := params.Script
	if params.Random > 0 {
		if env.Rand == nil {
			return nil, fmt.Errorf("%w: random scenario needs a random source", domain.ErrInvalidParameter)
		}
		script = RandomScript(env, params.Processes, params.Random)
	}
	ids := env.IDs
	if ids == nil {
		ids = sim.NewSequence("e")
	}
	tr, err := Run(params.Processes, script, ids)
	if err != nil {
		return nil, err
	}
	return sim.StaticOf(tr), nil
}
