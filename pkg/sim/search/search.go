// Package search animates binary search over a sorted integer slice.
//
// Each tick performs exactly one comparison against the middle of the
// current range, or emits the not-found verdict once the range is empty.
package search

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/sim"
)

// ID is the registry id of the binary search simulation.
const ID = "binary-search"

// MaxValues bounds the input size of a scenario.
const MaxValues = 1024

// State is one binary search snapshot.
type State struct {
	domain.Header

	Values []int        `json:"values"`
	Target int          `json:"target"`
	Low    int          `json:"low"`
	High   int          `json:"high"`
	Mid    int          `json:"mid"` // -1 before the first comparison
	Tags   []domain.Tag `json:"tags"`

	Comparisons int `json:"comparisons"`
	FoundIndex  int `json:"found_index"` // -1 unless Phase is found
}

// Params is the decoded scenario input.
type Params struct {
	Values []int `mapstructure:"values" validate:"max=1024"`
	Size   int   `mapstructure:"size" validate:"gte=0,lte=1024"`
	Random bool  `mapstructure:"random"`
	Target *int  `mapstructure:"target"`
}

// Run produces the full trace for values and target.
// values must be sorted ascending.
func Run(values []int, target int) *sim.Trace[State] {
	values = slices.Clone(values)
	tags := make([]domain.Tag, len(values))
	for i := range tags {
		tags[i] = domain.TagCandidate
	}

	s := State{
		Header:     domain.Header{Phase: domain.PhaseIdle},
		Values:     values,
		Target:     target,
		Low:        0,
		High:       len(values) - 1,
		Mid:        -1,
		Tags:       tags,
		FoundIndex: -1,
	}
	tr := sim.NewTrace(s)

	for !s.Phase.Terminal() {
		s = tr.Emit(step(s))
	}
	return tr
}

func step(s State) State {
	next := s
	next.Tags = slices.Clone(s.Tags)

	// 1. Empty range: the target is absent.
	if s.Low > s.High {
		next.Mid = -1
		next.Header = s.Next(domain.PhaseNotFound, domain.Step{
			Description: fmt.Sprintf("range [%d, %d] is empty: %d not found", s.Low, s.High, s.Target),
		})
		return next
	}

	// 2. Compare the middle element.
	mid := s.Low + (s.High-s.Low)/2
	next.Mid = mid
	next.Comparisons = s.Comparisons + 1
	v := s.Values[mid]
	before := bounds(s.Low, s.High)

	switch {
	case v == s.Target:
		next.Tags[mid] = domain.TagFound
		next.FoundIndex = mid
		next.Header = s.Next(domain.PhaseFound, domain.Step{
			Description: fmt.Sprintf("values[%d] = %d equals target", mid, v),
			Changed:     []string{index(mid)},
			Before:      before,
			After:       before,
		})
	case v < s.Target:
		eliminate(next.Tags, s.Low, mid)
		next.Low = mid + 1
		next.Header = s.Next(domain.PhaseRunning, domain.Step{
			Description: fmt.Sprintf("values[%d] = %d < %d: search right half", mid, v, s.Target),
			Changed:     indices(s.Low, mid),
			Before:      before,
			After:       bounds(next.Low, next.High),
		})
	default:
		eliminate(next.Tags, mid, s.High)
		next.High = mid - 1
		next.Header = s.Next(domain.PhaseRunning, domain.Step{
			Description: fmt.Sprintf("values[%d] = %d > %d: search left half", mid, v, s.Target),
			Changed:     indices(mid, s.High),
			Before:      before,
			After:       bounds(next.Low, next.High),
		})
	}
	return next
}

func eliminate(tags []domain.Tag, from, to int) {
	for i := from; i <= to; i++ {
		tags[i] = domain.TagEliminated
	}
}

func bounds(low, high int) map[string]string {
	return map[string]string{"low": strconv.Itoa(low), "high": strconv.Itoa(high)}
}

func index(i int) string { return "i" + strconv.Itoa(i) }

func indices(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, index(i))
	}
	return out
}

// Simulation is the binary search engine.
type Simulation struct{}

// New returns the binary search simulation.
func New() *Simulation { return &Simulation{} }

func (*Simulation) Info() sim.Info {
	return sim.Info{
		ID:          ID,
		Title:       "Binary Search",
		Description: "Halve a sorted range until the target is found or the range is empty.",
	}
}

func (*Simulation) Presets() []scenario.Preset {
	classic := make([]any, 16)
	for i := range classic {
		classic[i] = (i + 1) * 10
	}
	return []scenario.Preset{
		{Name: "classic", Description: "16 sorted values, target present", Params: map[string]any{"values": classic, "target": 40}},
		{Name: "missing", Description: "16 sorted values, target absent", Params: map[string]any{"values": classic, "target": 85}},
		{Name: "single", Description: "One element", Params: map[string]any{"values": []any{42}, "target": 42}},
		{Name: "empty", Description: "No elements at all", Params: map[string]any{"values": []any{}, "target": 7}},
		{Name: "random", Description: "64 random sorted values, random present target", Params: map[string]any{"size": 64, "random": true}},
	}
}

func (*Simulation) Prepare(p scenario.Preset, env sim.Env) (sim.Instance, error) {
	var params Params
	if err := scenario.Decode(p.Params, &params); err != nil {
		return nil, err
	}

	values := params.Values
	if params.Random {
		if env.Rand == nil {
			return nil, fmt.Errorf("%w: random scenario needs a random source", domain.ErrInvalidParameter)
		}
		values = make([]int, params.Size)
		v := env.Rand.Intn(10)
		for i := range values {
			values[i] = v
			v += 1 + env.Rand.Intn(9)
		}
	}
	if !slices.IsSorted(values) {
		return nil, fmt.Errorf("%w: values must be sorted ascending", domain.ErrInvalidParameter)
	}

	var target int
	switch {
	case params.Target != nil:
		target = *params.Target
	case params.Random && len(values) > 0:
		target = values[env.Rand.Intn(len(values))]
	case params.Random:
		// Nothing to search: any target ends in not-found.
	default:
		return nil, fmt.Errorf("%w: target is required", domain.ErrInvalidParameter)
	}

	return sim.StaticOf(Run(values, target)), nil
}
