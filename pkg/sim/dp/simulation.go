package dp

import (
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/sim"
)

// StringParams is the input of the two-string problems.
type StringParams struct {
	A string `mapstructure:"a" validate:"max=32"`
	B string `mapstructure:"b" validate:"max=32"`
}

// KnapsackParams is the input of the knapsack problem.
type KnapsackParams struct {
	Items    []Item `mapstructure:"items" validate:"max=20,dive"`
	Capacity int    `mapstructure:"capacity" validate:"gte=0,lte=100"`
}

// Simulation is one DP problem.
type Simulation struct {
	problem Problem
}

// NewLCS returns the longest common subsequence simulation.
func NewLCS() *Simulation { return &Simulation{problem: LCS} }

// NewKnapsack returns the 0/1 knapsack simulation.
func NewKnapsack() *Simulation { return &Simulation{problem: Knapsack} }

// NewEditDistance returns the edit distance simulation.
func NewEditDistance() *Simulation { return &Simulation{problem: EditDistance} }

func (s *Simulation) Info() sim.Info {
	switch s.problem {
	case LCS:
		return sim.Info{ID: string(LCS), Title: "Longest Common Subsequence",
			Description: "Fill the LCS table of two strings, one cell per tick."}
	case Knapsack:
		return sim.Info{ID: string(Knapsack), Title: "0/1 Knapsack",
			Description: "Best value per item prefix and capacity, one cell per tick."}
	default:
		return sim.Info{ID: string(EditDistance), Title: "Edit Distance",
			Description: "Levenshtein distance between two strings, one cell per tick."}
	}
}

func (s *Simulation) Presets() []scenario.Preset {
	switch s.problem {
	case LCS:
		return []scenario.Preset{
			{Name: "classic", Description: "ABCBDAB vs BDCABA", Params: map[string]any{"a": "ABCBDAB", "b": "BDCABA"}},
			{Name: "dna", Description: "Two short DNA strands", Params: map[string]any{"a": "GATTACA", "b": "TACGATA"}},
			{Name: "empty", Description: "One empty string", Params: map[string]any{"a": "", "b": "ABC"}},
		}
	case Knapsack:
		return []scenario.Preset{
			{Name: "classic", Description: "Four items, capacity 7", Params: map[string]any{
				"capacity": 7,
				"items": []any{
					map[string]any{"weight": 1, "value": 1},
					map[string]any{"weight": 3, "value": 4},
					map[string]any{"weight": 4, "value": 5},
					map[string]any{"weight": 5, "value": 7},
				},
			}},
			{Name: "empty", Description: "No items", Params: map[string]any{"capacity": 5}},
		}
	default:
		return []scenario.Preset{
			{Name: "classic", Description: "kitten to sitting", Params: map[string]any{"a": "kitten", "b": "sitting"}},
			{Name: "same", Description: "Identical words", Params: map[string]any{"a": "graph", "b": "graph"}},
		}
	}
}

func (s *Simulation) Prepare(p scenario.Preset, _ sim.Env) (sim.Instance, error) {
	if s.problem == Knapsack {
		var params KnapsackParams
		if err := scenario.Decode(p.Params, &params); err != nil {
			return nil, err
		}
		return sim.StaticOf(RunKnapsack(params.Items, params.Capacity)), nil
	}

	var params StringParams
	if err := scenario.Decode(p.Params, &params); err != nil {
		return nil, err
	}
	if s.problem == LCS {
		return sim.StaticOf(RunLCS(params.A, params.B)), nil
	}
	return sim.StaticOf(RunEditDistance(params.A, params.B)), nil
}
