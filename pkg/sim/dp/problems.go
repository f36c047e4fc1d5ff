package dp

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/aretw0/algoviz/pkg/sim"
)

// RunLCS fills the longest common subsequence table of a and b.
func RunLCS(a, b string) *sim.Trace[State] {
	ra, rb := []rune(a), []rune(b)
	return fill(spec{
		problem:   LCS,
		rowLabels: labels("∅", ra),
		colLabels: labels("∅", rb),
		base:      func(int, int) int { return 0 },
		cell: func(t [][]int, i, j int) (int, []Cell, string) {
			if ra[i-1] == rb[j-1] {
				return t[i-1][j-1] + 1, []Cell{{i - 1, j - 1}}, fmt.Sprintf("%q matches: diagonal + 1", ra[i-1])
			}
			up, left := t[i-1][j], t[i][j-1]
			return max(up, left), []Cell{{i - 1, j}, {i, j - 1}}, "mismatch: max(up, left)"
		},
		solve: func(t [][]int) []string {
			var out []string
			i, j := len(ra), len(rb)
			for i > 0 && j > 0 {
				switch {
				case ra[i-1] == rb[j-1]:
					out = append(out, string(ra[i-1]))
					i, j = i-1, j-1
				case t[i-1][j] >= t[i][j-1]:
					i--
				default:
					j--
				}
			}
			slices.Reverse(out)
			return out
		},
	})
}

// RunEditDistance fills the Levenshtein distance table of a and b.
func RunEditDistance(a, b string) *sim.Trace[State] {
	ra, rb := []rune(a), []rune(b)
	return fill(spec{
		problem:   EditDistance,
		rowLabels: labels("∅", ra),
		colLabels: labels("∅", rb),
		base: func(i, j int) int {
			if i == 0 {
				return j
			}
			return i
		},
		cell: func(t [][]int, i, j int) (int, []Cell, string) {
			if ra[i-1] == rb[j-1] {
				return t[i-1][j-1], []Cell{{i - 1, j - 1}}, fmt.Sprintf("%q matches: copy diagonal", ra[i-1])
			}
			v := 1 + min(t[i-1][j], t[i][j-1], t[i-1][j-1])
			return v, []Cell{{i - 1, j}, {i, j - 1}, {i - 1, j - 1}}, "1 + min(delete, insert, replace)"
		},
	})
}

// Item is one knapsack entry.
type Item struct {
	Weight int `mapstructure:"weight" json:"weight" validate:"gte=1"`
	Value  int `mapstructure:"value" json:"value" validate:"gte=0"`
}

// RunKnapsack fills the 0/1 knapsack table. Rows are items, columns capacities.
func RunKnapsack(items []Item, capacity int) *sim.Trace[State] {
	rows := make([]string, 0, len(items)+1)
	rows = append(rows, "∅")
	for i, it := range items {
		rows = append(rows, fmt.Sprintf("#%d w%d v%d", i+1, it.Weight, it.Value))
	}
	cols := make([]string, capacity+1)
	for w := range cols {
		cols[w] = strconv.Itoa(w)
	}

	return fill(spec{
		problem:   Knapsack,
		rowLabels: rows,
		colLabels: cols,
		base:      func(int, int) int { return 0 },
		cell: func(t [][]int, i, w int) (int, []Cell, string) {
			it := items[i-1]
			skip := t[i-1][w]
			if it.Weight > w {
				return skip, []Cell{{i - 1, w}}, fmt.Sprintf("item %d does not fit", i)
			}
			take := t[i-1][w-it.Weight] + it.Value
			reads := []Cell{{i - 1, w}, {i - 1, w - it.Weight}}
			if take > skip {
				return take, reads, fmt.Sprintf("take item %d (%d > %d)", i, take, skip)
			}
			return skip, reads, fmt.Sprintf("skip item %d (%d >= %d)", i, skip, take)
		},
		solve: func(t [][]int) []string {
			var out []string
			w := capacity
			for i := len(items); i > 0; i-- {
				if t[i][w] != t[i-1][w] {
					out = append(out, fmt.Sprintf("#%d", i))
					w -= items[i-1].Weight
				}
			}
			slices.Reverse(out)
			return out
		},
	})
}
