// Package dp animates dynamic programming table fills.
//
// Row 0 and column 0 hold the base cases and are present in the initial
// snapshot. Every tick fills exactly one interior cell in row-major order and
// tags the cells its recurrence read. The tick that fills the last cell is
// the terminal one; inputs with no interior cell finish in a single tick.
package dp

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/sim"
)

// Problem selects the recurrence.
type Problem string

const (
	LCS          Problem = "lcs"
	Knapsack     Problem = "knapsack"
	EditDistance Problem = "edit-distance"
)

// Cell addresses one table entry.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ID is the entity id used in step records.
func (c Cell) ID() string { return fmt.Sprintf("r%dc%d", c.Row, c.Col) }

// State is one table fill snapshot.
type State struct {
	domain.Header

	Problem   Problem        `json:"problem"`
	RowLabels []string       `json:"row_labels"`
	ColLabels []string       `json:"col_labels"`
	Table     [][]int        `json:"table"`
	Tags      [][]domain.Tag `json:"tags"`
	Cell      *Cell          `json:"cell,omitempty"`
	Reads     []Cell         `json:"reads,omitempty"`
	Filled    int            `json:"filled"`
	Total     int            `json:"total"`

	// Result and Solution are set on the terminal snapshot.
	Result   int      `json:"result"`
	Solution []string `json:"solution,omitempty"`
}

// recurrence computes one interior cell from the table filled so far.
type recurrence func(t [][]int, i, j int) (value int, reads []Cell, why string)

// traceback extracts a solution from a complete table.
type traceback func(t [][]int) []string

type spec struct {
	problem   Problem
	rowLabels []string
	colLabels []string
	base      func(i, j int) int
	cell      recurrence
	solve     traceback
}

func fill(sp spec) *sim.Trace[State] {
	rows, cols := len(sp.rowLabels), len(sp.colLabels)
	table := make([][]int, rows)
	tags := make([][]domain.Tag, rows)
	for i := range table {
		table[i] = make([]int, cols)
		tags[i] = make([]domain.Tag, cols)
		for j := range table[i] {
			if i == 0 || j == 0 {
				table[i][j] = sp.base(i, j)
				tags[i][j] = domain.TagFilled
			} else {
				tags[i][j] = domain.TagPending
			}
		}
	}

	interior := max(rows-1, 0) * max(cols-1, 0)
	s := State{
		Header:    domain.Header{Phase: domain.PhaseIdle},
		Problem:   sp.problem,
		RowLabels: sp.rowLabels,
		ColLabels: sp.colLabels,
		Table:     table,
		Tags:      tags,
		Total:     interior,
	}
	tr := sim.NewTrace(s)

	if interior == 0 {
		next := s
		next.Result = table[rows-1][cols-1]
		next.Header = s.Next(domain.PhaseComplete, domain.Step{
			Description: fmt.Sprintf("nothing to fill: result %d", next.Result),
		})
		tr.Emit(next)
		return tr
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			next := s
			next.Table = cloneGrid(s.Table)
			next.Tags = cloneGrid(s.Tags)

			// 1. Clear the previous tick's highlights.
			if s.Cell != nil {
				next.Tags[s.Cell.Row][s.Cell.Col] = domain.TagFilled
			}
			for _, r := range s.Reads {
				next.Tags[r.Row][r.Col] = domain.TagFilled
			}

			// 2. Apply the recurrence.
			v, reads, why := sp.cell(s.Table, i, j)
			c := Cell{Row: i, Col: j}
			next.Table[i][j] = v
			next.Tags[i][j] = domain.TagCurrent
			for _, r := range reads {
				next.Tags[r.Row][r.Col] = domain.TagDependency
			}
			next.Cell = &c
			next.Reads = reads
			next.Filled = s.Filled + 1

			phase := domain.PhaseRunning
			desc := fmt.Sprintf("T[%d][%d] = %d: %s", i, j, v, why)
			if next.Filled == interior {
				phase = domain.PhaseComplete
				next.Result = v
				if sp.solve != nil {
					next.Solution = sp.solve(next.Table)
				}
				desc += fmt.Sprintf("; result %d", v)
			}
			ids := []string{c.ID()}
			for _, r := range reads {
				ids = append(ids, r.ID())
			}
			next.Header = s.Next(phase, domain.Step{
				Description: desc,
				Changed:     ids,
				Before:      map[string]string{c.ID(): ""},
				After:       map[string]string{c.ID(): strconv.Itoa(v)},
			})
			s = tr.Emit(next)
		}
	}
	return tr
}

func cloneGrid[T any](g [][]T) [][]T {
	out := make([][]T, len(g))
	for i, row := range g {
		out[i] = slices.Clone(row)
	}
	return out
}

func labels(prefix string, s []rune) []string {
	out := make([]string, 0, len(s)+1)
	out = append(out, prefix)
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
