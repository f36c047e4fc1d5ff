package sim

import (
	"iter"

	"github.com/aretw0/algoviz/pkg/domain"
)

// Generator produces a lazy, finite sequence of states.
type Generator[S any] interface {
	// Initial returns the state before any step has been consumed.
	Initial() S

	// Next returns the following state, or false once the sequence is exhausted.
	Next() (S, bool)
}

// Trace is an eagerly materialized run.
type Trace[S any] struct {
	Initial S
	Steps   []S
}

// NewTrace starts a trace at the given initial state.
func NewTrace[S any](initial S) *Trace[S] {
	return &Trace[S]{Initial: initial}
}

// Emit appends a state and returns it so callers can keep advancing from it.
func (t *Trace[S]) Emit(s S) S {
	t.Steps = append(t.Steps, s)
	return s
}

// Len is the number of states including the initial one.
func (t *Trace[S]) Len() int { return len(t.Steps) + 1 }

// Last returns the final state of the run.
func (t *Trace[S]) Last() S {
	if len(t.Steps) == 0 {
		return t.Initial
	}
	return t.Steps[len(t.Steps)-1]
}

// All iterates the initial state followed by every step.
func (t *Trace[S]) All() iter.Seq[S] {
	return func(yield func(S) bool) {
		if !yield(t.Initial) {
			return
		}
		for _, s := range t.Steps {
			if !yield(s) {
				return
			}
		}
	}
}

// Generator returns a fresh cursor over the trace.
func (t *Trace[S]) Generator() Generator[S] {
	return &cursor[S]{trace: t}
}

type cursor[S any] struct {
	trace *Trace[S]
	pos   int
}

func (c *cursor[S]) Initial() S { return c.trace.Initial }

func (c *cursor[S]) Next() (S, bool) {
	if c.pos >= len(c.trace.Steps) {
		var zero S
		return zero, false
	}
	s := c.trace.Steps[c.pos]
	c.pos++
	return s, true
}

// Drain consumes g and returns every state including the initial one.
func Drain[S any](g Generator[S]) []S {
	out := []S{g.Initial()}
	for {
		s, ok := g.Next()
		if !ok {
			return out
		}
		out = append(out, s)
	}
}

// Erase converts a typed trace into a trace of snapshots.
func Erase[S domain.Snapshot](t *Trace[S]) *Trace[domain.Snapshot] {
	out := &Trace[domain.Snapshot]{
		Initial: t.Initial,
		Steps:   make([]domain.Snapshot, len(t.Steps)),
	}
	for i, s := range t.Steps {
		out.Steps[i] = s
	}
	return out
}
