// Package vclock simulates vector clocks over a scripted set of processes.
//
// Each process keeps one counter per process. A local event or a send
// increments the owner's entry. A receive takes the element-wise maximum with
// the clock carried by the message and then increments the owner's entry.
package vclock

import (
	"slices"
	"strconv"
	"strings"
)

// Clock is one vector timestamp.
type Clock []int

// Relation is the causal order between two timestamps.
type Relation string

const (
	Equal      Relation = "equal"
	Before     Relation = "before"
	After      Relation = "after"
	Concurrent Relation = "concurrent"
)

// Compare returns exactly one relation between a and b.
// Clocks of different length are compared as if padded with zeros.
func Compare(a, b Clock) Relation {
	less, greater := false, false
	for i := range max(len(a), len(b)) {
		x, y := at(a, i), at(b, i)
		switch {
		case x < y:
			less = true
		case x > y:
			greater = true
		}
	}
	switch {
	case less && greater:
		return Concurrent
	case less:
		return Before
	case greater:
		return After
	default:
		return Equal
	}
}

// HappensBefore reports whether a causally precedes b.
func HappensBefore(a, b Clock) bool { return Compare(a, b) == Before }

// IsConcurrent reports whether neither of a and b precedes the other.
func IsConcurrent(a, b Clock) bool { return Compare(a, b) == Concurrent }

func at(c Clock, i int) int {
	if i < len(c) {
		return c[i]
	}
	return 0
}

// Tick increments the entry of process p and returns a new clock.
func (c Clock) Tick(p int) Clock {
	out := slices.Clone(c)
	out[p]++
	return out
}

// Merge returns the element-wise maximum of c and other.
func (c Clock) Merge(other Clock) Clock {
	out := slices.Clone(c)
	for i := range out {
		out[i] = max(out[i], at(other, i))
	}
	return out
}

func (c Clock) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
