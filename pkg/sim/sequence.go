package sim

import (
	"strconv"
	"sync"
)

// Sequence is a monotonically increasing id generator.
// One Sequence is created per prepared run so ids never leak between tests or sessions.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   uint64
}

// NewSequence creates a sequence whose ids look like prefix1, prefix2, ...
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Next returns the next id.
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.prefix + strconv.FormatUint(s.next, 10)
}
