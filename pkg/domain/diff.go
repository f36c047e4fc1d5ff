package domain

// HeaderDiff represents the changes between two snapshot headers.
// It is designed to be serialized to JSON for partial updates on the client.
type HeaderDiff struct {
	// Tick is always present to identify the target.
	Tick int `json:"tick"`

	// Phase is set only when it changed.
	Phase *Phase `json:"phase,omitempty"`

	// LogAppended contains *new* log lines.
	// Logs are append-only between consecutive ticks of one run.
	LogAppended []string `json:"log,omitempty"`

	// Reset is true when the new header does not extend the old one
	// (reset, scenario switch or restart).
	Reset bool `json:"reset,omitempty"`
}

// Diff calculates the difference between oldHead and newHead.
// If oldHead is nil, it returns a diff representing the entire newHead (initial load).
func Diff(oldHead *Header, newHead Header) *HeaderDiff {
	diff := &HeaderDiff{Tick: newHead.Tick}

	if oldHead == nil {
		diff.Phase = &newHead.Phase
		diff.LogAppended = newHead.Log
		return diff
	}

	if newHead.Tick < oldHead.Tick || len(newHead.Log) < len(oldHead.Log) {
		diff.Reset = true
		diff.Phase = &newHead.Phase
		diff.LogAppended = newHead.Log
		return diff
	}

	if oldHead.Phase != newHead.Phase {
		diff.Phase = &newHead.Phase
	}
	if len(newHead.Log) > len(oldHead.Log) {
		diff.LogAppended = newHead.Log[len(oldHead.Log):]
	}

	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *HeaderDiff) IsEmpty() bool {
	return d.Phase == nil && len(d.LogAppended) == 0 && !d.Reset
}
