package domain

// Phase is the status tag carried by every snapshot.
type Phase string

const (
	PhaseIdle          Phase = "idle"           // Before any step has been consumed
	PhaseRunning       Phase = "running"        // Non-terminal progress
	PhaseFound         Phase = "found"          // Search hit
	PhaseNotFound      Phase = "not-found"      // Search range exhausted
	PhaseComplete      Phase = "complete"       // Algorithm finished normally
	PhaseCycleDetected Phase = "cycle-detected" // Dependency graph is not a DAG
	PhaseDisconnected  Phase = "disconnected"   // No spanning structure exists
)

// Terminal reports whether no further step can follow a snapshot in this phase.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseFound, PhaseNotFound, PhaseComplete, PhaseCycleDetected, PhaseDisconnected:
		return true
	}
	return false
}

// Tag is the per-element visual/semantic marker a view colors by.
type Tag string

const (
	TagPending    Tag = "pending"
	TagReady      Tag = "ready"
	TagRunning    Tag = "running"
	TagDone       Tag = "done"
	TagUnvisited  Tag = "unvisited"
	TagFrontier   Tag = "frontier"
	TagCurrent    Tag = "current"
	TagVisited    Tag = "visited"
	TagCandidate  Tag = "candidate"
	TagAccepted   Tag = "accepted"
	TagRejected   Tag = "rejected"
	TagEliminated Tag = "eliminated"
	TagActive     Tag = "active"
	TagFound      Tag = "found"
	TagFilled     Tag = "filled"
	TagDependency Tag = "dependency"
)

// Step describes the transition that produced a snapshot.
// It is never modified after the snapshot carrying it has been emitted.
type Step struct {
	Description string            `json:"description"`
	Changed     []string          `json:"changed,omitempty"`
	Before      map[string]string `json:"before,omitempty"`
	After       map[string]string `json:"after,omitempty"`
}

// Header holds the fields shared by every simulation state.
// Simulation states embed it, which makes them satisfy Snapshot.
type Header struct {
	// Tick is the number of steps applied since initialization.
	Tick int `json:"tick"`

	// Phase marks idle/running/terminal status.
	Phase Phase `json:"phase"`

	// Step is the transition that produced this snapshot (zero for the initial one).
	Step Step `json:"step"`

	// Log is the human-readable trace of every step so far, oldest first.
	Log []string `json:"log,omitempty"`
}

// Head returns the header itself.
func (h Header) Head() Header { return h }

// Next derives the header of the following snapshot.
// The log slice is copied so earlier snapshots keep their own history.
func (h Header) Next(phase Phase, step Step) Header {
	log := make([]string, len(h.Log), len(h.Log)+1)
	copy(log, h.Log)
	log = append(log, step.Description)
	return Header{
		Tick:  h.Tick + 1,
		Phase: phase,
		Step:  step,
		Log:   log,
	}
}

// Snapshot is an immutable-by-convention view of a simulation at one tick.
type Snapshot interface {
	Head() Header
}
