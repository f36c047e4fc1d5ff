package domain

import "time"

// RunStatus is the driver state machine position.
type RunStatus string

const (
	RunIdle     RunStatus = "idle"
	RunRunning  RunStatus = "running"
	RunPaused   RunStatus = "paused"
	RunComplete RunStatus = "complete"
)

// Session is the persisted position of one driver.
// Because generators are deterministic, Module, Scenario, Seed and Cursor
// are enough to rebuild the exact current snapshot.
type Session struct {
	ID        string    `json:"id"`
	Module    string    `json:"module"`
	Scenario  string    `json:"scenario"`
	Seed      int64     `json:"seed"`
	Cursor    int       `json:"cursor"`
	Speed     float64   `json:"speed"`
	Status    RunStatus `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}
