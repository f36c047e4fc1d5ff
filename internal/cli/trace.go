package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/algoviz/internal/presentation/graph"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
)

// WriteTrace encodes the full trace of req as indented JSON.
func (a *App) WriteTrace(w io.Writer, req RunRequest) error {
	states, err := a.Trace(req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(states)
}

// WriteGraph renders the snapshot at tick as Mermaid. A negative tick
// selects the last snapshot.
func (a *App) WriteGraph(w io.Writer, req RunRequest, tick int) error {
	states, err := a.Trace(req)
	if err != nil {
		return err
	}
	if tick < 0 {
		tick = len(states) - 1
	}
	if tick >= len(states) {
		return fmt.Errorf("%w: tick %d out of range (last is %d)", domain.ErrInvalidParameter, tick, len(states)-1)
	}
	v, ok := states[tick].(graphs.Viewer)
	if !ok {
		return fmt.Errorf("%w: %s does not produce a graph", domain.ErrInvalidParameter, req.Module)
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(v.GraphView()))
	return err
}
