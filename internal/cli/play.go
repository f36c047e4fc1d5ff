package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aretw0/algoviz"
	"github.com/aretw0/algoviz/internal/presentation/tui"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/driver"
)

// RunRequest selects what to simulate.
type RunRequest = algoviz.Request

// Play runs req in the interactive player.
func (a *App) Play(ctx context.Context, req RunRequest) error {
	d, err := a.Open(req)
	if err != nil {
		return err
	}
	defer d.Close()

	names, err := a.Scenarios(req.Module)
	if err != nil {
		return err
	}
	return tui.Run(ctx, d, req.Module, names)
}

// PlayHeadless auto-plays req and prints every frame to w until the
// simulation reaches a terminal phase or ctx is done.
func (a *App) PlayHeadless(ctx context.Context, w io.Writer, req RunRequest, opts ...driver.Option) error {
	d, err := a.Open(req, opts...)
	if err != nil {
		return err
	}
	defer d.Close()

	done := make(chan struct{})
	var once sync.Once
	unsubscribe := d.Subscribe(func(s domain.Snapshot) {
		fmt.Fprintln(w, tui.RenderFrame(s))
		if s.Head().Phase.Terminal() {
			once.Do(func() { close(done) })
		}
	})
	defer unsubscribe()

	printSystemMessage(w, "%s · %s", req.Module, d.Scenario())
	fmt.Fprintln(w, tui.RenderFrame(d.Current()))
	if err := d.Play(); err != nil {
		return err
	}

	select {
	case <-done:
		printSystemMessage(w, "%s after %d ticks", d.Current().Head().Phase, d.Cursor())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
