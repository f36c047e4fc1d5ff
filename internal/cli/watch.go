package cli

import (
	"context"

	"github.com/aretw0/algoviz/pkg/scenario"
)

// WatchScenarios reloads the extra scenarios file whenever it changes.
// It blocks until ctx is done. Invalid edits are logged and the previous
// presets stay in effect.
func (a *App) WatchScenarios(ctx context.Context) error {
	if a.Options.Scenarios == "" {
		<-ctx.Done()
		return nil
	}
	changes, err := scenario.Watch(ctx, a.Options.Scenarios)
	if err != nil {
		return err
	}
	a.Logger.Info("Watching scenarios", "path", a.Options.Scenarios)
	for range changes {
		if err := a.ReloadScenarios(); err != nil {
			a.Logger.Warn("Scenario reload failed", "err", err)
			continue
		}
		a.Logger.Info("Scenarios reloaded", "path", a.Options.Scenarios)
	}
	return nil
}
