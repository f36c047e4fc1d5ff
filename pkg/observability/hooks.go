package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/algoviz/pkg/domain"
)

// LoggingHooks logs every lifecycle event. Ticks are logged at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(ctx context.Context, e *domain.TickEvent) {
			logger.DebugContext(ctx, "tick",
				"module", e.Module,
				"scenario", e.Scenario,
				"tick", e.Tick,
				"phase", e.Phase,
			)
		},
		OnStatusChange: func(ctx context.Context, e *domain.StatusEvent) {
			logger.InfoContext(ctx, "status_change",
				"module", e.Module,
				"from", e.From,
				"to", e.To,
			)
		},
		OnComplete: func(ctx context.Context, e *domain.TickEvent) {
			logger.InfoContext(ctx, "complete",
				"module", e.Module,
				"scenario", e.Scenario,
				"ticks", e.Tick,
				"phase", e.Phase,
			)
		},
	}
}

// Chain combines hooks so each callback runs in argument order.
func Chain(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range all {
		out.OnTick = chain(out.OnTick, h.OnTick)
		out.OnStatusChange = chain(out.OnStatusChange, h.OnStatusChange)
		out.OnComplete = chain(out.OnComplete, h.OnComplete)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
