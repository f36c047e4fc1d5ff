package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	httpadapter "github.com/aretw0/algoviz/pkg/adapters/http"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds graceful HTTP shutdown.
const ShutdownTimeout = 5 * time.Second

// Serve runs the HTTP host on addr until ctx is done.
func (a *App) Serve(ctx context.Context, w io.Writer, addr, version string) error {
	host, err := a.NewHost()
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.Logger.Warn("Shutdown incomplete", "err", err)
		}
	}()

	srv := httpadapter.NewServer(host.Manager, a.Registry, a.Catalog,
		httpadapter.WithLogger(a.Logger),
		httpadapter.WithMetrics(host.Prometheus),
		httpadapter.WithVersion(version),
	)
	g, gctx := errgroup.WithContext(ctx)
	server := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end with the server instead of holding Shutdown open.
		BaseContext: func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		printSystemMessage(w, "algoviz listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.WatchScenarios(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		printSystemMessage(w, "Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})

	return HandleExecutionError(g.Wait())
}
