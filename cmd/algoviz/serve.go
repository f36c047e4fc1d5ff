package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/algoviz"
	"github.com/aretw0/algoviz/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP control API",
	Long: `Serves the catalog, session controls and a server-sent events stream of
snapshots. Sessions live in memory unless --redis or --badger is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		port, _ := cmd.Flags().GetString("port")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return app.Serve(ctx, cmd.OutOrStdout(), fmt.Sprintf(":%s", port), strings.TrimSpace(algoviz.Version))
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
