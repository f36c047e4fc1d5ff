package main

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/algoviz/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "algoviz",
	Short: "algoviz plays deterministic algorithm animations",
	Long: `algoviz turns algorithms (search, graph traversal, spanning trees, dynamic
programming, vector clocks, task scheduling) into replayable step-by-step
animations you can play in the terminal, export, or serve over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("catalog", "", "Catalog YAML file (defaults to the embedded catalog)")
	rootCmd.PersistentFlags().String("scenarios", "", "Extra scenarios file (YAML or JSON)")
	rootCmd.PersistentFlags().String("redis", "", "Redis URL for sessions, e.g. redis://localhost:6379/0")
	rootCmd.PersistentFlags().String("badger", "", "Directory for the embedded session store")
	rootCmd.PersistentFlags().Duration("session-ttl", 24*time.Hour, "Expiry of persisted sessions (0 disables)")
}

// newApp builds the application from the persistent flags.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	flags := cmd.Flags()
	debug, _ := flags.GetBool("debug")
	catalog, _ := flags.GetString("catalog")
	scenarios, _ := flags.GetString("scenarios")
	redisURL, _ := flags.GetString("redis")
	badgerDir, _ := flags.GetString("badger")
	ttl, _ := flags.GetDuration("session-ttl")

	return cli.NewApp(cli.Options{
		Debug:      debug,
		Catalog:    catalog,
		Scenarios:  scenarios,
		Redis:      redisURL,
		Badger:     badgerDir,
		SessionTTL: ttl,
	})
}

// addRunFlags registers the flags shared by commands that prepare a simulation.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("scenario", "", "Scenario preset (defaults to the first one)")
	cmd.Flags().Int64("seed", 0, "Seed for randomized scenarios")
}

func runRequest(cmd *cobra.Command, module string) cli.RunRequest {
	scenario, _ := cmd.Flags().GetString("scenario")
	seed, _ := cmd.Flags().GetInt64("seed")
	return cli.RunRequest{Module: module, Scenario: scenario, Seed: seed}
}
