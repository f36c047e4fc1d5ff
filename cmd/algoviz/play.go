package main

import (
	"context"
	"os"

	"github.com/aretw0/algoviz/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <module>",
	Short: "Play a simulation in the terminal",
	Long: `Plays a simulation step by step. On a terminal an interactive player is
started (space play/pause, n step, r reset, +/- speed, tab scenario, q quit).
Otherwise, or with --headless, frames are printed until the run completes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		req := runRequest(cmd, args[0])
		req.Speed, _ = cmd.Flags().GetFloat64("speed")
		headless, _ := cmd.Flags().GetBool("headless")

		if headless || !cli.IsTerminal(os.Stdout) {
			err = app.PlayHeadless(ctx, cmd.OutOrStdout(), req)
		} else {
			err = app.Play(ctx, req)
		}
		return cli.HandleExecutionError(err)
	},
}

func init() {
	addRunFlags(playCmd)
	playCmd.Flags().Float64("speed", 1, "Playback speed factor")
	playCmd.Flags().Bool("headless", false, "Print frames instead of starting the interactive player")
	rootCmd.AddCommand(playCmd)
}
