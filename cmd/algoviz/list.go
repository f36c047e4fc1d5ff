package main

import (
	"fmt"
	"os"

	"github.com/aretw0/algoviz/internal/cli"
	"github.com/aretw0/algoviz/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog of domains and modules",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if cli.IsTerminal(os.Stdout) {
			tui.PrintBanner(out)
		}
		rendered, err := tui.NewRenderer()(tui.CatalogMarkdown(app.Catalog))
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios <module>",
	Short: "List the scenario presets of a module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		presets, err := app.Registry.Presets(args[0])
		if err != nil {
			return err
		}
		for _, p := range presets {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", p.Name, p.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scenariosCmd)
}
