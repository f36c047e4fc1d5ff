package main

import (
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace <module>",
	Short: "Print the full snapshot trace of a simulation as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.WriteTrace(cmd.OutOrStdout(), runRequest(cmd, args[0]))
	},
}

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <module>",
	Short: "Export a graph simulation as a Mermaid diagram",
	Long:  `Outputs a Mermaid diagram (graph LR) of the graph with the tags of one tick applied as styles.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		tick, _ := cmd.Flags().GetInt("tick")
		return app.WriteGraph(cmd.OutOrStdout(), runRequest(cmd, args[0]), tick)
	},
}

func init() {
	addRunFlags(traceCmd)
	addRunFlags(graphCmd)
	graphCmd.Flags().Int("tick", -1, "Tick to render (-1 for the last one)")
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(graphCmd)
}
