package main

import (
	"github.com/spf13/cobra"

	"provq/internal/toon"
)

var lineageCmd = &cobra.Command{
	Use:   "lineage <selector>",
	Short: "Show the action that directly produced a file",
	Long: `Resolve a file selector and report, for each match, the CreateAction
that lists it in its result: the action, the tool it ran, its inputs
partitioned by kind, and the site ids found among its parameters.

The selector is tried as an exact @id, then an exact alternateName, then
an alternateName substring. A file no action produced is still reported,
with a note instead of a producer.`,
	Args: cobra.ExactArgs(1),
	RunE: runLineage,
}

func init() {
	rootCmd.AddCommand(lineageCmd)
}

func runLineage(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	records := ws.engine.FileLineage(args[0])
	return ws.print(records, toon.FileLineagePayload(args[0], records))
}
