package main

import (
	"github.com/spf13/cobra"

	"provq/internal/toon"
)

var ancestryMaxDepth int

var ancestryCmd = &cobra.Command{
	Use:   "ancestry <selector>",
	Short: "Walk upstream provenance of a file",
	Long: `Walk the provenance graph upstream from the selected files: every
file, dataset, and action that contributed to them, with used/generated
edges. --max-depth bounds the walk in action hops; 0 returns only the
matched files, a negative value removes the bound.`,
	Args: cobra.ExactArgs(1),
	RunE: runAncestry,
}

func init() {
	ancestryCmd.Flags().IntVar(&ancestryMaxDepth, "max-depth", -1, "traversal bound in action hops (negative = unlimited)")
	rootCmd.AddCommand(ancestryCmd)
}

func runAncestry(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	depth := ws.cfg.Query.MaxDepth
	if cmd.Flags().Changed("max-depth") {
		depth = ancestryMaxDepth
	}

	graph := ws.engine.FileAncestry(args[0], depth)
	return ws.print(graph, toon.FileAncestryPayload(args[0], graph))
}
