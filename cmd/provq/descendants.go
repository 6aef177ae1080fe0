package main

import (
	"github.com/spf13/cobra"

	"provq/internal/toon"
)

var descendantsMaxDepth int

var descendantsCmd = &cobra.Command{
	Use:   "descendants <selector>",
	Short: "Walk downstream provenance of a file",
	Long: `Walk the provenance graph downstream from the selected files: every
file, dataset, and action derived from them, with used/generated edges.
The result also lists the derived files that carry a content hash.
--max-depth bounds the walk in action hops; 0 returns only the matched
files, a negative value removes the bound.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescendants,
}

func init() {
	descendantsCmd.Flags().IntVar(&descendantsMaxDepth, "max-depth", -1, "traversal bound in action hops (negative = unlimited)")
	rootCmd.AddCommand(descendantsCmd)
}

func runDescendants(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	depth := ws.cfg.Query.MaxDepth
	if cmd.Flags().Changed("max-depth") {
		depth = descendantsMaxDepth
	}

	graph := ws.engine.FileDescendants(args[0], depth)
	return ws.print(graph, toon.FileDescendantsPayload(args[0], graph))
}
