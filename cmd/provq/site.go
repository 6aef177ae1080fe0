package main

import (
	"github.com/spf13/cobra"

	"provq/internal/toon"
)

var siteAllFiles bool

var siteCmd = &cobra.Command{
	Use:   "site <site-id>",
	Short: "Show every artifact associated with a site",
	Long: `Aggregate the crate around one site id: the site_id parameters that
carry it, datasets and files whose names mention it, the processing runs
tagged with it, and the lineage of its well-known outputs.

TOON output is compact by default; --include-all-files includes the
full parameter, dataset, file, and run listings.`,
	Args: cobra.ExactArgs(1),
	RunE: runSite,
}

func init() {
	siteCmd.Flags().BoolVar(&siteAllFiles, "include-all-files", false, "include full listings in TOON output")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	view := ws.engine.SiteArtifacts(args[0])
	return ws.print(view, toon.SiteSummaryPayload(view, siteAllFiles))
}
