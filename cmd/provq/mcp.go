package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"provq/internal/mcp"
	"provq/internal/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Start a Model Context Protocol server speaking JSON-RPC 2.0 over
stdin/stdout. The server exposes the provenance tools:

  getFileLineage     - action that produced a file, tool, inputs, sites
  getFileAncestry    - upstream provenance subgraph
  getFileDescendants - downstream provenance subgraph
  getSiteArtifacts   - site-centric view of the crate
  listImageFiles     - files with an image media type
  readFile           - artifact content as text or a parsed table

Logs go to stderr, since stdout carries the protocol.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	slogger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(ws.cfg.Logging.Level),
	}))

	server := mcp.NewServer(version.Version, ws.engine, ws.reader, ws.cfg, slogger)
	slogger.Info("starting MCP server", "session", server.SessionID())
	return server.Start()
}

func slogLevel(level string) slog.Level {
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
