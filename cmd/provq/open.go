package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var openAsTable bool

var openCmd = &cobra.Command{
	Use:   "open <selector>",
	Short: "Read the content of a crate artifact",
	Long: `Resolve a file selector and read the first match that exists on disk
under the crate root. Text is printed as-is; --table parses a CSV
artifact into header and rows.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().BoolVar(&openAsTable, "table", false, "parse a CSV artifact into header and rows")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	if openAsTable {
		table, err := ws.reader.ReadTable(args[0])
		if err != nil {
			return err
		}
		if table == nil {
			return fmt.Errorf("no readable file matches %q", args[0])
		}
		return ws.print(table, table)
	}

	text, err := ws.reader.ReadText(args[0])
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("no readable file matches %q", args[0])
	}
	fmt.Print(text)
	return nil
}
