package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"provq/internal/catalog"
	"provq/internal/config"
	"provq/internal/logging"
	"provq/internal/toon"
)

var cratesCmd = &cobra.Command{
	Use:   "crates",
	Short: "Manage the catalog of registered crates",
	Long: `The catalog maps short names to crate directories so queries can say
--crate <name> instead of a path. It lives in a per-user SQLite database
created on first use.`,
}

var cratesAddCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Register a crate directory under a name",
	Args:  cobra.ExactArgs(2),
	RunE:  runCratesAdd,
}

var cratesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered crates",
	Args:  cobra.NoArgs,
	RunE:  runCratesList,
}

var cratesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a crate from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runCratesRemove,
}

func init() {
	cratesCmd.AddCommand(cratesAddCmd)
	cratesCmd.AddCommand(cratesListCmd)
	cratesCmd.AddCommand(cratesRemoveCmd)
	rootCmd.AddCommand(cratesCmd)
}

// withCatalog runs fn against the per-user catalog. Catalog commands do
// not load a crate, so they build their own logger.
func withCatalog(fn func(*catalog.Catalog, *logging.Logger) error) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}
	logger := newCLILogger(cfg)

	cat, err := openCatalog(logger)
	if err != nil {
		return err
	}
	defer func() { _ = cat.Close() }()

	return fn(cat, logger)
}

func runCratesAdd(cmd *cobra.Command, args []string) error {
	return withCatalog(func(cat *catalog.Catalog, logger *logging.Logger) error {
		if err := cat.Register(args[0], args[1]); err != nil {
			return err
		}
		entry, _, err := cat.Lookup(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Registered %s -> %s\n", entry.Name, entry.Path)
		return nil
	})
}

func runCratesList(cmd *cobra.Command, args []string) error {
	return withCatalog(func(cat *catalog.Catalog, logger *logging.Logger) error {
		entries, err := cat.List()
		if err != nil {
			return err
		}
		out, err := FormatResult(entries, entries, listFormat(), toon.DefaultOptions())
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	})
}

func runCratesRemove(cmd *cobra.Command, args []string) error {
	return withCatalog(func(cat *catalog.Catalog, logger *logging.Logger) error {
		removed, err := cat.Remove(args[0])
		if err != nil {
			return err
		}
		if !removed {
			fmt.Printf("No crate named %q\n", args[0])
			return nil
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	})
}

func listFormat() string {
	if formatFlag != "" {
		return formatFlag
	}
	return "human"
}
