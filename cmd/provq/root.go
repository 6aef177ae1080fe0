package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"provq/internal/catalog"
	"provq/internal/config"
	"provq/internal/crate"
	"provq/internal/files"
	"provq/internal/loader"
	"provq/internal/logging"
	"provq/internal/query"
	"provq/internal/toon"
	"provq/internal/version"
)

var (
	crateFlag     string
	formatFlag    string
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "provq",
	Short: "Query provenance in RO-Crate research data packages",
	Long: `provq answers provenance questions over an RO-Crate manifest: which
action produced a file, what it was derived from, what was derived from
it, and what a given site's artifacts look like.

The crate is selected with --crate, which accepts a directory containing
ro-crate-metadata.json, a metadata file path, or the name of a crate
registered with "provq crates add".`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.PersistentFlags().StringVar(&crateFlag, "crate", "", "crate directory, metadata file, or registered crate name")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "output format: json, human, yaml, toml, toon")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "log format: json, human")
}

// workspace bundles everything a query command needs: the loaded crate,
// the engine over it, and the effective configuration.
type workspace struct {
	cfg    *config.Config
	logger *logging.Logger
	crate  *crate.Crate
	engine *query.Engine
	reader *files.Reader
}

// newCLILogger builds the logger from config and flags; flags win.
func newCLILogger(cfg *config.Config) *logging.Logger {
	format := cfg.Logging.Format
	if logFormatFlag != "" {
		format = logFormatFlag
	}
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(format),
		Level:  logging.Level(level),
	})
}

// openWorkspace loads configuration, resolves the crate reference, and
// wires the query engine and artifact reader.
func openWorkspace() (*workspace, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := newCLILogger(cfg)

	c, err := loadCrate(cfg, logger)
	if err != nil {
		return nil, err
	}

	engine := query.NewEngine(c, logger, cfg)
	return &workspace{
		cfg:    cfg,
		logger: logger,
		crate:  c,
		engine: engine,
		reader: files.NewReader(c, engine.ResolveFiles),
	}, nil
}

// loadCrate resolves --crate to a filesystem location. A path that does
// not exist on disk is tried as a registered crate name.
func loadCrate(cfg *config.Config, logger *logging.Logger) (*crate.Crate, error) {
	ref := crateFlag
	if ref == "" {
		ref = cfg.CratePath
	}

	l := loader.New(logger)

	info, err := os.Stat(ref)
	if err == nil {
		if info.IsDir() {
			return l.FromDir(ref)
		}
		return l.FromFile(ref)
	}

	cat, catErr := openCatalog(logger)
	if catErr != nil {
		return nil, catErr
	}
	defer func() { _ = cat.Close() }()

	entry, found, lookErr := cat.Lookup(ref)
	if lookErr != nil {
		return nil, lookErr
	}
	if !found {
		return nil, fmt.Errorf("crate %q: not a path and not a registered crate", ref)
	}
	if touchErr := cat.Touch(ref); touchErr != nil {
		logger.Warn("cannot update crate usage time", map[string]interface{}{
			"crate": ref,
			"error": touchErr.Error(),
		})
	}
	return l.FromDir(entry.Path)
}

// openCatalog opens the per-user crate catalog.
func openCatalog(logger *logging.Logger) (*catalog.Catalog, error) {
	root, err := os.UserHomeDir()
	if err != nil {
		root = "."
	}
	return catalog.Open(root, logger)
}

// outputFormat returns the effective output format for this invocation.
func (w *workspace) outputFormat() string {
	if formatFlag != "" {
		return formatFlag
	}
	if w.cfg.Output.Format != "" {
		return w.cfg.Output.Format
	}
	return "json"
}

func (w *workspace) toonOptions() toon.Options {
	return toon.Options{
		Indent:       w.cfg.Toon.Indent,
		Delimiter:    w.cfg.Toon.Delimiter,
		LengthMarker: w.cfg.Toon.LengthMarker,
	}
}

// print renders a result in the selected format. TOON output uses the
// reshaped payload; every other format renders the raw value.
func (w *workspace) print(v, toonPayload interface{}) error {
	out, err := FormatResult(v, toonPayload, w.outputFormat(), w.toonOptions())
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
