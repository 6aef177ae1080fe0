// Package loader reads an RO-Crate metadata file from disk and builds the
// indexed in-memory crate the queries run against.
package loader

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"provq/internal/crate"
	"provq/internal/errors"
	"provq/internal/logging"
)

// MetadataBasename is the conventional manifest name inside a crate
// directory.
const MetadataBasename = "ro-crate-metadata.json"

// manifest is the decoded shape of an RO-Crate metadata document. Only the
// graph matters; the @context is not interpreted.
type manifest struct {
	Graph []*crate.Entity `json:"@graph"`
}

// Loader reads crates from disk.
type Loader struct {
	logger *logging.Logger
}

// New creates a loader. A nil logger discards load diagnostics.
func New(logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{logger: logger}
}

// FromDir loads the crate rooted at dir. It probes for the conventional
// metadata name, plain first, then gzipped.
func (l *Loader) FromDir(dir string) (*crate.Crate, error) {
	for _, name := range []string{MetadataBasename, MetadataBasename + ".gz"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return l.FromFile(path)
		}
	}
	return nil, errors.Newf(errors.CrateNotFound,
		"no %s found under %s", MetadataBasename, dir)
}

// FromFile loads a crate from an explicit metadata file. The crate's root
// directory is the file's directory. Files ending in .gz are decompressed
// transparently.
func (l *Loader) FromFile(path string) (*crate.Crate, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CrateNotFound, "metadata file not found: "+path, err)
		}
		return nil, errors.New(errors.CrateNotFound, "cannot open metadata file: "+path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.New(errors.MetadataInvalid, "metadata is not valid gzip: "+path, err)
		}
		defer gz.Close()
		r = gz
	}

	c, err := Decode(r, filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	l.logger.Info("crate loaded", map[string]interface{}{
		"path":     path,
		"entities": len(c.Graph()),
		"actions":  len(c.Actions()),
	})
	return c, nil
}

// Decode builds an indexed crate from a metadata document. An absent or
// empty @graph yields a valid empty crate; queries against it simply match
// nothing.
func Decode(r io.Reader, rootDir string) (*crate.Crate, error) {
	var m manifest
	dec := json.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, errors.New(errors.MetadataInvalid, "cannot decode crate metadata", err)
	}
	return crate.New(m.Graph, rootDir), nil
}
