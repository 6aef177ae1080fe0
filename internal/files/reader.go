package files

import (
	"encoding/csv"
	"os"

	"provq/internal/crate"
	"provq/internal/errors"
)

// ResolveFunc resolves a file selector to entities. In practice this is the
// query engine's selector resolution; the indirection keeps this package
// independent of the query layer.
type ResolveFunc func(selector string) []*crate.Entity

// Reader reads artifact content addressed by selector.
type Reader struct {
	crate   *crate.Crate
	resolve ResolveFunc
}

// NewReader binds a reader to a crate and a selector resolver.
func NewReader(c *crate.Crate, resolve ResolveFunc) *Reader {
	return &Reader{crate: c, resolve: resolve}
}

// Table is a parsed tabular artifact.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// first resolves the selector to the first matching File that has a local
// path. A selector matching nothing, or matching only files without local
// content, yields ("", false).
func (r *Reader) first(selector string) (*crate.Entity, string, bool) {
	ents := r.resolve(selector)
	if len(ents) == 0 {
		return nil, "", false
	}
	path, ok := LocalPath(r.crate, ents[0])
	if !ok {
		return nil, "", false
	}
	return ents[0], path, true
}

// ReadBytes returns the raw content of the first file the selector matches.
// No match, or no local content, returns (nil, nil): absence is not an
// error.
func (r *Reader) ReadBytes(selector string) ([]byte, error) {
	_, path, ok := r.first(selector)
	if !ok {
		return nil, nil
	}
	return os.ReadFile(path)
}

// ReadText returns the content as a UTF-8 string, or ("", nil) when the
// selector resolves to nothing readable.
func (r *Reader) ReadText(selector string) (string, error) {
	data, err := r.ReadBytes(selector)
	if err != nil || data == nil {
		return "", err
	}
	return string(data), nil
}

// ReadTable parses the artifact as CSV. A non-CSV media type is a
// NOT_TABULAR error; an unmatched selector returns (nil, nil).
func (r *Reader) ReadTable(selector string) (*Table, error) {
	ent, path, ok := r.first(selector)
	if !ok {
		return nil, nil
	}

	summary := crate.SummarizeFile(ent)
	if !IsCSV(summary) {
		return nil, errors.Newf(errors.NotTabular,
			"%s is not a CSV (mediaType=%s)", summary.Name, GuessMediaType(summary))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.New(errors.NotTabular, "cannot parse "+summary.Name+" as CSV", err)
	}

	table := &Table{Header: []string{}, Rows: [][]string{}}
	if len(records) > 0 {
		table.Header = records[0]
		table.Rows = records[1:]
	}
	return table, nil
}
