// Package files resolves File entities to paths on disk and reads their
// content. All helpers treat a missing artifact as a no-data condition,
// not an error; the only typed failure is asking for a tabular view of a
// non-CSV file.
package files

import (
	"os"
	"path/filepath"
	"strings"

	"provq/internal/crate"
)

// LocalPath resolves a File entity to a path under the crate's root
// directory. It prefers contentUrl over @id, and refuses fragments ("#...")
// and anything that looks like a remote IRI. The path must exist on disk.
func LocalPath(c *crate.Crate, ent *crate.Entity) (string, bool) {
	if c.RootDir() == "" || ent == nil || ent.Kind() != crate.KindFile {
		return "", false
	}

	cid := ent.Ref("contentUrl")
	if cid == "" {
		cid = ent.ID
	}
	if cid == "" || strings.HasPrefix(cid, "#") || strings.Contains(cid, "://") {
		return "", false
	}

	path := filepath.Join(c.RootDir(), filepath.FromSlash(cid))
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// GuessMediaType guesses a media type from the summary's encodingFormat,
// falling back to the name extension. Unknown extensions yield "".
func GuessMediaType(s crate.FileSummary) string {
	if s.EncodingFormat != "" {
		return s.EncodingFormat
	}

	name := strings.ToLower(s.Name)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return "text/csv"
	case strings.HasSuffix(name, ".json"):
		return "application/json"
	case strings.HasSuffix(name, ".geojson"):
		return "application/geo+json"
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	case strings.HasSuffix(name, ".jpg"), strings.HasSuffix(name, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(name, ".tif"), strings.HasSuffix(name, ".tiff"):
		return "image/tiff"
	case strings.HasSuffix(name, ".xlsx"):
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return ""
}

// IsCSV reports whether the file looks like comma-separated values.
func IsCSV(s crate.FileSummary) bool {
	mt := strings.ToLower(GuessMediaType(s))
	return mt == "text/csv" || mt == "text/comma-separated-values"
}

// IsImage reports whether the file carries an image media type.
func IsImage(s crate.FileSummary) bool {
	return strings.HasPrefix(strings.ToLower(GuessMediaType(s)), "image/")
}

// IsJSON reports whether the file carries a JSON-family media type.
func IsJSON(s crate.FileSummary) bool {
	switch strings.ToLower(GuessMediaType(s)) {
	case "application/json", "application/ld+json", "application/geo+json":
		return true
	}
	return false
}

// ImageFiles returns summaries for every File in the crate whose media type
// is an image, in graph order.
func ImageFiles(c *crate.Crate) []crate.FileSummary {
	images := []crate.FileSummary{}
	for _, ent := range c.Graph() {
		if ent.Kind() != crate.KindFile {
			continue
		}
		if s := crate.SummarizeFile(ent); IsImage(s) {
			images = append(images, s)
		}
	}
	return images
}
