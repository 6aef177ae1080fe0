package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"provq/internal/errors"
)

const sampleMetadata = `{
  "@context": "https://w3id.org/ro/crate/1.1/context",
  "@graph": [
    {"@id": "#input1", "@type": "File", "alternateName": "raw.csv", "sha1": "abc"},
    {"@id": "#action1", "@type": "CreateAction", "name": "run",
     "object": [{"@id": "#input1"}], "result": [{"@id": "#out1"}]},
    {"@id": "#out1", "@type": "File", "alternateName": "out.csv", "sha1": "def"}
  ]
}`

func writeMetadata(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeGzippedMetadata(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(content)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return path
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeMetadata(t, dir, MetadataBasename, sampleMetadata)

	c, err := New(nil).FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if len(c.Graph()) != 3 {
		t.Errorf("graph = %d entities, want 3", len(c.Graph()))
	}
	if len(c.Actions()) != 1 {
		t.Errorf("actions = %d, want 1", len(c.Actions()))
	}
	if c.RootDir() != dir {
		t.Errorf("RootDir = %q, want %q", c.RootDir(), dir)
	}
	if got := c.ActionsByResult("#out1"); len(got) != 1 || got[0] != "#action1" {
		t.Errorf("indexes not built: ActionsByResult(#out1) = %v", got)
	}
}

func TestFromFileGzip(t *testing.T) {
	dir := t.TempDir()
	path := writeGzippedMetadata(t, dir, MetadataBasename+".gz", sampleMetadata)

	c, err := New(nil).FromFile(path)
	if err != nil {
		t.Fatalf("FromFile gz: %v", err)
	}
	if len(c.Graph()) != 3 {
		t.Errorf("graph = %d entities, want 3", len(c.Graph()))
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := New(nil).FromFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.CodeOf(err) != errors.CrateNotFound {
		t.Errorf("code = %s, want CRATE_NOT_FOUND", errors.CodeOf(err))
	}
}

func TestFromFileInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeMetadata(t, dir, MetadataBasename, "{not json")

	_, err := New(nil).FromFile(path)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if errors.CodeOf(err) != errors.MetadataInvalid {
		t.Errorf("code = %s, want METADATA_INVALID", errors.CodeOf(err))
	}
}

func TestFromFileInvalidGzip(t *testing.T) {
	dir := t.TempDir()
	path := writeMetadata(t, dir, MetadataBasename+".gz", "plain text, not gzip")

	_, err := New(nil).FromFile(path)
	if err == nil {
		t.Fatal("expected gzip error")
	}
	if errors.CodeOf(err) != errors.MetadataInvalid {
		t.Errorf("code = %s, want METADATA_INVALID", errors.CodeOf(err))
	}
}

func TestFromDir(t *testing.T) {
	dir := t.TempDir()
	writeMetadata(t, dir, MetadataBasename, sampleMetadata)

	c, err := New(nil).FromDir(dir)
	if err != nil {
		t.Fatalf("FromDir: %v", err)
	}
	if c.RootDir() != dir {
		t.Errorf("RootDir = %q, want %q", c.RootDir(), dir)
	}
}

func TestFromDirPrefersPlainOverGzip(t *testing.T) {
	dir := t.TempDir()
	writeMetadata(t, dir, MetadataBasename, sampleMetadata)
	writeGzippedMetadata(t, dir, MetadataBasename+".gz", `{"@graph": []}`)

	c, err := New(nil).FromDir(dir)
	if err != nil {
		t.Fatalf("FromDir: %v", err)
	}
	if len(c.Graph()) != 3 {
		t.Errorf("graph = %d entities, want the plain manifest's 3", len(c.Graph()))
	}
}

func TestFromDirMissing(t *testing.T) {
	_, err := New(nil).FromDir(t.TempDir())
	if err == nil {
		t.Fatal("expected error for empty dir")
	}
	if errors.CodeOf(err) != errors.CrateNotFound {
		t.Errorf("code = %s, want CRATE_NOT_FOUND", errors.CodeOf(err))
	}
}

func TestDecodeEmptyGraph(t *testing.T) {
	dir := t.TempDir()
	path := writeMetadata(t, dir, MetadataBasename, `{"@context": "x"}`)

	c, err := New(nil).FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if len(c.Graph()) != 0 {
		t.Errorf("graph = %d entities, want 0", len(c.Graph()))
	}
}
