package query

import (
	"testing"

	"provq/internal/crate"
)

func TestResolveFilesPriority(t *testing.T) {
	// "#f1" is both a real entity id and another file's alternateName; the
	// id match must win and suppress the name match entirely.
	c := crate.New([]*crate.Entity{
		fileEnt("#f1", "first.csv", ""),
		fileEnt("#f2", "#f1", ""),
	}, "")
	e := testEngine(c)

	got := e.ResolveFiles("#f1")
	if len(got) != 1 || got[0].ID != "#f1" {
		t.Fatalf("ResolveFiles(#f1) = %v, want exactly the entity with that id", ids(got))
	}
}

func TestResolveFilesExactNameBeatsSubstring(t *testing.T) {
	c := crate.New([]*crate.Entity{
		fileEnt("#f1", "data.csv", ""),
		fileEnt("#f2", "data.csv.bak", ""),
	}, "")
	e := testEngine(c)

	got := e.ResolveFiles("data.csv")
	if len(got) != 1 || got[0].ID != "#f1" {
		t.Fatalf("ResolveFiles(data.csv) = %v, want only the exact match", ids(got))
	}
}

func TestResolveFilesSubstring(t *testing.T) {
	e := testEngine(chainCrate())

	got := e.ResolveFiles("ocessed")
	if len(got) != 1 || got[0].ID != "#processed" {
		t.Fatalf("substring resolution = %v, want [#processed]", ids(got))
	}
}

func TestResolveFilesMultipleExactNames(t *testing.T) {
	c := crate.New([]*crate.Entity{
		fileEnt("#f1", "dup.csv", ""),
		fileEnt("#f2", "dup.csv", ""),
	}, "")
	e := testEngine(c)

	got := e.ResolveFiles("dup.csv")
	if len(got) != 2 || got[0].ID != "#f1" || got[1].ID != "#f2" {
		t.Fatalf("ResolveFiles(dup.csv) = %v, want both files in graph order", ids(got))
	}
}

func TestResolveFilesOnlyFiles(t *testing.T) {
	// An id match on a non-File entity falls through to name resolution.
	c := crate.New([]*crate.Entity{
		datasetEnt("#d1", "stuff"),
		fileEnt("#f1", "#d1", ""),
	}, "")
	e := testEngine(c)

	got := e.ResolveFiles("#d1")
	if len(got) != 1 || got[0].ID != "#f1" {
		t.Fatalf("ResolveFiles(#d1) = %v, want the file matched by name", ids(got))
	}
}

func TestResolveFilesNoMatch(t *testing.T) {
	e := testEngine(sampleCrate())

	got := e.ResolveFiles("does_not_exist")
	if len(got) != 0 {
		t.Fatalf("ResolveFiles on unmatched selector = %v, want empty", ids(got))
	}
}

func ids(ents []*crate.Entity) []string {
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		out = append(out, e.ID)
	}
	return out
}
