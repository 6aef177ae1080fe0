package query

import (
	"testing"

	"provq/internal/crate"
)

// Test fixtures. sampleCrate models one analysis run: a raw input file and
// a site parameter feed #action1, which produces an output file, a dataset,
// and a per-site JSON artifact. chainCrate models a three-stage pipeline
// raw.csv -> processed.csv -> final.csv.

func fileEnt(id, name, sha1 string) *crate.Entity {
	attrs := map[string]interface{}{"alternateName": name}
	if sha1 != "" {
		attrs["sha1"] = sha1
	}
	return &crate.Entity{ID: id, Types: []string{"File"}, Attrs: attrs}
}

func datasetEnt(id, name string) *crate.Entity {
	return &crate.Entity{
		ID:    id,
		Types: []string{"Dataset"},
		Attrs: map[string]interface{}{"alternateName": name},
	}
}

func paramEnt(id, name, value string) *crate.Entity {
	return &crate.Entity{
		ID:    id,
		Types: []string{"PropertyValue"},
		Attrs: map[string]interface{}{"name": name, "value": value},
	}
}

func toolEnt(id, name string) *crate.Entity {
	return &crate.Entity{
		ID:    id,
		Types: []string{"SoftwareApplication"},
		Attrs: map[string]interface{}{"name": name},
	}
}

func actionEnt(id, name, tool string, objects, results []interface{}) *crate.Entity {
	attrs := map[string]interface{}{
		"name":      name,
		"startTime": "2024-03-01T10:00:00Z",
		"endTime":   "2024-03-01T10:05:00Z",
		"object":    objects,
		"result":    results,
	}
	if tool != "" {
		attrs["instrument"] = map[string]interface{}{"@id": tool}
	}
	return &crate.Entity{ID: id, Types: []string{"CreateAction"}, Attrs: attrs}
}

func sampleCrate() *crate.Crate {
	return crate.New([]*crate.Entity{
		fileEnt("#input1", "raw_input.csv", "in1sha"),
		paramEnt("#param1", "site_id", "site001"),
		toolEnt("#tool1", "Analysis Tool"),
		actionEnt("#action1", "Run analysis", "#tool1",
			[]interface{}{"#input1", map[string]interface{}{"@id": "#param1"}},
			[]interface{}{"#output1", "#dataset1", "#sitejson"},
		),
		fileEnt("#output1", "test_output.csv", "out1sha"),
		datasetEnt("#dataset1", "site001_dataset"),
		fileEnt("#sitejson", "linear_site001.json", "jsonsha"),
	}, "")
}

func chainCrate() *crate.Crate {
	return crate.New([]*crate.Entity{
		fileEnt("#raw", "raw.csv", "rawsha"),
		actionEnt("#a1", "Process raw", "",
			[]interface{}{"#raw"},
			[]interface{}{"#processed"},
		),
		fileEnt("#processed", "processed.csv", "procsha"),
		actionEnt("#a2", "Finalize", "",
			[]interface{}{"#processed"},
			[]interface{}{"#final"},
		),
		fileEnt("#final", "final.csv", "finsha"),
	}, "")
}

func testEngine(c *crate.Crate) *Engine {
	return NewEngine(c, nil, nil)
}

func TestPartitionInputs(t *testing.T) {
	e := testEngine(sampleCrate())
	act := e.Crate().Get("#action1")

	in := e.partitionInputs(act)
	if len(in.Files) != 1 || in.Files[0].ID != "#input1" {
		t.Errorf("Files = %+v, want one entry #input1", in.Files)
	}
	if len(in.Parameters) != 1 || in.Parameters[0].Value != "site001" {
		t.Errorf("Parameters = %+v, want one site001 entry", in.Parameters)
	}
	if len(in.Datasets) != 0 || len(in.Other) != 0 {
		t.Errorf("unexpected datasets/other: %+v / %+v", in.Datasets, in.Other)
	}
}

func TestPartitionInputsSkipsDangling(t *testing.T) {
	c := crate.New([]*crate.Entity{
		actionEnt("#a", "broken", "", []interface{}{"#missing"}, nil),
	}, "")
	e := testEngine(c)

	in := e.partitionInputs(c.Get("#a"))
	if len(in.Files)+len(in.Datasets)+len(in.Parameters)+len(in.Other) != 0 {
		t.Errorf("dangling reference leaked into partition: %+v", in)
	}
}

func TestResolveTool(t *testing.T) {
	e := testEngine(sampleCrate())

	tool := e.resolveTool(e.Crate().Get("#action1"))
	if tool == nil || tool.Name != "Analysis Tool" {
		t.Fatalf("resolveTool = %+v, want Analysis Tool", tool)
	}
}

func TestResolveToolAbsent(t *testing.T) {
	c := crate.New([]*crate.Entity{
		actionEnt("#a", "no instrument", "", nil, nil),
		actionEnt("#b", "dangling instrument", "#ghost", nil, nil),
	}, "")
	e := testEngine(c)

	if got := e.resolveTool(c.Get("#a")); got != nil {
		t.Errorf("missing instrument should yield nil, got %+v", got)
	}
	if got := e.resolveTool(c.Get("#b")); got != nil {
		t.Errorf("dangling instrument should yield nil, got %+v", got)
	}
}

func TestSiteIDs(t *testing.T) {
	in := InputBuckets{
		Parameters: []crate.ParamSummary{
			{ID: "#p1", Name: "site_id", Value: "site001"},
			{ID: "#p2", Name: "threshold", Value: "0.5"},
			{ID: "#p3", Name: "site_id", Value: "site002"},
		},
	}
	got := siteIDs(in)
	if len(got) != 2 || got[0] != "site001" || got[1] != "site002" {
		t.Errorf("siteIDs = %v, want [site001 site002]", got)
	}

	if got := siteIDs(InputBuckets{}); got == nil || len(got) != 0 {
		t.Errorf("siteIDs on empty buckets = %v, want empty non-nil slice", got)
	}
}
