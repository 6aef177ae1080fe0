package query

import (
	"testing"

	"provq/internal/crate"
)

func TestFileAncestryFullChain(t *testing.T) {
	e := testEngine(chainCrate())

	g := e.FileAncestry("final.csv", Unlimited)

	if len(g.RootFiles) != 1 || g.RootFiles[0].ID != "#final" {
		t.Fatalf("RootFiles = %+v, want [#final]", g.RootFiles)
	}
	for _, id := range []string{"#final", "#processed", "#raw"} {
		if _, ok := g.Entities[id]; !ok {
			t.Errorf("entity %s missing from ancestry", id)
		}
	}
	if len(g.Entities) != 3 {
		t.Errorf("entities = %d, want 3", len(g.Entities))
	}
	if len(g.Actions) != 2 {
		t.Errorf("actions = %d, want 2", len(g.Actions))
	}
	if len(g.Edges) != 4 {
		t.Errorf("edges = %d, want 4 (generated+used per hop)", len(g.Edges))
	}
	assertEdge(t, g.Edges, "generated", "#a2", "#final")
	assertEdge(t, g.Edges, "used", "#a2", "#processed")
	assertEdge(t, g.Edges, "generated", "#a1", "#processed")
	assertEdge(t, g.Edges, "used", "#a1", "#raw")
}

func TestFileAncestryDepthZero(t *testing.T) {
	e := testEngine(chainCrate())

	g := e.FileAncestry("final.csv", 0)

	if len(g.Entities) != 1 {
		t.Errorf("entities = %d, want only the root", len(g.Entities))
	}
	if _, ok := g.Entities["#final"]; !ok {
		t.Error("root entity missing at depth 0")
	}
	if len(g.Actions) != 0 || len(g.Edges) != 0 {
		t.Errorf("depth 0 must not expand actions: actions=%d edges=%d",
			len(g.Actions), len(g.Edges))
	}
}

func TestFileAncestryDepthOne(t *testing.T) {
	e := testEngine(chainCrate())

	g := e.FileAncestry("final.csv", 1)

	if len(g.Entities) != 2 {
		t.Errorf("entities = %d, want 2 (final + processed)", len(g.Entities))
	}
	if _, ok := g.Entities["#raw"]; ok {
		t.Error("#raw must be beyond depth 1")
	}
	if len(g.Actions) != 1 {
		t.Errorf("actions = %d, want 1", len(g.Actions))
	}
	if _, ok := g.Actions["#a2"]; !ok {
		t.Error("#a2 missing at depth 1")
	}
}

func TestFileAncestryUnmatchedSelector(t *testing.T) {
	e := testEngine(chainCrate())

	g := e.FileAncestry("missing.csv", Unlimited)

	if g.RootFiles == nil || g.Entities == nil || g.Actions == nil || g.Edges == nil {
		t.Fatal("all result collections must be initialized empty")
	}
	if len(g.RootFiles)+len(g.Entities)+len(g.Actions)+len(g.Edges) != 0 {
		t.Errorf("expected empty graph, got %+v", g)
	}
}

func TestFileAncestryMultiOutputAction(t *testing.T) {
	// One action produces two files. Walking from both records the action
	// once but one generated edge per (file, action) pair.
	c := crate.New([]*crate.Entity{
		fileEnt("#in", "in.csv", "s0"),
		actionEnt("#a", "fan out", "", []interface{}{"#in"}, []interface{}{"#out1", "#out2"}),
		fileEnt("#out1", "out_a.csv", "s1"),
		fileEnt("#out2", "out_b.csv", "s2"),
	}, "")
	e := testEngine(c)

	g := e.FileAncestry("out_", Unlimited)

	if len(g.RootFiles) != 2 {
		t.Fatalf("roots = %d, want 2", len(g.RootFiles))
	}
	if len(g.Actions) != 1 {
		t.Errorf("actions = %d, want the action recorded once", len(g.Actions))
	}
	generated := 0
	for _, edge := range g.Edges {
		if edge.Type == "generated" && edge.Action == "#a" {
			generated++
		}
	}
	if generated != 2 {
		t.Errorf("generated edges = %d, want one per produced root", generated)
	}
}

func TestFileAncestryParameterInputsNotTraversed(t *testing.T) {
	e := testEngine(sampleCrate())

	g := e.FileAncestry("test_output.csv", Unlimited)

	if _, ok := g.Entities["#param1"]; ok {
		t.Error("parameters must not appear as graph entities")
	}
	act, ok := g.Actions["#action1"]
	if !ok {
		t.Fatal("#action1 missing")
	}
	if len(act.Inputs.Parameters) != 1 {
		t.Errorf("parameters should still appear in the action's input partition")
	}
	if act.Outputs != nil {
		t.Error("ancestry action records must not carry outputs")
	}
}

func TestFileDescendantsFullChain(t *testing.T) {
	e := testEngine(chainCrate())

	g := e.FileDescendants("raw.csv", Unlimited)

	if len(g.RootFiles) != 1 || g.RootFiles[0].ID != "#raw" {
		t.Fatalf("RootFiles = %+v, want [#raw]", g.RootFiles)
	}
	if len(g.Entities) != 3 {
		t.Errorf("entities = %d, want 3", len(g.Entities))
	}
	if len(g.Actions) != 2 {
		t.Errorf("actions = %d, want 2", len(g.Actions))
	}
	assertEdge(t, g.Edges, "used", "#a1", "#raw")
	assertEdge(t, g.Edges, "generated", "#a1", "#processed")
	assertEdge(t, g.Edges, "used", "#a2", "#processed")
	assertEdge(t, g.Edges, "generated", "#a2", "#final")

	if len(g.DescendantFiles) != 2 {
		t.Fatalf("descendants = %d, want 2", len(g.DescendantFiles))
	}
	if g.DescendantFiles[0].ID != "#processed" || g.DescendantFiles[1].ID != "#final" {
		t.Errorf("descendants = %+v, want processed then final", g.DescendantFiles)
	}
}

func TestFileDescendantsExcludesRootAndHashless(t *testing.T) {
	c := crate.New([]*crate.Entity{
		fileEnt("#raw", "raw.csv", "s0"),
		actionEnt("#a", "run", "", []interface{}{"#raw"}, []interface{}{"#out", "#placeholder"}),
		fileEnt("#out", "out.csv", "s1"),
		fileEnt("#placeholder", "never_written.csv", ""),
	}, "")
	e := testEngine(c)

	g := e.FileDescendants("raw.csv", Unlimited)

	if len(g.DescendantFiles) != 1 || g.DescendantFiles[0].ID != "#out" {
		t.Errorf("DescendantFiles = %+v, want only #out", g.DescendantFiles)
	}
	// The placeholder still appears as an entity, it is just not listed as
	// a materialized descendant.
	if _, ok := g.Entities["#placeholder"]; !ok {
		t.Error("hashless output missing from entities")
	}
}

func TestFileDescendantsActionOutputs(t *testing.T) {
	e := testEngine(sampleCrate())

	g := e.FileDescendants("raw_input.csv", Unlimited)

	act, ok := g.Actions["#action1"]
	if !ok {
		t.Fatal("#action1 missing")
	}
	if act.Outputs == nil {
		t.Fatal("descendants action records must carry outputs")
	}
	if len(act.Outputs.Files) != 2 {
		t.Errorf("output files = %d, want 2", len(act.Outputs.Files))
	}
	if len(act.Outputs.Datasets) != 1 || act.Outputs.Datasets[0].ID != "#dataset1" {
		t.Errorf("output datasets = %+v, want [#dataset1]", act.Outputs.Datasets)
	}
}

func TestFileDescendantsDepthZero(t *testing.T) {
	e := testEngine(chainCrate())

	g := e.FileDescendants("raw.csv", 0)

	if len(g.Entities) != 1 || len(g.Actions) != 0 || len(g.Edges) != 0 {
		t.Errorf("depth 0: entities=%d actions=%d edges=%d, want 1/0/0",
			len(g.Entities), len(g.Actions), len(g.Edges))
	}
	if len(g.DescendantFiles) != 0 {
		t.Errorf("depth 0 must list no descendants, got %+v", g.DescendantFiles)
	}
}

func TestTraversalTerminatesOnCycle(t *testing.T) {
	// A malformed crate where an action both consumes and produces the same
	// pair of files. Visited memoization must still terminate the walk.
	c := crate.New([]*crate.Entity{
		fileEnt("#x", "x.csv", "sx"),
		fileEnt("#y", "y.csv", "sy"),
		actionEnt("#fwd", "forward", "", []interface{}{"#x"}, []interface{}{"#y"}),
		actionEnt("#back", "backward", "", []interface{}{"#y"}, []interface{}{"#x"}),
	}, "")
	e := testEngine(c)

	up := e.FileAncestry("x.csv", Unlimited)
	if len(up.Entities) != 2 || len(up.Actions) != 2 {
		t.Errorf("ancestry on cycle: entities=%d actions=%d, want 2/2",
			len(up.Entities), len(up.Actions))
	}

	down := e.FileDescendants("x.csv", Unlimited)
	if len(down.Entities) != 2 || len(down.Actions) != 2 {
		t.Errorf("descendants on cycle: entities=%d actions=%d, want 2/2",
			len(down.Entities), len(down.Actions))
	}
}

func assertEdge(t *testing.T, edges []Edge, typ, action, entity string) {
	t.Helper()
	for _, e := range edges {
		if e.Type == typ && e.Action == action && e.Entity == entity {
			return
		}
	}
	t.Errorf("edge {%s %s %s} not found in %+v", typ, action, entity, edges)
}
