package query

import (
	"provq/internal/crate"
)

// Edge is one provenance relation in a traversal result. A "generated"
// edge points from an action to an artifact it produced; a "used" edge
// points from an action to an artifact it consumed.
type Edge struct {
	Type   string `json:"type"` // "used" or "generated"
	Action string `json:"action"`
	Entity string `json:"entity"`
}

const (
	edgeUsed      = "used"
	edgeGenerated = "generated"
)

// InputBuckets partitions an action's inputs by kind. Dangling references
// are skipped during partitioning.
type InputBuckets struct {
	Files      []crate.FileSummary    `json:"files"`
	Datasets   []crate.DatasetSummary `json:"datasets"`
	Parameters []crate.ParamSummary   `json:"parameters"`
	Other      []crate.OtherRef       `json:"other"`
}

// OutputBuckets partitions an action's outputs by kind. Parameters are
// never produced, so there is no parameter bucket.
type OutputBuckets struct {
	Files    []crate.FileSummary    `json:"files"`
	Datasets []crate.DatasetSummary `json:"datasets"`
	Other    []crate.OtherRef       `json:"other"`
}

// ActionRecord is the full record kept for an expanded action in a
// traversal result. Outputs is populated only by the downstream walk.
type ActionRecord struct {
	Action  crate.ActionSummary `json:"action"`
	Tool    *crate.ToolSummary  `json:"tool"`
	Inputs  InputBuckets        `json:"inputs"`
	Outputs *OutputBuckets      `json:"outputs,omitempty"`
}

// ProducedBy describes the action that generated a file in a direct
// lineage record.
type ProducedBy struct {
	Action crate.ActionSummary `json:"action"`
	Tool   *crate.ToolSummary  `json:"tool"`
	Inputs InputBuckets        `json:"inputs"`
}

// LineageRecord is one direct-lineage result. A file produced by several
// actions yields one record per producer; a file with no producer carries
// a nil ProducedBy and an explanatory note.
type LineageRecord struct {
	File       crate.FileSummary `json:"file"`
	ProducedBy *ProducedBy       `json:"produced_by"`
	SiteIDs    []string          `json:"site_ids"`
	Note       string            `json:"note,omitempty"`
}

// ProvenanceGraph is the subgraph produced by the ancestry and descendants
// walks. Entities holds File and Dataset summaries keyed by id; entities
// of other kinds are visited but not recorded. DescendantFiles is set only
// by the downstream walk: every visited non-root File whose content hash
// is present.
type ProvenanceGraph struct {
	RootFiles       []crate.FileSummary      `json:"root_files"`
	Entities        map[string]interface{}   `json:"entities"`
	Actions         map[string]*ActionRecord `json:"actions"`
	Edges           []Edge                   `json:"edges"`
	DescendantFiles []crate.FileSummary      `json:"descendant_files,omitempty"`
}

// StepRun summarizes an action tagged with a site parameter.
type StepRun struct {
	Action  crate.ActionSummary `json:"action"`
	Tool    *crate.ToolSummary  `json:"tool"`
	SiteIDs []string            `json:"site_ids"`
}

// SiteView is the site-centric aggregation over the crate.
type SiteView struct {
	SiteID      string                   `json:"site_id"`
	Parameters  []crate.ParamSummary     `json:"parameters"`
	Datasets    []crate.DatasetSummary   `json:"datasets"`
	Files       []crate.FileSummary      `json:"files"`
	StepRuns    []StepRun                `json:"step_runs"`
	KeyLineages map[string]LineageRecord `json:"key_lineages"`
}
