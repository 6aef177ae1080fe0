package toon

import (
	"sort"

	"provq/internal/crate"
	"provq/internal/query"
)

// Payload builders reshape query results for TOON rendering: map-shaped
// collections become sorted arrays so the encoder can tabularize them, and
// every payload carries a type tag and the selector that produced it.

// FileLineagePayload wraps direct-lineage records. A single record is
// flattened into a FileLineage payload; anything else becomes a
// FileLineageList.
func FileLineagePayload(selector string, records []query.LineageRecord) interface{} {
	if len(records) == 1 {
		return struct {
			Type         string              `json:"type"`
			FileSelector string              `json:"file_selector"`
			Lineage      query.LineageRecord `json:"lineage"`
		}{"FileLineage", selector, records[0]}
	}
	return struct {
		Type         string                `json:"type"`
		FileSelector string                `json:"file_selector"`
		Lineages     []query.LineageRecord `json:"lineages"`
	}{"FileLineageList", selector, records}
}

// keyLineageEntry is one reshaped key_lineages element.
type keyLineageEntry struct {
	Basename string              `json:"basename"`
	Lineage  query.LineageRecord `json:"lineage"`
}

// SiteSummaryPayload wraps a site view. KeyLineages is reshaped from a map
// into an array sorted by basename. The full artifact listings are included
// only when includeAllFiles is set; the default payload is the compact
// lineage digest.
func SiteSummaryPayload(view *query.SiteView, includeAllFiles bool) interface{} {
	basenames := make([]string, 0, len(view.KeyLineages))
	for base := range view.KeyLineages {
		basenames = append(basenames, base)
	}
	sort.Strings(basenames)

	entries := make([]keyLineageEntry, 0, len(basenames))
	for _, base := range basenames {
		entries = append(entries, keyLineageEntry{Basename: base, Lineage: view.KeyLineages[base]})
	}

	if !includeAllFiles {
		return struct {
			Type        string            `json:"type"`
			SiteID      string            `json:"site_id"`
			KeyLineages []keyLineageEntry `json:"key_lineages"`
		}{"SiteSummary", view.SiteID, entries}
	}

	return struct {
		Type        string                 `json:"type"`
		SiteID      string                 `json:"site_id"`
		KeyLineages []keyLineageEntry      `json:"key_lineages"`
		Parameters  []crate.ParamSummary   `json:"parameters"`
		Datasets    []crate.DatasetSummary `json:"datasets"`
		Files       []crate.FileSummary    `json:"files"`
		StepRuns    []query.StepRun        `json:"step_runs"`
	}{"SiteSummary", view.SiteID, entries, view.Parameters, view.Datasets, view.Files, view.StepRuns}
}

// actionEntry is an action record flattened with its id for tabular output.
type actionEntry struct {
	ID      string               `json:"id"`
	Action  crate.ActionSummary  `json:"action"`
	Tool    *crate.ToolSummary   `json:"tool"`
	Inputs  query.InputBuckets   `json:"inputs"`
	Outputs *query.OutputBuckets `json:"outputs,omitempty"`
}

// graphLists converts a provenance graph's entity and action maps into
// arrays sorted by id.
func graphLists(g *query.ProvenanceGraph) ([]interface{}, []actionEntry) {
	entityIDs := make([]string, 0, len(g.Entities))
	for id := range g.Entities {
		entityIDs = append(entityIDs, id)
	}
	sort.Strings(entityIDs)
	entities := make([]interface{}, 0, len(entityIDs))
	for _, id := range entityIDs {
		entities = append(entities, g.Entities[id])
	}

	actionIDs := make([]string, 0, len(g.Actions))
	for id := range g.Actions {
		actionIDs = append(actionIDs, id)
	}
	sort.Strings(actionIDs)
	actions := make([]actionEntry, 0, len(actionIDs))
	for _, id := range actionIDs {
		rec := g.Actions[id]
		actions = append(actions, actionEntry{
			ID:      id,
			Action:  rec.Action,
			Tool:    rec.Tool,
			Inputs:  rec.Inputs,
			Outputs: rec.Outputs,
		})
	}

	return entities, actions
}

// FileAncestryPayload wraps an upstream provenance graph.
func FileAncestryPayload(selector string, g *query.ProvenanceGraph) interface{} {
	entities, actions := graphLists(g)
	return struct {
		Type         string              `json:"type"`
		FileSelector string              `json:"file_selector"`
		RootFiles    []crate.FileSummary `json:"root_files"`
		Entities     []interface{}       `json:"entities"`
		Actions      []actionEntry       `json:"actions"`
		Edges        []query.Edge        `json:"edges"`
	}{"FileAncestry", selector, g.RootFiles, entities, actions, g.Edges}
}

// FileDescendantsPayload wraps a downstream provenance graph.
func FileDescendantsPayload(selector string, g *query.ProvenanceGraph) interface{} {
	entities, actions := graphLists(g)
	return struct {
		Type            string              `json:"type"`
		FileSelector    string              `json:"file_selector"`
		RootFiles       []crate.FileSummary `json:"root_files"`
		Entities        []interface{}       `json:"entities"`
		Actions         []actionEntry       `json:"actions"`
		Edges           []query.Edge        `json:"edges"`
		DescendantFiles []crate.FileSummary `json:"descendant_files"`
	}{"FileDescendants", selector, g.RootFiles, entities, actions, g.Edges, g.DescendantFiles}
}
