package query

import (
	"provq/internal/crate"
)

// FileDescendants builds the downstream provenance subgraph for the files
// the selector resolves to, walking forward through actions:
//
//	file/dataset -> (used by) -> action -> (generated) -> output file/dataset
//
// The result mirrors FileAncestry with two additions: action records carry
// an outputs partition, and DescendantFiles lists every visited non-root
// File whose content hash is present (a missing hash marks a placeholder
// artifact that was never materialized).
func (e *Engine) FileDescendants(selector string, maxDepth int) *ProvenanceGraph {
	roots := e.ResolveFiles(selector)
	result := &ProvenanceGraph{
		RootFiles:       []crate.FileSummary{},
		Entities:        map[string]interface{}{},
		Actions:         map[string]*ActionRecord{},
		Edges:           []Edge{},
		DescendantFiles: []crate.FileSummary{},
	}
	if len(roots) == 0 {
		return result
	}

	rootIDs := map[string]bool{}
	queue := make([]queueItem, 0, len(roots))
	for _, r := range roots {
		result.RootFiles = append(result.RootFiles, crate.SummarizeFile(r))
		rootIDs[r.ID] = true
		queue = append(queue, queueItem{id: r.ID, depth: 0})
	}

	visitedEntities := map[string]bool{}
	visitedActions := map[string]bool{}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if visitedEntities[item.id] {
			continue
		}
		visitedEntities[item.id] = true

		ent := e.crate.Get(item.id)
		if ent == nil {
			continue
		}

		switch ent.Kind() {
		case crate.KindFile:
			summary := crate.SummarizeFile(ent)
			result.Entities[item.id] = summary
			if !rootIDs[item.id] && summary.SHA1 != "" {
				result.DescendantFiles = append(result.DescendantFiles, summary)
			}
		case crate.KindDataset:
			result.Entities[item.id] = crate.SummarizeDataset(ent)
		default:
			continue
		}

		if maxDepth >= 0 && item.depth >= maxDepth {
			continue
		}

		for _, actID := range e.crate.ActionsByInput(item.id) {
			act := e.crate.Get(actID)
			if act == nil {
				continue
			}

			result.Edges = append(result.Edges, Edge{
				Type:   edgeUsed,
				Action: actID,
				Entity: item.id,
			})

			if visitedActions[actID] {
				continue
			}
			visitedActions[actID] = true

			outputs := OutputBuckets{}
			for _, oid := range act.RefList("result") {
				out := e.crate.Get(oid)
				if out == nil {
					continue
				}
				switch out.Kind() {
				case crate.KindFile:
					outputs.Files = append(outputs.Files, crate.SummarizeFile(out))
				case crate.KindDataset:
					outputs.Datasets = append(outputs.Datasets, crate.SummarizeDataset(out))
				default:
					// Non-data outputs are recorded but never propagated.
					outputs.Other = append(outputs.Other, crate.SummarizeOther(out))
					continue
				}
				result.Edges = append(result.Edges, Edge{Type: edgeGenerated, Action: actID, Entity: out.ID})
				if maxDepth < 0 || item.depth+1 <= maxDepth {
					queue = append(queue, queueItem{id: out.ID, depth: item.depth + 1})
				}
			}

			result.Actions[actID] = &ActionRecord{
				Action:  crate.SummarizeAction(act),
				Tool:    e.resolveTool(act),
				Inputs:  e.partitionInputs(act),
				Outputs: &outputs,
			}
		}
	}

	e.logger.Debug("descendants walk complete", map[string]interface{}{
		"selector":    selector,
		"entities":    len(result.Entities),
		"actions":     len(result.Actions),
		"descendants": len(result.DescendantFiles),
	})

	return result
}
