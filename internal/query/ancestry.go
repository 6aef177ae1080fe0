package query

import (
	"provq/internal/crate"
)

// queueItem pairs an entity id with its BFS depth from the roots.
type queueItem struct {
	id    string
	depth int
}

// FileAncestry builds the upstream provenance subgraph for the files the
// selector resolves to, walking backward through actions:
//
//	file/dataset -> (generated by) -> action -> (used) -> input file/dataset
//
// maxDepth bounds the walk in action hops; Unlimited (or any negative
// value) removes the bound and 0 keeps only the roots. Each entity is
// expanded at most once, so the walk terminates even on a malformed graph
// with cycles. A "generated" edge is recorded for every (entity, producing
// action) pair — an action producing several artifacts is expanded once
// but contributes one edge per output reached.
func (e *Engine) FileAncestry(selector string, maxDepth int) *ProvenanceGraph {
	files := e.ResolveFiles(selector)
	result := &ProvenanceGraph{
		RootFiles: []crate.FileSummary{},
		Entities:  map[string]interface{}{},
		Actions:   map[string]*ActionRecord{},
		Edges:     []Edge{},
	}
	if len(files) == 0 {
		return result
	}

	queue := make([]queueItem, 0, len(files))
	for _, f := range files {
		result.RootFiles = append(result.RootFiles, crate.SummarizeFile(f))
		queue = append(queue, queueItem{id: f.ID, depth: 0})
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

		// Only File and Dataset entities become nodes; anything else is a
		// leaf the walk does not recurse into.
		switch ent.Kind() {
		case crate.KindFile:
			result.Entities[item.id] = crate.SummarizeFile(ent)
		case crate.KindDataset:
			result.Entities[item.id] = crate.SummarizeDataset(ent)
		default:
			continue
		}

		if maxDepth >= 0 && item.depth >= maxDepth {
			continue
		}

		for _, actID := range e.crate.ActionsByResult(item.id) {
			act := e.crate.Get(actID)
			if act == nil {
				continue
			}

			// One action can generate several artifacts: the edge is
			// recorded per output even when the action was already
			// expanded via a sibling.
			result.Edges = append(result.Edges, Edge{
				Type:   edgeGenerated,
				Action: actID,
				Entity: item.id,
			})

			if visitedActions[actID] {
				continue
			}
			visitedActions[actID] = true

			inputs := e.partitionInputs(act)
			result.Actions[actID] = &ActionRecord{
				Action: crate.SummarizeAction(act),
				Tool:   e.resolveTool(act),
				Inputs: inputs,
			}

			for _, f := range inputs.Files {
				result.Edges = append(result.Edges, Edge{Type: edgeUsed, Action: actID, Entity: f.ID})
				if maxDepth < 0 || item.depth+1 <= maxDepth {
					queue = append(queue, queueItem{id: f.ID, depth: item.depth + 1})
				}
			}
			for _, d := range inputs.Datasets {
				result.Edges = append(result.Edges, Edge{Type: edgeUsed, Action: actID, Entity: d.ID})
				if maxDepth < 0 || item.depth+1 <= maxDepth {
					queue = append(queue, queueItem{id: d.ID, depth: item.depth + 1})
				}
			}
		}
	}

	e.logger.Debug("ancestry walk complete", map[string]interface{}{
		"selector": selector,
		"entities": len(result.Entities),
		"actions":  len(result.Actions),
		"edges":    len(result.Edges),
	})

	return result
}
