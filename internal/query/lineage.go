package query

import (
	"provq/internal/crate"
)

// noProducerNote marks a lineage record for a file no action claims to
// have generated.
const noProducerNote = "No CreateAction found that lists this file in its result."

// FileLineage returns the direct (one-hop) lineage for every File the
// selector resolves to. A file listed in the result of several actions
// fans out to one record per producing action; a file with no producer
// yields a single record with a nil ProducedBy and an explanatory note.
func (e *Engine) FileLineage(selector string) []LineageRecord {
	files := e.ResolveFiles(selector)
	e.logger.Debug("resolved lineage selector", map[string]interface{}{
		"selector": selector,
		"matches":  len(files),
	})

	results := []LineageRecord{}
	for _, f := range files {
		producers := e.crate.ActionsByResult(f.ID)
		if len(producers) == 0 {
			results = append(results, LineageRecord{
				File:    crate.SummarizeFile(f),
				SiteIDs: []string{},
				Note:    noProducerNote,
			})
			continue
		}

		for _, actID := range producers {
			act := e.crate.Get(actID)
			if act == nil {
				continue
			}
			inputs := e.partitionInputs(act)
			results = append(results, LineageRecord{
				File: crate.SummarizeFile(f),
				ProducedBy: &ProducedBy{
					Action: crate.SummarizeAction(act),
					Tool:   e.resolveTool(act),
					Inputs: inputs,
				},
				SiteIDs: siteIDs(inputs),
			})
		}
	}

	return results
}
