package query

import (
	"sort"
	"strings"

	"provq/internal/crate"
)

// SiteArtifacts returns a site-centric view of the crate: the site
// parameters themselves, every dataset/file whose name mentions the site
// id, every action tagged with a matching site parameter, and the direct
// lineage of the well-known per-site outputs.
func (e *Engine) SiteArtifacts(siteID string) *SiteView {
	view := &SiteView{
		SiteID:      siteID,
		Parameters:  []crate.ParamSummary{},
		Datasets:    []crate.DatasetSummary{},
		Files:       []crate.FileSummary{},
		StepRuns:    []StepRun{},
		KeyLineages: map[string]LineageRecord{},
	}

	for _, ent := range e.crate.Graph() {
		switch ent.Kind() {
		case crate.KindParameter:
			if ent.Str("name") == crate.SiteParameterName && ent.Str("value") == siteID {
				view.Parameters = append(view.Parameters, crate.SummarizeParam(ent))
			}
		case crate.KindDataset:
			if strings.Contains(ent.Str("alternateName"), siteID) {
				view.Datasets = append(view.Datasets, crate.SummarizeDataset(ent))
			}
		case crate.KindFile:
			if strings.Contains(ent.Str("alternateName"), siteID) {
				view.Files = append(view.Files, crate.SummarizeFile(ent))
			}
		}
	}

	view.StepRuns = e.siteStepRuns(siteID)

	for _, base := range e.cfg.ExpandKeyBasenames(siteID) {
		for _, rec := range e.FileLineage(base) {
			if containsString(rec.SiteIDs, siteID) {
				// Assume at most one relevant producing record per
				// basename per site.
				view.KeyLineages[base] = rec
				break
			}
		}
	}

	return view
}

// siteStepRuns finds every action with at least one matching site
// parameter among its inputs and summarizes it. The summary's SiteIDs
// lists every site parameter value on the action, not just the requested
// one. Runs are ordered by action id.
func (e *Engine) siteStepRuns(siteID string) []StepRun {
	matched := map[string]bool{}
	for _, act := range e.crate.Actions() {
		for _, oid := range act.RefList("object") {
			ent := e.crate.Get(oid)
			if ent == nil || ent.Kind() != crate.KindParameter {
				continue
			}
			if ent.Str("name") == crate.SiteParameterName && ent.Str("value") == siteID {
				matched[act.ID] = true
				break
			}
		}
	}

	ids := make([]string, 0, len(matched))
	for id := range matched {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	runs := make([]StepRun, 0, len(ids))
	for _, actID := range ids {
		act := e.crate.Get(actID)
		inputs := e.partitionInputs(act)
		runs = append(runs, StepRun{
			Action:  crate.SummarizeAction(act),
			Tool:    e.resolveTool(act),
			SiteIDs: siteIDs(inputs),
		})
	}
	return runs
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
