// Package query implements the provenance queries over an indexed crate:
// direct lineage, upstream ancestry, downstream descendants, and the
// site-centric view. All queries are pure reads over the crate's indexes;
// the only mutation anywhere is an explicit index rebuild, which callers
// must not interleave with an in-flight query.
package query

import (
	"provq/internal/config"
	"provq/internal/crate"
	"provq/internal/logging"
)

// Unlimited disables the depth bound on ancestry/descendants walks.
const Unlimited = -1

// Engine runs provenance queries against one crate.
type Engine struct {
	crate  *crate.Crate
	logger *logging.Logger
	cfg    *config.Config
}

// NewEngine creates a query engine over the given crate.
func NewEngine(c *crate.Crate, logger *logging.Logger, cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Engine{crate: c, logger: logger, cfg: cfg}
}

// Crate returns the underlying crate.
func (e *Engine) Crate() *crate.Crate {
	return e.crate
}

// partitionInputs buckets an action's inputs by kind, skipping dangling
// references. Order within each bucket follows the action's object list.
func (e *Engine) partitionInputs(act *crate.Entity) InputBuckets {
	var in InputBuckets
	for _, oid := range act.RefList("object") {
		ent := e.crate.Get(oid)
		if ent == nil {
			continue
		}
		switch ent.Kind() {
		case crate.KindFile:
			in.Files = append(in.Files, crate.SummarizeFile(ent))
		case crate.KindDataset:
			in.Datasets = append(in.Datasets, crate.SummarizeDataset(ent))
		case crate.KindParameter:
			in.Parameters = append(in.Parameters, crate.SummarizeParam(ent))
		default:
			in.Other = append(in.Other, crate.SummarizeOther(ent))
		}
	}
	return in
}

// resolveTool resolves an action's instrument reference, or nil when it is
// absent or dangling.
func (e *Engine) resolveTool(act *crate.Entity) *crate.ToolSummary {
	instID := act.Ref("instrument")
	if instID == "" {
		return nil
	}
	return crate.SummarizeTool(e.crate.Get(instID))
}

// siteIDs extracts the values of site parameters from an input partition,
// in input order.
func siteIDs(in InputBuckets) []string {
	ids := []string{}
	for _, p := range in.Parameters {
		if p.Name == crate.SiteParameterName {
			ids = append(ids, p.Value)
		}
	}
	return ids
}
