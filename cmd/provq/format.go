package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"provq/internal/catalog"
	"provq/internal/crate"
	"provq/internal/files"
	"provq/internal/query"
	"provq/internal/toon"
)

// FormatResult renders a query result in the requested format. The toon
// format encodes the reshaped payload; all others encode the value itself.
func FormatResult(v, toonPayload interface{}, format string, opts toon.Options) (string, error) {
	switch format {
	case "", "json":
		return formatJSON(v)
	case "yaml":
		return formatYAML(v)
	case "toml":
		return formatTOML(v)
	case "toon":
		return toon.Encode(toonPayload, opts)
	case "human":
		return formatHuman(v)
	default:
		return "", fmt.Errorf("unknown output format %q (want json, human, yaml, toml, or toon)", format)
	}
}

func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func formatYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// formatTOML renders through a JSON round trip so json tags control the
// key names, then strips nulls (TOML has no null) and wraps top-level
// arrays in a table, which TOML requires.
func formatTOML(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", err
	}
	generic = dropNulls(generic)

	if _, ok := generic.(map[string]interface{}); !ok {
		generic = map[string]interface{}{"results": generic}
	}

	data, err := toml.Marshal(generic)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func dropNulls(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			if val == nil {
				continue
			}
			out[k] = dropNulls(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, val := range t {
			if val == nil {
				continue
			}
			out = append(out, dropNulls(val))
		}
		return out
	default:
		return v
	}
}

// formatHuman renders the result types the commands produce; anything
// else falls back to indented JSON.
func formatHuman(v interface{}) (string, error) {
	switch t := v.(type) {
	case []query.LineageRecord:
		return humanLineage(t), nil
	case *query.ProvenanceGraph:
		return humanGraph(t), nil
	case *query.SiteView:
		return humanSite(t), nil
	case []crate.FileSummary:
		return humanFiles(t), nil
	case *files.Table:
		return humanTable(t), nil
	case []catalog.Entry:
		return humanCatalog(t), nil
	case string:
		return t, nil
	default:
		return formatJSON(v)
	}
}

func humanLineage(records []query.LineageRecord) string {
	if len(records) == 0 {
		return "No matching files."
	}

	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "File: %s (%s)\n", rec.File.Name, rec.File.ID)
		if rec.ProducedBy == nil {
			if rec.Note != "" {
				fmt.Fprintf(&b, "  %s\n", rec.Note)
			}
			continue
		}
		fmt.Fprintf(&b, "  Produced by: %s (%s)\n", rec.ProducedBy.Action.Name, rec.ProducedBy.Action.ID)
		if rec.ProducedBy.Tool != nil {
			fmt.Fprintf(&b, "  Tool: %s\n", rec.ProducedBy.Tool.Name)
		}
		in := rec.ProducedBy.Inputs
		fmt.Fprintf(&b, "  Inputs: %d files, %d datasets, %d parameters\n",
			len(in.Files), len(in.Datasets), len(in.Parameters))
		if len(rec.SiteIDs) > 0 {
			fmt.Fprintf(&b, "  Sites: %s\n", strings.Join(rec.SiteIDs, ", "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func humanGraph(g *query.ProvenanceGraph) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Roots: %s\n", strings.Join(fileNames(g.RootFiles), ", "))
	fmt.Fprintf(&b, "Entities: %d, actions: %d, edges: %d\n",
		len(g.Entities), len(g.Actions), len(g.Edges))
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %s -[%s]- %s\n", e.Action, e.Type, e.Entity)
	}
	if len(g.DescendantFiles) > 0 {
		fmt.Fprintf(&b, "Descendant files: %s\n", strings.Join(fileNames(g.DescendantFiles), ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func fileNames(summaries []crate.FileSummary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		if s.Name != "" {
			out = append(out, s.Name)
			continue
		}
		out = append(out, s.ID)
	}
	return out
}

func humanSite(view *query.SiteView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Site: %s\n", view.SiteID)
	fmt.Fprintf(&b, "Parameters: %d, datasets: %d, files: %d\n",
		len(view.Parameters), len(view.Datasets), len(view.Files))
	for _, run := range view.StepRuns {
		name := run.Action.Name
		if run.Tool != nil {
			name = name + " [" + run.Tool.Name + "]"
		}
		fmt.Fprintf(&b, "  Run: %s (%s)\n", name, run.Action.ID)
	}
	bases := make([]string, 0, len(view.KeyLineages))
	for base := range view.KeyLineages {
		bases = append(bases, base)
	}
	sort.Strings(bases)
	for _, base := range bases {
		fmt.Fprintf(&b, "  Key output: %s (%s)\n", base, view.KeyLineages[base].File.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

func humanFiles(summaries []crate.FileSummary) string {
	if len(summaries) == 0 {
		return "No files."
	}
	var b strings.Builder
	for _, s := range summaries {
		fmt.Fprintf(&b, "%s  %s", s.ID, s.Name)
		if s.EncodingFormat != "" {
			fmt.Fprintf(&b, "  (%s)", s.EncodingFormat)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func humanTable(t *files.Table) string {
	if t == nil {
		return "No matching file."
	}
	var b strings.Builder
	b.WriteString(strings.Join(t.Header, "\t"))
	for _, row := range t.Rows {
		b.WriteString("\n")
		b.WriteString(strings.Join(row, "\t"))
	}
	return b.String()
}

func humanCatalog(entries []catalog.Entry) string {
	if len(entries) == 0 {
		return "No registered crates."
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %s  (added %s)\n", e.Name, e.Path, e.AddedAt)
	}
	return strings.TrimRight(b.String(), "\n")
}
