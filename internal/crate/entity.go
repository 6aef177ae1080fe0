// Package crate models a Workflow Run / Provenance Run RO-Crate as an
// in-memory graph of entities and provides the indexes that lineage
// queries run against.
package crate

import (
	"encoding/json"
)

// Kind is the closed classification of an entity, resolved once from its
// raw @type tags. All query code switches on Kind, never on raw tags.
type Kind int

const (
	// KindOther covers entities outside the provenance vocabulary.
	// Traversal records their presence but never recurses into them.
	KindOther Kind = iota
	// KindFile is a data artifact ("File").
	KindFile
	// KindDataset is a grouping artifact ("Dataset").
	KindDataset
	// KindParameter is a name/value pair ("PropertyValue").
	KindParameter
	// KindAction is a recorded processing step ("CreateAction").
	KindAction
	// KindTool is the software used as an action's instrument
	// ("SoftwareApplication").
	KindTool
)

// String returns the RO-Crate type tag the kind was derived from.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "File"
	case KindDataset:
		return "Dataset"
	case KindParameter:
		return "PropertyValue"
	case KindAction:
		return "CreateAction"
	case KindTool:
		return "SoftwareApplication"
	default:
		return "Other"
	}
}

// SiteParameterName is the PropertyValue name recognized for site-scoped
// filtering.
const SiteParameterName = "site_id"

// Entity is one record from the crate's @graph. The @id and @type tags are
// lifted out; every other attribute stays in the open Attrs map because the
// manifest schema is kind-dependent and open-ended.
type Entity struct {
	ID    string
	Types []string
	Attrs map[string]interface{}
}

// UnmarshalJSON decodes a raw @graph record. @type may be a single string
// or a list of strings; both forms are normalized into Types.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Attrs = make(map[string]interface{}, len(raw))
	for k, v := range raw {
		switch k {
		case "@id":
			if s, ok := v.(string); ok {
				e.ID = s
			}
		case "@type":
			e.Types = typeTags(v)
		default:
			e.Attrs[k] = v
		}
	}

	return nil
}

// MarshalJSON re-assembles the raw record shape.
func (e *Entity) MarshalJSON() ([]byte, error) {
	raw := make(map[string]interface{}, len(e.Attrs)+2)
	for k, v := range e.Attrs {
		raw[k] = v
	}
	raw["@id"] = e.ID
	switch len(e.Types) {
	case 0:
	case 1:
		raw["@type"] = e.Types[0]
	default:
		raw["@type"] = e.Types
	}
	return json.Marshal(raw)
}

// typeTags normalizes an @type value (string or list) into a tag slice.
func typeTags(v interface{}) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []interface{}:
		tags := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}

// HasType reports whether the entity carries the given type tag.
func (e *Entity) HasType(name string) bool {
	for _, t := range e.Types {
		if t == name {
			return true
		}
	}
	return false
}

// Kind resolves the entity's closed classification. File wins over Dataset
// when an entity carries both tags, matching the partitioning order used
// throughout the queries.
func (e *Entity) Kind() Kind {
	switch {
	case e.HasType("File"):
		return KindFile
	case e.HasType("Dataset"):
		return KindDataset
	case e.HasType("PropertyValue"):
		return KindParameter
	case e.HasType("CreateAction"):
		return KindAction
	case e.HasType("SoftwareApplication"):
		return KindTool
	default:
		return KindOther
	}
}

// Str returns a string attribute, or "" when absent or not a string.
func (e *Entity) Str(key string) string {
	if s, ok := e.Attrs[key].(string); ok {
		return s
	}
	return ""
}

// Has reports whether the attribute is present at all.
func (e *Entity) Has(key string) bool {
	_, ok := e.Attrs[key]
	return ok
}

// RefID normalizes a reference value into a bare entity id. References
// appear inline ("#tool1") or as nested objects ({"@id": "#tool1"}); both
// forms are equivalent everywhere in the manifest.
func RefID(v interface{}) string {
	switch ref := v.(type) {
	case string:
		return ref
	case map[string]interface{}:
		if s, ok := ref["@id"].(string); ok {
			return s
		}
	}
	return ""
}

// RefList normalizes a reference-list attribute into bare ids, preserving
// order and dropping malformed elements.
func (e *Entity) RefList(key string) []string {
	list, ok := e.Attrs[key].([]interface{})
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(list))
	for _, item := range list {
		if id := RefID(item); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Ref normalizes a single-reference attribute (e.g. instrument) into a
// bare id, or "" when absent.
func (e *Entity) Ref(key string) string {
	v, ok := e.Attrs[key]
	if !ok {
		return ""
	}
	return RefID(v)
}
