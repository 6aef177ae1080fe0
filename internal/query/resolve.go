package query

import (
	"strings"

	"provq/internal/crate"
)

// ResolveFiles resolves a selector to File entities. Resolution order:
//
//  1. exact match on an entity id whose kind is File
//  2. exact match on alternateName, in graph order
//  3. substring match on alternateName, in graph order
//
// The first rule yielding matches wins. No match at any stage returns an
// empty list; that is never an error.
func (e *Engine) ResolveFiles(selector string) []*crate.Entity {
	if ent := e.crate.Get(selector); ent != nil && ent.Kind() == crate.KindFile {
		return []*crate.Entity{ent}
	}

	var exact []*crate.Entity
	for _, ent := range e.crate.Graph() {
		if ent.Kind() == crate.KindFile && ent.Str("alternateName") == selector {
			exact = append(exact, ent)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	var partial []*crate.Entity
	for _, ent := range e.crate.Graph() {
		if ent.Kind() == crate.KindFile && strings.Contains(ent.Str("alternateName"), selector) {
			partial = append(partial, ent)
		}
	}
	return partial
}
