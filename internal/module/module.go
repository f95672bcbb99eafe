// Package module implements Suji's module registry: load-once resolution
// across a virtual standard library and the filesystem, caching by
// canonical path, cycle detection, and leaf-vs-map module semantics (spec
// §4.5). It stays decoupled from the parser/evaluator via the
// SourceEvaluator callback, since those packages in turn import this one.
package module

import "github.com/suji-lang/suji/internal/value"

// Kind classifies a module's export shape (spec §4.5 "Leaf vs map
// modules"): `export <value>` yields a Leaf (any non-map value), `export {
// ... }` yields a Map, whose members resolve via `import x:y`.
type Kind int

const (
	KindLeaf Kind = iota
	KindMap
)

// KindOf reports a loaded module handle's Kind from its export value.
func KindOf(h *value.Module) Kind {
	if _, ok := h.Export.(*value.Map); ok {
		return KindMap
	}
	return KindLeaf
}

// SourceEvaluator parses and evaluates a module's source text against a
// fresh environment, returning its export value. Injected by the caller
// (the interp package) so this package never imports the parser or
// evaluator directly (spec §4.5 "External interface").
type SourceEvaluator func(src string, env *value.Env, reg *Registry) (value.Value, error)
