// Package stdlib builds the virtual standard library tree the module
// registry resolves `std:...` imports against (spec §4.5 "Resolution
// sources"). Each leaf is a Go-backed builtin function; the tree itself is
// pure, read-only data, matching spec §9's "resolution is pure and
// deterministic; it does not touch the filesystem" design note.
package stdlib

import (
	"github.com/suji-lang/suji/internal/module"
	"github.com/suji-lang/suji/internal/value"
)

// VirtualRoot builds the root of the "std" tree, merging every stdlib
// module this package implements. Passed straight into
// interp.New(stdlib.VirtualRoot(), ...) by cmd/suji.
func VirtualRoot() map[string]*module.VirtualNode {
	return map[string]*module.VirtualNode{
		"std": {Children: map[string]*module.VirtualNode{
			"json": jsonModule(),
			"yaml": yamlModule(),
			"toml": tomlModule(),
			"text": textModule(),
		}},
	}
}

// builtin wraps a Go function as a callable Suji value, the leaf shape
// every stdlib module below resolves its functions to.
func builtin(name string, fn value.BuiltinFunc) *module.VirtualNode {
	return &module.VirtualNode{Builtin: &value.Function{Name: name, Builtin: fn}}
}

func requireArgs(name string, args []value.Value, n int, kind value.ErrorKind) error {
	if len(args) != n {
		return value.NewError(kind, "%s requires %d argument(s), got %d", name, n, len(args))
	}
	return nil
}
