package stdlib

import (
	"github.com/suji-lang/suji/internal/module"
	"github.com/suji-lang/suji/internal/value"
)

// tomlModule implements `std:toml`'s call interface without a body: no
// example repo in the corpus imports a TOML library, so toml:parse/
// toml:stringify are registered names that always fail with a
// RuntimeError rather than a fabricated dependency (SPEC_FULL.md §2).
func tomlModule() *module.VirtualNode {
	return &module.VirtualNode{Children: map[string]*module.VirtualNode{
		"parse":     builtin("toml:parse", tomlUnavailable(value.TOMLParseError)),
		"stringify": builtin("toml:stringify", tomlUnavailable(value.TOMLGenerateError)),
	}}
}

func tomlUnavailable(kind value.ErrorKind) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		return nil, value.NewError(kind, "TOML support is not available")
	}
}
