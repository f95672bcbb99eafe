package stdlib

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/suji-lang/suji/internal/module"
	"github.com/suji-lang/suji/internal/value"
)

// textModule implements `std:text` (SPEC_FULL.md §2 "Text/Unicode scalar
// helpers"): Unicode normalization and locale-aware case folding beyond
// String's own ASCII-oriented upper()/lower() methods (internal/interp's
// method-dispatch table), backed by golang.org/x/text.
func textModule() *module.VirtualNode {
	return &module.VirtualNode{Children: map[string]*module.VirtualNode{
		"normalize": builtin("text:normalize", textNormalize),
		"fold_case": builtin("text:fold_case", textFoldCase),
	}}
}

var normForms = map[string]norm.Form{
	"nfc":  norm.NFC,
	"nfd":  norm.NFD,
	"nfkc": norm.NFKC,
	"nfkd": norm.NFKD,
}

func textNormalize(args []value.Value) (value.Value, error) {
	if err := requireArgs("text:normalize", args, 2, value.TypeError); err != nil {
		return nil, err
	}
	s, ok := args[0].(value.String)
	if !ok {
		return nil, value.NewError(value.TypeError, "text:normalize requires a string as its first argument, got %s", args[0].Kind())
	}
	formName, ok := args[1].(value.String)
	if !ok {
		return nil, value.NewError(value.TypeError, "text:normalize requires a string form name as its second argument, got %s", args[1].Kind())
	}
	form, ok := normForms[string(formName)]
	if !ok {
		return nil, value.NewError(value.InvalidOperation, "unknown normalization form %q (want nfc, nfd, nfkc, or nfkd)", formName)
	}
	return value.String(form.String(string(s))), nil
}

func textFoldCase(args []value.Value) (value.Value, error) {
	if err := requireArgs("text:fold_case", args, 1, value.TypeError); err != nil {
		return nil, err
	}
	s, ok := args[0].(value.String)
	if !ok {
		return nil, value.NewError(value.TypeError, "text:fold_case requires a string argument, got %s", args[0].Kind())
	}
	folded := cases.Fold(cases.Compact).String(string(s))
	return value.String(folded), nil
}
