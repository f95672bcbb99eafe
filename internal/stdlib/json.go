package stdlib

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/suji-lang/suji/internal/module"
	"github.com/suji-lang/suji/internal/value"
)

// jsonModule implements `std:json` (SPEC_FULL.md §2 "JSON codec"):
// json:parse decodes text into a Suji value via gjson; json:stringify
// encodes a Suji value back to text by assembling gjson/sjson fragments
// bottom-up, so object/array nesting never needs hand-rolled escaping.
func jsonModule() *module.VirtualNode {
	return &module.VirtualNode{Children: map[string]*module.VirtualNode{
		"parse":     builtin("json:parse", jsonParse),
		"stringify": builtin("json:stringify", jsonStringify),
	}}
}

func jsonParse(args []value.Value) (value.Value, error) {
	if err := requireArgs("json:parse", args, 1, value.JSONParseError); err != nil {
		return nil, err
	}
	s, ok := args[0].(value.String)
	if !ok {
		return nil, value.NewError(value.JSONParseError, "json:parse requires a string argument, got %s", args[0].Kind())
	}
	if !gjson.Valid(string(s)) {
		return nil, value.NewError(value.JSONParseError, "invalid JSON source")
	}
	v, err := gjsonToValue(gjson.Parse(string(s)))
	if err != nil {
		return nil, value.NewError(value.JSONParseError, "%v", err)
	}
	return v, nil
}

func gjsonToValue(r gjson.Result) (value.Value, error) {
	switch r.Type {
	case gjson.Null:
		return value.Nil, nil
	case gjson.False:
		return value.Boolean(false), nil
	case gjson.True:
		return value.Boolean(true), nil
	case gjson.Number:
		n, err := value.NewNumber(r.Raw)
		if err != nil {
			return nil, value.NewError(value.JSONParseError, "%v", err)
		}
		return n, nil
	case gjson.String:
		return value.String(r.String()), nil
	default:
		if r.IsArray() {
			return gjsonArrayToValue(r)
		}
		return gjsonObjectToValue(r)
	}
}

func gjsonArrayToValue(r gjson.Result) (value.Value, error) {
	var elems []value.Value
	var convErr error
	r.ForEach(func(_, elem gjson.Result) bool {
		v, err := gjsonToValue(elem)
		if err != nil {
			convErr = err
			return false
		}
		elems = append(elems, v)
		return true
	})
	if convErr != nil {
		return nil, convErr
	}
	return value.NewList(elems), nil
}

func gjsonObjectToValue(r gjson.Result) (value.Value, error) {
	m := value.NewMap()
	var convErr error
	r.ForEach(func(k, elem gjson.Result) bool {
		v, err := gjsonToValue(elem)
		if err != nil {
			convErr = err
			return false
		}
		key, err := value.ToMapKey(value.String(k.String()))
		if err != nil {
			convErr = err
			return false
		}
		m.Set(key, v)
		return true
	})
	if convErr != nil {
		return nil, convErr
	}
	return m, nil
}

func jsonStringify(args []value.Value) (value.Value, error) {
	if err := requireArgs("json:stringify", args, 1, value.JSONGenerateError); err != nil {
		return nil, err
	}
	frag, err := valueToJSONFragment(args[0])
	if err != nil {
		return nil, value.NewError(value.JSONGenerateError, "%v", err)
	}
	return value.String(frag), nil
}

// encodeScalarJSON round-trips a Go scalar through sjson (to get correct
// JSON encoding/escaping) and gjson (to pull the encoded fragment back out
// from the one-field wrapper document sjson requires).
func encodeScalarJSON(v any) (string, error) {
	doc, err := sjson.Set("", "v", v)
	if err != nil {
		return "", err
	}
	return gjson.Get(doc, "v").Raw, nil
}

func valueToJSONFragment(v value.Value) (string, error) {
	switch x := v.(type) {
	case value.NilVal:
		return "null", nil
	case value.Boolean:
		return encodeScalarJSON(bool(x))
	case value.Number:
		return x.Dec.String(), nil
	case value.String:
		return encodeScalarJSON(string(x))
	case *value.List:
		doc := "[]"
		for idx, el := range x.Elements {
			frag, err := valueToJSONFragment(el)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, strconv.Itoa(idx), frag)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	case *value.Map:
		doc := "{}"
		for _, k := range x.Keys() {
			kv, _ := x.Get(k)
			frag, err := valueToJSONFragment(kv)
			if err != nil {
				return "", err
			}
			keyStr, ok := k.Value().(value.String)
			if !ok {
				return "", jsonKeyError(k.Value())
			}
			doc, err = sjson.SetRaw(doc, string(keyStr), frag)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	default:
		return "", jsonEncodeError(v)
	}
}

func jsonKeyError(v value.Value) error {
	return fmt.Errorf("json object keys must be strings, got %s", v.Kind())
}

func jsonEncodeError(v value.Value) error {
	return fmt.Errorf("cannot encode a %s as JSON", v.Kind())
}
