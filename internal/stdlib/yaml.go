package stdlib

import (
	"fmt"

	goyaml "github.com/goccy/go-yaml"

	"github.com/suji-lang/suji/internal/module"
	"github.com/suji-lang/suji/internal/value"
)

// yamlModule implements `std:yaml` (SPEC_FULL.md §2 "YAML codec"):
// yaml:parse/yaml:stringify round-trip through go-yaml's generic
// interface{} decoding, the same map[string]interface{}/[]interface{}
// shape json.Unmarshal produces, converted to/from Suji values.
func yamlModule() *module.VirtualNode {
	return &module.VirtualNode{Children: map[string]*module.VirtualNode{
		"parse":     builtin("yaml:parse", yamlParse),
		"stringify": builtin("yaml:stringify", yamlStringify),
	}}
}

func yamlParse(args []value.Value) (value.Value, error) {
	if err := requireArgs("yaml:parse", args, 1, value.YAMLParseError); err != nil {
		return nil, err
	}
	s, ok := args[0].(value.String)
	if !ok {
		return nil, value.NewError(value.YAMLParseError, "yaml:parse requires a string argument, got %s", args[0].Kind())
	}
	var generic any
	if err := goyaml.Unmarshal([]byte(s), &generic); err != nil {
		return nil, value.NewError(value.YAMLParseError, "%v", err)
	}
	v, err := genericToValue(generic)
	if err != nil {
		return nil, value.NewError(value.YAMLParseError, "%v", err)
	}
	return v, nil
}

func genericToValue(g any) (value.Value, error) {
	switch x := g.(type) {
	case nil:
		return value.Nil, nil
	case bool:
		return value.Boolean(x), nil
	case string:
		return value.String(x), nil
	case int:
		return value.NumberFromInt(x), nil
	case int64:
		return value.NumberFromInt(int(x)), nil
	case uint64:
		return value.NumberFromInt(int(x)), nil
	case float64:
		n, err := value.NewNumber(fmt.Sprintf("%v", x))
		if err != nil {
			return nil, err
		}
		return n, nil
	case []any:
		elems := make([]value.Value, len(x))
		for idx, el := range x {
			v, err := genericToValue(el)
			if err != nil {
				return nil, err
			}
			elems[idx] = v
		}
		return value.NewList(elems), nil
	case map[string]any:
		m := value.NewMap()
		for k, el := range x {
			v, err := genericToValue(el)
			if err != nil {
				return nil, err
			}
			key, err := value.ToMapKey(value.String(k))
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported YAML node type %T", g)
	}
}

func yamlStringify(args []value.Value) (value.Value, error) {
	if err := requireArgs("yaml:stringify", args, 1, value.YAMLGenerateError); err != nil {
		return nil, err
	}
	generic, err := valueToGeneric(args[0])
	if err != nil {
		return nil, value.NewError(value.YAMLGenerateError, "%v", err)
	}
	out, err := goyaml.Marshal(generic)
	if err != nil {
		return nil, value.NewError(value.YAMLGenerateError, "%v", err)
	}
	return value.String(string(out)), nil
}

func valueToGeneric(v value.Value) (any, error) {
	switch x := v.(type) {
	case value.NilVal:
		return nil, nil
	case value.Boolean:
		return bool(x), nil
	case value.Number:
		if n, ok := x.Dec.Float64(); ok {
			return n, nil
		}
		return x.Dec.String(), nil
	case value.String:
		return string(x), nil
	case *value.List:
		out := make([]any, len(x.Elements))
		for idx, el := range x.Elements {
			g, err := valueToGeneric(el)
			if err != nil {
				return nil, err
			}
			out[idx] = g
		}
		return out, nil
	case *value.Map:
		out := make(map[string]any, x.Len())
		for _, k := range x.Keys() {
			kv, _ := x.Get(k)
			keyStr, ok := k.Value().(value.String)
			if !ok {
				return nil, fmt.Errorf("yaml object keys must be strings, got %s", k.Value().Kind())
			}
			g, err := valueToGeneric(kv)
			if err != nil {
				return nil, err
			}
			out[string(keyStr)] = g
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot encode a %s as YAML", v.Kind())
	}
}
