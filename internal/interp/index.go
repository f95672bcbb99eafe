package interp

import (
	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/span"
	"github.com/suji-lang/suji/internal/value"
)

// evalIndex implements `target[index]` (spec §4.3 "Indexing/slicing"):
// negative indices count from the end; out-of-bounds is a runtime error.
func (i *Interp) evalIndex(e *ast.IndexExpr, env *value.Env) (value.Value, error) {
	target, err := i.evalExpr(e.Target, env)
	if err != nil {
		return nil, err
	}
	idxVal, err := i.evalExpr(e.Index, env)
	if err != nil {
		return nil, err
	}

	switch t := target.(type) {
	case *value.List:
		idx, err := numberIndex(idxVal, e.Span())
		if err != nil {
			return nil, err
		}
		pos, err := normalizeIndex(idx, len(t.Elements), e.Span())
		if err != nil {
			return nil, err
		}
		return t.Elements[pos], nil
	case *value.Tuple:
		idx, err := numberIndex(idxVal, e.Span())
		if err != nil {
			return nil, err
		}
		pos, err := normalizeIndex(idx, len(t.Elements), e.Span())
		if err != nil {
			return nil, err
		}
		return t.Elements[pos], nil
	case value.String:
		idx, err := numberIndex(idxVal, e.Span())
		if err != nil {
			return nil, err
		}
		runes := t.Runes()
		pos, err := normalizeIndex(idx, len(runes), e.Span())
		if err != nil {
			return nil, err
		}
		return value.String(string(runes[pos])), nil
	case *value.Map:
		key, err := value.ToMapKey(idxVal)
		if err != nil {
			return nil, value.NewError(value.InvalidKeyType, "%v", err).WithSpan(e.Span())
		}
		v, ok := t.Get(key)
		if !ok {
			return nil, value.NewError(value.KeyNotFound, "key not found: %s", idxVal.String()).WithSpan(e.Span())
		}
		return v, nil
	default:
		return nil, value.NewError(value.TypeError, "cannot index a %s", target.Kind()).WithSpan(e.Span())
	}
}

// evalSlice implements `target[start:end]`: omitted bounds default to the
// sequence's ends; both are clamped into [0, len] (spec §4.3).
func (i *Interp) evalSlice(e *ast.SliceExpr, env *value.Env) (value.Value, error) {
	target, err := i.evalExpr(e.Target, env)
	if err != nil {
		return nil, err
	}

	var length int
	switch target.(type) {
	case *value.List, value.String:
	default:
		return nil, value.NewError(value.TypeError, "cannot slice a %s", target.Kind()).WithSpan(e.Span())
	}
	if l, ok := target.(*value.List); ok {
		length = len(l.Elements)
	} else {
		length = len(target.(value.String).Runes())
	}

	start, end, err := i.sliceBounds(e, env, length)
	if err != nil {
		return nil, err
	}

	if l, ok := target.(*value.List); ok {
		elems := append([]value.Value{}, l.Elements[start:end]...)
		return value.NewList(elems), nil
	}
	runes := target.(value.String).Runes()
	return value.String(string(runes[start:end])), nil
}

func (i *Interp) sliceBounds(e *ast.SliceExpr, env *value.Env, length int) (int, int, error) {
	start := 0
	end := length
	if e.Start != nil {
		v, err := i.evalExpr(e.Start, env)
		if err != nil {
			return 0, 0, err
		}
		n, err := numberIndex(v, e.Span())
		if err != nil {
			return 0, 0, err
		}
		start = clampSliceBound(n, length)
	}
	if e.End != nil {
		v, err := i.evalExpr(e.End, env)
		if err != nil {
			return 0, 0, err
		}
		n, err := numberIndex(v, e.Span())
		if err != nil {
			return 0, 0, err
		}
		end = clampSliceBound(n, length)
	}
	if end < start {
		end = start
	}
	return start, end, nil
}

func clampSliceBound(n, length int) int {
	if n < 0 {
		n += length
	}
	if n < 0 {
		return 0
	}
	if n > length {
		return length
	}
	return n
}

// evalMapAccessByName implements `m:key` identifier-style access, returning
// Nil on a missing key rather than erroring (spec §4.3 "Map access").
func (i *Interp) evalMapAccessByName(e *ast.MapAccessByName, env *value.Env) (value.Value, error) {
	target, err := i.evalExpr(e.Target, env)
	if err != nil {
		return nil, err
	}
	m, ok := target.(*value.Map)
	if !ok {
		return nil, value.NewError(value.TypeError, "cannot access field %q on a %s", e.Key, target.Kind()).WithSpan(e.Span())
	}
	key, _ := value.ToMapKey(value.String(e.Key))
	v, ok := m.Get(key)
	if !ok {
		return value.Nil, nil
	}
	return v, nil
}

func numberIndex(v value.Value, sp span.Span) (int64, error) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, value.NewError(value.TypeError, "index must be a number, got %s", v.Kind()).WithSpan(sp)
	}
	idx, err := n.ToInt64()
	if err != nil {
		return 0, value.NewError(value.InvalidNumberConversion, "%v", err).WithSpan(sp)
	}
	return idx, nil
}

// normalizeIndex converts a possibly-negative index into an in-bounds Go
// slice position, erroring if it falls outside [0, length) (spec §4.3
// "Indices may be negative; bounds are checked").
func normalizeIndex(idx int64, length int, sp span.Span) (int, error) {
	pos := idx
	if pos < 0 {
		pos += int64(length)
	}
	if pos < 0 || pos >= int64(length) {
		return 0, value.NewError(value.IndexOutOfBounds, "index %d out of bounds for length %d", idx, length).WithSpan(sp)
	}
	return int(pos), nil
}
