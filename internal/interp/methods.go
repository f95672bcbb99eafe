package interp

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/value"
)

// evalMethodCall dispatches `value::name(args)` by the receiver's runtime
// kind (spec §4.3.1). Mutating methods (List push/pop) require the
// receiver to be a mutable variable slot, not a temporary; that check is
// done on the receiver expression (isMutableTarget: an Identifier,
// IndexExpr or MapAccessByName), so a literal or call result is rejected.
// Since List/Map are reference types, the *value.List we hold aliases the
// owning binding and is mutated in place.
func (i *Interp) evalMethodCall(e *ast.MethodCallExpr, env *value.Env) (value.Value, error) {
	target, err := i.evalExpr(e.Target, env)
	if err != nil {
		return nil, err
	}
	args, err := i.evalArgs(e.Args, env)
	if err != nil {
		return nil, err
	}

	if isUniversal(e.Method) {
		return evalUniversalMethod(e, target, e.Method)
	}

	switch t := target.(type) {
	case value.Number:
		return evalNumberMethod(e, t, args)
	case value.String:
		return i.evalStringMethod(e, t, args)
	case *value.List:
		return i.evalListMethod(e, t, args, e.Target, env)
	case *value.Map:
		return evalMapMethod(e, t, args)
	case *value.Regex:
		return evalRegexMethod(e, t, args)
	case *value.Stream:
		return evalStreamMethod(e, t, args)
	default:
		return nil, value.NewError(value.MethodError, "%s has no method %q", target.Kind(), e.Method).WithSpan(e.Span())
	}
}

func isUniversal(name string) bool {
	switch name {
	case "to_string", "is_number", "is_string", "is_list", "is_map",
		"is_tuple", "is_function", "is_regex", "is_bool", "is_stream":
		return true
	default:
		return false
	}
}

// evalUniversalMethod implements the kind-introspection/to_string family
// available on every value (spec §4.3.1 "Universal").
func evalUniversalMethod(e *ast.MethodCallExpr, v value.Value, name string) (value.Value, error) {
	switch name {
	case "to_string":
		return value.String(stringify(v)), nil
	case "is_number":
		return value.Boolean(v.Kind() == "number"), nil
	case "is_string":
		return value.Boolean(v.Kind() == "string"), nil
	case "is_list":
		return value.Boolean(v.Kind() == "list"), nil
	case "is_map":
		return value.Boolean(v.Kind() == "map"), nil
	case "is_tuple":
		return value.Boolean(v.Kind() == "tuple"), nil
	case "is_function":
		return value.Boolean(v.Kind() == "function"), nil
	case "is_regex":
		return value.Boolean(v.Kind() == "regex"), nil
	case "is_bool":
		return value.Boolean(v.Kind() == "boolean"), nil
	case "is_stream":
		return value.Boolean(v.Kind() == "stream"), nil
	default:
		return nil, value.NewError(value.MethodError, "unknown universal method %q", name).WithSpan(e.Span())
	}
}

// evalNumberMethod implements spec §4.3.1 "Number".
func evalNumberMethod(e *ast.MethodCallExpr, n value.Number, args []value.Value) (value.Value, error) {
	switch e.Method {
	case "abs":
		return value.NumberFromDecimal(n.Dec.Abs()), nil
	case "ceil":
		return value.NumberFromDecimal(n.Dec.Ceil()), nil
	case "floor":
		return value.NumberFromDecimal(n.Dec.Floor()), nil
	case "round":
		return value.NumberFromDecimal(n.Dec.Round(0)), nil
	case "sqrt":
		if n.Dec.IsNegative() {
			return nil, value.NewError(value.InvalidOperation, "sqrt of a negative number").WithSpan(e.Span())
		}
		f, _ := n.Dec.Float64()
		return value.NumberFromDecimal(decimal.NewFromFloat(sqrtFloat(f))), nil
	case "pow":
		other, err := requireNumberArg(e, args, 0)
		if err != nil {
			return nil, err
		}
		return value.NumberFromDecimal(n.Dec.Pow(other.Dec)), nil
	case "min":
		other, err := requireNumberArg(e, args, 0)
		if err != nil {
			return nil, err
		}
		if n.Dec.Cmp(other.Dec) <= 0 {
			return n, nil
		}
		return other, nil
	case "max":
		other, err := requireNumberArg(e, args, 0)
		if err != nil {
			return nil, err
		}
		if n.Dec.Cmp(other.Dec) >= 0 {
			return n, nil
		}
		return other, nil
	default:
		return nil, value.NewError(value.MethodError, "number has no method %q", e.Method).WithSpan(e.Span())
	}
}

func requireNumberArg(e *ast.MethodCallExpr, args []value.Value, idx int) (value.Number, error) {
	if idx >= len(args) {
		return value.Number{}, value.NewError(value.ArityMismatch, "%s requires %d argument(s)", e.Method, idx+1).WithSpan(e.Span())
	}
	n, ok := args[idx].(value.Number)
	if !ok {
		return value.Number{}, value.NewError(value.TypeError, "%s requires a number argument, got %s", e.Method, args[idx].Kind()).WithSpan(e.Span())
	}
	return n, nil
}

func sqrtFloat(f float64) float64 {
	if f == 0 {
		return 0
	}
	x := f
	for k := 0; k < 40; k++ {
		x = 0.5 * (x + f/x)
	}
	return x
}

// evalStringMethod implements spec §4.3.1 "String".
func (i *Interp) evalStringMethod(e *ast.MethodCallExpr, s value.String, args []value.Value) (value.Value, error) {
	switch e.Method {
	case "length":
		return value.NumberFromInt(len(s.Runes())), nil
	case "contains":
		arg, err := requireStringArg(e, args, 0)
		if err != nil {
			return nil, err
		}
		return value.Boolean(strings.Contains(string(s), string(arg))), nil
	case "starts_with":
		arg, err := requireStringArg(e, args, 0)
		if err != nil {
			return nil, err
		}
		return value.Boolean(strings.HasPrefix(string(s), string(arg))), nil
	case "ends_with":
		arg, err := requireStringArg(e, args, 0)
		if err != nil {
			return nil, err
		}
		return value.Boolean(strings.HasSuffix(string(s), string(arg))), nil
	case "replace":
		from, err := requireStringArg(e, args, 0)
		if err != nil {
			return nil, err
		}
		to, err := requireStringArg(e, args, 1)
		if err != nil {
			return nil, err
		}
		return value.String(strings.ReplaceAll(string(s), string(from), string(to))), nil
	case "trim":
		return value.String(strings.TrimSpace(string(s))), nil
	case "upper":
		return value.String(strings.ToUpper(string(s))), nil
	case "lower":
		return value.String(strings.ToLower(string(s))), nil
	case "reverse":
		runes := s.Runes()
		out := make([]rune, len(runes))
		for idx, r := range runes {
			out[len(runes)-1-idx] = r
		}
		return value.String(string(out)), nil
	case "repeat":
		n, err := requireNumberArg(e, args, 0)
		if err != nil {
			return nil, err
		}
		count, err := n.ToInt64()
		if err != nil || count < 0 {
			return nil, value.NewError(value.InvalidNumberConversion, "repeat requires a non-negative integer").WithSpan(e.Span())
		}
		return value.String(strings.Repeat(string(s), int(count))), nil
	case "to_list":
		runes := s.Runes()
		out := make([]value.Value, len(runes))
		for idx, r := range runes {
			out[idx] = value.String(string(r))
		}
		return value.NewList(out), nil
	case "split":
		sep, err := requireStringArg(e, args, 0)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(string(s), string(sep))
		out := make([]value.Value, len(parts))
		for idx, p := range parts {
			out[idx] = value.String(p)
		}
		return value.NewList(out), nil
	default:
		return nil, value.NewError(value.MethodError, "string has no method %q", e.Method).WithSpan(e.Span())
	}
}

func requireStringArg(e *ast.MethodCallExpr, args []value.Value, idx int) (value.String, error) {
	if idx >= len(args) {
		return "", value.NewError(value.ArityMismatch, "%s requires %d argument(s)", e.Method, idx+1).WithSpan(e.Span())
	}
	s, ok := args[idx].(value.String)
	if !ok {
		return "", value.NewError(value.TypeError, "%s requires a string argument, got %s", e.Method, args[idx].Kind()).WithSpan(e.Span())
	}
	return s, nil
}

// evalListMethod implements spec §4.3.1 "List". push/pop mutate the
// receiver in place; since target is only reachable through an assignable
// expression (an identifier or a container already rooted in one), the
// *value.List we hold is the binding's own storage.
func (i *Interp) evalListMethod(e *ast.MethodCallExpr, l *value.List, args []value.Value, targetExpr ast.Expr, env *value.Env) (value.Value, error) {
	switch e.Method {
	case "length":
		return value.NumberFromInt(len(l.Elements)), nil
	case "push":
		if len(args) != 1 {
			return nil, value.NewError(value.ArityMismatch, "push requires 1 argument").WithSpan(e.Span())
		}
		if !isMutableTarget(targetExpr) {
			return nil, value.NewError(value.MethodError, "Cannot call mutating method on immutable value").WithSpan(e.Span())
		}
		l.Elements = append(l.Elements, args[0])
		return l, nil
	case "pop":
		if !isMutableTarget(targetExpr) {
			return nil, value.NewError(value.MethodError, "Cannot call mutating method on immutable value").WithSpan(e.Span())
		}
		if len(l.Elements) == 0 {
			return nil, value.NewError(value.IndexOutOfBounds, "pop on an empty list").WithSpan(e.Span())
		}
		last := l.Elements[len(l.Elements)-1]
		l.Elements = l.Elements[:len(l.Elements)-1]
		return last, nil
	case "map":
		fn, err := requireFunctionArg(e, args, 0)
		if err != nil {
			return nil, err
		}
		out := make([]value.Value, len(l.Elements))
		for idx, el := range l.Elements {
			v, err := i.callFunction(fn, []value.Value{el}, e.Span())
			if err != nil {
				return nil, err
			}
			out[idx] = v
		}
		return value.NewList(out), nil
	case "filter":
		fn, err := requireFunctionArg(e, args, 0)
		if err != nil {
			return nil, err
		}
		var out []value.Value
		for _, el := range l.Elements {
			v, err := i.callFunction(fn, []value.Value{el}, e.Span())
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				out = append(out, el)
			}
		}
		return value.NewList(out), nil
	case "fold":
		if len(args) != 2 {
			return nil, value.NewError(value.ArityMismatch, "fold requires 2 arguments").WithSpan(e.Span())
		}
		fn, ok := args[1].(*value.Function)
		if !ok {
			return nil, value.NewError(value.TypeError, "fold requires a function argument").WithSpan(e.Span())
		}
		acc := args[0]
		for _, el := range l.Elements {
			v, err := i.callFunction(fn, []value.Value{acc, el}, e.Span())
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil
	case "reverse":
		out := make([]value.Value, len(l.Elements))
		for idx, el := range l.Elements {
			out[len(l.Elements)-1-idx] = el
		}
		return value.NewList(out), nil
	default:
		return nil, value.NewError(value.MethodError, "list has no method %q", e.Method).WithSpan(e.Span())
	}
}

// isMutableTarget reports whether a method-call target expression is an
// assignable place (spec §4.3.1 "mutating methods require ... a mutable
// variable slot, not a temporary") rather than a literal or the result of
// a call/index chain rooted in neither.
func isMutableTarget(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.IndexExpr, *ast.MapAccessByName:
		return true
	default:
		return false
	}
}

func requireFunctionArg(e *ast.MethodCallExpr, args []value.Value, idx int) (*value.Function, error) {
	if idx >= len(args) {
		return nil, value.NewError(value.ArityMismatch, "%s requires %d argument(s)", e.Method, idx+1).WithSpan(e.Span())
	}
	fn, ok := args[idx].(*value.Function)
	if !ok {
		return nil, value.NewError(value.TypeError, "%s requires a function argument, got %s", e.Method, args[idx].Kind()).WithSpan(e.Span())
	}
	return fn, nil
}

// evalMapMethod implements spec §4.3.1 "Map".
func evalMapMethod(e *ast.MethodCallExpr, m *value.Map, args []value.Value) (value.Value, error) {
	switch e.Method {
	case "length":
		return value.NumberFromInt(m.Len()), nil
	case "keys":
		keys := m.Keys()
		out := make([]value.Value, len(keys))
		for idx, k := range keys {
			out[idx] = k.Value()
		}
		return value.NewList(out), nil
	case "values":
		keys := m.Keys()
		out := make([]value.Value, len(keys))
		for idx, k := range keys {
			v, _ := m.Get(k)
			out[idx] = v
		}
		return value.NewList(out), nil
	case "to_list":
		keys := m.Keys()
		out := make([]value.Value, len(keys))
		for idx, k := range keys {
			v, _ := m.Get(k)
			out[idx] = value.NewTuple([]value.Value{k.Value(), v})
		}
		return value.NewList(out), nil
	default:
		return nil, value.NewError(value.MethodError, "map has no method %q", e.Method).WithSpan(e.Span())
	}
}

// evalRegexMethod implements spec §4.3.1 "Regex": only to_string() is
// named; it emits the canonical `/pattern/` form.
func evalRegexMethod(e *ast.MethodCallExpr, r *value.Regex, args []value.Value) (value.Value, error) {
	switch e.Method {
	case "to_string":
		return value.String(r.String()), nil
	default:
		return nil, value.NewError(value.MethodError, "regex has no method %q", e.Method).WithSpan(e.Span())
	}
}

// evalStreamMethod implements spec §4.3.1 "Stream". Operating on a closed
// stream is a runtime error.
func evalStreamMethod(e *ast.MethodCallExpr, s *value.Stream, args []value.Value) (value.Value, error) {
	if s.Closed && e.Method != "close" {
		return nil, value.NewError(value.StreamError, "operation on a closed stream").WithSpan(e.Span())
	}
	switch e.Method {
	case "read_line":
		if s.Reader == nil {
			return nil, value.NewError(value.StreamError, "stream is not readable").WithSpan(e.Span())
		}
		line, ok, err := s.Reader.ReadLine()
		if err != nil {
			return nil, value.NewError(value.StreamError, "%v", err).WithSpan(e.Span())
		}
		if !ok {
			return value.Nil, nil
		}
		return value.String(line), nil
	case "read_lines":
		if s.Reader == nil {
			return nil, value.NewError(value.StreamError, "stream is not readable").WithSpan(e.Span())
		}
		var lines []value.Value
		for {
			line, ok, err := s.Reader.ReadLine()
			if err != nil {
				return nil, value.NewError(value.StreamError, "%v", err).WithSpan(e.Span())
			}
			if !ok {
				break
			}
			lines = append(lines, value.String(line))
		}
		return value.NewList(lines), nil
	case "read_all":
		if s.Reader == nil {
			return nil, value.NewError(value.StreamError, "stream is not readable").WithSpan(e.Span())
		}
		var sb strings.Builder
		for {
			line, ok, err := s.Reader.ReadLine()
			if err != nil {
				return nil, value.NewError(value.StreamError, "%v", err).WithSpan(e.Span())
			}
			if !ok {
				break
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		return value.String(sb.String()), nil
	case "write":
		if s.Writer == nil {
			return nil, value.NewError(value.StreamError, "stream is not writable").WithSpan(e.Span())
		}
		str, err := requireStringArg(e, args, 0)
		if err != nil {
			return nil, err
		}
		n, err := s.Writer.WriteString(string(str))
		if err != nil {
			return nil, value.NewError(value.StreamError, "%v", err).WithSpan(e.Span())
		}
		return value.NumberFromInt(n), nil
	case "close":
		s.Closed = true
		return value.Nil, nil
	default:
		return nil, value.NewError(value.MethodError, "stream has no method %q", e.Method).WithSpan(e.Span())
	}
}
