package interp

import (
	"regexp"
	"strings"

	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/value"
)

// evalExpr is the expression dispatch table (spec §4.3 "Expression
// evaluation highlights").
func (i *Interp) evalExpr(expr ast.Expr, env *value.Env) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		n, err := value.NewNumber(e.Text)
		if err != nil {
			return nil, value.NewError(value.InvalidNumberConversion, "%v", err).WithSpan(e.Span())
		}
		return n, nil
	case *ast.BooleanLiteral:
		return value.Boolean(e.Value), nil
	case *ast.NilLiteral:
		return value.Nil, nil
	case *ast.Identifier:
		return i.evalIdentifier(e, env)
	case *ast.ListLiteral:
		return i.evalListLiteral(e, env)
	case *ast.MapLiteral:
		return i.evalMapLiteral(e, env)
	case *ast.TupleLiteral:
		return i.evalTupleLiteral(e, env)
	case *ast.RegexLiteral:
		return i.evalRegexLiteral(e)
	case *ast.StringTemplate:
		return i.evalStringTemplate(e, env)
	case *ast.ShellCommandTemplate:
		return i.evalShellTemplate(e, env)
	case *ast.GroupingExpr:
		return i.evalExpr(e.Expr, env)
	case *ast.UnaryExpr:
		return i.evalUnary(e, env)
	case *ast.BinaryExpr:
		return i.evalBinary(e, env)
	case *ast.PostfixExpr:
		return i.evalPostfix(e, env)
	case *ast.CallExpr:
		return i.evalCall(e, env)
	case *ast.MethodCallExpr:
		return i.evalMethodCall(e, env)
	case *ast.IndexExpr:
		return i.evalIndex(e, env)
	case *ast.SliceExpr:
		return i.evalSlice(e, env)
	case *ast.MapAccessByName:
		return i.evalMapAccessByName(e, env)
	case *ast.AssignExpr:
		return i.evalAssign(e, env)
	case *ast.CompoundAssignExpr:
		return i.evalCompoundAssign(e, env)
	case *ast.DestructureExpr:
		return i.evalDestructure(e, env)
	case *ast.FunctionLiteral:
		return i.evalFunctionLiteral(e, env), nil
	case *ast.MatchExpr:
		return i.evalMatch(e, env)
	case *ast.ReturnExpr:
		return i.evalReturn(e, env)
	case *ast.BreakExpr:
		return nil, value.NewBreak(e.Label).WithSpan(e.Span())
	case *ast.ContinueExpr:
		return nil, value.NewContinue(e.Label).WithSpan(e.Span())
	default:
		return nil, value.NewError(value.InvalidOperation, "unhandled expression type %T", expr).WithSpan(expr.Span())
	}
}

func (i *Interp) evalIdentifier(e *ast.Identifier, env *value.Env) (value.Value, error) {
	v, ok := env.Get(e.Name)
	if !ok {
		return nil, value.NewError(value.UndefinedVariable, "undefined variable: %s", e.Name).WithSpan(e.Span())
	}
	return v, nil
}

func (i *Interp) evalListLiteral(e *ast.ListLiteral, env *value.Env) (value.Value, error) {
	elems := make([]value.Value, len(e.Elements))
	for idx, el := range e.Elements {
		v, err := i.evalExpr(el, env)
		if err != nil {
			return nil, err
		}
		elems[idx] = v
	}
	return value.NewList(elems), nil
}

func (i *Interp) evalTupleLiteral(e *ast.TupleLiteral, env *value.Env) (value.Value, error) {
	elems := make([]value.Value, len(e.Elements))
	for idx, el := range e.Elements {
		v, err := i.evalExpr(el, env)
		if err != nil {
			return nil, err
		}
		elems[idx] = v
	}
	return value.NewTuple(elems), nil
}

func (i *Interp) evalMapLiteral(e *ast.MapLiteral, env *value.Env) (value.Value, error) {
	m := value.NewMap()
	for _, entry := range e.Entries {
		var kv value.Value
		var err error
		if id, ok := entry.Key.(*ast.Identifier); ok {
			// A bare identifier key (`name: expr`) is the string "name".
			kv = value.String(id.Name)
		} else if kv, err = i.evalExpr(entry.Key, env); err != nil {
			return nil, err
		}
		key, err := value.ToMapKey(kv)
		if err != nil {
			return nil, value.NewError(value.InvalidKeyType, "%v", err).WithSpan(entry.Key.Span())
		}
		val, err := i.evalExpr(entry.Value, env)
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
	}
	return m, nil
}

func (i *Interp) evalRegexLiteral(e *ast.RegexLiteral) (value.Value, error) {
	compiled, err := regexp.Compile(e.Pattern)
	if err != nil {
		return nil, value.NewError(value.RegexError, "invalid regex /%s/: %v", e.Pattern, err).WithSpan(e.Span())
	}
	return &value.Regex{Source: e.Pattern, Compiled: compiled}, nil
}

func (i *Interp) evalStringTemplate(e *ast.StringTemplate, env *value.Env) (value.Value, error) {
	var sb strings.Builder
	for _, part := range e.Parts {
		if part.Expr == nil {
			sb.WriteString(part.Text)
			continue
		}
		v, err := i.evalExpr(part.Expr, env)
		if err != nil {
			return nil, err
		}
		sb.WriteString(stringify(v))
	}
	return value.String(sb.String()), nil
}

// stringify is the value-to-text rule used by string interpolation and
// to_string(): strings pass through bare, everything else uses String().
func stringify(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return string(s)
	}
	return v.String()
}

func (i *Interp) evalFunctionLiteral(e *ast.FunctionLiteral, env *value.Env) value.Value {
	return &value.Function{Params: e.Params, Body: e.Body, Env: env}
}

func (i *Interp) evalReturn(e *ast.ReturnExpr, env *value.Env) (value.Value, error) {
	values := make([]value.Value, len(e.Values))
	for idx, v := range e.Values {
		ev, err := i.evalExpr(v, env)
		if err != nil {
			return nil, err
		}
		values[idx] = ev
	}
	return nil, value.NewReturn(values).WithSpan(e.Span())
}
