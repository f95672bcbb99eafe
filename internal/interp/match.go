package interp

import (
	"regexp"

	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/span"
	"github.com/suji-lang/suji/internal/value"
)

// compileRegex compiles a RegexPattern's source eagerly at match time,
// matching the same "malformed patterns are a runtime error" rule as
// Regex-literal evaluation (spec §4.3 "Literals").
func compileRegex(pattern string, sp span.Span) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, value.NewError(value.RegexError, "invalid regex /%s/: %v", pattern, err).WithSpan(sp)
	}
	return re, nil
}

// evalMatch handles both match forms (spec §4.3, §8.2 example 5):
// conditional (Scrutinee nil, arms are boolean guards) and structural
// (arms are shape patterns tested against the scrutinee's value).
func (i *Interp) evalMatch(e *ast.MatchExpr, env *value.Env) (value.Value, error) {
	if e.Scrutinee == nil {
		return i.evalConditionalMatch(e, env)
	}
	return i.evalStructuralMatch(e, env)
}

func (i *Interp) evalConditionalMatch(e *ast.MatchExpr, env *value.Env) (value.Value, error) {
	for _, arm := range e.Arms {
		matched, err := i.evalGuard(arm.Pattern, env)
		if err != nil {
			return nil, err
		}
		if matched {
			return i.evalMatchArmBody(arm.Body, env)
		}
	}
	return nil, value.NewError(value.InvalidOperation, "no match arm satisfied").WithSpan(e.Span())
}

func (i *Interp) evalGuard(pat ast.Pattern, env *value.Env) (bool, error) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return true, nil
	case *ast.GuardPattern:
		v, err := i.evalExpr(p.Cond, env)
		if err != nil {
			return false, err
		}
		return value.Truthy(v), nil
	default:
		return false, value.NewError(value.InvalidOperation, "invalid conditional-match pattern").WithSpan(pat.Span())
	}
}

func (i *Interp) evalStructuralMatch(e *ast.MatchExpr, env *value.Env) (value.Value, error) {
	scrutinee, err := i.evalExpr(e.Scrutinee, env)
	if err != nil {
		return nil, err
	}
	for _, arm := range e.Arms {
		if !ast.CanMatchValue(arm.Pattern, scrutinee.Kind()) {
			continue
		}
		child := value.NewChildEnv(env)
		matched, err := i.matchPattern(arm.Pattern, scrutinee, child)
		if err != nil {
			return nil, err
		}
		if matched {
			return i.evalMatchArmBody(arm.Body, child)
		}
	}
	return nil, value.NewError(value.InvalidOperation, "no match arm satisfied").WithSpan(e.Span())
}

// matchPattern tests scrutinee against pat, binding captures into env on a
// successful match (spec §3.3 pattern kinds).
func (i *Interp) matchPattern(pat ast.Pattern, scrutinee value.Value, env *value.Env) (bool, error) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return true, nil
	case *ast.BindingPattern:
		env.Define(p.Name, scrutinee)
		return true, nil
	case *ast.LiteralPattern:
		lit, err := i.evalExpr(p.Literal, env)
		if err != nil {
			return false, err
		}
		return value.Equal(lit, scrutinee), nil
	case *ast.RegexPattern:
		s, ok := scrutinee.(value.String)
		if !ok {
			return false, nil
		}
		re, err := compileRegex(p.Pattern, p.Span())
		if err != nil {
			return false, err
		}
		return re.MatchString(string(s)), nil
	case *ast.TuplePattern:
		tup, ok := scrutinee.(*value.Tuple)
		if !ok || len(tup.Elements) != len(p.Elements) {
			return false, nil
		}
		for idx, sub := range p.Elements {
			matched, err := i.matchPattern(sub, tup.Elements[idx], env)
			if err != nil {
				return false, err
			}
			if !matched {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, value.NewError(value.InvalidOperation, "invalid structural-match pattern").WithSpan(pat.Span())
	}
}

// evalMatchArmBody evaluates an arm's body (an ExprStmt for `=> expr` arms,
// a Block for `{ ... }` arms); evalBlock already yields its last
// statement's value, giving the implicit-return behavior the original
// match_expr.rs documents (SPEC_FULL.md §3).
func (i *Interp) evalMatchArmBody(body ast.Stmt, env *value.Env) (value.Value, error) {
	return i.evalStmt(body, env)
}
