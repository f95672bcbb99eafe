package interp

import (
	"github.com/shopspring/decimal"

	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/value"
)

// evalUnary implements `-` on Number and `!` on Boolean (spec §4.3
// "Unary"); anything else is a type error.
func (i *Interp) evalUnary(e *ast.UnaryExpr, env *value.Env) (value.Value, error) {
	v, err := i.evalExpr(e.Expr, env)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.UnaryNeg:
		n, ok := v.(value.Number)
		if !ok {
			return nil, value.NewError(value.TypeError, "cannot negate a %s", v.Kind()).WithSpan(e.Span())
		}
		return value.NumberFromDecimal(n.Dec.Neg()), nil
	case ast.UnaryNot:
		b, ok := v.(value.Boolean)
		if !ok {
			return nil, value.NewError(value.TypeError, "cannot negate (!) a %s", v.Kind()).WithSpan(e.Span())
		}
		return value.Boolean(!bool(b)), nil
	default:
		return nil, value.NewError(value.InvalidOperation, "unknown unary operator").WithSpan(e.Span())
	}
}

// evalBinary dispatches on operator family: short-circuiting logic first
// (so the right operand isn't evaluated needlessly), then the
// pipe/compose family (pipe.go), then eager arithmetic/comparison/regex.
func (i *Interp) evalBinary(e *ast.BinaryExpr, env *value.Env) (value.Value, error) {
	switch e.Op {
	case ast.BinAnd:
		return i.evalLogicAnd(e, env)
	case ast.BinOr:
		return i.evalLogicOr(e, env)
	case ast.BinComposeRight, ast.BinComposeLeft, ast.BinPipeForward, ast.BinPipeBackward, ast.BinStreamPipe:
		return i.evalPipeOrCompose(e, env)
	}

	left, err := i.evalExpr(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(e.Right, env)
	if err != nil {
		return nil, err
	}
	return i.applyBinaryValues(e, left, right)
}

// applyBinaryValues applies every non-short-circuiting, non-pipe binary
// operator to already-evaluated operands. Shared by evalBinary and
// evalCompoundAssign (assign.go), whose `+=`-family operators reduce to
// the same arithmetic over a pre-evaluated left-hand side.
func (i *Interp) applyBinaryValues(e *ast.BinaryExpr, left, right value.Value) (value.Value, error) {
	switch e.Op {
	case ast.BinEq:
		return value.Boolean(value.Equal(left, right)), nil
	case ast.BinNeq:
		return value.Boolean(!value.Equal(left, right)), nil
	case ast.BinRegexMatch, ast.BinRegexNotMatch:
		return i.evalRegexMatch(e, left, right)
	case ast.BinRangeExcl, ast.BinRangeIncl:
		return i.evalRange(e, left, right)
	}

	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)

	switch e.Op {
	case ast.BinLt, ast.BinLte, ast.BinGt, ast.BinGte:
		if !lok || !rok {
			return nil, value.NewError(value.TypeError, "cannot compare %s and %s", left.Kind(), right.Kind()).WithSpan(e.Span())
		}
		return value.Boolean(compareNumbers(e.Op, ln.Dec, rn.Dec)), nil
	case ast.BinAdd:
		if ls, ok := left.(value.String); ok {
			rs, ok := right.(value.String)
			if !ok {
				return nil, value.NewError(value.TypeError, "cannot add %s to a string", right.Kind()).WithSpan(e.Span())
			}
			return value.String(string(ls) + string(rs)), nil
		}
		if ll, ok := left.(*value.List); ok {
			rl, ok := right.(*value.List)
			if !ok {
				return nil, value.NewError(value.TypeError, "cannot add %s to a list", right.Kind()).WithSpan(e.Span())
			}
			out := make([]value.Value, 0, len(ll.Elements)+len(rl.Elements))
			out = append(out, ll.Elements...)
			out = append(out, rl.Elements...)
			return value.NewList(out), nil
		}
		if !lok || !rok {
			return nil, value.NewError(value.TypeError, "cannot add %s and %s", left.Kind(), right.Kind()).WithSpan(e.Span())
		}
		return value.NumberFromDecimal(ln.Dec.Add(rn.Dec)), nil
	case ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinMod, ast.BinPow:
		if !lok || !rok {
			return nil, value.NewError(value.TypeError, "cannot apply arithmetic to %s and %s", left.Kind(), right.Kind()).WithSpan(e.Span())
		}
		return evalNumericOp(e, ln.Dec, rn.Dec)
	default:
		return nil, value.NewError(value.InvalidOperation, "unknown binary operator").WithSpan(e.Span())
	}
}

func (i *Interp) evalLogicAnd(e *ast.BinaryExpr, env *value.Env) (value.Value, error) {
	left, err := i.evalExpr(e.Left, env)
	if err != nil {
		return nil, err
	}
	if !value.Truthy(left) {
		return left, nil
	}
	return i.evalExpr(e.Right, env)
}

func (i *Interp) evalLogicOr(e *ast.BinaryExpr, env *value.Env) (value.Value, error) {
	left, err := i.evalExpr(e.Left, env)
	if err != nil {
		return nil, err
	}
	if value.Truthy(left) {
		return left, nil
	}
	return i.evalExpr(e.Right, env)
}

func compareNumbers(op ast.BinaryOp, l, r decimal.Decimal) bool {
	cmp := l.Cmp(r)
	switch op {
	case ast.BinLt:
		return cmp < 0
	case ast.BinLte:
		return cmp <= 0
	case ast.BinGt:
		return cmp > 0
	case ast.BinGte:
		return cmp >= 0
	default:
		return false
	}
}

func evalNumericOp(e *ast.BinaryExpr, l, r decimal.Decimal) (value.Value, error) {
	switch e.Op {
	case ast.BinSub:
		return value.NumberFromDecimal(l.Sub(r)), nil
	case ast.BinMul:
		return value.NumberFromDecimal(l.Mul(r)), nil
	case ast.BinDiv:
		if r.IsZero() {
			return nil, value.NewError(value.InvalidOperation, "division by zero").WithSpan(e.Span())
		}
		return value.NumberFromDecimal(l.DivRound(r, 20)), nil
	case ast.BinMod:
		if r.IsZero() {
			return nil, value.NewError(value.InvalidOperation, "modulo by zero").WithSpan(e.Span())
		}
		return value.NumberFromDecimal(l.Mod(r)), nil
	case ast.BinPow:
		return value.NumberFromDecimal(l.Pow(r)), nil
	default:
		return nil, value.NewError(value.InvalidOperation, "unknown numeric operator").WithSpan(e.Span())
	}
}

// evalRegexMatch implements `~`/`!~`: match a String against a Regex (spec
// §4.3 "Binary ops").
func (i *Interp) evalRegexMatch(e *ast.BinaryExpr, left, right value.Value) (value.Value, error) {
	s, ok := left.(value.String)
	if !ok {
		return nil, value.NewError(value.TypeError, "regex match requires a string operand, got %s", left.Kind()).WithSpan(e.Span())
	}
	re, ok := right.(*value.Regex)
	if !ok {
		return nil, value.NewError(value.TypeError, "regex match requires a regex operand, got %s", right.Kind()).WithSpan(e.Span())
	}
	matched := re.Compiled.MatchString(string(s))
	if e.Op == ast.BinRegexNotMatch {
		matched = !matched
	}
	return value.Boolean(matched), nil
}

// evalRange implements `..`/`..=`: an exclusive/inclusive integer list,
// descending ranges allowed (spec §4.3 "Binary ops").
func (i *Interp) evalRange(e *ast.BinaryExpr, left, right value.Value) (value.Value, error) {
	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if !lok || !rok {
		return nil, value.NewError(value.TypeError, "range bounds must be numbers, got %s and %s", left.Kind(), right.Kind()).WithSpan(e.Span())
	}
	start, err := ln.ToInt64()
	if err != nil {
		return nil, value.NewError(value.InvalidNumberConversion, "%v", err).WithSpan(e.Span())
	}
	end, err := rn.ToInt64()
	if err != nil {
		return nil, value.NewError(value.InvalidNumberConversion, "%v", err).WithSpan(e.Span())
	}

	var elems []value.Value
	if start <= end {
		last := end
		if e.Op == ast.BinRangeExcl {
			last--
		}
		for n := start; n <= last; n++ {
			elems = append(elems, value.NumberFromInt(int(n)))
		}
	} else {
		last := end
		if e.Op == ast.BinRangeExcl {
			last++
		}
		for n := start; n >= last; n-- {
			elems = append(elems, value.NumberFromInt(int(n)))
		}
	}
	return value.NewList(elems), nil
}
