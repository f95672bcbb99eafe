package interp

import (
	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/span"
	"github.com/suji-lang/suji/internal/value"
)

// evalCall evaluates a `callee(args...)` expression (spec §4.3 "Function
// calls"): the callee must be a Function, builtin or user-defined.
func (i *Interp) evalCall(e *ast.CallExpr, env *value.Env) (value.Value, error) {
	callee, err := i.evalExpr(e.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*value.Function)
	if !ok {
		return nil, value.NewError(value.TypeError, "cannot call a %s", callee.Kind()).WithSpan(e.Span())
	}
	args, err := i.evalArgs(e.Args, env)
	if err != nil {
		return nil, err
	}
	return i.callFunction(fn, args, e.Span())
}

func (i *Interp) evalArgs(exprs []ast.Expr, env *value.Env) ([]value.Value, error) {
	args := make([]value.Value, len(exprs))
	for idx, a := range exprs {
		v, err := i.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}
	return args, nil
}

// callFunction implements arity checking (supplied count between params −
// defaults and params), default evaluation in the function's captured
// environment, deep-copy-on-bind, and Return interception (spec §4.3
// "Function calls").
func (i *Interp) callFunction(fn *value.Function, args []value.Value, callSpan span.Span) (value.Value, error) {
	if fn.Builtin != nil {
		v, err := fn.Builtin(args)
		if err != nil {
			if re, ok := err.(*value.RuntimeError); ok {
				return nil, re.WithSpan(callSpan)
			}
			return nil, value.NewError(value.InvalidOperation, "%v", err).WithSpan(callSpan)
		}
		return v, nil
	}

	minArgs := 0
	for _, p := range fn.Params {
		if p.Default == nil {
			minArgs++
		}
	}
	if len(args) < minArgs || len(args) > len(fn.Params) {
		return nil, value.NewError(value.ArityMismatch,
			"function %s expects between %d and %d arguments, got %d",
			fnName(fn), minArgs, len(fn.Params), len(args)).WithSpan(callSpan)
	}

	callEnv := value.NewChildEnv(fn.Env)
	for idx, p := range fn.Params {
		if idx < len(args) {
			callEnv.Define(p.Name, value.DeepCopy(args[idx]))
			continue
		}
		def, err := i.evalExpr(p.Default, fn.Env)
		if err != nil {
			return nil, err
		}
		callEnv.Define(p.Name, value.DeepCopy(def))
	}

	result, err := i.evalStmt(fn.Body, callEnv)
	if err != nil {
		if cf, ok := value.AsControlFlow(err); ok && cf.Flow == value.FlowReturn {
			return unwrapReturn(cf.Returns), nil
		}
		return nil, err
	}
	return result, nil
}

func fnName(fn *value.Function) string {
	if fn.Name != "" {
		return fn.Name
	}
	return "<anonymous>"
}

// unwrapReturn collapses a Return signal's wrapped Tuple back to a single
// value for the common one-value case, matching how `return` appears to
// produce a plain value at call sites that don't destructure it.
func unwrapReturn(t *value.Tuple) value.Value {
	switch len(t.Elements) {
	case 0:
		return value.Nil
	case 1:
		return t.Elements[0]
	default:
		return t
	}
}
