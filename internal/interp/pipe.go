package interp

import (
	"bytes"
	"io"

	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/value"
)

// evalPipeOrCompose implements the pipe/compose operator family (spec
// §4.3 "Pipe operators"): `|>`, `<|`, `>>`, `<<`, and stream pipe `|`.
func (i *Interp) evalPipeOrCompose(e *ast.BinaryExpr, env *value.Env) (value.Value, error) {
	switch e.Op {
	case ast.BinPipeForward:
		return i.evalPipeForward(e, env)
	case ast.BinPipeBackward:
		return i.evalPipeBackward(e, env)
	case ast.BinComposeRight:
		return i.evalCompose(e, env, false)
	case ast.BinComposeLeft:
		return i.evalCompose(e, env, true)
	case ast.BinStreamPipe:
		return i.evalStreamPipe(e, env)
	default:
		return nil, value.NewError(value.InvalidOperation, "unknown pipe operator").WithSpan(e.Span())
	}
}

// evalPipeForward implements `a |> f` ≡ `f(a)`.
func (i *Interp) evalPipeForward(e *ast.BinaryExpr, env *value.Env) (value.Value, error) {
	a, err := i.evalExpr(e.Left, env)
	if err != nil {
		return nil, err
	}
	fn, err := i.evalFunctionOperand(e.Right, env)
	if err != nil {
		return nil, err
	}
	return i.callFunction(fn, []value.Value{a}, e.Span())
}

// evalPipeBackward implements `f <| a` ≡ `f(a)` (right-associative, handled
// by the parser's precedence table).
func (i *Interp) evalPipeBackward(e *ast.BinaryExpr, env *value.Env) (value.Value, error) {
	fn, err := i.evalFunctionOperand(e.Left, env)
	if err != nil {
		return nil, err
	}
	a, err := i.evalExpr(e.Right, env)
	if err != nil {
		return nil, err
	}
	return i.callFunction(fn, []value.Value{a}, e.Span())
}

// evalCompose implements `f >> g` ≡ `|x| g(f(x))` and `f << g` ≡
// `|x| f(g(x))`; both sides must evaluate to functions.
func (i *Interp) evalCompose(e *ast.BinaryExpr, env *value.Env, leftOuter bool) (value.Value, error) {
	f, err := i.evalFunctionOperand(e.Left, env)
	if err != nil {
		return nil, err
	}
	g, err := i.evalFunctionOperand(e.Right, env)
	if err != nil {
		return nil, err
	}
	callSpan := e.Span()
	composed := func(args []value.Value) (value.Value, error) {
		if leftOuter {
			inner, err := i.callFunction(g, args, callSpan)
			if err != nil {
				return nil, err
			}
			return i.callFunction(f, []value.Value{inner}, callSpan)
		}
		inner, err := i.callFunction(f, args, callSpan)
		if err != nil {
			return nil, err
		}
		return i.callFunction(g, []value.Value{inner}, callSpan)
	}
	return &value.Function{Builtin: value.BuiltinFunc(composed)}, nil
}

func (i *Interp) evalFunctionOperand(expr ast.Expr, env *value.Env) (*value.Function, error) {
	v, err := i.evalExpr(expr, env)
	if err != nil {
		return nil, err
	}
	fn, ok := v.(*value.Function)
	if !ok {
		return nil, value.NewError(value.TypeError, "expected a function, got %s", v.Kind()).WithSpan(expr.Span())
	}
	return fn, nil
}

// evalStreamPipe implements `a | b` (spec §4.4): both operands must be
// invocations (a shell-command template or a call expression) yielding a
// nullary function — a bare identifier is a hard error. The left stage
// runs first; its captured output is wired as the right stage's stdin, the
// way a POSIX shell pipeline connects neighboring stages.
func (i *Interp) evalStreamPipe(e *ast.BinaryExpr, env *value.Env) (value.Value, error) {
	if !isStreamPipeOperand(e.Left) || !isStreamPipeOperand(e.Right) {
		return nil, value.NewError(value.InvalidOperation, "Pipe requires function invocations").WithSpan(e.Span())
	}
	leftResult, leftOut, err := i.runPipeStage(e.Left, env, nil)
	if err != nil {
		return nil, err
	}
	_ = leftResult
	_, rightOut, err := i.runPipeStage(e.Right, env, leftOut)
	if err != nil {
		return nil, err
	}
	return value.String(drainToString(rightOut)), nil
}

func isStreamPipeOperand(e ast.Expr) bool {
	switch e.(type) {
	case *ast.ShellCommandTemplate, *ast.CallExpr:
		return true
	default:
		return false
	}
}

// runPipeStage runs one side of a stream-pipe expression, returning its
// produced value and a reader over whatever it wrote to its output, so the
// next stage can consume it as stdin.
func (i *Interp) runPipeStage(e ast.Expr, env *value.Env, stdin io.Reader) (value.Value, io.Reader, error) {
	switch stage := e.(type) {
	case *ast.ShellCommandTemplate:
		cmdStr, err := i.assembleTemplate(stage.Parts, env)
		if err != nil {
			return nil, nil, err
		}
		if stdin == nil {
			stdin = i.stdin
		}
		out, err := i.runShellCommand(cmdStr, stdin)
		if err != nil {
			return nil, nil, value.NewError(value.ShellError, "%v", err).WithSpan(stage.Span())
		}
		return value.String(out), bytes.NewReader([]byte(out)), nil
	case *ast.CallExpr:
		invoked, err := i.evalCall(stage, env)
		if err != nil {
			return nil, nil, err
		}
		nullary, ok := invoked.(*value.Function)
		if !ok || len(nullary.Params) != 0 {
			return nil, nil, value.NewError(value.TypeError,
				"stream pipe invocation must yield a nullary function, got %s", invoked.Kind()).WithSpan(stage.Span())
		}
		prevStdin := i.stdin
		if stdin != nil {
			i.stdin = stdin
		}
		v, err := i.callFunction(nullary, nil, stage.Span())
		i.stdin = prevStdin
		if err != nil {
			return nil, nil, err
		}
		return v, bytes.NewReader([]byte(stringify(v))), nil
	default:
		return nil, nil, value.NewError(value.InvalidOperation, "Pipe requires function invocations").WithSpan(e.Span())
	}
}

func drainToString(r io.Reader) string {
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}
