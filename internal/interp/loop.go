package interp

import (
	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/value"
)

// evalLoop covers both the bare `loop { ... }` form and `loop through
// <source> [with b1[, b2]] [as label] { ... }` (spec §4.3 "Loop"/
// "LoopThrough"). Each iteration gets a fresh child frame; break/continue
// ride the RuntimeError ControlFlow channel and are intercepted here when
// unlabeled or labeled to match s.Label, otherwise re-raised.
func (i *Interp) evalLoop(s *ast.LoopStmt, env *value.Env) (value.Value, error) {
	if s.Source == nil {
		return i.evalBareLoop(s, env)
	}
	return i.evalLoopThrough(s, env)
}

func (i *Interp) evalBareLoop(s *ast.LoopStmt, env *value.Env) (value.Value, error) {
	for {
		_, err := i.evalStmt(s.Body, value.NewChildEnv(env))
		if err == nil {
			continue
		}
		if cf, ok := value.AsControlFlow(err); ok && i.targetsThisLoop(cf, s.Label) {
			if cf.Flow == value.FlowBreak {
				return value.Nil, nil
			}
			continue // Continue
		}
		return nil, err
	}
}

func (i *Interp) evalLoopThrough(s *ast.LoopStmt, env *value.Env) (value.Value, error) {
	src, err := i.evalExpr(s.Source, env)
	if err != nil {
		return nil, err
	}

	switch source := src.(type) {
	case *value.Map:
		for _, key := range source.Keys() {
			val, _ := source.Get(key)
			child := value.NewChildEnv(env)
			i.bindMapIterationStep(s, child, key.Value(), val)
			done, result, err := i.runLoopStep(s, child)
			if err != nil {
				return nil, err
			}
			if done {
				return result, nil
			}
		}
	default:
		elems, err := iterableElements(src)
		if err != nil {
			return nil, err
		}
		for idx, el := range elems {
			child := value.NewChildEnv(env)
			i.bindSequenceIterationStep(s, child, idx, el)
			done, result, err := i.runLoopStep(s, child)
			if err != nil {
				return nil, err
			}
			if done {
				return result, nil
			}
		}
	}
	return value.Nil, nil
}

// runLoopStep evaluates one iteration's body, reporting (done, result, err)
// where done is true when a matching break ended the loop early.
func (i *Interp) runLoopStep(s *ast.LoopStmt, child *value.Env) (bool, value.Value, error) {
	_, err := i.evalStmt(s.Body, child)
	if err == nil {
		return false, nil, nil
	}
	if cf, ok := value.AsControlFlow(err); ok && i.targetsThisLoop(cf, s.Label) {
		if cf.Flow == value.FlowBreak {
			return true, value.Nil, nil
		}
		return false, nil, nil // Continue: fall through to next iteration
	}
	return true, nil, err
}

// targetsThisLoop reports whether a break/continue signal is aimed at this
// loop: unlabeled targets the innermost enclosing loop (always true here,
// since an inner loop would have already intercepted it), labeled requires
// an exact label match.
func (i *Interp) targetsThisLoop(cf *value.RuntimeError, label string) bool {
	return cf.Label == "" || cf.Label == label
}

// bindMapIterationStep implements LoopThrough over a Map: None discards,
// One binds the key, Two binds (key, value) (spec §4.3).
func (i *Interp) bindMapIterationStep(s *ast.LoopStmt, env *value.Env, key, val value.Value) {
	switch s.Shape {
	case ast.LoopBindingOne:
		env.Define(s.Bind1, key)
	case ast.LoopBindingTwo:
		env.Define(s.Bind1, key)
		env.Define(s.Bind2, val)
	}
}

// bindSequenceIterationStep implements LoopThrough over List/Tuple/String/
// Range: None discards, One binds the element, Two binds (index, element).
func (i *Interp) bindSequenceIterationStep(s *ast.LoopStmt, env *value.Env, index int, el value.Value) {
	switch s.Shape {
	case ast.LoopBindingOne:
		env.Define(s.Bind1, el)
	case ast.LoopBindingTwo:
		env.Define(s.Bind1, value.NumberFromInt(index))
		env.Define(s.Bind2, el)
	}
}

// iterableElements extracts the element sequence of a List, Tuple, or
// String (by Unicode scalar value) iteration source.
func iterableElements(v value.Value) ([]value.Value, error) {
	switch x := v.(type) {
	case *value.List:
		return x.Elements, nil
	case *value.Tuple:
		return x.Elements, nil
	case value.String:
		runes := x.Runes()
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = value.String(string(r))
		}
		return out, nil
	default:
		return nil, value.NewError(value.TypeError, "cannot iterate over a %s", v.Kind())
	}
}
