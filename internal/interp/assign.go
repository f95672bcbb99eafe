package interp

import (
	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/value"
)

// evalAssign implements `target = value` for the three assignable shapes
// the parser accepts: Identifier, IndexExpr, MapAccessByName (spec §4.3
// "Map access" — "Element assignment mutates the owning variable binding
// found by walking the assignment target back to a root identifier").
// Lists/Maps are Go reference types, so mutating the container reached via
// the target's Target sub-expression is equivalent to that walk.
func (i *Interp) evalAssign(e *ast.AssignExpr, env *value.Env) (value.Value, error) {
	v, err := i.evalExpr(e.Value, env)
	if err != nil {
		return nil, err
	}
	if err := i.assignTo(e.Target, v, env); err != nil {
		return nil, err
	}
	return v, nil
}

func (i *Interp) assignTo(target ast.Expr, v value.Value, env *value.Env) error {
	switch t := target.(type) {
	case *ast.Identifier:
		env.DefineOrSet(t.Name, v)
		return nil
	case *ast.IndexExpr:
		return i.assignIndex(t, v, env)
	case *ast.MapAccessByName:
		return i.assignMapAccessByName(t, v, env)
	default:
		return value.NewError(value.InvalidOperation, "invalid assignment target").WithSpan(target.Span())
	}
}

func (i *Interp) assignIndex(t *ast.IndexExpr, v value.Value, env *value.Env) error {
	container, err := i.evalExpr(t.Target, env)
	if err != nil {
		return err
	}
	idxVal, err := i.evalExpr(t.Index, env)
	if err != nil {
		return err
	}
	switch c := container.(type) {
	case *value.List:
		idx, err := numberIndex(idxVal, t.Span())
		if err != nil {
			return err
		}
		pos, err := normalizeIndex(idx, len(c.Elements), t.Span())
		if err != nil {
			return err
		}
		c.Elements[pos] = v
		return nil
	case *value.Map:
		key, err := value.ToMapKey(idxVal)
		if err != nil {
			return value.NewError(value.InvalidKeyType, "%v", err).WithSpan(t.Span())
		}
		c.Set(key, v)
		return nil
	default:
		return value.NewError(value.TypeError, "cannot index-assign into a %s", container.Kind()).WithSpan(t.Span())
	}
}

func (i *Interp) assignMapAccessByName(t *ast.MapAccessByName, v value.Value, env *value.Env) error {
	container, err := i.evalExpr(t.Target, env)
	if err != nil {
		return err
	}
	m, ok := container.(*value.Map)
	if !ok {
		return value.NewError(value.TypeError, "cannot assign field %q on a %s", t.Key, container.Kind()).WithSpan(t.Span())
	}
	key, _ := value.ToMapKey(value.String(t.Key))
	m.Set(key, v)
	return nil
}

// evalCompoundAssign implements `+=`, `-=`, `*=`, `/=`, `%=`: read the
// target's current value, apply the corresponding binary operator, and
// assign the result back.
func (i *Interp) evalCompoundAssign(e *ast.CompoundAssignExpr, env *value.Env) (value.Value, error) {
	current, err := i.evalExpr(e.Target, env)
	if err != nil {
		return nil, err
	}
	rhs, err := i.evalExpr(e.Value, env)
	if err != nil {
		return nil, err
	}
	result, err := i.applyCompound(e, current, rhs)
	if err != nil {
		return nil, err
	}
	if err := i.assignTo(e.Target, result, env); err != nil {
		return nil, err
	}
	return result, nil
}

func (i *Interp) applyCompound(e *ast.CompoundAssignExpr, left, right value.Value) (value.Value, error) {
	synthetic := &ast.BinaryExpr{Base: e.Base, Left: nil, Right: nil}
	switch e.Op {
	case ast.CompoundAdd:
		synthetic.Op = ast.BinAdd
	case ast.CompoundSub:
		synthetic.Op = ast.BinSub
	case ast.CompoundMul:
		synthetic.Op = ast.BinMul
	case ast.CompoundDiv:
		synthetic.Op = ast.BinDiv
	case ast.CompoundMod:
		synthetic.Op = ast.BinMod
	}
	return i.applyBinaryValues(synthetic, left, right)
}

// evalPostfix implements `++`/`--`: reads the identifier, writes the
// incremented/decremented value back, and returns the NEW value (spec
// §4.3 "Postfix").
func (i *Interp) evalPostfix(e *ast.PostfixExpr, env *value.Env) (value.Value, error) {
	ident := e.Target.(*ast.Identifier)
	cur, err := i.evalIdentifier(ident, env)
	if err != nil {
		return nil, err
	}
	n, ok := cur.(value.Number)
	if !ok {
		return nil, value.NewError(value.TypeError, "cannot %s a %s", postfixVerb(e.Op), cur.Kind()).WithSpan(e.Span())
	}
	delta := value.NumberFromInt(1)
	var updated value.Value
	if e.Op == ast.PostfixIncrement {
		updated = value.NumberFromDecimal(n.Dec.Add(delta.Dec))
	} else {
		updated = value.NumberFromDecimal(n.Dec.Sub(delta.Dec))
	}
	env.DefineOrSet(ident.Name, updated)
	return updated, nil
}

func postfixVerb(op ast.PostfixOp) string {
	if op == ast.PostfixIncrement {
		return "increment"
	}
	return "decrement"
}

// evalDestructure implements destructuring assignment: the RHS must
// evaluate to a Tuple of matching length; `_` targets are discarded, the
// rest bind via define_or_set (spec §4.3 "Destructuring assignment").
func (i *Interp) evalDestructure(e *ast.DestructureExpr, env *value.Env) (value.Value, error) {
	v, err := i.evalExpr(e.Value, env)
	if err != nil {
		return nil, err
	}
	tup, ok := v.(*value.Tuple)
	if !ok {
		return nil, value.NewError(value.TypeError, "destructuring assignment requires a tuple, got %s", v.Kind()).WithSpan(e.Span())
	}
	if len(tup.Elements) != len(e.Targets) {
		return nil, value.NewError(value.ArityMismatch,
			"destructuring assignment expects %d values, got %d", len(e.Targets), len(tup.Elements)).WithSpan(e.Span())
	}
	for idx, target := range e.Targets {
		if target.Wildcard {
			continue
		}
		env.DefineOrSet(target.Name, tup.Elements[idx])
	}
	return tup, nil
}
