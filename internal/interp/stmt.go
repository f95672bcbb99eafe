package interp

import (
	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/module"
	"github.com/suji-lang/suji/internal/value"
)

// evalStmt evaluates a statement, returning the value it produces when used
// in expression position (a block's last statement, a function's implicit
// return) — every statement kind yields a value, even if often Nil.
func (i *Interp) evalStmt(stmt ast.Stmt, env *value.Env) (value.Value, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return i.evalExpr(s.Expr, env)
	case *ast.BlockStmt:
		return i.evalBlock(s, env)
	case *ast.LoopStmt:
		return i.evalLoop(s, env)
	case *ast.ImportStmt:
		return i.evalImportStmt(s, env)
	case *ast.ExportStmt:
		return i.evalExportStmt(s, env)
	default:
		return nil, value.NewError(value.InvalidOperation, "unhandled statement type %T", stmt).WithSpan(stmt.Span())
	}
}

// evalBlock creates a child frame and evaluates its statements in order,
// yielding the last one's value (spec §4.3 "Block creates a child frame").
func (i *Interp) evalBlock(b *ast.BlockStmt, env *value.Env) (value.Value, error) {
	child := value.NewChildEnv(env)
	var result value.Value = value.Nil
	for _, stmt := range b.Stmts {
		v, err := i.evalStmt(stmt, child)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// evalImportStmt delegates to the module registry and binds the resolved
// value under its alias (or its own last path segment) in env (spec §4.3
// "Import delegates to the module registry", §4.5).
func (i *Interp) evalImportStmt(s *ast.ImportStmt, env *value.Env) (value.Value, error) {
	v, err := i.Registry.Resolve(s.Path)
	if err != nil {
		return nil, value.NewError(value.InvalidOperation, "%v", err).WithSpan(s.Span())
	}
	v, err = forceLoadIfModule(i.Registry, v)
	if err != nil {
		return nil, value.NewError(value.InvalidOperation, "%v", err).WithSpan(s.Span())
	}
	name := s.Alias
	if name == "" {
		name = lastSegment(s.Path)
	}
	env.Define(name, v)
	return v, nil
}

// evalExportStmt evaluates the export form: a map literal in map form, or a
// general expression in single-value form (spec §4.3 "Export").
func (i *Interp) evalExportStmt(s *ast.ExportStmt, env *value.Env) (value.Value, error) {
	return i.evalExpr(s.Value, env)
}

// lastSegment returns the final `:`-separated segment of an import path,
// the default binding name for a whole-module import without `as`.
func lastSegment(path string) string {
	last := path
	for idx, r := range path {
		if r == ':' {
			last = path[idx+1:]
		}
	}
	return last
}

// forceLoadIfModule force-loads a resolved value that is itself a lazy
// Module handle, per the original's "force-load lazy submodules uniformly"
// rule (SPEC_FULL.md §3).
func forceLoadIfModule(reg *module.Registry, v value.Value) (value.Value, error) {
	if mod, ok := v.(*value.Module); ok {
		if err := reg.ForceLoad(mod); err != nil {
			return nil, err
		}
		return mod.Export, nil
	}
	return v, nil
}
