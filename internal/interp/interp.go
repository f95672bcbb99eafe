// Package interp is Suji's tree-walking evaluator: statement and expression
// evaluation against a value.Env, method dispatch per value kind, shell
// execution, and the control-flow-via-errors convention (spec §4.3).
package interp

import (
	"io"
	"math/rand"
	"os"

	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/module"
	"github.com/suji-lang/suji/internal/parser"
	"github.com/suji-lang/suji/internal/value"
)

// Option configures an Interp, in the style of the teacher's LexerOption
// (internal/lexer/lexer.go).
type Option func(*Interp)

// WithBaseDir sets the filesystem root the module registry resolves
// relative imports against (spec §4.5).
func WithBaseDir(dir string) Option {
	return func(i *Interp) { i.baseDir = dir }
}

// WithStdout/WithStdin set the interpreter's output and input streams. The
// input stream feeds shell commands and stream pipes; evaluation does not
// write to the output stream.
func WithStdout(w io.Writer) Option {
	return func(i *Interp) { i.stdout = w }
}

func WithStdin(r io.Reader) Option {
	return func(i *Interp) { i.stdin = r }
}

// WithSeed reseeds the interpreter's random source (seed 1 by default); no
// builtin draws from it.
func WithSeed(seed int64) Option {
	return func(i *Interp) { i.rng = rand.New(rand.NewSource(seed)) }
}

// WithTracing records a tracing flag on the Interp; evaluation does not
// read it and prints no trace output.
func WithTracing(trace bool) Option {
	return func(i *Interp) { i.tracing = trace }
}

// Interp holds everything evaluation needs beyond the Env chain: the module
// registry, stdio streams, and a seeded random source.
type Interp struct {
	Registry *module.Registry

	baseDir string
	stdout  io.Writer
	stdin   io.Reader
	rng     *rand.Rand
	tracing bool
}

// New builds an Interp with a module registry wired to EvalSource as its
// SourceEvaluator, so the registry never imports this package directly
// (spec §4.5 "External interface", mirrored from the original Rust
// Executor/eval_source split per SPEC_FULL.md §3).
func New(virtualRoot map[string]*module.VirtualNode, opts ...Option) *Interp {
	i := &Interp{
		stdout: os.Stdout,
		stdin:  os.Stdin,
		rng:    rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.Registry = module.NewRegistry(i.baseDir, virtualRoot, i.evalSource, i.NewTopLevelEnv)
	return i
}

// NewTopLevelEnv builds an environment configured identically to the
// program's top-level frame, per spec §4.5's "fresh env" requirement for
// module evaluation.
func (i *Interp) NewTopLevelEnv() *value.Env {
	return value.NewEnv()
}

// evalSource is the module.SourceEvaluator: parse src and evaluate it
// against env, returning its export value (spec §4.5).
func (i *Interp) evalSource(src string, env *value.Env, reg *module.Registry) (value.Value, error) {
	prog, err := parser.ParseProgram(src)
	if err != nil {
		return nil, err
	}
	export, _, err := i.evalProgramForExport(prog, env)
	if err != nil {
		return nil, err
	}
	return export, nil
}

// Run evaluates a top-level program and returns one value: the export
// value if the program ran an `export` statement, otherwise the value of
// its last statement.
func (i *Interp) Run(prog *ast.Program, env *value.Env) (value.Value, error) {
	result, _, err := i.evalProgramForExport(prog, env)
	return result, err
}

// evalProgramForExport runs a program's statements in order, tracking
// whether an `export` statement assigned the module's export value (spec
// §4.3 "Export"). If no export was seen, the export return value is the
// last statement's value, matching how a script run directly (not as an
// import) still produces a printable result.
func (i *Interp) evalProgramForExport(prog *ast.Program, env *value.Env) (value.Value, bool, error) {
	var last value.Value = value.Nil
	var exported value.Value
	sawExport := false
	for _, stmt := range prog.Stmts {
		if exp, ok := stmt.(*ast.ExportStmt); ok {
			v, err := i.evalExportStmt(exp, env)
			if err != nil {
				return nil, false, err
			}
			exported = v
			sawExport = true
			last = v
			continue
		}
		v, err := i.evalStmt(stmt, env)
		if err != nil {
			return nil, false, err
		}
		last = v
	}
	if sawExport {
		return exported, true, nil
	}
	return last, false, nil
}
