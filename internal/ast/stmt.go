package ast

// ExprStmt wraps a bare expression used as a statement.
type ExprStmt struct {
	Base
	Expr Expr
}

// BlockStmt is a brace-delimited sequence of statements; its value (when
// used as an expression, e.g. a function body or match-arm body) is the
// value of its last statement.
type BlockStmt struct {
	Base
	Stmts []Stmt
}

// LoopBindingShape identifies how many names a `loop ... through` binds.
type LoopBindingShape int

const (
	// LoopBindingNone binds no names: the bare `loop { ... }` (no iteration
	// source) or `loop through xs { ... }` without a `with` clause.
	LoopBindingNone LoopBindingShape = iota
	// LoopBindingOne binds a single name: `loop through xs with x { ... }`.
	LoopBindingOne
	// LoopBindingTwo binds two names: `loop through m with k, v { ... }`.
	LoopBindingTwo
)

// LoopStmt covers both the bare `loop [as <label>] { ... }` form and the
// `loop through <source> [with <b1>[, <b2>]] [as <label>] { ... }` form.
type LoopStmt struct {
	Base
	Shape  LoopBindingShape
	Bind1  string // first bound name, empty when Shape == LoopBindingNone
	Bind2  string // second bound name, only set when Shape == LoopBindingTwo
	Source Expr   // the `through` expression, nil for the bare `loop` form
	Label  string // the `as` label, "" when absent
	Body   *BlockStmt
}

// ImportStmt is `import a:b:…:item` or `import a:b:…:item as name`; Path
// holds the segments joined with `:`.
type ImportStmt struct {
	Base
	Path  string
	Alias string // "" binds the import under the last path segment
}

// ExportStmt is either the map form `export { name: expr, … }` (Value holds
// a *MapLiteral) or the single-value form `export expr`. A module may
// export at most one binding (spec §5, single-export-per-module invariant).
type ExportStmt struct {
	Base
	Value Expr
}

func (*ExprStmt) stmtNode()   {}
func (*BlockStmt) stmtNode()  {}
func (*LoopStmt) stmtNode()   {}
func (*ImportStmt) stmtNode() {}
func (*ExportStmt) stmtNode() {}

// Program is the root node produced by parsing a full source file or
// module: a flat sequence of top-level statements.
type Program struct {
	Base
	Stmts []Stmt
}
