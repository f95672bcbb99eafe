// Package ast defines Suji's span-annotated abstract syntax tree: the
// expression, statement, and pattern node types the parser produces and the
// evaluator walks (spec §3.3).
package ast

import "github.com/suji-lang/suji/internal/span"

// Node is implemented by every expression, statement, and pattern node.
type Node interface {
	Span() span.Span
}

// Expr is any expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Pattern is any match-arm pattern node.
type Pattern interface {
	Node
	patternNode()
}

// Base holds the source span every node embeds. Exported so package parser
// can populate it directly in struct literals.
type Base struct {
	Sp span.Span
}

func (b Base) Span() span.Span { return b.Sp }

// NewBase stamps a Base from a span, for terser node construction at parser
// call sites.
func NewBase(s span.Span) Base { return Base{Sp: s} }

// ---- Literal expressions ----

// NumberLiteral is a decimal numeric literal, kept as the original source
// text so the value layer can preserve trailing-zero formatting.
type NumberLiteral struct {
	Base
	Text string
}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Base
	Value bool
}

// Identifier is a bare name reference.
type Identifier struct {
	Base
	Name string
}

// NilLiteral is `nil`.
type NilLiteral struct{ Base }

// ListLiteral is `[e1, e2, ...]`.
type ListLiteral struct {
	Base
	Elements []Expr
}

// MapEntry is one `key: value` pair of a map literal. Key is an expression,
// parsed with postfix forms disabled to avoid ambiguity with field access;
// a bare identifier key (`name: expr`) evaluates to the string "name".
type MapEntry struct {
	Key   Expr
	Value Expr
}

// MapLiteral is `{ k: v, ... }`.
type MapLiteral struct {
	Base
	Entries []MapEntry
}

// TupleLiteral is `(e1, e2, ...)` — two or more elements; a single
// parenthesized expression is a Grouping, not a Tuple.
type TupleLiteral struct {
	Base
	Elements []Expr
}

// RegexLiteral is `/pattern/`, compiled eagerly by the evaluator.
type RegexLiteral struct {
	Base
	Pattern string
}

// StringPart is one piece of a string or shell template: either literal
// text or an interpolated expression.
type StringPart struct {
	Text string
	Expr Expr // nil when this part is plain Text
}

// StringTemplate is a `"..."`/`'...'` literal with interleaved text and
// `${ ... }` interpolations.
type StringTemplate struct {
	Base
	Parts []StringPart
}

// ShellCommandTemplate is a backtick-delimited shell command template.
type ShellCommandTemplate struct {
	Base
	Parts []StringPart
}

// ---- Compound expressions ----

// UnaryOp identifies a prefix unary operator.
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
)

type UnaryExpr struct {
	Base
	Op   UnaryOp
	Expr Expr
}

// BinaryOp identifies an infix binary operator.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinPow
	BinEq
	BinNeq
	BinLt
	BinLte
	BinGt
	BinGte
	BinAnd
	BinOr
	BinRangeExcl
	BinRangeIncl
	BinRegexMatch
	BinRegexNotMatch
	BinComposeRight // f >> g
	BinComposeLeft  // f << g
	BinPipeForward  // a |> f
	BinPipeBackward // f <| a
	BinStreamPipe   // a | b
)

type BinaryExpr struct {
	Base
	Left  Expr
	Op    BinaryOp
	Right Expr
}

// PostfixOp identifies `++`/`--`.
type PostfixOp int

const (
	PostfixIncrement PostfixOp = iota
	PostfixDecrement
)

type PostfixExpr struct {
	Base
	Op     PostfixOp
	Target Expr // must be an Identifier (checked by parser)
}

type CallExpr struct {
	Base
	Callee Expr
	Args   []Expr
}

type MethodCallExpr struct {
	Base
	Target Expr
	Method string
	Args   []Expr
}

type IndexExpr struct {
	Base
	Target Expr
	Index  Expr
}

// SliceExpr is `target[start:end]`; Start/End are nil when omitted.
type SliceExpr struct {
	Base
	Target Expr
	Start  Expr
	End    Expr
}

// MapAccessByName is `target:key` field-style map access.
type MapAccessByName struct {
	Base
	Target Expr
	Key    string
}

type AssignExpr struct {
	Base
	Target Expr
	Value  Expr
}

// CompoundAssignOp identifies `+=`, `-=`, `*=`, `/=`, `%=`.
type CompoundAssignOp int

const (
	CompoundAdd CompoundAssignOp = iota
	CompoundSub
	CompoundMul
	CompoundDiv
	CompoundMod
)

type CompoundAssignExpr struct {
	Base
	Target Expr
	Op     CompoundAssignOp
	Value  Expr
}

// DestructureTarget is either a plain identifier name or the `_` wildcard.
type DestructureTarget struct {
	Name     string
	Wildcard bool
}

type DestructureExpr struct {
	Base
	Targets []DestructureTarget
	Value   Expr
}

// Param is one function-literal parameter, with an optional default
// expression evaluated in the function's captured environment.
type Param struct {
	Name    string
	Default Expr
}

type FunctionLiteral struct {
	Base
	Params []Param
	Body   Stmt
}

type GroupingExpr struct {
	Base
	Expr Expr
}

// MatchArm is one `pattern => body` (or `pattern { body }`) arm.
type MatchArm struct {
	Pattern Pattern
	Body    Stmt
}

// MatchExpr is `match { arms }` (conditional form, Scrutinee nil) or
// `match scrutinee { arms }` (structural form).
type MatchExpr struct {
	Base
	Scrutinee Expr
	Arms      []MatchArm
}

type ReturnExpr struct {
	Base
	Values []Expr
}

type BreakExpr struct {
	Base
	Label string // "" when unlabeled
}

type ContinueExpr struct {
	Base
	Label string
}

func (*NumberLiteral) exprNode()        {}
func (*BooleanLiteral) exprNode()       {}
func (*Identifier) exprNode()           {}
func (*NilLiteral) exprNode()           {}
func (*ListLiteral) exprNode()          {}
func (*MapLiteral) exprNode()           {}
func (*TupleLiteral) exprNode()         {}
func (*RegexLiteral) exprNode()         {}
func (*StringTemplate) exprNode()       {}
func (*ShellCommandTemplate) exprNode() {}
func (*UnaryExpr) exprNode()            {}
func (*BinaryExpr) exprNode()           {}
func (*PostfixExpr) exprNode()          {}
func (*CallExpr) exprNode()             {}
func (*MethodCallExpr) exprNode()       {}
func (*IndexExpr) exprNode()            {}
func (*SliceExpr) exprNode()            {}
func (*MapAccessByName) exprNode()      {}
func (*AssignExpr) exprNode()           {}
func (*CompoundAssignExpr) exprNode()   {}
func (*DestructureExpr) exprNode()      {}
func (*FunctionLiteral) exprNode()      {}
func (*GroupingExpr) exprNode()         {}
func (*MatchExpr) exprNode()            {}
func (*ReturnExpr) exprNode()           {}
func (*BreakExpr) exprNode()            {}
func (*ContinueExpr) exprNode()         {}
