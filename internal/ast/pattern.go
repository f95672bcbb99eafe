package ast

// LiteralPattern matches a scrutinee equal to a literal number, boolean,
// string, or nil value. Literal is one of NumberLiteral, BooleanLiteral,
// StringTemplate (with no interpolations), or NilLiteral.
type LiteralPattern struct {
	Base
	Literal Expr
}

// TuplePattern matches a scrutinee tuple element-wise against sub-patterns.
type TuplePattern struct {
	Base
	Elements []Pattern
}

// RegexPattern matches a scrutinee string against a regular expression;
// used only in structural `match` against string values.
type RegexPattern struct {
	Base
	Pattern string
}

// WildcardPattern (`_`) matches any scrutinee and binds nothing.
type WildcardPattern struct {
	Base
}

// BindingPattern matches any scrutinee and binds it to Name, for arms like
// `x => ...` that both match-all and capture the value.
type BindingPattern struct {
	Base
	Name string
}

// GuardPattern is a conditional-match arm's boolean guard expression, used
// only in the scrutinee-less `match { cond => body, ... }` form.
type GuardPattern struct {
	Base
	Cond Expr
}

func (*LiteralPattern) patternNode()  {}
func (*TuplePattern) patternNode()    {}
func (*RegexPattern) patternNode()    {}
func (*WildcardPattern) patternNode() {}
func (*BindingPattern) patternNode()  {}
func (*GuardPattern) patternNode()    {}

// CanMatchValue reports whether a pattern, examined purely on its own shape,
// is capable of matching at least one value of the scrutinee's dynamic
// type family. Used by the evaluator to skip provably-dead structural arms
// the way the original implementation's exhaustiveness pass does (e.g. a
// RegexPattern can never match a Number scrutinee).
func CanMatchValue(p Pattern, kind string) bool {
	switch pat := p.(type) {
	case *WildcardPattern, *BindingPattern, *GuardPattern:
		return true
	case *RegexPattern:
		return kind == "string"
	case *TuplePattern:
		return kind == "tuple"
	case *LiteralPattern:
		switch pat.Literal.(type) {
		case *NumberLiteral:
			return kind == "number"
		case *BooleanLiteral:
			return kind == "boolean"
		case *StringTemplate:
			return kind == "string"
		case *NilLiteral:
			return kind == "nil"
		}
	}
	return true
}

// IsExhaustive reports whether arms cover every possibility for a match
// expression: true as soon as any arm is an irrefutable wildcard or plain
// binding, since those match every remaining value.
func IsExhaustive(arms []MatchArm) bool {
	for _, arm := range arms {
		switch arm.Pattern.(type) {
		case *WildcardPattern, *BindingPattern:
			return true
		}
	}
	return false
}
