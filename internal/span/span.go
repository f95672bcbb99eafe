// Package span provides the byte-offset position type shared by the lexer,
// parser, value model and evaluator so runtime errors can be localized back
// to source text.
package span

import "fmt"

// Span is a half-open byte range [Start, End) into the original source,
// plus the human-facing line/column of Start. Line is 1-based; Column is a
// 1-based rune count from the start of Line.
type Span struct {
	Start  int
	End    int
	Line   int
	Column int
}

// New constructs a Span.
func New(start, end, line, column int) Span {
	return Span{Start: start, End: end, Line: line, Column: column}
}

// Zero is the default, synthetic span used for nodes constructed without
// source (e.g. builtin-synthesized AST).
var Zero = Span{}

// IsZero reports whether s is the synthetic zero span.
func (s Span) IsZero() bool {
	return s == Zero
}

// Covering returns the smallest span covering both s and other. If either is
// zero, the other is returned unchanged.
func (s Span) Covering(other Span) Span {
	if s.IsZero() {
		return other
	}
	if other.IsZero() {
		return s
	}
	start, line, column := s.Start, s.Line, s.Column
	if other.Start < start {
		start, line, column = other.Start, other.Line, other.Column
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end, Line: line, Column: column}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}
