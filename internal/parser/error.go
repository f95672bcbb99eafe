package parser

import (
	"fmt"

	"github.com/suji-lang/suji/internal/lexer"
	"github.com/suji-lang/suji/internal/span"
)

// ErrorKind tags the parse-error family from spec §4.2.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEOF
	ExpectedToken
	InvalidImportPath
	InvalidAlias
	MultipleExports
	Generic
)

// Error is a parse-time failure, carrying the span of the offending token
// so diagnostics can render a caret (spec §6.4).
type Error struct {
	Kind     ErrorKind
	Span     span.Span
	Found    lexer.TokenKind
	Expected lexer.TokenKind
	Message  string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token %s at %s", e.Found, e.Span)
	case UnexpectedEOF:
		return fmt.Sprintf("unexpected end of input at %s", e.Span)
	case ExpectedToken:
		return fmt.Sprintf("expected %s, found %s at %s", e.Expected, e.Found, e.Span)
	case InvalidImportPath:
		return fmt.Sprintf("invalid import path at %s: %s", e.Span, e.Message)
	case InvalidAlias:
		return fmt.Sprintf("invalid import alias at %s: %s", e.Span, e.Message)
	case MultipleExports:
		return fmt.Sprintf("module has more than one export statement at %s", e.Span)
	default:
		return fmt.Sprintf("%s at %s", e.Message, e.Span)
	}
}

func newUnexpected(tok lexer.TokenSpan) *Error {
	return &Error{Kind: UnexpectedToken, Span: tok.Span, Found: tok.Token.Kind}
}

func newExpected(expected lexer.TokenKind, tok lexer.TokenSpan) *Error {
	return &Error{Kind: ExpectedToken, Span: tok.Span, Found: tok.Token.Kind, Expected: expected}
}

func newEOF(tok lexer.TokenSpan) *Error {
	return &Error{Kind: UnexpectedEOF, Span: tok.Span}
}

func newGeneric(s span.Span, format string, args ...any) *Error {
	return &Error{Kind: Generic, Span: s, Message: fmt.Sprintf(format, args...)}
}

func newMultipleExports(s span.Span) *Error {
	return &Error{Kind: MultipleExports, Span: s}
}

func newInvalidImportPath(s span.Span, format string, args ...any) *Error {
	return &Error{Kind: InvalidImportPath, Span: s, Message: fmt.Sprintf(format, args...)}
}
