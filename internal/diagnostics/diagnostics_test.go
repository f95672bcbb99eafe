package diagnostics_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/suji-lang/suji/internal/diagnostics"
	"github.com/suji-lang/suji/internal/lexer"
	"github.com/suji-lang/suji/internal/parser"
	"github.com/suji-lang/suji/internal/span"
	"github.com/suji-lang/suji/internal/value"
)

const source = "let x = 1\nlet y = @\n"

func TestFromLexError(t *testing.T) {
	err := &lexer.Error{Kind: lexer.UnexpectedCharacter, Ch: '@', Line: 2, Column: 9}
	d := diagnostics.FromLexError(err, source, "main.suji")
	if d.Stage != "lex" || d.Line != 2 || d.Column != 9 {
		t.Fatalf("got %#v", d)
	}
	out := d.Format(false)
	if !strings.Contains(out, "let y = @") {
		t.Fatalf("expected source line in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected a caret in output, got %q", out)
	}
}

func TestFromParseErrorWidensCaretToSpan(t *testing.T) {
	err := &parser.Error{
		Kind: parser.ExpectedToken,
		Span: span.New(8, 11, 2, 9),
	}
	d := diagnostics.FromParseError(err, source, "main.suji")
	if d.Column != 9 || d.EndColumn != 11 {
		t.Fatalf("got column=%d endColumn=%d, want 9, 11", d.Column, d.EndColumn)
	}
}

func TestFromRuntimeError(t *testing.T) {
	err := value.NewError(value.UndefinedVariable, "undefined variable %q", "z").WithSpan(span.New(4, 5, 1, 5))
	d := diagnostics.FromRuntimeError(err, source, "main.suji")
	if d.Stage != "eval" || d.Line != 1 || d.Column != 5 {
		t.Fatalf("got %#v", d)
	}
	if !strings.Contains(d.Format(false), "undefined variable") {
		t.Fatalf("expected message in output")
	}
}

func TestNewDispatchesByErrorType(t *testing.T) {
	lexErr := &lexer.Error{Kind: lexer.InvalidNumber, Text: "1.2.3", Line: 1, Column: 1}
	if d, ok := diagnostics.New(lexErr, source, ""); !ok || d.Stage != "lex" {
		t.Fatalf("expected a lex diagnostic, got %#v, %v", d, ok)
	}

	parseErr := &parser.Error{Kind: parser.UnexpectedEOF, Span: span.New(0, 1, 1, 1)}
	if d, ok := diagnostics.New(parseErr, source, ""); !ok || d.Stage != "parse" {
		t.Fatalf("expected a parse diagnostic, got %#v, %v", d, ok)
	}

	runtimeErr := value.NewError(value.TypeError, "boom")
	if d, ok := diagnostics.New(runtimeErr, source, ""); !ok || d.Stage != "eval" {
		t.Fatalf("expected an eval diagnostic, got %#v, %v", d, ok)
	}

	if _, ok := diagnostics.New(errors.New("some other error"), source, ""); ok {
		t.Fatal("expected New to report false for an unrelated error type")
	}
}

func TestFormatWithContextHighlightsFailingLine(t *testing.T) {
	err := &lexer.Error{Kind: lexer.UnexpectedCharacter, Ch: '@', Line: 2, Column: 9}
	d := diagnostics.FromLexError(err, source, "main.suji")
	out := d.FormatWithContext(1, false)
	if !strings.Contains(out, "let x = 1") || !strings.Contains(out, "let y = @") {
		t.Fatalf("expected both context and failing lines, got %q", out)
	}
}

func TestFormatAllMultipleDiagnostics(t *testing.T) {
	d1 := diagnostics.FromLexError(&lexer.Error{Kind: lexer.InvalidNumber, Text: "1.2.3", Line: 1, Column: 1}, source, "")
	d2 := diagnostics.FromLexError(&lexer.Error{Kind: lexer.UnexpectedCharacter, Ch: '@', Line: 2, Column: 9}, source, "")
	out := diagnostics.FormatAll([]*diagnostics.Diagnostic{d1, d2}, false)
	if !strings.Contains(out, "2 errors") || !strings.Contains(out, "[1 of 2]") || !strings.Contains(out, "[2 of 2]") {
		t.Fatalf("expected a multi-error banner, got %q", out)
	}
}
