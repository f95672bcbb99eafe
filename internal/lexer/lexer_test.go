package lexer

import "testing"

func kinds(t *testing.T, src string) []TokenKind {
	t.Helper()
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q) failed: %v", src, err)
	}
	var out []TokenKind
	for _, ts := range toks {
		out = append(out, ts.Token.Kind)
	}
	return out
}

func assertKinds(t *testing.T, src string, want ...TokenKind) {
	t.Helper()
	got := kinds(t, src)
	if len(got) != len(want) {
		t.Fatalf("Lex(%q) = %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Lex(%q)[%d] = %s, want %s", src, i, got[i], want[i])
		}
	}
}

func TestLexIdentifiersKeywordsLiterals(t *testing.T) {
	assertKinds(t, "foo", IDENT, EOF)
	assertKinds(t, "_", UNDERSCORE, EOF)
	assertKinds(t, "true false nil", TRUE, FALSE, NIL, EOF)
	assertKinds(t, "loop through with as", LOOP, THROUGH, WITH, AS, EOF)
	assertKinds(t, "42", NUMBER, EOF)
	assertKinds(t, "3.14", NUMBER, EOF)
}

func TestLexOperatorsMaximalMunch(t *testing.T) {
	assertKinds(t, "+=", PLUS_ASSIGN, EOF)
	assertKinds(t, "++", INCREMENT, EOF)
	assertKinds(t, "=>", FAT_ARROW, EOF)
	assertKinds(t, "==", EQ, EOF)
	assertKinds(t, "!~", NOT_TILDE, EOF)
	assertKinds(t, "..=", RANGE_INCL, EOF)
	assertKinds(t, "..", RANGE_EXCL, EOF)
	assertKinds(t, "|>", PIPE_FORWARD, EOF)
	assertKinds(t, "<|", PIPE_BACKWARD, EOF)
	assertKinds(t, ">>", COMPOSE_RIGHT, EOF)
	assertKinds(t, "<<", COMPOSE_LEFT, EOF)
	assertKinds(t, "::", DOUBLE_COLON, EOF)
}

func TestLexRegexAfterOperatorNotDivision(t *testing.T) {
	// '/' after '=' (can't end an expression) starts a regex, not division.
	toks, err := Lex("x = /ab/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var gotKinds []TokenKind
	for _, ts := range toks {
		gotKinds = append(gotKinds, ts.Token.Kind)
	}
	want := []TokenKind{IDENT, ASSIGN, REGEX_START, REGEX_CONTENT, REGEX_END, EOF}
	if len(gotKinds) != len(want) {
		t.Fatalf("got %v, want %v", gotKinds, want)
	}
	for i := range want {
		if gotKinds[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, gotKinds[i], want[i])
		}
	}
}

func TestLexDivisionAfterIdentifier(t *testing.T) {
	// '/' after an identifier (can end an expression) is division.
	assertKinds(t, "a / b", IDENT, SLASH, IDENT, EOF)
}

func TestLexStringTemplateSimple(t *testing.T) {
	assertKinds(t, `"hello"`, STRING_START, STRING_TEXT, STRING_END, EOF)
}

func TestLexStringInterpolation(t *testing.T) {
	assertKinds(t, `"a${b}c"`,
		STRING_START, STRING_TEXT, INTERP_START, IDENT, INTERP_END, STRING_TEXT, STRING_END, EOF)
}

func TestLexNestedInterpolationWithMapLiteral(t *testing.T) {
	// Inside the interpolation, a `{...}` map literal's braces must not be
	// mistaken for the interpolation's own closing brace.
	assertKinds(t, `"x${ {a: 1} }y"`,
		STRING_START, STRING_TEXT,
		INTERP_START, LBRACE, IDENT, COLON, NUMBER, RBRACE,
		INTERP_END, STRING_TEXT, STRING_END, EOF)
}

func TestLexShellTemplate(t *testing.T) {
	assertKinds(t, "`echo hi`", SHELL_START, STRING_TEXT, SHELL_END, EOF)
}

func TestLexShellTemplateInterpolation(t *testing.T) {
	assertKinds(t, "`echo ${name}`",
		SHELL_START, STRING_TEXT, INTERP_START, IDENT, INTERP_END, SHELL_END, EOF)
}

func TestLexUnterminatedStringError(t *testing.T) {
	_, err := Lex(`"abc`)
	if err == nil {
		t.Fatal("expected an unterminated-string error")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *lexer.Error, got %T", err)
	}
	if lexErr.Kind != UnterminatedString {
		t.Fatalf("got error kind %v, want UnterminatedString", lexErr.Kind)
	}
}

func TestLexInvalidNumberError(t *testing.T) {
	_, err := Lex("123abc")
	if err == nil {
		t.Fatal("expected an invalid-number error")
	}
	lexErr, ok := err.(*Error)
	if !ok || lexErr.Kind != InvalidNumber {
		t.Fatalf("got %v, want InvalidNumber", err)
	}
}

func TestLexCommentsDiscardedByDefault(t *testing.T) {
	assertKinds(t, "x # a comment\ny", IDENT, NEWLINE, IDENT, EOF)
}

func TestLexCommentsPreservedWithOption(t *testing.T) {
	toks, err := Lex("x # hi\n", WithPreserveComments(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) < 2 || toks[1].Token.Kind != COMMENT {
		t.Fatalf("expected a COMMENT token, got %v", toks)
	}
}

func TestLexSpansTrackLineAndColumn(t *testing.T) {
	toks, err := Lex("ab\ncd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// second identifier starts on line 2, column 1
	var second TokenSpan
	count := 0
	for _, ts := range toks {
		if ts.Token.Kind == IDENT {
			count++
			if count == 2 {
				second = ts
			}
		}
	}
	if second.Span.Line != 2 || second.Span.Column != 1 {
		t.Fatalf("got line=%d col=%d, want line=2 col=1", second.Span.Line, second.Span.Column)
	}
}
