// Package parser implements Suji's recursive-descent/Pratt parser,
// transforming a lexed token stream into a span-annotated AST (spec §4.2).
package parser

import (
	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/lexer"
	"github.com/suji-lang/suji/internal/span"
)

// context controls how postfix and colon tokens are interpreted while
// parsing a sub-expression (spec §4.2).
type context int

const (
	// ctxDefault allows every postfix form: call, index, slice, field
	// access, method call, increment/decrement.
	ctxDefault context = iota
	// ctxNoPostfix disables all postfix parsing; used for every map-literal
	// key (e.g. `name: expr`) to avoid swallowing a following `:` as field
	// access.
	ctxNoPostfix
	// ctxNoColonAccess allows postfix parsing except `:name` field access;
	// used inside `[...]` so `:` is free to mean the slice separator.
	ctxNoColonAccess
)

type prefixParseFn func() ast.Expr
type infixParseFn func(left ast.Expr) ast.Expr

// Parser holds the full token buffer (the lexer already ran to completion,
// see spec §4.1) plus the Pratt dispatch tables.
type Parser struct {
	tokens []lexer.TokenSpan
	pos    int

	ctx context

	prefixFns map[lexer.TokenKind]prefixParseFn
	infixFns  map[lexer.TokenKind]infixParseFn

	sawExport  bool
	exportSpan span.Span

	// err is sticky: once set by any parse helper, subsequent calls return
	// zero values without doing further work, so a single malformed
	// construct doesn't cascade into a wall of misleading follow-on errors.
	err error
}

func (p *Parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Parser) failed() bool { return p.err != nil }

// New builds a Parser over a token stream produced by lexer.Lex.
func New(tokens []lexer.TokenSpan) *Parser {
	p := &Parser{tokens: tokens}
	p.prefixFns = make(map[lexer.TokenKind]prefixParseFn)
	p.infixFns = make(map[lexer.TokenKind]infixParseFn)
	p.registerPrefix()
	p.registerInfix()
	return p
}

// ParseProgram parses a full source file or module body into a Program.
func ParseProgram(src string) (*ast.Program, error) {
	tokens, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	p := New(tokens)
	return p.parseProgram()
}

func (p *Parser) registerPrefix() {
	p.prefixFns[lexer.IDENT] = p.parseIdentifier
	p.prefixFns[lexer.UNDERSCORE] = p.parseUnderscore
	p.prefixFns[lexer.NUMBER] = p.parseNumber
	p.prefixFns[lexer.TRUE] = p.parseBoolean
	p.prefixFns[lexer.FALSE] = p.parseBoolean
	p.prefixFns[lexer.NIL] = p.parseNil
	p.prefixFns[lexer.STRING_START] = p.parseStringTemplate
	p.prefixFns[lexer.SHELL_START] = p.parseShellTemplate
	p.prefixFns[lexer.REGEX_START] = p.parseRegex
	p.prefixFns[lexer.LBRACKET] = p.parseListLiteral
	p.prefixFns[lexer.LBRACE] = p.parseMapLiteral
	p.prefixFns[lexer.LPAREN] = p.parseGroupOrTuple
	p.prefixFns[lexer.MINUS] = p.parseUnary
	p.prefixFns[lexer.BANG] = p.parseUnary
	p.prefixFns[lexer.PIPE] = p.parseFunctionLiteral
	// `||` lexes as one token; in prefix position it is a function literal
	// with an empty parameter list.
	p.prefixFns[lexer.OR_OR] = func() ast.Expr {
		open := p.advance()
		body := p.parseFunctionBody()
		if p.failed() {
			return nil
		}
		return &ast.FunctionLiteral{Base: ast.NewBase(spanFrom(open.Span, body.Span())), Body: body}
	}
	p.prefixFns[lexer.MATCH] = p.parseMatchExpr
	p.prefixFns[lexer.RETURN] = p.parseReturnExpr
	p.prefixFns[lexer.BREAK] = p.parseBreakExpr
	p.prefixFns[lexer.CONTINUE] = p.parseContinueExpr
}

func (p *Parser) registerInfix() {
	for k := range precedences {
		kind := k
		if assignOps[kind] {
			p.infixFns[kind] = func(left ast.Expr) ast.Expr { return p.parseAssign(left, kind) }
			continue
		}
		p.infixFns[kind] = func(left ast.Expr) ast.Expr { return p.parseBinary(left, kind) }
	}
}

// --- token stream navigation ---

func (p *Parser) cur() lexer.TokenSpan {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.tokens[len(p.tokens)-1] // EOF sentinel
}

func (p *Parser) peek(n int) lexer.TokenSpan {
	idx := p.pos + n
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.TokenSpan {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) is(k lexer.TokenKind) bool { return p.cur().Token.Kind == k }

func (p *Parser) expect(k lexer.TokenKind) (lexer.TokenSpan, error) {
	if p.is(k) {
		return p.advance(), nil
	}
	if p.is(lexer.EOF) {
		return lexer.TokenSpan{}, newEOF(p.cur())
	}
	return lexer.TokenSpan{}, newExpected(k, p.cur())
}

// mustExpect is expect with the error routed to the sticky p.err field, for
// call sites that can't usefully continue on mismatch.
func (p *Parser) mustExpect(k lexer.TokenKind) lexer.TokenSpan {
	tok, err := p.expect(k)
	if err != nil {
		p.fail(err)
		return lexer.TokenSpan{}
	}
	return tok
}

// skipNewlines consumes any run of NEWLINE tokens, used inside bracketed
// constructs (call args, list/map/tuple literals, parameter lists) where
// the grammar allows elements to span lines freely.
func (p *Parser) skipNewlines() {
	for p.is(lexer.NEWLINE) {
		p.advance()
	}
}

// skipStatementSeparators consumes NEWLINE and SEMICOLON tokens between
// statements.
func (p *Parser) skipStatementSeparators() {
	for p.is(lexer.NEWLINE) || p.is(lexer.SEMICOLON) {
		p.advance()
	}
}

func spanFrom(start span.Span, end span.Span) span.Span {
	return start.Covering(end)
}
