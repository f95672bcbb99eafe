package parser

import (
	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/lexer"
)

// parsePattern parses one match-arm pattern. In the conditional match form
// (structural == false) a pattern is just a boolean guard expression, with
// the sole exception of the `_` wildcard default arm. In the structural
// form, patterns are literals, tuples, regexes, a bare-name binding, or
// `_` (spec §3.3, §4.3).
func (p *Parser) parsePattern(structural bool) ast.Pattern {
	if !structural {
		if p.is(lexer.UNDERSCORE) {
			tok := p.advance()
			return &ast.WildcardPattern{Base: ast.NewBase(tok.Span)}
		}
		cond := p.parseExpression(LOWEST)
		if p.failed() {
			return nil
		}
		return &ast.GuardPattern{Base: ast.NewBase(cond.Span()), Cond: cond}
	}

	switch p.cur().Token.Kind {
	case lexer.UNDERSCORE:
		tok := p.advance()
		return &ast.WildcardPattern{Base: ast.NewBase(tok.Span)}
	case lexer.IDENT:
		tok := p.advance()
		return &ast.BindingPattern{Base: ast.NewBase(tok.Span), Name: tok.Token.Text}
	case lexer.REGEX_START:
		lit := p.parseRegex()
		if p.failed() {
			return nil
		}
		rl := lit.(*ast.RegexLiteral)
		return &ast.RegexPattern{Base: rl.Base, Pattern: rl.Pattern}
	case lexer.LPAREN:
		return p.parseTuplePattern()
	case lexer.NUMBER, lexer.TRUE, lexer.FALSE, lexer.NIL, lexer.STRING_START, lexer.MINUS:
		lit := p.parseExpression(UNARY)
		if p.failed() {
			return nil
		}
		return &ast.LiteralPattern{Base: ast.NewBase(lit.Span()), Literal: lit}
	default:
		p.fail(newUnexpected(p.cur()))
		return nil
	}
}

func (p *Parser) parseTuplePattern() ast.Pattern {
	open := p.advance() // (
	var elems []ast.Pattern
	for !p.is(lexer.RPAREN) && !p.failed() {
		elems = append(elems, p.parsePattern(true))
		if p.is(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	close := p.mustExpect(lexer.RPAREN)
	if p.failed() {
		return nil
	}
	return &ast.TuplePattern{Base: ast.NewBase(spanFrom(open.Span, close.Span)), Elements: elems}
}
