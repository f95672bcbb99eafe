package parser

import (
	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/lexer"
)

// parseMatchExpr parses both match forms (spec §3.3, §4.3, §8.2 example 5):
//
//	match { cond => body, ... }              (conditional — no scrutinee)
//	match scrutinee { pattern => body, ... } (structural)
func (p *Parser) parseMatchExpr() ast.Expr {
	start := p.advance() // match
	var scrutinee ast.Expr
	structural := false
	if !p.is(lexer.LBRACE) {
		structural = true
		scrutinee = p.parseExpression(LOWEST)
		if p.failed() {
			return nil
		}
	}
	p.mustExpect(lexer.LBRACE)
	if p.failed() {
		return nil
	}
	p.skipArmSeparators()

	var arms []ast.MatchArm
	for !p.is(lexer.RBRACE) && !p.failed() {
		pat := p.parsePattern(structural)
		if p.failed() {
			return nil
		}
		body := p.parseMatchArmBody()
		if p.failed() {
			return nil
		}
		arms = append(arms, ast.MatchArm{Pattern: pat, Body: body})
		p.skipArmSeparators()
	}
	close := p.mustExpect(lexer.RBRACE)
	if p.failed() {
		return nil
	}
	return &ast.MatchExpr{
		Base:      ast.NewBase(spanFrom(start.Span, close.Span)),
		Scrutinee: scrutinee,
		Arms:      arms,
	}
}

func (p *Parser) skipArmSeparators() {
	for p.is(lexer.COMMA) || p.is(lexer.NEWLINE) {
		p.advance()
	}
}

// parseMatchArmBody handles both arm forms: `=> expr` and `{ block }`.
func (p *Parser) parseMatchArmBody() ast.Stmt {
	if p.is(lexer.LBRACE) {
		return p.parseBlock()
	}
	p.mustExpect(lexer.FAT_ARROW)
	if p.failed() {
		return nil
	}
	p.skipNewlines()
	if p.is(lexer.LBRACE) {
		return p.parseBlock()
	}
	expr := p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}
	return &ast.ExprStmt{Base: ast.NewBase(expr.Span()), Expr: expr}
}
