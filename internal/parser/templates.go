package parser

import (
	"strings"

	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/lexer"
)

// parseTemplateParts drains text/interpolation tokens up to and including
// the given end token kind, shared by string and shell templates (spec
// §4.1 "Interpolation").
func (p *Parser) parseTemplateParts(endKind lexer.TokenKind) ([]ast.StringPart, lexer.TokenSpan) {
	var parts []ast.StringPart
	for !p.failed() {
		switch p.cur().Token.Kind {
		case lexer.STRING_TEXT:
			tok := p.advance()
			parts = append(parts, ast.StringPart{Text: tok.Token.Text})
		case lexer.INTERP_START:
			p.advance()
			expr := p.parseExpression(LOWEST)
			if p.failed() {
				return parts, lexer.TokenSpan{}
			}
			p.mustExpect(lexer.INTERP_END)
			if p.failed() {
				return parts, lexer.TokenSpan{}
			}
			parts = append(parts, ast.StringPart{Expr: expr})
		default:
			if p.cur().Token.Kind == endKind {
				return parts, p.advance()
			}
			p.fail(newUnexpected(p.cur()))
			return parts, lexer.TokenSpan{}
		}
	}
	return parts, lexer.TokenSpan{}
}

func (p *Parser) parseStringTemplate() ast.Expr {
	open := p.mustExpect(lexer.STRING_START)
	if p.failed() {
		return nil
	}
	parts, end := p.parseTemplateParts(lexer.STRING_END)
	if p.failed() {
		return nil
	}
	return &ast.StringTemplate{Base: ast.NewBase(spanFrom(open.Span, end.Span)), Parts: parts}
}

func (p *Parser) parseShellTemplate() ast.Expr {
	open := p.mustExpect(lexer.SHELL_START)
	if p.failed() {
		return nil
	}
	parts, end := p.parseTemplateParts(lexer.SHELL_END)
	if p.failed() {
		return nil
	}
	return &ast.ShellCommandTemplate{Base: ast.NewBase(spanFrom(open.Span, end.Span)), Parts: parts}
}

// parseRegex drains any REGEX_CONTENT tokens (the scanner may emit the
// pattern body in one piece) up to REGEX_END.
func (p *Parser) parseRegex() ast.Expr {
	open := p.mustExpect(lexer.REGEX_START)
	if p.failed() {
		return nil
	}
	var sb strings.Builder
	for p.is(lexer.REGEX_CONTENT) {
		sb.WriteString(p.advance().Token.Text)
	}
	end := p.mustExpect(lexer.REGEX_END)
	if p.failed() {
		return nil
	}
	return &ast.RegexLiteral{Base: ast.NewBase(spanFrom(open.Span, end.Span)), Pattern: sb.String()}
}
