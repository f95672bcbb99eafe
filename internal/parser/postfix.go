package parser

import (
	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/lexer"
)

// parsePostfix applies the tightest-binding suffix forms left-to-right:
// `++`/`--`, call `(...)`, index `[...]`, slice `[a:b]`, field `:name`,
// and method call `::name(...)` (spec §4.2, §3.2).
func (p *Parser) parsePostfix(left ast.Expr) ast.Expr {
	for !p.failed() {
		switch p.cur().Token.Kind {
		case lexer.INCREMENT, lexer.DECREMENT:
			left = p.parsePostfixIncDec(left)
		case lexer.LPAREN:
			left = p.parseCall(left)
		case lexer.LBRACKET:
			left = p.parseIndexOrSlice(left)
		case lexer.COLON:
			if p.ctx == ctxNoColonAccess {
				return left
			}
			left = p.parseMapAccessByName(left)
		case lexer.DOUBLE_COLON:
			left = p.parseMethodCall(left)
		default:
			return left
		}
	}
	return left
}

func (p *Parser) parsePostfixIncDec(left ast.Expr) ast.Expr {
	if _, ok := left.(*ast.Identifier); !ok {
		p.fail(newGeneric(left.Span(), "postfix %s requires an identifier target", p.cur().Token.Kind))
		return nil
	}
	tok := p.advance()
	op := ast.PostfixIncrement
	if tok.Token.Kind == lexer.DECREMENT {
		op = ast.PostfixDecrement
	}
	return &ast.PostfixExpr{Base: ast.NewBase(spanFrom(left.Span(), tok.Span)), Op: op, Target: left}
}

func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	p.advance() // (
	p.skipNewlines()
	var args []ast.Expr
	for !p.is(lexer.RPAREN) && !p.failed() {
		args = append(args, p.parseExpression(LOWEST))
		p.skipNewlines()
		if p.is(lexer.COMMA) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	close := p.mustExpect(lexer.RPAREN)
	if p.failed() {
		return nil
	}
	return &ast.CallExpr{Base: ast.NewBase(spanFrom(callee.Span(), close.Span)), Callee: callee, Args: args}
}

// parseIndexOrSlice parses `target[index]` or `target[start:end]`. Inside
// the brackets, `:` is forced to mean the slice separator (ctxNoColonAccess)
// rather than field access.
func (p *Parser) parseIndexOrSlice(target ast.Expr) ast.Expr {
	p.advance() // [
	savedCtx := p.ctx
	p.ctx = ctxNoColonAccess

	var start ast.Expr
	if !p.is(lexer.COLON) {
		start = p.parseExpression(LOWEST)
		if p.failed() {
			p.ctx = savedCtx
			return nil
		}
	}
	if p.is(lexer.COLON) {
		p.advance()
		var end ast.Expr
		if !p.is(lexer.RBRACKET) {
			end = p.parseExpression(LOWEST)
			if p.failed() {
				p.ctx = savedCtx
				return nil
			}
		}
		p.ctx = savedCtx
		close := p.mustExpect(lexer.RBRACKET)
		if p.failed() {
			return nil
		}
		return &ast.SliceExpr{
			Base: ast.NewBase(spanFrom(target.Span(), close.Span)), Target: target, Start: start, End: end,
		}
	}
	p.ctx = savedCtx
	close := p.mustExpect(lexer.RBRACKET)
	if p.failed() {
		return nil
	}
	return &ast.IndexExpr{Base: ast.NewBase(spanFrom(target.Span(), close.Span)), Target: target, Index: start}
}

func (p *Parser) parseMapAccessByName(target ast.Expr) ast.Expr {
	p.advance() // :
	nameTok := p.mustExpect(lexer.IDENT)
	if p.failed() {
		return nil
	}
	return &ast.MapAccessByName{
		Base: ast.NewBase(spanFrom(target.Span(), nameTok.Span)), Target: target, Key: nameTok.Token.Text,
	}
}

func (p *Parser) parseMethodCall(target ast.Expr) ast.Expr {
	p.advance() // ::
	nameTok := p.mustExpect(lexer.IDENT)
	if p.failed() {
		return nil
	}
	p.mustExpect(lexer.LPAREN)
	if p.failed() {
		return nil
	}
	p.skipNewlines()
	var args []ast.Expr
	for !p.is(lexer.RPAREN) && !p.failed() {
		args = append(args, p.parseExpression(LOWEST))
		p.skipNewlines()
		if p.is(lexer.COMMA) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	close := p.mustExpect(lexer.RPAREN)
	if p.failed() {
		return nil
	}
	return &ast.MethodCallExpr{
		Base: ast.NewBase(spanFrom(target.Span(), close.Span)), Target: target, Method: nameTok.Token.Text, Args: args,
	}
}
