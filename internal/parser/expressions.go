package parser

import (
	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/lexer"
)

// parseExpression is the core Pratt climbing loop: parse a prefix term,
// apply any postfix suffixes (tightest-binding), then fold in infix
// operators whose precedence exceeds the caller's floor.
func (p *Parser) parseExpression(precedence int) ast.Expr {
	if p.failed() {
		return nil
	}
	prefixFn, ok := p.prefixFns[p.cur().Token.Kind]
	if !ok {
		p.fail(newUnexpected(p.cur()))
		return nil
	}
	left := prefixFn()
	if p.failed() {
		return nil
	}

	if p.ctx != ctxNoPostfix {
		left = p.parsePostfix(left)
		if p.failed() {
			return nil
		}
	}

	for !p.failed() {
		kind := p.cur().Token.Kind
		nextPrec := getPrecedence(kind)
		if nextPrec <= precedence {
			break
		}
		infixFn, ok := p.infixFns[kind]
		if !ok {
			break
		}
		left = infixFn(left)
	}
	return left
}

// parseBinary consumes the already-peeked operator token and parses the
// right-hand operand at the precedence appropriate for this operator's
// associativity.
func (p *Parser) parseBinary(left ast.Expr, kind lexer.TokenKind) ast.Expr {
	opTok := p.advance()
	prec := getPrecedence(kind)
	rhsPrec := prec
	if rightAssoc[kind] {
		rhsPrec = prec - 1
	}
	right := p.parseExpression(rhsPrec)
	if p.failed() {
		return nil
	}
	op, ok := binaryOpFor(kind)
	if !ok {
		p.fail(newUnexpected(opTok))
		return nil
	}
	return &ast.BinaryExpr{
		Base:  ast.NewBase(spanFrom(left.Span(), right.Span())),
		Left:  left,
		Op:    op,
		Right: right,
	}
}

func binaryOpFor(k lexer.TokenKind) (ast.BinaryOp, bool) {
	switch k {
	case lexer.PLUS:
		return ast.BinAdd, true
	case lexer.MINUS:
		return ast.BinSub, true
	case lexer.STAR:
		return ast.BinMul, true
	case lexer.SLASH:
		return ast.BinDiv, true
	case lexer.PERCENT:
		return ast.BinMod, true
	case lexer.CARET:
		return ast.BinPow, true
	case lexer.EQ:
		return ast.BinEq, true
	case lexer.NEQ:
		return ast.BinNeq, true
	case lexer.LT:
		return ast.BinLt, true
	case lexer.LTE:
		return ast.BinLte, true
	case lexer.GT:
		return ast.BinGt, true
	case lexer.GTE:
		return ast.BinGte, true
	case lexer.AND_AND:
		return ast.BinAnd, true
	case lexer.OR_OR:
		return ast.BinOr, true
	case lexer.RANGE_EXCL:
		return ast.BinRangeExcl, true
	case lexer.RANGE_INCL:
		return ast.BinRangeIncl, true
	case lexer.TILDE:
		return ast.BinRegexMatch, true
	case lexer.NOT_TILDE:
		return ast.BinRegexNotMatch, true
	case lexer.COMPOSE_RIGHT:
		return ast.BinComposeRight, true
	case lexer.COMPOSE_LEFT:
		return ast.BinComposeLeft, true
	case lexer.PIPE_FORWARD:
		return ast.BinPipeForward, true
	case lexer.PIPE_BACKWARD:
		return ast.BinPipeBackward, true
	case lexer.PIPE:
		return ast.BinStreamPipe, true
	default:
		return 0, false
	}
}

func compoundOpFor(k lexer.TokenKind) (ast.CompoundAssignOp, bool) {
	switch k {
	case lexer.PLUS_ASSIGN:
		return ast.CompoundAdd, true
	case lexer.MINUS_ASSIGN:
		return ast.CompoundSub, true
	case lexer.STAR_ASSIGN:
		return ast.CompoundMul, true
	case lexer.SLASH_ASSIGN:
		return ast.CompoundDiv, true
	case lexer.PERCENT_ASSIGN:
		return ast.CompoundMod, true
	default:
		return 0, false
	}
}

// parseAssign consumes `=` or a compound-assignment operator. The LHS was
// already parsed as a general expression; it must be an assignable place
// (identifier, index, slice-free index, or map-access-by-name).
func (p *Parser) parseAssign(left ast.Expr, kind lexer.TokenKind) ast.Expr {
	opTok := p.advance()
	if !isAssignable(left) {
		p.fail(newGeneric(left.Span(), "invalid assignment target"))
		return nil
	}
	right := p.parseExpression(ASSIGN - 1)
	if p.failed() {
		return nil
	}
	sp := spanFrom(left.Span(), right.Span())
	if kind == lexer.ASSIGN {
		return &ast.AssignExpr{Base: ast.NewBase(sp), Target: left, Value: right}
	}
	op, ok := compoundOpFor(kind)
	if !ok {
		p.fail(newUnexpected(opTok))
		return nil
	}
	return &ast.CompoundAssignExpr{Base: ast.NewBase(sp), Target: left, Op: op, Value: right}
}

func isAssignable(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.IndexExpr, *ast.MapAccessByName:
		return true
	default:
		return false
	}
}

// --- prefix parse functions ---

func (p *Parser) parseIdentifier() ast.Expr {
	tok := p.advance()
	return &ast.Identifier{Base: ast.NewBase(tok.Span), Name: tok.Token.Text}
}

func (p *Parser) parseUnderscore() ast.Expr {
	tok := p.advance()
	return &ast.Identifier{Base: ast.NewBase(tok.Span), Name: "_"}
}

func (p *Parser) parseNumber() ast.Expr {
	tok := p.advance()
	return &ast.NumberLiteral{Base: ast.NewBase(tok.Span), Text: tok.Token.Text}
}

func (p *Parser) parseBoolean() ast.Expr {
	tok := p.advance()
	return &ast.BooleanLiteral{Base: ast.NewBase(tok.Span), Value: tok.Token.Kind == lexer.TRUE}
}

func (p *Parser) parseNil() ast.Expr {
	tok := p.advance()
	return &ast.NilLiteral{Base: ast.NewBase(tok.Span)}
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.advance()
	operand := p.parseExpression(UNARY)
	if p.failed() {
		return nil
	}
	op := ast.UnaryNeg
	if tok.Token.Kind == lexer.BANG {
		op = ast.UnaryNot
	}
	return &ast.UnaryExpr{Base: ast.NewBase(spanFrom(tok.Span, operand.Span())), Op: op, Expr: operand}
}

// parseGroupOrTuple parses `(expr)` as a Grouping, or `(e1, e2, ...)` (two
// or more comma-separated elements) as a Tuple literal.
func (p *Parser) parseGroupOrTuple() ast.Expr {
	open := p.advance()
	p.skipNewlines()
	first := p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}
	p.skipNewlines()
	if p.is(lexer.COMMA) {
		elems := []ast.Expr{first}
		for p.is(lexer.COMMA) {
			p.advance()
			p.skipNewlines()
			if p.is(lexer.RPAREN) {
				break
			}
			elems = append(elems, p.parseExpression(LOWEST))
			if p.failed() {
				return nil
			}
			p.skipNewlines()
		}
		close := p.mustExpect(lexer.RPAREN)
		if p.failed() {
			return nil
		}
		return &ast.TupleLiteral{Base: ast.NewBase(spanFrom(open.Span, close.Span)), Elements: elems}
	}
	close := p.mustExpect(lexer.RPAREN)
	if p.failed() {
		return nil
	}
	return &ast.GroupingExpr{Base: ast.NewBase(spanFrom(open.Span, close.Span)), Expr: first}
}

func (p *Parser) parseListLiteral() ast.Expr {
	open := p.mustExpect(lexer.LBRACKET)
	if p.failed() {
		return nil
	}
	p.skipNewlines()
	var elems []ast.Expr
	for !p.is(lexer.RBRACKET) && !p.failed() {
		elems = append(elems, p.parseExpression(LOWEST))
		p.skipNewlines()
		if p.is(lexer.COMMA) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	close := p.mustExpect(lexer.RBRACKET)
	if p.failed() {
		return nil
	}
	return &ast.ListLiteral{Base: ast.NewBase(spanFrom(open.Span, close.Span)), Elements: elems}
}

// parseMapLiteral parses `{ k: v, ... }`. Every key is parsed in NoPostfix
// context so a following `:` isn't mistaken for field access (spec §4.2).
func (p *Parser) parseMapLiteral() ast.Expr {
	open := p.mustExpect(lexer.LBRACE)
	if p.failed() {
		return nil
	}
	p.skipNewlines()
	var entries []ast.MapEntry
	for !p.is(lexer.RBRACE) && !p.failed() {
		savedCtx := p.ctx
		p.ctx = ctxNoPostfix
		key := p.parseExpression(LOWEST)
		p.ctx = savedCtx
		if p.failed() {
			return nil
		}
		p.mustExpect(lexer.COLON)
		if p.failed() {
			return nil
		}
		p.skipNewlines()
		val := p.parseExpression(LOWEST)
		if p.failed() {
			return nil
		}
		entries = append(entries, ast.MapEntry{Key: key, Value: val})
		p.skipNewlines()
		if p.is(lexer.COMMA) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	close := p.mustExpect(lexer.RBRACE)
	if p.failed() {
		return nil
	}
	return &ast.MapLiteral{Base: ast.NewBase(spanFrom(open.Span, close.Span)), Entries: entries}
}

// parseFunctionLiteral parses `|p1, p2 = default, ...| body`.
func (p *Parser) parseFunctionLiteral() ast.Expr {
	open := p.mustExpect(lexer.PIPE)
	if p.failed() {
		return nil
	}
	var params []ast.Param
	for !p.is(lexer.PIPE) && !p.failed() {
		nameTok := p.mustExpect(lexer.IDENT)
		if p.failed() {
			return nil
		}
		param := ast.Param{Name: nameTok.Token.Text}
		if p.is(lexer.ASSIGN) {
			p.advance()
			// Parsed above stream-pipe precedence so the closing `|` of the
			// parameter list is not taken as a stream pipe.
			param.Default = p.parseExpression(STREAM_PIPE)
			if p.failed() {
				return nil
			}
		}
		params = append(params, param)
		if p.is(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.mustExpect(lexer.PIPE)
	if p.failed() {
		return nil
	}
	body := p.parseFunctionBody()
	if p.failed() {
		return nil
	}
	return &ast.FunctionLiteral{Base: ast.NewBase(spanFrom(open.Span, body.Span())), Params: params, Body: body}
}

// parseFunctionBody allows either a brace block or a single bare
// expression as a function's body, both supporting implicit return of the
// last evaluated value (spec §4.3).
func (p *Parser) parseFunctionBody() ast.Stmt {
	if p.is(lexer.LBRACE) {
		return p.parseBlock()
	}
	expr := p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}
	return &ast.ExprStmt{Base: ast.NewBase(expr.Span()), Expr: expr}
}

func (p *Parser) parseReturnExpr() ast.Expr {
	tok := p.advance()
	var values []ast.Expr
	end := tok.Span
	if !p.atExprEnd() {
		values = append(values, p.parseExpression(LOWEST))
		if p.failed() {
			return nil
		}
		end = values[0].Span()
		for p.is(lexer.COMMA) {
			p.advance()
			v := p.parseExpression(LOWEST)
			if p.failed() {
				return nil
			}
			values = append(values, v)
			end = v.Span()
		}
	}
	return &ast.ReturnExpr{Base: ast.NewBase(spanFrom(tok.Span, end)), Values: values}
}

func (p *Parser) parseBreakExpr() ast.Expr {
	tok := p.advance()
	label := ""
	end := tok.Span
	if p.is(lexer.IDENT) {
		lt := p.advance()
		label = lt.Token.Text
		end = lt.Span
	}
	return &ast.BreakExpr{Base: ast.NewBase(spanFrom(tok.Span, end)), Label: label}
}

func (p *Parser) parseContinueExpr() ast.Expr {
	tok := p.advance()
	label := ""
	end := tok.Span
	if p.is(lexer.IDENT) {
		lt := p.advance()
		label = lt.Token.Text
		end = lt.Span
	}
	return &ast.ContinueExpr{Base: ast.NewBase(spanFrom(tok.Span, end)), Label: label}
}

// atExprEnd reports whether the current token cannot start an expression,
// used to detect the zero-value forms of `return`/`break`/`continue`.
func (p *Parser) atExprEnd() bool {
	switch p.cur().Token.Kind {
	case lexer.NEWLINE, lexer.SEMICOLON, lexer.EOF, lexer.RBRACE, lexer.RPAREN,
		lexer.RBRACKET, lexer.COMMA:
		return true
	default:
		return false
	}
}
