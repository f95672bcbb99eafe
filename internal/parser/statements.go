package parser

import (
	"strings"

	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/lexer"
)

// parseProgram parses a full source file: a flat sequence of top-level
// statements separated by newlines or semicolons (spec §4.2).
func (p *Parser) parseProgram() (*ast.Program, error) {
	p.skipStatementSeparators()
	start := p.cur().Span
	var stmts []ast.Stmt
	for !p.is(lexer.EOF) && !p.failed() {
		stmts = append(stmts, p.parseStatement())
		if p.failed() {
			return nil, p.err
		}
		p.skipStatementSeparators()
	}
	if p.failed() {
		return nil, p.err
	}
	end := start
	if len(stmts) > 0 {
		end = stmts[len(stmts)-1].Span()
	}
	return &ast.Program{Base: ast.NewBase(spanFrom(start, end)), Stmts: stmts}, nil
}

// parseBlock parses a brace-delimited statement sequence.
func (p *Parser) parseBlock() *ast.BlockStmt {
	open := p.mustExpect(lexer.LBRACE)
	if p.failed() {
		return nil
	}
	p.skipStatementSeparators()
	var stmts []ast.Stmt
	for !p.is(lexer.RBRACE) && !p.failed() {
		stmts = append(stmts, p.parseStatement())
		if p.failed() {
			return nil
		}
		p.skipStatementSeparators()
	}
	close := p.mustExpect(lexer.RBRACE)
	if p.failed() {
		return nil
	}
	return &ast.BlockStmt{Base: ast.NewBase(spanFrom(open.Span, close.Span)), Stmts: stmts}
}

// parseStatement dispatches on the leading token (spec §4.2): `loop`,
// `import`, `export`, `{ block }`, otherwise an expression statement (which
// may first be reparsed as a destructuring assignment).
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Token.Kind {
	case lexer.LOOP:
		return p.parseLoopStatement()
	case lexer.IMPORT:
		return p.parseImportStatement()
	case lexer.EXPORT:
		return p.parseExportStatement()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IDENT, lexer.UNDERSCORE:
		if stmt := p.tryParseDestructure(); stmt != nil {
			return stmt
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Stmt {
	expr := p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}
	return &ast.ExprStmt{Base: ast.NewBase(expr.Span()), Expr: expr}
}

// tryParseDestructure implements the destructuring-assignment lookahead
// (spec §4.2): from an identifier/`_` start, scan ahead across top-level
// commas for an `=`. If found, with at least two comma-separated targets
// (each itself a bare identifier or `_`), this is a Destructure rather than
// a plain expression statement. Returns nil (without consuming input) when
// the lookahead doesn't confirm a destructure, so the caller falls back to
// ordinary expression parsing.
func (p *Parser) tryParseDestructure() ast.Stmt {
	start := p.pos
	var targets []ast.DestructureTarget
	for {
		tok := p.cur()
		switch tok.Token.Kind {
		case lexer.IDENT:
			targets = append(targets, ast.DestructureTarget{Name: tok.Token.Text})
			p.pos++
		case lexer.UNDERSCORE:
			targets = append(targets, ast.DestructureTarget{Wildcard: true})
			p.pos++
		default:
			p.pos = start
			return nil
		}
		if p.cur().Token.Kind == lexer.COMMA {
			p.pos++
			continue
		}
		break
	}
	if len(targets) < 2 || p.cur().Token.Kind != lexer.ASSIGN {
		p.pos = start
		return nil
	}
	startTok := p.tokens[start]
	p.pos++ // =
	value := p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}
	expr := &ast.DestructureExpr{
		Base:    ast.NewBase(spanFrom(startTok.Span, value.Span())),
		Targets: targets,
		Value:   value,
	}
	return &ast.ExprStmt{Base: ast.NewBase(expr.Span()), Expr: expr}
}

// parseLoopStatement parses `loop { … }`, `loop through src [with b1[, b2]]
// [as label] { … }`, and the bare `loop [as label] { … }` form (spec §4.2,
// §4.3, §8.2 examples 2-4).
func (p *Parser) parseLoopStatement() ast.Stmt {
	start := p.advance() // loop

	shape := ast.LoopBindingNone
	var source ast.Expr
	var bind1, bind2 string
	if p.is(lexer.THROUGH) {
		p.advance()
		source = p.parseExpression(LOWEST)
		if p.failed() {
			return nil
		}
		if p.is(lexer.WITH) {
			p.advance()
			nameTok := p.mustExpect(lexer.IDENT)
			if p.failed() {
				return nil
			}
			bind1 = nameTok.Token.Text
			shape = ast.LoopBindingOne
			if p.is(lexer.COMMA) {
				p.advance()
				name2 := p.mustExpect(lexer.IDENT)
				if p.failed() {
					return nil
				}
				bind2 = name2.Token.Text
				shape = ast.LoopBindingTwo
			}
		}
	}

	label := ""
	if p.is(lexer.AS) {
		p.advance()
		labelTok := p.mustExpect(lexer.IDENT)
		if p.failed() {
			return nil
		}
		label = labelTok.Token.Text
	}

	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.LoopStmt{
		Base:   ast.NewBase(spanFrom(start.Span, body.Span())),
		Shape:  shape,
		Bind1:  bind1,
		Bind2:  bind2,
		Source: source,
		Label:  label,
		Body:   body,
	}
}

// parseImportStatement parses `import name`, `import a:b:…:item`, and
// `import …:item as alias` (spec §4.2 "Import grammar").
func (p *Parser) parseImportStatement() ast.Stmt {
	start := p.advance() // import

	firstTok := p.mustExpect(lexer.IDENT)
	if p.failed() {
		return nil
	}
	var segs []string
	segs = append(segs, firstTok.Token.Text)
	end := firstTok.Span
	for p.is(lexer.COLON) {
		p.advance()
		segTok := p.mustExpect(lexer.IDENT)
		if p.failed() {
			return nil
		}
		segs = append(segs, segTok.Token.Text)
		end = segTok.Span
	}

	alias := ""
	if p.is(lexer.AS) {
		p.advance()
		aliasTok := p.mustExpect(lexer.IDENT)
		if p.failed() {
			return nil
		}
		alias = aliasTok.Token.Text
		end = aliasTok.Span
	}

	if len(segs) == 0 || segs[0] == "" {
		p.fail(newInvalidImportPath(spanFrom(start.Span, end), "empty import path"))
		return nil
	}

	return &ast.ImportStmt{
		Base:  ast.NewBase(spanFrom(start.Span, end)),
		Path:  strings.Join(segs, ":"),
		Alias: alias,
	}
}

// parseExportStatement parses the map form `export { name: expr, … }` or
// the single-value form `export expr`. At most one export is allowed per
// module (spec §4.2, §5); a second occurrence is a hard parse error.
func (p *Parser) parseExportStatement() ast.Stmt {
	start := p.advance() // export

	if p.sawExport {
		p.fail(newMultipleExports(start.Span))
		return nil
	}

	var value ast.Expr
	if p.is(lexer.LBRACE) {
		value = p.parseMapLiteral()
	} else {
		value = p.parseExpression(LOWEST)
	}
	if p.failed() {
		return nil
	}

	p.sawExport = true
	p.exportSpan = spanFrom(start.Span, value.Span())

	return &ast.ExportStmt{
		Base:  ast.NewBase(p.exportSpan),
		Value: value,
	}
}
