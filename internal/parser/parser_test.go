package parser

import (
	"testing"

	"github.com/suji-lang/suji/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram(%q) failed: %v", src, err)
	}
	return prog
}

func parseExprStmt(t *testing.T, src string) ast.Expr {
	t.Helper()
	prog := mustParse(t, src)
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts))
	}
	es, ok := prog.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", prog.Stmts[0])
	}
	return es.Expr
}

func TestParseArithmeticPrecedence(t *testing.T) {
	// 1 + 2 * 3 should group as 1 + (2 * 3)
	expr := parseExprStmt(t, "1 + 2 * 3")
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.BinAdd {
		t.Fatalf("expected top-level Add, got %#v", expr)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != ast.BinMul {
		t.Fatalf("expected Mul on the right, got %#v", bin.Right)
	}
}

func TestParseExponentRightAssociative(t *testing.T) {
	// 2 ^ 3 ^ 2 == 2 ^ (3 ^ 2)
	expr := parseExprStmt(t, "2 ^ 3 ^ 2")
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.BinPow {
		t.Fatalf("expected top-level Pow, got %#v", expr)
	}
	if _, ok := bin.Left.(*ast.NumberLiteral); !ok {
		t.Fatalf("expected left operand to be a literal (right-assoc), got %#v", bin.Left)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != ast.BinPow {
		t.Fatalf("expected right-nested Pow, got %#v", bin.Right)
	}
}

func TestParseAssignRightAssociative(t *testing.T) {
	// a = b = 1 parses as a = (b = 1)
	expr := parseExprStmt(t, "a = b = 1")
	outer, ok := expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected AssignExpr, got %#v", expr)
	}
	if _, ok := outer.Value.(*ast.AssignExpr); !ok {
		t.Fatalf("expected nested AssignExpr on the rhs, got %#v", outer.Value)
	}
}

func TestParsePipeBindsTighterThanApply(t *testing.T) {
	// a |> b | c should parse as a |> (b | c) per the spec's explicit
	// clarification that stream pipe binds tighter than apply.
	expr := parseExprStmt(t, "a |> b | c")
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.BinPipeForward {
		t.Fatalf("expected top-level PipeForward, got %#v", expr)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != ast.BinStreamPipe {
		t.Fatalf("expected StreamPipe nested on the right, got %#v", bin.Right)
	}
}

func TestParsePostfixBindsTighterThanUnary(t *testing.T) {
	expr := parseExprStmt(t, "-a++")
	un, ok := expr.(*ast.UnaryExpr)
	if !ok || un.Op != ast.UnaryNeg {
		t.Fatalf("expected top-level UnaryNeg, got %#v", expr)
	}
	if _, ok := un.Expr.(*ast.PostfixExpr); !ok {
		t.Fatalf("expected postfix ++ nested inside unary, got %#v", un.Expr)
	}
}

func TestParseIndexAndSliceInsideBrackets(t *testing.T) {
	idx := parseExprStmt(t, "xs[0]")
	if _, ok := idx.(*ast.IndexExpr); !ok {
		t.Fatalf("expected IndexExpr, got %#v", idx)
	}
	sl := parseExprStmt(t, "xs[1:2]")
	slice, ok := sl.(*ast.SliceExpr)
	if !ok {
		t.Fatalf("expected SliceExpr, got %#v", sl)
	}
	if slice.Start == nil || slice.End == nil {
		t.Fatalf("expected both slice bounds to be set, got %#v", slice)
	}
}

func TestParseMapAccessByNameAfterIndex(t *testing.T) {
	expr := parseExprStmt(t, "xs[0]:name")
	access, ok := expr.(*ast.MapAccessByName)
	if !ok {
		t.Fatalf("expected MapAccessByName, got %#v", expr)
	}
	if access.Key != "name" {
		t.Fatalf("expected key 'name', got %q", access.Key)
	}
	if _, ok := access.Target.(*ast.IndexExpr); !ok {
		t.Fatalf("expected IndexExpr target, got %#v", access.Target)
	}
}

func TestParseMapLiteralKeyNotConfusedWithFieldAccess(t *testing.T) {
	// A bare `{` at statement position is a block; parse the map literal in
	// an unambiguous expression position (an assignment RHS) instead.
	expr := parseExprStmt(t, "x = { a: 1, b: 2 }")
	assign, ok := expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected AssignExpr, got %#v", expr)
	}
	m, ok := assign.Value.(*ast.MapLiteral)
	if !ok {
		t.Fatalf("expected MapLiteral, got %#v", assign.Value)
	}
	if len(m.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m.Entries))
	}
}

func TestParseMethodCall(t *testing.T) {
	expr := parseExprStmt(t, `s::upper()`)
	mc, ok := expr.(*ast.MethodCallExpr)
	if !ok || mc.Method != "upper" {
		t.Fatalf("expected MethodCallExpr 'upper', got %#v", expr)
	}
}

func TestParseFunctionLiteralWithDefault(t *testing.T) {
	expr := parseExprStmt(t, "|x, y = 1| x + y")
	fn, ok := expr.(*ast.FunctionLiteral)
	if !ok {
		t.Fatalf("expected FunctionLiteral, got %#v", expr)
	}
	if len(fn.Params) != 2 || fn.Params[1].Default == nil {
		t.Fatalf("expected second param to carry a default, got %#v", fn.Params)
	}
}

func TestParseDestructureAssignment(t *testing.T) {
	expr := parseExprStmt(t, "a, b = pair")
	de, ok := expr.(*ast.DestructureExpr)
	if !ok {
		t.Fatalf("expected DestructureExpr, got %#v", expr)
	}
	if len(de.Targets) != 2 || de.Targets[0].Name != "a" || de.Targets[1].Name != "b" {
		t.Fatalf("unexpected targets: %#v", de.Targets)
	}
}

func TestParseDestructureWithWildcard(t *testing.T) {
	expr := parseExprStmt(t, "_, b = pair")
	de, ok := expr.(*ast.DestructureExpr)
	if !ok {
		t.Fatalf("expected DestructureExpr, got %#v", expr)
	}
	if !de.Targets[0].Wildcard {
		t.Fatalf("expected first target to be wildcard, got %#v", de.Targets[0])
	}
}

func TestParseSingleAssignIsNotDestructure(t *testing.T) {
	expr := parseExprStmt(t, "a = 1")
	if _, ok := expr.(*ast.AssignExpr); !ok {
		t.Fatalf("expected plain AssignExpr for a single target, got %#v", expr)
	}
}

func TestParseLoopBare(t *testing.T) {
	prog := mustParse(t, "loop { break }")
	loop, ok := prog.Stmts[0].(*ast.LoopStmt)
	if !ok || loop.Shape != ast.LoopBindingNone {
		t.Fatalf("expected bare LoopStmt, got %#v", prog.Stmts[0])
	}
}

func TestParseLoopThroughWithTwoBindings(t *testing.T) {
	prog := mustParse(t, "loop through m with k, v { s = s + k }")
	loop, ok := prog.Stmts[0].(*ast.LoopStmt)
	if !ok {
		t.Fatalf("expected LoopStmt, got %#v", prog.Stmts[0])
	}
	if loop.Shape != ast.LoopBindingTwo || loop.Bind1 != "k" || loop.Bind2 != "v" {
		t.Fatalf("unexpected loop shape/bindings: %#v", loop)
	}
	if loop.Source == nil {
		t.Fatalf("expected a through-source expression")
	}
}

func TestParseLoopLabeled(t *testing.T) {
	prog := mustParse(t, "loop as outer { break outer }")
	loop, ok := prog.Stmts[0].(*ast.LoopStmt)
	if !ok || loop.Label != "outer" {
		t.Fatalf("expected labeled loop 'outer', got %#v", prog.Stmts[0])
	}
}

func TestParseMatchConditional(t *testing.T) {
	prog := mustParse(t, "match { x > 0 => 1, _ => -1 }")
	m, ok := prog.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt wrapping match, got %#v", prog.Stmts[0])
	}
	me, ok := m.Expr.(*ast.MatchExpr)
	if !ok {
		t.Fatalf("expected MatchExpr, got %#v", m.Expr)
	}
	if me.Scrutinee != nil {
		t.Fatalf("expected no scrutinee for conditional match")
	}
	if len(me.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(me.Arms))
	}
	if _, ok := me.Arms[0].Pattern.(*ast.GuardPattern); !ok {
		t.Fatalf("expected GuardPattern for first arm, got %#v", me.Arms[0].Pattern)
	}
	if _, ok := me.Arms[1].Pattern.(*ast.WildcardPattern); !ok {
		t.Fatalf("expected WildcardPattern for default arm, got %#v", me.Arms[1].Pattern)
	}
}

func TestParseMatchStructural(t *testing.T) {
	prog := mustParse(t, `match x { 1 => "one", (a, b) => a, name => name }`)
	es := prog.Stmts[0].(*ast.ExprStmt)
	me, ok := es.Expr.(*ast.MatchExpr)
	if !ok {
		t.Fatalf("expected MatchExpr, got %#v", es.Expr)
	}
	if me.Scrutinee == nil {
		t.Fatalf("expected a scrutinee for structural match")
	}
	if len(me.Arms) != 3 {
		t.Fatalf("expected 3 arms, got %d", len(me.Arms))
	}
	if _, ok := me.Arms[0].Pattern.(*ast.LiteralPattern); !ok {
		t.Fatalf("expected LiteralPattern, got %#v", me.Arms[0].Pattern)
	}
	if _, ok := me.Arms[1].Pattern.(*ast.TuplePattern); !ok {
		t.Fatalf("expected TuplePattern, got %#v", me.Arms[1].Pattern)
	}
	if _, ok := me.Arms[2].Pattern.(*ast.BindingPattern); !ok {
		t.Fatalf("expected BindingPattern, got %#v", me.Arms[2].Pattern)
	}
}

func TestParseImportWholeModule(t *testing.T) {
	prog := mustParse(t, "import std")
	imp, ok := prog.Stmts[0].(*ast.ImportStmt)
	if !ok || imp.Path != "std" || imp.Alias != "" {
		t.Fatalf("unexpected import: %#v", prog.Stmts[0])
	}
}

func TestParseImportNestedPathWithAlias(t *testing.T) {
	prog := mustParse(t, "import std:json:parse as jparse")
	imp, ok := prog.Stmts[0].(*ast.ImportStmt)
	if !ok {
		t.Fatalf("expected ImportStmt, got %#v", prog.Stmts[0])
	}
	if imp.Path != "std:json:parse" || imp.Alias != "jparse" {
		t.Fatalf("unexpected import: %#v", imp)
	}
}

func TestParseExportSingleValue(t *testing.T) {
	prog := mustParse(t, "export 1 + 1")
	exp, ok := prog.Stmts[0].(*ast.ExportStmt)
	if !ok {
		t.Fatalf("expected ExportStmt, got %#v", prog.Stmts[0])
	}
	if _, ok := exp.Value.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected a binary expression export value, got %#v", exp.Value)
	}
}

func TestParseExportMapForm(t *testing.T) {
	prog := mustParse(t, "export { add: 1, sub: 2 }")
	exp, ok := prog.Stmts[0].(*ast.ExportStmt)
	if !ok {
		t.Fatalf("expected ExportStmt, got %#v", prog.Stmts[0])
	}
	if _, ok := exp.Value.(*ast.MapLiteral); !ok {
		t.Fatalf("expected a map-literal export value, got %#v", exp.Value)
	}
}

func TestParseMultipleExportsIsParseError(t *testing.T) {
	_, err := ParseProgram("export 1\nexport 2")
	if err == nil {
		t.Fatal("expected a parse error for a second export")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Kind != MultipleExports {
		t.Fatalf("expected MultipleExports, got %v", err)
	}
}

func TestParseStringInterpolationExpression(t *testing.T) {
	expr := parseExprStmt(t, `"hi ${name}!"`)
	tmpl, ok := expr.(*ast.StringTemplate)
	if !ok {
		t.Fatalf("expected StringTemplate, got %#v", expr)
	}
	if len(tmpl.Parts) != 3 {
		t.Fatalf("expected 3 parts (text, expr, text), got %d: %#v", len(tmpl.Parts), tmpl.Parts)
	}
	if tmpl.Parts[1].Expr == nil {
		t.Fatalf("expected the middle part to carry an expression")
	}
}

func TestParseShellCommandTemplate(t *testing.T) {
	expr := parseExprStmt(t, "`echo ${name}`")
	if _, ok := expr.(*ast.ShellCommandTemplate); !ok {
		t.Fatalf("expected ShellCommandTemplate, got %#v", expr)
	}
}

func TestParseGroupingVsTuple(t *testing.T) {
	g := parseExprStmt(t, "(1 + 2)")
	if _, ok := g.(*ast.GroupingExpr); !ok {
		t.Fatalf("expected GroupingExpr, got %#v", g)
	}
	tup := parseExprStmt(t, "(1, 2, 3)")
	tl, ok := tup.(*ast.TupleLiteral)
	if !ok || len(tl.Elements) != 3 {
		t.Fatalf("expected a 3-element TupleLiteral, got %#v", tup)
	}
}

func TestParseReturnWithMultipleValues(t *testing.T) {
	prog := mustParse(t, "loop { return 1, 2 }")
	loop := prog.Stmts[0].(*ast.LoopStmt)
	es := loop.Body.Stmts[0].(*ast.ExprStmt)
	ret, ok := es.Expr.(*ast.ReturnExpr)
	if !ok || len(ret.Values) != 2 {
		t.Fatalf("expected a 2-value ReturnExpr, got %#v", es.Expr)
	}
}

func TestParseBlockAsLastStatementValue(t *testing.T) {
	prog := mustParse(t, "{ 1\n2\n3 }")
	block, ok := prog.Stmts[0].(*ast.BlockStmt)
	if !ok || len(block.Stmts) != 3 {
		t.Fatalf("expected a 3-statement block, got %#v", prog.Stmts[0])
	}
}

func TestParseCompoundAssign(t *testing.T) {
	expr := parseExprStmt(t, "x += 1")
	ce, ok := expr.(*ast.CompoundAssignExpr)
	if !ok || ce.Op != ast.CompoundAdd {
		t.Fatalf("expected CompoundAssignExpr(Add), got %#v", expr)
	}
}

func TestParseUnexpectedTokenIsParseError(t *testing.T) {
	_, err := ParseProgram("1 +")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if _, ok := err.(*Error); !ok {
		t.Fatalf("expected *parser.Error, got %T", err)
	}
}
