package interp_test

import (
	"testing"

	"github.com/suji-lang/suji/internal/interp"
	"github.com/suji-lang/suji/internal/parser"
	"github.com/suji-lang/suji/internal/value"
)

// run parses and evaluates src against a fresh top-level Interp, mirroring
// spec §8.2's worked examples.
func run(t *testing.T, src string) value.Value {
	t.Helper()
	prog, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	i := interp.New(nil)
	env := i.NewTopLevelEnv()
	v, err := i.Run(prog, env)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return v
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	i := interp.New(nil)
	env := i.NewTopLevelEnv()
	_, err = i.Run(prog, env)
	return err
}

func wantString(t *testing.T, v value.Value, want string) {
	t.Helper()
	s, ok := v.(value.String)
	if !ok || string(s) != want {
		t.Fatalf("got %#v, want String(%q)", v, want)
	}
}

func wantNumber(t *testing.T, v value.Value, want string) {
	t.Helper()
	n, ok := v.(value.Number)
	if !ok || n.String() != want {
		t.Fatalf("got %#v, want Number(%s)", v, want)
	}
}

func wantBool(t *testing.T, v value.Value, want bool) {
	t.Helper()
	b, ok := v.(value.Boolean)
	if !ok || bool(b) != want {
		t.Fatalf("got %#v, want Boolean(%v)", v, want)
	}
}

// Arithmetic & precedence (spec §8.2 example 1).
func TestArithmeticPrecedence(t *testing.T) {
	wantNumber(t, run(t, "2 + 3 * 4 ^ 2"), "50")
}

func TestPowRightAssociative(t *testing.T) {
	wantNumber(t, run(t, "2 ^ 3 ^ 2"), "512")
}

// Destructuring (spec §8.2 example 2).
func TestDestructuringAssignment(t *testing.T) {
	src := `
make = || { return 1, 2 }
a, b = make()
b
`
	wantNumber(t, run(t, src), "2")
}

// Map iteration & insertion order (spec §8.2 example 3).
func TestMapIterationOrder(t *testing.T) {
	src := `
m = { a: 1, b: 2, c: 3 }
s = ""
loop through m with k, v { s = s + k }
s
`
	wantString(t, run(t, src), "abc")
}

// Labeled break (spec §8.2 example 4).
func TestLabeledBreak(t *testing.T) {
	src := `
r = 0
loop as outer {
  loop {
    r = 1
    break outer
  }
  r = 99
}
r
`
	wantNumber(t, run(t, src), "1")
}

// Conditional match (spec §8.2 example 5).
func TestConditionalMatch(t *testing.T) {
	src := `
x = 7
match { x > 10 => "big", x > 5 => "mid", _ => "small" }
`
	wantString(t, run(t, src), "mid")
}

// String template with nested template (spec §8.2 example 6).
func TestNestedStringTemplate(t *testing.T) {
	wantString(t, run(t, `"Hello ${"world"}"`), "Hello world")
}

// Pipe operators (spec §8.2 example 7).
func TestPipeOperators(t *testing.T) {
	src := `
inc = |x| x + 1
dbl = |x| x * 2
3 |> inc |> dbl
`
	wantNumber(t, run(t, src), "8")
}

// Regex match operator (spec §8.2 example 8).
func TestRegexMatchOperator(t *testing.T) {
	wantBool(t, run(t, `"abc123" ~ /\d+/`), true)
}

func TestRegexNotMatchOperator(t *testing.T) {
	wantBool(t, run(t, `"abcdef" !~ /\d+/`), true)
}

func TestUnlabeledBreakTargetsInnermostLoop(t *testing.T) {
	src := `
total = 0
loop through 1..=3 with n {
  loop through 1..=3 with m {
    match { m == 2 => break, _ => 0 }
    total = total + 1
  }
}
total
`
	wantNumber(t, run(t, src), "3")
}

func TestContinueSkipsRestOfIteration(t *testing.T) {
	src := `
s = ""
loop through 1..=5 with n {
  match { n == 3 => continue, _ => 0 }
  s = s + n::to_string()
}
s
`
	wantString(t, run(t, src), "1245")
}

func TestClosureCapturesDefiningEnv(t *testing.T) {
	src := `
make_counter = || {
  count = 0
  return || {
    count = count + 1
    return count
  }
}
counter = make_counter()
counter()
counter()
counter()
`
	wantNumber(t, run(t, src), "3")
}

func TestFunctionParametersDeepCopyOnBind(t *testing.T) {
	src := `
mutate = |xs| {
  xs::push(99)
  return xs
}
original = [1, 2, 3]
mutate(original)
original::length()
`
	wantNumber(t, run(t, src), "3")
}

func TestListMutatingMethodsRequireAssignableTarget(t *testing.T) {
	err := runErr(t, `[1, 2, 3]::push(4)`)
	if err == nil {
		t.Fatal("expected an error calling push on a non-assignable temporary")
	}
}

func TestListPushPopOnVariable(t *testing.T) {
	src := `
xs = [1, 2]
xs::push(3)
last = xs::pop()
xs::length()
`
	wantNumber(t, run(t, src), "2")
}

func TestListHigherOrderMethods(t *testing.T) {
	src := `
xs = [1, 2, 3, 4]
evens = xs::filter(|n| n % 2 == 0)
doubled = evens::map(|n| n * 2)
doubled::fold(0, |acc, n| acc + n)
`
	wantNumber(t, run(t, src), "12")
}

func TestStringMethods(t *testing.T) {
	wantString(t, run(t, `"Hello"::upper()`), "HELLO")
	wantBool(t, run(t, `"hello world"::contains("world")`), true)
	wantNumber(t, run(t, `"hello"::length()`), "5")
}

func TestNumberMethods(t *testing.T) {
	wantNumber(t, run(t, `(-5)::abs()`), "5")
	wantNumber(t, run(t, `4::sqrt()::round()`), "2")
}

func TestMapMethods(t *testing.T) {
	src := `
m = { a: 1, b: 2 }
m::keys()::length()
`
	wantNumber(t, run(t, src), "2")
}

func TestStructuralMatchBindingPattern(t *testing.T) {
	src := `
pair = (1, 2)
match pair {
  (x, y) => x + y
}
`
	wantNumber(t, run(t, src), "3")
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	err := runErr(t, "nope")
	re, ok := err.(*value.RuntimeError)
	if !ok || re.Kind != value.UndefinedVariable {
		t.Fatalf("got %#v, want UndefinedVariable", err)
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	err := runErr(t, "1 / 0")
	re, ok := err.(*value.RuntimeError)
	if !ok || re.Kind != value.InvalidOperation {
		t.Fatalf("got %#v, want InvalidOperation", err)
	}
}

func TestRangeProducesList(t *testing.T) {
	v := run(t, "1..5")
	l, ok := v.(*value.List)
	if !ok || len(l.Elements) != 4 {
		t.Fatalf("got %#v, want an exclusive 4-element range list", v)
	}
	wantNumber(t, run(t, "(1..=5)::length()"), "5")
}
