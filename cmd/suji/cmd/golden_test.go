package cmd_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/suji-lang/suji/internal/interp"
	"github.com/suji-lang/suji/internal/parser"
	"github.com/suji-lang/suji/internal/stdlib"
)

// TestGoldenExamples snapshots the final value of a handful of small
// end-to-end programs (arithmetic precedence, closures, pattern matching,
// destructuring, pipes, higher-order list methods), grounded on
// CWBudde-go-dws/internal/interp's go-snaps-based fixture tests
// (internal/interp/fixture_test.go), scaled down from its
// hundreds-of-fixture-file harness to a few inline programs.
func TestGoldenExamples(t *testing.T) {
	examples := []struct {
		name string
		src  string
	}{
		{"arithmetic_precedence", "2 + 3 * 4 ^ 2"},
		{"closures", `
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
`},
		{"pattern_match", `
classify = |n| match {
  n < 0 => "negative",
  n == 0 => "zero",
  _ => "positive",
}
classify(-3) + "," + classify(0) + "," + classify(8)
`},
		{"destructuring", `
pair = (1, 2)
a, b = pair
a + b
`},
		{"pipe_operators", `
double = |n| n * 2
increment = |n| n + 1
5 |> double |> increment
`},
		{"list_higher_order", `
[1, 2, 3, 4, 5]::filter(|n| n % 2 == 0)::map(|n| n * n)::fold(0, |acc, n| acc + n)
`},
	}

	for _, ex := range examples {
		t.Run(ex.name, func(t *testing.T) {
			prog, err := parser.ParseProgram(ex.src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			i := interp.New(stdlib.VirtualRoot(), interp.WithSeed(1))
			env := i.NewTopLevelEnv()
			result, err := i.Run(prog, env)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}
			snaps.MatchSnapshot(t, ex.name, result.String())
		})
	}
}
