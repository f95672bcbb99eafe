package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/suji-lang/suji/internal/diagnostics"
	"github.com/suji-lang/suji/internal/interp"
	"github.com/suji-lang/suji/internal/parser"
	"github.com/suji-lang/suji/internal/stdlib"
	"github.com/suji-lang/suji/internal/value"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Suji session",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runREPL()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runREPL evaluates one line of input at a time against a single
// persistent environment, printing the value of each statement. Line-level
// batching (rather than suji-repl's multi-line brace-aware buffering, see
// original_source/crates/suji-repl) keeps this within the CLI's stated
// scope (spec §1 "CLI/REPL internals" are out of scope); it's enough to
// exercise the interpreter interactively.
func runREPL() error {
	dir := baseDir
	if dir == "" {
		dir = "."
	}
	i := interp.New(stdlib.VirtualRoot(), interp.WithBaseDir(dir), interp.WithSeed(seed), interp.WithTracing(verbose))
	env := i.NewTopLevelEnv()

	fmt.Printf("suji %s — type an expression and press enter, Ctrl-D to exit\n", Version)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		prog, err := parser.ParseProgram(line)
		if err != nil {
			printREPLError(err, line)
			continue
		}

		result, err := i.Run(prog, env)
		if err != nil {
			printREPLError(err, line)
			continue
		}
		if result != nil && result != value.Nil {
			fmt.Println(result.String())
		}
	}
}

func printREPLError(err error, line string) {
	if d, ok := diagnostics.New(err, line, "<repl>"); ok {
		fmt.Fprintln(os.Stderr, d.Format(true))
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n", err)
}
