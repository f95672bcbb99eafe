package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/suji-lang/suji/internal/diagnostics"
	"github.com/suji-lang/suji/internal/interp"
	"github.com/suji-lang/suji/internal/parser"
	"github.com/suji-lang/suji/internal/stdlib"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Suji script",
	Long: `Execute a Suji program from a file or an inline expression.

Examples:
  suji run script.si
  suji run -e '1 + 2'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if evalExpr != "" {
			return runSource(evalExpr, "<eval>", ".")
		}
		if len(args) != 1 {
			return fmt.Errorf("either provide a file path or use -e for inline code")
		}
		return runFile(args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
}

func runFile(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	dir := baseDir
	if dir == "" {
		dir = filepath.Dir(filename)
	}
	return runSource(string(content), filename, dir)
}

func runSource(src, filename, dir string) error {
	prog, err := parser.ParseProgram(src)
	if err != nil {
		reportError(err, src, filename)
		return fmt.Errorf("parsing failed")
	}

	i := interp.New(stdlib.VirtualRoot(), interp.WithBaseDir(dir), interp.WithSeed(seed), interp.WithTracing(verbose))
	env := i.NewTopLevelEnv()

	if _, err := i.Run(prog, env); err != nil {
		reportError(err, src, filename)
		return fmt.Errorf("execution failed")
	}
	return nil
}

// reportError renders a diagnostic for any of Suji's three error families,
// falling back to a bare message for anything else (e.g. I/O errors).
func reportError(err error, src, filename string) {
	if d, ok := diagnostics.New(err, src, filename); ok {
		fmt.Fprintln(os.Stderr, d.Format(true))
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n", err)
}
