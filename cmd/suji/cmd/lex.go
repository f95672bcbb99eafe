package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/suji-lang/suji/internal/diagnostics"
	"github.com/suji-lang/suji/internal/lexer"
)

var (
	lexShowPos  bool
	lexEvalExpr string
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Suji file or expression",
	Long: `Tokenize a Suji program and print the resulting tokens, for
debugging the lexer. Reads from stdin if no file or -e is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		src, filename, err := readSource(lexEvalExpr, args)
		if err != nil {
			return err
		}

		tokens, err := lexer.Lex(src)
		if err != nil {
			if d, ok := diagnostics.New(err, src, filename); ok {
				fmt.Fprintln(os.Stderr, d.Format(true))
			}
			return fmt.Errorf("lexing failed")
		}
		for _, ts := range tokens {
			printToken(ts)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
}

func printToken(ts lexer.TokenSpan) {
	out := fmt.Sprintf("[%-14s]", ts.Token.Kind)
	if ts.Token.Text != "" {
		out += fmt.Sprintf(" %q", ts.Token.Text)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%s", ts.Span)
	}
	fmt.Println(out)
}

// readSource resolves a command's input from (in order) an -e expression,
// a positional file argument, or stdin.
func readSource(evalExpr string, args []string) (src, filename string, err error) {
	switch {
	case evalExpr != "":
		return evalExpr, "<eval>", nil
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	default:
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), "<stdin>", nil
	}
}
