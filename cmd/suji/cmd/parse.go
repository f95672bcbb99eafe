package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/suji-lang/suji/internal/diagnostics"
	"github.com/suji-lang/suji/internal/parser"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Suji file or expression and dump its AST",
	Long: `Parse a Suji program and print the Abstract Syntax Tree, for
debugging the parser. Reads from stdin if no file or -e is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		src, filename, err := readSource(parseEvalExpr, args)
		if err != nil {
			return err
		}

		prog, err := parser.ParseProgram(src)
		if err != nil {
			if d, ok := diagnostics.New(err, src, filename); ok {
				fmt.Fprintln(os.Stderr, d.Format(true))
			}
			return fmt.Errorf("parsing failed")
		}
		for _, stmt := range prog.Stmts {
			fmt.Printf("%+v\n", stmt)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from a file")
}
