// Command suji is the CLI entry point for the Suji scripting language:
// run a script file, drop into a REPL, or inspect the lexer/parser output.
package main

import (
	"fmt"
	"os"

	"github.com/suji-lang/suji/cmd/suji/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
