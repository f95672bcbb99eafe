package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose bool
	baseDir string
	seed    int64
)

var rootCmd = &cobra.Command{
	Use:   "suji [file]",
	Short: "Suji scripting language interpreter",
	Long: `suji is the interpreter for Suji, a dynamically typed scripting
language with closures, pattern matching, destructuring, pipe operators,
and a module system backed by a virtual standard library.

Run with no arguments to start an interactive REPL, or give it a single
script file to execute.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runREPL()
		}
		return runFile(args[0])
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "", "filesystem root for resolving relative imports (default: the script's directory)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "seed for the interpreter's random source")
}
