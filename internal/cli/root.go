// Package cli implements the jackc command-line tool as a cobra command
// tree: a default compile command plus lex/parse debugging subcommands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information, overridable by build flags.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "jackc",
	Short: "Jack language compiler",
	Long: `jackc compiles Jack class declarations to stack-machine VM assembly.

Point it at a single .jack file or a directory of them; each input file
produces a <basename>.vm file in the current working directory.`,
	Version: Version,
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

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
