package cli

import (
	"fmt"
	"os"

	"github.com/jackc-toolchain/jackc/internal/ast"
	"github.com/jackc-toolchain/jackc/internal/jackc"
	"github.com/jackc-toolchain/jackc/internal/symtable"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Jack file and print its class structure",
	Long: `Parse a Jack source file and print the resulting class declaration:
its fields, and every subroutine's signature and local variables.

Useful for debugging the parser and symbol table population without
running the compiler.`,
	Args: cobra.ExactArgs(1),
	RunE: parseFile,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseFile(_ *cobra.Command, args []string) error {
	filename := args[0]

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	class, err := jackc.ParseFile(f)
	if err != nil {
		return err
	}

	printClass(class)
	return nil
}

func printClass(class *ast.Class) {
	fmt.Printf("class %s\n", class.Name)
	for _, name := range class.GlobalTable.Names() {
		entry, _ := class.GlobalTable.Lookup(name)
		fmt.Printf("  %s %s %s %d\n", entry.Kind, entry.Type, name, entry.Index)
	}
	for _, fn := range class.Functions {
		printFunction(fn)
	}
}

func printFunction(fn *ast.Function) {
	fmt.Printf("  %s %s %s (%d statements)\n", fn.Kind, fn.ReturnType, fn.Name, len(fn.Statements))
	for _, name := range fn.LocalTable.Names() {
		entry, _ := fn.LocalTable.Lookup(name)
		if entry.Kind == symtable.ARG {
			fmt.Printf("    argument %s %s %d\n", entry.Type, name, entry.Index)
		} else {
			fmt.Printf("    var %s %s %d\n", entry.Type, name, entry.Index)
		}
	}
}
