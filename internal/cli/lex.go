package cli

import (
	"fmt"
	"os"

	"github.com/jackc-toolchain/jackc/internal/lexer"
	"github.com/jackc-toolchain/jackc/internal/token"
	"github.com/spf13/cobra"
)

var showLine bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Jack file and print the resulting tokens",
	Long: `Tokenize a Jack source file and print the resulting token stream.

Useful for debugging the lexer and understanding how a file is split into
keywords, symbols, identifiers, and constants.`,
	Args: cobra.ExactArgs(1),
	RunE: lexFile,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&showLine, "show-line", false, "show each token's source line")
}

func lexFile(_ *cobra.Command, args []string) error {
	filename := args[0]

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	lex, err := lexer.New(f)
	if err != nil {
		return err
	}

	count := 0
	for lex.Advance(); lex.Current().Type != token.Invalid; lex.Advance() {
		printToken(lex.Current())
		count++
	}

	if err := lex.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}

	fmt.Fprintf(os.Stderr, "%d tokens\n", count)
	return nil
}

func printToken(tok token.Token) {
	output := fmt.Sprintf("[%-16s] %q", tok.Type, tok.Terminal)
	if showLine {
		output += fmt.Sprintf(" @%d", tok.Line)
	}
	fmt.Println(output)
}
