package cli

import (
	"fmt"
	"os"

	"github.com/jackc-toolchain/jackc/internal/discover"
	"github.com/jackc-toolchain/jackc/internal/jackc"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.Args = cobra.ExactArgs(1)
	rootCmd.RunE = runCompile
	rootCmd.Use = "jackc [file|directory]"
}

func runCompile(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	files, err := discover.CollectJackFiles(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .jack files found in %q", args[0])
	}

	var failures int
	for _, file := range files {
		if verbose {
			fmt.Fprintf(os.Stderr, "Compiling %s...\n", file)
		}
		outputPath, err := compileOne(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			failures++
			continue
		}
		fmt.Printf("%s -> %s\n", file, outputPath)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed to compile", failures, len(files))
	}
	return nil
}

func compileOne(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %q: %w", path, err)
	}
	defer in.Close()

	outputPath := discover.OutputPath(path)
	out, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("opening %q: %w", outputPath, err)
	}
	defer out.Close()

	if _, err := jackc.CompileFile(in, out); err != nil {
		return "", err
	}

	return outputPath, nil
}
