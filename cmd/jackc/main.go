// Command jackc compiles Jack class declarations to VM assembly.
package main

import (
	"fmt"
	"os"

	"github.com/jackc-toolchain/jackc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
