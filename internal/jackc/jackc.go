// Package jackc wires the lexer, parser, and compiler into the single
// entry point the CLI and tests drive a source file through.
package jackc

import (
	"io"

	"github.com/jackc-toolchain/jackc/internal/ast"
	"github.com/jackc-toolchain/jackc/internal/compiler"
	"github.com/jackc-toolchain/jackc/internal/lexer"
	"github.com/jackc-toolchain/jackc/internal/parser"
	"github.com/jackc-toolchain/jackc/internal/vmwriter"
)

// ParseFile runs the lexer and parser over r and returns the resulting
// AST without compiling it. Useful on its own for debugging tools and
// AST-shape tests.
func ParseFile(r io.Reader) (*ast.Class, error) {
	lex, err := lexer.New(r)
	if err != nil {
		return nil, err
	}
	p := parser.New(lex)
	class, err := p.ParseClass()
	if err != nil {
		return nil, err
	}
	if lexErr := lex.Err(); lexErr != nil {
		return nil, lexErr
	}
	return class, nil
}

// CompileFile lexes, parses, and compiles r, writing VM assembly to w. It
// returns the compiled class's name; it does not check that name against
// any file name.
func CompileFile(r io.Reader, w io.Writer) (string, error) {
	class, err := ParseFile(r)
	if err != nil {
		return "", err
	}

	vw := vmwriter.New(w)
	c := compiler.New(vw)
	if err := c.CompileClass(class); err != nil {
		return class.Name, err
	}

	return class.Name, nil
}
