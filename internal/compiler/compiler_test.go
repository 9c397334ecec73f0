package compiler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jackc-toolchain/jackc/internal/lexer"
	"github.com/jackc-toolchain/jackc/internal/parser"
	"github.com/jackc-toolchain/jackc/internal/vmwriter"
	"github.com/stretchr/testify/require"
)

// compile parses src and compiles it, returning the emitted VM text.
func compile(t *testing.T, src string) string {
	t.Helper()

	lex, err := lexer.New(strings.NewReader(src))
	require.NoError(t, err)

	class, err := parser.New(lex).ParseClass()
	require.NoError(t, err)

	var buf bytes.Buffer
	c := New(vmwriter.New(&buf))
	require.NoError(t, c.CompileClass(class))
	return buf.String()
}

func TestCompileEmptyFunction(t *testing.T) {
	got := compile(t, "class Foo { function void bar() { return; } }")
	want := "function Foo.bar 0\n" +
		"push constant 0\n" +
		"return\n"
	require.Equal(t, want, got)
}

func TestCompileConstructorWithTwoFields(t *testing.T) {
	got := compile(t, "class P { field int x, y; constructor P new() { return this; } }")
	want := "function P.new 0\n" +
		"push constant 2\n" +
		"call Memory.alloc 1\n" +
		"pop pointer 0\n" +
		"push pointer 0\n" +
		"return\n"
	require.Equal(t, want, got)
}

func TestCompileMethodCallOnField(t *testing.T) {
	got := compile(t, "class A { field B b; method void m() { do b.f(); return; } }")
	want := "function A.m 0\n" +
		"push argument 0\n" +
		"pop pointer 0\n" +
		"push this 0\n" +
		"call B.f 1\n" +
		"pop temp 0\n" +
		"push constant 0\n" +
		"return\n"
	require.Equal(t, want, got)
}

func TestCompileStaticCall(t *testing.T) {
	got := compile(t, "class M { method void m() { do Output.printInt(5); return; } }")
	require.Contains(t, got, "push constant 5\ncall Output.printInt 1\npop temp 0\n")
}

func TestCompileLetArray(t *testing.T) {
	got := compile(t, `class A {
		function void m(int x) {
			var int a, i;
			let a[i] = x + 1;
			return;
		}
	}`)
	want := "push argument 0\n" +
		"push constant 1\n" +
		"add\n" +
		"push local 1\n" +
		"push local 0\n" +
		"add\n" +
		"pop pointer 1\n" +
		"pop that 0\n"
	require.Contains(t, got, want)
}

func TestCompileIfElseLabelUniqueness(t *testing.T) {
	got := compile(t, `class A {
		function void m() {
			var int x, y, z;
			if (x) { let y = 1; }
			if (z) { let y = 2; }
			return;
		}
	}`)
	require.Contains(t, got, "IF_FALSE0")
	require.Contains(t, got, "IF_END0")
	require.Contains(t, got, "IF_FALSE1")
	require.Contains(t, got, "IF_END1")
	require.NotContains(t, got, "IF_FALSE2")
}

func TestCompileStringLiteral(t *testing.T) {
	got := compile(t, `class A { function void m() { var String s; let s = "ab"; return; } }`)
	want := "push constant 2\n" +
		"call String.new 1\n" +
		"push constant 97\n" +
		"call String.appendChar 2\n" +
		"push constant 98\n" +
		"call String.appendChar 2\n"
	require.Contains(t, got, want)
}

func TestCompileBooleanTrueLowersToPushOneNeg(t *testing.T) {
	got := compile(t, `class A { function void m() { var boolean b; let b = true; return; } }`)
	require.Contains(t, got, "push constant 1\nneg\n")
	require.NotContains(t, got, "push constant -1")
}

func TestCompileLeftToRightNoPrecedence(t *testing.T) {
	got := compile(t, `class A { function void m() { var int x; let x = 1 + 2 * 3; return; } }`)
	want := "push constant 1\n" +
		"push constant 2\n" +
		"add\n" +
		"push constant 3\n" +
		"call Math.multiply 2\n"
	require.Contains(t, got, want)
}

func TestCompileWhileLoopLabels(t *testing.T) {
	got := compile(t, `class A {
		function void m() {
			var int x;
			while (x) { let x = x - 1; }
			return;
		}
	}`)
	require.Contains(t, got, "label WHILE_START0")
	require.Contains(t, got, "label WHILE_FALSE0")
	require.Contains(t, got, "goto WHILE_START0")
	require.Contains(t, got, "if-goto WHILE_FALSE0")
}

func TestCompileUndeclaredIdentifierIsSemanticError(t *testing.T) {
	lex, err := lexer.New(strings.NewReader("class A { function void m() { let y = z; return; } }"))
	require.NoError(t, err)
	class, err := parser.New(lex).ParseClass()
	require.NoError(t, err)

	var buf bytes.Buffer
	c := New(vmwriter.New(&buf))
	err = c.CompileClass(class)
	require.Error(t, err)
}
