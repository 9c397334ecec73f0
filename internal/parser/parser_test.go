package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc-toolchain/jackc/internal/ast"
	"github.com/jackc-toolchain/jackc/internal/lexer"
	"github.com/jackc-toolchain/jackc/internal/symtable"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *ast.Class {
	t.Helper()
	lex, err := lexer.New(strings.NewReader(src))
	require.NoError(t, err)
	class, err := New(lex).ParseClass()
	require.NoError(t, err)
	return class
}

var ignoreTables = cmpopts.IgnoreFields(ast.Class{}, "GlobalTable")
var ignoreFnTables = cmpopts.IgnoreFields(ast.Function{}, "LocalTable")

func TestParseEmptyClass(t *testing.T) {
	class := parse(t, "class Foo { }")
	want := &ast.Class{Name: "Foo"}
	if diff := cmp.Diff(want, class, ignoreTables, ignoreFnTables); diff != "" {
		t.Errorf("class mismatch (-want +got):\n%s", diff)
	}
}

func TestParseClassVarDecPopulatesGlobalTable(t *testing.T) {
	class := parse(t, "class P { field int x, y; static boolean done; }")

	entry, ok := class.GlobalTable.Lookup("x")
	require.True(t, ok)
	require.Equal(t, symtable.FIELD, entry.Kind)
	require.Equal(t, 0, entry.Index)

	entry, ok = class.GlobalTable.Lookup("y")
	require.True(t, ok)
	require.Equal(t, 1, entry.Index)

	entry, ok = class.GlobalTable.Lookup("done")
	require.True(t, ok)
	require.Equal(t, symtable.STATIC, entry.Kind)
	require.Equal(t, 0, entry.Index)
}

func TestParseMethodImplicitlyDefinesThis(t *testing.T) {
	class := parse(t, "class A { method void m() { return; } }")
	require.Len(t, class.Functions, 1)

	fn := class.Functions[0]
	entry, ok := fn.LocalTable.Lookup("this")
	require.True(t, ok)
	require.Equal(t, symtable.ARG, entry.Kind)
	require.Equal(t, "A", entry.Type)
	require.Equal(t, 0, entry.Index)
}

func TestParseParameterListAndVarDec(t *testing.T) {
	class := parse(t, `class M {
		function int add(int a, int b) {
			var int sum;
			let sum = a + b;
			return sum;
		}
	}`)
	fn := class.Functions[0]

	a, _ := fn.LocalTable.Lookup("a")
	require.Equal(t, symtable.ARG, a.Kind)
	require.Equal(t, 0, a.Index)

	b, _ := fn.LocalTable.Lookup("b")
	require.Equal(t, symtable.ARG, b.Kind)
	require.Equal(t, 1, b.Index)

	sum, _ := fn.LocalTable.Lookup("sum")
	require.Equal(t, symtable.VAR, sum.Kind)
	require.Equal(t, 0, sum.Index)

	require.Len(t, fn.Statements, 2)
}

func TestParseLetArrayForm(t *testing.T) {
	class := parse(t, `class A { function void m() { let a[i] = x + 1; return; } }`)
	fn := class.Functions[0]

	let, ok := fn.Statements[0].(*ast.LetStatement)
	require.True(t, ok)
	require.Equal(t, "a", let.Name)
	require.NotNil(t, let.Index)

	_, ok = let.Index.First.(*ast.VarTerm)
	require.True(t, ok)

	require.Len(t, let.Value.Rest, 1)
	require.Equal(t, ast.OpAdd, let.Value.Rest[0].Op)
}

func TestParseIfElseChain(t *testing.T) {
	class := parse(t, `class A {
		function void m() {
			if (x) { let y = 1; } else { let y = 2; }
			return;
		}
	}`)
	fn := class.Functions[0]

	ifStmt, ok := fn.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	require.Len(t, ifStmt.Then, 1)
	require.Len(t, ifStmt.Else, 1)
}

func TestParseWhileLoop(t *testing.T) {
	class := parse(t, `class A {
		function void m() {
			while (x) { let x = x - 1; }
			return;
		}
	}`)
	fn := class.Functions[0]
	whileStmt, ok := fn.Statements[0].(*ast.WhileStatement)
	require.True(t, ok)
	require.Len(t, whileStmt.Body, 1)
}

func TestParsePlainCallTerm(t *testing.T) {
	class := parse(t, `class A { function void m() { do draw(); return; } }`)
	fn := class.Functions[0]
	doStmt, ok := fn.Statements[0].(*ast.DoStatement)
	require.True(t, ok)

	call, ok := doStmt.Call.(*ast.PlainCall)
	require.True(t, ok)
	require.Equal(t, "draw", call.Name)
	require.Empty(t, call.Args)
}

func TestParseTargetedCallTerm(t *testing.T) {
	class := parse(t, `class A { function void m() { do Output.printInt(5); return; } }`)
	fn := class.Functions[0]
	doStmt := fn.Statements[0].(*ast.DoStatement)

	call, ok := doStmt.Call.(*ast.TargetedCall)
	require.True(t, ok)
	require.Equal(t, "Output", call.Target)
	require.Equal(t, "printInt", call.Name)
	require.Len(t, call.Args, 1)
}

func TestParseArrayAccessTermDisambiguatedFromPlainVar(t *testing.T) {
	class := parse(t, `class A { function void m() { let y = a[i]; return; } }`)
	fn := class.Functions[0]
	let := fn.Statements[0].(*ast.LetStatement)

	_, ok := let.Value.First.(*ast.ArrayAccessTerm)
	require.True(t, ok)
}

func TestParseUnaryAndParenTerms(t *testing.T) {
	class := parse(t, `class A { function void m() { let y = -(x + 1); return; } }`)
	fn := class.Functions[0]
	let := fn.Statements[0].(*ast.LetStatement)

	unary, ok := let.Value.First.(*ast.UnaryTerm)
	require.True(t, ok)
	require.Equal(t, ast.UnaryNeg, unary.Op)

	_, ok = unary.Term.(*ast.ParenTerm)
	require.True(t, ok)
}

func TestParseStringAndKeywordConstants(t *testing.T) {
	class := parse(t, `class A { function void m() { let s = "hi"; let b = true; return; } }`)
	fn := class.Functions[0]

	let1 := fn.Statements[0].(*ast.LetStatement)
	str, ok := let1.Value.First.(*ast.StrConstTerm)
	require.True(t, ok)
	require.Equal(t, "hi", str.Value)

	let2 := fn.Statements[1].(*ast.LetStatement)
	kw, ok := let2.Value.First.(*ast.KeywordConstTerm)
	require.True(t, ok)
	require.Equal(t, ast.KeywordTrue, kw.Keyword)
}

func TestParseRejectsTrailingContentAfterClass(t *testing.T) {
	lex, err := lexer.New(strings.NewReader("class A { } class B { }"))
	require.NoError(t, err)
	_, err = New(lex).ParseClass()
	require.Error(t, err)
}

func TestParseReportsLineOnSyntaxError(t *testing.T) {
	lex, err := lexer.New(strings.NewReader("class A {\n  field int x\n}"))
	require.NoError(t, err)
	_, err = New(lex).ParseClass()
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 3")
}
