// Package ast defines the typed, variant AST the parser builds and the
// compiler walks. Ownership is a strict tree: a Class owns its Functions, a
// Function owns its Statements, statements own expressions, expressions own
// terms. Nothing here is mutated after construction, except the symbol
// tables embedded in Class and Function, which the parser populates as it
// goes.
package ast

import "github.com/jackc-toolchain/jackc/internal/symtable"

// Class is the root node produced by parsing one source file.
type Class struct {
	Name        string
	GlobalTable *symtable.Table // STATIC and FIELD entries only
	Functions   []*Function
}

// SubroutineKind distinguishes the three subroutine forms.
type SubroutineKind string

const (
	ConstructorKind SubroutineKind = "constructor"
	FunctionKind    SubroutineKind = "function"
	MethodKind      SubroutineKind = "method"
)

// Function is a constructor, function, or method declaration.
type Function struct {
	Kind       SubroutineKind
	Name       string
	ReturnType string
	LocalTable *symtable.Table // ARG and VAR entries only
	Statements []Statement
}

// Statement is implemented by LetStatement, IfStatement, WhileStatement,
// DoStatement, and ReturnStatement — the five statement variants.
type Statement interface {
	statementNode()
}

// LetStatement is `let name = rhs;` or, when Index is non-nil,
// `let name[index] = rhs;`.
type LetStatement struct {
	Name  string
	Index *Expression
	Value Expression
}

func (*LetStatement) statementNode() {}

// IfStatement is `if (cond) { then } [else { else }]`. Else is nil when no
// else-branch was written.
type IfStatement struct {
	Cond Expression
	Then []Statement
	Else []Statement
}

func (*IfStatement) statementNode() {}

// WhileStatement is `while (cond) { body }`.
type WhileStatement struct {
	Cond Expression
	Body []Statement
}

func (*WhileStatement) statementNode() {}

// DoStatement is `do call;`; its return value is always discarded.
type DoStatement struct {
	Call SubroutineCall
}

func (*DoStatement) statementNode() {}

// ReturnStatement is `return [value];`. Value is nil for a bare `return;`.
type ReturnStatement struct {
	Value *Expression
}

func (*ReturnStatement) statementNode() {}

// Operator is one of the nine left-to-right binary operators. There is no
// precedence beyond "first term, then each subsequent (op, term) pair in
// source order".
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
	OpAnd Operator = "&"
	OpOr  Operator = "|"
	OpLt  Operator = "<"
	OpGt  Operator = ">"
	OpEq  Operator = "="
)

// OpTerm is one (operator, term) pair following the first term of an
// Expression.
type OpTerm struct {
	Op   Operator
	Term Term
}

// Expression is `first (op term)*`, evaluated strictly left to right.
type Expression struct {
	First Term
	Rest  []OpTerm
}

// UnaryOperator is one of the two prefix operators.
type UnaryOperator string

const (
	UnaryNeg UnaryOperator = "-"
	UnaryNot UnaryOperator = "~"
)

// KeywordConst is one of the four keyword-constant terms.
type KeywordConst string

const (
	KeywordTrue  KeywordConst = "true"
	KeywordFalse KeywordConst = "false"
	KeywordNull  KeywordConst = "null"
	KeywordThis  KeywordConst = "this"
)

// Term is implemented by the eight term variants: IntConstTerm,
// StrConstTerm, KeywordConstTerm, VarTerm, ArrayAccessTerm, SubCallTerm,
// ParenTerm, and UnaryTerm.
type Term interface {
	termNode()
}

// IntConstTerm holds the decimal text of an integer literal.
type IntConstTerm struct{ Value string }

func (*IntConstTerm) termNode() {}

// StrConstTerm holds the raw (unescaped) contents of a string literal.
type StrConstTerm struct{ Value string }

func (*StrConstTerm) termNode() {}

// KeywordConstTerm is one of true/false/null/this.
type KeywordConstTerm struct{ Keyword KeywordConst }

func (*KeywordConstTerm) termNode() {}

// VarTerm is a bare variable reference.
type VarTerm struct{ Name string }

func (*VarTerm) termNode() {}

// ArrayAccessTerm is `name[index]`.
type ArrayAccessTerm struct {
	Name  string
	Index Expression
}

func (*ArrayAccessTerm) termNode() {}

// SubCallTerm wraps a subroutine call used as a term (i.e. for its return
// value, as opposed to a do-statement's call, whose value is discarded).
type SubCallTerm struct{ Call SubroutineCall }

func (*SubCallTerm) termNode() {}

// ParenTerm is a parenthesized expression used as a term.
type ParenTerm struct{ Inner Expression }

func (*ParenTerm) termNode() {}

// UnaryTerm is `-term` or `~term`.
type UnaryTerm struct {
	Op   UnaryOperator
	Term Term
}

func (*UnaryTerm) termNode() {}

// SubroutineCall is implemented by PlainCall and TargetedCall.
type SubroutineCall interface {
	subroutineCallNode()
}

// PlainCall is `name(args)`: an implicit method call on the current this.
type PlainCall struct {
	Name string
	Args []Expression
}

func (*PlainCall) subroutineCallNode() {}

// TargetedCall is `target.name(args)`. Target is resolved at compile time:
// if it names a variable, this is a method call on that object; otherwise
// it names a class, and this is a function/constructor call.
type TargetedCall struct {
	Target string
	Name   string
	Args   []Expression
}

func (*TargetedCall) subroutineCallNode() {}
