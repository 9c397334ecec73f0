// Package parser implements the recursive-descent parser: token stream to
// typed AST, with the symbol tables populated as a side effect of parsing
// declarations. Every production starts with the current token already
// loaded and ends with the first token after the production loaded.
package parser

import (
	"github.com/jackc-toolchain/jackc/internal/ast"
	"github.com/jackc-toolchain/jackc/internal/cerrors"
	"github.com/jackc-toolchain/jackc/internal/lexer"
	"github.com/jackc-toolchain/jackc/internal/symtable"
	"github.com/jackc-toolchain/jackc/internal/token"
)

// Parser consumes a *lexer.Lexer and produces one *ast.Class.
type Parser struct {
	lex *lexer.Lexer
}

// New wraps a lexer for parsing.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

// ParseClass parses the single class declaration that makes up one source
// file, populating its global symbol table and every subroutine's local
// table along the way.
func (p *Parser) ParseClass() (*ast.Class, error) {
	p.lex.Advance()
	return p.parseClass()
}

func (p *Parser) cur() token.Token {
	return p.lex.Current()
}

func (p *Parser) advance() token.Token {
	return p.lex.Advance()
}

func (p *Parser) errf(format string, args ...any) error {
	return cerrors.New(cerrors.Parse, p.cur().Line, format, args...)
}

func (p *Parser) expectSymbol(s string) error {
	if !p.cur().IsSymbol(s) {
		return p.errf("expected %q, got %s", s, p.cur())
	}
	p.advance()
	return nil
}

func (p *Parser) parseIdentifier() (string, error) {
	if p.cur().Type != token.Identifier {
		return "", p.errf("expected identifier, got %s", p.cur())
	}
	name := p.cur().Terminal
	p.advance()
	return name, nil
}

func (p *Parser) parseType() (string, error) {
	cur := p.cur()
	if cur.Type == token.Keyword && cur.IsAny("int", "char", "boolean") {
		p.advance()
		return cur.Terminal, nil
	}
	return p.parseIdentifier()
}

func (p *Parser) parseClass() (*ast.Class, error) {
	if !p.cur().IsKeyword(token.Class) {
		return nil, p.errf("expected 'class', got %s", p.cur())
	}
	p.advance()

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	class := &ast.Class{Name: name, GlobalTable: symtable.New()}

	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}

	for p.cur().IsKeyword(token.Static) || p.cur().IsKeyword(token.Field) {
		if err := p.parseClassVarDec(class); err != nil {
			return nil, err
		}
	}

	for p.cur().IsKeyword(token.Constructor) || p.cur().IsKeyword(token.Function) || p.cur().IsKeyword(token.Method) {
		fn, err := p.parseSubroutineDec(class)
		if err != nil {
			return nil, err
		}
		class.Functions = append(class.Functions, fn)
	}

	if err := p.expectSymbol("}"); err != nil {
		return nil, err
	}

	if p.cur().Type != token.Invalid {
		return nil, p.errf("unexpected token %s after end of class %q", p.cur(), name)
	}

	return class, nil
}

func (p *Parser) parseClassVarDec(class *ast.Class) error {
	var kind symtable.Kind
	switch {
	case p.cur().IsKeyword(token.Static):
		kind = symtable.STATIC
	case p.cur().IsKeyword(token.Field):
		kind = symtable.FIELD
	default:
		return p.errf("expected 'static' or 'field', got %s", p.cur())
	}
	p.advance()

	typ, err := p.parseType()
	if err != nil {
		return err
	}

	for {
		name, err := p.parseIdentifier()
		if err != nil {
			return err
		}
		class.GlobalTable.Define(name, typ, kind)

		if p.cur().IsSymbol(",") {
			p.advance()
			continue
		}
		break
	}

	return p.expectSymbol(";")
}

func (p *Parser) parseSubroutineDec(class *ast.Class) (*ast.Function, error) {
	var kind ast.SubroutineKind
	switch {
	case p.cur().IsKeyword(token.Constructor):
		kind = ast.ConstructorKind
	case p.cur().IsKeyword(token.Function):
		kind = ast.FunctionKind
	case p.cur().IsKeyword(token.Method):
		kind = ast.MethodKind
	default:
		return nil, p.errf("expected 'constructor', 'function', or 'method', got %s", p.cur())
	}
	p.advance()

	fn := &ast.Function{Kind: kind, LocalTable: symtable.New()}
	if kind == ast.MethodKind {
		fn.LocalTable.Define("this", class.Name, symtable.ARG)
	}

	if p.cur().IsKeyword(token.Void) {
		fn.ReturnType = "void"
		p.advance()
	} else {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fn.ReturnType = typ
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	fn.Name = name

	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	if !p.cur().IsSymbol(")") {
		if err := p.parseParameterList(fn); err != nil {
			return nil, err
		}
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}

	if err := p.parseSubroutineBody(fn); err != nil {
		return nil, err
	}

	return fn, nil
}

func (p *Parser) parseParameterList(fn *ast.Function) error {
	for {
		typ, err := p.parseType()
		if err != nil {
			return err
		}
		name, err := p.parseIdentifier()
		if err != nil {
			return err
		}
		fn.LocalTable.Define(name, typ, symtable.ARG)

		if p.cur().IsSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	return nil
}

func (p *Parser) parseSubroutineBody(fn *ast.Function) error {
	if err := p.expectSymbol("{"); err != nil {
		return err
	}

	for p.cur().IsKeyword(token.Var) {
		if err := p.parseVarDec(fn); err != nil {
			return err
		}
	}

	stmts, err := p.parseStatements()
	if err != nil {
		return err
	}
	fn.Statements = stmts

	return p.expectSymbol("}")
}

func (p *Parser) parseVarDec(fn *ast.Function) error {
	p.advance() // 'var'

	typ, err := p.parseType()
	if err != nil {
		return err
	}

	for {
		name, err := p.parseIdentifier()
		if err != nil {
			return err
		}
		fn.LocalTable.Define(name, typ, symtable.VAR)

		if p.cur().IsSymbol(",") {
			p.advance()
			continue
		}
		break
	}

	return p.expectSymbol(";")
}

func (p *Parser) parseStatements() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for {
		var (
			stmt ast.Statement
			err  error
		)
		switch {
		case p.cur().IsKeyword(token.Let):
			stmt, err = p.parseLet()
		case p.cur().IsKeyword(token.If):
			stmt, err = p.parseIf()
		case p.cur().IsKeyword(token.While):
			stmt, err = p.parseWhile()
		case p.cur().IsKeyword(token.Do):
			stmt, err = p.parseDo()
		case p.cur().IsKeyword(token.Return):
			stmt, err = p.parseReturn()
		default:
			return stmts, nil
		}
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

func (p *Parser) parseLet() (ast.Statement, error) {
	p.advance() // 'let'

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	stmt := &ast.LetStatement{Name: name}

	if p.cur().IsSymbol("[") {
		p.advance()
		idx, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Index = &idx
		if err := p.expectSymbol("]"); err != nil {
			return nil, err
		}
	}

	if err := p.expectSymbol("="); err != nil {
		return nil, err
	}

	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Value = val

	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	p.advance() // 'if'

	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}

	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	thenStmts, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("}"); err != nil {
		return nil, err
	}

	stmt := &ast.IfStatement{Cond: cond, Then: thenStmts}

	if p.cur().IsKeyword(token.Else) {
		p.advance()
		if err := p.expectSymbol("{"); err != nil {
			return nil, err
		}
		elseStmts, err := p.parseStatements()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("}"); err != nil {
			return nil, err
		}
		stmt.Else = elseStmts
	}

	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	p.advance() // 'while'

	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}

	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	body, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("}"); err != nil {
		return nil, err
	}

	return &ast.WhileStatement{Cond: cond, Body: body}, nil
}

func (p *Parser) parseDo() (ast.Statement, error) {
	p.advance() // 'do'

	call, err := p.parseSubroutineCall()
	if err != nil {
		return nil, err
	}

	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}

	return &ast.DoStatement{Call: call}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	p.advance() // 'return'

	stmt := &ast.ReturnStatement{}
	if !p.cur().IsSymbol(";") {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = &expr
	}

	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}

	return stmt, nil
}

func isBinaryOp(tok token.Token) bool {
	return tok.Type == token.Symbol && tok.IsAny("+", "-", "*", "/", "&", "|", "<", ">", "=")
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	first, err := p.parseTerm()
	if err != nil {
		return ast.Expression{}, err
	}

	expr := ast.Expression{First: first}
	for isBinaryOp(p.cur()) {
		op := ast.Operator(p.cur().Terminal)
		p.advance()
		term, err := p.parseTerm()
		if err != nil {
			return ast.Expression{}, err
		}
		expr.Rest = append(expr.Rest, ast.OpTerm{Op: op, Term: term})
	}

	return expr, nil
}

func (p *Parser) parseExpressionList() ([]ast.Expression, error) {
	var exprs []ast.Expression
	if p.cur().IsSymbol(")") {
		return exprs, nil
	}

	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)

		if p.cur().IsSymbol(",") {
			p.advance()
			continue
		}
		break
	}

	return exprs, nil
}

func (p *Parser) parseTerm() (ast.Term, error) {
	cur := p.cur()

	switch {
	case cur.Type == token.IntegerConstant:
		p.advance()
		return &ast.IntConstTerm{Value: cur.Terminal}, nil

	case cur.Type == token.StringConstant:
		p.advance()
		return &ast.StrConstTerm{Value: cur.Terminal}, nil

	case cur.IsKeyword(token.True):
		p.advance()
		return &ast.KeywordConstTerm{Keyword: ast.KeywordTrue}, nil

	case cur.IsKeyword(token.False):
		p.advance()
		return &ast.KeywordConstTerm{Keyword: ast.KeywordFalse}, nil

	case cur.IsKeyword(token.Null):
		p.advance()
		return &ast.KeywordConstTerm{Keyword: ast.KeywordNull}, nil

	case cur.IsKeyword(token.This):
		p.advance()
		return &ast.KeywordConstTerm{Keyword: ast.KeywordThis}, nil

	case cur.IsSymbol("("):
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return &ast.ParenTerm{Inner: inner}, nil

	case cur.IsSymbol("-") || cur.IsSymbol("~"):
		op := ast.UnaryNeg
		if cur.Terminal == "~" {
			op = ast.UnaryNot
		}
		p.advance()
		inner, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryTerm{Op: op, Term: inner}, nil

	case cur.Type == token.Identifier:
		return p.parseIdentifierTerm()

	default:
		return nil, p.errf("unexpected token %s in expression", cur)
	}
}

// parseIdentifierTerm disambiguates the four identifier forms with a single
// token of lookahead: name, name[e], name(...), name.name(...).
func (p *Parser) parseIdentifierTerm() (ast.Term, error) {
	name := p.cur().Terminal
	next := p.lex.Lookahead()

	switch {
	case next.IsSymbol("["):
		p.advance() // name
		p.advance() // '['
		idx, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("]"); err != nil {
			return nil, err
		}
		return &ast.ArrayAccessTerm{Name: name, Index: idx}, nil

	case next.IsSymbol("(") || next.IsSymbol("."):
		call, err := p.parseSubroutineCall()
		if err != nil {
			return nil, err
		}
		return &ast.SubCallTerm{Call: call}, nil

	default:
		p.advance()
		return &ast.VarTerm{Name: name}, nil
	}
}

// parseSubroutineCall parses `name(args)` or `name.name(args)`. The current
// token must be the leading identifier.
func (p *Parser) parseSubroutineCall() (ast.SubroutineCall, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	if p.cur().IsSymbol(".") {
		p.advance()
		methodName, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("("); err != nil {
			return nil, err
		}
		args, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return &ast.TargetedCall{Target: name, Name: methodName, Args: args}, nil
	}

	if p.cur().IsSymbol("(") {
		p.advance()
		args, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return &ast.PlainCall{Name: name, Args: args}, nil
	}

	return nil, p.errf("expected '(' or '.' after %q in subroutine call", name)
}
