// Package compiler walks a parsed *ast.Class and emits VM assembly through
// an internal/vmwriter.Writer. It performs no validation beyond what the
// grammar already guarantees; an undeclared variable is reported as a
// semantic cerrors.CompileError rather than a panic. A call target that
// resolves to no variable is taken to be a class name.
package compiler

import (
	"strconv"

	"github.com/jackc-toolchain/jackc/internal/ast"
	"github.com/jackc-toolchain/jackc/internal/cerrors"
	"github.com/jackc-toolchain/jackc/internal/symtable"
	"github.com/jackc-toolchain/jackc/internal/vm"
	"github.com/jackc-toolchain/jackc/internal/vmwriter"
)

// Compiler lowers one class at a time. labelCounter is reset once per
// CompileClass call and shared by every function in that class, so labels
// stay unique across the whole class the way the VM target requires.
type Compiler struct {
	w   *vmwriter.Writer
	cls *ast.Class
	fn  *ast.Function

	labelCounter int
}

// New wraps a vmwriter.Writer for one compilation.
func New(w *vmwriter.Writer) *Compiler {
	return &Compiler{w: w}
}

// CompileClass lowers every function of class in declaration order.
func (c *Compiler) CompileClass(class *ast.Class) error {
	c.cls = class
	c.labelCounter = 0

	for _, fn := range class.Functions {
		if err := c.compileFunction(fn); err != nil {
			return err
		}
	}
	return nil
}

// nextSalt returns the next integer salt shared by a pair of labels
// belonging to the same if/while construct, and advances the counter so
// the next construct in this class gets a fresh one.
func (c *Compiler) nextSalt() int {
	n := c.labelCounter
	c.labelCounter++
	return n
}

func (c *Compiler) compileFunction(fn *ast.Function) error {
	c.fn = fn

	nLocals := fn.LocalTable.VarCount(symtable.VAR)
	c.w.Function(c.cls.Name, fn.Name, nLocals)

	switch fn.Kind {
	case ast.ConstructorKind:
		nFields := c.cls.GlobalTable.VarCount(symtable.FIELD)
		c.w.Push(vm.Constant, nFields)
		c.w.Call("Memory", "alloc", 1)
		c.w.Pop(vm.Pointer, 0)
	case ast.MethodKind:
		c.w.Push(vm.Argument, 0)
		c.w.Pop(vm.Pointer, 0)
	case ast.FunctionKind:
		// no prologue
	}

	for _, stmt := range fn.Statements {
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (c *Compiler) compileStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		return c.compileLet(s)
	case *ast.IfStatement:
		return c.compileIf(s)
	case *ast.WhileStatement:
		return c.compileWhile(s)
	case *ast.DoStatement:
		return c.compileDo(s)
	case *ast.ReturnStatement:
		return c.compileReturn(s)
	default:
		return cerrors.New(cerrors.Semantic, 0, "unknown statement type %T", stmt)
	}
}

func (c *Compiler) compileLet(s *ast.LetStatement) error {
	if s.Index == nil {
		if err := c.compileExpression(s.Value); err != nil {
			return err
		}
		seg, idx, err := c.resolveVariable(s.Name)
		if err != nil {
			return err
		}
		c.w.Pop(seg, idx)
		return nil
	}

	// Array form: the RHS is pushed before the target address, so the
	// address ends up on top of the stack. Popping pointer 1 then consumes
	// the address and popping that 0 consumes the RHS underneath it — no
	// temp segment needed.
	if err := c.compileExpression(s.Value); err != nil {
		return err
	}

	if err := c.compileExpression(*s.Index); err != nil {
		return err
	}
	seg, idx, err := c.resolveVariable(s.Name)
	if err != nil {
		return err
	}
	c.w.Push(seg, idx)
	c.w.Arithmetic(vm.Add)

	c.w.Pop(vm.Pointer, 1)
	c.w.Pop(vm.That, 0)

	return nil
}

func (c *Compiler) compileIf(s *ast.IfStatement) error {
	n := c.nextSalt()
	elseLabel := "IF_FALSE" + strconv.Itoa(n)
	endLabel := "IF_END" + strconv.Itoa(n)

	if err := c.compileExpression(s.Cond); err != nil {
		return err
	}
	c.w.Arithmetic(vm.Not)
	c.w.IfGoto(elseLabel)

	for _, stmt := range s.Then {
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}
	c.w.Goto(endLabel)

	c.w.Label(elseLabel)
	for _, stmt := range s.Else {
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}

	c.w.Label(endLabel)
	return nil
}

func (c *Compiler) compileWhile(s *ast.WhileStatement) error {
	n := c.nextSalt()
	startLabel := "WHILE_START" + strconv.Itoa(n)
	falseLabel := "WHILE_FALSE" + strconv.Itoa(n)

	c.w.Label(startLabel)
	if err := c.compileExpression(s.Cond); err != nil {
		return err
	}
	c.w.Arithmetic(vm.Not)
	c.w.IfGoto(falseLabel)

	for _, stmt := range s.Body {
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}
	c.w.Goto(startLabel)

	c.w.Label(falseLabel)
	return nil
}

func (c *Compiler) compileDo(s *ast.DoStatement) error {
	if err := c.compileCall(s.Call); err != nil {
		return err
	}
	c.w.Pop(vm.Temp, 0)
	return nil
}

func (c *Compiler) compileReturn(s *ast.ReturnStatement) error {
	if s.Value != nil {
		if err := c.compileExpression(*s.Value); err != nil {
			return err
		}
	} else {
		c.w.Push(vm.Constant, 0)
	}
	c.w.Return()
	return nil
}

func (c *Compiler) compileExpression(e ast.Expression) error {
	if err := c.compileTerm(e.First); err != nil {
		return err
	}
	for _, opTerm := range e.Rest {
		if err := c.compileTerm(opTerm.Term); err != nil {
			return err
		}
		c.emitOp(opTerm.Op)
	}
	return nil
}

func (c *Compiler) emitOp(op ast.Operator) {
	switch op {
	case ast.OpAdd:
		c.w.Arithmetic(vm.Add)
	case ast.OpSub:
		c.w.Arithmetic(vm.Sub)
	case ast.OpMul:
		c.w.Call("Math", "multiply", 2)
	case ast.OpDiv:
		c.w.Call("Math", "divide", 2)
	case ast.OpAnd:
		c.w.Arithmetic(vm.And)
	case ast.OpOr:
		c.w.Arithmetic(vm.Or)
	case ast.OpLt:
		c.w.Arithmetic(vm.Lt)
	case ast.OpGt:
		c.w.Arithmetic(vm.Gt)
	case ast.OpEq:
		c.w.Arithmetic(vm.Eq)
	}
}

func (c *Compiler) compileTerm(t ast.Term) error {
	switch term := t.(type) {
	case *ast.IntConstTerm:
		n, err := strconv.Atoi(term.Value)
		if err != nil {
			return cerrors.New(cerrors.Semantic, 0, "malformed integer constant %q", term.Value)
		}
		c.w.Push(vm.Constant, n)
		return nil

	case *ast.StrConstTerm:
		c.compileStringConstant(term.Value)
		return nil

	case *ast.KeywordConstTerm:
		return c.compileKeywordConst(term.Keyword)

	case *ast.VarTerm:
		seg, idx, err := c.resolveVariable(term.Name)
		if err != nil {
			return err
		}
		c.w.Push(seg, idx)
		return nil

	case *ast.ArrayAccessTerm:
		seg, idx, err := c.resolveVariable(term.Name)
		if err != nil {
			return err
		}
		c.w.Push(seg, idx)
		if err := c.compileExpression(term.Index); err != nil {
			return err
		}
		c.w.Arithmetic(vm.Add)
		c.w.Pop(vm.Pointer, 1)
		c.w.Push(vm.That, 0)
		return nil

	case *ast.SubCallTerm:
		return c.compileCall(term.Call)

	case *ast.ParenTerm:
		return c.compileExpression(term.Inner)

	case *ast.UnaryTerm:
		if err := c.compileTerm(term.Term); err != nil {
			return err
		}
		if term.Op == ast.UnaryNeg {
			c.w.Arithmetic(vm.Neg)
		} else {
			c.w.Arithmetic(vm.Not)
		}
		return nil

	default:
		return cerrors.New(cerrors.Semantic, 0, "unknown term type %T", t)
	}
}

func (c *Compiler) compileKeywordConst(k ast.KeywordConst) error {
	switch k {
	case ast.KeywordTrue:
		c.w.Push(vm.Constant, 1)
		c.w.Arithmetic(vm.Neg)
	case ast.KeywordFalse, ast.KeywordNull:
		c.w.Push(vm.Constant, 0)
	case ast.KeywordThis:
		c.w.Push(vm.Pointer, 0)
	default:
		return cerrors.New(cerrors.Semantic, 0, "unknown keyword constant %q", k)
	}
	return nil
}

// compileStringConstant allocates a String object and appends each
// character in turn. String.appendChar returns its receiver, so the
// object's reference stays correctly positioned on the stack for the next
// append with no extra temp-segment shuffling.
func (c *Compiler) compileStringConstant(s string) {
	runes := []rune(s)
	c.w.Push(vm.Constant, len(runes))
	c.w.Call("String", "new", 1)
	for _, r := range runes {
		c.w.Push(vm.Constant, int(r))
		c.w.Call("String", "appendChar", 2)
	}
}

// compileCall lowers the three subroutine-call forms. A plain call always
// pushes the current object (pointer 0) as the implicit first argument. A
// targeted call resolves its target name against the symbol table first: if
// it names a known variable, this is a method call on that object and its
// value is pushed as the implicit first argument; otherwise the target
// names a class, and this is a plain function/constructor call.
func (c *Compiler) compileCall(call ast.SubroutineCall) error {
	switch call := call.(type) {
	case *ast.PlainCall:
		c.w.Push(vm.Pointer, 0)
		for _, arg := range call.Args {
			if err := c.compileExpression(arg); err != nil {
				return err
			}
		}
		c.w.Call(c.cls.Name, call.Name, len(call.Args)+1)
		return nil

	case *ast.TargetedCall:
		if entry, ok := symtable.Resolve(c.fn.LocalTable, c.cls.GlobalTable, call.Target); ok {
			seg, _ := symtable.SegmentFor(entry.Kind)
			idx := entry.Index
			c.w.Push(seg, idx)
			for _, arg := range call.Args {
				if err := c.compileExpression(arg); err != nil {
					return err
				}
			}
			c.w.Call(entry.Type, call.Name, len(call.Args)+1)
			return nil
		}

		for _, arg := range call.Args {
			if err := c.compileExpression(arg); err != nil {
				return err
			}
		}
		c.w.Call(call.Target, call.Name, len(call.Args))
		return nil

	default:
		return cerrors.New(cerrors.Semantic, 0, "unknown subroutine call type %T", call)
	}
}

func (c *Compiler) resolveVariable(name string) (vm.Segment, int, error) {
	entry, ok := symtable.Resolve(c.fn.LocalTable, c.cls.GlobalTable, name)
	if !ok {
		return "", 0, cerrors.New(cerrors.Semantic, 0, "undeclared identifier %q", name)
	}
	seg, ok := symtable.SegmentFor(entry.Kind)
	if !ok {
		return "", 0, cerrors.New(cerrors.Semantic, 0, "identifier %q has no storage segment", name)
	}
	return seg, entry.Index, nil
}
