// Package vmwriter is the stateless textual emitter for the VM assembly
// target: one directive per line, no leading whitespace, a trailing newline
// after every directive.
package vmwriter

import (
	"fmt"
	"io"

	"github.com/jackc-toolchain/jackc/internal/vm"
)

// Writer holds only the output handle; it carries no compilation state.
type Writer struct {
	out io.Writer
}

// New wraps w for VM directive emission.
func New(w io.Writer) *Writer {
	return &Writer{out: w}
}

func (w *Writer) emit(format string, args ...any) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Push emits `push <segment> <index>`.
func (w *Writer) Push(segment vm.Segment, index int) {
	w.emit("push %s %d", segment, index)
}

// Pop emits `pop <segment> <index>`.
func (w *Writer) Pop(segment vm.Segment, index int) {
	w.emit("pop %s %d", segment, index)
}

// Arithmetic emits one of add|sub|neg|eq|gt|lt|and|or|not.
func (w *Writer) Arithmetic(op vm.Arith) {
	w.emit("%s", op)
}

// Label emits `label L`.
func (w *Writer) Label(l string) {
	w.emit("label %s", l)
}

// Goto emits `goto L`.
func (w *Writer) Goto(l string) {
	w.emit("goto %s", l)
}

// IfGoto emits `if-goto L`.
func (w *Writer) IfGoto(l string) {
	w.emit("if-goto %s", l)
}

// Call emits `call class.fn n`.
func (w *Writer) Call(class, fn string, nArgs int) {
	w.emit("call %s.%s %d", class, fn, nArgs)
}

// Function emits `function class.fn nLocals`.
func (w *Writer) Function(class, fn string, nLocals int) {
	w.emit("function %s.%s %d", class, fn, nLocals)
}

// Return emits `return`.
func (w *Writer) Return() {
	w.emit("return")
}
