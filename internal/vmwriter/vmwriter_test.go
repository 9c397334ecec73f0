package vmwriter

import (
	"bytes"
	"testing"

	"github.com/jackc-toolchain/jackc/internal/vm"
	"github.com/stretchr/testify/assert"
)

func TestWriterEmitsOneDirectivePerLineNoLeadingWhitespace(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.Push(vm.Constant, 2)
	w.Call("Memory", "alloc", 1)
	w.Pop(vm.Pointer, 0)
	w.Label("IF_FALSE0")
	w.Goto("IF_END0")
	w.IfGoto("WHILE_FALSE0")
	w.Function("P", "new", 0)
	w.Arithmetic(vm.Add)
	w.Return()

	want := "push constant 2\n" +
		"call Memory.alloc 1\n" +
		"pop pointer 0\n" +
		"label IF_FALSE0\n" +
		"goto IF_END0\n" +
		"if-goto WHILE_FALSE0\n" +
		"function P.new 0\n" +
		"add\n" +
		"return\n"

	assert.Equal(t, want, buf.String())
}
