// Package cerrors is the compiler's error taxonomy: lex, parse, and
// semantic errors, all fatal, all carrying only a line number — the source
// language has no column tracking (spec Non-goal).
package cerrors

import "fmt"

// Stage names which pipeline stage raised the error.
type Stage string

const (
	Lex      Stage = "lex"
	Parse    Stage = "parse"
	Semantic Stage = "semantic"
)

// CompileError is the error shape the parser and compiler return. The lexer
// reports its errors (through Lexer.Err) as plain errors, so no code path
// produces a Lex-stage CompileError. There is no recovery path: every
// CompileError walks straight up to the CLI, which decides the process
// exit status.
type CompileError struct {
	Stage   Stage
	Line    int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// New builds a CompileError with a formatted message.
func New(stage Stage, line int, format string, args ...any) *CompileError {
	return &CompileError{Stage: stage, Line: line, Message: fmt.Sprintf(format, args...)}
}
