// Package lexer turns a character stream into the token stream the parser
// consumes. It buffers lexed tokens so the parser can look one token past
// the current one without a separate rewind mechanism.
package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jackc-toolchain/jackc/internal/token"
)

// Lexer scans one input file. current and end satisfy current <= end: every
// token at an index <= current has already been produced and is still
// indexable; end is the highest index buffered so far.
type Lexer struct {
	src  []rune
	pos  int
	line int

	tokens   []token.Token
	current  int
	end      int
	eofIndex int // index of the synthetic end-of-input slot, or -1
	lastErr  error
}

// New reads all of r into memory and prepares a Lexer over it. Advance()
// must be called once before Current()/Lookahead() are meaningful.
func New(r io.Reader) (*Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return &Lexer{
		src:      []rune(string(data)),
		line:     1,
		current:  -1,
		end:      -1,
		eofIndex: -1,
	}, nil
}

// LineNumber returns the running line counter, incremented at every newline
// encountered anywhere in the input, including inside comments.
func (l *Lexer) LineNumber() int {
	return l.line
}

// HasMoreTokens reports whether current has not yet reached the
// end-of-input slot. It is false once Current is the end-of-input token,
// and true while Current is a real token, including the last one.
func (l *Lexer) HasMoreTokens() bool {
	return l.eofIndex == -1 || l.current < l.eofIndex
}

// Current returns the token at the current cursor. Undefined before the
// first Advance call.
func (l *Lexer) Current() token.Token {
	if l.current < 0 || l.current >= len(l.tokens) {
		return token.Token{Line: l.line}
	}
	return l.tokens[l.current]
}

// Advance moves current forward by one, producing a new token from input
// only if current has caught up with end; otherwise it reuses the
// already-lexed token sitting at the new current position.
func (l *Lexer) Advance() token.Token {
	l.current++
	if l.current > l.end {
		l.bufferNext()
	}
	return l.Current()
}

// Lookahead ensures a token exists one position past current and returns it
// without advancing current.
func (l *Lexer) Lookahead() token.Token {
	target := l.current + 1
	for target > l.end {
		l.bufferNext()
	}
	if target >= len(l.tokens) {
		return token.Token{Line: l.line}
	}
	return l.tokens[target]
}

func (l *Lexer) bufferNext() {
	if l.eofIndex != -1 {
		l.tokens = append(l.tokens, token.Token{Line: l.line})
		l.end = len(l.tokens) - 1
		return
	}

	tok, err := l.scanOne()
	if err != nil {
		l.tokens = append(l.tokens, token.Token{Line: l.line})
		l.end = len(l.tokens) - 1
		l.eofIndex = l.end
		if err != io.EOF {
			l.lastErr = err
		}
		return
	}
	l.tokens = append(l.tokens, tok)
	l.end = len(l.tokens) - 1
}

// Err returns the lex-stage error that ended tokenization, if the input was
// malformed (unterminated comment or string). A clean EOF reports nil.
func (l *Lexer) Err() error {
	return l.lastErr
}

func (l *Lexer) peekAt(n int) (rune, bool) {
	idx := l.pos + n
	if idx < 0 || idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) peek() (rune, bool) {
	return l.peekAt(0)
}

// scanOne produces the next real token, skipping whitespace and comments
// first. It returns io.EOF once the input is exhausted.
func (l *Lexer) scanOne() (token.Token, error) {
	for {
		ch, ok := l.peek()
		if !ok {
			return token.Token{}, io.EOF
		}
		if ch == '\n' {
			l.line++
			l.pos++
			continue
		}
		if unicode.IsSpace(ch) {
			l.pos++
			continue
		}
		if ch == '/' {
			next, hasNext := l.peekAt(1)
			switch {
			case hasNext && next == '/':
				l.skipLineComment()
				continue
			case hasNext && next == '*':
				if err := l.skipBlockComment(); err != nil {
					return token.Token{}, err
				}
				continue
			default:
				l.pos++
				return token.Token{Type: token.Symbol, Terminal: "/", Line: l.line}, nil
			}
		}
		break
	}

	line := l.line
	ch, _ := l.peek()

	switch {
	case ch == '"':
		return l.scanString()
	case strings.ContainsRune(token.Symbols, ch):
		l.pos++
		return token.Token{Type: token.Symbol, Terminal: string(ch), Line: line}, nil
	case ch == '_' || unicode.IsLetter(ch):
		return l.scanWord(line), nil
	case unicode.IsDigit(ch):
		return l.scanInt(line), nil
	default:
		return token.Token{}, fmt.Errorf("line %d: unexpected character %q", line, ch)
	}
}

// skipLineComment discards up to but not including the terminating newline,
// so the outer loop's own newline handling keeps the line count correct.
func (l *Lexer) skipLineComment() {
	l.pos += 2 // consume "//"
	for {
		ch, ok := l.peek()
		if !ok || ch == '\n' {
			return
		}
		l.pos++
	}
}

// skipBlockComment discards a /* ... */ comment. Nesting is not supported:
// the first "*/" closes it, even inside a /* earlier in the same comment.
func (l *Lexer) skipBlockComment() error {
	startLine := l.line
	l.pos += 2 // consume "/*"
	for {
		ch, ok := l.peek()
		if !ok {
			return fmt.Errorf("line %d: unterminated block comment", startLine)
		}
		if ch == '\n' {
			l.line++
			l.pos++
			continue
		}
		if ch == '*' {
			if next, hasNext := l.peekAt(1); hasNext && next == '/' {
				l.pos += 2
				return nil
			}
		}
		l.pos++
	}
}

func (l *Lexer) scanString() (token.Token, error) {
	startLine := l.line
	l.pos++ // consume opening quote
	start := l.pos
	for {
		ch, ok := l.peek()
		if !ok || ch == '\n' {
			return token.Token{}, fmt.Errorf("line %d: unterminated string constant", startLine)
		}
		if ch == '"' {
			text := string(l.src[start:l.pos])
			l.pos++ // consume closing quote
			return token.Token{Type: token.StringConstant, Terminal: text, Line: startLine}, nil
		}
		l.pos++
	}
}

func (l *Lexer) scanWord(line int) token.Token {
	start := l.pos
	for {
		ch, ok := l.peek()
		if !ok || !(ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)) {
			break
		}
		l.pos++
	}
	word := string(l.src[start:l.pos])
	if _, ok := token.Lookup(word); ok {
		return token.Token{Type: token.Keyword, Terminal: word, Line: line}
	}
	return token.Token{Type: token.Identifier, Terminal: word, Line: line}
}

func (l *Lexer) scanInt(line int) token.Token {
	start := l.pos
	for {
		ch, ok := l.peek()
		if !ok || !unicode.IsDigit(ch) {
			break
		}
		l.pos++
	}
	return token.Token{Type: token.IntegerConstant, Terminal: string(l.src[start:l.pos]), Line: line}
}
