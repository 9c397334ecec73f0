package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupRecognizesReservedWords(t *testing.T) {
	kw, ok := Lookup("class")
	assert.True(t, ok)
	assert.Equal(t, Class, kw)

	_, ok = Lookup("notAKeyword")
	assert.False(t, ok)
}

func TestIsKeywordRequiresMatchingType(t *testing.T) {
	tok := Token{Type: Identifier, Terminal: "class"}
	assert.False(t, tok.IsKeyword(Class), "an identifier spelled like a keyword is not the keyword")

	tok = Token{Type: Keyword, Terminal: "class"}
	assert.True(t, tok.IsKeyword(Class))
}

func TestIsSymbolRequiresMatchingType(t *testing.T) {
	tok := Token{Type: Symbol, Terminal: "+"}
	assert.True(t, tok.IsSymbol("+"))
	assert.False(t, tok.IsSymbol("-"))
}

func TestInvalidTokenStringsAsEndOfInput(t *testing.T) {
	var tok Token
	assert.Equal(t, "<end of input>", tok.String())
}
