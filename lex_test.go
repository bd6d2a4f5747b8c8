package rdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokenTypes(t *testing.T, input string) []tokenType {
	t.Helper()
	l := newLexer(strings.NewReader(input), 0)
	var types []tokenType
	for {
		tok := l.nextToken()
		if tok.typ == tokenEOF {
			break
		}
		require.NotEqual(t, tokenError, tok.typ, "lexer error: %s", tok.text)
		types = append(types, tok.typ)
	}
	return types
}

func TestLexTriGGraphBlockTokens(t *testing.T) {
	types := collectTokenTypes(t, `<http://ex/g> { <http://ex/s> <http://ex/p> <http://ex/o> . }`)

	var sawOpen, sawClose bool
	for _, ty := range types {
		if ty == tokenGraphOpen {
			sawOpen = true
		}
		if ty == tokenGraphClose {
			sawClose = true
		}
	}
	assert.True(t, sawOpen)
	assert.True(t, sawClose)
}

func TestLexCollectionAndPropertyListTokens(t *testing.T) {
	types := collectTokenTypes(t, `<http://ex/s> <http://ex/p> ( "a" [ <http://ex/q> "b" ] ) .`)

	assertContains := func(want tokenType) {
		for _, ty := range types {
			if ty == want {
				return
			}
		}
		t.Fatalf("token %v not found in %v", want, types)
	}
	assertContains(tokenCollectionStart)
	assertContains(tokenCollectionEnd)
	assertContains(tokenPropertyListStart)
	assertContains(tokenPropertyListEnd)
}
