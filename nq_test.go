package rdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNQDecodeDefaultAndNamedGraph(t *testing.T) {
	const input = `<http://ex/s> <http://ex/p> <http://ex/o> .
<http://ex/s> <http://ex/p> <http://ex/o> <http://ex/g> .
<http://ex/s> <http://ex/p> <http://ex/o> _:g .
`
	dec := newNQDecoder(strings.NewReader(input))
	qs, err := dec.DecodeAll()
	require.NoError(t, err)
	require.Len(t, qs, 3)

	assert.Nil(t, qs[0].Graph)
	require.NotNil(t, qs[1].Graph)
	assert.True(t, TermsEqual(qs[1].Graph, NewIRIUnsafe("http://ex/g")))
	require.NotNil(t, qs[2].Graph)
	_, isBlank := qs[2].Graph.(Blank)
	assert.True(t, isBlank)
}
