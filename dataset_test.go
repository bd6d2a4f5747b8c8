package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkQuad(s, p, o string, g GraphName) Quad {
	return Quad{Triple: mkTriple(s, p, o), Graph: g}
}

func TestDatasetDefaultAndNamedGraphs(t *testing.T) {
	gname := NewIRIUnsafe("http://ex/g1")
	d := NewDatasetFromQuads(
		mkQuad("http://ex/s", "http://ex/p", "http://ex/o1", nil),
		mkQuad("http://ex/s", "http://ex/p", "http://ex/o2", gname),
	)

	assert.Equal(t, 1, d.DefaultGraph().Len())

	named := d.NamedGraphs()
	require.Len(t, named, 1)
	assert.True(t, named[0].Name.Eq(gname))
	assert.Equal(t, 1, named[0].Graph.Len())
}

func TestDatasetGraphLookup(t *testing.T) {
	gname := NewIRIUnsafe("http://ex/g1")
	d := NewDatasetFromQuads(mkQuad("http://ex/s", "http://ex/p", "http://ex/o", gname))

	require.NotNil(t, d.Graph(gname))
	assert.Equal(t, 1, d.Graph(gname).Len())
	assert.Nil(t, d.Graph(NewIRIUnsafe("http://ex/missing")))
	assert.NotNil(t, d.Graph(nil), "nil name selects the default graph")
}

func TestDatasetQuadsRoundTrip(t *testing.T) {
	gname := NewIRIUnsafe("http://ex/g1")
	in := []Quad{
		mkQuad("http://ex/s1", "http://ex/p", "http://ex/o1", nil),
		mkQuad("http://ex/s2", "http://ex/p", "http://ex/o2", gname),
	}
	d := NewDatasetFromQuads(in...)
	assert.Len(t, d.Quads(), 2)
}
