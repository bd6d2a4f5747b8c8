package rdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeNTriples(t *testing.T) {
	g := NewGraph(mkTriple("http://ex/s", "http://ex/p", "http://ex/o"))
	var b strings.Builder
	require.NoError(t, NewEncoder(FormatNTriples).EncodeGraph(&b, g))
	assert.Equal(t, "<http://ex/s> <http://ex/p> <http://ex/o> .\n", b.String())
}

func TestEncodeTurtleWithPrefixes(t *testing.T) {
	g := NewGraph(
		Triple{Subj: NewIRIUnsafe("http://xmlns.com/foaf/0.1/Alice"), Pred: rdfType, Obj: NewIRIUnsafe("http://xmlns.com/foaf/0.1/Person")},
		Triple{Subj: NewIRIUnsafe("http://xmlns.com/foaf/0.1/Alice"), Pred: NewIRIUnsafe("http://xmlns.com/foaf/0.1/name"), Obj: NewLiteral("Alice")},
	)
	var b strings.Builder
	require.NoError(t, NewEncoder(FormatTurtle).EncodeGraph(&b, g))
	out := b.String()

	assert.Contains(t, out, "@prefix foaf: <http://xmlns.com/foaf/0.1/> .")
	assert.Contains(t, out, "a foaf:Person")
	assert.Contains(t, out, `foaf:name "Alice"`)
}

func TestEncodeTurtleFragmentShorthand(t *testing.T) {
	g := NewGraph(Triple{
		Subj: NewIRIUnsafe("http://ex.org/doc#x"),
		Pred: NewIRIUnsafe("http://ex.org/doc#rel"),
		Obj:  NewIRIUnsafe("http://ex.org/doc#y"),
	})
	var b strings.Builder
	enc := NewEncoder(FormatTurtle,
		WithEncoderBase("http://ex.org/doc"),
		WithRelativization(RelativizationOptionsFor(RelativizeNone)),
	)
	require.NoError(t, enc.EncodeGraph(&b, g))
	out := b.String()

	assert.Contains(t, out, "<#x>")
	assert.Contains(t, out, "<#rel>")
	assert.Contains(t, out, "<#y>")
	assert.NotContains(t, out, "@prefix")
}

func TestEncodeTurtleRejectsDatasetWithNamedGraphs(t *testing.T) {
	d := NewDatasetFromQuads(mkQuad("http://ex/s", "http://ex/p", "http://ex/o", NewIRIUnsafe("http://ex/g")))
	var b strings.Builder
	err := NewEncoder(FormatTurtle).EncodeDataset(&b, d)
	require.Error(t, err)
	var target *ValidationError
	assert.ErrorAs(t, err, &target)
}

func TestEncodeTriGWithNamedGraph(t *testing.T) {
	d := NewDatasetFromQuads(
		mkQuad("http://ex/s1", "http://ex/p", "http://ex/o1", nil),
		mkQuad("http://ex/s2", "http://ex/p", "http://ex/o2", NewIRIUnsafe("http://ex/g")),
	)
	var b strings.Builder
	require.NoError(t, NewEncoder(FormatTriG, WithCustomPrefixes(map[string]string{"ex": "http://ex/"})).EncodeDataset(&b, d))
	out := b.String()

	assert.Contains(t, out, "ex:g {")
	assert.Contains(t, out, "ex:s1")
	assert.Contains(t, out, "ex:s2")
}

func TestEncodeNQuads(t *testing.T) {
	d := NewDatasetFromQuads(
		mkQuad("http://ex/s", "http://ex/p", "http://ex/o", nil),
		mkQuad("http://ex/s2", "http://ex/p", "http://ex/o2", NewIRIUnsafe("http://ex/g")),
	)
	var b strings.Builder
	require.NoError(t, NewEncoder(FormatNQuads).EncodeDataset(&b, d))
	out := b.String()

	assert.Contains(t, out, "<http://ex/s> <http://ex/p> <http://ex/o> .\n")
	assert.Contains(t, out, "<http://ex/s2> <http://ex/p> <http://ex/o2> <http://ex/g> .\n")
}

func TestEncodeTurtlePreservesPredicateInsertionOrder(t *testing.T) {
	g := NewGraph(
		Triple{Subj: NewIRIUnsafe("http://ex/s"), Pred: NewIRIUnsafe("http://ex/zpred"), Obj: NewLiteral("a")},
		Triple{Subj: NewIRIUnsafe("http://ex/s"), Pred: NewIRIUnsafe("http://ex/apred"), Obj: NewLiteral("b")},
	)
	var b strings.Builder
	require.NoError(t, NewEncoder(FormatTurtle, WithCustomPrefixes(map[string]string{"ex": "http://ex/"})).EncodeGraph(&b, g))
	out := b.String()

	// zpred was added first and must be emitted first, even though it
	// sorts after apred lexicographically.
	assert.Less(t, strings.Index(out, "zpred"), strings.Index(out, "apred"))
}

func TestEncodeTurtlePreservesObjectInsertionOrder(t *testing.T) {
	g := NewGraph(
		Triple{Subj: NewIRIUnsafe("http://ex/s"), Pred: NewIRIUnsafe("http://ex/p"), Obj: NewLiteral("zzz")},
		Triple{Subj: NewIRIUnsafe("http://ex/s"), Pred: NewIRIUnsafe("http://ex/p"), Obj: NewLiteral("aaa")},
	)
	var b strings.Builder
	require.NoError(t, NewEncoder(FormatTurtle, WithCustomPrefixes(map[string]string{"ex": "http://ex/"})).EncodeGraph(&b, g))
	out := b.String()

	assert.Less(t, strings.Index(out, `"zzz"`), strings.Index(out, `"aaa"`))
}

func TestEncodeTurtleRdfTypeAlwaysFirst(t *testing.T) {
	g := NewGraph(
		Triple{Subj: NewIRIUnsafe("http://ex/s"), Pred: NewIRIUnsafe("http://ex/apred"), Obj: NewLiteral("a")},
		Triple{Subj: NewIRIUnsafe("http://ex/s"), Pred: rdfType, Obj: NewIRIUnsafe("http://ex/Thing")},
	)
	var b strings.Builder
	require.NoError(t, NewEncoder(FormatTurtle, WithCustomPrefixes(map[string]string{"ex": "http://ex/"})).EncodeGraph(&b, g))
	out := b.String()

	assert.Less(t, strings.Index(out, "\ta "), strings.Index(out, "apred"))
}

func TestEncodeTurtleCollection(t *testing.T) {
	ts := decodeTurtle(t, `
@prefix ex: <http://example.org/> .
ex:s ex:p ( "a" "b" ) .
`)
	g := NewGraph(ts...)
	var b strings.Builder
	require.NoError(t, NewEncoder(FormatTurtle, WithCustomPrefixes(map[string]string{"ex": "http://example.org/"})).EncodeGraph(&b, g))
	out := b.String()

	assert.Contains(t, out, `ex:p ("a" "b")`)
}
