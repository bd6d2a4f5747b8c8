package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkTriple(s, p, o string) Triple {
	return Triple{
		Subj: NewIRIUnsafe(s),
		Pred: NewIRIUnsafe(p),
		Obj:  NewIRIUnsafe(o),
	}
}

func TestNewGraphDedupes(t *testing.T) {
	t1 := mkTriple("http://ex/s", "http://ex/p", "http://ex/o")
	g := NewGraph(t1, t1, t1)
	assert.Equal(t, 1, g.Len())
}

func TestGraphFind(t *testing.T) {
	alice := mkTriple("http://ex/alice", "http://ex/knows", "http://ex/bob")
	bob := mkTriple("http://ex/bob", "http://ex/knows", "http://ex/alice")
	aliceName := Triple{
		Subj: NewIRIUnsafe("http://ex/alice"),
		Pred: NewIRIUnsafe("http://ex/name"),
		Obj:  NewLiteral("Alice"),
	}
	g := NewGraph(alice, bob, aliceName)

	require.Len(t, g.Find(NewIRIUnsafe("http://ex/alice"), nil, nil), 2)
	require.Len(t, g.Find(nil, NewIRIUnsafe("http://ex/knows"), nil), 2)
	require.Len(t, g.Find(NewIRIUnsafe("http://ex/alice"), NewIRIUnsafe("http://ex/knows"), nil), 1)
	require.Len(t, g.Find(nil, nil, nil), 3)
	assert.Empty(t, g.Find(NewIRIUnsafe("http://ex/nobody"), nil, nil))
}

func TestGraphWithout(t *testing.T) {
	t1 := mkTriple("http://ex/s1", "http://ex/p", "http://ex/o")
	t2 := mkTriple("http://ex/s2", "http://ex/p", "http://ex/o")
	g := NewGraph(t1, t2)

	g2 := g.Without(t1)
	assert.Equal(t, 1, g2.Len())
	assert.Equal(t, 2, g.Len(), "Without must not mutate the receiver")
	assert.Len(t, g2.Find(NewIRIUnsafe("http://ex/s2"), nil, nil), 1)
}

func TestGraphMerge(t *testing.T) {
	t1 := mkTriple("http://ex/s1", "http://ex/p", "http://ex/o")
	t2 := mkTriple("http://ex/s2", "http://ex/p", "http://ex/o")
	g1 := NewGraph(t1)
	g2 := NewGraph(t2, t1)

	merged := g1.Merge(g2)
	assert.Equal(t, 2, merged.Len())
}
