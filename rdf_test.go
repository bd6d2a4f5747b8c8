package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermEquality(t *testing.T) {
	a := NewIRIUnsafe("http://example.org/a")
	b := NewIRIUnsafe("http://example.org/a")
	c := NewIRIUnsafe("http://example.org/b")

	assert.True(t, TermsEqual(a, b))
	assert.False(t, TermsEqual(a, c))
	assert.False(t, TermsEqual(a, NewBlankUnsafe("a")))
}

func TestBlankEqualityIsByLabel(t *testing.T) {
	assert.True(t, TermsEqual(NewBlankUnsafe("b1"), NewBlankUnsafe("b1")))
	assert.False(t, TermsEqual(NewBlankUnsafe("b1"), NewBlankUnsafe("b2")))
}

func TestLiteralEquality(t *testing.T) {
	plain := NewLiteral("hello")
	lang := NewLangLiteral("hello", "EN")
	typed := NewTypedLiteral("hello", XSDString)

	assert.True(t, TermsEqual(plain, typed))
	assert.False(t, TermsEqual(plain, lang))
	assert.Equal(t, "en", lang.Lang(), "language tags are lower-cased")
}

func TestLiteralString(t *testing.T) {
	tests := []struct {
		name string
		lit  Literal
		want string
	}{
		{"plain", NewLiteral("hi"), `"hi"`},
		{"lang", NewLangLiteral("hi", "en"), `"hi"@en`},
		{"typed", NewTypedLiteral("42", XSDInteger), `"42"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{"escaped", NewLiteral("a\tb\"c"), `"a\tb\"c"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.lit.String())
		})
	}
}

func TestTripleEq(t *testing.T) {
	s := NewIRIUnsafe("http://example.org/s")
	p := NewIRIUnsafe("http://example.org/p")
	o1 := NewLiteral("v1")
	o2 := NewLiteral("v2")

	t1 := Triple{Subj: s, Pred: p, Obj: o1}
	t2 := Triple{Subj: s, Pred: p, Obj: o1}
	t3 := Triple{Subj: s, Pred: p, Obj: o2}

	assert.True(t, t1.Eq(t2))
	assert.False(t, t1.Eq(t3))
}

func TestQuadDefaultGraphIsNil(t *testing.T) {
	q := Quad{Triple: Triple{
		Subj: NewIRIUnsafe("http://example.org/s"),
		Pred: NewIRIUnsafe("http://example.org/p"),
		Obj:  NewLiteral("v"),
	}}
	assert.Nil(t, q.Graph)
}
