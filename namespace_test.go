package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceTableWellKnownSeed(t *testing.T) {
	ns := NewNamespaceTable(nil)
	prefix, local, ok := ns.PrefixFor("http://xmlns.com/foaf/0.1/Person")
	require.True(t, ok)
	assert.Equal(t, "foaf", prefix)
	assert.Equal(t, "Person", local)
}

func TestNamespaceTablePrefixForRejectsIllegalLocal(t *testing.T) {
	ns := NewNamespaceTable(map[string]string{"ex": "http://ex.org/"})
	_, _, ok := ns.PrefixFor("http://ex.org/a#b")
	assert.False(t, ok, "a local name containing '#' is not a legal PN_LOCAL")
}

func TestNamespaceTableGetOrGeneratePrefix(t *testing.T) {
	ns := NewNamespaceTable(map[string]string{})
	p1 := ns.GetOrGeneratePrefix("http://example.org/FooBar#", "")
	assert.Equal(t, "foo_bar", p1)

	// Calling again for the same namespace must return the same prefix.
	p2 := ns.GetOrGeneratePrefix("http://example.org/FooBar#", "")
	assert.Equal(t, p1, p2)

	assert.Equal(t, []string{"http://example.org/FooBar#"}, ns.GeneratedOrder())
}

func TestNamespaceTableGetOrGeneratePrefixFallsBackWhenCollision(t *testing.T) {
	ns := NewNamespaceTable(map[string]string{"foo": "http://other.org/"})
	p := ns.GetOrGeneratePrefix("http://example.org/foo#", "")
	assert.NotEqual(t, "foo", p, "must not overwrite an existing prefix binding")
}

func TestIsLegalPNPrefix(t *testing.T) {
	assert.True(t, isLegalPNPrefix("foaf"))
	assert.True(t, isLegalPNPrefix("foo.bar"))
	assert.False(t, isLegalPNPrefix(""))
	assert.False(t, isLegalPNPrefix("foo."))
	assert.False(t, isLegalPNPrefix("1foo"))
}
