package rdf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompactorFragmentShorthand(t *testing.T) {
	ns := NewNamespaceTable(map[string]string{})
	c := NewCompactor(ns, "http://ex.org/doc", CompactorOptions{})

	assert.Equal(t, "<#x>", c.Compact(NewIRIUnsafe("http://ex.org/doc#x")))
}

func TestCompactorFragmentAsPrefixedWhenDisabled(t *testing.T) {
	ns := NewNamespaceTable(map[string]string{"d": "http://ex.org/doc#"})
	c := NewCompactor(ns, "http://ex.org/doc", CompactorOptions{RenderFragmentsAsPrefixed: true})

	assert.Equal(t, "d:x", c.Compact(NewIRIUnsafe("http://ex.org/doc#x")))
}

func TestCompactorPrefixedName(t *testing.T) {
	ns := NewNamespaceTable(nil)
	c := NewCompactor(ns, "", CompactorOptions{})

	got := c.Compact(NewIRIUnsafe("http://xmlns.com/foaf/0.1/Person"))
	assert.Equal(t, "foaf:Person", got)
	assert.Equal(t, map[string]string{"foaf": "http://xmlns.com/foaf/0.1/"}, c.UsedPrefixes())
}

func TestCompactorGeneratesMissingPrefix(t *testing.T) {
	ns := NewNamespaceTable(map[string]string{})
	c := NewCompactor(ns, "", CompactorOptions{GenerateMissingPrefixes: true})

	got := c.Compact(NewIRIUnsafe("http://example.org/FooBar#baz"))
	assert.Equal(t, "foo_bar:baz", got)
}

func TestCompactorFallsBackToAbsolute(t *testing.T) {
	ns := NewNamespaceTable(map[string]string{})
	c := NewCompactor(ns, "", CompactorOptions{})

	got := c.Compact(NewIRIUnsafe("http://example.org/unmapped"))
	assert.Equal(t, "<http://example.org/unmapped>", got)
}

func TestCompactorRejectsNumericLocalByDefault(t *testing.T) {
	ns := NewNamespaceTable(map[string]string{"ex": "http://ex.org/"})
	c := NewCompactor(ns, "", CompactorOptions{})

	got := c.Compact(NewIRIUnsafe("http://ex.org/123"))
	assert.Equal(t, "<http://ex.org/123>", got, "numeric local names are rejected unless UseNumericLocalNames is set")
}

func TestCompactorAllowsNumericLocalWhenEnabled(t *testing.T) {
	ns := NewNamespaceTable(map[string]string{"ex": "http://ex.org/"})
	c := NewCompactor(ns, "", CompactorOptions{UseNumericLocalNames: true})

	got := c.Compact(NewIRIUnsafe("http://ex.org/123"))
	assert.Equal(t, "ex:123", got)
}

// recordingLogger captures Warning calls for assertions, leaving every
// other method a no-op.
type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Severe(format string, args ...interface{})  {}
func (l *recordingLogger) Info(format string, args ...interface{})    {}
func (l *recordingLogger) Fine(format string, args ...interface{})    {}
func (l *recordingLogger) Warning(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func TestCompactorWarnsOnHTTPSSchemeMismatch(t *testing.T) {
	ns := NewNamespaceTable(map[string]string{"foaf": "http://xmlns.com/foaf/0.1/"})
	c := NewCompactor(ns, "", CompactorOptions{})
	rec := &recordingLogger{}
	c.logger = rec

	got := c.Compact(NewIRIUnsafe("https://xmlns.com/foaf/0.1/Person"))
	assert.Equal(t, "foaf:Person", got, "scheme-mismatched IRI still compacts against the registered namespace")
	assert.Len(t, rec.warnings, 1)
}

func TestCompactorNoWarningOnExactSchemeMatch(t *testing.T) {
	ns := NewNamespaceTable(map[string]string{"foaf": "http://xmlns.com/foaf/0.1/"})
	c := NewCompactor(ns, "", CompactorOptions{})
	rec := &recordingLogger{}
	c.logger = rec

	got := c.Compact(NewIRIUnsafe("http://xmlns.com/foaf/0.1/Person"))
	assert.Equal(t, "foaf:Person", got)
	assert.Empty(t, rec.warnings)
}
