package rdf

import (
	"sort"
	"strings"

	"github.com/stoewer/go-strcase"
)

// WellKnownPrefixes is the bundled table of commonly used RDF vocabulary
// prefixes. It is read-only; copy it into a NamespaceTable rather than
// mutating it.
var WellKnownPrefixes = map[string]string{
	"rdf":     "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"rdfs":    "http://www.w3.org/2000/01/rdf-schema#",
	"xsd":     "http://www.w3.org/2001/XMLSchema#",
	"owl":     "http://www.w3.org/2002/07/owl#",
	"foaf":    "http://xmlns.com/foaf/0.1/",
	"dc":      "http://purl.org/dc/elements/1.1/",
	"dcterms": "http://purl.org/dc/terms/",
	"schema":  "http://schema.org/",
	"skos":    "http://www.w3.org/2004/02/skos/core#",
	"vcard":   "http://www.w3.org/2006/vcard/ns#",
}

// NamespaceTable is a bi-directional prefix <-> IRI mapping, with support
// for inventing a fresh prefix for a namespace it hasn't seen yet.
//
// The zero value is not ready to use; call NewNamespaceTable.
type NamespaceTable struct {
	prefixToNS map[string]string
	nsToPrefix map[string]string
	genCount   int
	genOrder   []string // namespaces assigned a generated prefix, in assignment order
}

// NewNamespaceTable returns a NamespaceTable seeded with the bundled
// well-known prefixes. Pass nil to seed with WellKnownPrefixes, or a custom
// map (e.g. a trimmed-down or extended copy of it) to override the seed.
func NewNamespaceTable(seed map[string]string) *NamespaceTable {
	if seed == nil {
		seed = WellKnownPrefixes
	}
	t := &NamespaceTable{
		prefixToNS: make(map[string]string, len(seed)),
		nsToPrefix: make(map[string]string, len(seed)),
	}
	for p, ns := range seed {
		t.Add(p, ns)
	}
	return t
}

// Add registers a prefix -> namespace mapping, overwriting any previous
// namespace bound to that prefix (but not removing a different prefix
// that pointed at the same namespace).
func (t *NamespaceTable) Add(prefix, namespace string) {
	t.prefixToNS[prefix] = namespace
	if _, exists := t.nsToPrefix[namespace]; !exists {
		t.nsToPrefix[namespace] = prefix
	}
}

// NamespaceFor returns the IRI bound to prefix, and whether it was found.
func (t *NamespaceTable) NamespaceFor(prefix string) (string, bool) {
	ns, ok := t.prefixToNS[prefix]
	return ns, ok
}

// PrefixFor returns the longest known namespace that is a proper prefix of
// iri such that the remainder is a legal PN_LOCAL, and the prefix bound to
// it. Ties are broken by longest namespace, then lexicographically by
// namespace. It returns ok=false if no registered namespace qualifies.
func (t *NamespaceTable) PrefixFor(iri string) (prefix, local string, ok bool) {
	var bestNS string
	for ns := range t.nsToPrefix {
		if !strings.HasPrefix(iri, ns) {
			continue
		}
		rest := iri[len(ns):]
		if rest == "" || !isLegalPNLocal(rest) {
			continue
		}
		if len(ns) > len(bestNS) || (len(ns) == len(bestNS) && ns < bestNS) {
			bestNS = ns
		}
	}
	if bestNS == "" {
		return "", "", false
	}
	return t.nsToPrefix[bestNS], iri[len(bestNS):], true
}

// GetOrGeneratePrefix returns the prefix bound to namespace, inventing and
// registering one if none exists yet. If preferred is non-empty and free,
// it is used as the generated prefix; otherwise a friendly name is derived
// from the namespace's trailing path/fragment segment, falling back to
// "nsN" if that derivation fails or collides.
func (t *NamespaceTable) GetOrGeneratePrefix(namespace, preferred string) string {
	if p, ok := t.nsToPrefix[namespace]; ok {
		return p
	}
	candidates := make([]string, 0, 2)
	if preferred != "" {
		candidates = append(candidates, preferred)
	}
	if friendly := friendlyPrefixCandidate(namespace); friendly != "" {
		candidates = append(candidates, friendly)
	}
	for _, c := range candidates {
		if _, taken := t.prefixToNS[c]; !taken && isLegalPNPrefix(c) {
			t.Add(c, namespace)
			t.genOrder = append(t.genOrder, namespace)
			return c
		}
	}
	for {
		p := generatedPrefixName(t.genCount)
		t.genCount++
		if _, taken := t.prefixToNS[p]; !taken {
			t.Add(p, namespace)
			t.genOrder = append(t.genOrder, namespace)
			return p
		}
	}
}

// GeneratedOrder returns, in assignment order, the namespaces that were
// given an auto-generated prefix by GetOrGeneratePrefix. Used by the
// encoder to emit generated @prefix headers after custom ones.
func (t *NamespaceTable) GeneratedOrder() []string {
	return append([]string(nil), t.genOrder...)
}

// AsMap returns a snapshot copy of the current prefix -> namespace mapping.
func (t *NamespaceTable) AsMap() map[string]string {
	m := make(map[string]string, len(t.prefixToNS))
	for k, v := range t.prefixToNS {
		m[k] = v
	}
	return m
}

// SortedPrefixes returns the table's prefixes, sorted, for deterministic
// iteration in callers that don't care about insertion/generation order.
func (t *NamespaceTable) SortedPrefixes() []string {
	ps := make([]string, 0, len(t.prefixToNS))
	for p := range t.prefixToNS {
		ps = append(ps, p)
	}
	sort.Strings(ps)
	return ps
}

func generatedPrefixName(n int) string {
	return "ns" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// friendlyPrefixCandidate derives a short, lower snake_case candidate
// prefix from the last path or fragment segment of a namespace IRI, e.g.
// "http://example.org/FooBarClass#" -> "foo_bar_class". It returns "" when
// no usable segment can be extracted.
func friendlyPrefixCandidate(namespace string) string {
	trimmed := strings.TrimRight(namespace, "#/")
	var seg string
	if i := strings.LastIndexAny(trimmed, "#/"); i >= 0 {
		seg = trimmed[i+1:]
	} else {
		seg = trimmed
	}
	if seg == "" {
		return ""
	}
	snake := strcase.SnakeCase(seg)
	snake = strings.Trim(snake, "_")
	if snake == "" || !isLegalPNPrefix(snake) {
		return ""
	}
	return snake
}

// isLegalPNPrefix reports whether s is a legal Turtle PN_PREFIX: starts
// with a PN_CHARS_BASE rune, interior runs of PN_CHARS or '.', never
// ending in '.'.
func isLegalPNPrefix(s string) bool {
	if s == "" {
		return false
	}
	runes := []rune(s)
	if !isPnCharsBase(runes[0]) {
		return false
	}
	if runes[len(runes)-1] == '.' {
		return false
	}
	for _, r := range runes[1:] {
		if !(isPnChars(r) || r == '.') {
			return false
		}
	}
	return true
}

// isLegalPNLocal is a conservative check that rest is a legal PN_LOCAL: it
// disallows a literal '/' or '#' or whitespace, which can never appear
// unescaped in a PN_LOCAL remainder produced by splitting a real IRI.
func isLegalPNLocal(rest string) bool {
	for _, r := range rest {
		switch r {
		case '/', '#', ' ', '\t', '\n', '<', '>', '"', '{', '}', '|', '^', '`', '\\':
			return false
		}
	}
	if strings.HasSuffix(rest, ".") {
		return false
	}
	return true
}
