package rdf

import "strings"

// CompactorOptions configures how a Compactor renders an IRI.
type CompactorOptions struct {
	// Relativization bounds how an absolute IRI may be shortened against
	// the document base (beyond plain fragment shorthand).
	Relativization RelativizationOptions
	// GenerateMissingPrefixes interns a fresh prefix, via the namespace
	// table, for any namespace ending in '/' or '#' that has no prefix
	// yet and whose remainder is a legal PN_LOCAL.
	GenerateMissingPrefixes bool
	// UseNumericLocalNames allows a prefixed name whose local part
	// starts with a digit. When false, such an IRI falls through to
	// relative or absolute form instead.
	UseNumericLocalNames bool
	// RenderFragmentsAsPrefixed disables the "#frag" shorthand for an
	// IRI sharing the base document, preferring a prefixed name (or
	// relative/absolute form) instead.
	RenderFragmentsAsPrefixed bool
}

// Compactor chooses the shortest legal Turtle/TriG surface form for an
// IRI: fragment shorthand, relative reference, prefixed name, or absolute
// IRI in angle brackets, in that preference order.
type Compactor struct {
	ns     *NamespaceTable
	base   string
	opts   CompactorOptions
	used   map[string]string // prefix -> namespace, the prefixes actually emitted
	logger Logger
}

// NewCompactor returns a Compactor rendering IRIs against base using ns
// for prefix lookup/generation.
func NewCompactor(ns *NamespaceTable, base string, opts CompactorOptions) *Compactor {
	return &Compactor{ns: ns, base: base, opts: opts, used: make(map[string]string), logger: DefaultLogger}
}

// UsedPrefixes returns the prefix -> namespace pairs actually referenced
// by a Compact call so far, for emitting only the @prefix headers a
// document needs.
func (c *Compactor) UsedPrefixes() map[string]string {
	out := make(map[string]string, len(c.used))
	for p, ns := range c.used {
		out[p] = ns
	}
	return out
}

// Compact renders iri in its most concise legal form.
func (c *Compactor) Compact(iri IRI) string {
	if !c.opts.RenderFragmentsAsPrefixed && c.base != "" {
		if frag, ok := c.fragmentOf(iri.Value()); ok {
			return "<#" + frag + ">"
		}
	}

	if c.base != "" {
		if rel, ok := relativizeIRI(iri.Value(), c.base, c.opts.Relativization); ok {
			if !c.opts.RenderFragmentsAsPrefixed || !strings.HasPrefix(rel, "#") {
				return "<" + rel + ">"
			}
		}
	}

	if prefix, local, ok := c.ns.PrefixFor(iri.Value()); ok {
		if c.opts.UseNumericLocalNames || local == "" || !isDigit(rune(local[0])) {
			ns, _ := c.ns.NamespaceFor(prefix)
			c.used[prefix] = ns
			return prefix + ":" + escapeLocal(local)
		}
	}

	if prefix, local, ns, ok := c.schemeSwappedPrefixFor(iri.Value()); ok {
		if c.opts.UseNumericLocalNames || local == "" || !isDigit(rune(local[0])) {
			c.logger.Warning("IRI %s uses a different scheme than the canonical namespace registered for prefix %q (%s); compacting anyway", iri.Value(), prefix, ns)
			c.used[prefix] = ns
			return prefix + ":" + escapeLocal(local)
		}
	}

	if c.opts.GenerateMissingPrefixes {
		if ns, local, ok := splitGeneratable(iri.Value()); ok {
			if c.opts.UseNumericLocalNames || local == "" || !isDigit(rune(local[0])) {
				prefix := c.ns.GetOrGeneratePrefix(ns, "")
				c.used[prefix] = ns
				c.logger.Info("interned prefix %q for namespace %s", prefix, ns)
				return prefix + ":" + escapeLocal(local)
			}
		}
	}

	return iri.String()
}

// schemeSwappedPrefixFor is PrefixFor's fallback for an iri whose scheme
// is http or https but whose opposite-scheme variant matches a namespace
// registered in ns: an encoded vocabulary IRI that differs from its
// canonically registered form only by an http/https scheme swap. The
// caller is expected to warn; this only reports the match.
func (c *Compactor) schemeSwappedPrefixFor(iri string) (prefix, local, namespace string, ok bool) {
	swapped, swappedOk := swapHTTPScheme(iri)
	if !swappedOk {
		return "", "", "", false
	}
	prefix, local, ok = c.ns.PrefixFor(swapped)
	if !ok {
		return "", "", "", false
	}
	ns, _ := c.ns.NamespaceFor(prefix)
	return prefix, local, ns, true
}

// swapHTTPScheme returns iri with its scheme swapped between "http" and
// "https", or ok=false when iri uses neither scheme.
func swapHTTPScheme(iri string) (swapped string, ok bool) {
	switch {
	case strings.HasPrefix(iri, "https://"):
		return "http://" + iri[len("https://"):], true
	case strings.HasPrefix(iri, "http://"):
		return "https://" + iri[len("http://"):], true
	}
	return "", false
}

// fragmentOf reports the fragment of absolute when it shares base's
// scheme, authority and path (i.e. it names a fragment of the same
// document as base).
func (c *Compactor) fragmentOf(absolute string) (frag string, ok bool) {
	a, err := splitIRI(absolute)
	if err != nil || a.fragment == "" {
		return "", false
	}
	b, err := splitIRI(c.base)
	if err != nil {
		return "", false
	}
	if a.scheme != b.scheme || a.authority != b.authority || a.path != b.path || a.query != b.query {
		return "", false
	}
	return a.fragment, true
}

// splitGeneratable splits iri into a namespace/local pair suitable for
// interning a new prefix: the namespace must end in '/' or '#' and the
// local part must be a non-empty legal PN_LOCAL.
func splitGeneratable(iri string) (ns, local string, ok bool) {
	var i int
	if j := strings.LastIndexByte(iri, '#'); j >= 0 {
		i = j + 1
	} else if j := strings.LastIndexByte(iri, '/'); j >= 0 {
		i = j + 1
	} else {
		return "", "", false
	}
	ns, local = iri[:i], iri[i:]
	if local == "" || !isLegalPNLocal(local) {
		return "", "", false
	}
	return ns, local, true
}

// escapeLocal escapes a PN_LOCAL remainder's reserved characters per the
// Turtle grammar (https://www.w3.org/TR/turtle/#reserved).
func escapeLocal(rest string) string {
	var b strings.Builder
	for _, r := range rest {
		switch r {
		case '_', '~', '.', '-', '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=', '/', '?', '#', '@', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
