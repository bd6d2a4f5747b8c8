package rdf

import "strings"

// resolveIRI resolves a (possibly relative) IRI reference against a base
// IRI, following the algorithm of RFC 3986 section 5.3. base must already
// be an absolute IRI; ref may be absolute, network-path, absolute-path,
// relative-path, or a bare query/fragment.
//
// This is a direct, dependency-free transcription of the reference
// resolution algorithm (rather than a call into net/url.ResolveReference,
// which normalizes more aggressively than RDF requires, e.g. around empty
// path segments and percent-encoding case).
func resolveIRI(ref, base string) (string, error) {
	if ref == "" {
		return base, nil
	}

	r, err := splitIRI(ref)
	if err != nil {
		return "", err
	}
	if r.scheme != "" {
		return recompose(r.scheme, r.authority, removeDotSegments(r.path), r.query, r.fragment), nil
	}

	b, err := splitIRI(base)
	if err != nil {
		return "", err
	}

	var targetAuthority, targetPath, targetQuery string
	switch {
	case r.hasAuthority:
		targetAuthority, targetPath, targetQuery = r.authority, removeDotSegments(r.path), r.query
	case r.path == "":
		targetAuthority = b.authority
		targetPath = b.path
		if r.query != "" || r.hasQuery {
			targetQuery = r.query
		} else {
			targetQuery = b.query
		}
	case strings.HasPrefix(r.path, "/"):
		targetAuthority = b.authority
		targetPath = removeDotSegments(r.path)
		targetQuery = r.query
	default:
		targetAuthority = b.authority
		targetPath = removeDotSegments(mergePaths(b, r.path))
		targetQuery = r.query
	}

	return recompose(b.scheme, targetAuthority, targetPath, targetQuery, r.fragment), nil
}

type iriParts struct {
	scheme       string
	authority    string
	hasAuthority bool
	path         string
	query        string
	hasQuery     bool
	fragment     string
	hasFragment  bool
}

// splitIRI decomposes an IRI reference into its RFC 3986 components,
// without validating character classes beyond locating the delimiters
// '://' ':' '?' '#'. Lexically invalid IRIs never reach here: the
// tokenizer already rejected disallowed characters.
func splitIRI(s string) (iriParts, error) {
	var p iriParts

	if i := strings.IndexByte(s, '#'); i >= 0 {
		p.fragment = s[i+1:]
		p.hasFragment = true
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		p.query = s[i+1:]
		p.hasQuery = true
		s = s[:i]
	}

	if i := strings.IndexByte(s, ':'); i >= 0 && isValidScheme(s[:i]) {
		p.scheme = s[:i]
		s = s[i+1:]
	}

	if strings.HasPrefix(s, "//") {
		s = s[2:]
		i := strings.IndexAny(s, "/")
		if i < 0 {
			p.authority = s
			s = ""
		} else {
			p.authority = s[:i]
			s = s[i:]
		}
		p.hasAuthority = true
	}
	p.path = s

	return p, nil
}

func isValidScheme(s string) bool {
	if s == "" || !isAlpha(rune(s[0])) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := rune(s[i])
		if !isAlphaOrDigit(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func mergePaths(base iriParts, relPath string) string {
	if base.hasAuthority && base.path == "" {
		return "/" + relPath
	}
	if i := strings.LastIndexByte(base.path, '/'); i >= 0 {
		return base.path[:i+1] + relPath
	}
	return relPath
}

// removeDotSegments implements RFC 3986 section 5.2.4.
func removeDotSegments(path string) string {
	var out []string
	trailingSlash := false
	in := path
	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = "/" + in[3:]
		case in == "/.":
			in = "/"
			trailingSlash = true
		case strings.HasPrefix(in, "/../"):
			in = "/" + in[4:]
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "/..":
			in = "/"
			trailingSlash = true
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == ".." || in == ".":
			in = ""
		default:
			i := 0
			if strings.HasPrefix(in, "/") {
				i = 1
			}
			j := strings.IndexByte(in[i:], '/')
			var seg string
			if j < 0 {
				seg = in
				in = ""
			} else {
				seg = in[:i+j]
				in = in[i+j:]
				trailingSlash = false
			}
			out = append(out, seg)
			continue
		}
		trailingSlash = trailingSlash || in == ""
	}
	result := strings.Join(out, "")
	if trailingSlash && !strings.HasSuffix(result, "/") && result != "" {
		result += "/"
	}
	return result
}

func recompose(scheme, authority, path, query, fragment string) string {
	var b strings.Builder
	if scheme != "" {
		b.WriteString(scheme)
		b.WriteByte(':')
	}
	if authority != "" || strings.HasPrefix(path, "//") {
		b.WriteString("//")
		b.WriteString(authority)
	}
	b.WriteString(path)
	if query != "" {
		b.WriteByte('?')
		b.WriteString(query)
	}
	if fragment != "" {
		b.WriteByte('#')
		b.WriteString(fragment)
	}
	return b.String()
}

// RelativizationPreset selects a bundled trade-off between output
// verbosity and robustness to a moved base when the encoder relativizes
// IRIs against the document's base.
type RelativizationPreset int

const (
	// RelativizeNone never emits a relative IRI; every term is written
	// in absolute, fragment or prefixed form.
	RelativizeNone RelativizationPreset = iota
	// RelativizeLocal allows only fragment and same-directory relative
	// forms: robust to the document being copied alongside its base.
	RelativizeLocal
	// RelativizeFull allows "../" climbing and sibling-directory forms,
	// maximizing brevity at the cost of fragility if the base moves.
	RelativizeFull
)

// RelativizationOptions bounds how aggressively the encoder relativizes
// an absolute IRI against the base.
type RelativizationOptions struct {
	// MaxUpLevels caps the number of leading "../" segments allowed in a
	// relativized path; 0 disallows climbing to a parent directory.
	MaxUpLevels int
	// MaxAdditionalLength caps how much longer a relative form may be
	// than always emitting the absolute IRI; a non-positive value means
	// no limit.
	MaxAdditionalLength int
	// AllowSiblingDirectories permits "../sibling/x" forms, not just
	// "../../x" climbs back to an ancestor of base.
	AllowSiblingDirectories bool
	// AllowAbsolutePath permits an absolute-path relative reference
	// ("/a/b") when base and target share a scheme and authority.
	AllowAbsolutePath bool
}

// RelativizationOptionsFor returns the bundled options for a preset.
func RelativizationOptionsFor(preset RelativizationPreset) RelativizationOptions {
	switch preset {
	case RelativizeLocal:
		return RelativizationOptions{MaxUpLevels: 0, AllowSiblingDirectories: false, AllowAbsolutePath: false}
	case RelativizeFull:
		return RelativizationOptions{MaxUpLevels: 8, AllowSiblingDirectories: true, AllowAbsolutePath: true}
	default:
		// RelativizeNone: MaxUpLevels -1 is the sentinel relativizeIRI
		// checks to refuse every relative form, including a fragment.
		// The zero value of RelativizationOptions (MaxUpLevels 0) is
		// deliberately indistinguishable from RelativizeLocal instead of
		// "disabled", since a caller building options by hand most often
		// means "same-directory relativization only".
		return RelativizationOptions{MaxUpLevels: -1}
	}
}

// relativizeIRI computes a reference for absolute, relative to base, that
// resolveIRI(result, base) reproduces absolute. Of the forms opts allow it
// returns the shorter of the "../"-style path and the absolute path. It
// returns ok=false when absolute and base differ in scheme or authority,
// when opts allow no form, or when the form exceeds MaxAdditionalLength.
func relativizeIRI(absolute, base string, opts RelativizationOptions) (rel string, ok bool) {
	a, err := splitIRI(absolute)
	if err != nil {
		return "", false
	}
	b, err := splitIRI(base)
	if err != nil {
		return "", false
	}
	if a.scheme != b.scheme || a.authority != b.authority {
		return "", false
	}
	if opts.MaxUpLevels < 0 {
		return "", false
	}

	if a.path == b.path {
		if a.query == b.query {
			if a.fragment != "" {
				return "#" + a.fragment, true
			}
			return "", false
		}
	}

	absPath := ""
	if opts.AllowAbsolutePath && strings.HasPrefix(a.path, "/") {
		absPath = a.path
	}

	aSegs := strings.Split(strings.TrimPrefix(a.path, "/"), "/")
	bSegs := strings.Split(strings.TrimPrefix(b.path, "/"), "/")
	if len(bSegs) > 0 {
		bSegs = bSegs[:len(bSegs)-1] // drop base's last segment (its "file")
	}

	common := 0
	for common < len(aSegs)-1 && common < len(bSegs) && aSegs[common] == bSegs[common] {
		common++
	}
	upLevels := len(bSegs) - common
	if upLevels > opts.MaxUpLevels || (upLevels > 0 && !opts.AllowSiblingDirectories && len(aSegs)-common > 1) {
		if absPath != "" {
			return finishRelative(absPath, a, opts)
		}
		return "", false
	}

	var parts []string
	for i := 0; i < upLevels; i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, aSegs[common:]...)
	rel = strings.Join(parts, "/")
	if rel == "" {
		rel = "."
	}
	if absPath != "" && len(absPath) < len(rel) {
		rel = absPath
	}

	return finishRelative(rel, a, opts)
}

func finishRelative(rel string, a iriParts, opts RelativizationOptions) (string, bool) {
	if a.query != "" {
		rel += "?" + a.query
	}
	if a.fragment != "" {
		rel += "#" + a.fragment
	}
	absolute := recompose(a.scheme, a.authority, a.path, a.query, a.fragment)
	if opts.MaxAdditionalLength > 0 && len(rel) > len(absolute)+opts.MaxAdditionalLength {
		return "", false
	}
	return rel, true
}
