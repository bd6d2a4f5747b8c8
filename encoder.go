package rdf

import (
	"io"
	"sort"
	"strings"
)

// encoderConfig holds the options an Encoder was constructed with.
type encoderConfig struct {
	customPrefixes            map[string]string
	base                      string
	relativization            RelativizationOptions
	generateMissingPrefixes   bool
	useNumericLocalNames      bool
	includeBaseDeclaration    bool
	renderFragmentsAsPrefixed bool
	logger                    Logger
}

// EncoderOption configures an Encoder.
type EncoderOption func(*encoderConfig)

// WithCustomPrefixes seeds the encoder's namespace table with caller-chosen
// prefixes, taking precedence over the bundled well-known table.
func WithCustomPrefixes(prefixes map[string]string) EncoderOption {
	return func(c *encoderConfig) {
		for p, ns := range prefixes {
			c.customPrefixes[p] = ns
		}
	}
}

// WithEncoderBase sets the document base IRI used for fragment shorthand
// and relative-IRI compaction.
func WithEncoderBase(base string) EncoderOption {
	return func(c *encoderConfig) { c.base = base }
}

// WithRelativization bounds how aggressively absolute IRIs are shortened
// against the base; see RelativizationOptionsFor for bundled presets.
func WithRelativization(opts RelativizationOptions) EncoderOption {
	return func(c *encoderConfig) { c.relativization = opts }
}

// WithGenerateMissingPrefixes interns a fresh prefix for any namespace the
// encoder encounters that has none yet.
func WithGenerateMissingPrefixes(enabled bool) EncoderOption {
	return func(c *encoderConfig) { c.generateMissingPrefixes = enabled }
}

// WithNumericLocalNames allows prefixed names whose local part begins
// with a digit, e.g. "ex:123".
func WithNumericLocalNames(enabled bool) EncoderOption {
	return func(c *encoderConfig) { c.useNumericLocalNames = enabled }
}

// WithBaseDeclaration controls whether an @base directive is emitted for
// the configured base IRI.
func WithBaseDeclaration(enabled bool) EncoderOption {
	return func(c *encoderConfig) { c.includeBaseDeclaration = enabled }
}

// WithFragmentsAsPrefixed disables "#frag" shorthand for IRIs in the base
// document's fragment namespace, rendering them as prefixed names instead.
func WithFragmentsAsPrefixed(enabled bool) EncoderOption {
	return func(c *encoderConfig) { c.renderFragmentsAsPrefixed = enabled }
}

// WithEncoderLogger sets the Logger that receives diagnostics such as
// generated-prefix interning. Defaults to a no-op logger.
func WithEncoderLogger(l Logger) EncoderOption {
	return func(c *encoderConfig) { c.logger = l }
}

func newEncoderConfig(opts ...EncoderOption) encoderConfig {
	c := encoderConfig{customPrefixes: make(map[string]string), logger: DefaultLogger}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Encoder serializes a Graph or Dataset as Turtle, TriG, N-Triples or
// N-Quads.
type Encoder struct {
	format Format
	cfg    encoderConfig
}

// NewEncoder returns an Encoder for the given format.
func NewEncoder(format Format, opts ...EncoderOption) *Encoder {
	return &Encoder{format: format, cfg: newEncoderConfig(opts...)}
}

func (e *Encoder) namespaceTable() *NamespaceTable {
	seed := make(map[string]string, len(WellKnownPrefixes)+len(e.cfg.customPrefixes))
	for p, n := range WellKnownPrefixes {
		seed[p] = n
	}
	for p, n := range e.cfg.customPrefixes {
		// Drop a bundled prefix bound to the same namespace, so the
		// custom prefix is the one chosen for it.
		for wp, wn := range WellKnownPrefixes {
			if _, custom := e.cfg.customPrefixes[wp]; !custom && wn == n {
				delete(seed, wp)
			}
		}
		seed[p] = n
	}
	return NewNamespaceTable(seed)
}

func (e *Encoder) compactor(ns *NamespaceTable) *Compactor {
	c := NewCompactor(ns, e.cfg.base, CompactorOptions{
		Relativization:            e.cfg.relativization,
		GenerateMissingPrefixes:   e.cfg.generateMissingPrefixes,
		UseNumericLocalNames:      e.cfg.useNumericLocalNames,
		RenderFragmentsAsPrefixed: e.cfg.renderFragmentsAsPrefixed,
	})
	c.logger = e.cfg.logger
	return c
}

// EncodeGraph writes g to w. format must be FormatTurtle or
// FormatNTriples.
func (e *Encoder) EncodeGraph(w io.Writer, g *Graph) error {
	switch e.format {
	case FormatNTriples:
		return writeNTriples(w, g.Triples())
	case FormatTurtle:
		ns := e.namespaceTable()
		c := e.compactor(ns)
		body := renderTurtleBody(g, c)
		return writeDoc(w, e.cfg, c, body)
	default:
		return newEncoderConfigurationError("EncodeGraph: unsupported format %v", e.format)
	}
}

// EncodeDataset writes d to w in any of the four formats. With
// FormatTurtle or FormatNTriples only the default graph is written, via
// EncodeGraph; a dataset that has named graphs is rejected with a
// ValidationError for those formats.
func (e *Encoder) EncodeDataset(w io.Writer, d *Dataset) error {
	switch e.format {
	case FormatNTriples, FormatTurtle:
		if len(d.NamedGraphs()) > 0 {
			return newValidationError("%s encoding rejects a dataset with non-empty named graphs; encode the default graph alone instead", e.format)
		}
		return e.EncodeGraph(w, d.DefaultGraph())
	case FormatNQuads:
		return writeNQuads(w, d.Quads())
	case FormatTriG:
		ns := e.namespaceTable()
		c := e.compactor(ns)
		var b strings.Builder
		b.WriteString(renderTurtleBody(d.DefaultGraph(), c))

		named := d.NamedGraphs()
		sort.Slice(named, func(i, j int) bool { return named[i].Name.String() < named[j].Name.String() })
		for _, ng := range named {
			b.WriteByte('\n')
			b.WriteString(renderGraphName(c, ng.Name))
			b.WriteString(" {\n")
			b.WriteString(indent(renderTurtleBody(ng.Graph, c), "  "))
			b.WriteString("}\n")
		}
		return writeDoc(w, e.cfg, c, b.String())
	default:
		return newEncoderConfigurationError("EncodeDataset: unsupported format %v", e.format)
	}
}

func writeDoc(w io.Writer, cfg encoderConfig, c *Compactor, body string) error {
	var b strings.Builder
	if cfg.includeBaseDeclaration && cfg.base != "" {
		b.WriteString("@base <")
		b.WriteString(cfg.base)
		b.WriteString("> .\n")
	}
	// Bundled and custom prefixes first, sorted; then generated prefixes
	// in the order they were created.
	used := c.UsedPrefixes()
	generated := make(map[string]bool)
	for _, ns := range c.ns.GeneratedOrder() {
		generated[ns] = true
	}
	prefixes := make([]string, 0, len(used))
	for p, ns := range used {
		if !generated[ns] {
			prefixes = append(prefixes, p)
		}
	}
	sort.Strings(prefixes)
	for _, ns := range c.ns.GeneratedOrder() {
		if p := c.ns.nsToPrefix[ns]; used[p] == ns {
			prefixes = append(prefixes, p)
		}
	}
	for _, p := range prefixes {
		b.WriteString("@prefix ")
		b.WriteString(p)
		b.WriteString(": <")
		b.WriteString(used[p])
		b.WriteString("> .\n")
	}
	if len(prefixes) > 0 || (cfg.includeBaseDeclaration && cfg.base != "") {
		b.WriteByte('\n')
	}
	b.WriteString(body)
	_, err := io.WriteString(w, b.String())
	return err
}

// renderGraphName compacts a TriG graph label, which is either an IRI or
// a blank node.
func renderGraphName(c *Compactor, gn GraphName) string {
	if iri, ok := gn.(IRI); ok {
		return c.Compact(iri)
	}
	return gn.String()
}

func indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		b.WriteString(prefix)
		b.WriteString(l)
	}
	return b.String()
}

// writeNTriples emits ts in canonical line-oriented N-Triples form.
func writeNTriples(w io.Writer, ts []Triple) error {
	for _, t := range ts {
		if _, err := io.WriteString(w, t.Subj.String()+" "+t.Pred.String()+" "+t.Obj.String()+" .\n"); err != nil {
			return err
		}
	}
	return nil
}

// writeNQuads emits qs in canonical line-oriented N-Quads form.
func writeNQuads(w io.Writer, qs []Quad) error {
	for _, q := range qs {
		line := q.Subj.String() + " " + q.Pred.String() + " " + q.Obj.String()
		if q.Graph != nil {
			line += " " + q.Graph.String()
		}
		if _, err := io.WriteString(w, line+" .\n"); err != nil {
			return err
		}
	}
	return nil
}
