package rdf

import "io"

// decoderConfig holds the options a Decoder was constructed with.
type decoderConfig struct {
	base   IRI
	flags  ParseFlags
	ns     map[string]string
	logger Logger
}

// DecoderOption configures a TripleDecoder or QuadDecoder.
type DecoderOption func(*decoderConfig)

// WithBase sets the document's initial base IRI, used to resolve any
// relative IRI reference that appears before an in-document @base.
func WithBase(base IRI) DecoderOption {
	return func(c *decoderConfig) { c.base = base }
}

// WithParseFlags enables the given permissive parsing relaxations.
func WithParseFlags(flags ParseFlags) DecoderOption {
	return func(c *decoderConfig) { c.flags |= flags }
}

// WithNamespaces seeds the decoder's prefix table, e.g. so a caller can
// decode a fragment that relies on prefixes declared in a sibling
// document.
func WithNamespaces(ns map[string]string) DecoderOption {
	return func(c *decoderConfig) {
		for p, n := range ns {
			c.ns[p] = n
		}
	}
}

// WithLogger sets the Logger that receives recovered-parse diagnostics,
// e.g. auto-added prefixes. Defaults to a no-op logger.
func WithLogger(l Logger) DecoderOption {
	return func(c *decoderConfig) { c.logger = l }
}

func newDecoderConfig(opts ...DecoderOption) decoderConfig {
	c := decoderConfig{ns: make(map[string]string), logger: DefaultLogger}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// TripleDecoder decodes a stream of triples from a Turtle or N-Triples
// document.
type TripleDecoder interface {
	// Decode returns the next triple, or io.EOF when the document is
	// exhausted.
	Decode() (Triple, error)
	// DecodeAll decodes every remaining triple.
	DecodeAll() ([]Triple, error)
}

// NewTripleDecoder returns a TripleDecoder for the given format. format
// must be FormatTurtle or FormatNTriples.
func NewTripleDecoder(r io.Reader, format Format, opts ...DecoderOption) (TripleDecoder, error) {
	cfg := newDecoderConfig(opts...)
	switch format {
	case FormatTurtle:
		d := newTTLDecoder(r, FormatTurtle, cfg.flags, cfg.ns, cfg.base)
		d.logger = cfg.logger
		return d, nil
	case FormatNTriples:
		return newNTDecoder(r), nil
	default:
		return nil, newEncoderConfigurationError("NewTripleDecoder: unsupported triple format %v", format)
	}
}

// QuadDecoder decodes a stream of quads from a TriG or N-Quads document.
type QuadDecoder interface {
	// Decode returns the next quad, or io.EOF when the document is
	// exhausted. A quad's Graph is nil when it belongs to the default
	// graph.
	Decode() (Quad, error)
	// DecodeAll decodes every remaining quad.
	DecodeAll() ([]Quad, error)
}

// NewQuadDecoder returns a QuadDecoder for the given format. format must
// be FormatTriG or FormatNQuads.
func NewQuadDecoder(r io.Reader, format Format, opts ...DecoderOption) (QuadDecoder, error) {
	cfg := newDecoderConfig(opts...)
	switch format {
	case FormatTriG:
		d := newTTLDecoder(r, FormatTriG, cfg.flags, cfg.ns, cfg.base)
		d.logger = cfg.logger
		return quadDecoderAdapter{d}, nil
	case FormatNQuads:
		return newNQDecoder(r), nil
	default:
		return nil, newEncoderConfigurationError("NewQuadDecoder: unsupported quad format %v", format)
	}
}

// quadDecoderAdapter exposes ttlDecoder's quad-returning methods under
// the QuadDecoder interface's Decode/DecodeAll names.
type quadDecoderAdapter struct{ d *ttlDecoder }

func (a quadDecoderAdapter) Decode() (Quad, error)      { return a.d.DecodeQuad() }
func (a quadDecoderAdapter) DecodeAll() ([]Quad, error) { return a.d.DecodeAllQuads() }

// DecodeGraph reads an entire Turtle document from r and returns it as a Graph.
func DecodeGraph(r io.Reader, opts ...DecoderOption) (*Graph, error) {
	dec, err := NewTripleDecoder(r, FormatTurtle, opts...)
	if err != nil {
		return nil, err
	}
	triples, err := dec.DecodeAll()
	if err != nil {
		return nil, err
	}
	return NewGraph(triples...), nil
}

// DecodeDataset reads an entire TriG document from r and returns it as a Dataset.
func DecodeDataset(r io.Reader, opts ...DecoderOption) (*Dataset, error) {
	dec, err := NewQuadDecoder(r, FormatTriG, opts...)
	if err != nil {
		return nil, err
	}
	quads, err := dec.DecodeAll()
	if err != nil {
		return nil, err
	}
	return NewDatasetFromQuads(quads...), nil
}
