package rdf

import (
	"fmt"
	"io"
	"runtime"
)

// ttlDecoder is the shared Turtle/TriG statement-level parser. A single
// state machine drives both: in FormatTurtle a graph block token is a
// hard error, and in FormatTriG a leading IRI/blank node followed by '{'
// opens a named graph block instead of starting a triple.
type ttlDecoder struct {
	l      *lexer
	flags  ParseFlags
	format Format
	logger Logger

	state     parseFn           // state of parser
	base      IRI               // base (default IRI)
	bnodeN    int               // anonymous blank node counter
	ns        map[string]string // map[prefix]namespace
	tokens    [3]token          // 3 token lookahead
	peekCount int               // number of tokens peeked at (position in tokens lookahead array)
	current   ctxTriple         // the current triple being parsed

	curGraph   GraphName // graph currently in scope; nil is the default graph
	graphDepth int       // 0 at top level, 1 inside a single (non-nested) graph block

	// ctxStack keeps track of current and parent triple contexts,
	// needed for parsing recursive structures (list/collections).
	ctxStack []ctxTriple

	// quads holds complete statements ready to be emitted. Usually just
	// one, but can hold more when parsing nested list/collections.
	quads []Quad
}

func newTTLDecoder(r io.Reader, format Format, flags ParseFlags, ns map[string]string, base IRI) *ttlDecoder {
	d := &ttlDecoder{
		l:        newLexer(r, flags),
		flags:    flags,
		format:   format,
		logger:   DefaultLogger,
		base:     base,
		ns:       make(map[string]string, len(ns)),
		ctxStack: make([]ctxTriple, 0, 8),
		quads:    make([]Quad, 0, 4),
	}
	for p, n := range ns {
		d.ns[p] = n
	}
	return d
}

// Decode parses a Turtle document and returns the next triple, or io.EOF.
func (d *ttlDecoder) Decode() (t Triple, err error) {
	q, err := d.DecodeQuad()
	return q.Triple, err
}

// DecodeQuad parses a Turtle/TriG document and returns the next quad, or
// io.EOF. In FormatTurtle the returned quad's Graph is always nil.
func (d *ttlDecoder) DecodeQuad() (q Quad, err error) {
	defer d.recover(&err)

	if len(d.quads) >= 1 {
		goto done
	}

	if d.next().typ == tokenEOF {
		if d.graphDepth != 0 {
			d.errorf(d.tokens[0], "unexpected end of input: unclosed graph block")
		}
		return q, io.EOF
	}
	d.backup()

	for d.state = parseStart; d.state != nil; {
		d.state = d.state(d)
	}

	if len(d.quads) == 0 {
		return q, io.EOF
	}

done:
	q = d.quads[0]
	d.quads = d.quads[1:]
	return q, err
}

// DecodeAll parses a complete Turtle document and returns all triples.
func (d *ttlDecoder) DecodeAll() ([]Triple, error) {
	var ts []Triple
	for t, err := d.Decode(); err != io.EOF; t, err = d.Decode() {
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

// DecodeAllQuads parses a complete Turtle/TriG document and returns all quads.
func (d *ttlDecoder) DecodeAllQuads() ([]Quad, error) {
	var qs []Quad
	for q, err := d.DecodeQuad(); err != io.EOF; q, err = d.DecodeQuad() {
		if err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
	return qs, nil
}

// resolve resolves tok's text, a relative IRI reference, against the base
// IRI currently in effect. It panics with a RelativeIriWithoutBaseError
// when no base has been established, per the requirement that a decoded
// Iri value is always absolute.
func (d *ttlDecoder) resolve(tok token) string {
	if d.base.str == "" {
		panic(newRelativeIriWithoutBaseError(Pos{Line: tok.line, Column: tok.col}, tok.text))
	}
	resolved, err := resolveIRI(tok.text, d.base.str)
	if err != nil {
		d.errorf(tok, "invalid relative IRI reference %q: %v", tok.text, err)
	}
	return resolved
}

// parseStart parses the top-level (or graph-block-level) context: prefix
// and base directives, graph block open/close, or a statement.
func parseStart(d *ttlDecoder) parseFn {
	tok := d.next()
	switch tok.typ {
	case tokenPrefix:
		label := d.expect1As("prefix label", tokenPrefixLabel)
		iriTok := d.expectAs("prefix IRI", tokenIRIAbs, tokenIRIRel)
		if iriTok.typ == tokenIRIRel {
			d.ns[label.text] = d.resolve(iriTok)
		} else {
			d.ns[label.text] = iriTok.text
		}
		if !d.flags.Has(AllowMissingDotAfterPrefix) {
			d.expect1As("directive trailing dot", tokenDot)
		} else if d.peek().typ == tokenDot {
			d.next()
		}
	case tokenSparqlPrefix:
		label := d.expect1As("prefix label", tokenPrefixLabel)
		iriTok := d.expect1As("prefix IRI", tokenIRIAbs)
		d.ns[label.text] = iriTok.text
	case tokenBase:
		iriTok := d.expectAs("base IRI", tokenIRIAbs, tokenIRIRel)
		if iriTok.typ == tokenIRIRel {
			d.base.str = d.resolve(iriTok)
		} else {
			d.base.str = iriTok.text
		}
		if !d.flags.Has(AllowMissingDotAfterPrefix) {
			d.expect1As("directive trailing dot", tokenDot)
		} else if d.peek().typ == tokenDot {
			d.next()
		}
	case tokenSparqlBase:
		iriTok := d.expect1As("base IRI", tokenIRIAbs)
		d.base.str = iriTok.text
	case tokenGraphOpen:
		d.openGraphBlock(nil, tok)
	case tokenGraphClose:
		if d.graphDepth == 0 {
			d.errorf(tok, "unexpected '}': not inside a graph block")
		}
		d.graphDepth--
		d.curGraph = nil
	case tokenEOF:
		if d.graphDepth != 0 {
			d.errorf(tok, "unexpected end of input: unclosed graph block")
		}
		return nil
	default:
		d.backup()
		return parseSubjectOrGraphLabel
	}
	return parseStart
}

// openGraphBlock validates and enters a TriG graph block; gn is nil for
// an anonymous default-graph block.
func (d *ttlDecoder) openGraphBlock(gn GraphName, at token) {
	if d.format == FormatTurtle {
		panic(newNamedGraphInTurtleError(Pos{Line: at.line, Column: at.col}))
	}
	if d.graphDepth != 0 {
		d.errorf(at, "nested graph blocks are not legal in TriG")
	}
	d.graphDepth++
	d.curGraph = gn
}

// labelTerm builds the IRI or Blank term denoted by tok, which must be
// one of the token types that can open either a subject or a graph label:
// tokenIRIAbs, tokenIRIRel, tokenBNode, tokenAnonBNode, tokenPrefixLabel.
func (d *ttlDecoder) labelTerm(tok token) Term {
	switch tok.typ {
	case tokenIRIAbs:
		return NewIRIUnsafe(tok.text)
	case tokenIRIRel:
		return NewIRIUnsafe(d.resolve(tok))
	case tokenBNode:
		return NewBlankUnsafe(tok.text)
	case tokenAnonBNode:
		d.bnodeN++
		return NewBlankUnsafe(fmt.Sprintf("b%d", d.bnodeN))
	case tokenPrefixLabel:
		ns, ok := d.ns[tok.text]
		if !ok {
			ns = d.resolveUnknownPrefix(tok)
		}
		suf := d.expect1As("IRI suffix", tokenIRISuffix)
		return NewIRIUnsafe(ns + suf.text)
	}
	d.errorf(tok, "unexpected %v as term", tok.typ)
	return nil
}

// resolveUnknownPrefix honors AutoAddCommonPrefixes, or raises
// UnknownPrefixError.
func (d *ttlDecoder) resolveUnknownPrefix(tok token) string {
	if d.flags.Has(AutoAddCommonPrefixes) {
		if ns, ok := WellKnownPrefixes[tok.text]; ok {
			d.ns[tok.text] = ns
			d.logger.Fine("auto-added well-known prefix %q -> %s", tok.text, ns)
			return ns
		}
	}
	panic(newUnknownPrefixError(Pos{Line: tok.line, Column: tok.col}, tok.text))
}

// parseSubjectOrGraphLabel parses the first term of a statement. In TriG,
// when that term is followed directly by '{' it is a graph label rather
// than a subject.
func parseSubjectOrGraphLabel(d *ttlDecoder) parseFn {
	d.popContext()
	if d.current.Subj != nil {
		return parsePredicate
	}

	tok := d.next()
	switch tok.typ {
	case tokenIRIAbs, tokenIRIRel, tokenBNode, tokenAnonBNode, tokenPrefixLabel:
		term := d.labelTerm(tok)
		if d.peek().typ == tokenGraphOpen {
			d.next() // consume '{'
			gn, _ := term.(GraphName)
			d.openGraphBlock(gn, tok)
			return parseStart
		}
		d.current.Subj = term.(Subject)
	case tokenBareIdentifier:
		d.current.Subj = d.bareIdentifierIRI(tok)
	case tokenPropertyListStart:
		d.bnodeN++
		d.current.Subj = NewBlankUnsafe(fmt.Sprintf("b%d", d.bnodeN))
		d.pushContext()
		d.current.Ctx = ctxList
	case tokenCollectionStart:
		if d.peek().typ == tokenCollectionEnd {
			d.next()
			d.current.Subj = rdfNil
			break
		}
		d.bnodeN++
		d.current.Subj = NewBlankUnsafe(fmt.Sprintf("b%d", d.bnodeN))
		d.pushContext()
		d.current.Pred = rdfFirst
		d.current.Ctx = ctxColl
		return parseObject
	case tokenError, tokenMalformedEscape:
		d.lexError(tok)
	default:
		d.errorf(tok, "unexpected %v as subject", tok.typ)
	}

	return parsePredicate
}

// parseEnd parses punctuation [.,;\])] before emitting the current triple.
func parseEnd(d *ttlDecoder) parseFn {
	tok := d.next()
	switch tok.typ {
	case tokenSemicolon:
		switch d.peek().typ {
		case tokenSemicolon, tokenDot:
			return parseEnd
		case tokenEOF:
			d.errorf(tok, "expected triple termination, got %v", tok.typ)
			return nil
		}
		d.current.Pred = nil
		d.current.Obj = nil
		d.pushContext()
		return nil
	case tokenComma:
		d.current.Obj = nil
		d.pushContext()
		return nil
	case tokenPropertyListEnd:
		d.popContext()
		if d.peek().typ == tokenDot {
			d.next()
			return nil
		}
		if d.current.Pred == nil {
			d.pushContext()
			return nil
		}
		return parseEnd
	case tokenCollectionEnd:
		d.current.Pred = rdfRest
		d.current.Obj = rdfNil
		d.emit()

		d.popContext()
		if d.current.Pred == nil {
			d.pushContext()
			return nil
		}
		return parseEnd
	case tokenDot:
		if d.current.Ctx == ctxColl {
			return parseEnd
		}
		return nil
	case tokenError, tokenMalformedEscape:
		d.lexError(tok)
		return nil
	case tokenEOF, tokenGraphClose:
		if d.flags.Has(AllowMissingFinalDot) {
			d.backup()
			return nil
		}
		d.errorf(tok, "expected '.', got %v", tok.typ)
		return nil
	default:
		if d.current.Ctx == ctxColl {
			d.backup() // unread collection item, to be parsed on next iteration

			d.bnodeN++
			d.current.Pred = rdfRest
			next := NewBlankUnsafe(fmt.Sprintf("b%d", d.bnodeN))
			d.current.Obj = next
			d.emit()

			d.current.Subj = next
			d.current.Obj = nil
			d.current.Pred = rdfFirst
			d.pushContext()
			return nil
		}
		if d.flags.Has(AllowMissingFinalDot) && d.current.Ctx == ctxTop {
			switch tok.typ {
			case tokenIRIAbs, tokenIRIRel, tokenBNode, tokenAnonBNode, tokenPrefixLabel, tokenBareIdentifier,
				tokenPropertyListStart, tokenCollectionStart, tokenPrefix, tokenBase, tokenSparqlPrefix,
				tokenSparqlBase, tokenGraphOpen:
				// the token starts the next statement
				d.backup()
				return nil
			}
		}
		d.errorf(tok, "expected triple termination, got %v", tok.typ)
		return nil
	}
}

func parsePredicate(d *ttlDecoder) parseFn {
	if d.current.Pred != nil {
		return parseObject
	}
	tok := d.next()
	switch tok.typ {
	case tokenIRIAbs:
		d.current.Pred = NewIRIUnsafe(tok.text)
	case tokenIRIRel:
		d.current.Pred = NewIRIUnsafe(d.resolve(tok))
	case tokenRDFType:
		d.current.Pred = rdfType
	case tokenPrefixLabel:
		ns, ok := d.ns[tok.text]
		if !ok {
			ns = d.resolveUnknownPrefix(tok)
		}
		suf := d.expect1As("IRI suffix", tokenIRISuffix)
		d.current.Pred = NewIRIUnsafe(ns + suf.text)
	case tokenBareIdentifier:
		d.current.Pred = d.bareIdentifierIRI(tok)
	case tokenError, tokenMalformedEscape:
		d.lexError(tok)
	default:
		d.errorf(tok, "unexpected %v as predicate", tok.typ)
	}

	return parseObject
}

// bareIdentifierIRI honors AllowIdentifiersWithoutColon by treating tok as
// a relative IRI resolved against the current base.
func (d *ttlDecoder) bareIdentifierIRI(tok token) IRI {
	if !d.flags.Has(AllowIdentifiersWithoutColon) {
		d.errorf(tok, "bare identifier %q requires a ':' or the AllowIdentifiersWithoutColon flag", tok.text)
	}
	return NewIRIUnsafe(d.resolve(tok))
}

func parseObject(d *ttlDecoder) parseFn {
	tok := d.next()
	switch tok.typ {
	case tokenIRIAbs:
		d.current.Obj = NewIRIUnsafe(tok.text)
	case tokenIRIRel:
		d.current.Obj = NewIRIUnsafe(d.resolve(tok))
	case tokenBNode:
		d.current.Obj = NewBlankUnsafe(tok.text)
	case tokenAnonBNode:
		d.bnodeN++
		d.current.Obj = NewBlankUnsafe(fmt.Sprintf("b%d", d.bnodeN))
	case tokenBareIdentifier:
		d.current.Obj = d.bareIdentifierIRI(tok)
	case tokenLiteral, tokenLiteral3:
		lit := NewLiteral(tok.text)
		switch d.peek().typ {
		case tokenLangMarker:
			d.next()
			langTok := d.expect1As("literal language", tokenLang)
			lit = NewLangLiteral(tok.text, langTok.text)
		case tokenDataTypeMarker:
			d.next()
			dtTok := d.expectAs("literal datatype", tokenIRIAbs, tokenPrefixLabel)
			switch dtTok.typ {
			case tokenIRIAbs:
				lit = NewTypedLiteral(tok.text, NewIRIUnsafe(dtTok.text))
			case tokenPrefixLabel:
				ns, ok := d.ns[dtTok.text]
				if !ok {
					ns = d.resolveUnknownPrefix(dtTok)
				}
				suf := d.expect1As("IRI suffix", tokenIRISuffix)
				lit = NewTypedLiteral(tok.text, NewIRIUnsafe(ns+suf.text))
			}
		}
		d.current.Obj = lit
	case tokenLiteralDouble:
		d.current.Obj = NewTypedLiteral(tok.text, XSDDouble)
	case tokenLiteralDecimal:
		d.current.Obj = NewTypedLiteral(tok.text, XSDDecimal)
	case tokenLiteralInteger:
		d.current.Obj = NewTypedLiteral(tok.text, XSDInteger)
	case tokenLiteralBoolean:
		d.current.Obj = NewTypedLiteral(tok.text, XSDBoolean)
	case tokenPrefixLabel:
		ns, ok := d.ns[tok.text]
		if !ok {
			ns = d.resolveUnknownPrefix(tok)
		}
		suf := d.expect1As("IRI suffix", tokenIRISuffix)
		d.current.Obj = NewIRIUnsafe(ns + suf.text)
	case tokenPropertyListStart:
		d.pushContext()

		d.bnodeN++
		d.current.Obj = NewBlankUnsafe(fmt.Sprintf("b%d", d.bnodeN))
		d.emit()

		d.current.Subj = d.current.Obj.(Subject)
		d.current.Pred = nil
		d.current.Obj = nil
		d.current.Ctx = ctxList
		d.pushContext()
		return nil
	case tokenCollectionStart:
		if d.peek().typ == tokenCollectionEnd {
			d.next()
			d.current.Obj = rdfNil
			break
		}
		d.pushContext()

		d.bnodeN++
		d.current.Obj = NewBlankUnsafe(fmt.Sprintf("b%d", d.bnodeN))
		d.emit()
		d.current.Subj = d.current.Obj.(Subject)
		d.current.Pred = rdfFirst
		d.current.Obj = nil
		d.current.Ctx = ctxColl
		d.pushContext()
		return nil
	case tokenError, tokenMalformedEscape:
		d.lexError(tok)
	default:
		d.errorf(tok, "unexpected %v as object", tok.typ)
	}

	d.emit()

	return parseEnd
}

// pushContext pushes the current triple and context to the context stack.
func (d *ttlDecoder) pushContext() {
	d.ctxStack = append(d.ctxStack, d.current)
}

// popContext restores the next context on the stack as the current context.
func (d *ttlDecoder) popContext() {
	switch len(d.ctxStack) {
	case 0:
		d.current.Ctx = ctxTop
		d.current.Subj = nil
		d.current.Pred = nil
		d.current.Obj = nil
	case 1:
		d.current = d.ctxStack[0]
		d.ctxStack = d.ctxStack[:0]
	default:
		d.current = d.ctxStack[len(d.ctxStack)-1]
		d.ctxStack = d.ctxStack[:len(d.ctxStack)-1]
	}
}

// emit adds the current triple (plus the in-scope graph) to the quad queue.
func (d *ttlDecoder) emit() {
	d.quads = append(d.quads, Quad{Triple: d.current.Triple, Graph: d.curGraph})
}

func (d *ttlDecoder) next() token {
	if d.peekCount > 0 {
		d.peekCount--
	} else {
		d.tokens[0] = d.l.nextToken()
	}
	return d.tokens[d.peekCount]
}

func (d *ttlDecoder) peek() token {
	if d.peekCount > 0 {
		return d.tokens[d.peekCount-1]
	}
	d.peekCount = 1
	d.tokens[0] = d.l.nextToken()
	return d.tokens[0]
}

func (d *ttlDecoder) backup() { d.peekCount++ }

// parseFn represents the state of the parser as a function returning the
// next state.
type parseFn func(*ttlDecoder) parseFn

// errorf raises a SyntaxError anchored at tok's position.
func (d *ttlDecoder) errorf(tok token, format string, args ...interface{}) {
	panic(newSyntaxError(Pos{Line: tok.line, Column: tok.col}, format, args...))
}

// lexError re-raises a token the lexer already flagged as illegal, as the
// specific error kind the lexer identified it as.
func (d *ttlDecoder) lexError(t token) {
	if t.typ == tokenMalformedEscape {
		panic(newMalformedEscapeError(Pos{Line: t.line, Column: t.col}, "%s", t.text))
	}
	panic(newLexicalError(Pos{Line: t.line, Column: t.col}, "%s", t.text))
}

// unexpected complains about the given token and terminates parsing.
func (d *ttlDecoder) unexpected(t token, context string) {
	if t.typ == tokenError || t.typ == tokenMalformedEscape {
		d.lexError(t)
	}
	panic(newSyntaxError(Pos{Line: t.line, Column: t.col, Context: context}, "unexpected %v", t.typ))
}

// recover catches non-runtime panics and binds the panic error to errp.
func (d *ttlDecoder) recover(errp *error) {
	e := recover()
	if e != nil {
		if _, ok := e.(runtime.Error); ok {
			panic(e)
		}
		*errp = e.(error)
	}
}

// expect1As consumes the next token and guarantees it has the expected type.
func (d *ttlDecoder) expect1As(context string, expected tokenType) token {
	t := d.next()
	if t.typ != expected {
		d.unexpected(t, context)
	}
	return t
}

// expectAs consumes the next token and guarantees it has one of the
// expected types.
func (d *ttlDecoder) expectAs(context string, expected ...tokenType) token {
	t := d.next()
	for _, e := range expected {
		if t.typ == e {
			return t
		}
	}
	d.unexpected(t, context)
	return t
}

// ctxTriple contains a Triple, plus the context in which the Triple appears.
type ctxTriple struct {
	Triple
	Ctx context
}

type context int

const (
	ctxTop context = iota
	ctxColl
	ctxList
)

func (ctx context) String() string {
	switch ctx {
	case ctxTop:
		return "top context"
	case ctxList:
		return "list"
	case ctxColl:
		return "collection"
	default:
		return "unknown context"
	}
}
