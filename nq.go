package rdf

import (
	"io"
	"runtime"
)

// nqDecoder parses N-Quads, the line-oriented canonical subset of TriG.
type nqDecoder struct {
	l         *lexer
	tokens    [2]token
	peekCount int
}

func newNQDecoder(r io.Reader) *nqDecoder {
	return &nqDecoder{l: newLineLexer(r, 0)}
}

func (d *nqDecoder) next() token {
	if d.peekCount > 0 {
		d.peekCount--
	} else {
		d.tokens[0] = d.l.nextToken()
	}
	return d.tokens[d.peekCount]
}

func (d *nqDecoder) peek() token {
	if d.peekCount > 0 {
		return d.tokens[d.peekCount-1]
	}
	d.peekCount = 1
	d.tokens[0] = d.l.nextToken()
	return d.tokens[0]
}

func (d *nqDecoder) recover(errp *error) {
	e := recover()
	if e != nil {
		if _, ok := e.(runtime.Error); ok {
			panic(e)
		}
		*errp = e.(error)
	}
}

func (d *nqDecoder) expect1As(context string, expected tokenType) token {
	t := d.next()
	if t.typ != expected {
		d.unexpected(t, context)
	}
	return t
}

func (d *nqDecoder) expectAs(context string, expected ...tokenType) token {
	t := d.next()
	for _, e := range expected {
		if t.typ == e {
			return t
		}
	}
	d.unexpected(t, context)
	return t
}

func (d *nqDecoder) unexpected(t token, context string) {
	if t.typ == tokenMalformedEscape {
		panic(newMalformedEscapeError(Pos{Line: t.line, Column: t.col}, "%s", t.text))
	}
	if t.typ == tokenError {
		panic(newLexicalError(Pos{Line: t.line, Column: t.col}, "%s", t.text))
	}
	panic(newSyntaxError(Pos{Line: t.line, Column: t.col, Context: context}, "unexpected %v", t.typ))
}

func (d *nqDecoder) parseObjectTerm(tok token) Object {
	switch tok.typ {
	case tokenIRIAbs:
		return NewIRIUnsafe(tok.text)
	case tokenBNode:
		return NewBlankUnsafe(tok.text)
	case tokenLiteral, tokenLiteral3:
		lit := NewLiteral(tok.text)
		switch d.peek().typ {
		case tokenLangMarker:
			d.next()
			lang := d.expect1As("literal language", tokenLang)
			return NewLangLiteral(tok.text, lang.text)
		case tokenDataTypeMarker:
			d.next()
			dt := d.expect1As("literal datatype", tokenIRIAbs)
			return NewTypedLiteral(tok.text, NewIRIUnsafe(dt.text))
		}
		return lit
	}
	d.unexpected(tok, "object")
	return nil
}

// Decode parses a line of N-Quads and returns a valid quad, or io.EOF. A
// quad's Graph is nil when the line names no graph (default graph).
func (d *nqDecoder) Decode() (q Quad, err error) {
	defer d.recover(&err)

	for d.peek().typ == tokenEOL {
		d.next()
	}
	if d.peek().typ == tokenEOF {
		return q, io.EOF
	}

	subj := d.expectAs("subject", tokenIRIAbs, tokenBNode)
	if subj.typ == tokenIRIAbs {
		q.Subj = NewIRIUnsafe(subj.text)
	} else {
		q.Subj = NewBlankUnsafe(subj.text)
	}

	pred := d.expect1As("predicate", tokenIRIAbs)
	q.Pred = NewIRIUnsafe(pred.text)

	obj := d.expectAs("object", tokenIRIAbs, tokenBNode, tokenLiteral, tokenLiteral3)
	q.Obj = d.parseObjectTerm(obj)

	graphOrDot := d.expectAs("graph label or dot (.)", tokenIRIAbs, tokenBNode, tokenDot)
	switch graphOrDot.typ {
	case tokenIRIAbs:
		q.Graph = NewIRIUnsafe(graphOrDot.text)
		d.expect1As("dot (.)", tokenDot)
	case tokenBNode:
		q.Graph = NewBlankUnsafe(graphOrDot.text)
		d.expect1As("dot (.)", tokenDot)
	}

	d.expect1As("end of line", tokenEOL)

	if d.peek().typ == tokenEOF {
		d.next()
	}
	return q, err
}

// DecodeAll parses every remaining line of an N-Quads document.
func (d *nqDecoder) DecodeAll() ([]Quad, error) {
	var qs []Quad
	for q, err := d.Decode(); err != io.EOF; q, err = d.Decode() {
		if err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
	return qs, nil
}
