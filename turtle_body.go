package rdf

import (
	"sort"
	"strings"
)

// renderTurtleBody renders every triple in g as Turtle statement blocks,
// grouping by subject and predicate, inlining blank-node property lists
// and RDF collections where the graph's shape allows it.
func renderTurtleBody(g *Graph, c *Compactor) string {
	b := newBodyBuilder(g, c)
	return b.render()
}

type bodyBuilder struct {
	g *Graph
	c *Compactor

	bySubj     map[string][]Triple
	subjTerm   map[string]Subject
	objCount   map[string]int // how many times a blank node label appears as an object
	listCell   map[string]bool
}

func newBodyBuilder(g *Graph, c *Compactor) *bodyBuilder {
	bb := &bodyBuilder{
		g:        g,
		c:        c,
		bySubj:   make(map[string][]Triple),
		subjTerm: make(map[string]Subject),
		objCount: make(map[string]int),
		listCell: make(map[string]bool),
	}
	for _, t := range g.Triples() {
		k := t.Subj.String()
		bb.bySubj[k] = append(bb.bySubj[k], t)
		bb.subjTerm[k] = t.Subj
		if _, ok := t.Obj.(Blank); ok {
			bb.objCount[t.Obj.String()]++
		}
	}
	for k, ts := range bb.bySubj {
		if isListCellShape(ts) {
			bb.listCell[k] = true
		}
	}
	return bb
}

// isListCellShape reports whether ts is exactly {rdf:first X; rdf:rest Y}.
func isListCellShape(ts []Triple) bool {
	if len(ts) != 2 {
		return false
	}
	hasFirst, hasRest := false, false
	for _, t := range ts {
		switch {
		case t.Pred.Eq(rdfType):
			return false
		case t.Pred.String() == rdfFirst.String():
			hasFirst = true
		case t.Pred.String() == rdfRest.String():
			hasRest = true
		}
	}
	return hasFirst && hasRest
}

func (bb *bodyBuilder) render() string {
	keys := make([]string, 0, len(bb.bySubj))
	for k := range bb.bySubj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		if bb.objCount[k] == 1 {
			if _, ok := bb.collectionItems(k); ok {
				continue // only ever reached via a preceding list cell or a referring property
			}
		}
		if _, isBlank := bb.subjTerm[k].(Blank); isBlank && bb.isInlinable(k) {
			continue // emitted inline at its single point of reference
		}
		b.WriteString(bb.renderSubjectBlock(k))
	}
	return b.String()
}

// isInlinable reports whether the blank node at key appears as an object
// exactly once and is not itself a list cell (list cells are handled by
// renderObject's collection path).
func (bb *bodyBuilder) isInlinable(key string) bool {
	return bb.objCount[key] == 1 && !bb.listCell[key]
}

func (bb *bodyBuilder) renderSubjectBlock(subjKey string) string {
	var b strings.Builder
	b.WriteString(bb.renderTerm(bb.subjTerm[subjKey]))
	b.WriteString("\n")
	b.WriteString(bb.renderPredicateLists(subjKey, "\t"))
	b.WriteString(" .\n\n")
	return b.String()
}

// renderPredicateLists renders the predicate/object lists of the triples
// at subjKey, without the leading subject or trailing " .".
func (bb *bodyBuilder) renderPredicateLists(subjKey, indentStr string) string {
	byPred := make(map[string][]Object)
	var predOrder []string
	for _, t := range bb.bySubj[subjKey] {
		pk := t.Pred.String()
		if _, ok := byPred[pk]; !ok {
			predOrder = append(predOrder, pk)
		}
		byPred[pk] = append(byPred[pk], t.Obj)
	}

	// rdf:type sorts first (as "a"); everything else keeps the order its
	// predicate IRI first appeared on this subject.
	if i := indexOf(predOrder, rdfType.String()); i > 0 {
		reordered := make([]string, 0, len(predOrder))
		reordered = append(reordered, predOrder[i])
		reordered = append(reordered, predOrder[:i]...)
		reordered = append(reordered, predOrder[i+1:]...)
		predOrder = reordered
	}

	var b strings.Builder
	for i, pk := range predOrder {
		if i > 0 {
			b.WriteString(" ;\n")
		}
		b.WriteString(indentStr)
		if pk == rdfType.String() {
			b.WriteString("a")
		} else {
			b.WriteString(bb.renderTerm(bb.predTermForKey(subjKey, pk)))
		}
		b.WriteString(" ")

		objs := byPred[pk]
		for j, o := range objs {
			if j > 0 {
				b.WriteString(" ,\n" + indentStr + "\t")
			}
			b.WriteString(bb.renderObject(o))
		}
	}
	return b.String()
}

// indexOf returns the index of s in ss, or -1 if absent.
func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}

func (bb *bodyBuilder) predTermForKey(subjKey, predKey string) Predicate {
	for _, t := range bb.bySubj[subjKey] {
		if t.Pred.String() == predKey {
			return t.Pred
		}
	}
	return nil
}

// renderObject renders a triple's object, inlining it as a blank-node
// property list or an RDF collection where the graph's shape allows.
func (bb *bodyBuilder) renderObject(o Object) string {
	blank, isBlank := o.(Blank)
	if !isBlank {
		return bb.renderTerm(o)
	}
	key := blank.String()

	if items, ok := bb.collectionItems(key); ok {
		if len(items) == 0 {
			return "()"
		}
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = bb.renderObject(it)
		}
		return "(" + strings.Join(parts, " ") + ")"
	}

	if bb.isInlinable(key) {
		if _, hasProps := bb.bySubj[key]; hasProps {
			inner := bb.renderPredicateLists(key, "")
			return "[ " + strings.TrimSpace(strings.ReplaceAll(inner, "\n", " ")) + " ]"
		}
		return "[]"
	}

	return bb.renderTerm(o)
}

// collectionItems walks the rdf:first/rdf:rest chain rooted at a blank
// node keyed by key, returning its items in order if the chain is a
// well-formed, nil-terminated RDF collection whose every cell is referenced
// exactly once.
func (bb *bodyBuilder) collectionItems(key string) ([]Object, bool) {
	if !bb.listCell[key] || bb.objCount[key] != 1 {
		return nil, false
	}
	var first, rest Term
	for _, t := range bb.bySubj[key] {
		switch t.Pred.String() {
		case rdfFirst.String():
			first = t.Obj
		case rdfRest.String():
			rest = t.Obj
		}
	}
	if first == nil || rest == nil {
		return nil, false
	}
	items := []Object{first.(Object)}
	switch next := rest.(type) {
	case IRI:
		if next.String() != rdfNil.String() {
			return nil, false
		}
		return items, true
	case Blank:
		more, ok := bb.collectionItems(next.String())
		if !ok {
			return nil, false
		}
		return append(items, more...), true
	default:
		return nil, false
	}
}

func (bb *bodyBuilder) renderTerm(t Term) string {
	if iri, ok := t.(IRI); ok {
		return bb.c.Compact(iri)
	}
	if lit, ok := t.(Literal); ok {
		return bb.renderLiteral(lit)
	}
	return t.String() // Blank
}

func (bb *bodyBuilder) renderLiteral(l Literal) string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(escapeLexical(l.Lexical()))
	b.WriteByte('"')
	switch {
	case l.Lang() != "":
		b.WriteByte('@')
		b.WriteString(l.Lang())
	case l.Datatype().Eq(XSDString):
		// plain string literal, no suffix
	default:
		b.WriteString("^^")
		b.WriteString(bb.c.Compact(l.Datatype()))
	}
	return b.String()
}
