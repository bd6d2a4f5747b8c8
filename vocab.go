package rdf

// Well-known vocabulary IRIs used internally by the tokenizer, parser and
// encoder. Consumers who need the XSD datatype IRIs should import the
// sibling xsd subpackage rather than reach into these.
var (
	rdfType      = NewIRIUnsafe("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	rdfFirst     = NewIRIUnsafe("http://www.w3.org/1999/02/22-rdf-syntax-ns#first")
	rdfRest      = NewIRIUnsafe("http://www.w3.org/1999/02/22-rdf-syntax-ns#rest")
	rdfNil       = NewIRIUnsafe("http://www.w3.org/1999/02/22-rdf-syntax-ns#nil")
	rdfLangStrIRI = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"

	XSDString  = NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#string")
	XSDBoolean = NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#boolean")
	XSDInteger = NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#integer")
	XSDDecimal = NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#decimal")
	XSDDouble  = NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#double")

	// RDFLangString is the implicit datatype of every language-tagged literal.
	RDFLangString = NewIRIUnsafe(rdfLangStrIRI)
)
