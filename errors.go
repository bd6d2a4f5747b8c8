package rdf

import "fmt"

// Pos is a 1-based source location, attached to every error this package
// raises while decoding.
type Pos struct {
	Line    int
	Column  int
	Context string // e.g. "subject", "prefix IRI", "literal datatype"
}

func (p Pos) String() string {
	if p.Context == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d (%s)", p.Line, p.Column, p.Context)
}

// codecError is the common shape of every error kind this package raises;
// it satisfies error and exposes its source location for callers that want
// to recover it with errors.As against one of the exported *Error types.
type codecError struct {
	kind    string
	pos     Pos
	format  Format
	message string
}

func (e *codecError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.kind, e.pos, e.message)
}

func (e *codecError) Line() int        { return e.pos.Line }
func (e *codecError) Column() int      { return e.pos.Column }
func (e *codecError) Context() string  { return e.pos.Context }
func (e *codecError) Format() Format   { return e.format }

// LexicalError reports an unrecoverable token-scanning failure: an
// unclosed IRI or literal, or a character matching no production.
type LexicalError struct{ *codecError }

func newLexicalError(pos Pos, format string, args ...interface{}) *LexicalError {
	return &LexicalError{&codecError{kind: "lexical error", pos: pos, message: fmt.Sprintf(format, args...)}}
}

// SyntaxError reports that the token stream violates the grammar.
type SyntaxError struct{ *codecError }

func newSyntaxError(pos Pos, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{&codecError{kind: "syntax error", pos: pos, message: fmt.Sprintf(format, args...)}}
}

// RelativeIriWithoutBaseError is raised when a relative IRI is encountered
// with no base IRI in effect.
type RelativeIriWithoutBaseError struct{ *codecError }

func newRelativeIriWithoutBaseError(pos Pos, ref string) *RelativeIriWithoutBaseError {
	return &RelativeIriWithoutBaseError{&codecError{kind: "relative IRI without base", pos: pos, message: fmt.Sprintf("cannot resolve relative IRI %q: no base IRI in effect", ref)}}
}

// UnknownPrefixError is raised for an undeclared prefix that
// autoAddCommonPrefixes could not resolve against the well-known table.
type UnknownPrefixError struct{ *codecError }

func newUnknownPrefixError(pos Pos, prefix string) *UnknownPrefixError {
	return &UnknownPrefixError{&codecError{kind: "unknown prefix", pos: pos, message: fmt.Sprintf("undeclared prefix %q", prefix)}}
}

// MalformedEscapeError is raised for an invalid \u or \U escape sequence.
type MalformedEscapeError struct{ *codecError }

func newMalformedEscapeError(pos Pos, format string, args ...interface{}) *MalformedEscapeError {
	return &MalformedEscapeError{&codecError{kind: "malformed escape", pos: pos, message: fmt.Sprintf(format, args...)}}
}

// NamedGraphInTurtleError is raised when the Turtle entry point encounters
// a TriG graph block.
type NamedGraphInTurtleError struct{ *codecError }

func newNamedGraphInTurtleError(pos Pos) *NamedGraphInTurtleError {
	return &NamedGraphInTurtleError{&codecError{kind: "named graph in Turtle", pos: pos, message: "named graph block is not legal in a Turtle document; use the TriG decoder"}}
}

// ValidationError reports a structural violation found outside of syntax,
// e.g. asking the Turtle encoder to serialize a non-empty named graph.
type ValidationError struct{ *codecError }

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{&codecError{kind: "validation error", message: fmt.Sprintf(format, args...)}}
}

// EncoderConfigurationError reports inconsistent or unsupported encoder
// options, detected eagerly before any output is written.
type EncoderConfigurationError struct{ *codecError }

func newEncoderConfigurationError(format string, args ...interface{}) *EncoderConfigurationError {
	return &EncoderConfigurationError{&codecError{kind: "encoder configuration error", message: fmt.Sprintf(format, args...)}}
}
