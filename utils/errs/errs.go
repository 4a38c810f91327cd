// Package errs defines the error kinds shared by the interval, polynomial and
// piecewise packages.
//
// Every error returned by these packages wraps exactly one Kind, which makes
// the failure class testable with errors.Is:
//
//	if errors.Is(err, errs.Domain) { ... }
package errs

import (
	"fmt"
)

// Kind is a class of failure. A Kind is itself an error so that it can be
// used as an errors.Is target.
type Kind int

const (
	// InvalidArgument reports an argument that can never be valid for the
	// called operation, such as a negative exponent.
	InvalidArgument = Kind(iota + 1)
	// Parse reports malformed textual input. Errors of this kind are
	// *ParseError values.
	Parse
	// DomainConflict reports an attempt to bind a range that overlaps an
	// already bound range.
	DomainConflict
	// Domain reports a value outside of the domain of an operation.
	Domain
	// Internal reports a broken invariant, i.e. a defect of the library.
	Internal
)

var kindNames = map[Kind]string{
	InvalidArgument: "invalid argument",
	Parse:           "parse error",
	DomainConflict:  "domain conflict",
	Domain:          "domain error",
	Internal:        "internal error",
}

// Error implements the error interface.
func (k Kind) Error() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

// Error is an error of a given Kind.
type Error struct {
	Kind Kind
	Msg  string
}

// Errorf returns an *Error of kind k whose message is formatted according to
// format.
func Errorf(k Kind, format string, a ...interface{}) error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, a...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the Kind of e.
func (e *Error) Unwrap() error {
	return e.Kind
}

// ParseError is the error returned for malformed textual input. It carries
// the offending symbol and its 0-based position in the parsed text.
type ParseError struct {
	Reason   string
	Symbol   byte
	Position int
}

// NewParseError returns a *ParseError for the symbol found at position pos of
// text. A position past the end of text is reported with a zero symbol.
func NewParseError(reason, text string, pos int) *ParseError {
	var symbol byte
	if pos >= 0 && pos < len(text) {
		symbol = text[pos]
	}
	return &ParseError{Reason: reason, Symbol: symbol, Position: pos}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Symbol == 0 {
		return fmt.Sprintf("%s: %s at position %d", Parse, e.Reason, e.Position)
	}
	return fmt.Sprintf("%s: %s: '%c' at position %d", Parse, e.Reason, e.Symbol, e.Position)
}

// Unwrap returns Parse.
func (e *ParseError) Unwrap() error {
	return Parse
}
