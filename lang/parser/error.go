package parser

import (
	"fmt"

	"github.com/nerinelang/nerine/lang/token"
)

// Error is the interface implemented by all parse errors.
type Error interface {
	error
	parseError()
}

// UnexpectedTokenError reports a token that does not match what the
// grammar requires at that point.
type UnexpectedTokenError struct {
	Expected string
	Found    string
	Span     token.Span
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("Parse error: Expected '%s', found '%s' at %s", e.Expected, e.Found, e.Span)
}
func (e *UnexpectedTokenError) parseError() {}

// UnexpectedEOFError reports that the source ended in the middle of a
// production.
type UnexpectedEOFError struct {
	Expected string
	Span     token.Span
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("Parse error: Unexpected end of input, expected '%s' at %s", e.Expected, e.Span)
}
func (e *UnexpectedEOFError) parseError() {}

// InvalidSyntaxError reports a construct that is tokenized correctly but
// has no valid interpretation.
type InvalidSyntaxError struct {
	Message string
	Span    token.Span
}

func (e *InvalidSyntaxError) Error() string {
	return fmt.Sprintf("Parse error: %s at %s", e.Message, e.Span)
}
func (e *InvalidSyntaxError) parseError() {}
