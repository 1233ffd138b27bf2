package dotparser

import "fmt"

// ParseError is the base error type for all dotparser errors.
type ParseError struct {
	Message string
	Pos     Position
	Span    string // offending source text
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// LexError represents a lexer-level error (unterminated string, invalid character).
type LexError struct{ ParseError }

// SyntaxError represents a grammar-level error (unexpected token).
type SyntaxError struct {
	ParseError
	Expected string
	Got      string
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
	if e.Message != "" {
		msg = e.Message + ": " + msg
	}
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, msg)
	}
	return msg
}

func unexpected(tok Token, expected string) *SyntaxError {
	got := tok.Kind.String()
	if tok.Kind != TokenEOF {
		got = fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal)
	}
	return &SyntaxError{
		ParseError: ParseError{Pos: tok.Pos, Span: tok.Literal},
		Expected:   expected,
		Got:        got,
	}
}
