package mustache

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is matched by every *SyntaxError.
	ErrSyntax = errors.New("template syntax error")

	// ErrRender is matched by every *RenderError.
	ErrRender = errors.New("template render error")
)

// SyntaxError reports a malformed template. Tag holds the offending
// tag text as written in the source and Pos its byte offset; Line and
// Column are 1-based, Column counted in runes.
type SyntaxError struct {
	Tag    string
	Pos    int
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf(
			"%s at line %d, column %d: %s",
			ErrSyntax, e.Line, e.Column, e.Msg,
		)
	}

	return fmt.Sprintf(
		"%s at line %d, column %d: %s: %s",
		ErrSyntax, e.Line, e.Column, e.Msg, e.Tag,
	)
}

// Unwrap returns ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// RenderError reports a node tree that Parse could not have
// produced, such as a nil node or an unknown Node implementation.
type RenderError struct {
	Msg string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRender, e.Msg)
}

// Unwrap returns ErrRender.
func (e *RenderError) Unwrap() error {
	return ErrRender
}
