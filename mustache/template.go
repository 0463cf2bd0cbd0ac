package mustache

import (
	"fmt"
	"io"
)

// Template is a parsed template. It is immutable and safe for
// concurrent use; each render builds its own Context.
type Template struct {
	nodes []Node
}

// Compile parses src into a Template.
func Compile(src string, opts ...Option) (*Template, error) {
	nodes, err := Parse(src, opts...)
	if err != nil {
		return nil, err
	}

	return &Template{nodes: nodes}, nil
}

// Nodes returns the parsed tree. Callers must not modify it.
func (t *Template) Nodes() []Node {
	return t.nodes
}

// Render renders the template against frames given outer first.
func (t *Template) Render(frames ...any) (string, error) {
	return Render(t.nodes, NewContext(frames...))
}

// Execute renders the template against frames and writes the
// result to w.
func (t *Template) Execute(w io.Writer, frames ...any) error {
	const errCtx = "executing template"

	out, err := t.Render(frames...)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
