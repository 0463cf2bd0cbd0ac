package mustache

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultLeftDelim opens a tag.
	DefaultLeftDelim = "{{"

	// DefaultRightDelim closes a tag.
	DefaultRightDelim = "}}"

	// MaxDepth is the deepest section nesting Parse accepts.
	MaxDepth = 64
)

// Option configures Parse and Compile.
type Option func(*options)

type options struct {
	left  string
	right string
}

// WithDelims replaces the tag delimiters. An empty delimiter keeps
// the default for that side.
func WithDelims(left, right string) Option {
	return func(op *options) {
		if left != "" {
			op.left = left
		}

		if right != "" {
			op.right = right
		}
	}
}

func newOptions(opts []Option) options {
	op := options{
		left:  DefaultLeftDelim,
		right: DefaultRightDelim,
	}

	for _, o := range opts {
		o(&op)
	}

	return op
}

// openTag is an entry of the parser's section stack. The bottom
// entry has no tag and collects the top-level nodes.
type openTag struct {
	path     string
	raw      string
	pos      int
	inverted bool
	children []Node
}

type parser struct {
	src   string
	left  string
	right string
	stack []*openTag
}

// Parse converts template text into a node tree. It fails with a
// *SyntaxError when tags are empty, unterminated, unbalanced,
// mismatched or nested deeper than MaxDepth.
func Parse(src string, opts ...Option) ([]Node, error) {
	op := newOptions(opts)

	pa := &parser{
		src:   src,
		left:  op.left,
		right: op.right,
		stack: []*openTag{{}},
	}

	return pa.parse()
}

func (pa *parser) parse() ([]Node, error) {
	pos := 0

	for pos < len(pa.src) {
		idx := strings.Index(pa.src[pos:], pa.left)
		if idx < 0 {
			pa.text(pa.src[pos:])

			break
		}

		start := pos + idx
		pa.text(pa.src[pos:start])

		bodyStart := start + len(pa.left)

		end := strings.Index(pa.src[bodyStart:], pa.right)
		if end < 0 {
			return nil, pa.errorf(
				start, "", "tag is never terminated by "+pa.right,
			)
		}

		bodyEnd := bodyStart + end
		pos = bodyEnd + len(pa.right)

		if err := pa.tag(
			pa.src[start:pos],
			strings.TrimSpace(pa.src[bodyStart:bodyEnd]),
			start,
		); err != nil {
			return nil, err
		}
	}

	if len(pa.stack) > 1 {
		top := pa.stack[len(pa.stack)-1]

		return nil, pa.errorf(
			top.pos, top.raw, "section is never closed",
		)
	}

	return pa.stack[0].children, nil
}

// tag dispatches one tag on the first character of its trimmed body.
func (pa *parser) tag(raw, body string, pos int) error {
	if body == "" {
		return pa.errorf(pos, raw, "empty tag")
	}

	switch body[0] {
	case '#', '^':
		path := strings.TrimSpace(body[1:])
		if path == "" {
			return pa.errorf(pos, raw, "section tag without a name")
		}

		if len(pa.stack)-1 >= MaxDepth {
			return pa.errorf(
				pos, raw, "sections nested deeper than the limit",
			)
		}

		pa.stack = append(pa.stack, &openTag{
			path:     path,
			raw:      raw,
			pos:      pos,
			inverted: body[0] == '^',
		})

	case '/':
		path := strings.TrimSpace(body[1:])
		if path == "" {
			return pa.errorf(pos, raw, "close tag without a name")
		}

		if len(pa.stack) == 1 {
			return pa.errorf(pos, raw, "close tag without an open section")
		}

		top := pa.stack[len(pa.stack)-1]
		if top.path != path {
			return pa.errorf(
				pos, raw, "close tag does not match "+top.raw,
			)
		}

		pa.stack = pa.stack[:len(pa.stack)-1]

		var nd Node
		if top.inverted {
			nd = &InvertedSection{
				Path:     top.path,
				Pos:      top.pos,
				Children: top.children,
			}
		} else {
			nd = &Section{
				Path:     top.path,
				Pos:      top.pos,
				Children: top.children,
			}
		}

		pa.add(nd)

	default:
		pa.add(&Variable{Path: body, Pos: pos})
	}

	return nil
}

// text appends literal text, merging it into a preceding literal.
func (pa *parser) text(s string) {
	if s == "" {
		return
	}

	top := pa.stack[len(pa.stack)-1]

	if n := len(top.children); n > 0 {
		if lit, ok := top.children[n-1].(*Literal); ok {
			lit.Text += s

			return
		}
	}

	top.children = append(top.children, &Literal{Text: s})
}

func (pa *parser) add(nd Node) {
	top := pa.stack[len(pa.stack)-1]
	top.children = append(top.children, nd)
}

func (pa *parser) errorf(pos int, raw, msg string) *SyntaxError {
	line := 1 + strings.Count(pa.src[:pos], "\n")
	lineStart := strings.LastIndexByte(pa.src[:pos], '\n') + 1

	return &SyntaxError{
		Tag:    raw,
		Pos:    pos,
		Line:   line,
		Column: utf8.RuneCountInString(pa.src[lineStart:pos]) + 1,
		Msg:    msg,
	}
}
