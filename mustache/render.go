package mustache

import (
	"fmt"
	"reflect"
	"strings"
)

// Render walks nodes against ctx and returns the output. Missing
// data never fails a render; a *RenderError is returned only for
// trees Parse cannot produce.
func Render(nodes []Node, ctx *Context) (string, error) {
	var sb strings.Builder

	if err := renderNodes(&sb, nodes, ctx, 0); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func renderNodes(
	sb *strings.Builder,
	nodes []Node,
	ctx *Context,
	depth int,
) error {
	if depth > MaxDepth {
		return &RenderError{Msg: "sections nested deeper than the limit"}
	}

	for _, nd := range nodes {
		switch nd := nd.(type) {
		case nil:
			return &RenderError{Msg: "nil node"}

		case *Literal:
			if nd == nil {
				return &RenderError{Msg: "nil literal"}
			}

			sb.WriteString(nd.Text)

		case *Variable:
			if nd == nil {
				return &RenderError{Msg: "nil variable"}
			}

			val, _ := ctx.Lookup(nd.Path)
			sb.WriteString(Escape(stringify(val)))

		case *Section:
			if nd == nil {
				return &RenderError{Msg: "nil section"}
			}

			if err := renderSection(sb, nd, ctx, depth); err != nil {
				return err
			}

		case *InvertedSection:
			if nd == nil {
				return &RenderError{Msg: "nil inverted section"}
			}

			val, _ := ctx.Lookup(nd.Path)
			if Truthy(val) {
				continue
			}

			if err := renderNodes(
				sb, nd.Children, ctx, depth+1,
			); err != nil {
				return err
			}

		default:
			return &RenderError{
				Msg: fmt.Sprintf("unknown node type %T", nd),
			}
		}
	}

	return nil
}

func renderSection(
	sb *strings.Builder,
	sec *Section,
	ctx *Context,
	depth int,
) error {
	val, _ := ctx.Lookup(sec.Path)
	if !Truthy(val) {
		return nil
	}

	rv := indirect(reflect.ValueOf(val))

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := renderNodes(
				sb,
				sec.Children,
				ctx.Push(rv.Index(i).Interface()),
				depth+1,
			); err != nil {
				return err
			}
		}

		return nil

	case reflect.Map:
		return renderNodes(sb, sec.Children, ctx.Push(val), depth+1)

	default:
		// Scalars render once in place and are never iterated.
		return renderNodes(sb, sec.Children, ctx, depth+1)
	}
}
