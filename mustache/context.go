package mustache

import (
	"reflect"
	"strings"
)

// Context is an immutable chain of data frames. A nil *Context is
// the empty context.
type Context struct {
	parent *Context
	frame  any
}

// NewContext builds a context from frames given outer first.
func NewContext(frames ...any) *Context {
	var ctx *Context

	for _, fr := range frames {
		ctx = ctx.Push(fr)
	}

	return ctx
}

// Push returns a context with frame as its innermost frame. The
// receiver is left untouched.
func (c *Context) Push(frame any) *Context {
	return &Context{parent: c, frame: frame}
}

// Lookup resolves path against the frames, innermost first. The
// first segment of a dotted path selects the frame; the remaining
// segments descend through mappings from there. A path of "."
// returns the innermost frame itself. The boolean reports whether
// the value was found.
func (c *Context) Lookup(path string) (any, bool) {
	if path == "." {
		if c == nil {
			return nil, false
		}

		return c.frame, true
	}

	segs := strings.Split(path, ".")
	for _, sg := range segs {
		if sg == "" {
			return nil, false
		}
	}

	for fr := c; fr != nil; fr = fr.parent {
		val, ok := field(fr.frame, segs[0])
		if !ok {
			continue
		}

		for _, sg := range segs[1:] {
			if val, ok = field(val, sg); !ok {
				return nil, false
			}
		}

		return val, true
	}

	return nil, false
}

// field reads key name from a mapping value.
func field(val any, name string) (any, bool) {
	switch mp := val.(type) {
	case map[string]any:
		v, ok := mp[name]

		return v, ok
	case map[string]string:
		v, ok := mp[name]

		return v, ok
	}

	rv := indirect(reflect.ValueOf(val))
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil, false
	}

	kt := rv.Type().Key()

	key := reflect.ValueOf(name)
	if !key.Type().ConvertibleTo(kt) {
		return nil, false
	}

	v := rv.MapIndex(key.Convert(kt))
	if !v.IsValid() {
		return nil, false
	}

	return v.Interface(), true
}

// indirect unwraps pointers and interfaces. It returns the zero
// Value for nil.
func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() &&
		(rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}

		rv = rv.Elem()
	}

	return rv
}
