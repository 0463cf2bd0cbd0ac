// Package mustache implements a small logic-less template engine. Templates
// use "{{" and "}}" delimiters and support four constructs: literal text,
// escaped variables ({{name}}), sections ({{#name}}...{{/name}}) and inverted
// sections ({{^name}}...{{/name}}).
//
// Parse turns template text into an immutable tree of Nodes; Render walks
// that tree against a Context, a chain of data frames searched innermost
// first. Compile wraps both steps in a Template that may be rendered
// concurrently from multiple goroutines. Missing data is never an error:
// only malformed templates fail, with a *SyntaxError at parse time.
package mustache
