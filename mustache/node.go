package mustache

// Node is one element of a parsed template. The concrete types are
// *Literal, *Variable, *Section and *InvertedSection.
type Node interface {
	node()
}

// Literal is template text copied to the output unchanged.
type Literal struct {
	Text string
}

// Variable interpolates the escaped value found at Path.
type Variable struct {
	Path string
	Pos  int
}

// Section renders Children once per element when Path resolves
// to a sequence, once with the value pushed when it resolves to a
// mapping, and once in place for any other truthy value.
type Section struct {
	Path     string
	Pos      int
	Children []Node
}

// InvertedSection renders Children once when Path resolves to a
// falsy value.
type InvertedSection struct {
	Path     string
	Pos      int
	Children []Node
}

func (*Literal) node()         {}
func (*Variable) node()        {}
func (*Section) node()         {}
func (*InvertedSection) node() {}
