// Package ast holds the mutable syntax tree built by the parser. Every node
// can regenerate the source fragment it stands for from its own state and
// the regenerated text of its children.
package ast

import "strings"

type Kind int

const (
	KindRoot Kind = iota
	KindNamespace
	KindImport
	KindClass
	KindFunction
	KindVariable
	KindIf
	KindElseIf
	KindElse
	KindFor
	KindForeach
	KindWhile
	KindToken
)

var kindNames = map[Kind]string{
	KindRoot:      "Root",
	KindNamespace: "Namespace",
	KindImport:    "Import",
	KindClass:     "Class",
	KindFunction:  "Function",
	KindVariable:  "Variable",
	KindIf:        "If",
	KindElseIf:    "ElseIf",
	KindElse:      "Else",
	KindFor:       "For",
	KindForeach:   "Foreach",
	KindWhile:     "While",
	KindToken:     "Token",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsStructural reports whether nodes of kind k carry modifiers and a doc
// comment in source, and thus can be the target of an annotation.
func (k Kind) IsStructural() bool {
	return k == KindClass || k == KindFunction || k == KindVariable
}

// IsControl reports whether k is a conditional or loop construct.
func (k Kind) IsControl() bool {
	switch k {
	case KindIf, KindElseIf, KindElse, KindFor, KindForeach, KindWhile:
		return true
	}
	return false
}

// Position selects where InsertChild puts a node.
type Position int

const (
	Tail Position = iota
	Head
)

// Node is implemented by every tree variant. Children are owned by their
// parent; Parent is a back reference used for ascending only.
type Node interface {
	Kind() Kind
	Line() int
	Text() string
	Parent() Node

	Children() []Node
	NumChildren() int
	ChildAt(i int) Node
	AddChild(child Node)
	InsertChild(child Node, pos Position)
	RemoveChild(child Node) bool
	RemoveChildAt(i int) bool

	Attributes() []*Attribute
	AddAttribute(attr *Attribute)
	HasAttribute(m Modifier) bool
	RemoveAttribute(m Modifier) bool
	RemoveAttributeAt(i int) bool

	DocComment() string
	SetDocComment(doc string)

	Generate() string

	setParent(parent Node)
}

// Named is implemented by nodes that declare a name.
type Named interface {
	Node
	Name() string
	SetName(name string)
}

type base struct {
	self       Node
	kind       Kind
	line       int
	text       string
	parent     Node
	children   []Node
	attributes []*Attribute
	docComment string
}

func (b *base) init(self Node, kind Kind, line int, text string) {
	b.self = self
	b.kind = kind
	b.line = line
	b.text = text
}

func (b *base) Kind() Kind   { return b.kind }
func (b *base) Line() int    { return b.line }
func (b *base) Text() string { return b.text }
func (b *base) Parent() Node { return b.parent }

func (b *base) setParent(parent Node) {
	b.parent = parent
}

// Children returns a copy of the child list.
func (b *base) Children() []Node {
	out := make([]Node, len(b.children))
	copy(out, b.children)
	return out
}

func (b *base) NumChildren() int {
	return len(b.children)
}

func (b *base) ChildAt(i int) Node {
	if i < 0 || i >= len(b.children) {
		return nil
	}
	return b.children[i]
}

func (b *base) AddChild(child Node) {
	b.InsertChild(child, Tail)
}

// InsertChild attaches child at the head or tail of the child list. A child
// that already has a parent is detached from it first.
func (b *base) InsertChild(child Node, pos Position) {
	if child == nil {
		return
	}
	if old := child.Parent(); old != nil {
		old.RemoveChild(child)
	}
	child.setParent(b.self)
	if pos == Head {
		b.children = append([]Node{child}, b.children...)
		return
	}
	b.children = append(b.children, child)
}

// RemoveChild detaches child by identity. It reports false, and changes
// nothing, when child is not among the children.
func (b *base) RemoveChild(child Node) bool {
	for i, c := range b.children {
		if c == child {
			return b.RemoveChildAt(i)
		}
	}
	return false
}

func (b *base) RemoveChildAt(i int) bool {
	if i < 0 || i >= len(b.children) {
		return false
	}
	child := b.children[i]
	b.children = append(b.children[:i:i], b.children[i+1:]...)
	child.setParent(nil)
	return true
}

func (b *base) Attributes() []*Attribute {
	out := make([]*Attribute, len(b.attributes))
	copy(out, b.attributes)
	return out
}

func (b *base) AddAttribute(attr *Attribute) {
	if attr == nil {
		return
	}
	attr.owner = b.self
	b.attributes = append(b.attributes, attr)
}

func (b *base) HasAttribute(m Modifier) bool {
	for _, a := range b.attributes {
		if a.Modifier == m {
			return true
		}
	}
	return false
}

// RemoveAttribute removes the first attribute with modifier m.
func (b *base) RemoveAttribute(m Modifier) bool {
	for i, a := range b.attributes {
		if a.Modifier == m {
			return b.RemoveAttributeAt(i)
		}
	}
	return false
}

func (b *base) RemoveAttributeAt(i int) bool {
	if i < 0 || i >= len(b.attributes) {
		return false
	}
	attr := b.attributes[i]
	b.attributes = append(b.attributes[:i:i], b.attributes[i+1:]...)
	attr.owner = nil
	return true
}

func (b *base) DocComment() string       { return b.docComment }
func (b *base) SetDocComment(doc string) { b.docComment = doc }

func (b *base) writeDocComment(sb *strings.Builder) {
	if b.docComment != "" {
		sb.WriteString(b.docComment)
		sb.WriteString("\n")
	}
}

func (b *base) writeAttributes(sb *strings.Builder) {
	for _, a := range b.attributes {
		sb.WriteString(a.Generate())
		sb.WriteString(" ")
	}
}

// writeChildren separates children by a space. Nothing is inserted after a
// close tag or on either side of inline HTML, since PHP outputs that text.
func (b *base) writeChildren(sb *strings.Builder) {
	for i, c := range b.children {
		sb.WriteString(c.Generate())
		if tokenRole(c).Verbatim() {
			continue
		}
		if i+1 < len(b.children) && tokenRole(b.children[i+1]) == RoleInlineHTML {
			continue
		}
		sb.WriteString(" ")
	}
}

func tokenRole(n Node) TokenRole {
	if t, ok := n.(*Token); ok {
		return t.Role
	}
	return RoleCode
}

// writeBody writes children either inside braces or, for implicit single
// statement bodies, bare.
func (b *base) writeBody(sb *strings.Builder, braced bool) {
	if braced {
		sb.WriteString(" { ")
		b.writeChildren(sb)
		sb.WriteString("}")
		return
	}
	sb.WriteString(" ")
	b.writeChildren(sb)
}
