// Package reflection wraps tree nodes in named query and mutation
// operations. A wrapper holds nothing but the node it reflects; every lookup
// is re-derived from the live tree.
package reflection

import (
	"errors"
	"fmt"

	"github.com/dhamidi/phpgen/php/ast"
)

var ErrUnknownModifier = errors.New("unknown modifier")

// Reflection is the behaviour shared by all wrappers.
type Reflection interface {
	Node() ast.Node
	Kind() ast.Kind
	Line() int

	DocComment() string
	SetDocComment(doc string)

	Modifiers() []string
	HasModifier(name string) bool
	AddModifier(name string) error
	RemoveModifier(name string) bool
}

// For wraps a root, class, function or variable node. It returns nil for
// any other kind.
func For(n ast.Node) Reflection {
	switch n := n.(type) {
	case *ast.Root:
		return NewFile(n)
	case *ast.Class:
		return NewClass(n)
	case *ast.Function:
		return NewFunction(n)
	case *ast.Variable:
		return NewVariable(n)
	}
	return nil
}

type base struct {
	node ast.Node
}

func (b base) Node() ast.Node { return b.node }
func (b base) Kind() ast.Kind { return b.node.Kind() }
func (b base) Line() int      { return b.node.Line() }

func (b base) DocComment() string       { return b.node.DocComment() }
func (b base) SetDocComment(doc string) { b.node.SetDocComment(doc) }

// Modifiers returns the modifier keywords in declaration order.
func (b base) Modifiers() []string {
	attrs := b.node.Attributes()
	out := make([]string, len(attrs))
	for i, a := range attrs {
		out[i] = a.Generate()
	}
	return out
}

func (b base) HasModifier(name string) bool {
	m, ok := ast.ParseModifier(name)
	return ok && b.node.HasAttribute(m)
}

// AddModifier attaches the named modifier. Adding a modifier that is already
// present does nothing.
func (b base) AddModifier(name string) error {
	m, ok := ast.ParseModifier(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModifier, name)
	}
	if b.node.HasAttribute(m) {
		return nil
	}
	b.node.AddAttribute(ast.NewAttribute(m, b.node.Line()))
	return nil
}

// RemoveModifier is a no-op for unknown or absent modifiers.
func (b base) RemoveModifier(name string) bool {
	m, ok := ast.ParseModifier(name)
	if !ok {
		return false
	}
	return b.node.RemoveAttribute(m)
}

// members holds the class/function/variable child collections shared by
// File and Class.
type members struct {
	node ast.Node
}

func (m members) AddFunction(f *Function) {
	m.node.AddChild(f.fn)
}

// Function returns the function with the given name, or nil.
func (m members) Function(name string) *Function {
	if n, ok := ast.FindNamed(m.node, ast.KindFunction, name).(*ast.Function); ok {
		return NewFunction(n)
	}
	return nil
}

func (m members) Functions() []*Function {
	var out []*Function
	for _, n := range ast.ChildrenOfKind(m.node, ast.KindFunction) {
		out = append(out, NewFunction(n.(*ast.Function)))
	}
	return out
}

func (m members) RemoveFunction(name string) bool {
	f := m.Function(name)
	if f == nil {
		return false
	}
	return m.node.RemoveChild(f.fn)
}

func (m members) AddVariable(v *Variable) {
	m.node.AddChild(v.v)
}

// Variable returns the variable with the given name, with or without the
// leading '$', or nil.
func (m members) Variable(name string) *Variable {
	name = trimDollar(name)
	if n, ok := ast.FindNamed(m.node, ast.KindVariable, name).(*ast.Variable); ok {
		return NewVariable(n)
	}
	return nil
}

func (m members) Variables() []*Variable {
	var out []*Variable
	for _, n := range ast.ChildrenOfKind(m.node, ast.KindVariable) {
		out = append(out, NewVariable(n.(*ast.Variable)))
	}
	return out
}

func (m members) RemoveVariable(name string) bool {
	v := m.Variable(name)
	if v == nil {
		return false
	}
	return m.node.RemoveChild(v.v)
}

func trimDollar(name string) string {
	if len(name) > 0 && name[0] == '$' {
		return name[1:]
	}
	return name
}
