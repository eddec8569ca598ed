package reflection

import "github.com/dhamidi/phpgen/php/ast"

type Class struct {
	base
	members
	cls *ast.Class
}

func NewClass(n *ast.Class) *Class {
	return &Class{base: base{n}, members: members{n}, cls: n}
}

func (c *Class) Name() string        { return c.cls.Name() }
func (c *Class) SetName(name string) { c.cls.SetName(name) }

func (c *Class) Extends() string          { return c.cls.Extends }
func (c *Class) SetExtends(parent string) { c.cls.Extends = parent }

func (c *Class) Implements() []string              { return c.cls.Implements() }
func (c *Class) AddImplements(name string)         { c.cls.AddImplements(name) }
func (c *Class) RemoveImplements(name string) bool { return c.cls.RemoveImplements(name) }

// File returns the file the class is declared in, or nil when the class is
// not attached to a tree.
func (c *Class) File() *File {
	if root, ok := rootOf(c.cls); ok {
		return NewFile(root)
	}
	return nil
}

func rootOf(n ast.Node) (*ast.Root, bool) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if root, ok := p.(*ast.Root); ok {
			return root, true
		}
	}
	return nil, false
}
