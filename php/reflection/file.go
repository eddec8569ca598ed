package reflection

import "github.com/dhamidi/phpgen/php/ast"

// File reflects a parsed source unit.
type File struct {
	base
	members
	root *ast.Root
}

func NewFile(root *ast.Root) *File {
	return &File{base: base{root}, members: members{root}, root: root}
}

func (f *File) Root() *ast.Root { return f.root }

func (f *File) Name() string { return f.root.FileName }

// Namespace returns the path of the first namespace declaration, or "".
func (f *File) Namespace() string {
	if ns, ok := ast.FirstChildOfKind(f.root, ast.KindNamespace).(*ast.Namespace); ok {
		return ns.Path
	}
	return ""
}

// SetNamespace renames the existing declaration or inserts one at the head
// of the file.
func (f *File) SetNamespace(path string) {
	if ns, ok := ast.FirstChildOfKind(f.root, ast.KindNamespace).(*ast.Namespace); ok {
		ns.Path = path
		return
	}
	f.root.InsertChild(ast.NewToken(0, ";"), ast.Head)
	f.root.InsertChild(ast.NewNamespace(0, path), ast.Head)
}

func (f *File) Imports() []*ast.Import {
	var out []*ast.Import
	for _, n := range ast.ChildrenOfKind(f.root, ast.KindImport) {
		out = append(out, n.(*ast.Import))
	}
	return out
}

// AddImport places a use statement after the last existing import, or after
// the namespace declaration when there is none.
func (f *File) AddImport(path, alias string) {
	for _, imp := range f.Imports() {
		if imp.Type == "" && imp.Path == path && imp.Alias == alias {
			return
		}
	}
	nodes := []ast.Node{ast.NewImport(0, path, alias), ast.NewToken(0, ";")}

	anchor := -1
	for i := 0; i < f.root.NumChildren(); i++ {
		switch f.root.ChildAt(i).Kind() {
		case ast.KindImport, ast.KindNamespace:
			anchor = i
		}
	}
	if anchor < 0 {
		for i := len(nodes) - 1; i >= 0; i-- {
			f.root.InsertChild(nodes[i], ast.Head)
		}
		return
	}
	// skip the terminating ';' of the anchor statement
	if next := f.root.ChildAt(anchor + 1); next != nil && next.Kind() == ast.KindToken && next.Text() == ";" {
		anchor++
	}
	tail := f.root.Children()[anchor+1:]
	for _, n := range tail {
		f.root.RemoveChild(n)
	}
	for _, n := range append(nodes, tail...) {
		f.root.AddChild(n)
	}
}

func (f *File) AddClass(c *Class) {
	f.root.AddChild(c.cls)
}

// Class returns the class with the given name, or nil.
func (f *File) Class(name string) *Class {
	if n, ok := ast.FindNamed(f.root, ast.KindClass, name).(*ast.Class); ok {
		return NewClass(n)
	}
	return nil
}

func (f *File) Classes() []*Class {
	var out []*Class
	for _, n := range ast.ChildrenOfKind(f.root, ast.KindClass) {
		out = append(out, NewClass(n.(*ast.Class)))
	}
	return out
}

func (f *File) RemoveClass(name string) bool {
	c := f.Class(name)
	if c == nil {
		return false
	}
	return f.root.RemoveChild(c.cls)
}
