package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindRoot, "Root"},
		{KindNamespace, "Namespace"},
		{KindImport, "Import"},
		{KindClass, "Class"},
		{KindFunction, "Function"},
		{KindVariable, "Variable"},
		{KindIf, "If"},
		{KindElseIf, "ElseIf"},
		{KindElse, "Else"},
		{KindFor, "For"},
		{KindForeach, "Foreach"},
		{KindWhile, "While"},
		{KindToken, "Token"},
		{Kind(999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestRemoveChildKeepsOrder(t *testing.T) {
	parent := NewClass(1, "Foo")
	a := NewToken(1, "a")
	b := NewToken(1, "b")
	c := NewToken(1, "c")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)

	require.True(t, parent.RemoveChild(b))
	assert.Equal(t, []Node{a, c}, parent.Children())
	assert.Nil(t, b.Parent())
	assert.Equal(t, Node(parent), a.Parent())
}

func TestRemoveChildNoMatch(t *testing.T) {
	parent := NewClass(1, "Foo")
	a := NewToken(1, "a")
	parent.AddChild(a)

	assert.False(t, parent.RemoveChild(NewToken(1, "a")))
	assert.False(t, parent.RemoveChildAt(5))
	assert.False(t, parent.RemoveChildAt(-1))
	assert.Equal(t, 1, parent.NumChildren())
}

func TestInsertChildHead(t *testing.T) {
	root := NewRoot("a.php")
	cls := NewClass(3, "Foo")
	ns := NewNamespace(1, "App")
	root.AddChild(cls)
	root.InsertChild(ns, Head)

	assert.Equal(t, []Node{ns, cls}, root.Children())
}

func TestAddChildReparents(t *testing.T) {
	first := NewClass(1, "A")
	second := NewClass(2, "B")
	fn := NewFunction(1, "run")
	first.AddChild(fn)
	second.AddChild(fn)

	assert.Equal(t, 0, first.NumChildren())
	assert.Equal(t, 1, second.NumChildren())
	assert.Equal(t, Node(second), fn.Parent())
}

func TestChildrenIsCopy(t *testing.T) {
	cls := NewClass(1, "A")
	cls.AddChild(NewToken(1, "x"))
	children := cls.Children()
	children[0] = nil

	assert.NotNil(t, cls.ChildAt(0))
}

func TestRootHasNoParent(t *testing.T) {
	root := NewRoot("a.php")
	assert.Nil(t, root.Parent())
}

func TestAttributes(t *testing.T) {
	v := NewVariable(1, "items")
	pub := NewAttribute(ModifierPublic, 1)
	v.AddAttribute(pub)
	v.AddAttribute(NewAttribute(ModifierStatic, 1))

	assert.Equal(t, Node(v), pub.Owner())
	assert.True(t, v.HasAttribute(ModifierStatic))

	assert.False(t, v.RemoveAttribute(ModifierPrivate))
	require.True(t, v.RemoveAttribute(ModifierPublic))
	assert.Nil(t, pub.Owner())
	assert.False(t, v.HasAttribute(ModifierPublic))
	assert.Len(t, v.Attributes(), 1)

	assert.False(t, v.RemoveAttributeAt(3))
	assert.True(t, v.RemoveAttributeAt(0))
	assert.Empty(t, v.Attributes())
}

func TestParseModifier(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
		ok   bool
	}{
		{"public", ModifierPublic, true},
		{"PRIVATE", ModifierPrivate, true},
		{"protected", ModifierProtected, true},
		{"static", ModifierStatic, true},
		{"abstract", ModifierAbstract, true},
		{"final", ModifierFinal, true},
		{"var", ModifierPublic, true},
		{"readonly", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseModifier(tt.name)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseModifier(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestWalkAndFilters(t *testing.T) {
	root := NewRoot("a.php")
	cls := NewClass(1, "Foo")
	fn := NewFunction(2, "bar")
	v := NewVariable(3, "x")
	root.AddChild(cls)
	cls.AddChild(v)
	cls.AddChild(fn)
	fn.AddChild(NewToken(4, "return"))

	var kinds []Kind
	Walk(root, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return n.Kind() != KindFunction
	})
	assert.Equal(t, []Kind{KindRoot, KindClass, KindVariable, KindFunction}, kinds)

	assert.Equal(t, []Node{cls, v, fn}, Structural(root))
	assert.Equal(t, []Node{fn}, ChildrenOfKind(cls, KindFunction))
	assert.Equal(t, Node(v), FirstChildOfKind(cls, KindVariable))
	assert.Nil(t, FirstChildOfKind(cls, KindClass))
	assert.Equal(t, Named(fn), FindNamed(cls, KindFunction, "bar"))
	assert.Nil(t, FindNamed(cls, KindFunction, "baz"))
	assert.Equal(t, Node(cls), Enclosing(fn, KindClass))
	assert.Nil(t, Enclosing(cls, KindClass))
}
