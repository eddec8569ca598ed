package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		node func() Node
		want string
	}{
		{
			name: "root",
			node: func() Node {
				r := NewRoot("a.php")
				r.AddChild(NewNamespace(1, `App\Model`))
				r.AddChild(NewToken(1, ";"))
				return r
			},
			want: "<?php\n\nnamespace App\\Model ; \n",
		},
		{
			name: "import with alias",
			node: func() Node { return NewImport(1, `App\Foo`, "Bar") },
			want: `use App\Foo as Bar`,
		},
		{
			name: "class",
			node: func() Node {
				c := NewClass(1, "Foo")
				c.AddAttribute(NewAttribute(ModifierFinal, 1))
				c.Extends = "Base"
				c.AddImplements("Countable")
				c.AddImplements("ArrayAccess")
				c.AddImplements("Countable")
				v := NewVariable(2, "$items")
				v.AddAttribute(NewAttribute(ModifierPublic, 2))
				v.SetDefault("array ( )")
				c.AddChild(v)
				c.AddChild(NewToken(2, ";"))
				return c
			},
			want: "final class Foo extends Base implements Countable, ArrayAccess { public $items = array ( ) ; }",
		},
		{
			name: "function",
			node: func() Node {
				f := NewFunction(1, "get")
				f.AddParameter(Param{Name: "$b"})
				f.AddParameter(Param{Name: "$a", Type: "int", Default: "1", HasDefault: true})
				f.ReturnType = "?int"
				return f
			},
			want: "function get ($b, int $a = 1): ?int { }",
		},
		{
			name: "abstract function",
			node: func() Node {
				f := NewFunction(1, "run")
				f.AddAttribute(NewAttribute(ModifierAbstract, 1))
				f.AddAttribute(NewAttribute(ModifierProtected, 1))
				f.HasBody = false
				return f
			},
			want: "abstract protected function run ();",
		},
		{
			name: "closure",
			node: func() Node {
				f := NewFunction(1, "")
				f.AddParameter(Param{Name: "$rest", Variadic: true})
				f.Uses = []string{"$x", "&$y"}
				f.AddChild(NewToken(1, "return"))
				f.AddChild(NewToken(1, "$x"))
				f.AddChild(NewToken(1, ";"))
				return f
			},
			want: "function (...$rest) use ($x, &$y) { return $x ; }",
		},
		{
			name: "by reference",
			node: func() Node {
				f := NewFunction(1, "get")
				f.ByRef = true
				f.AddParameter(Param{Name: "$v", ByRef: true, Type: "array"})
				return f
			},
			want: "function &get (array &$v) { }",
		},
		{
			name: "variable with doc comment",
			node: func() Node {
				v := NewVariable(1, "x")
				v.SetDocComment("/** @var int */")
				v.AddAttribute(NewAttribute(ModifierPrivate, 1))
				return v
			},
			want: "/** @var int */\nprivate $x",
		},
		{
			name: "braced if",
			node: func() Node {
				c := NewControl(KindIf, 1, "$a > 1")
				c.AddChild(NewToken(1, "return"))
				c.AddChild(NewToken(1, ";"))
				return c
			},
			want: "if ($a > 1) { return ; }",
		},
		{
			name: "implicit while",
			node: func() Node {
				c := NewControl(KindWhile, 1, "$i")
				c.Braced = false
				c.AddChild(NewToken(1, "$i--"))
				c.AddChild(NewToken(1, ";"))
				return c
			},
			want: "while ($i) $i-- ; ",
		},
		{
			name: "else",
			node: func() Node {
				e := NewElse(1)
				e.AddChild(NewToken(1, "x"))
				return e
			},
			want: "else { x }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node().Generate())
		})
	}
}

func TestParameterOrder(t *testing.T) {
	f := NewFunction(1, "f")
	f.AddParameter(Param{Name: "$c", Order: 2, HasOrder: true})
	f.AddParameter(Param{Name: "$a"})
	f.AddParameter(Param{Name: "$b", Order: 1, HasOrder: true})
	f.AddParameter(Param{Name: "$d"})
	f.AddParameter(Param{Name: "$e", Order: 1, HasOrder: true})

	var names []string
	for _, p := range f.Parameters() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"$b", "$e", "$c", "$a", "$d"}, names)
	assert.Equal(t, "function f ($b, $e, $c, $a, $d) { }", f.Generate())
}

func TestParameterReplaceAndRemove(t *testing.T) {
	f := NewFunction(1, "f")
	f.AddParameter(Param{Name: "$a"})
	f.AddParameter(Param{Name: "$b"})
	f.AddParameter(Param{Name: "$a", Default: "null", HasDefault: true})

	assert.Equal(t, 2, f.NumParameters())
	p, ok := f.Parameter("$a")
	assert.True(t, ok)
	assert.Equal(t, "null", p.Default)

	assert.False(t, f.RemoveParameter("$zzz"))
	assert.True(t, f.RemoveParameter("$a"))
	_, ok = f.Parameter("$a")
	assert.False(t, ok)
	assert.Equal(t, 1, f.NumParameters())
}

func TestVariableName(t *testing.T) {
	v := NewVariable(1, "$items")
	assert.Equal(t, "items", v.Name())
	assert.Equal(t, "$items", v.Text())
	v.SetName("$other")
	assert.Equal(t, "other", v.Name())
	v.SetName("plain")
	assert.Equal(t, "$plain", v.Text())
}

func TestSetNameAnonymous(t *testing.T) {
	f := NewFunction(1, "")
	assert.True(t, f.Anonymous)
	f.SetName("named")
	assert.False(t, f.Anonymous)
	assert.Equal(t, "function named () { }", f.Generate())
}
