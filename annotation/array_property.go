package annotation

import (
	"fmt"

	"github.com/dhamidi/phpgen/php/ast"
	"github.com/dhamidi/phpgen/php/reflection"
)

const ArrayPropertyName = "ArrayProperty"

// ArrayProperty turns an array property into the backing store of PHP's
// magic property accessors. It is written either on a class, naming the
// property:
//
//	/** @ArrayProperty("items") */
//	class Bag { public $items = array(); }
//
// or without arguments on the property itself. The property is demoted from
// public to protected and __get, __set, __isset and __unset are added to the
// class. Accessors the class already declares are kept as they are.
type ArrayProperty struct {
	class *reflection.Class
	field string
}

func NewArrayProperty(target reflection.Reflection, args []Value) (Annotation, error) {
	switch t := target.(type) {
	case *reflection.Class:
		if len(args) != 1 {
			return nil, fmt.Errorf("expected the property name as the only argument, got %d arguments", len(args))
		}
		name, ok := args[0].(String)
		if !ok {
			return nil, fmt.Errorf("property name must be a string, got %s", args[0])
		}
		return &ArrayProperty{class: t, field: string(name)}, nil
	case *reflection.Variable:
		if len(args) != 0 {
			return nil, fmt.Errorf("takes no arguments on a property, got %d", len(args))
		}
		cls := t.Class()
		if cls == nil {
			return nil, fmt.Errorf("$%s is not a class property", t.Name())
		}
		return &ArrayProperty{class: cls, field: t.Name()}, nil
	}
	return nil, fmt.Errorf("cannot annotate a %s", target.Kind())
}

type accessor struct {
	name   string
	params []string
	body   string
}

func (a *ArrayProperty) accessors() []accessor {
	ref := "$this->" + a.field + "[$property]"
	return []accessor{
		{"__get", []string{"property"}, "return " + ref + ";"},
		{"__set", []string{"property", "value"}, ref + " = $value;"},
		{"__isset", []string{"property"}, "return isset(" + ref + ");"},
		{"__unset", []string{"property"}, "unset(" + ref + ");"},
	}
}

func (a *ArrayProperty) Apply() error {
	v := a.class.Variable(a.field)
	if v == nil {
		return fmt.Errorf("class %s has no property $%s", a.class.Name(), a.field)
	}
	if v.HasModifier("public") {
		v.RemoveModifier("public")
		if err := v.AddModifier("protected"); err != nil {
			return err
		}
	}

	for _, acc := range a.accessors() {
		if a.class.Function(acc.name) != nil {
			continue
		}
		fn := reflection.NewFunction(ast.NewFunction(0, acc.name))
		if err := fn.AddModifier("public"); err != nil {
			return err
		}
		for _, p := range acc.params {
			fn.AddParameter(p)
		}
		fn.AddStatement(acc.body)
		a.class.AddFunction(fn)
	}
	return nil
}
