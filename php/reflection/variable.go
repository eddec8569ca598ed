package reflection

import "github.com/dhamidi/phpgen/php/ast"

type Variable struct {
	base
	v *ast.Variable
}

func NewVariable(n *ast.Variable) *Variable {
	return &Variable{base: base{n}, v: n}
}

// Name returns the variable name without '$'.
func (v *Variable) Name() string        { return v.v.Name() }
func (v *Variable) SetName(name string) { v.v.SetName(name) }

// Type returns the declared property type, or "" when untyped.
func (v *Variable) Type() string       { return v.v.Type }
func (v *Variable) SetType(typ string) { v.v.Type = typ }

// DefaultValue returns the initializer text and whether there is one.
func (v *Variable) DefaultValue() (string, bool) {
	return v.v.Default, v.v.HasDefault
}

func (v *Variable) SetDefaultValue(value string) { v.v.SetDefault(value) }
func (v *Variable) ClearDefaultValue()           { v.v.ClearDefault() }

// Class returns the class declaring the variable as a property, or nil.
func (v *Variable) Class() *Class {
	if c, ok := v.v.Parent().(*ast.Class); ok {
		return NewClass(c)
	}
	return nil
}
