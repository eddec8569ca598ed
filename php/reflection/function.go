package reflection

import (
	"github.com/dhamidi/phpgen/php/ast"
)

type Function struct {
	base
	fn *ast.Function
}

func NewFunction(n *ast.Function) *Function {
	return &Function{base: base{n}, fn: n}
}

func (f *Function) Name() string        { return f.fn.Name() }
func (f *Function) SetName(name string) { f.fn.SetName(name) }

func (f *Function) ReturnType() string     { return f.fn.ReturnType }
func (f *Function) SetReturnType(t string) { f.fn.ReturnType = t }

// ParamOption configures a parameter added with AddParameter.
type ParamOption func(*ast.Param)

func WithDefault(value string) ParamOption {
	return func(p *ast.Param) {
		p.Default = value
		p.HasDefault = true
	}
}

func WithType(typ string) ParamOption {
	return func(p *ast.Param) {
		p.Type = typ
	}
}

// WithOrder sets the key parameters are sorted by when generated.
func WithOrder(order int) ParamOption {
	return func(p *ast.Param) {
		p.Order = order
		p.HasOrder = true
	}
}

func ByReference() ParamOption {
	return func(p *ast.Param) {
		p.ByRef = true
	}
}

func Variadic() ParamOption {
	return func(p *ast.Param) {
		p.Variadic = true
	}
}

// AddParameter adds or replaces the parameter called name. The '$' prefix
// is optional.
func (f *Function) AddParameter(name string, opts ...ParamOption) {
	p := ast.Param{Name: "$" + trimDollar(name)}
	for _, opt := range opts {
		opt(&p)
	}
	f.fn.AddParameter(p)
}

func (f *Function) Parameter(name string) (ast.Param, bool) {
	return f.fn.Parameter("$" + trimDollar(name))
}

// Parameters returns the parameters in generation order.
func (f *Function) Parameters() []ast.Param {
	return f.fn.Parameters()
}

func (f *Function) RemoveParameter(name string) bool {
	return f.fn.RemoveParameter("$" + trimDollar(name))
}

// AddStatement appends verbatim code to the function body.
func (f *Function) AddStatement(code string) {
	f.fn.AddChild(ast.NewToken(0, code))
}

func (f *Function) Body() []ast.Node {
	return f.fn.Children()
}

// Class returns the class declaring the function, or nil for free
// functions and closures outside a class.
func (f *Function) Class() *Class {
	if c, ok := f.fn.Parent().(*ast.Class); ok {
		return NewClass(c)
	}
	return nil
}
