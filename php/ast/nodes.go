package ast

import (
	"sort"
	"strings"
)

// Root is the top of a parsed source unit.
type Root struct {
	base
	FileName string
}

func NewRoot(fileName string) *Root {
	r := &Root{FileName: fileName}
	r.init(r, KindRoot, 0, "")
	return r
}

// Parent always returns nil for the root.
func (r *Root) Parent() Node { return nil }

func (r *Root) Generate() string {
	var sb strings.Builder
	sb.WriteString("<?php\n\n")
	r.writeChildren(&sb)
	if last, ok := r.ChildAt(r.NumChildren() - 1).(*Token); !ok || !last.Role.Verbatim() {
		sb.WriteString("\n")
	}
	return sb.String()
}

type Namespace struct {
	base
	Path string
}

func NewNamespace(line int, path string) *Namespace {
	n := &Namespace{Path: path}
	n.init(n, KindNamespace, line, "namespace")
	return n
}

func (n *Namespace) Generate() string {
	return "namespace " + n.Path
}

type Import struct {
	base
	// Type is "function" or "const" for those import forms, empty for
	// classes and namespaces.
	Type  string
	Path  string
	Alias string
}

func NewImport(line int, path, alias string) *Import {
	n := &Import{Path: path, Alias: alias}
	n.init(n, KindImport, line, "use")
	return n
}

func (n *Import) Generate() string {
	head := "use "
	if n.Type != "" {
		head += n.Type + " "
	}
	if n.Alias != "" {
		return head + n.Path + " as " + n.Alias
	}
	return head + n.Path
}

type Class struct {
	base
	name       string
	Extends    string
	implements []string
}

func NewClass(line int, name string) *Class {
	c := &Class{name: name}
	c.init(c, KindClass, line, "class")
	return c
}

func (c *Class) Name() string        { return c.name }
func (c *Class) SetName(name string) { c.name = name }

func (c *Class) Implements() []string {
	out := make([]string, len(c.implements))
	copy(out, c.implements)
	return out
}

// AddImplements appends an interface name; names already present are kept
// once.
func (c *Class) AddImplements(name string) {
	for _, n := range c.implements {
		if n == name {
			return
		}
	}
	c.implements = append(c.implements, name)
}

func (c *Class) RemoveImplements(name string) bool {
	for i, n := range c.implements {
		if n == name {
			c.implements = append(c.implements[:i:i], c.implements[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Class) Generate() string {
	var sb strings.Builder
	c.writeDocComment(&sb)
	c.writeAttributes(&sb)
	sb.WriteString("class ")
	sb.WriteString(c.name)
	if c.Extends != "" {
		sb.WriteString(" extends ")
		sb.WriteString(c.Extends)
	}
	if len(c.implements) > 0 {
		sb.WriteString(" implements ")
		sb.WriteString(strings.Join(c.implements, ", "))
	}
	c.writeBody(&sb, true)
	return sb.String()
}

// Param is one function parameter. Name includes the leading '$'.
type Param struct {
	Name       string
	Type       string
	Default    string
	HasDefault bool
	ByRef      bool
	Variadic   bool
	// Order is the sort key used at generation time. Parameters without
	// an order sort after ordered ones, in insertion order.
	Order    int
	HasOrder bool
}

func (p Param) Generate() string {
	var sb strings.Builder
	if p.Type != "" {
		sb.WriteString(p.Type)
		sb.WriteString(" ")
	}
	if p.ByRef {
		sb.WriteString("&")
	}
	if p.Variadic {
		sb.WriteString("...")
	}
	sb.WriteString(p.Name)
	if p.HasDefault {
		sb.WriteString(" = ")
		sb.WriteString(p.Default)
	}
	return sb.String()
}

type Function struct {
	base
	name       string
	Anonymous  bool
	ByRef      bool
	ReturnType string
	// Uses lists the variables captured by a closure's use clause.
	Uses []string
	// Abstract and interface methods have no body and end in ';'.
	HasBody bool
	params  []Param
}

func NewFunction(line int, name string) *Function {
	f := &Function{name: name, Anonymous: name == "", HasBody: true}
	f.init(f, KindFunction, line, "function")
	return f
}

func (f *Function) Name() string { return f.name }

func (f *Function) SetName(name string) {
	f.name = name
	f.Anonymous = name == ""
}

// AddParameter adds p, replacing an existing parameter of the same name in
// place.
func (f *Function) AddParameter(p Param) {
	for i := range f.params {
		if f.params[i].Name == p.Name {
			f.params[i] = p
			return
		}
	}
	f.params = append(f.params, p)
}

// RemoveParameter is a no-op when no parameter has the given name.
func (f *Function) RemoveParameter(name string) bool {
	for i := range f.params {
		if f.params[i].Name == name {
			f.params = append(f.params[:i:i], f.params[i+1:]...)
			return true
		}
	}
	return false
}

func (f *Function) Parameter(name string) (Param, bool) {
	for _, p := range f.params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

func (f *Function) NumParameters() int {
	return len(f.params)
}

// Parameters returns the parameters in generation order: ascending order
// key, ties and unordered parameters in insertion order.
func (f *Function) Parameters() []Param {
	out := make([]Param, len(f.params))
	copy(out, f.params)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HasOrder != b.HasOrder {
			return a.HasOrder
		}
		return a.HasOrder && a.Order < b.Order
	})
	return out
}

func (f *Function) Generate() string {
	var sb strings.Builder
	f.writeDocComment(&sb)
	f.writeAttributes(&sb)
	sb.WriteString("function")
	if f.ByRef {
		sb.WriteString(" &")
	}
	if !f.Anonymous {
		if !f.ByRef {
			sb.WriteString(" ")
		}
		sb.WriteString(f.name)
	}
	sb.WriteString(" (")
	for i, p := range f.Parameters() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Generate())
	}
	sb.WriteString(")")
	if len(f.Uses) > 0 {
		sb.WriteString(" use (")
		sb.WriteString(strings.Join(f.Uses, ", "))
		sb.WriteString(")")
	}
	if f.ReturnType != "" {
		sb.WriteString(": ")
		sb.WriteString(f.ReturnType)
	}
	if !f.HasBody {
		sb.WriteString(";")
		return sb.String()
	}
	f.writeBody(&sb, true)
	return sb.String()
}

// Variable is a variable declaration at statement position, typically a
// class property. Text holds the variable reference including '$'.
type Variable struct {
	base
	// Type is the declared type of a typed property, such as "?int".
	Type       string
	Default    string
	HasDefault bool
}

func NewVariable(line int, ref string) *Variable {
	if !strings.HasPrefix(ref, "$") {
		ref = "$" + ref
	}
	v := &Variable{}
	v.init(v, KindVariable, line, ref)
	return v
}

// Name returns the variable name without '$'.
func (v *Variable) Name() string {
	return strings.TrimPrefix(v.text, "$")
}

func (v *Variable) SetName(name string) {
	v.text = "$" + strings.TrimPrefix(name, "$")
}

func (v *Variable) SetDefault(value string) {
	v.Default = value
	v.HasDefault = true
}

func (v *Variable) ClearDefault() {
	v.Default = ""
	v.HasDefault = false
}

func (v *Variable) Generate() string {
	var sb strings.Builder
	v.writeDocComment(&sb)
	v.writeAttributes(&sb)
	if v.Type != "" {
		sb.WriteString(v.Type)
		sb.WriteString(" ")
	}
	sb.WriteString(v.text)
	if v.HasDefault {
		sb.WriteString(" = ")
		sb.WriteString(v.Default)
	}
	return sb.String()
}

// Control is an if, elseif, for, foreach or while construct.
type Control struct {
	base
	Condition string
	// Braced is false when the body is a single statement without braces.
	Braced bool
}

var controlKeywords = map[Kind]string{
	KindIf:      "if",
	KindElseIf:  "elseif",
	KindFor:     "for",
	KindForeach: "foreach",
	KindWhile:   "while",
}

// NewControl creates a control construct. kind must be one of KindIf,
// KindElseIf, KindFor, KindForeach or KindWhile.
func NewControl(kind Kind, line int, condition string) *Control {
	c := &Control{Condition: condition, Braced: true}
	c.init(c, kind, line, controlKeywords[kind])
	return c
}

func (c *Control) Generate() string {
	var sb strings.Builder
	sb.WriteString(c.text)
	sb.WriteString(" (")
	sb.WriteString(c.Condition)
	sb.WriteString(")")
	c.writeBody(&sb, c.Braced)
	return sb.String()
}

type Else struct {
	base
	Braced bool
}

func NewElse(line int) *Else {
	e := &Else{Braced: true}
	e.init(e, KindElse, line, "else")
	return e
}

func (e *Else) Generate() string {
	var sb strings.Builder
	sb.WriteString("else")
	e.writeBody(&sb, e.Braced)
	return sb.String()
}

// Token is an opaque leaf holding verbatim source text.
// TokenRole tells code tokens apart from the text around PHP tags, which
// is output as it stands.
type TokenRole int

const (
	RoleCode TokenRole = iota
	RoleCloseTag
	RoleInlineHTML
)

var tokenRoleNames = map[TokenRole]string{
	RoleCode:       "code",
	RoleCloseTag:   "closeTag",
	RoleInlineHTML: "inlineHTML",
}

func (r TokenRole) String() string {
	if name, ok := tokenRoleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Verbatim reports whether no separator may follow the token.
func (r TokenRole) Verbatim() bool {
	return r == RoleCloseTag || r == RoleInlineHTML
}

type Token struct {
	base
	Role TokenRole
}

func NewToken(line int, text string) *Token {
	t := &Token{}
	t.init(t, KindToken, line, text)
	return t
}

func (t *Token) Generate() string {
	return t.text
}
