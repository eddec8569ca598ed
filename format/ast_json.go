package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/phpgen/php/ast"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(root *ast.Root) error {
	text, err := e.MarshalText(root)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(node ast.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type astJSONNode struct {
	Kind       string         `json:"kind"`
	Line       int            `json:"line,omitempty"`
	Name       string         `json:"name,omitempty"`
	Text       string         `json:"text,omitempty"`
	Modifiers  []string       `json:"modifiers,omitempty"`
	DocComment string         `json:"docComment,omitempty"`
	Extends    string         `json:"extends,omitempty"`
	Implements []string       `json:"implements,omitempty"`
	Parameters []astJSONParam `json:"parameters,omitempty"`
	ReturnType string         `json:"returnType,omitempty"`
	Type       string         `json:"type,omitempty"`
	Default    *string        `json:"default,omitempty"`
	Condition  string         `json:"condition,omitempty"`
	ImportType string         `json:"importType,omitempty"`
	Role       string         `json:"role,omitempty"`
	Children   []*astJSONNode `json:"children,omitempty"`
}

type astJSONParam struct {
	Name     string  `json:"name"`
	Type     string  `json:"type,omitempty"`
	Default  *string `json:"default,omitempty"`
	ByRef    bool    `json:"byRef,omitempty"`
	Variadic bool    `json:"variadic,omitempty"`
}

func nodeToJSON(n ast.Node) *astJSONNode {
	jn := &astJSONNode{
		Kind:       n.Kind().String(),
		Line:       n.Line(),
		DocComment: n.DocComment(),
	}
	for _, a := range n.Attributes() {
		jn.Modifiers = append(jn.Modifiers, a.Modifier.String())
	}

	switch n := n.(type) {
	case *ast.Root:
		jn.Name = n.FileName
	case *ast.Namespace:
		jn.Name = n.Path
	case *ast.Import:
		jn.Name = n.Path
		jn.Text = n.Alias
		jn.ImportType = n.Type
	case *ast.Class:
		jn.Name = n.Name()
		jn.Extends = n.Extends
		jn.Implements = n.Implements()
	case *ast.Function:
		jn.Name = n.Name()
		jn.ReturnType = n.ReturnType
		for _, p := range n.Parameters() {
			jp := astJSONParam{Name: p.Name, Type: p.Type, ByRef: p.ByRef, Variadic: p.Variadic}
			if p.HasDefault {
				def := p.Default
				jp.Default = &def
			}
			jn.Parameters = append(jn.Parameters, jp)
		}
	case *ast.Variable:
		jn.Name = n.Name()
		jn.Type = n.Type
		if n.HasDefault {
			def := n.Default
			jn.Default = &def
		}
	case ast.Conditional:
		jn.Condition = n.ConditionText()
	case *ast.Token:
		jn.Text = n.Text()
		if n.Role != ast.RoleCode {
			jn.Role = n.Role.String()
		}
	}

	if n.NumChildren() > 0 {
		children := n.Children()
		jn.Children = make([]*astJSONNode, len(children))
		for i, child := range children {
			jn.Children[i] = nodeToJSON(child)
		}
	}

	return jn
}
