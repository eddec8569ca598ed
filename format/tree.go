package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/phpgen/php/ast"
	"github.com/dhamidi/phpgen/php/parser"
)

// TreeEncoder prints one node per line, indented by depth.
type TreeEncoder struct {
	w      io.Writer
	indent string
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w, indent: "  "}
}

func (e *TreeEncoder) Encode(root *ast.Root) error {
	var sb strings.Builder
	e.writeNode(&sb, root, 0)
	_, err := io.WriteString(e.w, sb.String())
	return err
}

func (e *TreeEncoder) writeNode(sb *strings.Builder, n ast.Node, depth int) {
	sb.WriteString(strings.Repeat(e.indent, depth))
	sb.WriteString(n.Kind().String())
	if summary := nodeSummary(n); summary != "" {
		sb.WriteString(" ")
		sb.WriteString(summary)
	}
	if n.Line() > 0 {
		fmt.Fprintf(sb, " @%d", n.Line())
	}
	sb.WriteString("\n")
	for _, c := range n.Children() {
		e.writeNode(sb, c, depth+1)
	}
}

func nodeSummary(n ast.Node) string {
	var mods []string
	for _, a := range n.Attributes() {
		mods = append(mods, a.Modifier.String())
	}
	prefix := ""
	if len(mods) > 0 {
		prefix = "[" + strings.Join(mods, " ") + "] "
	}
	if n.DocComment() != "" {
		prefix += "(doc) "
	}
	switch n := n.(type) {
	case *ast.Root:
		return strconv.Quote(n.FileName)
	case *ast.Class, *ast.Function, *ast.Variable:
		return prefix + strings.TrimSpace(declarationHead(n))
	case *ast.Namespace, *ast.Import:
		return n.Generate()
	case ast.Conditional:
		return "(" + n.ConditionText() + ")"
	case *ast.Token:
		return strconv.Quote(n.Text())
	}
	return ""
}

// declarationHead renders a declaration without doc comment, modifiers or
// body.
func declarationHead(n any) string {
	switch n := n.(type) {
	case *ast.Class:
		head := "class " + n.Name()
		if n.Extends != "" {
			head += " extends " + n.Extends
		}
		if impl := n.Implements(); len(impl) > 0 {
			head += " implements " + strings.Join(impl, ", ")
		}
		return head
	case *ast.Function:
		params := n.Parameters()
		parts := make([]string, len(params))
		for i, p := range params {
			parts[i] = p.Generate()
		}
		head := "function " + n.Name() + "(" + strings.Join(parts, ", ") + ")"
		if n.ReturnType != "" {
			head += ": " + n.ReturnType
		}
		return head
	case *ast.Variable:
		head := n.Text()
		if n.Type != "" {
			head = n.Type + " " + head
		}
		if n.HasDefault {
			return head + " = " + n.Default
		}
		return head
	}
	return ""
}

// TokenEncoder lists tokens as line, kind and quoted literal.
type TokenEncoder struct {
	w          io.Writer
	whitespace bool
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

// ShowWhitespace includes whitespace tokens in the listing.
func (e *TokenEncoder) ShowWhitespace(show bool) {
	e.whitespace = show
}

func (e *TokenEncoder) Encode(tokens []parser.Token) error {
	var sb strings.Builder
	for _, tok := range tokens {
		if tok.Kind == parser.TokenWhitespace && !e.whitespace {
			continue
		}
		fmt.Fprintf(&sb, "%d\t%s\t%s\n", tok.Line, tok.Kind, strconv.Quote(tok.Literal))
	}
	_, err := io.WriteString(e.w, sb.String())
	return err
}
