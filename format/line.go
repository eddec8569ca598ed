package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/phpgen/php/ast"
	"github.com/dhamidi/phpgen/php/reflection"
)

// LineEncoder lists the declarations of a source unit, one tab separated
// line each. Empty columns are written as "-".
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(root *ast.Root) error {
	text, err := e.MarshalText(root)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(root *ast.Root) ([]byte, error) {
	var sb strings.Builder
	file := reflection.NewFile(root)
	if ns := file.Namespace(); ns != "" {
		fmt.Fprintf(&sb, "namespace\t%s\n", ns)
	}
	for _, imp := range file.Imports() {
		fmt.Fprintf(&sb, "use\t%s\t%s\t%d\n", imp.Path, orDash(imp.Alias), imp.Line())
	}

	for _, n := range ast.Structural(root) {
		switch r := reflection.For(n).(type) {
		case *reflection.Class:
			fmt.Fprintf(&sb, "class\t%s\t%s\t%s\t%s\t%d\n",
				r.Name(),
				orDash(r.Extends()),
				orDash(strings.Join(r.Implements(), ",")),
				modifiersStr(r),
				r.Line(),
			)
		case *reflection.Function:
			fmt.Fprintf(&sb, "function\t%s\t%s\t%s\t%s\t%d\n",
				functionName(r),
				parametersStr(r.Parameters()),
				orDash(r.ReturnType()),
				modifiersStr(r),
				r.Line(),
			)
		case *reflection.Variable:
			def, _ := r.DefaultValue()
			fmt.Fprintf(&sb, "variable\t%s\t%s\t%s\t%d\n",
				variableName(r),
				orDash(def),
				modifiersStr(r),
				r.Line(),
			)
		}
	}

	return []byte(sb.String()), nil
}

func functionName(f *reflection.Function) string {
	name := f.Name()
	if name == "" {
		name = "{closure}"
	}
	if c := f.Class(); c != nil {
		return c.Name() + "::" + name
	}
	return name
}

func variableName(v *reflection.Variable) string {
	if c := v.Class(); c != nil {
		return c.Name() + "::$" + v.Name()
	}
	return "$" + v.Name()
}

func modifiersStr(r reflection.Reflection) string {
	return orDash(strings.Join(r.Modifiers(), ","))
}

func parametersStr(params []ast.Param) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Generate()
	}
	return strings.Join(parts, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
