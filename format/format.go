// Package format renders parsed sources for people and tools: a layout
// pass over generated text, a JSON tree dump, a symbol listing and a token
// listing.
package format

import "github.com/dhamidi/phpgen/php/ast"

// Encoder writes a parsed source unit.
type Encoder interface {
	Encode(root *ast.Root) error
}

var (
	_ Encoder = (*ASTJSONEncoder)(nil)
	_ Encoder = (*LineEncoder)(nil)
	_ Encoder = (*TreeEncoder)(nil)
)
