// Package parser turns PHP source into the mutable tree of package ast.
//
// # Pipeline
//
//	source ──▶ Lexer ──▶ []Token ──▶ TokenStream ──▶ Parser ──▶ *ast.Root
//
// The lexer keeps every byte of input, whitespace and comments included.
// TokenStream hides whitespace and gives the parser a cursor that can step
// backwards, which is how single-token lookahead is done.
//
// # Accepted subset
//
// Namespaces, imports, classes, functions with typed and defaulted
// parameters, property declarations and the if/elseif/else/for/foreach/while
// constructs are modelled as nodes. Everything else becomes an opaque Token
// leaf attached to the innermost open scope, so the generated text keeps all
// statements the parser does not understand. grammar.ebnf describes the
// subset; Grammar verifies it.
//
// # Errors
//
// A missing name, a missing parameter list or body, a malformed implements
// list and an unbalanced closing brace abort the parse with a *SyntaxError.
// There is no recovery and no partial tree.
package parser
