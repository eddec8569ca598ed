package parser

import "strings"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenOpenTag
	TokenCloseTag
	TokenInlineHTML
	TokenComment
	TokenDocComment

	// Literals and names
	TokenVariable
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenStringLiteral

	// Keywords
	TokenAbstract
	TokenArray
	TokenAs
	TokenClass
	TokenConst
	TokenEcho
	TokenElse
	TokenElseif
	TokenExtends
	TokenFinal
	TokenFor
	TokenForeach
	TokenFunction
	TokenIf
	TokenImplements
	TokenInterface
	TokenNamespace
	TokenNew
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReturn
	TokenStatic
	TokenTrait
	TokenUse
	TokenVar
	TokenWhile

	// Punctuation
	TokenSemicolon
	TokenComma
	TokenAssign
	TokenColon
	TokenDoubleColon
	TokenAmp
	TokenEllipsis
	TokenQuestion
	TokenOperator

	// Scope delimiters. The lexer reports brackets as TokenOperator; the
	// TokenStream remaps them to these kinds.
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenWhitespace:    "Whitespace",
	TokenOpenTag:       "OpenTag",
	TokenCloseTag:      "CloseTag",
	TokenInlineHTML:    "InlineHTML",
	TokenComment:       "Comment",
	TokenDocComment:    "DocComment",
	TokenVariable:      "Variable",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenAbstract:      "abstract",
	TokenArray:         "array",
	TokenAs:            "as",
	TokenClass:         "class",
	TokenConst:         "const",
	TokenEcho:          "echo",
	TokenElse:          "else",
	TokenElseif:        "elseif",
	TokenExtends:       "extends",
	TokenFinal:         "final",
	TokenFor:           "for",
	TokenForeach:       "foreach",
	TokenFunction:      "function",
	TokenIf:            "if",
	TokenImplements:    "implements",
	TokenInterface:     "interface",
	TokenNamespace:     "namespace",
	TokenNew:           "new",
	TokenPrivate:       "private",
	TokenProtected:     "protected",
	TokenPublic:        "public",
	TokenReturn:        "return",
	TokenStatic:        "static",
	TokenTrait:         "trait",
	TokenUse:           "use",
	TokenVar:           "var",
	TokenWhile:         "while",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenAssign:        "=",
	TokenColon:         ":",
	TokenDoubleColon:   "::",
	TokenAmp:           "&",
	TokenEllipsis:      "...",
	TokenQuestion:      "?",
	TokenOperator:      "Operator",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsModifier reports whether k is a keyword that the parser buffers as a
// modifier attribute.
func (k TokenKind) IsModifier() bool {
	switch k {
	case TokenPublic, TokenPrivate, TokenProtected, TokenVar,
		TokenStatic, TokenAbstract, TokenFinal:
		return true
	}
	return false
}

// IsWordLike reports whether tokens of kind k need a separating space when
// written next to each other.
func (k TokenKind) IsWordLike() bool {
	switch k {
	case TokenVariable, TokenIdent, TokenIntLiteral, TokenFloatLiteral:
		return true
	}
	_, keyword := keywordKinds[k]
	return keyword
}

type Token struct {
	Kind    TokenKind
	Literal string
	// Line is 1-based. Tokens synthesized outside the lexer carry 0.
	Line int
}

func (t Token) String() string {
	return t.Kind.String() + " " + t.Literal
}

var keywords = map[string]TokenKind{
	"abstract":   TokenAbstract,
	"array":      TokenArray,
	"as":         TokenAs,
	"class":      TokenClass,
	"const":      TokenConst,
	"echo":       TokenEcho,
	"else":       TokenElse,
	"elseif":     TokenElseif,
	"extends":    TokenExtends,
	"final":      TokenFinal,
	"for":        TokenFor,
	"foreach":    TokenForeach,
	"function":   TokenFunction,
	"if":         TokenIf,
	"implements": TokenImplements,
	"interface":  TokenInterface,
	"namespace":  TokenNamespace,
	"new":        TokenNew,
	"private":    TokenPrivate,
	"protected":  TokenProtected,
	"public":     TokenPublic,
	"return":     TokenReturn,
	"static":     TokenStatic,
	"trait":      TokenTrait,
	"use":        TokenUse,
	"var":        TokenVar,
	"while":      TokenWhile,
}

var keywordKinds = func() map[TokenKind]struct{} {
	m := make(map[TokenKind]struct{}, len(keywords))
	for _, k := range keywords {
		m[k] = struct{}{}
	}
	return m
}()

// LookupKeyword maps an identifier to its keyword kind. PHP keywords are
// case-insensitive.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[strings.ToLower(ident)]; ok {
		return kind
	}
	return TokenIdent
}
