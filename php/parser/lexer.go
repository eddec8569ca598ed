package parser

type Lexer struct {
	input []byte
	pos   int
	line  int
	inPHP bool
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
	}
}

// Tokenize lexes src completely. The returned slice keeps whitespace and
// comment tokens and does not include the trailing EOF token.
func Tokenize(src []byte) []Token {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) Line() int {
	return l.line
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) hasPrefix(s string) bool {
	if l.pos+len(s) > len(l.input) {
		return false
	}
	return string(l.input[l.pos:l.pos+len(s)]) == s
}

func (l *Lexer) hasPrefixFold(s string) bool {
	if l.pos+len(s) > len(l.input) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if lower(l.input[l.pos+i]) != s[i] {
			return false
		}
	}
	return true
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Line: l.line}
	}
	if !l.inPHP {
		return l.scanInlineHTML()
	}

	start, line := l.pos, l.line
	ch := l.peek()

	if ch == '?' && l.peekN(1) == '>' {
		l.advanceN(2)
		if l.peek() == '\n' {
			l.advance()
		} else if l.peek() == '\r' && l.peekN(1) == '\n' {
			l.advanceN(2)
		}
		l.inPHP = false
		return l.token(TokenCloseTag, start, line)
	}

	if isSpace(ch) {
		for isSpace(l.peek()) {
			l.advance()
		}
		return l.token(TokenWhitespace, start, line)
	}

	if ch == '#' || (ch == '/' && l.peekN(1) == '/') {
		return l.scanLineComment(start, line)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(start, line)
	}

	if ch == '$' && isIdentStart(l.peekN(1)) {
		l.advance()
		for isIdentPart(l.peek()) {
			l.advance()
		}
		return l.token(TokenVariable, start, line)
	}

	if isIdentStart(ch) || (ch == '\\' && isIdentStart(l.peekN(1))) {
		return l.scanName(start, line)
	}

	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber(start, line)
	}

	switch ch {
	case '\'', '"', '`':
		return l.scanQuoted(ch, start, line)
	case '<':
		if l.hasPrefix("<<<") {
			if tok, ok := l.scanHeredoc(start, line); ok {
				return tok
			}
		}
	}

	return l.scanOperator(start, line)
}

func (l *Lexer) scanInlineHTML() Token {
	start, line := l.pos, l.line
	for l.pos < len(l.input) {
		if l.peek() == '<' && l.peekN(1) == '?' {
			if l.pos > start {
				return l.token(TokenInlineHTML, start, line)
			}
			switch {
			case l.hasPrefixFold("<?php"):
				l.advanceN(5)
			case l.hasPrefix("<?="):
				l.advanceN(3)
			default:
				l.advanceN(2)
			}
			l.inPHP = true
			return l.token(TokenOpenTag, start, line)
		}
		l.advance()
	}
	return l.token(TokenInlineHTML, start, line)
}

// scanLineComment keeps the terminating newline in the literal so that the
// comment can be written back verbatim without swallowing the next token.
// A close tag ends the comment early.
func (l *Lexer) scanLineComment(start, line int) Token {
	for l.pos < len(l.input) {
		if l.peek() == '\n' {
			l.advance()
			break
		}
		if l.peek() == '?' && l.peekN(1) == '>' {
			break
		}
		l.advance()
	}
	if l.input[l.pos-1] != '\n' {
		return Token{Kind: TokenComment, Literal: string(l.input[start:l.pos]) + "\n", Line: line}
	}
	return l.token(TokenComment, start, line)
}

func (l *Lexer) scanBlockComment(start, line int) Token {
	kind := TokenComment
	if l.peekN(2) == '*' && isSpace(l.peekN(3)) {
		kind = TokenDocComment
	}
	l.advanceN(2)
	for l.pos < len(l.input) {
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	return l.token(kind, start, line)
}

func (l *Lexer) scanName(start, line int) Token {
	for isIdentPart(l.peek()) || (l.peek() == '\\' && isIdentStart(l.peekN(1))) {
		l.advance()
	}
	literal := string(l.input[start:l.pos])
	return Token{Kind: LookupKeyword(literal), Literal: literal, Line: line}
}

func (l *Lexer) scanNumber(start, line int) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		return l.token(TokenIntLiteral, start, line)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		for l.peek() == '0' || l.peek() == '1' || l.peek() == '_' {
			l.advance()
		}
		return l.token(TokenIntLiteral, start, line)
	}

	isFloat := false
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if (l.peek() == 'e' || l.peek() == 'E') &&
		(isDigit(l.peekN(1)) || ((l.peekN(1) == '+' || l.peekN(1) == '-') && isDigit(l.peekN(2)))) {
		isFloat = true
		l.advanceN(2)
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if isFloat {
		return l.token(TokenFloatLiteral, start, line)
	}
	return l.token(TokenIntLiteral, start, line)
}

func (l *Lexer) scanQuoted(quote byte, start, line int) Token {
	l.advance()
	for l.pos < len(l.input) && l.peek() != quote {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == quote {
		l.advance()
	}
	return l.token(TokenStringLiteral, start, line)
}

// scanHeredoc scans <<<ID ... ID and <<<'ID' ... ID. It reports false if the
// opener is not followed by a valid label, leaving the lexer untouched.
func (l *Lexer) scanHeredoc(start, line int) (Token, bool) {
	i := l.pos + 3
	for i < len(l.input) && (l.input[i] == ' ' || l.input[i] == '\t') {
		i++
	}
	var quote byte
	if i < len(l.input) && (l.input[i] == '\'' || l.input[i] == '"') {
		quote = l.input[i]
		i++
	}
	labelStart := i
	for i < len(l.input) && isIdentPart(l.input[i]) {
		i++
	}
	if i == labelStart {
		return Token{}, false
	}
	label := string(l.input[labelStart:i])
	if quote != 0 {
		if i >= len(l.input) || l.input[i] != quote {
			return Token{}, false
		}
		i++
	}
	if i >= len(l.input) || (l.input[i] != '\n' && l.input[i] != '\r') {
		return Token{}, false
	}

	l.advanceN(i - l.pos)
	for l.pos < len(l.input) {
		ch := l.advance()
		if ch != '\n' {
			continue
		}
		for l.peek() == ' ' || l.peek() == '\t' {
			l.advance()
		}
		if l.hasPrefix(label) && !isIdentPart(l.peekN(len(label))) {
			l.advanceN(len(label))
			break
		}
	}
	return l.token(TokenStringLiteral, start, line), true
}

var operators = []string{
	"<<=", ">>=", "**=", "...", "<=>", "===", "!==", "??=", "?->",
	"::", "->", "=>", "==", "!=", "<>", "<=", ">=", "&&", "||", "++", "--",
	"+=", "-=", "*=", "/=", ".=", "%=", "&=", "|=", "^=", "<<", ">>", "??", "**",
}

func (l *Lexer) scanOperator(start, line int) Token {
	for _, op := range operators {
		if l.hasPrefix(op) {
			l.advanceN(len(op))
			switch op {
			case "::":
				return l.token(TokenDoubleColon, start, line)
			case "...":
				return l.token(TokenEllipsis, start, line)
			}
			return l.token(TokenOperator, start, line)
		}
	}

	ch := l.advance()
	switch ch {
	case ';':
		return l.token(TokenSemicolon, start, line)
	case ',':
		return l.token(TokenComma, start, line)
	case '=':
		return l.token(TokenAssign, start, line)
	case ':':
		return l.token(TokenColon, start, line)
	case '&':
		return l.token(TokenAmp, start, line)
	case '?':
		return l.token(TokenQuestion, start, line)
	case '(', ')', '{', '}', '[', ']', '+', '-', '*', '/', '%', '.',
		'<', '>', '!', '|', '^', '~', '@', '$':
		return l.token(TokenOperator, start, line)
	}
	return l.token(TokenError, start, line)
}

func (l *Lexer) token(kind TokenKind, start, line int) Token {
	return Token{
		Kind:    kind,
		Literal: string(l.input[start:l.pos]),
		Line:    line,
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// PHP treats every byte >= 0x80 as a name character.
func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func lower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}
