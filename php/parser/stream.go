package parser

// specialStrings maps single-character scope delimiters to the kinds the
// parser matches on.
var specialStrings = map[string]TokenKind{
	"{": TokenLBrace,
	"}": TokenRBrace,
	"(": TokenLParen,
	")": TokenRParen,
}

// TokenStream is a bidirectional cursor over the token list of one source
// unit. The cursor starts before the first token. Whitespace is skipped in
// both directions.
type TokenStream struct {
	tokens []Token
	index  int
}

func NewTokenStream(tokens []Token) *TokenStream {
	return &TokenStream{tokens: tokens, index: -1}
}

func (s *TokenStream) Len() int {
	return len(s.tokens)
}

// Next advances to the next significant token. It reports false once the
// end of the stream is reached.
func (s *TokenStream) Next() (Token, bool) {
	for s.index < len(s.tokens)-1 {
		s.index++
		tok := s.tokens[s.index]
		if tok.Kind == TokenWhitespace {
			continue
		}
		return s.remap(tok), true
	}
	s.index = len(s.tokens)
	return Token{Kind: TokenEOF, Line: s.CurrentLine()}, false
}

// Previous steps back to the previous significant token. It reports false
// when the cursor moves before the first token.
func (s *TokenStream) Previous() (Token, bool) {
	for s.index > 0 {
		s.index--
		tok := s.tokens[s.index]
		if tok.Kind == TokenWhitespace {
			continue
		}
		return s.remap(tok), true
	}
	s.index = -1
	return Token{Kind: TokenEOF}, false
}

// Peek returns the next significant token without moving the cursor.
func (s *TokenStream) Peek() (Token, bool) {
	for i := s.index + 1; i < len(s.tokens); i++ {
		if s.tokens[i].Kind != TokenWhitespace {
			return s.remap(s.tokens[i]), true
		}
	}
	return Token{Kind: TokenEOF}, false
}

// CollectUntil consumes tokens up to and including the first token whose
// kind is one of stop. The stop token is not part of the result.
func (s *TokenStream) CollectUntil(stop ...TokenKind) []Token {
	var collected []Token
	for {
		tok, ok := s.Next()
		if !ok || containsKind(stop, tok.Kind) {
			return collected
		}
		collected = append(collected, tok)
	}
}

// CollectUntilBalanced consumes tokens while tracking the nesting of open
// and close. It stops at the close that brings the depth back to zero and
// excludes it; nested pairs are kept. The cursor is expected to sit on the
// opening token, or just before the first token inside it.
func (s *TokenStream) CollectUntilBalanced(open, close string) []Token {
	var collected []Token
	depth := 1
	for {
		tok, ok := s.Next()
		if !ok {
			return collected
		}
		switch tok.Literal {
		case open:
			depth++
		case close:
			depth--
			if depth <= 0 {
				return collected
			}
		}
		collected = append(collected, tok)
	}
}

// SkipTo advances to the first token whose kind is one of stop and leaves
// the cursor just before it, so that the next call to Next returns it.
func (s *TokenStream) SkipTo(stop ...TokenKind) {
	for {
		tok, ok := s.Next()
		if !ok {
			return
		}
		if containsKind(stop, tok.Kind) {
			s.Previous()
			return
		}
	}
}

// Mark returns the cursor position for a later Reset.
func (s *TokenStream) Mark() int {
	return s.index
}

func (s *TokenStream) Reset(mark int) {
	s.index = mark
}

// CurrentLine returns the line of the nearest token at or before the cursor
// that carries a line number.
func (s *TokenStream) CurrentLine() int {
	i := s.index
	if i >= len(s.tokens) {
		i = len(s.tokens) - 1
	}
	for ; i >= 0; i-- {
		if s.tokens[i].Line > 0 {
			return s.tokens[i].Line
		}
	}
	return 0
}

func (s *TokenStream) remap(tok Token) Token {
	if kind, ok := specialStrings[tok.Literal]; ok && tok.Kind == TokenOperator {
		tok.Kind = kind
	}
	if tok.Line == 0 {
		tok.Line = s.CurrentLine()
	}
	return tok
}

func containsKind(kinds []TokenKind, kind TokenKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
