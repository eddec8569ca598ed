package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/phpgen/php/ast"
	"github.com/tliron/commonlog"
)

type Option func(*Parser)

// WithFile sets the file name recorded on the root node and in errors.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// Parser builds a mutable tree from PHP source. A Parser holds no state
// between calls and may be reused.
type Parser struct {
	file string
	log  commonlog.Logger
}

func New(opts ...Option) *Parser {
	p := &Parser{
		log: commonlog.GetLogger("phpgen.parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads path and parses it. The path becomes the file name unless
// one was set with WithFile.
func (p *Parser) ParseFile(path string) (*ast.Root, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	file := p.file
	if file == "" {
		file = path
	}
	return p.parse(src, file)
}

// Parse parses one source unit. On failure it returns a *SyntaxError and no
// tree.
func (p *Parser) Parse(src []byte) (*ast.Root, error) {
	return p.parse(src, p.file)
}

func (p *Parser) parse(src []byte, file string) (*ast.Root, error) {
	st := &state{
		file:      file,
		log:       p.log,
		ts:        NewTokenStream(Tokenize(src)),
		root:      ast.NewRoot(file),
		stmtStart: true,
	}
	st.stack = []frame{{node: st.root}}
	if err := st.run(); err != nil {
		return nil, err
	}
	return st.root, nil
}

// frame is one open scope. A nil node marks a brace pair that was not opened
// by a modelled construct; its contents belong to the enclosing node.
type frame struct {
	node     ast.Node
	implicit bool
}

type state struct {
	file string
	log  commonlog.Logger
	ts   *TokenStream
	root *ast.Root

	stack     []frame
	doc       *Token
	mods      []Token
	prev      Token
	stmtStart bool
	seenOpen  bool
}

func (s *state) run() error {
	for {
		tok, ok := s.ts.Next()
		if !ok {
			return s.finish()
		}
		if err := s.handle(tok); err != nil {
			return err
		}
		if tok.Kind != TokenComment {
			s.prev = tok
		}
	}
}

func (s *state) handle(tok Token) error {
	if s.afterMemberAccess() || (tok.Kind == TokenClass && s.prev.Kind == TokenNew) {
		s.flushPending()
		s.emit(tok)
		s.stmtStart = false
		return nil
	}

	switch tok.Kind {
	case TokenOpenTag:
		if !s.seenOpen {
			s.seenOpen = true
			s.stmtStart = true
			return nil
		}
		s.emit(tok)
		s.stmtStart = true
		return nil
	case TokenInlineHTML:
		if !s.seenOpen {
			s.log.Warningf("%s: dropping inline HTML before the first open tag", s.where(tok.Line))
			return nil
		}
		s.emit(tok)
		return nil
	case TokenComment:
		s.flushPending()
		s.emit(tok)
		return nil
	case TokenDocComment:
		if s.doc != nil {
			s.emit(*s.doc)
		}
		s.flushModifiers()
		d := tok
		s.doc = &d
		return nil
	case TokenLBrace:
		s.flushPending()
		s.emit(tok)
		s.stack = append(s.stack, frame{})
		s.stmtStart = true
		return nil
	case TokenRBrace:
		return s.closeScope(tok)
	case TokenSemicolon, TokenCloseTag:
		s.flushPending()
		s.emit(tok)
		s.closeImplicit()
		s.stmtStart = true
		return nil
	case TokenNamespace:
		return s.parseNamespace(tok)
	case TokenUse:
		if s.cursor() == ast.Node(s.root) && s.stmtStart && s.parseImport(tok) {
			return nil
		}
	case TokenClass:
		return s.parseClass(tok)
	case TokenFunction:
		return s.parseFunction(tok)
	case TokenVariable:
		if s.stmtStart || len(s.mods) > 0 || s.doc != nil {
			s.parseVariable(tok)
			return nil
		}
	case TokenIf, TokenElseif, TokenFor, TokenForeach, TokenWhile:
		return s.parseControl(tok)
	case TokenElse:
		return s.parseElse(tok)
	}

	if tok.Kind.IsModifier() && s.isModifier(tok) {
		s.mods = append(s.mods, tok)
		return nil
	}
	if len(s.mods) > 0 && isTypeToken(tok) && s.parseTypedVariable(tok) {
		return nil
	}

	s.flushPending()
	s.emit(tok)
	s.stmtStart = false
	return nil
}

// isModifier reports whether a modifier keyword starts a declaration. static
// only does so when another modifier, function or a variable follows, or a
// property type after other modifiers.
func (s *state) isModifier(tok Token) bool {
	if tok.Kind != TokenStatic {
		return true
	}
	next, ok := s.ts.Peek()
	if !ok {
		return false
	}
	if len(s.mods) > 0 && isTypeToken(next) {
		return true
	}
	return next.Kind.IsModifier() || next.Kind == TokenFunction || next.Kind == TokenVariable
}

func isTypeToken(tok Token) bool {
	switch tok.Kind {
	case TokenIdent, TokenArray, TokenQuestion, TokenAmp, TokenLParen, TokenRParen:
		return true
	case TokenOperator:
		return tok.Literal == "|"
	}
	return false
}

// parseTypedVariable reads a property declared with a type, as in
// `public ?int $x`. The stream is rewound when no variable follows the type.
func (s *state) parseTypedVariable(tok Token) bool {
	mark := s.ts.Mark()
	typ := []Token{tok}
	for {
		next, ok := s.ts.Peek()
		switch {
		case ok && next.Kind == TokenVariable:
			s.ts.Next()
			s.parseVariable(next).Type = joinCompact(typ)
			return true
		case ok && isTypeToken(next):
			s.ts.Next()
			typ = append(typ, next)
		default:
			s.ts.Reset(mark)
			return false
		}
	}
}

// afterMemberAccess reports whether the previous token was :: or ->, in which
// case keywords are plain member names.
func (s *state) afterMemberAccess() bool {
	switch s.prev.Kind {
	case TokenDoubleColon:
		return true
	case TokenOperator:
		return s.prev.Literal == "->" || s.prev.Literal == "?->"
	}
	return false
}

func (s *state) cursor() ast.Node {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].node != nil {
			return s.stack[i].node
		}
	}
	return s.root
}

func (s *state) emit(tok Token) {
	t := ast.NewToken(tok.Line, tok.Literal)
	switch tok.Kind {
	case TokenCloseTag:
		t.Role = ast.RoleCloseTag
	case TokenInlineHTML:
		t.Role = ast.RoleInlineHTML
	}
	s.cursor().AddChild(t)
}

func (s *state) open(n ast.Node, implicit bool) {
	s.cursor().AddChild(n)
	s.stack = append(s.stack, frame{node: n, implicit: implicit})
	s.stmtStart = true
}

// decorate moves the buffered doc comment and modifiers onto n.
func (s *state) decorate(n ast.Node) {
	if s.doc != nil {
		n.SetDocComment(s.doc.Literal)
		s.doc = nil
	}
	for _, m := range s.mods {
		mod, _ := ast.ParseModifier(m.Literal)
		n.AddAttribute(ast.NewAttribute(mod, m.Line))
	}
	s.mods = nil
}

func (s *state) flushPending() {
	if s.doc != nil {
		s.emit(*s.doc)
		s.doc = nil
	}
	s.flushModifiers()
}

func (s *state) flushModifiers() {
	for _, m := range s.mods {
		s.emit(m)
	}
	s.mods = nil
}

// closeImplicit ends every single-statement body on top of the stack.
func (s *state) closeImplicit() {
	for len(s.stack) > 1 && s.stack[len(s.stack)-1].implicit {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

func (s *state) closeScope(tok Token) error {
	s.flushPending()
	s.closeImplicit()
	if len(s.stack) == 1 {
		return s.errorf(tok, "unbalanced closing brace")
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	if top.node == nil {
		s.emit(tok)
	} else if top.node.Kind().IsControl() {
		// else if (...) { ... } ends the implicit else body as well
		s.closeImplicit()
	}
	s.stmtStart = true
	return nil
}

func (s *state) finish() error {
	s.flushPending()
	s.closeImplicit()
	if len(s.stack) > 1 {
		line := s.ts.CurrentLine()
		for i := len(s.stack) - 1; i > 0; i-- {
			if n := s.stack[i].node; n != nil {
				line = n.Line()
				break
			}
		}
		return &SyntaxError{
			File:    s.file,
			Line:    line,
			Message: "unexpected end of input, unclosed scope",
		}
	}
	return nil
}

func (s *state) parseNamespace(tok Token) error {
	s.flushPending()
	name, ok := s.ts.Next()
	if !ok || name.Kind != TokenIdent {
		return s.errorf(name, "expected namespace name")
	}
	s.root.AddChild(ast.NewNamespace(tok.Line, name.Literal))
	s.log.Debugf("%s: namespace %s", s.where(tok.Line), name.Literal)
	s.stmtStart = false
	return nil
}

// parseImport handles `use Name;` and `use Name as Alias;`, optionally
// with `function` or `const` after use. Other forms of use are left to the
// caller and the stream is rewound, except that a function or const keyword
// is kept as a plain token so it does not start a declaration.
func (s *state) parseImport(tok Token) bool {
	mark := s.ts.Mark()
	var typ *Token
	if next, ok := s.ts.Peek(); ok && (next.Kind == TokenFunction || next.Kind == TokenConst) {
		s.ts.Next()
		typ = &next
	}
	imp, ok := s.importClause(tok)
	if !ok {
		s.ts.Reset(mark)
		if typ == nil {
			return false
		}
		s.ts.Next()
		s.flushPending()
		s.emit(tok)
		s.emit(*typ)
		s.stmtStart = false
		return true
	}
	if typ != nil {
		imp.Type = strings.ToLower(typ.Literal)
	}
	s.flushPending()
	s.root.AddChild(imp)
	s.stmtStart = false
	return true
}

func (s *state) importClause(tok Token) (*ast.Import, bool) {
	path, ok := s.ts.Next()
	if !ok || path.Kind != TokenIdent {
		return nil, false
	}
	imp := ast.NewImport(tok.Line, path.Literal, "")
	next, _ := s.ts.Peek()
	if next.Kind == TokenAs {
		s.ts.Next()
		alias, ok := s.ts.Next()
		if !ok || alias.Kind != TokenIdent {
			return nil, false
		}
		imp.Alias = alias.Literal
		next, _ = s.ts.Peek()
	}
	if next.Kind != TokenSemicolon {
		return nil, false
	}
	return imp, true
}

func (s *state) parseClass(tok Token) error {
	name, ok := s.ts.Next()
	if !ok || name.Kind != TokenIdent {
		return s.errorf(name, "expected class name")
	}
	c := ast.NewClass(tok.Line, name.Literal)

	next, _ := s.ts.Peek()
	if next.Kind == TokenExtends {
		s.ts.Next()
		parent, ok := s.ts.Next()
		if !ok || parent.Kind != TokenIdent {
			return s.errorf(parent, "expected parent class name")
		}
		c.Extends = parent.Literal
		next, _ = s.ts.Peek()
	}
	if next.Kind == TokenImplements {
		s.ts.Next()
		for {
			iface, ok := s.ts.Next()
			if !ok || iface.Kind != TokenIdent {
				return s.errorf(iface, "malformed implements list")
			}
			c.AddImplements(iface.Literal)
			next, _ = s.ts.Peek()
			if next.Kind != TokenComma {
				break
			}
			s.ts.Next()
		}
	}

	brace, ok := s.ts.Next()
	if !ok || brace.Kind != TokenLBrace {
		return s.errorf(brace, "expected class body")
	}
	s.decorate(c)
	s.open(c, false)
	s.log.Debugf("%s: class %s", s.where(tok.Line), c.Name())
	return nil
}

func (s *state) parseFunction(tok Token) error {
	fn := ast.NewFunction(tok.Line, "")

	next, ok := s.ts.Next()
	if ok && next.Kind == TokenAmp {
		fn.ByRef = true
		next, ok = s.ts.Next()
	}
	switch {
	case !ok:
		return s.errorf(next, "expected function name")
	case next.Kind == TokenLParen:
	case next.Kind.IsWordLike() && next.Kind != TokenVariable:
		fn.SetName(next.Literal)
		next, ok = s.ts.Next()
		if !ok || next.Kind != TokenLParen {
			return s.errorf(next, "expected parameter list")
		}
	default:
		return s.errorf(next, "expected function name")
	}

	for i, seg := range splitTopLevel(s.ts.CollectUntilBalanced("(", ")")) {
		p, ok := parseParam(seg)
		if !ok {
			var at Token
			if len(seg) > 0 {
				at = seg[0]
			}
			return s.errorf(at, fmt.Sprintf("malformed parameter %d", i+1))
		}
		fn.AddParameter(p)
	}

	next, _ = s.ts.Peek()
	if next.Kind == TokenUse {
		s.ts.Next()
		if open, ok := s.ts.Next(); !ok || open.Kind != TokenLParen {
			return s.errorf(open, "expected closure use list")
		}
		for _, seg := range splitTopLevel(s.ts.CollectUntilBalanced("(", ")")) {
			fn.Uses = append(fn.Uses, joinCompact(seg))
		}
		next, _ = s.ts.Peek()
	}
	if next.Kind == TokenColon {
		s.ts.Next()
		var ret []Token
		for {
			t, ok := s.ts.Peek()
			if !ok || t.Kind == TokenLBrace || t.Kind == TokenSemicolon {
				break
			}
			s.ts.Next()
			ret = append(ret, t)
		}
		if len(ret) == 0 {
			return s.errorf(next, "expected return type")
		}
		fn.ReturnType = joinCompact(ret)
	}

	body, ok := s.ts.Next()
	switch {
	case ok && body.Kind == TokenLBrace:
		s.decorate(fn)
		s.open(fn, false)
	case ok && body.Kind == TokenSemicolon:
		fn.HasBody = false
		s.decorate(fn)
		s.cursor().AddChild(fn)
		s.stmtStart = true
	default:
		return s.errorf(body, "expected function body")
	}
	s.log.Debugf("%s: function %s", s.where(tok.Line), fn.Name())
	return nil
}

func parseParam(seg []Token) (ast.Param, bool) {
	var p ast.Param
	var typ []Token
	for i, t := range seg {
		switch {
		case p.Name == "" && t.Kind == TokenVariable:
			p.Name = t.Literal
		case p.Name == "" && t.Kind == TokenAmp:
			p.ByRef = true
		case p.Name == "" && t.Kind == TokenEllipsis:
			p.Variadic = true
		case p.Name == "":
			typ = append(typ, t)
		case t.Kind == TokenAssign:
			p.Default = joinTokens(seg[i+1:])
			p.HasDefault = true
			p.Type = joinCompact(typ)
			return p, true
		}
	}
	p.Type = joinCompact(typ)
	return p, p.Name != ""
}

func (s *state) parseVariable(tok Token) *ast.Variable {
	v := ast.NewVariable(tok.Line, tok.Literal)
	s.decorate(v)
	next, _ := s.ts.Peek()
	if next.Kind == TokenAssign {
		s.ts.Next()
		v.SetDefault(joinTokens(s.collectExpression()))
	}
	s.cursor().AddChild(v)
	s.stmtStart = false
	return v
}

// collectExpression consumes tokens up to a statement end at bracket depth
// zero and leaves the terminator in the stream.
func (s *state) collectExpression() []Token {
	var out []Token
	depth := 0
	for {
		t, ok := s.ts.Peek()
		if !ok {
			return out
		}
		switch t.Literal {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		}
		if depth < 0 || (depth == 0 && (t.Kind == TokenSemicolon || t.Kind == TokenCloseTag)) {
			return out
		}
		s.ts.Next()
		out = append(out, t)
	}
}

var controlKinds = map[TokenKind]ast.Kind{
	TokenIf:      ast.KindIf,
	TokenElseif:  ast.KindElseIf,
	TokenFor:     ast.KindFor,
	TokenForeach: ast.KindForeach,
	TokenWhile:   ast.KindWhile,
}

func (s *state) parseControl(tok Token) error {
	s.flushPending()
	open, ok := s.ts.Next()
	if !ok || open.Kind != TokenLParen {
		return s.errorf(open, "expected ( after "+strings.ToLower(tok.Literal))
	}
	cond := s.ts.CollectUntilBalanced("(", ")")
	c := ast.NewControl(controlKinds[tok.Kind], tok.Line, joinTokens(cond))
	braced, err := s.body()
	if err != nil {
		return err
	}
	c.Braced = braced
	s.open(c, !braced)
	return nil
}

func (s *state) parseElse(tok Token) error {
	s.flushPending()
	e := ast.NewElse(tok.Line)
	braced, err := s.body()
	if err != nil {
		return err
	}
	e.Braced = braced
	s.open(e, !braced)
	return nil
}

// body consumes the opening brace of a control body if there is one.
func (s *state) body() (bool, error) {
	next, ok := s.ts.Peek()
	if !ok {
		return false, nil
	}
	switch next.Kind {
	case TokenLBrace:
		s.ts.Next()
		return true, nil
	case TokenColon:
		return false, s.errorf(next, "alternative control syntax is not supported")
	}
	return false, nil
}

func (s *state) errorf(tok Token, msg string) error {
	line := tok.Line
	if line == 0 {
		line = s.ts.CurrentLine()
	}
	return &SyntaxError{File: s.file, Line: line, Text: tok.Literal, Message: msg}
}

func (s *state) where(line int) string {
	if s.file == "" {
		return fmt.Sprintf("line %d", line)
	}
	return fmt.Sprintf("%s:%d", s.file, line)
}

// splitTopLevel splits tokens on commas outside brackets.
func splitTopLevel(tokens []Token) [][]Token {
	var out [][]Token
	var cur []Token
	depth := 0
	for _, t := range tokens {
		switch t.Literal {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		}
		if depth == 0 && t.Kind == TokenComma {
			out = append(out, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func joinTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Literal
	}
	return strings.Join(parts, " ")
}

// joinCompact concatenates tokens, separating only adjacent words.
func joinCompact(tokens []Token) string {
	var sb strings.Builder
	for i, t := range tokens {
		if i > 0 && tokens[i-1].Kind.IsWordLike() && t.Kind.IsWordLike() {
			sb.WriteString(" ")
		}
		sb.WriteString(t.Literal)
	}
	return sb.String()
}
