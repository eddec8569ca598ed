package annotation

import (
	"strings"
	"unicode"
)

// DefaultIgnored lists the phpdoc tags that are documentation, not
// annotations.
var DefaultIgnored = []string{
	"abstract", "access", "author", "category", "copyright", "deprecated",
	"example", "final", "filesource", "global", "id", "ignore", "internal",
	"inheritdoc", "license", "link", "method", "name", "package", "param",
	"property", "return", "see", "since", "static", "staticvar", "subpackage",
	"toc", "todo", "tutorial", "uses", "var", "version",
}

type ScanOption func(*Scanner)

// WithIgnored adds tag names the scanner skips. Names are matched
// case-sensitively.
func WithIgnored(names ...string) ScanOption {
	return func(s *Scanner) {
		for _, name := range names {
			s.ignored[name] = true
		}
	}
}

// Scanner extracts annotations from doc comment text. It is immutable after
// construction.
type Scanner struct {
	ignored map[string]bool
}

func NewScanner(opts ...ScanOption) *Scanner {
	s := &Scanner{ignored: make(map[string]bool, len(DefaultIgnored))}
	for _, name := range DefaultIgnored {
		s.ignored[name] = true
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scanner) IsIgnored(name string) bool {
	return s.ignored[name]
}

// Scan returns the annotations of doc in order of appearance. line is the
// source line doc starts on. Annotations nested in the arguments of another
// annotation are part of that annotation's arguments and are not returned
// at the top level.
func (s *Scanner) Scan(doc string, line int) ([]*Instance, error) {
	sc := &scan{input: []rune(doc), line: line, ignored: s.ignored}
	return sc.all()
}

type scan struct {
	input   []rune
	pos     int
	line    int
	ignored map[string]bool
}

func (p *scan) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *scan) advance() rune {
	r := p.peek()
	if p.pos < len(p.input) {
		p.pos++
	}
	if r == '\n' {
		p.line++
	}
	return r
}

func (p *scan) all() ([]*Instance, error) {
	var out []*Instance
	for p.pos < len(p.input) {
		if p.peek() != '@' || !p.atWordStart() {
			p.advance()
			continue
		}
		inst, err := p.annotation()
		if err != nil {
			return nil, err
		}
		if inst != nil {
			out = append(out, inst)
		}
	}
	return out, nil
}

// atWordStart reports whether the '@' under the cursor starts a word, so
// that addresses such as user@example.com are not taken for annotations.
func (p *scan) atWordStart() bool {
	if p.pos == 0 {
		return true
	}
	prev := p.input[p.pos-1]
	return !(isNamePart(prev) || prev == '.' || prev == '-' || prev == '@')
}

// annotation parses @Name or @Name(args) at the cursor. It returns nil for
// ignored tags and for a lone '@'.
func (p *scan) annotation() (*Instance, error) {
	line := p.line
	p.advance()
	start := p.pos
	if !unicode.IsLetter(p.peek()) {
		return nil, nil
	}
	for isNamePart(p.peek()) {
		p.advance()
	}
	name := string(p.input[start:p.pos])

	var raw []string
	if p.peek() == '(' {
		args, ok := p.arguments()
		if !ok && !p.ignored[name] {
			return nil, &ResolutionError{Name: name, Line: line, Err: ErrUnterminated}
		}
		raw = args
	}
	if p.ignored[name] {
		return nil, nil
	}

	inst := &Instance{Name: name, Line: line}
	for _, text := range raw {
		v, err := p.argument(text, line)
		if err != nil {
			return nil, err
		}
		inst.Args = append(inst.Args, v)
	}
	return inst, nil
}

// arguments consumes a parenthesized list and splits it on commas that are
// outside quotes and nested parentheses.
func (p *scan) arguments() ([]string, bool) {
	p.advance()
	var args []string
	var cur strings.Builder
	depth := 0
	var quote rune
	for p.pos < len(p.input) {
		r := p.advance()
		switch {
		case quote != 0:
			if r == '\\' && p.pos < len(p.input) {
				cur.WriteRune(r)
				r = p.advance()
			} else if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')' && depth == 0:
			if arg := cleanArgument(cur.String()); arg != "" || len(args) > 0 {
				args = append(args, arg)
			}
			return args, true
		case r == ')':
			depth--
		case r == ',' && depth == 0:
			args = append(args, cleanArgument(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	return nil, false
}

func (p *scan) argument(text string, line int) (Value, error) {
	if !strings.HasPrefix(text, "@") {
		return literalValue(text), nil
	}
	nested := &scan{input: []rune(text), line: line, ignored: p.ignored}
	found, err := nested.all()
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return Raw(text), nil
	}
	return Nested{Instance: found[0]}, nil
}

// cleanArgument trims an argument and removes the " * " continuation
// markers of arguments that span several comment lines.
func cleanArgument(text string) string {
	if !strings.Contains(text, "\n") {
		return strings.TrimSpace(text)
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		l = strings.TrimSpace(l)
		if i > 0 {
			l = strings.TrimSpace(strings.TrimPrefix(l, "*"))
		}
		lines[i] = l
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}

func isNamePart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
