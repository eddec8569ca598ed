package format

import (
	"io"
	"strings"
)

// Layout re-indents generated source. Generated text puts a whole scope on
// one line; Layout breaks lines after ';', '{' and '}' outside parentheses
// and brackets and indents each line by its brace depth. String literals,
// comments, heredocs and inline HTML are copied unchanged.
type Layout struct {
	w         io.Writer
	indentStr string

	src  string
	pos  int
	out  strings.Builder
	cur  []byte
	lead string
	// glued is set when an open tag continues a line of inline HTML.
	glued bool
	depth int
	paren int
}

func NewLayout(w io.Writer) *Layout {
	return &Layout{w: w, indentStr: "    "}
}

// SetIndent sets the string written once per nesting level.
func (l *Layout) SetIndent(indent string) {
	l.indentStr = indent
}

// Print lays out src and writes the result.
func (l *Layout) Print(src string) error {
	_, err := io.WriteString(l.w, l.Format(src))
	return err
}

func (l *Layout) Format(src string) string {
	l.src, l.pos = src, 0
	l.out.Reset()
	l.cur = l.cur[:0]
	l.lead = ""
	l.glued = false
	l.depth, l.paren = 0, 0

	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		switch {
		case ch == '\'' || ch == '"' || ch == '`':
			l.copyQuoted(ch)
		case l.hasPrefix("<<<"):
			l.copyHeredoc()
		case l.hasPrefix("//") || (ch == '#' && !l.hasPrefix("#[")):
			l.copyLineComment()
		case l.hasPrefix("/*"):
			l.copyUntil("*/")
		case l.hasPrefix("?>"):
			l.copyInlineHTML()
		case ch == '\n':
			l.pos++
			l.newline()
		case ch == '(' || ch == '[':
			l.paren++
			l.write(ch)
		case ch == ')' || ch == ']':
			if l.paren > 0 {
				l.paren--
			}
			l.write(ch)
		case ch == ';' || ch == ',':
			l.trimSpace()
			l.write(ch)
			if ch == ',' {
				continue
			}
			if l.paren == 0 {
				l.newline()
			}
		case ch == '{':
			l.write(ch)
			if l.paren == 0 {
				l.newline()
				l.depth++
			}
		case ch == '}':
			if l.paren > 0 {
				l.write(ch)
				continue
			}
			l.newline()
			if l.depth > 0 {
				l.depth--
			}
			l.write(ch)
			l.afterClose()
		default:
			l.write(ch)
		}
	}
	l.newline()
	return strings.TrimRight(l.out.String(), "\n") + "\n"
}

func (l *Layout) hasPrefix(s string) bool {
	return strings.HasPrefix(l.src[l.pos:], s)
}

func (l *Layout) write(ch byte) {
	l.cur = append(l.cur, ch)
	l.pos++
}

func (l *Layout) trimSpace() {
	for len(l.cur) > 0 && (l.cur[len(l.cur)-1] == ' ' || l.cur[len(l.cur)-1] == '\t') {
		l.cur = l.cur[:len(l.cur)-1]
	}
}

// afterClose keeps a closing brace on the line of what continues the same
// statement: a terminator, an argument separator or a chained clause.
func (l *Layout) afterClose() {
	rest := strings.TrimLeft(l.src[l.pos:], " \t")
	switch {
	case rest == "":
	case strings.HasPrefix(rest, ";"), strings.HasPrefix(rest, ","), strings.HasPrefix(rest, ")"):
		l.pos = len(l.src) - len(rest)
		return
	default:
		for _, kw := range []string{"else", "elseif", "catch", "finally"} {
			if startsWithWord(rest, kw) {
				l.pos = len(l.src) - len(rest)
				l.cur = append(l.cur, ' ')
				return
			}
		}
	}
	l.newline()
	if l.depth == 0 {
		l.out.WriteByte('\n')
	}
}

func startsWithWord(s, word string) bool {
	if !strings.HasPrefix(s, word) {
		return false
	}
	if len(s) == len(word) {
		return true
	}
	c := s[len(word)]
	return !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

func (l *Layout) copyQuoted(quote byte) {
	l.write(quote)
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		l.write(ch)
		if ch == '\\' && l.pos < len(l.src) {
			l.write(l.src[l.pos])
			continue
		}
		if ch == quote {
			return
		}
	}
}

func (l *Layout) copyUntil(end string) {
	i := strings.Index(l.src[l.pos+len(end):], end)
	stop := len(l.src)
	if i >= 0 {
		stop = l.pos + len(end) + i + len(end)
	}
	l.cur = append(l.cur, l.src[l.pos:stop]...)
	l.pos = stop
}

func (l *Layout) copyLineComment() {
	end := strings.IndexByte(l.src[l.pos:], '\n')
	stop := len(l.src)
	if end >= 0 {
		stop = l.pos + end
	}
	l.cur = append(l.cur, l.src[l.pos:stop]...)
	l.pos = stop
	l.newline()
}

// copyHeredoc copies a heredoc or nowdoc through its closing label. The
// body is written straight to the output so that it keeps its own
// indentation.
func (l *Layout) copyHeredoc() {
	nl := strings.IndexByte(l.src[l.pos:], '\n')
	if nl < 0 {
		l.write(l.src[l.pos])
		return
	}
	opener := l.src[l.pos : l.pos+nl]
	label := strings.Trim(strings.TrimSpace(opener[3:]), `'"`)
	if label == "" {
		l.write(l.src[l.pos])
		return
	}
	l.cur = append(l.cur, opener...)
	l.newline()
	l.pos += nl + 1

	for l.pos < len(l.src) {
		end := strings.IndexByte(l.src[l.pos:], '\n')
		line := l.src[l.pos:]
		if end >= 0 {
			line = l.src[l.pos : l.pos+end]
		}
		trimmed := strings.TrimLeft(line, " \t")
		if startsWithWord(trimmed, label) {
			l.lead = line[:len(line)-len(trimmed)] + label
			l.pos += len(l.lead)
			return
		}
		l.out.WriteString(line)
		l.out.WriteByte('\n')
		if end < 0 {
			l.pos = len(l.src)
			return
		}
		l.pos += end + 1
	}
}

// copyInlineHTML copies a close tag and the text after it verbatim up to
// and including the next open tag.
func (l *Layout) copyInlineHTML() {
	l.cur = append(l.cur, "?>"...)
	l.newline()
	l.pos += 2
	if l.hasPrefix("\n") {
		l.pos++
	}
	open := strings.Index(l.src[l.pos:], "<?")
	if open < 0 {
		l.out.WriteString(l.src[l.pos:])
		l.pos = len(l.src)
		return
	}
	html := l.src[l.pos : l.pos+open]
	l.out.WriteString(html)
	l.glued = html != "" && !strings.HasSuffix(html, "\n")
	l.pos += open
	switch {
	case l.hasPrefix("<?php"):
		l.cur = append(l.cur, "<?php"...)
		l.pos += 5
	case l.hasPrefix("<?="):
		l.cur = append(l.cur, "<?="...)
		l.pos += 3
	default:
		l.cur = append(l.cur, "<?"...)
		l.pos += 2
	}
}

// newline ends the pending line. Continuation lines of block comments are
// re-aligned under the first line; their text is otherwise kept as is. A
// heredoc closing label left in lead starts the line verbatim.
func (l *Layout) newline() {
	text := strings.TrimSpace(string(l.cur))
	l.cur = l.cur[:0]
	lead := l.lead
	l.lead = ""
	glued := l.glued
	l.glued = false
	if text == "" {
		if lead != "" {
			l.out.WriteString(lead + "\n")
		}
		return
	}
	indent := strings.Repeat(l.indentStr, l.depth)
	first := indent
	if lead != "" {
		first = lead
	}
	if glued {
		first = ""
	}
	comment := strings.Contains(text, "/*")
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case i == 0:
			l.out.WriteString(first + trimmed)
		case comment && strings.HasPrefix(trimmed, "*"):
			l.out.WriteString(indent + " " + trimmed)
		default:
			l.out.WriteString(line)
		}
		l.out.WriteByte('\n')
	}
	if text == "<?php" && l.depth == 0 {
		l.out.WriteByte('\n')
	}
}
