package annotation

import (
	"strconv"
	"strings"
)

// Value is a typed annotation argument. The set of implementations is
// closed: Int, Bool, Null, String, Nested and Raw.
type Value interface {
	value()
	// String renders the value the way it would be written in a doc comment.
	String() string
}

type Int int64

func (Int) value()           {}
func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

type Bool bool

func (Bool) value()           {}
func (v Bool) String() string { return strconv.FormatBool(bool(v)) }

type Null struct{}

func (Null) value()         {}
func (Null) String() string { return "null" }

// String is a quoted argument with the quotes removed.
type String string

func (String) value()           {}
func (v String) String() string { return strconv.Quote(string(v)) }

// Nested is an annotation used as an argument of another annotation.
type Nested struct {
	Instance *Instance
}

func (Nested) value() {}
func (v Nested) String() string {
	if v.Instance == nil {
		return "null"
	}
	return v.Instance.String()
}

// Raw is argument text that matched no other form, such as a constant name
// or an expression.
type Raw string

func (Raw) value()           {}
func (v Raw) String() string { return string(v) }

// literalValue converts argument text that does not start with '@'.
func literalValue(text string) Value {
	switch {
	case isInteger(text):
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Raw(text)
		}
		return Int(n)
	case strings.EqualFold(text, "true"):
		return Bool(true)
	case strings.EqualFold(text, "false"):
		return Bool(false)
	case strings.EqualFold(text, "null"):
		return Null{}
	case isQuoted(text):
		return String(unquote(text))
	}
	return Raw(text)
}

func isInteger(text string) bool {
	digits := strings.TrimPrefix(text, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isQuoted(text string) bool {
	if len(text) < 2 {
		return false
	}
	q := text[0]
	return (q == '"' || q == '\'') && text[len(text)-1] == q
}

// unquote strips the delimiters and resolves backslash escapes of the quote
// character and of the backslash itself.
func unquote(text string) string {
	q := text[0]
	body := text[1 : len(text)-1]
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) && (body[i+1] == q || body[i+1] == '\\') {
			i++
		}
		sb.WriteByte(body[i])
	}
	return sb.String()
}
