package parser

import "fmt"

// SyntaxError reports a structural parse failure: an expected token was
// missing or a scope closer had nothing to close. It is always fatal to the
// parse of the unit.
type SyntaxError struct {
	File    string
	Line    int
	Text    string
	Message string
}

func (e *SyntaxError) Error() string {
	where := fmt.Sprintf("line %d", e.Line)
	if e.File != "" {
		where = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Message == "" {
		return fmt.Sprintf("%s: invalid token %q", where, e.Text)
	}
	return fmt.Sprintf("%s: invalid token %q: %s", where, e.Text, e.Message)
}
