package parser

import (
	"bytes"
	_ "embed"

	"golang.org/x/exp/ebnf"
)

//go:embed grammar.ebnf
var grammarSource []byte

// GrammarStart is the start production of the embedded grammar.
const GrammarStart = "File"

// GrammarSource returns the EBNF description of the accepted PHP subset.
func GrammarSource() []byte {
	out := make([]byte, len(grammarSource))
	copy(out, grammarSource)
	return out
}

// Grammar parses and verifies the embedded grammar.
func Grammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("grammar.ebnf", bytes.NewReader(grammarSource))
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(g, GrammarStart); err != nil {
		return nil, err
	}
	return g, nil
}
