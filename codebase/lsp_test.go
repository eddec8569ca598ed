package codebase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dhamidi/phpgen/annotation"
	"github.com/dhamidi/phpgen/php/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDiagnostics(t *testing.T) {
	assert.Empty(t, Diagnostics(nil))

	tests := []struct {
		name string
		err  error
		line protocol.UInteger
	}{
		{"syntax", &parser.SyntaxError{File: "a.php", Line: 3, Text: "{", Message: "expected class name"}, 2},
		{"resolution", fmt.Errorf("a.php: %w", &annotation.ResolutionError{Name: "X", Line: 5, Err: annotation.ErrNotRegistered}), 4},
		{"apply", &annotation.ApplyError{Name: "X", Line: 1, Err: errors.New("boom")}, 0},
		{"plain", errors.New("boom"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Diagnostics(tt.err)
			require.Len(t, d, 1)
			assert.Equal(t, tt.line, d[0].Range.Start.Line)
			assert.Equal(t, tt.line+1, d[0].Range.End.Line)
			assert.Equal(t, protocol.DiagnosticSeverityError, *d[0].Severity)
			assert.Equal(t, tt.err.Error(), d[0].Message)
		})
	}
}

func TestDocumentSymbols(t *testing.T) {
	root, err := parser.New().Parse([]byte(`<?php
class Bag {
    public $items;
    public function get($k) {
        return $this->items[$k];
    }
}
function helper() {}
$f = function () {};
`))
	require.NoError(t, err)

	symbols := DocumentSymbols(root)
	require.Len(t, symbols, 2)

	bag := symbols[0]
	assert.Equal(t, "Bag", bag.Name)
	assert.Equal(t, protocol.SymbolKindClass, bag.Kind)
	assert.Equal(t, protocol.UInteger(1), bag.Range.Start.Line)
	require.Len(t, bag.Children, 2)
	assert.Equal(t, "$items", bag.Children[0].Name)
	assert.Equal(t, protocol.SymbolKindProperty, bag.Children[0].Kind)
	assert.Equal(t, "get", bag.Children[1].Name)
	assert.Equal(t, protocol.SymbolKindMethod, bag.Children[1].Kind)

	assert.Equal(t, "helper", symbols[1].Name)
	assert.Equal(t, protocol.SymbolKindFunction, symbols[1].Kind)
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/a%20b/c.php")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a b/c.php", path)

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)
}
