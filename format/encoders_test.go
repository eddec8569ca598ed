package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhamidi/phpgen/php/ast"
	"github.com/dhamidi/phpgen/php/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `<?php
namespace App;
use App\Base as B;
class Foo extends B {
    private $count = 0;
    public function get($key) {
        if ($key) {
            return $this->items[$key];
        }
    }
}
`

func parse(t *testing.T) *ast.Root {
	t.Helper()
	root, err := parser.New(parser.WithFile("foo.php")).Parse([]byte(source))
	require.NoError(t, err)
	return root
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(parse(t)))

	want := "namespace\tApp\n" +
		"use\tApp\\Base\tB\t3\n" +
		"class\tFoo\tB\t-\t-\t4\n" +
		"variable\tFoo::$count\t0\tprivate\t5\n" +
		"function\tFoo::get\t$key\t-\tpublic\t6\n"
	assert.Equal(t, want, buf.String())
}

func TestASTJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf).Encode(parse(t)))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Root", doc["kind"])
	assert.Equal(t, "foo.php", doc["name"])

	children := doc["children"].([]any)
	cls := children[len(children)-1].(map[string]any)
	assert.Equal(t, "Class", cls["kind"])
	assert.Equal(t, "Foo", cls["name"])
	assert.Equal(t, "B", cls["extends"])

	members := cls["children"].([]any)
	field := members[0].(map[string]any)
	assert.Equal(t, "Variable", field["kind"])
	assert.Equal(t, "0", field["default"])
	assert.Equal(t, []any{"private"}, field["modifiers"])

	method := members[len(members)-1].(map[string]any)
	assert.Equal(t, "Function", method["kind"])
	params := method["parameters"].([]any)
	assert.Equal(t, "$key", params[0].(map[string]any)["name"])
}

func TestTreeEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf).Encode(parse(t)))
	out := buf.String()

	assert.Contains(t, out, "Root \"foo.php\"\n")
	assert.Contains(t, out, "  Namespace namespace App @2\n")
	assert.Contains(t, out, "  Class class Foo extends B @4\n")
	assert.Contains(t, out, "    Variable [private] $count = 0 @5\n")
	assert.Contains(t, out, "    Function [public] function get($key) @6\n")
	assert.Contains(t, out, "      If ($key) @7\n")
}

func TestTokenEncoder(t *testing.T) {
	tokens := parser.Tokenize([]byte("<?php $a = 1;"))

	var buf bytes.Buffer
	require.NoError(t, NewTokenEncoder(&buf).Encode(tokens))
	assert.Equal(t, "1\tOpenTag\t\"<?php\"\n"+
		"1\tVariable\t\"$a\"\n"+
		"1\t=\t\"=\"\n"+
		"1\tIntLiteral\t\"1\"\n"+
		"1\t;\t\";\"\n", buf.String())

	buf.Reset()
	enc := NewTokenEncoder(&buf)
	enc.ShowWhitespace(true)
	require.NoError(t, enc.Encode(tokens))
	assert.Contains(t, buf.String(), "1\tWhitespace\t\" \"\n")
}

func TestASTJSONEncoderTypesAndTags(t *testing.T) {
	root, err := parser.New().Parse([]byte("<?php\nuse function App\\f;\nclass A { public ?int $id; }\n?>\n"))
	require.NoError(t, err)
	text, err := NewASTJSONEncoder(nil).MarshalText(root)
	require.NoError(t, err)

	var doc astJSONNode
	require.NoError(t, json.Unmarshal(text, &doc))
	require.Len(t, doc.Children, 4)
	assert.Equal(t, "function", doc.Children[0].ImportType)
	cls := doc.Children[2]
	require.NotEmpty(t, cls.Children)
	assert.Equal(t, "?int", cls.Children[0].Type)
	assert.Equal(t, "closeTag", doc.Children[3].Role)
	assert.Equal(t, ast.RoleCloseTag.String(), doc.Children[3].Role)
}
