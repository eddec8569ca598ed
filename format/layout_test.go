package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutFormat(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		indent string
		want   string
	}{
		{
			name:  "class with method",
			input: "<?php\n\nnamespace App ; class A { public $x = 1 ; public function get ($k) { return $this->x[$k] ; } } \n",
			want: `<?php

namespace App;
class A {
    public $x = 1;
    public function get ($k) {
        return $this->x[$k];
    }
}
`,
		},
		{
			name:   "custom indent",
			input:  "<?php\n\nfunction f () { if ($a) { b () ; } }",
			indent: "\t",
			want:   "<?php\n\nfunction f () {\n\tif ($a) {\n\t\tb ();\n\t}\n}\n",
		},
		{
			name:  "semicolons inside parentheses",
			input: "<?php\n\nfor ($i = 0 ; $i < 3 ; $i++) { echo $i ; }",
			want:  "<?php\n\nfor ($i = 0; $i < 3; $i++) {\n    echo $i;\n}\n",
		},
		{
			name:  "else stays on the closing line",
			input: "<?php\n\nif ($a) { x () ; } else { y () ; }",
			want:  "<?php\n\nif ($a) {\n    x ();\n} else {\n    y ();\n}\n",
		},
		{
			name:  "closure assignment",
			input: "<?php\n\n$f = function ($x) { return $x ; } ;",
			want:  "<?php\n\n$f = function ($x) {\n    return $x;\n};\n",
		},
		{
			name:  "strings are not split",
			input: "<?php\n\necho 'a; {b}' ; echo \"c;\\\"}\" ;",
			want:  "<?php\n\necho 'a; {b}';\necho \"c;\\\"}\";\n",
		},
		{
			name:  "line comment",
			input: "<?php\n\n// note; {\n $a = 1 ;",
			want:  "<?php\n\n// note; {\n$a = 1;\n",
		},
		{
			name:  "doc comment is realigned",
			input: "<?php\n\nclass A { /**\n     * @ArrayProperty\n     */\nprotected $items ; }",
			want:  "<?php\n\nclass A {\n    /**\n     * @ArrayProperty\n     */\n    protected $items;\n}\n",
		},
		{
			name:  "heredoc body is verbatim",
			input: "<?php\n\nfunction f () { $s = <<<EOT\n  a; {\nEOT ; }",
			want:  "<?php\n\nfunction f () {\n    $s = <<<EOT\n  a; {\nEOT;\n}\n",
		},
		{
			name:  "inline html is verbatim",
			input: "<?php\n\nif ($a) { ?>\n<p>{x};</p>\n<?php }",
			want:  "<?php\n\nif ($a) {\n    ?>\n<p>{x};</p>\n    <?php\n}\n",
		},
		{
			name:  "open tag after html on the same line",
			input: "<?php\n\nif ($a) {\n    ?>\n<p>x</p>\n    <?php\n}\n",
			want:  "<?php\n\nif ($a) {\n    ?>\n<p>x</p>\n    <?php\n}\n",
		},
		{
			name:  "doc comment text is kept",
			input: "<?php\n\nclass A { /**\n * \n * @ArrayProperty \n */\nprotected $items ; }",
			want:  "<?php\n\nclass A {\n    /**\n     * \n     * @ArrayProperty \n     */\n    protected $items;\n}\n",
		},
		{
			name:  "multi-line string is kept",
			input: "<?php\n\n$s = 'a  \n  * b' ;",
			want:  "<?php\n\n$s = 'a  \n  * b';\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(nil)
			if tt.indent != "" {
				l.SetIndent(tt.indent)
			}
			assert.Equal(t, tt.want, l.Format(tt.input))
		})
	}
}

func TestLayoutPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLayout(&buf).Print("<?php\n\n$a = 1 ;"))
	assert.Equal(t, "<?php\n\n$a = 1;\n", buf.String())
}

func TestLayoutIsReusable(t *testing.T) {
	l := NewLayout(nil)
	first := l.Format("<?php\n\nclass A { }")
	second := l.Format("<?php\n\nclass A { }")
	assert.Equal(t, first, second)
	assert.Equal(t, "<?php\n\nclass A {\n}\n", first)
}
