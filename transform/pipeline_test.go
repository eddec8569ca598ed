package transform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/phpgen/annotation"
	"github.com/dhamidi/phpgen/config"
	"github.com/dhamidi/phpgen/php/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bagSource = `<?php
/**
 * @ArrayProperty("items")
 */
class Bag {
    public $items = array();
}
`

const bagOutput = `<?php

/**
 * @ArrayProperty("items")
 */
class Bag {
    protected $items = array ( );
    public function __get ($property) {
        return $this->items[$property];
    }
    public function __set ($property, $value) {
        $this->items[$property] = $value;
    }
    public function __isset ($property) {
        return isset($this->items[$property]);
    }
    public function __unset ($property) {
        unset($this->items[$property]);
    }
}
`

func TestProcess(t *testing.T) {
	res, err := New(WithLayout("    ")).Process(context.Background(), []byte(bagSource), "bag.php")
	require.NoError(t, err)

	assert.Equal(t, "bag.php", res.Name)
	assert.Equal(t, bagOutput, res.Output)
	require.Len(t, res.Applied, 1)
	assert.Equal(t, `@ArrayProperty("items")`, res.Applied[0].String())
	assert.Equal(t, "bag.php", res.Root.FileName)
}

func TestProcessWithoutLayout(t *testing.T) {
	res, err := New().Process(context.Background(), []byte(bagSource), "bag.php")
	require.NoError(t, err)
	assert.Equal(t, res.Root.Generate(), res.Output)
	assert.Contains(t, res.Output, "class Bag { protected $items = array ( ) ; public function __get")
}

func TestProcessWithoutAnnotations(t *testing.T) {
	src := "<?php\nfunction f($a) {\n    return $a;\n}\n"
	res, err := New(WithLayout("  ")).Process(context.Background(), []byte(src), "f.php")
	require.NoError(t, err)
	assert.Empty(t, res.Applied)
	assert.Equal(t, "<?php\n\nfunction f ($a) {\n  return $a;\n}\n", res.Output)
}

func TestProcessTagsAreStable(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		indent string
		want   string
	}{
		{"close tag raw", "<?php\nclass A {\n}\n?>\n", "", "<?php\n\nclass A { } ?>\n"},
		{"close tag laid out", "<?php\nclass A {\n}\n?>\n", "    ", "<?php\n\nclass A {\n}\n\n?>\n"},
		{"inline html laid out", "<?php\nif ($a) { ?>\n<p>x</p>\n<?php }\n", "    ", "<?php\n\nif ($a) {\n    ?>\n<p>x</p>\n    <?php\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(WithLayout(tt.indent))
			out := tt.src
			for pass := 0; pass < 3; pass++ {
				res, err := p.Process(context.Background(), []byte(out), "a.php")
				require.NoError(t, err, "pass %d", pass)
				assert.Equal(t, tt.want, res.Output, "pass %d", pass)
				out = res.Output
			}
		})
	}
}

func TestProcessErrors(t *testing.T) {
	t.Run("syntax", func(t *testing.T) {
		_, err := New().Process(context.Background(), []byte("<?php\nclass {"), "bad.php")
		var syntax *parser.SyntaxError
		require.ErrorAs(t, err, &syntax)
		assert.Equal(t, "bad.php", syntax.File)
	})

	t.Run("unknown annotation", func(t *testing.T) {
		src := "<?php\n/** @Entity */\nclass A {}\n"
		_, err := New().Process(context.Background(), []byte(src), "a.php")
		var resolution *annotation.ResolutionError
		require.ErrorAs(t, err, &resolution)
		assert.Equal(t, "Entity", resolution.Name)
		assert.ErrorIs(t, err, annotation.ErrNotRegistered)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New().Process(ctx, []byte(bagSource), "bag.php")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCustomRegistry(t *testing.T) {
	reg := annotation.NewRegistry()
	_, err := New(WithRegistry(reg)).Process(context.Background(), []byte(bagSource), "bag.php")
	assert.ErrorIs(t, err, annotation.ErrNotRegistered)
}

func TestConfigOptions(t *testing.T) {
	store := config.New()
	require.NoError(t, store.LoadBytes([]byte(`
annotations:
  ignore: [Entity]
output:
  pretty: true
  indent: 2
`), config.FormatYAML, "phpgen"))

	src := "<?php\n/** @Entity */\nclass A { public $a; }\n"
	res, err := New(ConfigOptions(store)...).Process(context.Background(), []byte(src), "a.php")
	require.NoError(t, err)
	assert.Equal(t, "<?php\n\n/** @Entity */\nclass A {\n  public $a;\n}\n", res.Output)
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "src", "bag.php")
	out := filepath.Join(dir, "build", "nested", "bag.php")
	require.NoError(t, os.MkdirAll(filepath.Dir(in), 0o755))
	require.NoError(t, os.WriteFile(in, []byte(bagSource), 0o644))

	_, err := New(WithLayout("    ")).ProcessFile(context.Background(), in, out)
	require.NoError(t, err)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, bagOutput, string(written))
}

func TestProcessFileLeavesNoOutputOnError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.php")
	out := filepath.Join(dir, "out", "bad.php")
	require.NoError(t, os.WriteFile(in, []byte("<?php\n/** @Nope */\nclass A {}\n"), 0o644))

	_, err := New().ProcessFile(context.Background(), in, out)
	require.Error(t, err)
	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))

	_, err = New().ProcessFile(context.Background(), filepath.Join(dir, "missing.php"), out)
	assert.Error(t, err)
}
