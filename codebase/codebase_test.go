package codebase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhamidi/phpgen/annotation"
	"github.com/dhamidi/phpgen/php/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bagSource = `<?php
/** @ArrayProperty("items") */
class Bag {
    public $items = array();
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanAllWritesOutput(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "build")
	writeFile(t, filepath.Join(root, "src", "Bag.php"), bagSource)
	writeFile(t, filepath.Join(root, "src", "notes.txt"), "not php")
	writeFile(t, filepath.Join(root, ".git", "Hidden.php"), "<?php class {")

	c := New(root, WithOutputDir(out))
	require.NoError(t, c.ScanAll(context.Background()))

	bag := filepath.Join(root, "src", "Bag.php")
	assert.Equal(t, []string{bag}, c.Files())

	info := c.GetFile(bag)
	require.NotNil(t, info)
	require.NoError(t, info.Err)
	require.Len(t, info.Applied, 1)

	written, err := os.ReadFile(filepath.Join(out, "src", "Bag.php"))
	require.NoError(t, err)
	assert.Equal(t, info.Output, string(written))
	assert.Contains(t, string(written), "function __get")

	// A second scan must not pick up its own output.
	require.NoError(t, c.ScanAll(context.Background()))
	assert.Equal(t, []string{bag}, c.Files())
}

func TestScanAllCollectsErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.php"), "<?php\nclass {")
	writeFile(t, filepath.Join(root, "b.php"), "<?php\n/** @Unknown */\nclass B {}\n")
	writeFile(t, filepath.Join(root, "c.php"), bagSource)

	c := New(root)
	err := c.ScanAll(context.Background())
	require.Error(t, err)

	var syntax *parser.SyntaxError
	assert.ErrorAs(t, err, &syntax)
	var resolution *annotation.ResolutionError
	assert.ErrorAs(t, err, &resolution)

	assert.Len(t, c.Files(), 3)
	assert.Error(t, c.GetFile(filepath.Join(root, "a.php")).Err)
	assert.NoError(t, c.GetFile(filepath.Join(root, "c.php")).Err)
	assert.Empty(t, c.GetFile(filepath.Join(root, "a.php")).Output)
}

func TestScanAllCanceled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.php"), bagSource)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(root).ScanAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtensions(t *testing.T) {
	c := New(t.TempDir(), WithExtensions("php", ".INC"))
	assert.True(t, c.IsSource("a.php"))
	assert.True(t, c.IsSource("a.inc"))
	assert.False(t, c.IsSource("a.phtml"))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "", New("/src").OutputPath("/src/a.php"))

	c := New("/src", WithOutputDir("/out"))
	assert.Equal(t, filepath.Join("/out", "lib", "a.php"), c.OutputPath("/src/lib/a.php"))
	assert.Equal(t, filepath.Join("/out", "b.php"), c.OutputPath("/elsewhere/b.php"))
}

func TestRemoveFile(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	path := filepath.Join(root, "Bag.php")
	writeFile(t, path, bagSource)

	c := New(root, WithOutputDir(out))
	require.NoError(t, c.ScanFile(context.Background(), path))
	require.FileExists(t, filepath.Join(out, "Bag.php"))

	c.RemoveFile(path)
	assert.Nil(t, c.GetFile(path))
	assert.NoFileExists(t, filepath.Join(out, "Bag.php"))
}

func TestFileWatcherScan(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.php")
	b := filepath.Join(root, "b.php")
	writeFile(t, a, bagSource)

	c := New(root)
	w := NewFileWatcher(c)
	ctx := context.Background()

	assert.Equal(t, []string{a}, w.Scan(ctx))
	assert.Empty(t, w.Scan(ctx))

	writeFile(t, b, "<?php\nfunction f() {}\n")
	assert.Equal(t, []string{b}, w.Scan(ctx))

	writeFile(t, a, "<?php\nclass Changed {}\n")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(a, later, later))
	assert.Equal(t, []string{a}, w.Scan(ctx))
	assert.Contains(t, c.GetFile(a).Output, "class Changed")

	require.NoError(t, os.Remove(b))
	assert.Equal(t, []string{b}, w.Scan(ctx))
	assert.Nil(t, c.GetFile(b))
}

func TestFileWatcherRunStops(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.php"), bagSource)

	c := New(root)
	w := NewFileWatcher(c)
	w.SetPollInterval(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return c.GetFile(filepath.Join(root, "a.php")) != nil
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
