// Package codebase runs the generator over a directory tree and keeps the
// per-file results for the watcher and the language server.
package codebase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/phpgen/annotation"
	"github.com/dhamidi/phpgen/php/ast"
	"github.com/dhamidi/phpgen/transform"
	"github.com/tliron/commonlog"
)

var DefaultExtensions = []string{".php"}

type Option func(*Codebase)

// WithOutputDir makes processed files be written below dir, mirroring
// their path relative to the root. Without it results are only kept in
// memory.
func WithOutputDir(dir string) Option {
	return func(c *Codebase) {
		c.outDir = dir
	}
}

func WithExtensions(exts ...string) Option {
	return func(c *Codebase) {
		c.extensions = nil
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			c.extensions = append(c.extensions, strings.ToLower(ext))
		}
	}
}

func WithPipeline(p *transform.Pipeline) Option {
	return func(c *Codebase) {
		c.pipeline = p
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(c *Codebase) {
		c.log = log
	}
}

type Codebase struct {
	mu         sync.RWMutex
	rootDir    string
	outDir     string
	extensions []string
	pipeline   *transform.Pipeline
	files      map[string]*FileInfo
	log        commonlog.Logger
}

// FileInfo is the last processing result of one source file. Err holds
// the error that aborted it, if any; Output and Applied are empty then.
type FileInfo struct {
	Path    string
	Content []byte
	Root    *ast.Root
	Output  string
	Applied []*annotation.Instance
	Err     error
}

func New(rootDir string, opts ...Option) *Codebase {
	c := &Codebase{
		rootDir:    rootDir,
		extensions: DefaultExtensions,
		files:      make(map[string]*FileInfo),
		log:        commonlog.GetLogger("phpgen.codebase"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.pipeline == nil {
		c.pipeline = transform.New()
	}
	return c
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// IsSource reports whether path has one of the source extensions.
func (c *Codebase) IsSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// OutputPath returns where the result for path is written, or "" when no
// output directory is set.
func (c *Codebase) OutputPath(path string) string {
	if c.outDir == "" {
		return ""
	}
	rel, err := filepath.Rel(c.rootDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	return filepath.Join(c.outDir, rel)
}

// ScanAll processes every source file below the root. Hidden directories
// and the output directory are skipped. A failing file does not stop the
// scan; all failures are returned joined. Cancellation is checked between
// files.
func (c *Codebase) ScanAll(ctx context.Context) error {
	var errs []error
	walkErr := filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() {
			if path != c.rootDir && c.skipDir(path, info) {
				return filepath.SkipDir
			}
			return nil
		}
		if !c.IsSource(path) {
			return nil
		}
		if err := c.ScanFile(ctx, path); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	if walkErr != nil {
		return walkErr
	}
	return errors.Join(errs...)
}

func (c *Codebase) skipDir(path string, info os.FileInfo) bool {
	if strings.HasPrefix(info.Name(), ".") {
		return true
	}
	if c.outDir == "" {
		return false
	}
	abs, err1 := filepath.Abs(path)
	out, err2 := filepath.Abs(c.outDir)
	return err1 == nil && err2 == nil && abs == out
}

func (c *Codebase) ScanFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return c.UpdateFile(ctx, path, content)
}

// UpdateFile processes content as the new text of path and, when an
// output directory is set, writes the result.
func (c *Codebase) UpdateFile(ctx context.Context, path string, content []byte) error {
	info := &FileInfo{Path: path, Content: content}
	res, err := c.pipeline.Process(ctx, content, path)
	if err != nil {
		info.Err = err
		c.log.Errorf("%s", err)
	} else {
		info.Root = res.Root
		info.Output = res.Output
		info.Applied = res.Applied
	}

	c.mu.Lock()
	c.files[path] = info
	c.mu.Unlock()

	if err != nil {
		return err
	}
	out := c.OutputPath(path)
	if out == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(info.Output), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	c.log.Infof("%s -> %s", path, out)
	return nil
}

// RemoveFile forgets path and deletes its output, if any.
func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	delete(c.files, path)
	c.mu.Unlock()

	if out := c.OutputPath(path); out != "" {
		if err := os.Remove(out); err != nil && !errors.Is(err, os.ErrNotExist) {
			c.log.Warningf("removing %s: %s", out, err)
		}
	}
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns the known paths in sorted order.
func (c *Codebase) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for p := range c.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
