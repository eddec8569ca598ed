// Package transform runs the whole generation step for one source unit:
// parse, dispatch the annotations of every declaration, regenerate.
package transform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/phpgen/annotation"
	"github.com/dhamidi/phpgen/config"
	"github.com/dhamidi/phpgen/format"
	"github.com/dhamidi/phpgen/php/ast"
	"github.com/dhamidi/phpgen/php/parser"
	"github.com/tliron/commonlog"
)

type Option func(*Pipeline)

func WithRegistry(r *annotation.Registry) Option {
	return func(p *Pipeline) {
		p.registry = r
	}
}

func WithScanOptions(opts ...annotation.ScanOption) Option {
	return func(p *Pipeline) {
		p.scanOpts = append(p.scanOpts, opts...)
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// WithLayout re-indents the output with indent per level. An empty indent
// leaves the generated text as is.
func WithLayout(indent string) Option {
	return func(p *Pipeline) {
		p.indent = indent
	}
}

// ConfigOptions derives options from the phpgen.* keys of store.
func ConfigOptions(store *config.Store) []Option {
	var opts []Option
	if ignored := store.Strings(config.KeyIgnoredAnnotations, nil); len(ignored) > 0 {
		opts = append(opts, WithScanOptions(annotation.WithIgnored(ignored...)))
	}
	if store.Bool(config.KeyOutputPretty, true) {
		opts = append(opts, WithLayout(strings.Repeat(" ", store.Int(config.KeyOutputIndent, 4))))
	}
	return opts
}

type Pipeline struct {
	registry *annotation.Registry
	scanOpts []annotation.ScanOption
	indent   string
	log      commonlog.Logger
}

func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		log: commonlog.GetLogger("phpgen.transform"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = annotation.DefaultRegistry()
	}
	return p
}

// Result is the outcome of processing one source unit.
type Result struct {
	Name    string
	Output  string
	Applied []*annotation.Instance
	Root    *ast.Root
}

// Process parses src, applies its annotations and regenerates it. Any
// error aborts the unit; no partial output is returned.
func (p *Pipeline) Process(ctx context.Context, src []byte, name string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := parser.New(parser.WithFile(name)).Parse(src)
	if err != nil {
		return nil, err
	}

	dispatcher := annotation.NewDispatcher(p.registry, annotation.NewScanner(p.scanOpts...))
	applied, err := dispatcher.DispatchTree(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	output := root.Generate()
	if p.indent != "" {
		layout := format.NewLayout(nil)
		layout.SetIndent(p.indent)
		output = layout.Format(output)
	}

	p.log.Infof("%s: applied %d annotation(s)", name, len(applied))
	return &Result{
		Name:    name,
		Output:  output,
		Applied: applied,
		Root:    root,
	}, nil
}

// ProcessFile processes the file at in and writes the result to out,
// creating missing parent directories. Nothing is written on error.
func (p *Pipeline) ProcessFile(ctx context.Context, in, out string) (*Result, error) {
	src, err := os.ReadFile(in)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", in, err)
	}
	res, err := p.Process(ctx, src, in)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(res.Output), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", out, err)
	}
	p.log.Debugf("wrote %s", out)
	return res, nil
}
