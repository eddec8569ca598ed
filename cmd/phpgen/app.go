package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/phpgen/codebase"
	"github.com/dhamidi/phpgen/config"
	"github.com/dhamidi/phpgen/transform"
)

// defaultConfigFiles are tried in order when --config is not given.
var defaultConfigFiles = []string{"phpgen.yaml", "phpgen.yml", "phpgen.toml", "phpgen.json"}

// app carries the state shared by all subcommands.
type app struct {
	verbosity  int
	configPath string
	config     *config.Store
}

func (a *app) loadConfig() error {
	a.config = config.New()
	a.config.SetEnvPrefix("phpgen")

	path := a.configPath
	if path == "" {
		for _, candidate := range defaultConfigFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return nil
	}
	if err := a.config.Load(path, "phpgen"); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (a *app) pipeline(extra ...transform.Option) *transform.Pipeline {
	opts := transform.ConfigOptions(a.config)
	return transform.New(append(opts, extra...)...)
}

func (a *app) indent() string {
	return strings.Repeat(" ", a.config.Int(config.KeyOutputIndent, 4))
}

func (a *app) codebase(root, outDir string) *codebase.Codebase {
	opts := []codebase.Option{codebase.WithPipeline(a.pipeline())}
	if outDir == "" {
		outDir = a.config.String(config.KeyOutputDir, "")
	}
	if outDir != "" {
		opts = append(opts, codebase.WithOutputDir(outDir))
	}
	if exts := a.config.Strings(config.KeySourceExtensions, nil); len(exts) > 0 {
		opts = append(opts, codebase.WithExtensions(exts...))
	}
	return codebase.New(root, opts...)
}
