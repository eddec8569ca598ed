// Package config holds generator settings as flat dotted keys. Files are
// read as YAML, TOML or JSON and nested tables are flattened under a
// namespace, so that
//
//	output:
//	  pretty: true
//
// loaded into namespace "phpgen" becomes the key "phpgen.output.pretty".
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const DefaultNamespace = "default"

// Keys read by the generator.
const (
	KeyIgnoredAnnotations = "phpgen.annotations.ignore"
	KeyOutputPretty       = "phpgen.output.pretty"
	KeyOutputIndent       = "phpgen.output.indent"
	KeyOutputDir          = "phpgen.output.dir"
	KeySourceExtensions   = "phpgen.source.extensions"
)

type Format int

const (
	FormatAuto Format = iota
	FormatYAML
	FormatTOML
	FormatJSON
)

var formatNames = map[Format]string{
	FormatAuto: "auto",
	FormatYAML: "yaml",
	FormatTOML: "toml",
	FormatJSON: "json",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// DetectFormat picks a format from the file extension. Unknown extensions
// are read as YAML, which also accepts JSON documents.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Store is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	values    map[string]any
	envPrefix string
}

func New() *Store {
	return &Store{values: make(map[string]any)}
}

// SetEnvPrefix makes lookups consult the environment first. With prefix
// "phpgen" the key "phpgen.output.dir" is read from PHPGEN_OUTPUT_DIR and
// "default.db.host" from PHPGEN_DEFAULT_DB_HOST.
func (s *Store) SetEnvPrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envPrefix = prefix
}

// Load reads path and merges its flattened keys under namespace. An empty
// namespace means DefaultNamespace. Later loads override earlier keys.
func (s *Store) Load(path, namespace string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := s.LoadBytes(data, DetectFormat(path), namespace); err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	return nil
}

func (s *Store) LoadBytes(data []byte, format Format, namespace string) error {
	tree, err := parseContent(data, format)
	if err != nil {
		return err
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	flatten(namespace, tree, s.values)
	return nil
}

func parseContent(data []byte, format Format) (map[string]any, error) {
	var tree map[string]any
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("JSON parse error: %w", err)
		}
	case FormatYAML, FormatAuto:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return tree, nil
}

func flatten(prefix string, tree map[string]any, into map[string]any) {
	for k, v := range tree {
		key := prefix + "." + k
		switch v := v.(type) {
		case map[string]any:
			flatten(key, v, into)
		case map[any]any:
			nested := make(map[string]any, len(v))
			for nk, nv := range v {
				nested[fmt.Sprint(nk)] = nv
			}
			flatten(key, nested, into)
		default:
			into[key] = v
		}
	}
}

func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Get returns the raw value stored under key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.envPrefix != "" {
		if v, ok := os.LookupEnv(envName(s.envPrefix, key)); ok {
			return v, true
		}
	}
	v, ok := s.values[key]
	return v, ok
}

func envName(prefix, key string) string {
	key = strings.TrimPrefix(key, strings.ToLower(prefix)+".")
	name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	return strings.ToUpper(prefix) + "_" + name
}

func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Keys returns all stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) String(key, def string) string {
	v, ok := s.Get(key)
	if !ok || v == nil {
		return def
	}
	switch v := v.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (s *Store) Int(key string, def int) int {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	switch v := v.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func (s *Store) Bool(key string, def bool) bool {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	switch v := v.(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

// Strings returns a list value. A scalar string is split on commas.
func (s *Store) Strings(key string, def []string) []string {
	v, ok := s.Get(key)
	if !ok || v == nil {
		return def
	}
	switch v := v.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = fmt.Sprintf("%v", item)
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return def
}
