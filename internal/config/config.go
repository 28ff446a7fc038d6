// Package config loads dilint options files and delivers the flat option map
// that applies to each analyzed source file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// File names searched for, in order, in each directory.
const (
	FileName    = ".dilint.yaml"
	AltFileName = ".dilint.yml"
)

// Environment variables that override file settings.
const (
	EnvConfig    = "DILINT_CONFIG"
	EnvLogFormat = "DILINT_LOG_FORMAT"
	EnvLogLevel  = "DILINT_LOG_LEVEL"
)

// ErrNotFound is returned by Find when no options file exists above a directory.
var ErrNotFound = errors.New("no dilint options file found")

//go:embed templates/dilint.yaml
var template []byte

// Template returns the starter options file written by `dilint init`.
func Template() []byte {
	out := make([]byte, len(template))
	copy(out, template)
	return out
}

// Provider delivers the raw options that apply to a source file.
type Provider interface {
	OptionsFor(filename string) map[string]string
}

// Config is a parsed options file.
type Config struct {
	// Options apply to every file.
	Options map[string]Value `yaml:"options"`

	// Overrides apply to files matching their patterns; later entries win.
	Overrides []Override `yaml:"overrides"`

	Logging struct {
		Format string `yaml:"format"` // "text"|"json"
		Level  string `yaml:"level"`  // "debug"|"info"|"warn"|"error"
	} `yaml:"logging"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`

	// Dir is the directory override patterns are relative to.
	Dir string `yaml:"-"`
}

// Override sets options for the files matching any of its patterns.
type Override struct {
	Files   Patterns         `yaml:"files"`
	Options map[string]Value `yaml:"options"`

	globs []glob.Glob
}

// Default returns the configuration used when no options file exists.
func Default() *Config {
	c := &Config{Options: map[string]Value{}}
	c.Logging.Format = "text"
	c.Logging.Level = "info"
	return c
}

// Load reads and parses the options file at path.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading options file: %w", err)
	}

	c, err := Parse(data, filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", abs, err)
	}
	c.Path = abs
	return c, nil
}

// Parse decodes an options file whose override patterns are relative to dir.
func Parse(data []byte, dir string) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if c.Options == nil {
		c.Options = map[string]Value{}
	}
	c.Dir = dir

	for i := range c.Overrides {
		o := &c.Overrides[i]
		for _, pattern := range o.Files {
			g, err := glob.Compile(filepath.ToSlash(pattern), '/')
			if err != nil {
				return nil, fmt.Errorf("override %d: invalid pattern %q: %w", i, pattern, err)
			}
			o.globs = append(o.globs, g)
		}
	}
	return c, nil
}

// Find walks up from dir looking for an options file.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{FileName, AltFileName} {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// ApplyEnv overrides logging settings from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// OptionsFor returns the options for filename: the base options with every
// matching override applied in order.
func (c *Config) OptionsFor(filename string) map[string]string {
	out := make(map[string]string, len(c.Options))
	for k, v := range c.Options {
		out[k] = string(v)
	}

	rel, ok := c.relative(filename)
	if !ok {
		return out
	}
	for _, o := range c.Overrides {
		if !o.matches(rel) {
			continue
		}
		for k, v := range o.Options {
			out[k] = string(v)
		}
	}
	return out
}

// relative returns filename relative to the config directory in slash form.
// Files outside that directory match no override.
func (c *Config) relative(filename string) (string, bool) {
	if c.Dir == "" {
		return filepath.ToSlash(filename), true
	}
	rel, err := filepath.Rel(c.Dir, filename)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (o Override) matches(path string) bool {
	for _, g := range o.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Static is a Provider returning the same options for every file.
type Static map[string]string

// OptionsFor returns a copy of s.
func (s Static) OptionsFor(string) map[string]string {
	out := make(map[string]string, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Value is an option value. YAML scalars are kept verbatim and sequences are
// joined with commas, so `[a, b]` and `a,b` are equivalent.
type Value string

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = Value(node.Value)
		return nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: option list entries must be scalars", item.Line)
			}
			parts = append(parts, item.Value)
		}
		*v = Value(strings.Join(parts, ","))
		return nil
	default:
		return fmt.Errorf("line %d: option values must be scalars or lists", node.Line)
	}
}

// Patterns is a list of glob patterns that may be written as a single string.
type Patterns []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Patterns) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*p = Patterns{node.Value}
		return nil
	}
	var list []string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*p = list
	return nil
}
