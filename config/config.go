// Package config loads Locator settings from a YAML file.
//
//	roots: [templates/site, templates/base]
//	extension: tpl
//	clear_stale_stats: true
//	stat_cache_ttl: 2s
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skosovsky/tplocate"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for malformed or incomplete config files.
var ErrInvalidConfig = errors.New("config: locator config is malformed")

// File is the YAML shape of a locator config.
type File struct {
	Roots           []string      `yaml:"roots"`
	Extension       string        `yaml:"extension"`
	ClearStaleStats bool          `yaml:"clear_stale_stats"`
	StatCacheTTL    time.Duration `yaml:"stat_cache_ttl"`
}

// ParseBytes parses a YAML config. Relative roots are left as-is and resolve against the
// working directory when the Locator is built.
func ParseBytes(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// ParseFile reads and parses a config file. Relative roots are resolved against the
// directory containing the file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the operator
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	f, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i, root := range f.Roots {
		if !filepath.IsAbs(root) {
			f.Roots[i] = filepath.Join(base, root)
		}
	}
	return f, nil
}

// ParseFS reads and parses a config from fs.FS (e.g. embed.FS). Roots still name directories
// on the real filesystem.
func ParseFS(fsys fs.FS, name string) (*File, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("config: read fs: %w", err)
	}
	return ParseBytes(data)
}

// Options converts the file into Locator options.
func (f *File) Options() []tplocate.Option {
	opts := []tplocate.Option{tplocate.WithClearStaleStats(f.ClearStaleStats)}
	if f.Extension != "" {
		opts = append(opts, tplocate.WithExtension(f.Extension))
	}
	if f.StatCacheTTL > 0 {
		opts = append(opts, tplocate.WithStatCacheTTL(f.StatCacheTTL))
	}
	return opts
}

// Build creates a Locator from the file. Extra options are applied after the file's own,
// so they win (typically WithLogger).
func (f *File) Build(opts ...tplocate.Option) (*tplocate.Locator, error) {
	return tplocate.New(f.Roots, append(f.Options(), opts...)...)
}

// Load is ParseFile followed by Build.
func Load(path string, opts ...tplocate.Option) (*tplocate.Locator, error) {
	f, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return f.Build(opts...)
}

func (f *File) validate() error {
	if len(f.Roots) == 0 {
		return fmt.Errorf("%w: missing roots", ErrInvalidConfig)
	}
	for i, root := range f.Roots {
		if strings.TrimSpace(root) == "" {
			return fmt.Errorf("%w: root %d is empty", ErrInvalidConfig, i)
		}
	}
	if f.StatCacheTTL < 0 {
		return fmt.Errorf("%w: negative stat_cache_ttl %s", ErrInvalidConfig, f.StatCacheTTL)
	}
	return nil
}
