package tplocate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/skosovsky/tplocate/internal/statcache"
)

// Ensures Locator implements Source.
var _ Source = (*Locator)(nil)

// Locator finds template files in an ordered list of root directories.
// The first root containing a name wins. Safe for concurrent use: mutators take a write lock,
// lookups copy the configuration under a read lock and touch the filesystem without it.
type Locator struct {
	mu              sync.RWMutex
	roots           []string
	ext             string
	clearStaleStats bool
	statTTL         time.Duration
	stats           *statcache.Cache
	logger          *slog.Logger
}

// view is a consistent copy of the mutable configuration for one operation.
type view struct {
	roots           []string
	ext             string
	clearStaleStats bool
}

// New creates a Locator searching roots in order. Every root must be an existing directory;
// roots may be empty and added later with AddRoot.
func New(roots []string, opts ...Option) (*Locator, error) {
	l := &Locator{
		ext:    DefaultExtension,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.stats = statcache.New(l.statTTL)
	if err := l.SetRoots(roots); err != nil {
		return nil, err
	}
	return l, nil
}

// NewSingle creates a Locator with one root.
func NewSingle(root string, opts ...Option) (*Locator, error) {
	return New([]string{root}, opts...)
}

// AddRoot appends a root directory. A root already in the list is not added twice.
// On error the list is left unchanged.
func (l *Locator) AddRoot(path string) error {
	root, err := canonicalRoot("add", path)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if slices.Contains(l.roots, root) {
		return nil
	}
	l.roots = append(l.roots, root)
	l.logger.Debug("tplocate: root added", "root", root)
	return nil
}

// PrependRoot inserts a root directory before all others, even if it is already listed,
// so its templates take priority. On error the list is left unchanged.
func (l *Locator) PrependRoot(path string) error {
	root, err := canonicalRoot("prepend", path)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.roots = slices.Insert(l.roots, 0, root)
	l.logger.Debug("tplocate: root prepended", "root", root)
	return nil
}

// SetRoots replaces the whole root list. Either every path is valid and the list is replaced,
// or the first invalid path is reported and the previous list is kept.
func (l *Locator) SetRoots(paths []string) error {
	roots := make([]string, 0, len(paths))
	for _, path := range paths {
		root, err := canonicalRoot("set", path)
		if err != nil {
			return err
		}
		if !slices.Contains(roots, root) {
			roots = append(roots, root)
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.roots = roots
	l.logger.Debug("tplocate: roots replaced", "count", len(roots))
	return nil
}

// Roots returns a copy of the root list in search order.
func (l *Locator) Roots() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.roots)
}

// Extension returns the default template extension without the leading dot.
func (l *Locator) Extension() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ext
}

// SetClearStaleStats toggles dropping cached mtimes before every metadata read.
func (l *Locator) SetClearStaleStats(enabled bool) {
	l.mu.Lock()
	l.clearStaleStats = enabled
	l.mu.Unlock()
}

func (l *Locator) snapshot() view {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return view{
		roots:           slices.Clone(l.roots),
		ext:             l.ext,
		clearStaleStats: l.clearStaleStats,
	}
}

// canonicalRoot turns path into an absolute, symlink-free directory path.
func canonicalRoot(op, path string) (string, error) {
	if path == "" {
		return "", &PathError{Op: op, Path: path, Err: fmt.Errorf("%w: empty path", ErrInvalidPath)}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &PathError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", ErrInvalidPath, err)}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &PathError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", ErrInvalidPath, err)}
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", &PathError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", ErrInvalidPath, err)}
	}
	if !info.IsDir() {
		return "", &PathError{Op: op, Path: path, Err: fmt.Errorf("%w: not a directory", ErrInvalidPath)}
	}
	return resolved, nil
}
