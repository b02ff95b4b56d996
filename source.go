package tplocate

import (
	"fmt"
	"os"
	"time"
)

// Source is what a template engine needs from a template store: raw text with its
// modification time, staleness checks and enumeration. Locator implements it.
type Source interface {
	ReadSource(name string) ([]byte, time.Time, error)
	LastModified(name string) (time.Time, error)
	Verify(expect map[string]time.Time) bool
	Exists(name string) bool
	List() ([]string, error)
}

// ReadSource returns the contents of template name and its modification time.
// The mtime is read immediately before the contents; a concurrent writer can still slip in between.
// Returns ErrNotFound if the name does not resolve, ErrRead if the file cannot be read.
func (l *Locator) ReadSource(name string) ([]byte, time.Time, error) {
	v := l.snapshot()
	p, err := l.resolve(v, name)
	if err != nil {
		return nil, time.Time{}, err
	}
	mtime, err := l.modTime(p, v.clearStaleStats)
	if err != nil {
		return nil, time.Time{}, err
	}
	data, err := os.ReadFile(p) // #nosec G304 -- p is resolved under a configured root
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %s: %w", ErrRead, p, err)
	}
	return data, mtime, nil
}

// ReadSourceString is ReadSource returning the contents as a string.
func (l *Locator) ReadSourceString(name string) (string, time.Time, error) {
	data, mtime, err := l.ReadSource(name)
	if err != nil {
		return "", time.Time{}, err
	}
	return string(data), mtime, nil
}

// LastModified returns the modification time of template name.
func (l *Locator) LastModified(name string) (time.Time, error) {
	v := l.snapshot()
	p, err := l.resolve(v, name)
	if err != nil {
		return time.Time{}, err
	}
	return l.modTime(p, v.clearStaleStats)
}

// Verify reports whether every name in expect still resolves and its modification time
// equals the expected one. Stops at the first missing template or mismatch.
// An empty map verifies trivially.
func (l *Locator) Verify(expect map[string]time.Time) bool {
	v := l.snapshot()
	for name, want := range expect {
		p, err := l.resolve(v, name)
		if err != nil {
			return false
		}
		got, err := l.modTime(p, v.clearStaleStats)
		if err != nil || !got.Equal(want) {
			return false
		}
	}
	return true
}

func (l *Locator) modTime(p string, clearStale bool) (time.Time, error) {
	if clearStale {
		l.stats.Invalidate(p)
	}
	mtime, err := l.stats.ModTime(p)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %w", ErrRead, p, err)
	}
	return mtime, nil
}
