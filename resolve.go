package tplocate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve returns the absolute, symlink-free path of the template name.
// Name is a "/"-separated path relative to a root; the default extension is appended when
// the name does not already end with it (case-insensitive). Roots are tried in order.
// Returns ErrNotFound when no root has the file, ErrInvalidName for empty, absolute or
// escaping names.
func (l *Locator) Resolve(name string) (string, error) {
	return l.resolve(l.snapshot(), name)
}

func (l *Locator) resolve(v view, name string) (string, error) {
	rel, err := qualify(name, v.ext)
	if err != nil {
		return "", err
	}
	if p, ok := find(v.roots, rel); ok {
		return p, nil
	}
	l.logger.Debug("tplocate: template not found", "name", name, "roots", len(v.roots))
	return "", fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Lookup is Resolve without an error: ok is false whenever Resolve would fail.
func (l *Locator) Lookup(name string) (string, bool) {
	p, err := l.Resolve(name)
	if err != nil {
		return "", false
	}
	return p, true
}

// Exists reports whether Resolve(name) would succeed.
func (l *Locator) Exists(name string) bool {
	_, ok := l.Lookup(name)
	return ok
}

// qualify appends the extension when missing and converts name to a local OS path.
// ext may itself contain dots ("html.twig"). A name ending in "." is rejected.
func qualify(name, ext string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.HasSuffix(name, ".") {
		return "", fmt.Errorf("%w: %q ends with a dot", ErrInvalidName, name)
	}
	if ext != "" && !hasExt(name, ext) {
		name += "." + ext
	}
	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q is not relative to a template root", ErrInvalidName, name)
	}
	return rel, nil
}

// hasExt reports whether name ends with "."+ext, ignoring case. ext must be lower-case.
func hasExt(name, ext string) bool {
	return strings.HasSuffix(strings.ToLower(name), "."+ext)
}

// find returns the first root/rel that resolves to a regular file.
func find(roots []string, rel string) (string, bool) {
	for _, root := range roots {
		p, err := filepath.EvalSymlinks(filepath.Join(root, rel))
		if err != nil {
			continue
		}
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		return p, true
	}
	return "", false
}
