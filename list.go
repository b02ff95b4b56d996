package tplocate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// List returns the names of all templates with the default extension, relative to their root
// and "/"-separated. A name present under several roots is listed once; which file it resolves
// to is up to Resolve. Hidden files and directories are skipped. The result is sorted.
func (l *Locator) List() ([]string, error) {
	return l.ListExt("")
}

// ListExt is List for an explicit extension ("html", ".html" and "HTML" are equivalent).
// An empty ext means the default extension.
func (l *Locator) ListExt(ext string) ([]string, error) {
	v := l.snapshot()
	ext = normalizeExt(ext)
	if ext == "" {
		ext = v.ext
	}
	seen := make(map[string]struct{})
	for _, root := range v.roots {
		if err := l.collect(root, ext, seen); err != nil {
			return nil, err
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (l *Locator) collect(root, ext string, seen map[string]struct{}) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return fmt.Errorf("%w: walk %s: %w", ErrRead, root, err)
			}
			l.logger.Warn("tplocate: skipping unreadable entry", "root", root, "path", p, "err", err)
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !hasExt(d.Name(), ext) || !isFile(p, d) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRead, err)
		}
		seen[filepath.ToSlash(rel)] = struct{}{}
		return nil
	})
}

// isFile reports whether d is a regular file or a symlink to one.
func isFile(p string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
