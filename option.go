package tplocate

import (
	"log/slog"
	"strings"
	"time"
)

// DefaultExtension is appended to template names that lack it.
const DefaultExtension = "tpl"

// Option configures a Locator (functional options pattern).
type Option func(*Locator)

// WithExtension sets the default template extension ("tpl", ".tpl" and "TPL" are equivalent).
// An empty value keeps DefaultExtension.
func WithExtension(ext string) Option {
	return func(l *Locator) {
		if ext = normalizeExt(ext); ext != "" {
			l.ext = ext
		}
	}
}

// WithClearStaleStats makes every mtime read drop the cached stat for the file first.
// Same as calling SetClearStaleStats after construction.
func WithClearStaleStats(enabled bool) Option {
	return func(l *Locator) {
		l.clearStaleStats = enabled
	}
}

// WithStatCacheTTL caches file modification times for d.
// Default is 0: no caching, every read goes to the filesystem.
func WithStatCacheTTL(d time.Duration) Option {
	return func(l *Locator) {
		l.statTTL = d
	}
}

// WithLogger sets the logger for root changes and lookup misses. If lg is nil, slog.Default() is kept.
func WithLogger(lg *slog.Logger) Option {
	return func(l *Locator) {
		if lg != nil {
			l.logger = lg
		}
	}
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
