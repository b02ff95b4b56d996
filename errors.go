package tplocate

import (
	"errors"
	"fmt"
)

// Sentinel errors for locator operations.
// All use prefix "tplocate:" for identification. Callers should use errors.Is/errors.As.
var (
	ErrInvalidPath = errors.New("tplocate: template directory does not exist")
	ErrNotFound    = errors.New("tplocate: template not found")
	ErrInvalidName = errors.New("tplocate: invalid template name")
	ErrRead        = errors.New("tplocate: template read failed")
)

// PathError reports a root directory that could not be added to a Locator.
// Use errors.Is(err, ErrInvalidPath) and errors.As(err, &pathErr) to inspect.
type PathError struct {
	Op   string // "add", "prepend" or "set"
	Path string // path as given by the caller
	Err  error
}

// Error implements error.
func (e *PathError) Error() string {
	return fmt.Sprintf("tplocate: %s root %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/errors.As.
func (e *PathError) Unwrap() error { return e.Err }

// Compile-time check that PathError implements error.
var _ error = (*PathError)(nil)
