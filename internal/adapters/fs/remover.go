// Package fs provides filesystem adapters for deleting cache units.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/zerr"
)

// Remover deletes cache units recursively.
type Remover struct {
	// protected paths are never removed, whatever the registry says.
	protected map[string]bool
}

// NewRemover creates a Remover that refuses to delete the filesystem root and
// any of the given protected paths.
func NewRemover(protected ...string) *Remover {
	r := &Remover{protected: map[string]bool{string(filepath.Separator): true}}
	for _, p := range protected {
		if p != "" {
			r.protected[filepath.Clean(p)] = true
		}
	}
	return r
}

// Remove deletes path and everything below it. A path that no longer exists
// is treated as removed.
func (r *Remover) Remove(path string) error {
	if path == "" || !filepath.IsAbs(path) {
		return zerr.With(zerr.Wrap(domain.ErrRemoveFailed, "refusing to remove relative path"), "path", path)
	}
	clean := filepath.Clean(path)
	if r.protected[clean] {
		return zerr.With(zerr.Wrap(domain.ErrRemoveFailed, "refusing to remove protected path"), "path", clean)
	}

	if err := os.RemoveAll(clean); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(domain.ErrRemoveFailed, err.Error()), "path", clean)
	}
	return nil
}
