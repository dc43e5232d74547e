package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nvshader/internal/adapters/fs"
	"go.trai.ch/nvshader/internal/core/domain"
)

func TestRemover_RemovesTree(t *testing.T) {
	base := t.TempDir()
	unit := filepath.Join(base, "570")
	require.NoError(t, os.MkdirAll(filepath.Join(unit, "fozpipelinesv6"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(unit, "fozpipelinesv6", "a.foz"), []byte("x"), 0o600))

	r := fs.NewRemover()
	require.NoError(t, r.Remove(unit))
	assert.NoDirExists(t, unit)
	assert.DirExists(t, base)
}

func TestRemover_MissingIsRemoved(t *testing.T) {
	r := fs.NewRemover()
	assert.NoError(t, r.Remove(filepath.Join(t.TempDir(), "gone")))
}

func TestRemover_Refuses(t *testing.T) {
	home := t.TempDir()
	r := fs.NewRemover(home)

	tests := []struct {
		name string
		path string
	}{
		{name: "empty", path: ""},
		{name: "relative", path: "cache/unit"},
		{name: "root", path: "/"},
		{name: "protected", path: home + "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Remove(tt.path)
			assert.ErrorIs(t, err, domain.ErrRemoveFailed)
		})
	}
	assert.DirExists(t, home)
}
