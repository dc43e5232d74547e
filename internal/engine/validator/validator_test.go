package validator_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/engine/classifier"
	"go.trai.ch/nvshader/internal/engine/registry"
	"go.trai.ch/nvshader/internal/engine/validator"
)

func TestValidate_DeletedDirectory(t *testing.T) {
	base := t.TempDir()
	game := filepath.Join(base, "570")
	require.NoError(t, os.MkdirAll(game, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(game, "cache.foz"), slices.Concat(domain.FossilizeMagic, []byte{1, 2, 3}), 0o600))

	dxvk := filepath.Join(base, "Game.dxvk-cache")
	require.NoError(t, os.WriteFile(dxvk, append([]byte("DXVK"), make([]byte, 8)...), 0o600))

	reg := registry.New()
	reg.Replace([]domain.Entry{
		{Path: game, Type: domain.CacheFossilize, IsDirectory: true, GameID: "570", LastModified: time.Now()},
		{Path: dxvk, Type: domain.CacheDXVK, LastModified: time.Now()},
	})

	c, err := classifier.New(domain.DefaultLayouts())
	require.NoError(t, err)
	v := validator.New(c)

	report := v.Validate(reg.All())
	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, 0, report.InvalidCount())

	require.NoError(t, os.RemoveAll(game))

	report = v.Validate(reg.All())
	require.Equal(t, 1, report.InvalidCount())
	assert.Equal(t, game, report.Findings[0].Path)
	assert.ErrorIs(t, report.Findings[0].Reason, classifier.ErrMissing)
	assert.Equal(t, 2, reg.Len(), "validation never removes entries")
}

func TestValidate_Reasons(t *testing.T) {
	base := t.TempDir()

	empty := filepath.Join(base, "empty.dxvk-cache")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	corrupt := filepath.Join(base, "corrupt.dxvk-cache")
	require.NoError(t, os.WriteFile(corrupt, []byte("garbage-bytes"), 0o600))

	hollow := filepath.Join(base, "hollow")
	require.NoError(t, os.MkdirAll(filepath.Join(hollow, "sub"), 0o750))

	c, err := classifier.New(domain.DefaultLayouts())
	require.NoError(t, err)

	report := validator.New(c).Validate([]domain.Entry{
		{Path: empty, Type: domain.CacheDXVK},
		{Path: corrupt, Type: domain.CacheDXVK},
		{Path: hollow, Type: domain.CacheNVIDIA, IsDirectory: true},
	})

	require.Equal(t, 3, report.InvalidCount())
	assert.ErrorIs(t, report.Findings[0].Reason, classifier.ErrEmpty)
	assert.ErrorIs(t, report.Findings[1].Reason, classifier.ErrBadMagic)
	assert.ErrorIs(t, report.Findings[2].Reason, classifier.ErrNoRecognized)
}
