package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nvshader/internal/adapters/logger"
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing to a buffer with colors disabled.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("scan complete") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("3 cache units could not be measured") },
			goldenName: "warn_basic",
		},
		{
			name:       "debug enabled",
			level:      "debug",
			log:        func(l *logger.Logger) { l.Debug("walking root") },
			goldenName: "debug_enabled",
		},
		{
			name:       "info suppressed at warn",
			level:      "warn",
			log:        func(l *logger.Logger) { l.Info("hidden"); l.Warn("shown") },
			goldenName: "warn_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			require.NoError(t, lg.SetLevel(tt.level))
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_DebugHiddenByDefault(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Debug("walking root")
	assert.Empty(t, buf.String())
}

func TestLogger_SetLevel_Invalid(t *testing.T) {
	lg, _ := newTestLogger(t)
	assert.ErrorIs(t, lg.SetLevel("loud"), domain.ErrInvalidParam)
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "stdlib error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name:       "sentinel with metadata",
			err:        zerr.With(zerr.Wrap(domain.ErrScanFailed, "no cache root is readable"), "roots", 2),
			goldenName: "error_sentinel",
		},
		{
			name: "metadata on stdlib cause",
			err: zerr.Wrap(
				zerr.With(errors.New("permission denied"), "path", "/cache/a"),
				"failed to evict cache unit",
			),
			goldenName: "error_stdlib_metadata",
		},
		{
			name:       "multiline",
			err:        errors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"),
			goldenName: "error_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(zerr.Wrap(domain.ErrGameNotFound, "no cache units for game"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"code":"GAME_NOT_FOUND"`)
	assert.NotContains(t, out, "✗")

	buf.Reset()
	lg.SetJSON(false)
	lg.Info("back to pretty")
	assert.Equal(t, "back to pretty\n", buf.String())
}

func TestLogger_ShortensHome(t *testing.T) {
	t.Setenv("HOME", "/home/gamer")
	lg, buf := newTestLogger(t)

	lg.Warn("failed to measure /home/gamer/.cache/dxvk-cache/Game.dxvk-cache")
	lg.Info("wrote /etc/nvshader.yaml")
	assert.Equal(t,
		"! failed to measure ~/.cache/dxvk-cache/Game.dxvk-cache\nwrote /etc/nvshader.yaml\n",
		buf.String())
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("HOME", "/home/gamer")
	buf := &bytes.Buffer{}

	h := logger.NewPrettyHandler(buf, nil).
		WithAttrs([]slog.Attr{slog.String("type", "fossilize")}).
		WithGroup("unit").
		WithGroup("replay")
	slog.New(h).Info("replayed", "path", "/home/gamer/.steam/shadercache/570")

	assert.Equal(t, "replayed unit.replay.type=fossilize unit.replay.path=~/.steam/shadercache/570\n", buf.String())
}
