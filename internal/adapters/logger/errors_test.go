package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/nvshader/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "standard error",
			err:          errors.New("simple"),
			wantMessages: []string{"simple"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "zerr chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root"), "middle"), "outer"),
			wantMessages: []string{"outer", "middle", "root"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name:         "metadata folded onto stdlib cause",
			err:          zerr.With(errors.New("denied"), "path", "/x"),
			wantMessages: []string{"denied"},
			wantMetadata: []map[string]any{{"path": "/x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)
			assert.Len(t, entries, len(tt.wantMessages))
			for i := range tt.wantMessages {
				assert.Equal(t, tt.wantMessages[i], entries[i].Message)
				assert.Equal(t, tt.wantMetadata[i], entries[i].Metadata)
			}
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
		{
			name:    "single",
			entries: []logger.ErrorEntry{{Message: "boom"}},
			want:    "Error: boom",
		},
		{
			name: "chain with sorted metadata",
			entries: []logger.ErrorEntry{
				{Message: "outer", Metadata: map[string]any{"b": 2, "a": 1}},
				{Message: "inner\nsecond line"},
				{Message: "root", Metadata: map[string]any{"path": "/x"}},
			},
			want: "Error: outer\n       a: 1\n       b: 2\n\n  Caused by:\n    → inner\n      second line\n    → root\n      path: /x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
