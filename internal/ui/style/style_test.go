package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/nvshader/internal/ui/style"
)

func TestPad(t *testing.T) {
	assert.Equal(t, "dxvk    ", style.Pad("dxvk", 8))
	assert.Equal(t, "    12.0", style.PadLeft("12.0", 8))
	assert.Equal(t, "overflow", style.Pad("overflow", 4))
}
