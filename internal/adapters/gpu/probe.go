// Package gpu detects an NVIDIA driver through the kernel's pseudo filesystems.
package gpu

import (
	"os"
	"path/filepath"
	"sync"
)

// markers are relative to the filesystem root. Any one of them present means
// the proprietary or open NVIDIA kernel module is loaded.
var markers = []string{
	"proc/driver/nvidia/version",
	"sys/module/nvidia",
	"dev/nvidiactl",
}

// Probe implements ports.GPUProbe. The result is computed once.
type Probe struct {
	root    string
	once    sync.Once
	present bool
}

// NewProbe creates a Probe inspecting the live system.
func NewProbe() *Probe {
	return NewProbeAt(string(filepath.Separator))
}

// NewProbeAt creates a Probe that resolves markers below root.
func NewProbeAt(root string) *Probe {
	return &Probe{root: root}
}

// IsNVIDIAPresent reports whether an NVIDIA kernel driver is loaded.
func (p *Probe) IsNVIDIAPresent() bool {
	p.once.Do(func() {
		for _, m := range markers {
			if _, err := os.Stat(filepath.Join(p.root, m)); err == nil {
				p.present = true
				return
			}
		}
	})
	return p.present
}
