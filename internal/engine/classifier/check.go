package classifier

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/zerr"
)

// Structural check failures.
var (
	ErrMissing      = zerr.New("unit is missing")
	ErrUnreadable   = zerr.New("unit is unreadable")
	ErrEmpty        = zerr.New("unit is empty")
	ErrBadMagic     = zerr.New("container marker mismatch")
	ErrNoRecognized = zerr.New("directory has no recognizable entries")
)

var errStopWalk = errors.New("stop walk")

// Check verifies the structure of a unit without interpreting shader data.
// It returns nil for a valid unit and a descriptive error otherwise.
func (c *Classifier) Check(e domain.Entry) error {
	info, err := os.Stat(e.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(ErrMissing, "stat failed"), "path", e.Path)
		}
		return zerr.With(zerr.Wrap(ErrUnreadable, err.Error()), "path", e.Path)
	}

	if !info.IsDir() {
		return c.checkFile(e.Type, e.Path, info.Size())
	}
	return c.checkDir(e.Type, e.Path)
}

func (c *Classifier) checkFile(t domain.CacheType, path string, size int64) error {
	if size == 0 {
		return zerr.With(zerr.Wrap(ErrEmpty, "zero-length file"), "path", path)
	}
	rule := c.rule(t)
	if len(rule.Magic) == 0 || !c.IsContainer(t, filepath.Base(path)) {
		return nil
	}
	return checkMagic(path, rule.Magic)
}

func (c *Classifier) checkDir(t domain.CacheType, path string) error {
	recognized := false
	var firstErr error

	walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == path {
				return err
			}
			if firstErr == nil {
				firstErr = zerr.With(zerr.Wrap(ErrUnreadable, err.Error()), "path", p)
			}
			return nil
		}
		if p == path {
			return nil
		}
		if c.Ignored(t, d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() == 0 {
			return nil
		}
		if c.IsContainer(t, d.Name()) && len(c.rule(t).Magic) > 0 {
			if err := checkMagic(p, c.rule(t).Magic); err != nil {
				firstErr = err
				return errStopWalk
			}
		}
		recognized = true
		return nil
	})

	if walkErr != nil && !errors.Is(walkErr, errStopWalk) {
		return zerr.With(zerr.Wrap(ErrUnreadable, walkErr.Error()), "path", path)
	}
	if firstErr != nil {
		return firstErr
	}
	if !recognized {
		return zerr.With(zerr.Wrap(ErrNoRecognized, "no non-empty files found"), "path", path)
	}
	return nil
}

func checkMagic(path string, magic []byte) error {
	//nolint:gosec // path comes from a scanned cache root
	f, err := os.Open(path)
	if err != nil {
		return zerr.With(zerr.Wrap(ErrUnreadable, err.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, len(magic))
	if _, err := io.ReadFull(f, head); err != nil {
		return zerr.With(zerr.Wrap(ErrBadMagic, "file shorter than marker"), "path", path)
	}
	if !bytes.Equal(head, magic) {
		return zerr.With(zerr.Wrap(ErrBadMagic, "unexpected header"), "path", path)
	}
	return nil
}

// dxvkRecords reads a DXVK state cache header and derives the record count
// for fixed-size formats. Newer formats with variable-size records yield zero.
func dxvkRecords(path string, size int64) int64 {
	//nolint:gosec // path comes from a scanned cache root
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer func() { _ = f.Close() }()

	var header [domain.DXVKHeaderSize]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return 0
	}
	if !bytes.Equal(header[:4], domain.DXVKMagic) {
		return 0
	}

	entrySize := int64(binary.LittleEndian.Uint32(header[8:12]))
	if entrySize == 0 || size <= domain.DXVKHeaderSize {
		return 0
	}
	return (size - domain.DXVKHeaderSize) / entrySize
}
