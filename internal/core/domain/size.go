package domain

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"go.trai.ch/zerr"
)

var sizeSuffixes = []struct {
	suffix string
	shift  uint
}{
	{"eib", 60}, {"pib", 50}, {"tib", 40}, {"gib", 30}, {"mib", 20}, {"kib", 10},
	{"eb", 60}, {"pb", 50}, {"tb", 40}, {"gb", 30}, {"mb", 20}, {"kb", 10},
	{"e", 60}, {"p", 50}, {"t", 40}, {"g", 30}, {"m", 20}, {"k", 10},
	{"b", 0},
}

// ParseSize parses a byte size such as "512", "10G", "1.5GiB" or "200MB".
// All suffixes are binary multiples.
func ParseSize(s string) (int64, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return 0, zerr.Wrap(ErrInvalidParam, "empty size")
	}

	shift := uint(0)
	for _, sfx := range sizeSuffixes {
		if strings.HasSuffix(raw, sfx.suffix) {
			raw = strings.TrimSpace(strings.TrimSuffix(raw, sfx.suffix))
			shift = sfx.shift
			break
		}
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n < 0 || (shift > 0 && n > (1<<63-1)>>shift) {
			return 0, zerr.With(zerr.Wrap(ErrInvalidParam, "size out of range"), "size", s)
		}
		return n << shift, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0, zerr.With(zerr.Wrap(ErrInvalidParam, "malformed size"), "size", s)
	}
	v := f * float64(uint64(1)<<shift)
	if v >= 1<<63 {
		return 0, zerr.With(zerr.Wrap(ErrInvalidParam, "size out of range"), "size", s)
	}
	return int64(v), nil
}

// FormatBytes renders a byte count with a binary unit, e.g. "1.5 GiB".
// Negative counts render as zero.
func FormatBytes(b int64) string {
	if b < 0 {
		b = 0
	}
	return humanize.IBytes(uint64(b))
}
