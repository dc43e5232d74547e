// Package domain holds the core types of the shader cache inventory.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// CacheType identifies which graphics stack produced a cache unit.
type CacheType int

// Known cache types. The set is closed.
const (
	CacheDXVK CacheType = iota
	CacheVKD3D
	CacheNVIDIA
	CacheMesa
	CacheFossilize
)

// NumCacheTypes is the number of known cache types.
const NumCacheTypes = 5

var cacheTypeNames = [NumCacheTypes]string{
	CacheDXVK:      "dxvk",
	CacheVKD3D:     "vkd3d",
	CacheNVIDIA:    "nvidia",
	CacheMesa:      "mesa",
	CacheFossilize: "fossilize",
}

// AllCacheTypes returns every cache type in declaration order.
func AllCacheTypes() []CacheType {
	return []CacheType{CacheDXVK, CacheVKD3D, CacheNVIDIA, CacheMesa, CacheFossilize}
}

// Valid reports whether t is one of the known cache types.
func (t CacheType) Valid() bool {
	return t >= CacheDXVK && t <= CacheFossilize
}

func (t CacheType) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return cacheTypeNames[t]
}

// MarshalText implements encoding.TextMarshaler.
func (t CacheType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *CacheType) UnmarshalText(b []byte) error {
	parsed, err := ParseCacheType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseCacheType converts a case-insensitive name into a CacheType.
func ParseCacheType(s string) (CacheType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "vkd3d-proton" {
		name = "vkd3d"
	}
	for i, n := range cacheTypeNames {
		if n == name {
			return CacheType(i), nil
		}
	}
	return 0, zerr.With(zerr.Wrap(ErrInvalidParam, "unknown cache type"), "type", s)
}
