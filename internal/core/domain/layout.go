package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// AppName is used for config and state directory names.
	AppName = "nvshader"

	// ConfigFileName is the name of the config file inside the config directory.
	ConfigFileName = "config.yaml"

	// StateDirName is the name of the prewarm history directory inside the state root.
	StateDirName = "prewarm"

	// ReplayBinary is the default name of the Fossilize replay tool.
	ReplayBinary = "fossilize-replay"

	// FossilizeExt is the extension of Fossilize database files.
	FossilizeExt = ".foz"

	// DXVKExt is the extension of DXVK state cache files.
	DXVKExt = ".dxvk-cache"

	// DXVKHeaderSize is the fixed size of a DXVK state cache header.
	DXVKHeaderSize = 12

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Container magics.
var (
	DXVKMagic      = []byte("DXVK")
	FossilizeMagic = []byte("\x81FOSSILIZEDB")
)

// Shape restricts which kind of child a layout rule accepts as a unit.
type Shape int

const (
	// ShapeAny accepts files and directories.
	ShapeAny Shape = iota
	// ShapeDir accepts directories only.
	ShapeDir
	// ShapeFile accepts regular files only.
	ShapeFile
)

var shapeNames = []string{"any", "dir", "file"}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// ParseShape converts a config string into a Shape.
func ParseShape(s string) (Shape, error) {
	for i, n := range shapeNames {
		if strings.EqualFold(n, s) {
			return Shape(i), nil
		}
	}
	if s == "" {
		return ShapeAny, nil
	}
	return 0, zerr.With(zerr.Wrap(ErrInvalidParam, "unknown layout shape"), "shape", s)
}

// CountRule selects how the number of records in a unit is derived.
type CountRule int

const (
	// CountNone leaves the entry count at zero.
	CountNone CountRule = iota
	// CountChildren counts immediate children of a directory unit.
	CountChildren
	// CountFiles counts regular files anywhere below the unit.
	CountFiles
	// CountContainers counts files carrying the rule's container extension.
	CountContainers
	// CountRecords derives the count from a DXVK state cache header.
	CountRecords
)

var countRuleNames = []string{"none", "children", "files", "containers", "records"}

func (c CountRule) String() string {
	if c < 0 || int(c) >= len(countRuleNames) {
		return "unknown"
	}
	return countRuleNames[c]
}

// ParseCountRule converts a config string into a CountRule.
func ParseCountRule(s string) (CountRule, error) {
	for i, n := range countRuleNames {
		if strings.EqualFold(n, s) {
			return CountRule(i), nil
		}
	}
	if s == "" {
		return CountNone, nil
	}
	return 0, zerr.With(zerr.Wrap(ErrInvalidParam, "unknown count rule"), "count", s)
}

// LayoutRule describes how one cache type is laid out on disk.
//
// Match is applied to the base name of each child of a root. Its optional
// named groups "game" and "appid" populate the entry's identity. Children
// that do not match, or that match an Ignore glob, are noise.
type LayoutRule struct {
	Match     string
	Shape     Shape
	Aggregate bool
	Count     CountRule
	Magic     []byte
	MagicExt  string
	Ignore    []string
}

// DefaultIgnore lists the noise patterns shared by every layout.
func DefaultIgnore() []string {
	return []string{".*", "*.lock", "*.tmp", "*.temp", "*~"}
}

// DefaultLayouts returns the built-in layout rules for every cache type.
func DefaultLayouts() map[CacheType]LayoutRule {
	return map[CacheType]LayoutRule{
		CacheDXVK: {
			Match:    `^(?:(?P<game>.+)\.dxvk-cache|.+)$`,
			Shape:    ShapeAny,
			Count:    CountRecords,
			Magic:    DXVKMagic,
			MagicExt: DXVKExt,
			Ignore:   DefaultIgnore(),
		},
		CacheVKD3D: {
			Match:  `^(?:(?P<game>.+)\.vkd3d(?:-proton)?\.cache|.+)$`,
			Shape:  ShapeAny,
			Count:  CountFiles,
			Ignore: append(DefaultIgnore(), "*.write"),
		},
		CacheNVIDIA: {
			Match:  `^.+$`,
			Shape:  ShapeDir,
			Count:  CountChildren,
			Ignore: append(DefaultIgnore(), "index"),
		},
		CacheMesa: {
			Match:     `^.+$`,
			Aggregate: true,
			Count:     CountFiles,
			Ignore:    DefaultIgnore(),
		},
		CacheFossilize: {
			Match:    `^(?P<appid>[0-9]+)$`,
			Shape:    ShapeDir,
			Count:    CountContainers,
			Magic:    FossilizeMagic,
			MagicExt: FossilizeExt,
			Ignore:   DefaultIgnore(),
		},
	}
}

// DefaultRoots returns the conventional cache roots relative to home.
func DefaultRoots(home string) map[CacheType][]string {
	return map[CacheType][]string{
		CacheDXVK:  {filepath.Join(home, ".cache", "dxvk-cache")},
		CacheVKD3D: {filepath.Join(home, ".cache", "vkd3d-proton")},
		CacheNVIDIA: {
			filepath.Join(home, ".nv", "ComputeCache"),
			filepath.Join(home, ".nv", "GLCache"),
			filepath.Join(home, ".cache", "nvidia", "GLCache"),
		},
		CacheMesa: {
			filepath.Join(home, ".cache", "mesa_shader_cache"),
			filepath.Join(home, ".cache", "mesa_shader_cache_db"),
		},
		CacheFossilize: {
			filepath.Join(home, ".steam", "steam", "steamapps", "shadercache"),
			filepath.Join(home, ".local", "share", "Steam", "steamapps", "shadercache"),
		},
	}
}

// SteamLibraryRoots returns the conventional steamapps directories relative to home.
func SteamLibraryRoots(home string) []string {
	return []string{
		filepath.Join(home, ".steam", "steam", "steamapps"),
		filepath.Join(home, ".local", "share", "Steam", "steamapps"),
	}
}
