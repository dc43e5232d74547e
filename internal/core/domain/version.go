package domain

import "fmt"

// Library version.
const (
	VersionMajor = 0
	VersionMinor = 1
	VersionPatch = 0
)

// PackedVersion returns the version as major<<16 | minor<<8 | patch.
func PackedVersion() uint32 {
	return uint32(VersionMajor)<<16 | uint32(VersionMinor)<<8 | uint32(VersionPatch)
}

// VersionString returns the dotted library version.
func VersionString() string {
	return fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}
