// Package steam resolves Steam library folders and game titles from the
// client's KeyValues manifests.
package steam

import (
	"path/filepath"
	"slices"
)

const (
	libraryFoldersFile = "libraryfolders.vdf"
	manifestPrefix     = "appmanifest_"
	manifestExt        = ".acf"
)

// Libraries returns the steamapps directories of every Steam library known to
// the given client steamapps directories, including those directories
// themselves when they exist. Results are canonical and unique.
func Libraries(steamapps []string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		canonical, err := filepath.EvalSymlinks(p)
		if err != nil || seen[canonical] {
			return
		}
		seen[canonical] = true
		out = append(out, canonical)
	}

	for _, dir := range steamapps {
		add(dir)
		for _, lib := range readLibraryFolders(filepath.Join(dir, libraryFoldersFile)) {
			add(filepath.Join(lib, "steamapps"))
		}
	}

	slices.Sort(out)
	return out
}

// readLibraryFolders returns the library root paths listed in a
// libraryfolders.vdf. Unreadable or malformed files yield nothing.
func readLibraryFolders(path string) []string {
	doc, err := readKeyValues(path)
	if err != nil {
		return nil
	}
	folders := doc.child("libraryfolders")
	if folders == nil {
		return nil
	}

	var paths []string
	for _, v := range folders {
		switch lib := v.(type) {
		case map[string]any:
			if p, ok := keyValues(lib).str("path"); ok && p != "" {
				paths = append(paths, p)
			}
		case string:
			// Old format: "1" "/path/to/library".
			if filepath.IsAbs(lib) {
				paths = append(paths, lib)
			}
		}
	}
	slices.Sort(paths)
	return paths
}

// ShaderCacheRoots maps library steamapps directories to their shadercache
// directories.
func ShaderCacheRoots(libraries []string) []string {
	out := make([]string, 0, len(libraries))
	for _, lib := range libraries {
		out = append(out, filepath.Join(lib, "shadercache"))
	}
	return out
}
