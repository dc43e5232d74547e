package steam

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/zerr"
)

// DefaultCacheSize bounds the number of remembered lookups.
const DefaultCacheSize = 512

type cached struct {
	name string
	ok   bool
}

// Lookup implements ports.GameNameLookup from appmanifest files. Both hits
// and misses are cached. It is safe for concurrent use.
type Lookup struct {
	libraries func() []string
	cache     *lru.Cache[string, cached]
}

// NewLookup creates a Lookup searching the libraries returned by libraries.
// The function is called on the first lookup and its result reused.
func NewLookup(libraries func() []string, size int) (*Lookup, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, cached](size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create game name cache")
	}

	return &Lookup{
		libraries: sync.OnceValue(libraries),
		cache:     cache,
	}, nil
}

// Lookup returns the title recorded in appmanifest_<gameID>.acf. Non-numeric
// ids never match.
func (l *Lookup) Lookup(ctx context.Context, gameID string) (string, bool) {
	if !isAppID(gameID) || ctx.Err() != nil {
		return "", false
	}
	if c, ok := l.cache.Get(gameID); ok {
		return c.name, c.ok
	}

	result := cached{}
	for _, lib := range l.libraries() {
		if name, ok := readManifestName(filepath.Join(lib, manifestPrefix+gameID+manifestExt)); ok {
			result = cached{name: name, ok: true}
			break
		}
	}
	l.cache.Add(gameID, result)
	return result.name, result.ok
}

func readManifestName(path string) (string, bool) {
	doc, err := readKeyValues(path)
	if err != nil {
		return "", false
	}
	name, ok := doc.child("AppState").str("name")
	if !ok || strings.TrimSpace(name) == "" {
		return "", false
	}
	return name, true
}

func isAppID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
