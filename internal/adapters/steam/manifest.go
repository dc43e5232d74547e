package steam

import (
	"os"
	"strings"

	"github.com/andygrunwald/vdf"
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/zerr"
)

// keyValues is a decoded KeyValues object. Values are string or map[string]any.
type keyValues map[string]any

// readKeyValues decodes a text KeyValues file such as libraryfolders.vdf or an
// appmanifest.
func readKeyValues(path string) (keyValues, error) {
	//nolint:gosec // callers pass well-known Steam client files
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	doc, err := vdf.NewParser(f).Parse()
	if err != nil {
		wrapped := zerr.With(zerr.Wrap(domain.ErrInvalidParam, "malformed KeyValues file"), "path", path)
		return nil, zerr.With(wrapped, "cause", err.Error())
	}
	return doc, nil
}

// child returns the nested object under key, matched case-insensitively.
func (kv keyValues) child(key string) keyValues {
	for k, v := range kv {
		if strings.EqualFold(k, key) {
			if obj, ok := v.(map[string]any); ok {
				return obj
			}
		}
	}
	return nil
}

// str returns the string under key, matched case-insensitively.
func (kv keyValues) str(key string) (string, bool) {
	for k, v := range kv {
		if strings.EqualFold(k, key) {
			s, ok := v.(string)
			return s, ok
		}
	}
	return "", false
}
