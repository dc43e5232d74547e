// Package cas persists prewarm history as one JSON document per game.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/zerr"
)

const recordExt = ".json"

// Store implements ports.PrewarmStore with a file per game id.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on the
// first write.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Get returns the record for gameID, or nil if none was stored.
func (s *Store) Get(gameID string) (*domain.PrewarmRecord, error) {
	return s.read(s.filename(gameID))
}

// Put stores record, replacing any previous record for the same game.
func (s *Store) Put(record domain.PrewarmRecord) error {
	if record.GameID == "" {
		return zerr.Wrap(domain.ErrInvalidParam, "prewarm record has no game id")
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	filename := s.filename(record.GameID)
	tmp := filename + ".tmp"
	//nolint:gosec // path is built from the state directory and a hashed name
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

// List returns every stored record ordered by game id. A missing directory
// yields no records.
func (s *Store) List() ([]domain.PrewarmRecord, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var records []domain.PrewarmRecord
	for _, d := range dirEntries {
		if d.IsDir() || !strings.HasSuffix(d.Name(), recordExt) {
			continue
		}
		record, err := s.read(filepath.Join(s.dir, d.Name()))
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, *record)
		}
	}

	slices.SortFunc(records, func(a, b domain.PrewarmRecord) int {
		return strings.Compare(a.GameID, b.GameID)
	})
	return records, nil
}

func (s *Store) read(filename string) (*domain.PrewarmRecord, error) {
	//nolint:gosec // path is built from the state directory and a hashed name
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var record domain.PrewarmRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "file", filename)
	}
	return &record, nil
}

func (s *Store) filename(gameID string) string {
	hash := sha256.Sum256([]byte(gameID))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+recordExt)
}
