package ports

import "go.trai.ch/nvshader/internal/core/domain"

// PrewarmStore persists the outcome of the last prewarm run per game.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type PrewarmStore interface {
	// Get returns the record for gameID, or nil if none exists.
	Get(gameID string) (*domain.PrewarmRecord, error)
	// Put stores the record, replacing any previous one for the same game.
	Put(record domain.PrewarmRecord) error
	// List returns every stored record ordered by game id.
	List() ([]domain.PrewarmRecord, error)
}
