package app

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/nvshader/internal/core/domain"
)

// ListOptions narrows the units printed by List.
type ListOptions struct {
	// Types restricts the output to these cache type names.
	Types []string
	// Game matches a game id or name, ignoring case.
	Game string
}

// Scan discovers every cache unit and prints the aggregate view.
func (a *App) Scan(ctx context.Context, opts Options) error {
	rt, err := a.scanned(ctx, opts)
	if err != nil {
		return err
	}
	defer a.close(rt)

	stats, err := rt.session.Stats()
	if err != nil {
		return err
	}
	count, err := rt.session.EntryCount()
	if err != nil {
		return err
	}
	a.Logger.Info(fmt.Sprintf("scan complete: %d units, %s", count, domain.FormatBytes(stats.TotalSizeBytes)))
	return rt.render.Stats(stats)
}

// Stats prints per-type totals and the age range of the inventory.
func (a *App) Stats(ctx context.Context, opts Options) error {
	rt, err := a.scanned(ctx, opts)
	if err != nil {
		return err
	}
	defer a.close(rt)

	stats, err := rt.session.Stats()
	if err != nil {
		return err
	}
	return rt.render.Stats(stats)
}

// List prints one row per unit, sorted by path.
func (a *App) List(ctx context.Context, opts Options, list ListOptions) error {
	types := make([]domain.CacheType, 0, len(list.Types))
	for _, name := range list.Types {
		t, err := domain.ParseCacheType(name)
		if err != nil {
			return err
		}
		types = append(types, t)
	}

	rt, err := a.scanned(ctx, opts)
	if err != nil {
		return err
	}
	defer a.close(rt)

	entries, err := rt.session.Entries(types...)
	if err != nil {
		return err
	}
	if list.Game != "" {
		entries = filterGame(entries, list.Game)
	}
	return rt.render.Entries(entries)
}

func filterGame(entries []domain.Entry, game string) []domain.Entry {
	var out []domain.Entry
	for _, e := range entries {
		if strings.EqualFold(e.GameID, game) || strings.EqualFold(e.GameName, game) {
			out = append(out, e)
		}
	}
	return out
}
