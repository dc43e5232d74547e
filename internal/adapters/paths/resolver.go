// Package paths resolves the cache roots of every backend from the user's
// environment.
package paths

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/nvshader/internal/adapters/steam"
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/zerr"
)

// Environment variables honored by the drivers and translation layers.
const (
	EnvXDGCache       = "XDG_CACHE_HOME"
	EnvDXVKStateCache = "DXVK_STATE_CACHE_PATH"
	EnvVKD3DCache     = "VKD3D_SHADER_CACHE_PATH"
	EnvMesaCache      = "MESA_SHADER_CACHE_DIR"
	EnvNVIDIACache    = "__GL_SHADER_DISK_CACHE_PATH"
)

// Resolver implements ports.PathResolver.
type Resolver struct {
	getenv func(string) string
	home   func() (string, error)
	extra  map[domain.CacheType][]string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEnv replaces the environment lookup.
func WithEnv(getenv func(string) string) Option {
	return func(r *Resolver) { r.getenv = getenv }
}

// WithHome replaces the home directory lookup.
func WithHome(home string) Option {
	return func(r *Resolver) {
		r.home = func() (string, error) { return home, nil }
	}
}

// WithExtraRoots appends configured roots per type.
func WithExtraRoots(extra map[domain.CacheType][]string) Option {
	return func(r *Resolver) { r.extra = extra }
}

// Extend returns a copy of r that also yields the extra roots.
func (r *Resolver) Extend(extra map[domain.CacheType][]string) *Resolver {
	c := *r
	c.extra = extra
	return &c
}

// NewResolver creates a Resolver reading the process environment.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		getenv: os.Getenv,
		home:   os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Roots returns every candidate root per type. Roots need not exist; the
// scanner skips absent ones.
func (r *Resolver) Roots(_ context.Context) (map[domain.CacheType][]string, error) {
	home, err := r.home()
	if err != nil || home == "" {
		return nil, zerr.Wrap(domain.ErrHomeNotFound, "cannot locate cache roots")
	}

	roots := domain.DefaultRoots(home)

	if xdg := r.getenv(EnvXDGCache); xdg != "" && filepath.IsAbs(xdg) {
		defaultCache := filepath.Join(home, ".cache")
		for t, list := range roots {
			for i, p := range list {
				if rel, err := filepath.Rel(defaultCache, p); err == nil && filepath.IsLocal(rel) {
					list[i] = filepath.Join(xdg, rel)
				}
			}
			roots[t] = list
		}
	}

	overrides := map[string]domain.CacheType{
		EnvDXVKStateCache: domain.CacheDXVK,
		EnvVKD3DCache:     domain.CacheVKD3D,
		EnvMesaCache:      domain.CacheMesa,
		EnvNVIDIACache:    domain.CacheNVIDIA,
	}
	for env, t := range overrides {
		if p := r.getenv(env); p != "" {
			roots[t] = append(roots[t], expand(p, home))
		}
	}

	libraries := steam.Libraries(domain.SteamLibraryRoots(home))
	roots[domain.CacheFossilize] = append(roots[domain.CacheFossilize], steam.ShaderCacheRoots(libraries)...)

	for t, list := range r.extra {
		for _, p := range list {
			roots[t] = append(roots[t], expand(p, home))
		}
	}

	for t, list := range roots {
		roots[t] = unique(list)
	}
	return roots, nil
}

// expand resolves a leading "~/" against home and makes p absolute.
func expand(p, home string) string {
	if p == "~" {
		return home
	}
	if len(p) > 1 && p[0] == '~' && p[1] == filepath.Separator {
		return filepath.Join(home, p[2:])
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func unique(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, p := range list {
		p = filepath.Clean(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return slices.Clip(out)
}
