package ports

import (
	"context"

	"layered-views/internal/types"
)

// FileCheckerPort is the only filesystem dependency of layout resolution.
type FileCheckerPort interface {
	// Exists reports whether a regular file exists at path.
	Exists(path string) bool

	// Canonical returns the absolute path with symlinks and relative
	// segments resolved.
	Canonical(path string) (string, error)
}

// LayoutExecutorPort executes a resolved layout file against a model and
// returns the produced text.  The model is passed through untouched.
type LayoutExecutorPort interface {
	Execute(ctx context.Context, layout types.ResolvedLayout, model any) (string, error)
}

// ResolutionCachePort memoizes successful resolutions.  Keys already
// encode the registry version, so a registry mutation never observes a
// stale entry; Flush exists for filesystem changes.
type ResolutionCachePort interface {
	Get(key string) (types.ResolvedLayout, bool)
	Set(key string, layout types.ResolvedLayout)
	Flush()
}
