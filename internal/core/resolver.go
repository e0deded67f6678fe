package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"layered-views/internal/ports"
	"layered-views/internal/types"
)

// PathResolver maps logical layout names to files by probing the search
// paths of a registry in priority order.  The first existing file wins.
type PathResolver struct {
	files ports.FileCheckerPort
	cache ports.ResolutionCachePort
}

func NewPathResolver(files ports.FileCheckerPort) PathResolver {
	return PathResolver{files: files}
}

// WithCache returns a copy of the resolver that memoizes hits in cache.
func (r PathResolver) WithCache(cache ports.ResolutionCachePort) PathResolver {
	r.cache = cache
	return r
}

// Resolve returns (layout, true, nil) on a hit and (zero, false, nil) when
// no search path holds the file.  Malformed names fail with an
// *InvalidLayoutNameError.
func (r PathResolver) Resolve(ctx context.Context, registry *SearchPathRegistry, name string, extension string) (types.ResolvedLayout, bool, error) {
	sanitized, err := SanitizeLayoutName(name)
	if err != nil {
		return types.ResolvedLayout{}, false, err
	}
	ext, err := SanitizeExtension(extension)
	if err != nil {
		return types.ResolvedLayout{}, false, err
	}
	if registry == nil {
		return types.ResolvedLayout{}, false, nil
	}

	key := cacheKey(registry, sanitized, ext)
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			log.Debug().
				Str("layout", sanitized).
				Str("path", cached.Path).
				Msg("layout resolved from cache")
			return cached, true, nil
		}
	}

	file := filepath.FromSlash(sanitized + "." + ext)
	for entry := range registry.Snapshot() {
		candidate := filepath.Join(entry.Directory, file)
		if !r.files.Exists(candidate) {
			log.Debug().
				Str("candidate", candidate).
				Int("priority", entry.Priority).
				Msg("layout candidate missing")
			continue
		}

		canonical, err := r.files.Canonical(candidate)
		if err != nil {
			return types.ResolvedLayout{}, false, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to canonicalize layout path: " + candidate).
				WithCause(err)
		}
		assert.NotEmpty(ctx, canonical, "file checker returned an empty canonical path")
		if canonical == "" {
			return types.ResolvedLayout{}, false, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("empty canonical path for layout: " + candidate)
		}
		if !r.withinRoot(entry.Directory, canonical) {
			log.Warn().
				Str("candidate", candidate).
				Str("canonical", canonical).
				Str("root", entry.Directory).
				Msg("layout candidate escapes its search path, skipping")
			continue
		}

		layout := types.ResolvedLayout{
			Path:      canonical,
			Extension: ext,
			Directory: entry.Directory,
			Name:      sanitized,
		}
		if r.cache != nil {
			r.cache.Set(key, layout)
		}
		log.Debug().
			Str("layout", sanitized).
			Str("path", canonical).
			Int("priority", entry.Priority).
			Msg("layout resolved")
		return layout, true, nil
	}

	return types.ResolvedLayout{}, false, nil
}

// withinRoot reports whether canonical lies below the canonical form of
// root.  A root that cannot be canonicalized is trusted as given.
func (r PathResolver) withinRoot(root string, canonical string) bool {
	canonicalRoot, err := r.files.Canonical(root)
	if err != nil {
		return true
	}
	rel, err := filepath.Rel(canonicalRoot, canonical)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func cacheKey(registry *SearchPathRegistry, name string, ext string) string {
	return fmt.Sprintf("%d:%d|%s|%s", registry.ID(), registry.Version(), name, ext)
}
