package adapters

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"layered-views/internal/ports"
	"layered-views/internal/types"
)

const DefaultResolutionTTL = 5 * time.Minute

// ResolutionCacheAdapter keeps resolved layouts in memory for a bounded
// time so that deleted files eventually stop resolving even without a
// watcher calling Flush.
type ResolutionCacheAdapter struct {
	cache *gocache.Cache
}

func NewResolutionCacheAdapter(ttl time.Duration) *ResolutionCacheAdapter {
	if ttl <= 0 {
		ttl = DefaultResolutionTTL
	}
	return &ResolutionCacheAdapter{cache: gocache.New(ttl, 2*ttl)}
}

func (a *ResolutionCacheAdapter) Get(key string) (types.ResolvedLayout, bool) {
	value, found := a.cache.Get(key)
	if !found {
		return types.ResolvedLayout{}, false
	}
	layout, ok := value.(types.ResolvedLayout)
	if !ok {
		log.Error().Str("key", key).Msg("unexpected value type in resolution cache")
		return types.ResolvedLayout{}, false
	}
	return layout, true
}

func (a *ResolutionCacheAdapter) Set(key string, layout types.ResolvedLayout) {
	a.cache.SetDefault(key, layout)
}

func (a *ResolutionCacheAdapter) Flush() {
	a.cache.Flush()
	log.Debug().Msg("resolution cache flushed")
}

// Len reports the number of live entries.
func (a *ResolutionCacheAdapter) Len() int {
	return a.cache.ItemCount()
}

var _ ports.ResolutionCachePort = (*ResolutionCacheAdapter)(nil)
