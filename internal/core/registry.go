package core

import (
	"iter"
	"slices"
	"sync"
	"sync/atomic"

	"layered-views/internal/types"
)

var registryIDs atomic.Uint64

// SearchPathRegistry is an ordered multiset of search paths.  Traversal
// yields the highest priority first; among equal priorities the most
// recently inserted entry comes first.
//
// Mutations take the writer lock and bump the version.  Snapshots are
// copies taken under the read lock, so a traversal in progress never
// observes a later Insert or Replace.
//
// The zero value is an empty registry ready for use.
type SearchPathRegistry struct {
	mu      sync.RWMutex
	idOnce  sync.Once
	id      uint64
	version uint64
	entries []types.SearchPath
}

// NewSearchPathRegistry returns a registry seeded with paths, inserted in
// the given order.
func NewSearchPathRegistry(paths ...types.SearchPath) *SearchPathRegistry {
	r := &SearchPathRegistry{}
	r.ID()
	for _, p := range paths {
		r.Insert(p.Directory, p.Priority)
	}
	return r
}

// Insert adds a directory.  Duplicates are kept.
func (r *SearchPathRegistry) Insert(directory string, priority int) *SearchPathRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()

	// first slot whose priority does not exceed the new one; placing the
	// entry there puts it ahead of older entries of equal priority
	idx, _ := slices.BinarySearchFunc(r.entries, priority, func(e types.SearchPath, p int) int {
		if e.Priority > p {
			return -1
		}
		return 1
	})
	r.entries = slices.Insert(r.entries, idx, types.SearchPath{Directory: directory, Priority: priority})
	r.version++
	return r
}

// Snapshot returns a restartable sequence over the entries as they are at
// call time.
func (r *SearchPathRegistry) Snapshot() iter.Seq[types.SearchPath] {
	entries := r.Entries()
	return func(yield func(types.SearchPath) bool) {
		for _, e := range entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Entries returns a copy of the entries in traversal order.
func (r *SearchPathRegistry) Entries() []types.SearchPath {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries)
}

// Replace discards every entry and takes over the entries of other.
func (r *SearchPathRegistry) Replace(other *SearchPathRegistry) {
	if other == r {
		return
	}
	var entries []types.SearchPath
	if other != nil {
		entries = other.Entries()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = entries
	r.version++
}

func (r *SearchPathRegistry) IsEmpty() bool {
	return r.Len() == 0
}

func (r *SearchPathRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Equal reports whether both registries traverse the same entries in the
// same order.
func (r *SearchPathRegistry) Equal(other *SearchPathRegistry) bool {
	if r == other {
		return true
	}
	if r == nil || other == nil {
		return false
	}
	return slices.Equal(r.Entries(), other.Entries())
}

// ID identifies the registry within the process.  It is assigned on first
// use, so zero-value registries never share one.
func (r *SearchPathRegistry) ID() uint64 {
	r.idOnce.Do(func() {
		r.id = registryIDs.Add(1)
	})
	return r.id
}

// Version increments on every mutation.
func (r *SearchPathRegistry) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}
