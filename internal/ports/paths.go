package ports

import (
	"context"

	"layered-views/internal/types"
)

// PathsManifestPort reads paths.yaml manifests.
type PathsManifestPort interface {
	// LoadManifest parses the manifest at path.  Relative directories in
	// the returned manifest are already absolute.
	LoadManifest(path string) (types.PathsManifest, error)
}

// ModelSourcePort loads the data a layout is rendered against.
type ModelSourcePort interface {
	LoadModel(path string) (any, error)
}

// OutputWriterPort persists rendered output.
type OutputWriterPort interface {
	WriteOutput(path string, content string) error
}

// LayoutWatcherPort reports changes below a set of search roots.
type LayoutWatcherPort interface {
	// Watch blocks until ctx is done.  Bursts of changes are coalesced and
	// reported once through onChange with the last changed path.  Changes
	// to the files in ignore are dropped.
	Watch(ctx context.Context, dirs []string, ignore []string, onChange func(path string)) error
}
