package app

import "layered-views/internal/types"

type PathsRequest struct {
	ManifestPath string
	// Paths are ad-hoc "dir[:priority]" entries inserted after the
	// manifest's entries.
	Paths []string
}

type PathsResult struct {
	Paths            []types.SearchPath
	DefaultExtension string
}

type ResolveRequest struct {
	ManifestPath string
	Paths        []string
	Layout       string
	Extension    string
}

type ResolveResult struct {
	Layout types.ResolvedLayout
}

type RenderRequest struct {
	ManifestPath string
	Paths        []string
	Layout       string
	Extension    string
	ModelPath    string
	OutputPath   string
}

type RenderResult struct {
	Layout  types.ResolvedLayout
	Output  string
	Written string
}
