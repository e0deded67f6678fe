package adapters

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"layered-views/internal/ports"
	"layered-views/internal/types"
)

// PathsManifestAdapter loads paths.yaml manifests.
type PathsManifestAdapter struct{}

func NewPathsManifestAdapter() PathsManifestAdapter {
	return PathsManifestAdapter{}
}

func (a PathsManifestAdapter) LoadManifest(path string) (types.PathsManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PathsManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read paths manifest: " + path).
			WithCause(err)
	}

	var manifest types.PathsManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return types.PathsManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse paths manifest: " + path).
			WithCause(err)
	}
	if strings.TrimSpace(manifest.ManifestVersion) == "" {
		return types.PathsManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("paths manifest missing manifest_version: " + path)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return types.PathsManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to resolve manifest directory").
			WithCause(err)
	}
	for i, entry := range manifest.Paths {
		dir := strings.TrimSpace(entry.Directory)
		if dir == "" {
			return types.PathsManifest{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("paths manifest entry " + strconv.Itoa(i) + " has empty dir in " + path)
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(base, dir)
		}
		manifest.Paths[i].Directory = filepath.Clean(dir)
	}

	log.Debug().
		Str("path", path).
		Int("paths", len(manifest.Paths)).
		Str("default_extension", manifest.DefaultExtension).
		Msg("paths manifest loaded")
	return manifest, nil
}

var _ ports.PathsManifestPort = PathsManifestAdapter{}
