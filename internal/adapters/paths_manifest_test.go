package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layered-views/internal/types"
)

func TestPathsManifestLoad(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "paths.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`
manifest_version: "v1"
default_extension: phtml
paths:
  - dir: layouts1
    priority: 1
  - dir: /srv/layouts
    priority: 5
`), 0644))

	manifest, err := NewPathsManifestAdapter().LoadManifest(manifestPath)
	require.NoError(t, err)

	base, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, "v1", manifest.ManifestVersion)
	assert.Equal(t, "phtml", manifest.DefaultExtension)
	assert.Equal(t, []types.SearchPath{
		{Directory: filepath.Join(base, "layouts1"), Priority: 1},
		{Directory: filepath.Clean("/srv/layouts"), Priority: 5},
	}, manifest.Paths)
}

func TestPathsManifestErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		content  string
		wantCode errbuilder.ErrCode
	}{
		{name: "bad yaml", content: "paths: [", wantCode: errbuilder.CodeInvalidArgument},
		{name: "missing version", content: "paths: []", wantCode: errbuilder.CodeInvalidArgument},
		{name: "empty dir", content: "manifest_version: v1\npaths:\n  - dir: \"\"\n    priority: 1\n", wantCode: errbuilder.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := NewPathsManifestAdapter().LoadManifest(path)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errbuilder.CodeOf(err))
		})
	}

	_, err := NewPathsManifestAdapter().LoadManifest(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
