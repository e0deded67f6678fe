package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"layered-views/internal/adapters"
	"layered-views/internal/core"
	"layered-views/internal/types"
	"layered-views/tests/testutil"
)

type scriptedWatcher struct {
	changes []string
	dirs    []string
	ignore  []string
}

func (w *scriptedWatcher) Watch(_ context.Context, dirs []string, ignore []string, onChange func(path string)) error {
	w.dirs = dirs
	w.ignore = ignore
	for _, change := range w.changes {
		onChange(change)
	}
	return nil
}

func TestParsePathFlag(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		raw      string
		dir      string
		priority int
	}{
		{raw: "layouts", dir: filepath.Join(cwd, "layouts"), priority: 0},
		{raw: "layouts:2", dir: filepath.Join(cwd, "layouts"), priority: 2},
		{raw: "/srv/layouts:-1", dir: filepath.Clean("/srv/layouts"), priority: -1},
		{raw: "/srv/lay:outs", dir: filepath.Clean("/srv/lay:outs"), priority: 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			dir, priority, err := parsePathFlag(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.dir, dir)
			assert.Equal(t, tt.priority, priority)
		})
	}

	_, _, err = parsePathFlag("   ")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestServicePaths(t *testing.T) {
	result, err := NewService().Paths(context.Background(), PathsRequest{
		ManifestPath: testutil.Fixture(t, "paths.yaml"),
		Paths:        []string{testutil.Fixture(t, "layouts1") + ":2"},
	})
	require.NoError(t, err)
	assert.Equal(t, []types.SearchPath{
		{Directory: testutil.Fixture(t, "layouts1"), Priority: 2},
		{Directory: testutil.Fixture(t, "layouts2"), Priority: 2},
		{Directory: testutil.Fixture(t, "layouts1"), Priority: 1},
	}, result.Paths)
}

func TestServicePathsRequiresSearchPaths(t *testing.T) {
	_, err := NewService().Paths(context.Background(), PathsRequest{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestServiceResolve(t *testing.T) {
	service := NewService()
	result, err := service.Resolve(context.Background(), ResolveRequest{
		ManifestPath: testutil.Fixture(t, "paths.yaml"),
		Layout:       "olivia",
	})
	require.NoError(t, err)
	assert.Equal(t, testutil.Realpath(t, testutil.Fixture(t, "layouts2", "olivia.default")), result.Layout.Path)

	_, err = service.Resolve(context.Background(), ResolveRequest{
		ManifestPath: testutil.Fixture(t, "paths.yaml"),
		Layout:       "walter",
	})
	assert.ErrorIs(t, err, core.ErrLayoutNotFound)

	_, err = service.Resolve(context.Background(), ResolveRequest{
		ManifestPath: testutil.Fixture(t, "paths.yaml"),
	})
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestServiceRenderWritesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site", "division.txt")
	result, err := NewService().Render(context.Background(), RenderRequest{
		ManifestPath: testutil.Fixture(t, "paths.yaml"),
		Layout:       "fringe/division",
		ModelPath:    testutil.Fixture(t, "model.yaml"),
		OutputPath:   out,
	})
	require.NoError(t, err)
	assert.Equal(t, "Fringe Division: Olivia, Peter &amp; Walter", strings.TrimSpace(result.Output))
	assert.Equal(t, out, result.Written)
	assert.Equal(t, "fringe/division", result.Layout.Name)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, result.Output, string(data))
}

func TestServiceRenderManifestDefaultExtension(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "paths.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(
		"manifest_version: v1\ndefault_extension: phtml\npaths:\n  - dir: "+testutil.Fixture(t, "layouts1")+"\n    priority: 1\n",
	), 0644))

	result, err := NewService().Render(context.Background(), RenderRequest{ManifestPath: manifest, Layout: "astrid"})
	require.NoError(t, err)
	assert.Equal(t, "phtml", result.Layout.Extension)

	// an explicit extension beats the manifest
	_, err = NewService().Render(context.Background(), RenderRequest{ManifestPath: manifest, Layout: "astrid", Extension: "default"})
	assert.ErrorIs(t, err, core.ErrLayoutNotFound)
}

type countingFiles struct {
	adapters.FileCheckerAdapter
	probes int
}

func (c *countingFiles) Exists(path string) bool {
	c.probes++
	return c.FileCheckerAdapter.Exists(path)
}

func TestServiceRenderProbesOnce(t *testing.T) {
	files := &countingFiles{}
	executor := &recordingExecutor{}
	service := NewService()
	service.Files = files
	service.Executor = executor

	result, err := service.Render(context.Background(), RenderRequest{
		ManifestPath: testutil.Fixture(t, "paths.yaml"),
		Layout:       "olivia",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, files.probes, "olivia lives in the highest priority root")
	require.Len(t, executor.layouts, 1)
	assert.Equal(t, executor.layouts[0], result.Layout)
	assert.Equal(t, "rendered olivia", result.Output)
}

func TestServiceRenderTraces(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	service := NewService()
	service.Tracer = provider.Tracer("test")

	_, err := service.Render(context.Background(), RenderRequest{
		ManifestPath: testutil.Fixture(t, "paths.yaml"),
		Layout:       "walter",
	})
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "view.render", spans[0].Name())
	require.Len(t, spans[0].Events(), 1, "error recorded")
}

func TestServiceWatchReRenders(t *testing.T) {
	watcher := &scriptedWatcher{changes: []string{"olivia.default", "peter.default"}}
	cache := adapters.NewResolutionCacheAdapter(0)
	service := NewService()
	service.Watcher = watcher
	service.Cache = cache

	var outputs []string
	err := service.Watch(context.Background(), RenderRequest{
		ManifestPath: testutil.Fixture(t, "paths.yaml"),
		Layout:       "olivia",
	}, func(result RenderResult, err error) {
		require.NoError(t, err)
		outputs = append(outputs, strings.TrimSpace(result.Output))
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Peter's Olivia", "Peter's Olivia", "Peter's Olivia"}, outputs)
	assert.Equal(t, []string{testutil.Fixture(t, "layouts2"), testutil.Fixture(t, "layouts1")}, watcher.dirs)
	assert.Empty(t, watcher.ignore)
}

func TestServiceWatchIgnoresOwnOutput(t *testing.T) {
	watcher := &scriptedWatcher{}
	service := NewService()
	service.Watcher = watcher
	out := filepath.Join(t.TempDir(), "olivia.txt")

	err := service.Watch(context.Background(), RenderRequest{
		ManifestPath: testutil.Fixture(t, "paths.yaml"),
		Layout:       "olivia",
		OutputPath:   out,
	}, func(_ RenderResult, err error) {
		require.NoError(t, err)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{out}, watcher.ignore)
}
