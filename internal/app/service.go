package app

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"layered-views/internal/adapters"
	"layered-views/internal/core"
	"layered-views/internal/ports"
	"layered-views/internal/tracing"
)

type Service struct {
	Manifest ports.PathsManifestPort
	Models   ports.ModelSourcePort
	Files    ports.FileCheckerPort
	Executor ports.LayoutExecutorPort
	Output   ports.OutputWriterPort
	Watcher  ports.LayoutWatcherPort
	// Cache is optional; nil disables resolution caching.
	Cache  ports.ResolutionCachePort
	Tracer trace.Tracer
}

func NewService() Service {
	return Service{
		Manifest: adapters.NewPathsManifestAdapter(),
		Models:   adapters.NewModelFileAdapter(),
		Files:    adapters.NewFileCheckerAdapter(),
		Executor: adapters.NewTemplateExecutorAdapter(),
		Output:   adapters.NewOutputWriterAdapter(),
		Watcher:  adapters.NewLayoutWatcherAdapter(),
		Tracer:   noop.NewTracerProvider().Tracer(tracing.DefaultServiceName),
	}
}

// Paths builds the registry described by the request and returns it in
// traversal order.
func (s Service) Paths(ctx context.Context, req PathsRequest) (PathsResult, error) {
	registry, ext, err := s.loadRegistry(req.ManifestPath, req.Paths)
	if err != nil {
		return PathsResult{}, err
	}
	return PathsResult{Paths: registry.Entries(), DefaultExtension: ext}, nil
}

func (s Service) loadRegistry(manifestPath string, extra []string) (*core.SearchPathRegistry, string, error) {
	registry := core.NewSearchPathRegistry()
	ext := ""

	if path := strings.TrimSpace(manifestPath); path != "" {
		manifest, err := s.Manifest.LoadManifest(path)
		if err != nil {
			return nil, "", err
		}
		for _, entry := range manifest.Paths {
			registry.Insert(entry.Directory, entry.Priority)
		}
		ext = manifest.DefaultExtension
	}

	for _, raw := range extra {
		dir, priority, err := parsePathFlag(raw)
		if err != nil {
			return nil, "", err
		}
		registry.Insert(dir, priority)
	}

	if registry.IsEmpty() {
		return nil, "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no search paths configured: pass --manifest or --path")
	}
	return registry, ext, nil
}

// parsePathFlag splits "dir:priority".  The priority defaults to 0 and is
// only split off when the suffix after the last colon is an integer, so
// Windows drive letters survive.
func parsePathFlag(raw string) (string, int, error) {
	value := strings.TrimSpace(raw)
	dir, priority := value, 0
	if idx := strings.LastIndex(value, ":"); idx > 0 {
		if p, err := strconv.Atoi(value[idx+1:]); err == nil {
			dir, priority = value[:idx], p
		}
	}
	if strings.TrimSpace(dir) == "" {
		return "", 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("search path is empty: " + raw)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid search path: " + raw).
			WithCause(err)
	}
	return abs, priority, nil
}
