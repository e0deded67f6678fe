package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"layered-views/internal/tracing"
)

func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	name := strings.TrimSpace(req.Layout)
	if name == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("layout name is required")
	}

	ctx, span := s.Tracer.Start(ctx, "view.resolve", trace.WithAttributes(
		attribute.String(tracing.AttrLayout, name),
		attribute.String(tracing.AttrExtension, req.Extension),
	))
	defer span.End()

	view, err := s.newView(req.ManifestPath, req.Paths, req.Extension, nil)
	if err != nil {
		return ResolveResult{}, recordSpanError(span, err)
	}
	span.SetAttributes(attribute.Int(tracing.AttrSearch, view.Paths().Len()))

	layout, ok, err := view.Path(ctx, name, "")
	if err != nil {
		return ResolveResult{}, recordSpanError(span, err)
	}
	if !ok {
		return ResolveResult{}, recordSpanError(span, view.SetLayout(name).notFound())
	}
	span.SetAttributes(attribute.String(tracing.AttrPath, layout.Path))
	return ResolveResult{Layout: layout}, nil
}

func (s Service) Render(ctx context.Context, req RenderRequest) (RenderResult, error) {
	if strings.TrimSpace(req.Layout) == "" {
		return RenderResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("layout name is required")
	}

	model, err := s.loadModel(req.ModelPath)
	if err != nil {
		return RenderResult{}, err
	}
	view, err := s.newView(req.ManifestPath, req.Paths, req.Extension, model)
	if err != nil {
		return RenderResult{}, err
	}
	view.SetLayout(strings.TrimSpace(req.Layout))
	return s.renderView(ctx, view, req.OutputPath)
}

// Watch renders once, then re-renders the same view whenever a file below
// one of its search paths changes, until ctx is done.  Every outcome is
// passed to onRender; render failures do not stop the watch.
func (s Service) Watch(ctx context.Context, req RenderRequest, onRender func(RenderResult, error)) error {
	if strings.TrimSpace(req.Layout) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("layout name is required")
	}

	model, err := s.loadModel(req.ModelPath)
	if err != nil {
		return err
	}
	view, err := s.newView(req.ManifestPath, req.Paths, req.Extension, model)
	if err != nil {
		return err
	}
	view.SetLayout(strings.TrimSpace(req.Layout))

	onRender(s.renderView(ctx, view, req.OutputPath))

	var dirs []string
	for entry := range view.Paths().Snapshot() {
		dirs = append(dirs, entry.Directory)
	}
	// our own output may live below a search root
	var ignore []string
	if path := strings.TrimSpace(req.OutputPath); path != "" {
		ignore = append(ignore, path)
	}
	return s.Watcher.Watch(ctx, dirs, ignore, func(path string) {
		if s.Cache != nil {
			s.Cache.Flush()
		}
		log.Info().Str("path", path).Msg("layout changed, re-rendering")
		onRender(s.renderView(ctx, view, req.OutputPath))
	})
}

func (s Service) renderView(ctx context.Context, view *View, outputPath string) (RenderResult, error) {
	ctx, span := s.Tracer.Start(ctx, "view.render", trace.WithAttributes(
		attribute.String(tracing.AttrLayout, view.Layout()),
		attribute.Int(tracing.AttrSearch, view.Paths().Len()),
	))
	defer span.End()

	layout, out, err := view.render(ctx)
	if err != nil {
		return RenderResult{}, recordSpanError(span, err)
	}
	span.SetAttributes(attribute.String(tracing.AttrPath, layout.Path))

	result := RenderResult{Layout: layout, Output: out}
	if path := strings.TrimSpace(outputPath); path != "" {
		if err := s.Output.WriteOutput(path, out); err != nil {
			return RenderResult{}, recordSpanError(span, err)
		}
		result.Written = path
	}

	log.Debug().
		Str("layout", layout.Name).
		Str("path", layout.Path).
		Str("written", result.Written).
		Msg("layout rendered")
	return result, nil
}

func (s Service) newView(manifestPath string, paths []string, extension string, model any) (*View, error) {
	registry, manifestExt, err := s.loadRegistry(manifestPath, paths)
	if err != nil {
		return nil, err
	}
	ext := strings.TrimSpace(extension)
	if ext == "" {
		ext = manifestExt
	}
	return NewView(model,
		WithPaths(registry),
		WithFileChecker(s.Files),
		WithExecutor(s.Executor),
		WithResolutionCache(s.Cache),
		WithDefaultExtension(ext),
	), nil
}

func (s Service) loadModel(path string) (any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	return s.Models.LoadModel(path)
}

func recordSpanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
