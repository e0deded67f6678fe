package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"layered-views/internal/adapters"
	"layered-views/internal/core"
	"layered-views/internal/ports"
	"layered-views/internal/types"
)

// DefaultLayout is the layout a View renders until SetLayout is called.
const DefaultLayout = "default"

// PathsLoader supplies the registry a View starts with when none was
// injected.  It runs at most once, on first use.
type PathsLoader func() *core.SearchPathRegistry

// EmptyPaths is the default PathsLoader.
func EmptyPaths() *core.SearchPathRegistry {
	return core.NewSearchPathRegistry()
}

// View renders a named layout against a model.  The layout is located by
// probing the registered search paths in priority order.
//
// A View is meant for use by one goroutine at a time.
type View struct {
	model     any
	layout    string
	extension string

	paths     *core.SearchPathRegistry
	loadPaths PathsLoader

	files    ports.FileCheckerPort
	cache    ports.ResolutionCachePort
	executor ports.LayoutExecutorPort
}

type ViewOption func(*View)

// WithPaths injects the registry, skipping the PathsLoader.
func WithPaths(paths *core.SearchPathRegistry) ViewOption {
	return func(v *View) {
		v.paths = paths
	}
}

func WithPathsLoader(loader PathsLoader) ViewOption {
	return func(v *View) {
		if loader != nil {
			v.loadPaths = loader
		}
	}
}

func WithExecutor(executor ports.LayoutExecutorPort) ViewOption {
	return func(v *View) {
		if executor != nil {
			v.executor = executor
		}
	}
}

func WithFileChecker(files ports.FileCheckerPort) ViewOption {
	return func(v *View) {
		if files != nil {
			v.files = files
		}
	}
}

func WithResolutionCache(cache ports.ResolutionCachePort) ViewOption {
	return func(v *View) {
		v.cache = cache
	}
}

// WithDefaultExtension changes the extension Render probes with.
func WithDefaultExtension(ext string) ViewOption {
	return func(v *View) {
		if ext != "" {
			v.extension = ext
		}
	}
}

// NewView binds model to a new View.  The model is never modified; it is
// handed to the executor as is.
func NewView(model any, opts ...ViewOption) *View {
	v := &View{
		model:     model,
		layout:    DefaultLayout,
		extension: core.DefaultExtension,
		loadPaths: EmptyPaths,
		files:     adapters.NewFileCheckerAdapter(),
		executor:  adapters.NewTemplateExecutorAdapter(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetLayout stores name verbatim; it is sanitized when resolved.
func (v *View) SetLayout(name string) *View {
	v.layout = name
	return v
}

func (v *View) Layout() string {
	return v.layout
}

func (v *View) Model() any {
	return v.model
}

// Paths returns the live registry, building it through the PathsLoader on
// first access.
func (v *View) Paths() *core.SearchPathRegistry {
	if v.paths == nil {
		v.paths = v.loadPaths()
		if v.paths == nil {
			v.paths = core.NewSearchPathRegistry()
		}
	}
	return v.paths
}

// SetPaths replaces the registry wholesale.
func (v *View) SetPaths(paths *core.SearchPathRegistry) *View {
	v.paths = paths
	return v
}

func (v *View) Escape(value string) string {
	return core.Escape(value)
}

// Path resolves name with the given extension ("" for the View's default)
// against the current registry.  A miss is (zero, false, nil).
func (v *View) Path(ctx context.Context, name string, extension string) (types.ResolvedLayout, bool, error) {
	if extension == "" {
		extension = v.extension
	}
	return v.resolver().Resolve(ctx, v.Paths(), name, extension)
}

// Render resolves the current layout and executes it against the model.
// A layout missing from every search path is a *core.LayoutNotFoundError.
func (v *View) Render(ctx context.Context) (string, error) {
	_, out, err := v.render(ctx)
	return out, err
}

// String renders the view.  A render failure is logged and yields "";
// callers that need the error use Render.
func (v *View) String() string {
	out, err := v.Render(context.Background())
	if err != nil {
		log.Error().
			Err(err).
			Str("layout", v.layout).
			Msg("view render failed during string conversion")
		return ""
	}
	return out
}

// render resolves once and executes that file, returning both.
func (v *View) render(ctx context.Context) (types.ResolvedLayout, string, error) {
	layout, ok, err := v.Path(ctx, v.layout, "")
	if err != nil {
		return types.ResolvedLayout{}, "", err
	}
	if !ok {
		return types.ResolvedLayout{}, "", v.notFound()
	}
	out, err := v.executor.Execute(ctx, layout, v.model)
	if err != nil {
		return types.ResolvedLayout{}, "", err
	}
	return layout, out, nil
}

func (v *View) resolver() core.PathResolver {
	resolver := core.NewPathResolver(v.files)
	if v.cache != nil {
		resolver = resolver.WithCache(v.cache)
	}
	return resolver
}

func (v *View) notFound() error {
	name, err := core.SanitizeLayoutName(v.layout)
	if err != nil {
		name = v.layout
	}
	ext, err := core.SanitizeExtension(v.extension)
	if err != nil {
		ext = v.extension
	}
	var searched []string
	for entry := range v.Paths().Snapshot() {
		searched = append(searched, entry.Directory)
	}
	return &core.LayoutNotFoundError{Layout: name, Extension: ext, Searched: searched}
}
