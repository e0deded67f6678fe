package adapters

import (
	"context"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"layered-views/internal/core"
	"layered-views/internal/ports"
	"layered-views/internal/types"
)

// TemplateExecutorAdapter runs layout files as text/template templates.
// The model becomes the template's dot; escaping is explicit through the
// "escape" helper so layouts decide what gets encoded.
type TemplateExecutorAdapter struct {
	funcs template.FuncMap
}

func NewTemplateExecutorAdapter() TemplateExecutorAdapter {
	return TemplateExecutorAdapter{
		funcs: template.FuncMap{
			"escape": core.Escape,
		},
	}
}

// WithFuncs returns a copy with extra template helpers.  Entries override
// the built-in helpers of the same name.
func (a TemplateExecutorAdapter) WithFuncs(funcs template.FuncMap) TemplateExecutorAdapter {
	merged := make(template.FuncMap, len(a.funcs)+len(funcs))
	for name, fn := range a.funcs {
		merged[name] = fn
	}
	for name, fn := range funcs {
		merged[name] = fn
	}
	return TemplateExecutorAdapter{funcs: merged}
}

func (a TemplateExecutorAdapter) Execute(ctx context.Context, layout types.ResolvedLayout, model any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("layout execution canceled").
			WithCause(err)
	}

	tmpl, err := template.New(filepath.Base(layout.Path)).Funcs(a.funcs).ParseFiles(layout.Path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse layout: " + layout.Path).
			WithCause(err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, model); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to execute layout: " + layout.Path).
			WithCause(err)
	}

	log.Debug().
		Str("layout", layout.Name).
		Str("path", layout.Path).
		Int("bytes", out.Len()).
		Msg("layout executed")
	return out.String(), nil
}

var _ ports.LayoutExecutorPort = TemplateExecutorAdapter{}
