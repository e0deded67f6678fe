package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"layered-views/internal/ports"
)

// ModelFileAdapter reads render models from YAML (or JSON, which YAML
// accepts) documents.
type ModelFileAdapter struct{}

func NewModelFileAdapter() ModelFileAdapter {
	return ModelFileAdapter{}
}

func (a ModelFileAdapter) LoadModel(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read model file: " + path).
			WithCause(err)
	}
	model := map[string]any{}
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse model file: " + path).
			WithCause(err)
	}
	return model, nil
}

var _ ports.ModelSourcePort = ModelFileAdapter{}
