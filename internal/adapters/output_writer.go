package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/natefinch/atomic"

	"layered-views/internal/ports"
)

// OutputWriterAdapter writes rendered output through a temp file and
// rename, so readers never see a half-written document.
type OutputWriterAdapter struct{}

func NewOutputWriterAdapter() OutputWriterAdapter {
	return OutputWriterAdapter{}
}

func (a OutputWriterAdapter) WriteOutput(path string, content string) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write output: " + path).
			WithCause(err)
	}
	return nil
}

var _ ports.OutputWriterPort = OutputWriterAdapter{}
