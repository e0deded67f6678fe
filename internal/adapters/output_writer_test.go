package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputWriterCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "olivia.html")
	writer := NewOutputWriterAdapter()

	require.NoError(t, writer.WriteOutput(path, "Peter's Olivia"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Peter's Olivia", string(data))

	require.NoError(t, writer.WriteOutput(path, "Fauxlivia"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Fauxlivia", string(data))
}

func TestOutputWriterRejectsEmptyPath(t *testing.T) {
	err := NewOutputWriterAdapter().WriteOutput(" ", "x")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
