package deployment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestOpenLogSinkCreatesRootAndFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "logs", "deployments")

	sink, err := OpenLogSink(root, "api")
	assert.NilError(t, err)
	defer sink.Close()

	assert.Check(t, strings.HasPrefix(filepath.Base(sink.Path()), "api-"))
	assert.Check(t, strings.HasSuffix(sink.Path(), ".log"))

	_, err = os.Stat(sink.Path())
	assert.NilError(t, err)
}

func TestLogSinkAppends(t *testing.T) {
	sink, err := OpenLogSink(t.TempDir(), "api")
	assert.NilError(t, err)

	sink.WriteLine("step %d", 1)
	_, err = sink.Write([]byte("raw output\n"))
	assert.NilError(t, err)
	sink.WriteLine("step %d", 2)
	assert.NilError(t, sink.Close())

	b, err := os.ReadFile(sink.Path())
	assert.NilError(t, err)
	assert.Check(t, is.Equal(string(b), "step 1\nraw output\nstep 2\n"))
}

func TestOpenLogSinkDistinctFilesPerDeployment(t *testing.T) {
	root := t.TempDir()

	a, err := OpenLogSink(root, "api")
	assert.NilError(t, err)
	defer a.Close()
	b, err := OpenLogSink(root, "api")
	assert.NilError(t, err)
	defer b.Close()

	assert.Check(t, a.Path() != b.Path())
}
