package atomicwrite

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFunc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "stats.xlsx")

	require.NoError(t, WriteFunc(path, 0o644, func(w io.Writer) error {
		_, err := io.WriteString(w, "v1")
		return err
	}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(b))

	boom := errors.New("boom")
	err = WriteFunc(path, 0o644, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(b), "un fallo no pisa el archivo previo")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no quedan temporales")
}
