package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		dir, name, want string
	}{
		{"2417", "PO_000042_b.pdf", "2417/PO_000042_b.pdf"},
		{"../etc", "PO_1_a.pdf", ".._etc/PO_1_a.pdf"},
		{"..", "x.pdf", "_/x.pdf"},
		{"", "x.pdf", "_/x.pdf"},
		{"A/B", "x.pdf", "A_B/x.pdf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Key(tt.dir, tt.name), "Key(%q, %q)", tt.dir, tt.name)
	}
}

func TestFS_Put(t *testing.T) {
	root := t.TempDir()
	fs := NewFS(root)

	loc, err := fs.Put(context.Background(), "2417/PO_000042_b.pdf", []byte("%PDF-1"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "2417", "PO_000042_b.pdf"), loc)

	got, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1", string(got))

	// overwrite leaves no temp files behind
	_, err = fs.Put(context.Background(), "2417/PO_000042_b.pdf", []byte("%PDF-2"))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "2417"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

type failingBackend struct{}

func (failingBackend) Put(context.Context, string, []byte) (string, error) {
	return "", errors.New("share offline")
}

func TestArchiver_Save(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		assert.False(t, New(nil).Enabled())
		assert.Empty(t, New(nil).Save(context.Background(), "2417", "a.pdf", nil))
	})

	t.Run("Success", func(t *testing.T) {
		root := t.TempDir()
		loc := New(NewFS(root)).Save(context.Background(), "2417", "PO_000001_a.pdf", []byte("x"))
		assert.Equal(t, filepath.Join(root, "2417", "PO_000001_a.pdf"), loc)
	})

	t.Run("FailureIsSwallowed", func(t *testing.T) {
		failures := 0
		a := New(failingBackend{}, WithFailureHook(func() { failures++ }))

		assert.Empty(t, a.Save(context.Background(), "2417", "a.pdf", []byte("x")))
		assert.Equal(t, 1, failures)
	})
}
