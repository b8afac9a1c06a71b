package blob

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/core/domain"
)

func TestFileStore_PutOpenDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := NewFileStore(root, 32)
	require.NoError(t, err)

	path, err := store.Put(ctx, "report.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "-report.pdf"))
	assert.NotContains(t, path, "/")

	rc, err := store.Open(ctx, path)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "content", string(body))

	require.NoError(t, store.Delete(ctx, path))
	require.NoError(t, store.Delete(ctx, path), "missing files count as deleted")

	_, err = store.Open(ctx, path)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestFileStore_SameNameGetsDistinctPaths(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), 0)
	require.NoError(t, err)

	a, err := store.Put(context.Background(), "a.txt", strings.NewReader("1"))
	require.NoError(t, err)
	b, err := store.Put(context.Background(), "a.txt", strings.NewReader("2"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFileStore_TooLarge(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root, 4)
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "big.bin", strings.NewReader("12345"))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial file is removed")

	_, err = store.Put(context.Background(), "fits.bin", strings.NewReader("1234"))
	assert.NoError(t, err)
}

func TestFileStore_RefusesPathsOutsideRoot(t *testing.T) {
	ctx := context.Background()
	parent := t.TempDir()
	secret := filepath.Join(parent, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("x"), 0o600))

	store, err := NewFileStore(filepath.Join(parent, "uploads"), 0)
	require.NoError(t, err)

	for _, path := range []string{"../secret.txt", "..", "", "/etc/passwd"} {
		_, err := store.Open(ctx, path)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, path)
		assert.ErrorIs(t, store.Delete(ctx, path), domain.ErrDocumentNotFound, path)
	}
	_, err = os.Stat(secret)
	assert.NoError(t, err)
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"plan.pdf":              "plan.pdf",
		"../../etc/passwd":      "passwd",
		`C:\Users\me\notes.txt`: "notes.txt",
		"":                      "document",
		"..":                    "document",
		"a\x00b.txt":            "a_b.txt",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitize(in), in)
	}
}
