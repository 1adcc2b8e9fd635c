package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"passport.pdf", "passport.pdf"},
		{"carta matrícula.pdf", "carta_matr_cula.pdf"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"  spaced name.PDF  ", "spaced_name.PDF"},
		{"", "file"},
		{"resume-v2_final.docx", "resume-v2_final.docx"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFileName(tt.in), "input %q", tt.in)
	}
}

func TestObjectPath(t *testing.T) {
	now := time.Unix(1717171717, 0)
	got := ObjectPath(now, "passport.pdf")
	assert.Equal(t, "documents/1717171717000000000_passport.pdf", got)
}

func TestFSStoreRoundTrip(t *testing.T) {
	store, err := NewFSStore(t.TempDir(), "http://localhost:8080/files/")
	require.NoError(t, err)

	ctx := context.Background()
	path := ObjectPath(time.Now(), "passport.pdf")

	saved, err := store.Save(ctx, path, strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, path, saved)

	rc, err := store.Open(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "pdf bytes", string(data))

	assert.Equal(t, "http://localhost:8080/files/"+path, store.URL(path))

	require.NoError(t, store.Delete(ctx, path))
	_, err = store.Open(ctx, path)
	assert.Error(t, err)
}

func TestFSStoreContainsTraversal(t *testing.T) {
	root := t.TempDir()
	store, err := NewFSStore(root, "http://localhost:8080/files")
	require.NoError(t, err)

	// Leading ".." segments are stripped; the blob stays under the root
	_, err = store.Save(context.Background(), "../outside.txt", strings.NewReader("x"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "outside.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(root), "outside.txt"))
	assert.True(t, os.IsNotExist(err))
}
