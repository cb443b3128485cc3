package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreUploadAndDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewLocalStore(root, "/storage/")
	require.NoError(t, err)

	url, err := s.Upload(ctx, "profile_pic/u1/a.png", "image/png", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "/storage/profile_pic/u1/a.png", url)

	b, err := os.ReadFile(filepath.Join(root, "profile_pic", "u1", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))

	require.NoError(t, s.Delete(ctx, "profile_pic/u1/a.png"))
	assert.ErrorIs(t, s.Delete(ctx, "profile_pic/u1/a.png"), ErrObjectNotFound)
}

func TestLocalStoreStaysInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewLocalStore(filepath.Join(root, "public"), "/storage")
	require.NoError(t, err)

	url, err := s.Upload(ctx, "../../escape.txt", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/storage/escape.txt", url)

	_, err = os.Stat(filepath.Join(root, "public", "escape.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	assert.True(t, os.IsNotExist(err))

	_, err = s.Upload(ctx, "/", "text/plain", strings.NewReader("x"))
	assert.Error(t, err)
}
