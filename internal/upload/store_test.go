package upload_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sujith0604/Blog/internal/upload"
)

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestStore_Save_KeepsExtension(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := upload.NewStore(dir)
	require.NoError(t, err)

	path, err := store.Save(multipartFile(t, "cover.PNG", []byte("png-bytes")))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(path, ".png"), "extension should be kept, lowercased: %s", path)
	assert.NotContains(t, filepath.Base(path), "cover", "original name must not be reused")

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(path)))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestStore_Save_ReturnsPublicPath(t *testing.T) {
	// The store dir here is absolute; the returned value must still be the
	// public URL path, never the filesystem location.
	dir := filepath.Join(t.TempDir(), "somewhere", "else")
	store, err := upload.NewStore(dir)
	require.NoError(t, err)

	path, err := store.Save(multipartFile(t, "cover.png", []byte("x")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, upload.URLPrefix+"/"), "got %s", path)
	assert.NotContains(t, path, dir)

	_, err = os.Stat(filepath.Join(dir, filepath.Base(path)))
	require.NoError(t, err, "file must live in the store dir")
}

func TestStore_Save_NoExtension(t *testing.T) {
	store, err := upload.NewStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	path, err := store.Save(multipartFile(t, "rawfile", []byte("x")))
	require.NoError(t, err)
	assert.NotContains(t, filepath.Base(path), ".")
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "uploads")
	_, err := upload.NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
