package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = fw.Write(body)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestImageStore_Save(t *testing.T) {
	dir := t.TempDir()
	s := NewImageStore(dir)

	url, err := s.Save(fileHeader(t, "Phone.PNG", []byte("png-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/images/products/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.True(t, s.Exists(url))
	assert.False(t, s.Exists("/images/products/missing.png"))
	assert.False(t, s.Exists("https://cdn.example.com/x.png"))
}

func TestImageStore_RejectsExtension(t *testing.T) {
	s := NewImageStore(t.TempDir())
	_, err := s.Save(fileHeader(t, "evil.exe", []byte("x")))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestImageStore_Remove(t *testing.T) {
	s := NewImageStore(t.TempDir())
	url, err := s.Save(fileHeader(t, "a.jpg", []byte("jpg")))
	require.NoError(t, err)

	require.NoError(t, s.Remove(url))
	assert.False(t, s.Exists(url))
	assert.NoError(t, s.Remove("/images/products/never-saved.jpg"))
}
