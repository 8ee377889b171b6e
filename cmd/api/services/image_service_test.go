package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadHeader 는 multipart 요청을 실제로 만들어 FileHeader 를 뽑아낸다.
func uploadHeader(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/image/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["image"][0]
}

func TestImageSaveAutoName(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService(dir, 1<<20)

	path, err := svc.Save(uploadHeader(t, "photo.png", "image/png", []byte("png-bytes")), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/images/image-"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(path, "/images/")))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))
}

func TestImageSaveCustomNameConflict(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService(dir, 1<<20)

	_, err := svc.Save(uploadHeader(t, "a.jpg", "image/jpeg", []byte("one")), "hero")
	require.NoError(t, err)

	_, err = svc.Save(uploadHeader(t, "b.jpg", "image/jpeg", []byte("two")), "hero")
	assert.ErrorIs(t, err, ErrImageExists)
}

func TestImageSaveRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService(dir, 8)

	_, err := svc.Save(uploadHeader(t, "big.png", "image/png", []byte("way too large")), "")
	assert.ErrorIs(t, err, ErrImageTooLarge)

	svc = NewImageService(dir, 1<<20)
	_, err = svc.Save(uploadHeader(t, "notes.txt", "text/plain", []byte("hi")), "")
	assert.ErrorIs(t, err, ErrImageType)

	_, err = svc.Save(uploadHeader(t, "a.png", "image/png", []byte("x")), "../escape")
	assert.ErrorIs(t, err, ErrImageInvalidName)
}
