package upload

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestSaveProof_WritesUnderAgencyDirectory(t *testing.T) {
	store := NewStore(t.TempDir(), "/static/uploads")

	url, err := store.SaveProof(5, fileHeader(t, "receipt.png", pngBytes(t)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/static/uploads/proofs/5/"), url)
	assert.True(t, strings.HasSuffix(url, "_receipt.png"), url)
}

func TestSavePassport_SeparateKindDirectory(t *testing.T) {
	store := NewStore(t.TempDir(), "/static/uploads")

	url, err := store.SavePassport(7, fileHeader(t, "scan.png", pngBytes(t)))
	require.NoError(t, err)
	assert.Contains(t, url, "/passports/7/")
}

func TestSave_RejectsDisallowedType(t *testing.T) {
	store := NewStore(t.TempDir(), "/static/uploads")

	// an HTML payload must not pass even with an image filename
	_, err := store.SaveProof(5, fileHeader(t, "receipt.png", []byte("<html><body>hi</body></html>")))
	assert.ErrorIs(t, err, ErrInvalidMimeType)
}

func TestSave_RejectsEmptyFile(t *testing.T) {
	store := NewStore(t.TempDir(), "/static/uploads")

	_, err := store.SaveProof(5, fileHeader(t, "receipt.png", nil))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestSanitizeName_StripsUnsafeRunes(t *testing.T) {
	assert.Equal(t, "re_u__t__jpg", sanitizeName("reçu été.jpg.png"))
	assert.Equal(t, "file", sanitizeName(".png"))
}
