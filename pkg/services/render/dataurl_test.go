package render

import (
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) []byte {
	t.Helper()
	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()
	require.NoError(t, png.Encode(out, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestImageDataURL_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	raw := writePNG(t, path)

	dataURL, err := ImageDataURL(path)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"), dataURL[:30])

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestImageDataURL_UnknownExtensionFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.img2")
	require.NoError(t, os.WriteFile(path, []byte{0x1}, 0o644))

	dataURL, err := ImageDataURL(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:application/octet-stream;base64,"))
}

func TestImageDataURL_MissingFile(t *testing.T) {
	_, err := ImageDataURL(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}

func TestStem(t *testing.T) {
	assert.Equal(t, "Tesco AR report extracted", Stem("data/mock/Tesco AR report extracted.pdf"))
	assert.Equal(t, "report", Stem("report.pdf"))
	assert.Equal(t, "report", Stem("report"))
}
