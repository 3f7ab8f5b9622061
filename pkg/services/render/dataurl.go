package render

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// ImageDataURL reads an image file and encodes it as a base64 data URL. The
// mime type is guessed from the file extension, falling back to
// application/octet-stream.
func ImageDataURL(imagePath string) (string, error) {
	mimeType := mime.TypeByExtension(filepath.Ext(imagePath))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", imagePath, err)
	}

	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}
