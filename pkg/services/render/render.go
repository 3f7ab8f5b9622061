// Package render turns PDF pages into PNG images and base64 data URLs for
// multimodal LLM input.
package render

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog"
)

// DefaultDPI matches the high-resolution renders the extraction prompt was
// tuned against.
const DefaultDPI = 500

// ExtractPagesAsImages renders every page of the PDF as a PNG into outputDir
// and returns a mapping from 1-based page number to the written image path.
func ExtractPagesAsImages(pdfPath, outputDir string, dpi float64) (map[string]string, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", pdfPath, err)
	}
	defer doc.Close()

	stem := Stem(pdfPath)
	imagePaths := make(map[string]string, doc.NumPage())

	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.ImageDPI(n, dpi)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d of %s: %w", n+1, pdfPath, err)
		}

		pageNumber := strconv.Itoa(n + 1)
		imagePath := filepath.Join(outputDir, fmt.Sprintf("%s_page_%s.png", stem, pageNumber))

		out, err := os.Create(imagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create image file %s: %w", imagePath, err)
		}
		if err := png.Encode(out, img); err != nil {
			out.Close()
			return nil, fmt.Errorf("failed to encode page %s as PNG: %w", pageNumber, err)
		}
		if err := out.Close(); err != nil {
			return nil, fmt.Errorf("failed to close image file %s: %w", imagePath, err)
		}

		imagePaths[pageNumber] = imagePath
	}

	return imagePaths, nil
}

// PageDataURLs renders the PDF's pages into outputDir and returns a mapping
// from page number to an image data URL suitable for LLM input.
func PageDataURLs(ctx context.Context, pdfPath, outputDir string, dpi float64) (map[string]string, error) {
	imagePaths, err := ExtractPagesAsImages(pdfPath, outputDir, dpi)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("file", pdfPath).Int("pages", len(imagePaths)).Msg("rendered PDF pages")

	dataURLs := make(map[string]string, len(imagePaths))
	for pageNumber, imagePath := range imagePaths {
		dataURL, err := ImageDataURL(imagePath)
		if err != nil {
			return nil, err
		}
		dataURLs[pageNumber] = dataURL
	}
	return dataURLs, nil
}

// Stem returns the file name without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
