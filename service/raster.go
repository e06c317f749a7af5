package service

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"

	// Page images extracted by pdfcpu arrive in whatever format the PDF
	// embedded them in.
	_ "image/jpeg"

	_ "golang.org/x/image/tiff"
)

// Tesseract struggles below roughly this pixel width on letter-sized pages.
const minOCRWidth = 1200

// PrepareForOCR preprocesses a page raster for recognition (grayscale,
// upscale small pages) and writes it to a temporary PNG file. The caller
// removes the file when done.
func PrepareForOCR(img image.Image) (string, error) {
	prepared := imaging.Grayscale(img)
	if prepared.Bounds().Dx() < minOCRWidth {
		prepared = imaging.Resize(prepared, minOCRWidth, 0, imaging.Lanczos)
	}

	tempFile, err := os.CreateTemp("", "ocr-page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, prepared); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode page image: %w", err)
	}
	return tempFile.Name(), nil
}
