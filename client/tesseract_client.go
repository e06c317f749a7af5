package client

import (
	"fmt"
	"log"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient builds OCR workers. One worker is created per extraction
// run, lazily, and must be closed when the run ends so tesseract processes
// don't leak across uploads.
type TesseractClient struct {
	dataPath string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
	}
}

// NewWorker acquires a recognition worker scoped to one extraction run.
func (tc *TesseractClient) NewWorker() (*TesseractWorker, error) {
	client := gosseract.NewClient()
	client.SetTessdataPrefix(tc.dataPath)

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	return &TesseractWorker{client: client}, nil
}

// TesseractWorker wraps one tesseract instance for the duration of a run.
type TesseractWorker struct {
	client *gosseract.Client
}

// Recognize runs OCR on an image file. The result may be an empty string,
// never an error for merely blank pages.
func (w *TesseractWorker) Recognize(imagePath string) (string, error) {
	if err := w.client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := w.client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to recognize text: %w", err)
	}
	return text, nil
}

// Close releases the underlying tesseract instance.
func (w *TesseractWorker) Close() {
	if err := w.client.Close(); err != nil {
		log.Printf("failed to close tesseract worker: %v", err)
	}
}
