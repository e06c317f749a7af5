package service

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageFragments is one page's positioned native text plus the page geometry
// the layout reconstructor needs.
type PageFragments struct {
	Fragments []Fragment
	Width     float64
}

type PDFProcessor interface {
	// ExtractPages returns positioned text fragments for every page.
	ExtractPages(pdfData []byte) ([]PageFragments, error)
	// ExtractPageImages returns the page raster images, in page order, for
	// the scanned-page OCR fallback.
	ExtractPageImages(pdfData []byte) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

func (p *pdfProcessor) ExtractPages(pdfData []byte) ([]PageFragments, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	totalPage := r.NumPage()
	pages := make([]PageFragments, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, PageFragments{Width: defaultPageWidth})
			continue
		}

		content := page.Content()
		fragments := make([]Fragment, 0, len(content.Text))
		for _, t := range content.Text {
			if t.S == "" {
				continue
			}
			fragments = append(fragments, Fragment{Text: t.S, X: t.X, Y: t.Y, W: t.W})
		}

		pages = append(pages, PageFragments{
			Fragments: mergeAdjacentGlyphs(fragments),
			Width:     mediaBoxWidth(page),
		})
	}
	return pages, nil
}

// mergeAdjacentGlyphs joins per-glyph fragments that touch on the same
// baseline into word-sized fragments, so the layout pass sees words rather
// than single characters.
func mergeAdjacentGlyphs(fragments []Fragment) []Fragment {
	if len(fragments) < 2 {
		return fragments
	}
	sorted := make([]Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	merged := sorted[:1]
	for _, frag := range sorted[1:] {
		last := &merged[len(merged)-1]
		sameRow := last.Y-frag.Y <= rowTolerance && frag.Y-last.Y <= rowTolerance
		if sameRow && frag.X-(last.X+last.W) < 1.0 {
			last.Text += frag.Text
			last.W = frag.X + frag.W - last.X
			continue
		}
		merged = append(merged, frag)
	}
	return merged
}

// mediaBoxWidth reads the page width, chasing the Pages tree for inherited
// MediaBox entries.
func mediaBoxWidth(page pdf.Page) float64 {
	box := page.V.Key("MediaBox")
	parent := page.V.Key("Parent")
	for box.IsNull() && !parent.IsNull() {
		box = parent.Key("MediaBox")
		parent = parent.Key("Parent")
	}
	if box.IsNull() || box.Len() < 4 {
		return defaultPageWidth
	}
	width := box.Index(2).Float64() - box.Index(0).Float64()
	if width <= 0 {
		return defaultPageWidth
	}
	return width
}

func (p *pdfProcessor) ExtractPageImages(pdfData []byte) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "report_pages")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "report-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract page images: %w", err)
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if !f.IsDir() {
			names = append(names, f.Name())
		}
	}
	// pdfcpu names extracted images by page; lexical order is page order.
	sort.Strings(names)

	var images []image.Image
	for _, name := range names {
		imgFile, err := os.Open(filepath.Join(tempDir, name))
		if err != nil {
			continue
		}
		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}
		images = append(images, img)
	}
	return images, nil
}
