package service

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/troghx/ocr-credit-report/dto"
	"github.com/troghx/ocr-credit-report/utils/creditreport"
)

// A page whose whitespace-collapsed native text is shorter than this is
// treated as a scanned image and escalated to OCR.
const minNativePageText = 40

// OcrWorker is one recognition worker, scoped to a single extraction run.
type OcrWorker interface {
	Recognize(imagePath string) (string, error)
	Close()
}

// OcrWorkerFactory acquires a worker. Lets tests stub recognition the same
// way the exec runner is stubbed elsewhere.
type OcrWorkerFactory func() (OcrWorker, error)

// TradelineAnalyzer is the optional remote first-pass extractor.
type TradelineAnalyzer interface {
	Analyze(ctx context.Context, text, sourceReport string) ([]dto.Tradeline, error)
}

// Extraction run states. A run that a newer run supersedes ends aborted and
// its result is discarded, never applied.
type runState int

const (
	stateIdle runState = iota
	stateExtracting
	stateScoring
	stateParsing
	stateDone
	stateAborted
)

// ExtractionService sequences the whole pipeline per uploaded document:
// layout reconstruction (with OCR escalation), score extraction, boundary
// detection, assembly, and merge.
type ExtractionService struct {
	pdfProcessor PDFProcessor
	newOcrWorker OcrWorkerFactory
	analyzer     TradelineAnalyzer

	runSeq atomic.Uint64
}

func NewExtractionService(pdfProcessor PDFProcessor, newOcrWorker OcrWorkerFactory, analyzer TradelineAnalyzer) *ExtractionService {
	return &ExtractionService{
		pdfProcessor: pdfProcessor,
		newOcrWorker: newOcrWorker,
		analyzer:     analyzer,
	}
}

// extractionRun carries all per-run state explicitly: the run identifier,
// the lazily acquired OCR worker, and the lazily extracted page images.
// Nothing about a run lives in package-level state.
type extractionRun struct {
	id    uint64
	svc   *ExtractionService
	state runState

	worker    OcrWorker
	workerErr error

	pageImages   []image.Image
	imagesLoaded bool
	imagesData   []byte
}

func (r *extractionRun) ocrWorker() (OcrWorker, error) {
	if r.worker == nil && r.workerErr == nil {
		if r.svc.newOcrWorker == nil {
			r.workerErr = dto.ErrExtractionUnavailable
		} else {
			r.worker, r.workerErr = r.svc.newOcrWorker()
		}
	}
	return r.worker, r.workerErr
}

// close releases the run's worker. Called on every exit path.
func (r *extractionRun) close() {
	if r.worker != nil {
		r.worker.Close()
		r.worker = nil
	}
}

// superseded reports whether a newer run has started since this one.
func (r *extractionRun) superseded() bool {
	return r.svc.runSeq.Load() != r.id
}

// pageImage lazily extracts all page images on first need and returns the
// raster for one page.
func (r *extractionRun) pageImage(pageIndex int) image.Image {
	if !r.imagesLoaded {
		r.imagesLoaded = true
		images, err := r.svc.pdfProcessor.ExtractPageImages(r.imagesData)
		if err != nil {
			log.Printf("Page image extraction failed: %v", err)
			return nil
		}
		r.pageImages = images
	}
	if pageIndex < 0 || pageIndex >= len(r.pageImages) {
		return nil
	}
	return r.pageImages[pageIndex]
}

// ExtractReport is the single external entry point: one uploaded document,
// one declared debtor party, one result.
func (s *ExtractionService) ExtractReport(ctx context.Context, doc dto.RawDocument, party dto.DebtorParty) (*dto.ExtractionResult, error) {
	run := &extractionRun{id: s.runSeq.Add(1), svc: s}
	defer run.close()

	run.state = stateExtracting
	text, err := s.extractText(run, doc)
	if err != nil {
		run.state = stateAborted
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		run.state = stateAborted
		return nil, fmt.Errorf("%w: %s", dto.ErrNoExtractableText, doc.SourceLabel)
	}

	run.state = stateScoring
	lines := creditreport.NormalizeLines(text)
	score := creditreport.ExtractCreditScore(lines)

	if run.superseded() {
		run.state = stateAborted
		return nil, dto.ErrRunSuperseded
	}

	run.state = stateParsing
	tradelines := s.remoteTradelines(ctx, text, doc, party)
	if tradelines == nil {
		anchors := creditreport.FindAnchors(lines)
		tradelines = creditreport.AssembleTradelines(lines, anchors, doc.SourceLabel, party)
	}

	if run.superseded() {
		run.state = stateAborted
		return nil, dto.ErrRunSuperseded
	}
	if len(tradelines) == 0 {
		run.state = stateAborted
		return nil, fmt.Errorf("%w: %s", dto.ErrNoTradelinesFound, doc.SourceLabel)
	}

	run.state = stateDone
	log.Printf("Extraction done for %s: %d tradelines, score=%v",
		doc.SourceLabel, len(tradelines), score)
	return &dto.ExtractionResult{Tradelines: tradelines, CreditScore: score}, nil
}

// extractText produces the whole document's text, pages joined with an
// explicit page-break marker.
func (s *ExtractionService) extractText(run *extractionRun, doc dto.RawDocument) (string, error) {
	switch doc.Kind {
	case dto.KindPlainText:
		return string(doc.Data), nil
	case dto.KindImage:
		return s.extractImageText(run, doc)
	case dto.KindPDF:
		return s.extractPDFText(run, doc)
	}
	return "", fmt.Errorf("%w: unknown document kind %q", dto.ErrExtractionUnavailable, doc.Kind)
}

func (s *ExtractionService) extractPDFText(run *extractionRun, doc dto.RawDocument) (string, error) {
	if s.pdfProcessor == nil {
		return "", dto.ErrExtractionUnavailable
	}
	run.imagesData = doc.Data

	pages, err := s.pdfProcessor.ExtractPages(doc.Data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", dto.ErrExtractionUnavailable, err)
	}

	pageTexts := make([]string, 0, len(pages))
	for i, page := range pages {
		native := strings.Join(ReconstructPage(page.Fragments, page.Width), "\n")

		pageIndex := i
		text := EscalateIfSparse(native, minNativePageText, func() (string, error) {
			return s.recognizePage(run, pageIndex)
		})
		pageTexts = append(pageTexts, text)
	}
	return strings.Join(pageTexts, "\n"+creditreport.PageBreak+"\n"), nil
}

// recognizePage rasterizes one page and runs OCR on it. Failures here are
// per-page: the caller keeps the native text it already had.
func (s *ExtractionService) recognizePage(run *extractionRun, pageIndex int) (string, error) {
	img := run.pageImage(pageIndex)
	if img == nil {
		return "", fmt.Errorf("no raster for page %d", pageIndex+1)
	}
	worker, err := run.ocrWorker()
	if err != nil {
		return "", err
	}

	imagePath, err := PrepareForOCR(img)
	if err != nil {
		return "", err
	}
	defer os.Remove(imagePath)

	return worker.Recognize(imagePath)
}

func (s *ExtractionService) extractImageText(run *extractionRun, doc dto.RawDocument) (string, error) {
	worker, err := run.ocrWorker()
	if err != nil {
		return "", dto.ErrExtractionUnavailable
	}

	ext := filepath.Ext(doc.SourceLabel)
	if ext == "" {
		ext = ".png"
	}
	tempFile, err := os.CreateTemp("", "report-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp image: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(doc.Data); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}
	tempFile.Close()

	return worker.Recognize(tempFile.Name())
}

// remoteTradelines consults the optional analyzer. Any failure or empty
// result returns nil and the local heuristics take over; analyzer problems
// are never surfaced to the caller.
func (s *ExtractionService) remoteTradelines(ctx context.Context, text string, doc dto.RawDocument, party dto.DebtorParty) []dto.Tradeline {
	if s.analyzer == nil {
		return nil
	}
	remote, err := s.analyzer.Analyze(ctx, text, doc.SourceLabel)
	if err != nil {
		log.Printf("Analyzer unavailable, falling back to local parsing: %v", err)
		return nil
	}

	// Remote output gets the same normalization as local output.
	var usable []dto.Tradeline
	for _, tl := range remote {
		tl.CreditorName = creditreport.NormalizeCreditorName(tl.CreditorName)
		tl.AccountNumber = strings.TrimSpace(tl.AccountNumber)
		tl.DebtAmount = creditreport.Round2(tl.DebtAmount)
		tl.PastDue = creditreport.Round2(tl.PastDue)
		tl.SourceReport = doc.SourceLabel
		tl.DebtorParty = string(party)
		tl.IsIncluded = tl.DebtAmount > 0

		if tl.CreditorName == "" || tl.AccountNumber == "" || !tl.IsIncluded {
			continue
		}
		usable = append(usable, tl)
	}
	if len(usable) == 0 {
		return nil
	}
	return usable
}
