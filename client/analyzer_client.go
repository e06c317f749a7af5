package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/troghx/ocr-credit-report/dto"
)

// AnalyzerClient talks to the optional remote analysis service that acts as a
// first-pass tradeline extractor. Every failure mode (transport error,
// non-2xx, empty result) means "unavailable"; the caller falls through to the
// local heuristics and never surfaces analyzer problems to the user.
type AnalyzerClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAnalyzerClient(baseURL string) *AnalyzerClient {
	return &AnalyzerClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 45 * time.Second},
	}
}

type analyzeRequest struct {
	Text         string `json:"text"`
	SourceReport string `json:"source_report"`
}

type analyzeResponse struct {
	Tradelines []dto.Tradeline `json:"tradelines"`
}

// Analyze sends the document text for remote extraction. A nil slice with a
// nil error also means "nothing usable"; callers check length, not just err.
func (a *AnalyzerClient) Analyze(ctx context.Context, text, sourceReport string) ([]dto.Tradeline, error) {
	payload, err := json.Marshal(analyzeRequest{Text: text, SourceReport: sourceReport})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyzer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("analyzer returned status %d: %s", resp.StatusCode, string(body))
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode analyzer response: %w", err)
	}

	log.Printf("Analyzer returned %d tradelines in %s for %s",
		len(result.Tradelines), time.Since(start).Round(time.Millisecond), sourceReport)

	return result.Tradelines, nil
}
