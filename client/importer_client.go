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

// ImporterClient hands extracted tradelines to the external API that persists
// them against a lead record. The importer may reject a record as a duplicate
// (409); that is a normal per-record outcome, never a batch failure.
type ImporterClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewImporterClient(baseURL string) *ImporterClient {
	return &ImporterClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ImportTradelines posts each included tradeline for the lead and aggregates
// per-record outcomes.
func (ic *ImporterClient) ImportTradelines(ctx context.Context, leadID string, tradelines []dto.Tradeline) (dto.ImportSummary, error) {
	var summary dto.ImportSummary
	if leadID == "" {
		return summary, fmt.Errorf("lead id is required for import")
	}

	url := fmt.Sprintf("%s/leads/%s/tradelines", ic.baseURL, leadID)

	for _, tl := range tradelines {
		if !tl.IsIncluded {
			continue
		}
		status, err := ic.postTradeline(ctx, url, tl)
		switch {
		case err != nil:
			log.Printf("Import failed for %s (%s): %v", tl.CreditorName, tl.AccountNumber, err)
			summary.Failed++
		case status == http.StatusConflict:
			summary.Duplicates++
		case status >= 200 && status < 300:
			summary.Imported++
		default:
			log.Printf("Import rejected for %s with status %d", tl.CreditorName, status)
			summary.Failed++
		}
	}
	return summary, nil
}

func (ic *ImporterClient) postTradeline(ctx context.Context, url string, tl dto.Tradeline) (int, error) {
	payload, err := json.Marshal(tl)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal tradeline: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to build import request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ic.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("import request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return resp.StatusCode, nil
}
