package dto

import "errors"

// Extraction failure taxonomy. The first two mean "couldn't read the file";
// the last means "read it but found nothing financial in it".
var (
	ErrExtractionUnavailable = errors.New("no text extraction capability available")
	ErrNoExtractableText     = errors.New("document yielded no extractable text")
	ErrNoTradelinesFound     = errors.New("no tradelines found in document")
)

// ErrRunSuperseded means a newer extraction run started before this one
// finished; the stale result is discarded, not applied.
var ErrRunSuperseded = errors.New("extraction run superseded by a newer upload")

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ExtractResponse is the final response structure
type ExtractResponse struct {
	Tradelines   []Tradeline    `json:"tradelines"`
	CreditScore  *int           `json:"credit_score"`
	SourceReport string         `json:"source_report"`
	DebtorParty  string         `json:"debtor_party"`
	Import       *ImportSummary `json:"import,omitempty"`
	ProcessedAt  string         `json:"processed_at"`
}
