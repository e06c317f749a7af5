package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/troghx/ocr-credit-report/client"
	"github.com/troghx/ocr-credit-report/dto"
	"github.com/troghx/ocr-credit-report/service"
)

type ReportHandler struct {
	extractionService *service.ExtractionService
	importer          *client.ImporterClient
}

func NewReportHandler(extractionService *service.ExtractionService, importer *client.ImporterClient) *ReportHandler {
	return &ReportHandler{
		extractionService: extractionService,
		importer:          importer,
	}
}

// ExtractReport handles the POST /reports/extract endpoint
func (h *ReportHandler) ExtractReport(c *gin.Context) {
	log.Println("Received credit report extraction request")

	var request dto.ExtractRequest
	if err := c.ShouldBind(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to parse upload form", err)
		return
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	file, err := request.File.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
		return
	}

	doc := dto.RawDocument{
		Data:        data,
		Kind:        dto.KindFromFilename(request.File.Filename),
		SourceLabel: request.File.Filename,
	}

	result, err := h.extractionService.ExtractReport(c.Request.Context(), doc, request.Party())
	if err != nil {
		h.sendExtractionError(c, err)
		return
	}

	response := dto.ExtractResponse{
		Tradelines:   result.Tradelines,
		CreditScore:  result.CreditScore,
		SourceReport: doc.SourceLabel,
		DebtorParty:  string(request.Party()),
		ProcessedAt:  time.Now().Format(time.RFC3339),
	}

	if h.importer != nil && request.LeadID != "" {
		summary, err := h.importer.ImportTradelines(c.Request.Context(), request.LeadID, result.Tradelines)
		if err != nil {
			log.Printf("Tradeline import failed for lead %s: %v", request.LeadID, err)
		} else {
			response.Import = &summary
		}
	}

	log.Printf("Extraction completed for %s: %d tradelines", doc.SourceLabel, len(result.Tradelines))
	c.JSON(http.StatusOK, response)
}

// sendExtractionError maps the extraction failure taxonomy onto distinct
// user-facing messages: "couldn't read the file" means re-scan, "found
// nothing financial" means wrong document type.
func (h *ReportHandler) sendExtractionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dto.ErrExtractionUnavailable):
		h.sendError(c, http.StatusServiceUnavailable,
			"Couldn't read the file: no text extraction capability is available", err)
	case errors.Is(err, dto.ErrNoExtractableText):
		h.sendError(c, http.StatusUnprocessableEntity,
			"Couldn't read the file: no text could be extracted, try a clearer scan", err)
	case errors.Is(err, dto.ErrNoTradelinesFound):
		h.sendError(c, http.StatusUnprocessableEntity,
			"Read the file but found no credit accounts in it; is this a credit report?", err)
	case errors.Is(err, dto.ErrRunSuperseded):
		h.sendError(c, http.StatusConflict,
			"A newer upload superseded this extraction", err)
	default:
		h.sendError(c, http.StatusInternalServerError, "Failed to extract report", err)
	}
}

// sendError sends a structured error response
func (h *ReportHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		log.Printf("Error: %s - %v", message, err)
	}
	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: message,
		Code:    statusCode,
	})
}
