package dto

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// ExtractRequest represents the incoming report upload
type ExtractRequest struct {
	File        *multipart.FileHeader `form:"file" binding:"required"`
	DebtorParty string                `form:"debtor_party"`
	LeadID      string                `form:"lead_id"`
}

// Validate performs basic validation on the request
func (r *ExtractRequest) Validate() error {
	if r.File == nil {
		return errors.New("file is required")
	}
	switch DebtorParty(r.DebtorParty) {
	case PartyApplicant, PartyCoapp, "":
	default:
		return errors.New("debtor_party must be applicant or coapp")
	}
	if KindFromFilename(r.File.Filename) == "" {
		return errors.New("unsupported file type: expected pdf, image, or txt")
	}
	return nil
}

// Party returns the declared debtor party, defaulting to applicant.
func (r *ExtractRequest) Party() DebtorParty {
	if DebtorParty(r.DebtorParty) == PartyCoapp {
		return PartyCoapp
	}
	return PartyApplicant
}

// KindFromFilename maps a file extension to a DocumentKind. Returns "" for
// extensions the extractor cannot handle.
func KindFromFilename(name string) DocumentKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return KindPDF
	case ".txt":
		return KindPlainText
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
		return KindImage
	}
	return ""
}
