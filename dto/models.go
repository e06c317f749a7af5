package dto

// DocumentKind identifies the raw payload format of an uploaded report.
type DocumentKind string

const (
	KindPDF       DocumentKind = "pdf"
	KindImage     DocumentKind = "image"
	KindPlainText DocumentKind = "plain-text"
)

// DebtorParty says whose report this is.
type DebtorParty string

const (
	PartyApplicant DebtorParty = "applicant"
	PartyCoapp     DebtorParty = "coapp"
)

// Responsibility values as they appear on tradelines. Empty means unknown.
const (
	ResponsibilityIndividual = "Individual"
	ResponsibilityJoint      = "Joint"
	ResponsibilityAuthorized = "Authorized"
)

// Debt source ranks, highest confidence wins when merging duplicates.
const (
	RankNone     = 0 // no balance found
	RankHeader   = 1 // largest amount near the top of the tradeline block
	RankPastDue  = 2 // past-due amount promoted at finalization
	RankExplicit = 3 // explicit Balance label
)

// CreditorNameMaxLen caps creditor names after normalization.
const CreditorNameMaxLen = 120

// RawDocument is one uploaded credit report. Created at upload time,
// consumed once by the extraction run.
type RawDocument struct {
	Data        []byte
	Kind        DocumentKind
	SourceLabel string
}

// Tradeline is one creditor account found in a report.
type Tradeline struct {
	CreditorName         string  `json:"creditor_name"`
	AccountNumber        string  `json:"account_number"`
	AccountStatus        string  `json:"account_status"`
	AccountType          string  `json:"account_type"`
	Responsibility       string  `json:"responsibility"`
	CurrentPaymentStatus string  `json:"current_payment_status"`
	MonthsReviewed       *int    `json:"months_reviewed"`
	DebtAmount           float64 `json:"debt_amount"`
	DebtSourceRank       int     `json:"debt_source_rank"`
	PastDue              float64 `json:"past_due"`
	IsIncluded           bool    `json:"is_included"`
	SourceReport         string  `json:"source_report"`
	DebtorParty          string  `json:"debtor_party"`
}

// ExtractionResult is what one extraction run produces.
type ExtractionResult struct {
	Tradelines  []Tradeline `json:"tradelines"`
	CreditScore *int        `json:"credit_score"`
}

// ImportSummary reports the per-record outcomes of handing tradelines to the
// external importer. Duplicates (409) are a normal outcome, not a failure.
type ImportSummary struct {
	Imported   int `json:"imported"`
	Duplicates int `json:"duplicates"`
	Failed     int `json:"failed"`
}
