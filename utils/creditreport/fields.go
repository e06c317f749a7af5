package creditreport

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/troghx/ocr-credit-report/dto"
)

// Each extractor is a pure function (line) -> (value, ok) so every heuristic
// stays independently testable. The assembler composes them per window line.

var (
	accountStatusRe  = regexp.MustCompile(`(?i)account\s+status\s*:?\s*(.+)`)
	paymentStatusRe  = regexp.MustCompile(`(?i)(?:current\s+)?payment\s+status\s*:?\s*(.+)`)
	accountTypeRe    = regexp.MustCompile(`(?i)\b(?:account\s+|loan\s+)?type\s*:\s*(.+)`)
	responsibilityRe = regexp.MustCompile(`(?i)responsibility\s*:?\s*(.+)`)
	monthsReviewedRe = regexp.MustCompile(`(?i)month'?s?\s+reviewed\s*:?\s*([0-9]{1,3})`)
	pastDueRe        = regexp.MustCompile(`(?i)(?:amount\s+)?past\s+due\s*:?[^0-9$]*\$?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

	// A labeled balance the template prints inline with its amount.
	labeledBalanceRe = regexp.MustCompile(`(?i)\b(?:current\s+|account\s+|unpaid\s+)?(?:balance|payoff)\s*:?\s*\$?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

	// Template header "Balance:" (optionally with companion column labels)
	// whose amounts follow on the next money-bearing line.
	balanceHeaderRe = regexp.MustCompile(`(?i)^(highest\s+)?balance\s*:`)

	// Lines that carry dollar amounts but never the balance.
	balanceNoiseTerms = []string{
		"credit limit", "highest balance", "high balance", "high credit",
		"monthly payment", "term source", "terms count", "payment history",
	}
	lateMatrixRe = regexp.MustCompile(`\b30\b.*\b60\b.*\b90\b`)

	fieldValueTrimRe = regexp.MustCompile(`\s{2,}.*$`)
)

// ExtractAccountStatus matches an "Account Status:" label.
func ExtractAccountStatus(line string) (string, bool) {
	return labeledValue(accountStatusRe, line)
}

// ExtractPaymentStatus matches a "(Current) Payment Status:" label.
func ExtractPaymentStatus(line string) (string, bool) {
	return labeledValue(paymentStatusRe, line)
}

// ExtractAccountType matches a "Type:" / "Account Type:" label.
func ExtractAccountType(line string) (string, bool) {
	if strings.Contains(strings.ToLower(line), "payment status") {
		return "", false
	}
	return labeledValue(accountTypeRe, line)
}

// ExtractResponsibility maps a "Responsibility:" label onto the
// Individual/Joint/Authorized enum.
func ExtractResponsibility(line string) (string, bool) {
	raw, ok := labeledValue(responsibilityRe, line)
	if !ok {
		return "", false
	}
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "joint"):
		return dto.ResponsibilityJoint, true
	case strings.Contains(lower, "author"):
		return dto.ResponsibilityAuthorized, true
	case strings.Contains(lower, "individ"):
		return dto.ResponsibilityIndividual, true
	}
	return "", false
}

// ExtractMonthsReviewed matches "Months Reviewed: N" (and the "Month's"
// spelling some templates use).
func ExtractMonthsReviewed(line string) (int, bool) {
	m := monthsReviewedRe.FindStringSubmatch(line)
	if len(m) < 2 {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// ExtractPastDue matches "(Amount) Past Due" with an amount on the same line.
func ExtractPastDue(line string) (float64, bool) {
	m := pastDueRe.FindStringSubmatch(line)
	if len(m) < 2 {
		return 0, false
	}
	return ParseMoney(m[1])
}

// ExtractLabeledBalance matches an explicit balance label directly followed
// by its amount. Noise lines (credit limits, payment history, the 30/60/90
// late matrix) never qualify even when they carry a dollar amount.
func ExtractLabeledBalance(line string) (float64, bool) {
	if IsBalanceNoiseLine(line) {
		return 0, false
	}
	m := labeledBalanceRe.FindStringSubmatch(line)
	if len(m) < 2 {
		return 0, false
	}
	return ParseMoney(m[1])
}

// BalanceHeader recognizes the template header form where the labels sit on
// one line ("Balance: Credit Limit:") and the amounts on a following line.
// highest reports whether the label asks for the highest-balance pair read.
func BalanceHeader(line string) (highest bool, ok bool) {
	m := balanceHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return false, false
	}
	// A header carries no amount of its own; an inline amount means the
	// labeled-balance extractor owns this line.
	if HasMoney(line) {
		return false, false
	}
	return m[1] != "", true
}

// IsBalanceNoiseLine reports whether a line is excluded from balance
// consideration regardless of any dollar amount on it.
func IsBalanceNoiseLine(line string) bool {
	lower := strings.ToLower(line)
	for _, term := range balanceNoiseTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return lateMatrixRe.MatchString(line)
}

// labeledValue pulls a label's value and trims trailing columnar spillover.
func labeledValue(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if len(m) < 2 {
		return "", false
	}
	v := strings.TrimSpace(fieldValueTrimRe.ReplaceAllString(m[1], ""))
	v = strings.Trim(v, ":;|")
	v = strings.TrimSpace(v)
	if v == "" || len(v) > 80 {
		return "", false
	}
	return v, true
}

// statusSeverity ranks status keywords by how derogatory they are. The
// current payment status only overrides the account status when it carries a
// strictly stronger signal.
func statusSeverity(status string) int {
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "collection"):
		return 6
	case strings.Contains(lower, "charge"): // charge-off / charged off
		return 5
	case strings.Contains(lower, "repossess"), strings.Contains(lower, "foreclos"):
		return 5
	case strings.Contains(lower, "past due"), strings.Contains(lower, "delinquent"):
		return 4
	case strings.Contains(lower, "late"):
		return 3
	case strings.Contains(lower, "paid"), strings.Contains(lower, "settled"), strings.Contains(lower, "closed"):
		return 2
	case strings.Contains(lower, "open"), strings.Contains(lower, "current"), strings.Contains(lower, "good"), strings.Contains(lower, "never late"):
		return 1
	case lower == "":
		return 0
	}
	return 1
}

// ResolveStatus picks the effective account status given both signals.
func ResolveStatus(accountStatus, paymentStatus string) string {
	if accountStatus == "" {
		return paymentStatus
	}
	if paymentStatus == "" {
		return accountStatus
	}
	if statusSeverity(paymentStatus) > statusSeverity(accountStatus) {
		return paymentStatus
	}
	return accountStatus
}
