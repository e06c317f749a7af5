package creditreport

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/troghx/ocr-credit-report/dto"
)

// Creditor-name discovery. Tradeline blocks print the creditor as a header
// line somewhere above the account number; the header is unlabeled, so it is
// recognized by what it is not (report boilerplate) and scored by how much it
// looks like a lender name.

const (
	creditorNameMinLen = 3
	creditorNameMaxLen = dto.CreditorNameMaxLen

	nameSearchBack    = 18
	nameSearchForward = 10
)

var (
	// Lender-looking patterns. Shared bank words plus the usual suspects.
	bankNameRe = regexp.MustCompile(`(?i)\b(bank|bancorp|credit union|fcu|n\.?a\.?|financial|finance|funding|lending|loans?|mortgage|card services|capital one|chase|wells fargo|citi\w*|discover|amex|american express|synchrony|barclays|us bank|usbank|pnc|td bank|ally|navy federal|usaa|regions|truist|fifth third|santander|goldman|sofi|upstart|avant|onemain|credit one|first premier|merrick|bureau of accounts|portfolio recovery|midland|lvnv)\b`)

	// Report boilerplate that can never be a creditor header.
	creditorDenyTerms = []string{
		"page ", "account", "balance", "limit", "history", "payment",
		"reported", "status", "responsibility", "months", "month's",
		"past due", "inquir", "terms", "opened", "closed on",
		"address", "p.o. box", "po box", "phone", "www.", ".com",
		"score", "bureau", "vantage", "fico", "summary", "total",
	}

	stateZipRe = regexp.MustCompile(`\b[A-Z]{2}\s+[0-9]{5}`)
	dateLikeRe = regexp.MustCompile(`\b[0-9]{1,2}[/-][0-9]{1,2}[/-][0-9]{2,4}\b|\b(19|20)[0-9]{2}\b`)
)

// LooksLikeCreditorLine reports whether a line could plausibly be a creditor
// header: short, letter-bearing, not boilerplate, and either bank-patterned
// or shouty-short the way report headers are.
func LooksLikeCreditorLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < creditorNameMinLen || len(trimmed) > creditorNameMaxLen {
		return false
	}
	if !hasLetter(trimmed) || HasMoney(trimmed) {
		return false
	}
	if strings.ContainsRune(trimmed, '%') {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, term := range creditorDenyTerms {
		if strings.Contains(lower, term) {
			return false
		}
	}
	if stateZipRe.MatchString(trimmed) || dateLikeRe.MatchString(trimmed) {
		return false
	}
	if bankNameRe.MatchString(trimmed) {
		return true
	}
	words := strings.Fields(trimmed)
	return len(words) <= 7 && upperRatio(trimmed) >= 0.6
}

// DiscoverCreditorName finds the creditor header for an anchor: backward
// first, forward as a fallback. ok is false when nothing plausible exists, in
// which case the anchor must be dropped rather than emitted nameless.
func DiscoverCreditorName(lines []string, anchor int) (string, bool) {
	name, _, ok := DiscoverCreditor(lines, anchor)
	return name, ok
}

// DiscoverCreditor also reports the header's line index, which marks where
// the tradeline block begins. headerIdx is the anchor itself when the name
// was only found forward.
func DiscoverCreditor(lines []string, anchor int) (name string, headerIdx int, ok bool) {
	if name, idx, ok := searchBackward(lines, anchor); ok {
		return name, idx, true
	}
	name, ok = searchForward(lines, anchor)
	return name, anchor, ok
}

func searchBackward(lines []string, anchor int) (string, int, bool) {
	bestIdx := -1
	bestScore := 0.0
	lo := anchor - nameSearchBack
	if lo < 0 {
		lo = 0
	}
	for i := anchor - 1; i >= lo; i-- {
		if !LooksLikeCreditorLine(lines[i]) {
			continue
		}
		score := scoreCreditorCandidate(lines, i, anchor)
		if bestIdx < 0 || score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		return "", -1, false
	}

	name := strings.TrimSpace(lines[bestIdx])

	// Two-line headers: a short winner whose preceding line also reads like a
	// creditor line is the tail of a wrapped name.
	if isShortName(name) && bestIdx > 0 {
		prev := strings.TrimSpace(lines[bestIdx-1])
		if LooksLikeCreditorLine(prev) && !IsDollarLine(prev) {
			name = prev + " " + name
			bestIdx--
		}
	}
	return NormalizeCreditorName(name), bestIdx, true
}

func searchForward(lines []string, anchor int) (string, bool) {
	hi := anchor + nameSearchForward
	if hi > len(lines)-1 {
		hi = len(lines) - 1
	}
	for i := anchor + 1; i <= hi; i++ {
		if LooksLikeCreditorLine(lines[i]) {
			return NormalizeCreditorName(lines[i]), true
		}
	}
	return "", false
}

// scoreCreditorCandidate ranks a candidate header line: lender-pattern and
// layout bonuses minus a distance penalty so the nearest good header wins.
func scoreCreditorCandidate(lines []string, idx, anchor int) float64 {
	line := strings.TrimSpace(lines[idx])
	score := 1.0
	if bankNameRe.MatchString(line) {
		score += 4
	}
	if strings.ContainsRune(line, '/') {
		score += 1
	}
	words := len(strings.Fields(line))
	if words >= 2 && words <= 6 {
		score += 1
	}
	// Headers sit right above the block's figures.
	for j := idx + 1; j <= idx+2 && j < len(lines); j++ {
		if strings.ContainsRune(lines[j], '$') {
			score += 1
			break
		}
	}
	score -= 0.5 * float64(anchor-idx)
	return score
}

func isShortName(name string) bool {
	return len(strings.Fields(name)) <= 2 || len(name) <= 16
}

// NormalizeCreditorName trims and caps a discovered name.
func NormalizeCreditorName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	name = strings.Trim(name, " :;|-")
	if len(name) > creditorNameMaxLen {
		name = strings.TrimSpace(name[:creditorNameMaxLen])
	}
	return name
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func upperRatio(s string) float64 {
	letters, uppers := 0, 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			uppers++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(uppers) / float64(letters)
}
