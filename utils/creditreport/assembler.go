package creditreport

import (
	"strings"

	"github.com/troghx/ocr-credit-report/dto"
)

// Window bounds around an anchor, in lines. The back window exists because
// templates print the creditor header and summary figures above the account
// number; the forward window is capped by the next anchor.
const (
	windowBack    = 24
	windowForward = 90

	headerBack    = 14
	headerForward = 5

	balanceLookahead = 3
)

// Section headings that mean the current tradeline block has ended even when
// the next anchor is far away.
var sectionMarkers = []string{
	"credit cards", "collections", "public records", "total count",
	"installment loans", "real estate", "inquiries",
}

// AssembleTradelines builds one candidate tradeline per anchor and folds them
// into a deduplicated result set.
func AssembleTradelines(lines []string, anchors []int, sourceReport string, party dto.DebtorParty) []dto.Tradeline {
	var out []dto.Tradeline
	for idx, anchor := range anchors {
		prev := -1
		if idx > 0 {
			prev = anchors[idx-1]
		}
		next := len(lines)
		if idx+1 < len(anchors) {
			next = anchors[idx+1]
		}
		tl, ok := assembleOne(lines, anchor, prev, next)
		if !ok {
			continue
		}
		tl.SourceReport = sourceReport
		tl.DebtorParty = string(party)
		out = MergeInto(out, tl)
	}
	return out
}

// assembleOne scans the anchor's window and extracts every field it can.
// Anchors with no discoverable creditor name, and tradelines that end with
// zero debt, are dropped: skipping is better than fabricating.
func assembleOne(lines []string, anchor, prevAnchor, nextAnchor int) (dto.Tradeline, bool) {
	token, ok := AccountToken(lines[anchor])
	if !ok {
		return dto.Tradeline{}, false
	}
	name, headerIdx, ok := DiscoverCreditor(lines, anchor)
	if !ok || len(name) < creditorNameMinLen {
		return dto.Tradeline{}, false
	}

	tl := dto.Tradeline{
		CreditorName:  name,
		AccountNumber: token,
	}

	// The block starts at its creditor header; anything above that, or at or
	// before the previous anchor, belongs to another tradeline.
	lo := anchor - windowBack
	if headerIdx < anchor && headerIdx > lo {
		lo = headerIdx
	}
	if lo <= prevAnchor {
		lo = prevAnchor + 1
	}
	if lo < 0 {
		lo = 0
	}
	hi := anchor + windowForward
	if hi > nextAnchor-1 {
		hi = nextAnchor - 1
	}
	if hi > len(lines)-1 {
		hi = len(lines) - 1
	}

	for i := lo; i <= hi; i++ {
		line := lines[i]

		if i > anchor {
			if isSectionMarker(line) {
				break
			}
			if i > anchor+1 && looksLikeTradelineBreak(lines, i) {
				break
			}
		}

		if v, ok := ExtractAccountStatus(line); ok && tl.AccountStatus == "" {
			tl.AccountStatus = v
		}
		if v, ok := ExtractPaymentStatus(line); ok && tl.CurrentPaymentStatus == "" {
			tl.CurrentPaymentStatus = v
		}
		if v, ok := ExtractAccountType(line); ok && tl.AccountType == "" {
			tl.AccountType = v
		}
		if v, ok := ExtractResponsibility(line); ok && tl.Responsibility == "" {
			tl.Responsibility = v
		}
		if v, ok := ExtractMonthsReviewed(line); ok {
			// Templates repeat the field with different rounding; keep the
			// smallest value seen.
			if tl.MonthsReviewed == nil || v < *tl.MonthsReviewed {
				months := v
				tl.MonthsReviewed = &months
			}
		}
		if v, ok := ExtractPastDue(line); ok && v > tl.PastDue {
			tl.PastDue = v
		}

		if tl.DebtSourceRank < dto.RankExplicit {
			if v, ok := extractBalanceAt(lines, i, hi); ok {
				tl.DebtAmount = v
				tl.DebtSourceRank = dto.RankExplicit
			}
		}
	}

	if tl.DebtSourceRank < dto.RankExplicit {
		if v, ok := headerFallbackBalance(lines, anchor, max(prevAnchor, headerIdx-1)); ok {
			tl.DebtAmount = v
			tl.DebtSourceRank = dto.RankHeader
		}
	}

	return finalizeTradeline(tl)
}

// extractBalanceAt tries the two explicit balance forms at line i: a label
// directly followed by its amount, or a template header whose amounts follow
// on the next money-bearing line.
func extractBalanceAt(lines []string, i, hi int) (float64, bool) {
	if v, ok := ExtractLabeledBalance(lines[i]); ok {
		return v, true
	}

	highest, ok := BalanceHeader(lines[i])
	if !ok {
		return 0, false
	}
	for j := i + 1; j <= i+balanceLookahead && j <= hi; j++ {
		values := MoneyValues(lines[j])
		if len(values) == 0 {
			continue
		}
		if highest && len(values) >= 2 {
			// Some templates print [current, highest] pairs under a highest
			// balance label; the smaller of the two is the live balance.
			if values[1] < values[0] {
				return values[1], true
			}
			return values[0], true
		}
		return values[0], true
	}
	return 0, false
}

// headerFallbackBalance is the rank-1 path: no explicit label anywhere in the
// window, so take the largest amount near the top of the block.
func headerFallbackBalance(lines []string, anchor, prevAnchor int) (float64, bool) {
	lo := anchor - headerBack
	if lo <= prevAnchor {
		lo = prevAnchor + 1
	}
	if lo < 0 {
		lo = 0
	}
	hi := anchor + headerForward
	if hi > len(lines)-1 {
		hi = len(lines) - 1
	}

	best := 0.0
	found := false
	for i := lo; i <= hi; i++ {
		if IsBalanceNoiseLine(lines[i]) {
			continue
		}
		// Past-due amounts have their own fallback rank; never read one as
		// the balance.
		if _, ok := ExtractPastDue(lines[i]); ok {
			continue
		}
		for _, v := range MoneyValues(lines[i]) {
			if v > best {
				best = v
				found = true
			}
		}
	}
	return best, found
}

// finalizeTradeline applies the rank-2 past-due fallback, recomputes
// inclusion, and discards zero-debt records.
func finalizeTradeline(tl dto.Tradeline) (dto.Tradeline, bool) {
	if tl.DebtAmount == 0 && tl.PastDue > 0 {
		tl.DebtAmount = tl.PastDue
		tl.DebtSourceRank = dto.RankPastDue
	}

	tl.DebtAmount = Round2(tl.DebtAmount)
	tl.PastDue = Round2(tl.PastDue)
	tl.AccountStatus = ResolveStatus(tl.AccountStatus, tl.CurrentPaymentStatus)
	tl.CreditorName = NormalizeCreditorName(tl.CreditorName)
	tl.IsIncluded = tl.DebtAmount > 0

	if !tl.IsIncluded {
		return dto.Tradeline{}, false
	}
	return tl, true
}

func isSectionMarker(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, marker := range sectionMarkers {
		if strings.HasPrefix(lower, marker) {
			return true
		}
	}
	return false
}

// looksLikeTradelineBreak guesses that a new account block starts at i: a
// dollar-amount line followed by a creditor-looking header. Approximate on
// purpose; unusual templates get fixture coverage instead of a hard rule.
func looksLikeTradelineBreak(lines []string, i int) bool {
	if i <= 0 {
		return false
	}
	return IsDollarLine(lines[i-1]) && LooksLikeCreditorLine(lines[i])
}
