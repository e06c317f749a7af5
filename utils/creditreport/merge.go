package creditreport

import (
	"math"
	"strings"
	"unicode"

	"github.com/troghx/ocr-credit-report/dto"
)

// MergeTradelines folds each incoming tradeline into the running result set,
// merging near-duplicates and appending the rest.
func MergeTradelines(existing, incoming []dto.Tradeline) []dto.Tradeline {
	for _, tl := range incoming {
		existing = MergeInto(existing, tl)
	}
	return existing
}

// MergeInto merges one tradeline into the set, mutating the matched record in
// place or appending a new one.
func MergeInto(set []dto.Tradeline, tl dto.Tradeline) []dto.Tradeline {
	for i := range set {
		if SameAccount(set[i], tl) {
			mergeFields(&set[i], tl)
			return set
		}
	}
	return append(set, tl)
}

// SameAccount decides whether two assembled tradelines describe one account:
// matching creditor names, agreeing statuses, and either account numbers that
// are likely the same or, absent numbers to compare, debt amounts within a
// cent.
func SameAccount(a, b dto.Tradeline) bool {
	if !creditorNamesMatch(a.CreditorName, b.CreditorName) {
		return false
	}
	if a.AccountStatus != "" && b.AccountStatus != "" &&
		!strings.EqualFold(strings.TrimSpace(a.AccountStatus), strings.TrimSpace(b.AccountStatus)) {
		return false
	}
	if significantDigits(a.AccountNumber) == "" || significantDigits(b.AccountNumber) == "" {
		return math.Abs(a.DebtAmount-b.DebtAmount) <= 0.01
	}
	return LikelySameAccountNumber(a.AccountNumber, b.AccountNumber)
}

func creditorNamesMatch(a, b string) bool {
	na, nb := NormalizeNameKey(a), NormalizeNameKey(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	// Templates flip between short and full legal names of one lender.
	if len(na) >= 6 && len(nb) >= 6 &&
		(strings.HasPrefix(na, nb) || strings.HasPrefix(nb, na)) {
		return true
	}
	// OCR mangles a character here and there; treat near-identical names as
	// the same creditor.
	return nameSimilarity(na, nb) >= 0.92
}

// NormalizeNameKey lowercases a creditor name and strips everything but
// letters and digits, for case/punctuation-insensitive comparison.
func NormalizeNameKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LikelySameAccountNumber compares two possibly-masked account numbers:
// exact match after mask-stripping, containment of one masked token in the
// other, or agreeing first-6/last-4 significant digits.
func LikelySameAccountNumber(a, b string) bool {
	ca, cb := canonicalAccount(a), canonicalAccount(b)
	if ca == "" || cb == "" {
		return false
	}
	sa, sb := significantDigits(a), significantDigits(b)
	if sa != "" && sa == sb {
		return true
	}
	if len(ca) >= 6 && len(cb) >= 6 &&
		(strings.Contains(ca, cb) || strings.Contains(cb, ca)) {
		return true
	}
	return len(sa) >= 10 && len(sb) >= 10 &&
		sa[:6] == sb[:6] && sa[len(sa)-4:] == sb[len(sb)-4:]
}

// canonicalAccount uppercases an account token, drops separators, and folds
// both mask characters onto X so masked forms compare against each other.
func canonicalAccount(accountNumber string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(accountNumber) {
		switch {
		case r >= '0' && r <= '9', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r == '*':
			b.WriteRune('X')
		}
	}
	return b.String()
}

// significantDigits strips mask characters and separators, keeping the digit
// and letter payload of an account number.
func significantDigits(accountNumber string) string {
	var b strings.Builder
	for _, r := range accountNumber {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsLetter(r) && r != 'X' && r != 'x':
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// accountNumberQuality scores an account number for the merge: digits are
// signal, mask characters are noise, and longer wins on equal density.
func accountNumberQuality(accountNumber string) int {
	score := 0
	for _, r := range accountNumber {
		switch {
		case r >= '0' && r <= '9':
			score += 3
		case r == 'X' || r == 'x' || r == '*':
			score -= 1
		case unicode.IsLetter(r):
			score += 2
		}
	}
	return score + len(accountNumber)
}

// mergeFields absorbs src into dst under the documented precedence rules.
// dst.DebtSourceRank never decreases.
func mergeFields(dst *dto.Tradeline, src dto.Tradeline) {
	if accountNumberQuality(src.AccountNumber) > accountNumberQuality(dst.AccountNumber) {
		dst.AccountNumber = src.AccountNumber
	}
	if len(src.CreditorName) > len(dst.CreditorName) {
		dst.CreditorName = src.CreditorName
	}
	if dst.AccountStatus == "" {
		dst.AccountStatus = src.AccountStatus
	}
	if dst.AccountType == "" {
		dst.AccountType = src.AccountType
	}
	if dst.Responsibility == "" {
		dst.Responsibility = src.Responsibility
	}
	if dst.CurrentPaymentStatus == "" {
		dst.CurrentPaymentStatus = src.CurrentPaymentStatus
	}
	if src.MonthsReviewed != nil &&
		(dst.MonthsReviewed == nil || *src.MonthsReviewed < *dst.MonthsReviewed) {
		months := *src.MonthsReviewed
		dst.MonthsReviewed = &months
	}
	if src.PastDue > dst.PastDue {
		dst.PastDue = src.PastDue
	}

	switch {
	case src.DebtSourceRank > dst.DebtSourceRank:
		dst.DebtAmount = src.DebtAmount
		dst.DebtSourceRank = src.DebtSourceRank
	case src.DebtSourceRank == dst.DebtSourceRank:
		if dst.DebtSourceRank >= dto.RankExplicit {
			// Two explicit balances for one account: assume the smaller is
			// the more current figure.
			if src.DebtAmount < dst.DebtAmount {
				dst.DebtAmount = src.DebtAmount
			}
		} else if src.DebtAmount > dst.DebtAmount {
			dst.DebtAmount = src.DebtAmount
		}
	}

	dst.DebtAmount = Round2(dst.DebtAmount)
	dst.PastDue = Round2(dst.PastDue)
	dst.IsIncluded = dst.DebtAmount > 0
}

// nameSimilarity is a Levenshtein ratio over normalized name keys.
func nameSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1.0 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	n, m := len(r1), len(r2)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}

	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev[j] = j
	}
	for i := 1; i <= n; i++ {
		cur[0] = i
		for j := 1; j <= m; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			cur[j] = minInt(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[m]
}

func minInt(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
