package creditreport

import (
	"regexp"
	"strings"
)

var (
	// An anchor line names the account number field and carries an identifier
	// token: digits, letters and X/* mask characters in some mixture.
	anchorRe = regexp.MustCompile(`(?i)account\s*(?:number|#)\s*:?\s*([0-9A-Za-z*][0-9A-Za-z*\- ]*)`)

	accountTokenRe = regexp.MustCompile(`^[0-9A-Za-z*\-]+`)
	maskCharRe     = regexp.MustCompile(`[Xx*]`)
	digitRunRe     = regexp.MustCompile(`[0-9]{8,}`)
)

// FindAnchors returns, in document order, the indices of lines that anchor a
// tradeline. Anchors whose account token is masked while an adjacent line
// shows an unmasked token are dropped: those are summary rows shadowing the
// detail view of the same account.
func FindAnchors(lines []string) []int {
	var anchors []int
	for i, line := range lines {
		token, ok := AccountToken(line)
		if !ok {
			continue
		}
		if isMaskedToken(token) && (hasUnmaskedToken(lines, i-1) || hasUnmaskedToken(lines, i+1)) {
			continue
		}
		anchors = append(anchors, i)
	}
	return anchors
}

// AccountToken pulls the account identifier following an "Account Number" /
// "Account #" label, if the line has one.
func AccountToken(line string) (string, bool) {
	m := anchorRe.FindStringSubmatch(line)
	if len(m) < 2 {
		return "", false
	}
	token := accountTokenRe.FindString(strings.TrimSpace(m[1]))
	if !isPlausibleAccountToken(token) {
		return "", false
	}
	return token, true
}

func isPlausibleAccountToken(token string) bool {
	if len(token) < 4 {
		return false
	}
	significant := 0
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9', r == '*', r == 'X', r == 'x':
			significant++
		}
	}
	return significant >= 3
}

func isMaskedToken(token string) bool {
	return maskCharRe.MatchString(token)
}

func hasUnmaskedToken(lines []string, i int) bool {
	if i < 0 || i >= len(lines) {
		return false
	}
	if token, ok := AccountToken(lines[i]); ok {
		return !isMaskedToken(token)
	}
	// Detail views sometimes print the bare number without repeating the label.
	if run := digitRunRe.FindString(lines[i]); run != "" && !HasMoney(lines[i]) {
		return true
	}
	return false
}
