package creditreport

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// moneyRe matches dollar-like amounts: a $-prefixed number, a comma-grouped
// number, or a number with a cents part. Bare integers are deliberately not
// matched so account numbers and dates don't read as money.
var moneyRe = regexp.MustCompile(`\$\s*[0-9][0-9,]*(?:\.[0-9]{1,2})?|\b[0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]{1,2})?\b|\b[0-9]+\.[0-9]{1,2}\b`)

// amountRe parses the numeric part of a money string.
var amountRe = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)

// ParseMoney extracts a numeric value from a money string, tolerating
// currency symbols and thousands separators. "$1,234.50", "1234.50" and
// "1,234.5" all come back as 1234.50.
func ParseMoney(s string) (float64, bool) {
	m := amountRe.FindString(s)
	if m == "" {
		return 0, false
	}
	m = strings.ReplaceAll(m, ",", "")
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return Round2(v), true
}

// MoneyValues returns every dollar-like amount on a line, in order.
func MoneyValues(line string) []float64 {
	var values []float64
	for _, m := range moneyRe.FindAllString(line, -1) {
		if v, ok := ParseMoney(m); ok {
			values = append(values, v)
		}
	}
	return values
}

// HasMoney reports whether a line carries at least one dollar-like amount.
func HasMoney(line string) bool {
	return moneyRe.MatchString(line)
}

// IsDollarLine reports whether a line is mostly a money figure: it carries an
// amount and little else besides labels and separators.
func IsDollarLine(line string) bool {
	if !HasMoney(line) {
		return false
	}
	stripped := moneyRe.ReplaceAllString(line, "")
	stripped = strings.TrimFunc(stripped, func(r rune) bool {
		return r == ' ' || r == ':' || r == '-' || r == '|' || r == '$'
	})
	return len(stripped) <= 12
}

// Round2 rounds money to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
