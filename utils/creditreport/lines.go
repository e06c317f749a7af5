package creditreport

import (
	"regexp"
	"strings"
)

// PageBreak separates page texts in the concatenated document blob.
const PageBreak = "\f"

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)

	// Field labels that the layout engine tends to glue onto the previous
	// sentence. Each occurrence gets a synthetic newline in front of it so it
	// becomes its own line. The balance alternative swallows its qualifier
	// word so "Highest Balance:" is not split into "Highest" + "Balance:".
	reFieldLabel = regexp.MustCompile(`(?i)(?:(?:highest|high|current|unpaid|account)\s+)?balance:|account\s*(?:number|#)|account\s+status|\btype:|responsibility:|month'?s?\s+reviewed|(?:amount\s+)?past\s+due`)
)

// NormalizeLines turns a whole document's raw text into the flat ordered line
// sequence shared by score extraction, boundary detection and assembly.
func NormalizeLines(raw string) []string {
	if raw == "" {
		return nil
	}
	s := reCRLF.ReplaceAllString(raw, "\n")
	s = strings.ReplaceAll(s, PageBreak, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reFieldLabel.ReplaceAllString(s, "\n$0")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
