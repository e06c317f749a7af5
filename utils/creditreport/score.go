package creditreport

import (
	"regexp"
	"strings"
)

// Credit scores live in this band; anything else is some other number.
const (
	scoreMin = 300
	scoreMax = 850
)

// scoreScanLimit bounds the fallback line scan. Scores print near the top of
// a report; scanning further only picks up money noise.
const scoreScanLimit = 260

var (
	threeDigitRe = regexp.MustCompile(`\b([0-9]{3})\b`)

	// The score-range axis printed under bureau score charts.
	legendRe     = regexp.MustCompile(`300\s+500\s+660\s+850`)
	legendValues = []int{300, 500, 660, 850}

	scoreContextWords = []string{"fico", "vantage score", "credit score", "bureau", "all bureaus"}
	bureauBlockEnds   = []string{"vantagescore", "report date", "personal info", "account summary"}
)

// ExtractCreditScore finds the highest plausible credit score in the
// normalized line sequence, or nil when none survives. Best effort: callers
// should combine with a previously known score via max, not overwrite.
func ExtractCreditScore(lines []string) *int {
	if v, ok := scoreFromBureauBlock(lines); ok {
		return &v
	}
	if v, ok := scoreFromLineScan(lines); ok {
		return &v
	}
	return nil
}

// scoreFromBureauBlock looks for a block introduced by "Bureau" and ending at
// the next section heading, and takes the max in-range value from it.
func scoreFromBureauBlock(lines []string) (int, bool) {
	start := -1
	for i, line := range lines {
		if containsWord(strings.ToLower(line), "bureau") {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		lower := strings.ToLower(lines[i])
		for _, marker := range bureauBlockEnds {
			if strings.Contains(lower, marker) {
				end = i
				break
			}
		}
		if end == i {
			break
		}
	}

	block := strings.Join(lines[start:end], " ")
	candidates := scoreCandidates(block)
	if legendRe.MatchString(block) {
		candidates = dropLegendValues(candidates)
	}
	return maxOf(candidates)
}

// scoreFromLineScan walks the early lines looking for score-context mentions.
func scoreFromLineScan(lines []string) (int, bool) {
	limit := len(lines)
	if limit > scoreScanLimit {
		limit = scoreScanLimit
	}

	best := 0
	for i := 0; i < limit; i++ {
		line := lines[i]
		if strings.ContainsRune(line, '$') {
			continue
		}

		context := line
		if i > 0 {
			context = lines[i-1] + " " + context
		}
		if i+1 < len(lines) {
			context = context + " " + lines[i+1]
		}
		lowerCtx := strings.ToLower(context)

		relevant := false
		for _, w := range scoreContextWords {
			if strings.Contains(lowerCtx, w) {
				relevant = true
				break
			}
		}
		if !relevant {
			continue
		}

		candidates := scoreCandidates(line)
		if len(candidates) == 0 && i+1 < len(lines) {
			// The label line often names the bureau or "score" alone and the
			// value sits on the next line.
			lower := strings.ToLower(line)
			if strings.Contains(lower, "bureau") || strings.Contains(lower, "score") {
				next := lines[i+1]
				if !strings.ContainsRune(next, '$') {
					candidates = scoreCandidates(next)
				}
			}
		}
		if legendRe.MatchString(context) {
			candidates = dropLegendValues(candidates)
		}
		if v, ok := maxOf(candidates); ok && v > best {
			best = v
		}
	}
	if best == 0 {
		return 0, false
	}
	return best, true
}

func scoreCandidates(text string) []int {
	var out []int
	for _, m := range threeDigitRe.FindAllStringSubmatch(text, -1) {
		v := int(m[1][0]-'0')*100 + int(m[1][1]-'0')*10 + int(m[1][2]-'0')
		if v >= scoreMin && v <= scoreMax {
			out = append(out, v)
		}
	}
	return out
}

// dropLegendValues removes one occurrence of each score-axis legend value.
// The legend is chart decoration, not a score.
func dropLegendValues(candidates []int) []int {
	out := candidates
	for _, lv := range legendValues {
		for i, c := range out {
			if c == lv {
				out = append(out[:i:i], out[i+1:]...)
				break
			}
		}
	}
	return out
}

func maxOf(values []int) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	best := values[0]
	for _, v := range values[1:] {
		if v > best {
			best = v
		}
	}
	return best, true
}

func containsWord(lower, word string) bool {
	idx := strings.Index(lower, word)
	if idx < 0 {
		return false
	}
	if idx > 0 && isLetter(lower[idx-1]) {
		return false
	}
	end := idx + len(word)
	if end < len(lower) && isLetter(lower[end]) {
		// "bureaus" still counts as a bureau mention
		return lower[end] == 's'
	}
	return true
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
