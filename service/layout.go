package service

import (
	"log"
	"regexp"
	"sort"
	"strings"
)

// Layout reconstruction turns a page's positioned text fragments into
// ordered, column-aware lines. PDF y increases bottom to top, so top rows
// have the larger y.

const (
	// Fragments within this y distance sit on one visual row.
	rowTolerance = 2.5

	// A horizontal gap wider than this fraction of the page width separates
	// columns; column text must never be concatenated across it.
	columnGapFraction = 0.16

	// Inside a column, a gap wider than this fraction (with a floor in page
	// units) is a word space.
	wordGapFraction = 0.012
	wordGapMin      = 8.0

	defaultPageWidth = 612.0
)

// Fragment is one positioned piece of native PDF text.
type Fragment struct {
	Text string
	X    float64
	Y    float64
	W    float64
}

// ReconstructPage emits one text line per column per row, top row first,
// left column first.
func ReconstructPage(fragments []Fragment, pageWidth float64) []string {
	if len(fragments) == 0 {
		return nil
	}
	if pageWidth <= 0 {
		pageWidth = defaultPageWidth
	}

	rows := groupRows(fragments)

	columnGap := columnGapFraction * pageWidth
	wordGap := wordGapFraction * pageWidth
	if wordGap < wordGapMin {
		wordGap = wordGapMin
	}

	var lines []string
	for _, row := range rows {
		lines = append(lines, splitColumns(row, columnGap, wordGap)...)
	}
	return lines
}

// groupRows buckets fragments into visual rows by y, each row sorted by x,
// rows ordered top first.
func groupRows(fragments []Fragment) [][]Fragment {
	sorted := make([]Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]Fragment
	for _, frag := range sorted {
		if len(rows) > 0 {
			row := rows[len(rows)-1]
			if row[0].Y-frag.Y <= rowTolerance {
				rows[len(rows)-1] = append(row, frag)
				continue
			}
		}
		rows = append(rows, []Fragment{frag})
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
	}
	return rows
}

// splitColumns walks a row left to right, starting a new column at every
// column-sized gap and a word space at every word-sized gap.
func splitColumns(row []Fragment, columnGap, wordGap float64) []string {
	var lines []string
	var b strings.Builder

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			lines = append(lines, s)
		}
		b.Reset()
	}

	prevEnd := 0.0
	for i, frag := range row {
		if i > 0 {
			gap := frag.X - prevEnd
			switch {
			case gap > columnGap:
				flush()
			case gap > wordGap:
				b.WriteByte(' ')
			}
		}
		b.WriteString(frag.Text)
		end := frag.X + frag.W
		if end > prevEnd {
			prevEnd = end
		}
	}
	flush()
	return lines
}

var collapseSpaceRe = regexp.MustCompile(`\s+`)

// EscalateIfSparse decides between a page's native text and an OCR attempt.
// Pages that are scanned images embedded in a text PDF yield almost no native
// text; OCR wins only when it produces strictly more.
func EscalateIfSparse(native string, minLen int, recognize func() (string, error)) string {
	collapsed := collapseSpaceRe.ReplaceAllString(native, " ")
	collapsed = strings.TrimSpace(collapsed)
	if len(collapsed) >= minLen {
		return native
	}

	ocrText, err := recognize()
	if err != nil {
		// Keep whatever lower-quality text the page already had.
		log.Printf("OCR escalation failed, keeping native text: %v", err)
		return native
	}
	if len(strings.TrimSpace(ocrText)) > len(collapsed) {
		return ocrText
	}
	return native
}
