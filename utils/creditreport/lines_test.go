package creditreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLinesSplitsGluedLabels(t *testing.T) {
	raw := "CHASE BANK Account Number: XXXX5678 Account Status: Open"

	lines := NormalizeLines(raw)

	assert.Equal(t, []string{
		"CHASE BANK",
		"Account Number: XXXX5678",
		"Account Status: Open",
	}, lines)
}

func TestNormalizeLinesKeepsBalanceQualifiers(t *testing.T) {
	raw := "summary Highest Balance: $900.00 more Current Balance: $480.00"

	lines := NormalizeLines(raw)

	assert.Contains(t, lines, "Highest Balance: $900.00 more")
	assert.Contains(t, lines, "Current Balance: $480.00")
}

func TestNormalizeLinesCollapsesWhitespace(t *testing.T) {
	raw := "a    b\r\n\n\n\n\nc\td"

	lines := NormalizeLines(raw)

	assert.Equal(t, []string{"a b", "c d"}, lines)
}

func TestNormalizeLinesDropsPageBreaks(t *testing.T) {
	raw := "page one" + PageBreak + "page two"

	lines := NormalizeLines(raw)

	assert.Equal(t, []string{"page one", "page two"}, lines)
}

func TestNormalizeLinesEmpty(t *testing.T) {
	assert.Nil(t, NormalizeLines(""))
	assert.Nil(t, NormalizeLines("   \n\n  "))
}
