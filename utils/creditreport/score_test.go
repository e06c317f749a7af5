package creditreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCreditScoreBureauBlock(t *testing.T) {
	lines := []string{
		"Prepared for John Doe",
		"Bureau",
		"300 500 660 850",
		"712",
		"VantageScore 3.0",
		"Account summary",
	}

	score := ExtractCreditScore(lines)

	require.NotNil(t, score)
	assert.Equal(t, 712, *score, "legend values must not win over the real score")
}

func TestExtractCreditScoreBureauBlockMultipleScores(t *testing.T) {
	lines := []string{
		"Bureau",
		"Equifax 688 TransUnion 695 Experian 702",
		"Report date: 01/15/2024",
	}

	score := ExtractCreditScore(lines)

	require.NotNil(t, score)
	assert.Equal(t, 702, *score)
}

func TestExtractCreditScoreLineScan(t *testing.T) {
	lines := []string{
		"Some heading",
		"Your FICO credit score",
		"745",
		"Other content",
	}

	score := ExtractCreditScore(lines)

	require.NotNil(t, score)
	assert.Equal(t, 745, *score)
}

func TestExtractCreditScoreIgnoresMoneyLines(t *testing.T) {
	lines := []string{
		"credit score summary",
		"total balance $650.00 across accounts",
		"no digits here",
	}

	assert.Nil(t, ExtractCreditScore(lines))
}

func TestExtractCreditScoreOutOfRange(t *testing.T) {
	lines := []string{
		"credit score",
		"251 and 900 and 1000",
	}

	assert.Nil(t, ExtractCreditScore(lines))
}

func TestExtractCreditScoreNothing(t *testing.T) {
	assert.Nil(t, ExtractCreditScore(nil))
	assert.Nil(t, ExtractCreditScore([]string{"no numbers at all"}))
}
