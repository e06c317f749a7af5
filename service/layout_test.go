package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructPageOrdersRowsTopFirst(t *testing.T) {
	fragments := []Fragment{
		{Text: "Balance: $500.00", X: 72, Y: 680, W: 90},
		{Text: "CHASE BANK", X: 72, Y: 720, W: 80},
		{Text: "Account Number: XXXX5678", X: 72, Y: 700, W: 150},
	}

	lines := ReconstructPage(fragments, 612)

	require.Equal(t, []string{
		"CHASE BANK",
		"Account Number: XXXX5678",
		"Balance: $500.00",
	}, lines)
}

func TestReconstructPageGroupsJitteredRow(t *testing.T) {
	fragments := []Fragment{
		{Text: "Account", X: 72, Y: 700.0, W: 45},
		{Text: "Number:", X: 126, Y: 701.8, W: 45}, // baseline jitter within tolerance
		{Text: "XXXX5678", X: 180, Y: 699.5, W: 55},
	}

	lines := ReconstructPage(fragments, 612)

	require.Len(t, lines, 1)
	assert.Equal(t, "Account Number: XXXX5678", lines[0])
}

func TestReconstructPageSplitsColumns(t *testing.T) {
	// Two report columns on one visual row; page width 612 puts the column
	// threshold at 97.92.
	fragments := []Fragment{
		{Text: "Balance: $480.00", X: 72, Y: 700, W: 90},
		{Text: "Credit Limit: $1,000.00", X: 340, Y: 700, W: 120},
	}

	lines := ReconstructPage(fragments, 612)

	require.Equal(t, []string{
		"Balance: $480.00",
		"Credit Limit: $1,000.00",
	}, lines)
}

func TestReconstructPageJoinsTouchingFragments(t *testing.T) {
	// Kerned glyph runs a few units apart belong to one word.
	fragments := []Fragment{
		{Text: "Bal", X: 72, Y: 700, W: 18},
		{Text: "ance:", X: 91, Y: 700, W: 28},
		{Text: "$2,345.67", X: 132, Y: 700, W: 52},
	}

	lines := ReconstructPage(fragments, 612)

	require.Len(t, lines, 1)
	assert.Equal(t, "Balance: $2,345.67", lines[0])
}

func TestReconstructPageEmptyAndDefaults(t *testing.T) {
	assert.Nil(t, ReconstructPage(nil, 612))

	// Zero width falls back to the standard letter width rather than turning
	// every gap into a column break.
	fragments := []Fragment{
		{Text: "Account", X: 72, Y: 700, W: 45},
		{Text: "Status:", X: 130, Y: 700, W: 40},
	}
	lines := ReconstructPage(fragments, 0)
	require.Len(t, lines, 1)
	assert.Equal(t, "Account Status:", lines[0])
}

func TestEscalateIfSparsePrefersLongerOcr(t *testing.T) {
	native := "CHASE 123"
	ocr := strings.Repeat("Account Number: XXXX5678 Balance $500 ", 10)

	got := EscalateIfSparse(native, 40, func() (string, error) {
		return ocr, nil
	})

	assert.Equal(t, ocr, got)
}

func TestEscalateIfSparseKeepsNativeWhenLongEnough(t *testing.T) {
	native := strings.Repeat("Account Number: XXXX5678\n", 5)

	got := EscalateIfSparse(native, 40, func() (string, error) {
		t.Fatal("recognize must not run when native text suffices")
		return "", nil
	})

	assert.Equal(t, native, got)
}

func TestEscalateIfSparseKeepsNativeOnOcrError(t *testing.T) {
	got := EscalateIfSparse("short", 40, func() (string, error) {
		return "", errors.New("tesseract not available")
	})

	assert.Equal(t, "short", got)
}

func TestEscalateIfSparseKeepsNativeWhenOcrNoBetter(t *testing.T) {
	got := EscalateIfSparse("short text", 40, func() (string, error) {
		return "tiny", nil
	})

	assert.Equal(t, "short text", got)
}
