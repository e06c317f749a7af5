package creditreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troghx/ocr-credit-report/dto"
)

func assembleFixture(t *testing.T, lines []string) []dto.Tradeline {
	t.Helper()
	anchors := FindAnchors(lines)
	require.NotEmpty(t, anchors, "fixture must contain at least one anchor")
	return AssembleTradelines(lines, anchors, "report.pdf", dto.PartyApplicant)
}

func TestAssembleSingleTradeline(t *testing.T) {
	lines := []string{
		"CHASE BANK",
		"Account Number: XXXX5678",
		"Balance: $2,345.67",
		"Account Status: Open",
		"Type: Revolving",
		"Responsibility: Individual Account",
		"Months Reviewed: 48",
	}

	tradelines := assembleFixture(t, lines)

	require.Len(t, tradelines, 1)
	tl := tradelines[0]
	assert.Contains(t, tl.CreditorName, "CHASE")
	assert.Equal(t, "XXXX5678", tl.AccountNumber)
	assert.Equal(t, 2345.67, tl.DebtAmount)
	assert.Equal(t, dto.RankExplicit, tl.DebtSourceRank)
	assert.Equal(t, "Open", tl.AccountStatus)
	assert.Equal(t, "Revolving", tl.AccountType)
	assert.Equal(t, "Individual", tl.Responsibility)
	require.NotNil(t, tl.MonthsReviewed)
	assert.Equal(t, 48, *tl.MonthsReviewed)
	assert.True(t, tl.IsIncluded)
	assert.Equal(t, "report.pdf", tl.SourceReport)
	assert.Equal(t, "applicant", tl.DebtorParty)
}

func TestAssembleBalanceTemplateReadsFirstColumn(t *testing.T) {
	lines := []string{
		"CAPITAL ONE",
		"Account Number: 517805XXXXXX",
		"Balance: Credit Limit:",
		"$480.00 $1,000.00",
		"Account Status: Open",
	}

	tradelines := assembleFixture(t, lines)

	require.Len(t, tradelines, 1)
	assert.Equal(t, 480.00, tradelines[0].DebtAmount, "first value is the balance, not the credit limit")
	assert.Equal(t, dto.RankExplicit, tradelines[0].DebtSourceRank)
}

func TestAssembleHighestBalanceTakesMinimum(t *testing.T) {
	lines := []string{
		"AMEX",
		"Account Number: 37XXXXXX1005",
		"Highest Balance:",
		"$900.00 $750.00",
	}

	tradelines := assembleFixture(t, lines)

	require.Len(t, tradelines, 1)
	assert.Equal(t, 750.00, tradelines[0].DebtAmount)
}

func TestAssembleHeaderFallbackBalance(t *testing.T) {
	lines := []string{
		"FIRST PREMIER BANK",
		"$1,250.00",
		"Account Number: 123456789",
		"Account Status: Open",
	}

	tradelines := assembleFixture(t, lines)

	require.Len(t, tradelines, 1)
	assert.Equal(t, 1250.00, tradelines[0].DebtAmount)
	assert.Equal(t, dto.RankHeader, tradelines[0].DebtSourceRank)
}

func TestAssembleHeaderFallbackSkipsNoiseLines(t *testing.T) {
	lines := []string{
		"SYNCHRONY BANK",
		"Credit Limit: $9,999.00",
		"$350.00",
		"Account Number: 603532XX",
	}

	tradelines := assembleFixture(t, lines)

	require.Len(t, tradelines, 1)
	assert.Equal(t, 350.00, tradelines[0].DebtAmount, "credit limit lines never feed the balance")
}

func TestAssemblePastDueFallback(t *testing.T) {
	lines := []string{
		"MIDLAND FUNDING",
		"Account Number: 8675309121",
		"Amount Past Due: $321.45",
	}

	tradelines := assembleFixture(t, lines)

	require.Len(t, tradelines, 1)
	tl := tradelines[0]
	assert.Equal(t, 321.45, tl.DebtAmount)
	assert.Equal(t, dto.RankPastDue, tl.DebtSourceRank)
	assert.Equal(t, 321.45, tl.PastDue)
}

func TestAssembleDropsZeroDebt(t *testing.T) {
	lines := []string{
		"CLOSED CARD CO",
		"Account Number: 4111111111111111",
		"Account Status: Closed",
	}

	anchors := FindAnchors(lines)
	require.NotEmpty(t, anchors)

	tradelines := AssembleTradelines(lines, anchors, "report.pdf", dto.PartyApplicant)

	assert.Empty(t, tradelines)
}

func TestAssembleDropsNamelessAnchor(t *testing.T) {
	lines := []string{
		"Payment history",
		"Account Number: 123456789",
		"Balance: $500.00",
	}

	anchors := FindAnchors(lines)
	require.NotEmpty(t, anchors)

	tradelines := AssembleTradelines(lines, anchors, "report.pdf", dto.PartyApplicant)

	assert.Empty(t, tradelines, "an anchor with no discoverable creditor is skipped, not fabricated")
}

func TestAssembleMonthsReviewedKeepsMinimum(t *testing.T) {
	lines := []string{
		"US BANK",
		"Account Number: 403784XXXX",
		"Balance: $100.00",
		"Months Reviewed: 36",
		"Months Reviewed: 24",
	}

	tradelines := assembleFixture(t, lines)

	require.Len(t, tradelines, 1)
	require.NotNil(t, tradelines[0].MonthsReviewed)
	assert.Equal(t, 24, *tradelines[0].MonthsReviewed)
}

func TestAssembleStopsAtSectionMarker(t *testing.T) {
	lines := []string{
		"ALLY FINANCIAL",
		"Account Number: 912345678",
		"Balance: $5,000.00",
		"Collections",
		"Account Status: Collection",
	}

	tradelines := assembleFixture(t, lines)

	require.Len(t, tradelines, 1)
	assert.Equal(t, "", tradelines[0].AccountStatus,
		"fields past a section marker belong to the next section")
}

func TestAssembleStopsAtTradelineBreak(t *testing.T) {
	lines := []string{
		"ALLY FINANCIAL",
		"Account Number: 912345678",
		"Balance: $5,000.00",
		"$123.00",
		"WELLS FARGO BANK",
		"Account Status: Closed",
	}

	tradelines := assembleFixture(t, lines)

	require.Len(t, tradelines, 1)
	assert.Equal(t, "", tradelines[0].AccountStatus,
		"a dollar line followed by a creditor header ends the window")
}

func TestAssemblePaymentStatusOverridesWeakerAccountStatus(t *testing.T) {
	lines := []string{
		"CREDIT ONE BANK",
		"Account Number: 444400001111",
		"Balance: $750.00",
		"Account Status: Open",
		"Payment Status: Collection",
	}

	tradelines := assembleFixture(t, lines)

	require.Len(t, tradelines, 1)
	assert.Equal(t, "Collection", tradelines[0].AccountStatus)
	assert.Equal(t, "Collection", tradelines[0].CurrentPaymentStatus)
}

func TestAssembleTwoAnchorsBoundEachOther(t *testing.T) {
	lines := []string{
		"CHASE BANK",
		"Account Number: XXXX5678",
		"Balance: $2,345.67",
		"DISCOVER FINANCIAL",
		"Account # 601100012345",
		"Balance: $800.00",
	}

	tradelines := assembleFixture(t, lines)

	require.Len(t, tradelines, 2)
	assert.Equal(t, 2345.67, tradelines[0].DebtAmount)
	assert.Equal(t, 800.00, tradelines[1].DebtAmount)
}
