package creditreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindAnchors(t *testing.T) {
	lines := []string{
		"CHASE BANK",
		"Account Number: XXXX5678",
		"Account Status: Open",
		"DISCOVER FINANCIAL",
		"Account # 601100012345",
	}

	anchors := FindAnchors(lines)

	assert.Equal(t, []int{1, 4}, anchors)
}

func TestFindAnchorsRejectsMaskedShadow(t *testing.T) {
	lines := []string{
		"CAPITAL ONE",
		"Account Number: XXXXXXXX",
		"Account Number: 51780500001234",
	}

	anchors := FindAnchors(lines)

	assert.Equal(t, []int{2}, anchors, "the masked summary row shadows the unmasked detail row")
}

func TestFindAnchorsKeepsMaskedWithoutShadow(t *testing.T) {
	lines := []string{
		"CAPITAL ONE",
		"Account Number: XXXX1234",
		"Account Status: Open",
	}

	anchors := FindAnchors(lines)

	assert.Equal(t, []int{1}, anchors)
}

func TestAccountToken(t *testing.T) {
	token, ok := AccountToken("Account Number: XXXX5678")
	assert.True(t, ok)
	assert.Equal(t, "XXXX5678", token)

	token, ok = AccountToken("Account # 1234-5678-9012")
	assert.True(t, ok)
	assert.Equal(t, "1234-5678-9012", token)

	_, ok = AccountToken("Account Number:")
	assert.False(t, ok)

	_, ok = AccountToken("Balance: $500.00")
	assert.False(t, ok)
}
