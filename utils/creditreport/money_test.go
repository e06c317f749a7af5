package creditreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	cases := map[string]float64{
		"$1,234.50": 1234.50,
		"1234.50":   1234.50,
		"1,234.5":   1234.50,
		"$480.00":   480.00,
		"$ 2,345":   2345.00,
	}
	for input, want := range cases {
		got, ok := ParseMoney(input)
		assert.True(t, ok, "should parse %q", input)
		assert.Equal(t, want, got, "value for %q", input)
	}

	_, ok := ParseMoney("no money here")
	assert.False(t, ok)
}

func TestMoneyValues(t *testing.T) {
	values := MoneyValues("$480.00 $1,000.00")
	assert.Equal(t, []float64{480.00, 1000.00}, values)

	assert.Empty(t, MoneyValues("Account Number: 123456789"))
	assert.Empty(t, MoneyValues("opened 01/12/2023"))
}

func TestHasMoneyIgnoresBareIntegers(t *testing.T) {
	assert.False(t, HasMoney("Account Number: 517805000012"))
	assert.True(t, HasMoney("Balance: $2,345.67"))
	assert.True(t, HasMoney("1,234"))
}

func TestIsDollarLine(t *testing.T) {
	assert.True(t, IsDollarLine("$1,250.00"))
	assert.True(t, IsDollarLine("$480.00 $1,000.00"))
	assert.False(t, IsDollarLine("CHASE BANK"))
	assert.False(t, IsDollarLine("Monthly payment of $45.00 was received on time"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1234.57, Round2(1234.5678))
	assert.Equal(t, 0.0, Round2(0))
}
