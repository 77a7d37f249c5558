package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/4ugusta/chaibooks-backend/internal/billing"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "Zero Rupees Only"},
		{"1", "One Rupees Only"},
		{"19", "Nineteen Rupees Only"},
		{"20", "Twenty Rupees Only"},
		{"45", "Forty Five Rupees Only"},
		{"100", "One Hundred Rupees Only"},
		{"118", "One Hundred and Eighteen Rupees Only"},
		{"1180", "One Thousand One Hundred and Eighty Rupees Only"},
		{"1050", "One Thousand and Fifty Rupees Only"},
		{"100000", "One Lakh Rupees Only"},
		{"913183", "Nine Lakh Thirteen Thousand One Hundred and Eighty Three Rupees Only"},
		{"10000000", "One Crore Rupees Only"},
		{"12345678", "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred and Seventy Eight Rupees Only"},
		{"999999999", "Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred and Ninety Nine Rupees Only"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, billing.AmountInWords(dec(tc.amount)), "amount %s", tc.amount)
	}
}

// Amounts at and past a hundred crore stack the crore multiplier instead
// of overflowing the tens table.
func TestAmountInWords_BeyondCrore(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"1000000000", "One Hundred Crore Rupees Only"},
		{"9999999999", "Nine Hundred and Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred and Ninety Nine Rupees Only"},
		{"10000000000", "One Thousand Crore Rupees Only"},
		{"12345678901.25", "One Thousand Two Hundred and Thirty Four Crore Fifty Six Lakh Seventy Eight Thousand Nine Hundred and One Rupees and Twenty Five Paise Only"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, billing.AmountInWords(dec(tc.amount)), "amount %s", tc.amount)
	}
}

func TestAmountInWords_Paise(t *testing.T) {
	assert.Equal(t, "One Thousand One Hundred and Eighty Rupees and Fifty Paise Only",
		billing.AmountInWords(dec("1180.50")))
	assert.Equal(t, "Zero Rupees and One Paise Only",
		billing.AmountInWords(dec("0.01")))
	assert.Equal(t, "Ten Rupees and Ninety Nine Paise Only",
		billing.AmountInWords(dec("10.99")))
}

func TestAmountInWords_RoundsInput(t *testing.T) {
	// Sub-paisa precision is rounded before conversion, matching the
	// grand total the invoice actually shows.
	assert.Equal(t, "Ten Rupees Only", billing.AmountInWords(dec("9.995")))
	assert.Equal(t, "Nine Rupees and Ninety Nine Paise Only", billing.AmountInWords(dec("9.994")))
}

func TestAmountInWords_Deterministic(t *testing.T) {
	first := billing.AmountInWords(dec("4521.75"))
	second := billing.AmountInWords(dec("4521.75"))
	assert.Equal(t, first, second)
}
