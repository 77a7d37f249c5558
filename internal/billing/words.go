package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountInWords renders a monetary amount as Indian English words with
// lakh/crore grouping, the form printed on the invoice footer.
// 1180.00 → "One Thousand One Hundred and Eighty Rupees Only",
// 1180.50 → "One Thousand One Hundred and Eighty Rupees and Fifty Paise Only".
func AmountInWords(amount decimal.Decimal) string {
	amount = round2(amount)
	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Mul(oneHundred).IntPart()

	var b strings.Builder
	if rupees == 0 {
		b.WriteString("Zero Rupees")
	} else {
		b.WriteString(indianWords(rupees))
		b.WriteString(" Rupees")
	}
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(underHundred(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// indianWords spells n using the Indian numbering system: crores, lakhs,
// thousands, hundreds. The crore multiplier recurses, so amounts past a
// hundred crore render as "One Hundred Crore", "One Thousand Crore" and
// so on for the full int64 range.
func indianWords(n int64) string {
	var parts []string

	if n >= 10000000 {
		parts = append(parts, indianWords(n/10000000)+" Crore")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, underHundred(n/100000)+" Lakh")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, underHundred(n/1000)+" Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+underHundred(n))
		} else {
			parts = append(parts, underHundred(n))
		}
	}

	return strings.Join(parts, " ")
}

func underHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}
