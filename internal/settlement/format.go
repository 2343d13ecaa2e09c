package settlement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders a decimal as a US dollar display string with a currency
// symbol, thousands separators and exactly two fractional digits, e.g.
// "$1,250.00" or "-$7.50".
func FormatUSD(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(frac)
	return b.String()
}
