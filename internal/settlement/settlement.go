// Package settlement computes driver payout settlements from delivered
// loads. All arithmetic is exact decimal math; numeric coercions are
// permissive by contract (garbage in a money field is a zero-valued line
// item, never an error).
package settlement

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

// RateNotApplicable is the rate-per-mile marker for loads with no usable
// mileage, where the division is undefined.
const RateNotApplicable = "n/a"

// Line is one load on the settlement, carrying everything the document
// renderer prints for that row. RatePerMile is display-ready ("2.00" or
// "n/a"); Amount keeps full precision with a formatted twin beside it.
type Line struct {
	LoadID        int64           `json:"load_id"`
	LoadNumber    string          `json:"load_number"`
	Date          string          `json:"date"`
	Lane          string          `json:"lane"`
	Miles         string          `json:"miles"`
	RatePerMile   string          `json:"rate_per_mile"`
	Amount        decimal.Decimal `json:"amount"`
	AmountDisplay string          `json:"amount_display"`
}

// Settlement is the computed payout summary for one driver over the included
// loads. Totals retain full precision; the *_display fields are the exact
// strings the renderer shows, so it never re-derives arithmetic.
type Settlement struct {
	CommissionPercent float64         `json:"commission_percent"`
	Lines             []Line          `json:"lines"`
	GrossTotal        decimal.Decimal `json:"gross_total"`
	CommissionAmount  decimal.Decimal `json:"commission_amount"`
	NetAmount         decimal.Decimal `json:"net_amount"`
	GrossDisplay      string          `json:"gross_display"`
	CommissionDisplay string          `json:"commission_display"`
	NetDisplay        string          `json:"net_display"`
}

// Compute builds the settlement over the loads it is given. The caller has
// already restricted the slice to the intended working set (delivered,
// unpaid, one driver, minus any deselected loads); Compute has no opinion on
// statuses. It is pure and total: every numeric parse defaults to zero.
func Compute(loads []models.Load, commissionPercent float64) Settlement {
	lines := make([]Line, 0, len(loads))
	gross := decimal.Zero
	for _, l := range loads {
		amount := parseDecimal(l.Amount)
		miles := parseDecimal(l.Miles)

		rate := RateNotApplicable
		milesOut := "-"
		if miles.IsPositive() {
			rate = amount.Div(miles).Round(2).StringFixed(2)
			milesOut = miles.String()
		}

		gross = gross.Add(amount)
		lines = append(lines, Line{
			LoadID:        l.ID,
			LoadNumber:    l.LoadNumber,
			Date:          formatLineDate(l.CreatedAt),
			Lane:          lane(l.Origin, l.Destination),
			Miles:         milesOut,
			RatePerMile:   rate,
			Amount:        amount,
			AmountDisplay: FormatUSD(amount),
		})
	}

	pct := decimal.NewFromFloat(commissionPercent)
	commission := gross.Mul(pct).Div(decimal.NewFromInt(100))
	net := gross.Sub(commission)

	return Settlement{
		CommissionPercent: commissionPercent,
		Lines:             lines,
		GrossTotal:        gross,
		CommissionAmount:  commission,
		NetAmount:         net,
		GrossDisplay:      FormatUSD(gross),
		CommissionDisplay: FormatUSD(commission),
		NetDisplay:        FormatUSD(net),
	}
}

// ParsePercent coerces a commission percentage field to a number, returning
// 0 for anything unparsable or blank. Range is deliberately not validated.
func ParsePercent(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// lane renders "origin to destination" the way the settlement document
// prints it, truncating each side to its first six words.
func lane(from, to string) string {
	return truncateWords(from, 6) + " to " + truncateWords(to, 6)
}

func truncateWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "-"
	}
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

func formatLineDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
