package settlement

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, 10)
	if len(s.Lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(s.Lines))
	}
	if !s.GrossTotal.IsZero() || !s.CommissionAmount.IsZero() || !s.NetAmount.IsZero() {
		t.Fatalf("expected all-zero totals, got gross=%s commission=%s net=%s",
			s.GrossTotal, s.CommissionAmount, s.NetAmount)
	}
	if s.GrossDisplay != "$0.00" {
		t.Fatalf("expected $0.00 gross display, got %q", s.GrossDisplay)
	}
}

func TestComputeWorkedExample(t *testing.T) {
	loads := []models.Load{
		{ID: 1, LoadNumber: "L-100", Origin: "Chicago, IL", Destination: "Dallas, TX", Amount: "1000", Miles: "500"},
		{ID: 2, LoadNumber: "L-101", Origin: "Denver, CO", Destination: "Phoenix, AZ", Amount: "250", Miles: "0"},
	}
	s := Compute(loads, 10)

	if len(s.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(s.Lines))
	}
	if s.Lines[0].RatePerMile != "2.00" {
		t.Errorf("expected rate 2.00, got %q", s.Lines[0].RatePerMile)
	}
	if s.Lines[1].RatePerMile != RateNotApplicable {
		t.Errorf("expected %q for zero miles, got %q", RateNotApplicable, s.Lines[1].RatePerMile)
	}
	if s.Lines[1].Miles != "-" {
		t.Errorf("expected dash for zero miles, got %q", s.Lines[1].Miles)
	}

	if !s.GrossTotal.Equal(decimal.NewFromInt(1250)) {
		t.Errorf("expected gross 1250, got %s", s.GrossTotal)
	}
	if !s.CommissionAmount.Equal(decimal.NewFromInt(125)) {
		t.Errorf("expected commission 125, got %s", s.CommissionAmount)
	}
	if !s.NetAmount.Equal(decimal.NewFromInt(1125)) {
		t.Errorf("expected net 1125, got %s", s.NetAmount)
	}
	if s.GrossDisplay != "$1,250.00" || s.CommissionDisplay != "$125.00" || s.NetDisplay != "$1,125.00" {
		t.Errorf("display totals wrong: %q %q %q", s.GrossDisplay, s.CommissionDisplay, s.NetDisplay)
	}
}

func TestComputeZeroPercent(t *testing.T) {
	loads := []models.Load{{ID: 1, Amount: "400", Miles: "200"}}
	s := Compute(loads, 0)
	if !s.CommissionAmount.IsZero() {
		t.Fatalf("expected zero commission, got %s", s.CommissionAmount)
	}
	if !s.NetAmount.Equal(s.GrossTotal) {
		t.Fatalf("expected net == gross, got net=%s gross=%s", s.NetAmount, s.GrossTotal)
	}
}

func TestComputeGarbageAmounts(t *testing.T) {
	loads := []models.Load{
		{ID: 1, Amount: "abc", Miles: "xyz"},
		{ID: 2, Amount: "500", Miles: "250"},
	}
	s := Compute(loads, 20)
	if !s.GrossTotal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("garbage amount should count as zero, gross=%s", s.GrossTotal)
	}
	if s.Lines[0].RatePerMile != RateNotApplicable {
		t.Fatalf("garbage miles should yield %q, got %q", RateNotApplicable, s.Lines[0].RatePerMile)
	}
}

func TestComputeDeselectionShiftsTotals(t *testing.T) {
	all := []models.Load{
		{ID: 1, Amount: "1000", Miles: "500"},
		{ID: 2, Amount: "250", Miles: "100"},
	}
	full := Compute(all, 10)
	partial := Compute(all[:1], 10)

	diff := full.GrossTotal.Sub(partial.GrossTotal)
	if !diff.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected gross to drop by exactly 250, dropped %s", diff)
	}
}

func TestLane(t *testing.T) {
	cases := []struct {
		from, to, want string
	}{
		{"Chicago, IL", "Dallas, TX", "Chicago, IL to Dallas, TX"},
		{"", "", "- to -"},
		{"one two three four five six seven", "Dallas", "one two three four five six to Dallas"},
	}
	for _, c := range cases {
		if got := lane(c.from, c.to); got != c.want {
			t.Errorf("lane(%q, %q) = %q, want %q", c.from, c.to, got, c.want)
		}
	}
}

func TestParsePercent(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12", 12},
		{" 7.5 ", 7.5},
		{"", 0},
		{"ten", 0},
	}
	for _, c := range cases {
		if got := ParsePercent(c.in); got != c.want {
			t.Errorf("ParsePercent(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1250", "$1,250.00"},
		{"1234567.891", "$1,234,567.89"},
		{"-42.5", "-$42.50"},
		{"999.999", "$1,000.00"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.in)
		if err != nil {
			t.Fatalf("bad test input %q: %v", c.in, err)
		}
		if got := FormatUSD(d); got != c.want {
			t.Errorf("FormatUSD(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}
