package indexa

import (
	"testing"
	"time"
)

func TestPeriodIdentifier(t *testing.T) {
	d := NewDate(2025, time.March, 8)

	tests := []struct {
		period Period
		want   string
	}{
		{Daily, "2025-03-08"},
		{Weekly, "2025-W10"},
		{Monthly, "2025-03"},
		{Quarterly, "2025-Q1"},
		{Yearly, "2025"},
	}
	for _, tt := range tests {
		if got := tt.period.Identifier(d); got != tt.want {
			t.Errorf("%s.Identifier(%s) = %q, want %q", tt.period, d, got, tt.want)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want Period
	}{
		{"daily", Daily},
		{"Day", Daily},
		{"week", Weekly},
		{"monthly", Monthly},
		{"quarter", Quarterly},
		{"YEARLY", Yearly},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		if err != nil {
			t.Errorf("ParsePeriod(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePeriod(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Errorf("ParsePeriod(\"fortnight\") expected an error")
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(NewDate(2025, time.March, 1), NewDate(2025, time.March, 31))

	if !r.Contains(r.From) || !r.Contains(r.To) {
		t.Errorf("Range boundaries must be included")
	}
	if r.Contains(NewDate(2025, time.February, 28)) {
		t.Errorf("Range must not contain a day before From")
	}
	if r.Contains(NewDate(2025, time.April, 1)) {
		t.Errorf("Range must not contain a day after To")
	}
}

func TestNewRange_SwapsReversedBounds(t *testing.T) {
	from, to := NewDate(2025, time.March, 31), NewDate(2025, time.March, 1)
	r := NewRange(from, to)
	if r.From != to || r.To != from {
		t.Errorf("NewRange(%s, %s) = %v, want swapped bounds", from, to, r)
	}
}

func TestRangeDays(t *testing.T) {
	r := NewRange(NewDate(2025, time.February, 27), NewDate(2025, time.March, 2))
	var count int
	var last Date
	for d := range r.Days() {
		count++
		last = d
	}
	if count != 4 {
		t.Errorf("Days() yielded %d days, want 4", count)
	}
	if last != r.To {
		t.Errorf("Days() last = %s, want %s", last, r.To)
	}
}
