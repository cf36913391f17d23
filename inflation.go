package indexa

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrDuplicateRecord is reported when appending a CPI record for a period
// that already exists. Inflation history is append-only and auditable, unlike
// exchange quotes which are correctable in place.
var ErrDuplicateRecord = errors.New("duplicate record for period")

// CPIRecord is the monthly percentage change of the consumer price index.
// Period is the first day of the month.
type CPIRecord struct {
	Period  Date            `json:"period"`
	Monthly decimal.Decimal `json:"monthly"` // percentage, e.g. 4.2 for +4.2%
}

// CPISource is the persistence collaborator for inflation records.
type CPISource interface {
	// Records returns all records, ascending by period.
	Records() ([]CPIRecord, error)
	// Append adds a record; it fails with ErrDuplicateRecord if the period exists.
	Append(rec CPIRecord) error
}

// IndexCurve is a cumulative inflation index, one point per month, built by
// compounding successive monthly percentage changes over an implicit 1.0
// pre-history baseline. Each point is the index as of the end of its period.
type IndexCurve struct {
	points map[Date]decimal.Decimal
	last   Date
}

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// BuildIndexCurve compounds the given records, which must be ascending by
// period, into an index curve. The curve is only meaningful for a contiguous
// input: a missing month simply has no point, which Adjust treats as "no
// adjustment available", not as an error.
func BuildIndexCurve(records []CPIRecord) IndexCurve {
	curve := IndexCurve{points: make(map[Date]decimal.Decimal, len(records))}
	index := one
	for _, rec := range records {
		index = index.Mul(one.Add(rec.Monthly.Div(hundred)))
		period := rec.Period.MonthStart()
		curve.points[period] = index
		if period.After(curve.last) {
			curve.last = period
		}
	}
	return curve
}

// Len returns the number of points in the curve.
func (c IndexCurve) Len() int { return len(c.points) }

// At returns the cumulative index as of the end of the month containing day.
func (c IndexCurve) At(day Date) (decimal.Decimal, bool) {
	idx, ok := c.points[day.MonthStart()]
	return idx, ok
}

// Last returns the most recent period of the curve and its index.
func (c IndexCurve) Last() (Date, decimal.Decimal) {
	return c.last, c.points[c.last]
}

// Adjust rebases a historical amount to present-value terms: the value is
// scaled by the ratio between the latest index and the index of the amount's
// period. An amount from a period the curve does not cover is returned
// unchanged, best effort; Adjust never fails.
func (c IndexCurve) Adjust(m Money, period Date) Money {
	if len(c.points) == 0 {
		return m
	}
	from, ok := c.At(period)
	if !ok || from.IsZero() {
		return m
	}
	target := c.points[c.last]
	return m.Mul(target.Div(from))
}
