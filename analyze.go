package indexa

import (
	"slices"
)

// DatedAmount is one raw expense point: the billed date and the amount paid.
type DatedAmount struct {
	Date   Date
	Amount Money
}

// AmountSource is the persistence collaborator for the raw expense series.
// Implementations already exclude soft-deleted and draft records.
type AmountSource interface {
	Amounts(r Range) ([]DatedAmount, error)
}

// AnalysisPoint is one resampled bucket of the series.
type AnalysisPoint struct {
	Label  string // bucket identifier, e.g. "2025-03" for a monthly bucket
	Start  Date   // first day of the bucket
	Amount Money
}

// HeatmapPoint is one day of the always-daily intensity heatmap.
type HeatmapPoint struct {
	Date      Date
	Amount    Money
	Intensity float64 // bucket amount over the max bucket amount in range
}

// SeasonalityAlert flags a bucket whose amount is well above the mean.
type SeasonalityAlert struct {
	Label    string
	Amount   Money
	OverMean Percent // how far above the mean, in percent
}

// ComparativePoint is the single latest-vs-previous indicator.
// Adverse is set when the latest bucket grew: the series models expenses,
// so the UI should read an increase as bad news.
type ComparativePoint struct {
	Current  AnalysisPoint
	Previous AnalysisPoint
	Delta    Percent
	Adverse  bool
}

// Analysis is the result of one Analyze call. All collections are ephemeral:
// they are computed fresh per call and never persisted.
type Analysis struct {
	Range       Range
	Granularity Period
	Adjusted    bool // amounts rebased to present value through the CPI curve
	Total       Money
	Series      []AnalysisPoint
	Heatmap     []HeatmapPoint
	Seasonality []SeasonalityAlert
	Comparative *ComparativePoint
}

// Analyzer buckets an expense series by granularity and derives heatmap,
// seasonality and comparative statistics from it.
type Analyzer struct {
	amounts AmountSource
	cpi     CPISource
}

// NewAnalyzer creates an Analyzer over the given collaborators.
func NewAnalyzer(amounts AmountSource, cpi CPISource) *Analyzer {
	return &Analyzer{amounts: amounts, cpi: cpi}
}

// seasonalityFactor is the threshold over the mean bucket amount above which
// a bucket is flagged. Strictly above: a bucket at exactly 1.5x is not flagged.
const seasonalityFactor = 1.5

// Analyze fetches the raw series in range, optionally rebases every point to
// present value, resamples it into granularity buckets, and computes the
// derived statistics. An empty range yields an explicitly empty result with a
// zero total, never an error; only an unreachable source fails.
func (a *Analyzer) Analyze(r Range, granularity Period, adjustInflation bool) (*Analysis, error) {
	result := &Analysis{
		Range:       r,
		Granularity: granularity,
		Adjusted:    adjustInflation,
		Total:       M(0, ARS),
		Series:      []AnalysisPoint{},
		Heatmap:     []HeatmapPoint{},
		Seasonality: []SeasonalityAlert{},
	}

	points, err := a.amounts.Amounts(r)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return result, nil
	}

	if adjustInflation {
		records, err := a.cpi.Records()
		if err != nil {
			return nil, err
		}
		curve := BuildIndexCurve(records)
		adjusted := make([]DatedAmount, len(points))
		for i, p := range points {
			adjusted[i] = DatedAmount{Date: p.Date, Amount: curve.Adjust(p.Amount, p.Date)}
		}
		points = adjusted
	}

	result.Series = resample(points, granularity)
	for _, p := range result.Series {
		result.Total = result.Total.Add(p.Amount)
	}

	result.Heatmap = heatmap(points)
	result.Seasonality = seasonality(result.Series)
	result.Comparative = comparative(result.Series)

	return result, nil
}

// resample sums the points into buckets of the requested granularity and
// returns the buckets in chronological order. Only buckets with a strictly
// positive sum are emitted: the series is sparse by design, gaps are not
// filled with zeroes.
func resample(points []DatedAmount, granularity Period) []AnalysisPoint {
	sums := make(map[Date]Money)
	for _, p := range points {
		start := p.Date.StartOf(granularity)
		sums[start] = sums[start].Add(p.Amount)
	}

	starts := make([]Date, 0, len(sums))
	for start := range sums {
		starts = append(starts, start)
	}
	slices.SortFunc(starts, func(a, b Date) int {
		if a.Before(b) {
			return -1
		}
		if a.After(b) {
			return 1
		}
		return 0
	})

	series := make([]AnalysisPoint, 0, len(starts))
	for _, start := range starts {
		sum := sums[start]
		if !sum.IsPositive() {
			continue
		}
		series = append(series, AnalysisPoint{
			Label:  granularity.Identifier(start),
			Start:  start,
			Amount: sum,
		})
	}
	return series
}

// heatmap computes the daily intensity map. It is always daily, whatever
// granularity the series was resampled to.
func heatmap(points []DatedAmount) []HeatmapPoint {
	daily := resample(points, Daily)
	if len(daily) == 0 {
		return []HeatmapPoint{}
	}

	max := daily[0].Amount
	for _, p := range daily[1:] {
		if p.Amount.GreaterThan(max) {
			max = p.Amount
		}
	}

	heat := make([]HeatmapPoint, 0, len(daily))
	for _, p := range daily {
		heat = append(heat, HeatmapPoint{
			Date:      p.Start,
			Amount:    p.Amount,
			Intensity: p.Amount.InexactFloat64() / max.InexactFloat64(),
		})
	}
	return heat
}

// seasonality flags buckets strictly above seasonalityFactor times the mean
// bucket amount. A zero mean suppresses all flags.
func seasonality(series []AnalysisPoint) []SeasonalityAlert {
	alerts := []SeasonalityAlert{}
	if len(series) == 0 {
		return alerts
	}

	var total Money
	for _, p := range series {
		total = total.Add(p.Amount)
	}
	mean := total.InexactFloat64() / float64(len(series))
	if mean == 0 {
		return alerts
	}

	for _, p := range series {
		amount := p.Amount.InexactFloat64()
		if amount > seasonalityFactor*mean {
			alerts = append(alerts, SeasonalityAlert{
				Label:    p.Label,
				Amount:   p.Amount,
				OverMean: Percent((amount/mean - 1) * 100),
			})
		}
	}
	return alerts
}

// comparative derives the latest-vs-previous indicator, comparing the last
// two buckets only. With fewer than two buckets there is nothing to compare.
func comparative(series []AnalysisPoint) *ComparativePoint {
	if len(series) < 2 {
		return nil
	}
	current := series[len(series)-1]
	previous := series[len(series)-2]

	delta := Percent(current.Amount.Sub(previous.Amount).InexactFloat64() / previous.Amount.InexactFloat64() * 100)
	return &ComparativePoint{
		Current:  current,
		Previous: previous,
		Delta:    delta,
		Adverse:  delta > 0,
	}
}
