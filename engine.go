package indexa

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Engine wires the resolver, converter, analyzer and projector over the four
// persistence collaborators. It is the single entry point the reporting
// layer talks to.
//
// Every operation is a synchronous, stateless request/response computation;
// the only mutable shared state is the resolver's rate cache, which is
// mutex-guarded.
type Engine struct {
	quotes    QuoteSource
	cpi       CPISource
	resolver  *Resolver
	converter *Converter
	analyzer  *Analyzer
	projector *Projector
}

// NewEngine assembles an Engine over the given collaborators, with a fresh
// never-expiring rate cache.
func NewEngine(quotes QuoteSource, cpi CPISource, amounts AmountSource, obligations ObligationSource) *Engine {
	resolver := NewResolver(quotes, NewRateCache(0))
	converter := NewConverter(resolver)
	return &Engine{
		quotes:    quotes,
		cpi:       cpi,
		resolver:  resolver,
		converter: converter,
		analyzer:  NewAnalyzer(amounts, cpi),
		projector: NewProjector(obligations, converter),
	}
}

// Resolver returns the engine's rate resolver.
func (e *Engine) Resolver() *Resolver { return e.resolver }

// ResolveRate returns the best available sell rate for the day, with the
// resolution tag telling exact market data from fallbacks.
func (e *Engine) ResolveRate(on Date, currency string) (decimal.Decimal, Resolution, error) {
	return e.resolver.Rate(on, currency)
}

// Convert converts an amount between ARS and USD at the given day's rate.
func (e *Engine) Convert(m Money, to string, on Date) (Money, error) {
	return e.converter.Convert(m, to, on)
}

// Analyze buckets the expense series in range and derives its statistics.
func (e *Engine) Analyze(r Range, granularity Period, adjustInflation bool) (*Analysis, error) {
	return e.analyzer.Analyze(r, granularity, adjustInflation)
}

// Project simulates the coming months of obligations under a flat scenario.
func (e *Engine) Project(start Date, months int, monthlyInflation, futureFX decimal.Decimal) (*Budget, error) {
	if months < 0 {
		return nil, fmt.Errorf("invalid projection horizon %d: must be zero or more months", months)
	}
	return e.projector.Project(start, months, monthlyInflation, futureFX)
}

// UpsertQuote records or corrects the sell rate for a day. Unlike inflation
// history, quotes overwrite silently: market data is correctable.
func (e *Engine) UpsertQuote(on Date, currency string, sell decimal.Decimal) error {
	if on.IsZero() {
		return fmt.Errorf("invalid quote: date is required")
	}
	if currency == "" {
		return fmt.Errorf("invalid quote: currency is required")
	}
	if !sell.IsPositive() {
		return fmt.Errorf("invalid quote: sell rate %s must be positive", sell)
	}
	return e.quotes.Upsert(Quote{Date: on, Currency: currency, Sell: sell})
}

// AppendCPI appends one monthly inflation record. The period is normalized
// to the first of its month; appending an existing period fails with
// ErrDuplicateRecord, inflation history is append-only.
func (e *Engine) AppendCPI(period Date, monthly decimal.Decimal) error {
	if period.IsZero() {
		return fmt.Errorf("invalid inflation record: period is required")
	}
	return e.cpi.Append(CPIRecord{Period: period.MonthStart(), Monthly: monthly})
}

// BuildCurve rebuilds the cumulative index curve from all known records.
func (e *Engine) BuildCurve() (IndexCurve, error) {
	records, err := e.cpi.Records()
	if err != nil {
		return IndexCurve{}, err
	}
	return BuildIndexCurve(records), nil
}
