package indexa

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a historical sell rate for one currency on one day.
// Quotes are unique per (date, currency) and correctable: upserting an
// existing day silently overwrites it.
type Quote struct {
	Date     Date            `json:"date"`
	Currency string          `json:"currency"`
	Sell     decimal.Decimal `json:"sell"`
}

// QuoteSource is the persistence collaborator for exchange quotes.
type QuoteSource interface {
	// QuoteAsOf returns the most recent quote at or before the given day.
	QuoteAsOf(on Date, currency string) (Quote, bool, error)
	// Latest returns the latest known quote for the currency, any date.
	Latest(currency string) (Quote, bool, error)
	// Upsert inserts or overwrites the quote for its (date, currency).
	Upsert(q Quote) error
}

// Resolution tags how a rate was resolved, so callers can tell an exact
// market figure from a best-available fallback.
type Resolution int

const (
	// ResolvedExact means a quote existed for the requested day.
	ResolvedExact Resolution = iota
	// ResolvedPrior means the most recent quote before the requested day was used.
	ResolvedPrior
	// ResolvedLatest means no quote existed at or before the requested day and
	// the latest overall quote was used, even if it is dated after the request.
	ResolvedLatest
	// ResolvedNone means no quote exists at all; the neutral rate 1 was returned.
	ResolvedNone
)

func (r Resolution) String() string {
	switch r {
	case ResolvedExact:
		return "exact"
	case ResolvedPrior:
		return "prior"
	case ResolvedLatest:
		return "latest"
	case ResolvedNone:
		return "none"
	default:
		return "unknown"
	}
}

// DefaultLookback is the backward search budget, in days, used by import and
// backfill paths when none is given.
const DefaultLookback = 7

type rateKey struct {
	on       Date
	currency string
}

type rateEntry struct {
	rate   decimal.Decimal
	stored time.Time
}

// RateCache memoizes resolved historical rates by (date, currency).
// It is owned by, and injected into, a Resolver. A zero TTL keeps entries
// for the cache's lifetime; a positive TTL expires them, which long-running
// processes want to bound staleness.
type RateCache struct {
	mu      sync.Mutex
	entries map[rateKey]rateEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewRateCache returns an empty cache. ttl <= 0 means entries never expire.
func NewRateCache(ttl time.Duration) *RateCache {
	return &RateCache{
		entries: make(map[rateKey]rateEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *RateCache) get(k rateKey) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok {
		return decimal.Decimal{}, false
	}
	if c.ttl > 0 && c.now().Sub(e.stored) > c.ttl {
		delete(c.entries, k)
		return decimal.Decimal{}, false
	}
	return e.rate, true
}

func (c *RateCache) put(k rateKey, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = rateEntry{rate: rate, stored: c.now()}
}

// Len returns the number of cached entries, expired or not.
func (c *RateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Resolver resolves historical sell rates from a QuoteSource.
type Resolver struct {
	quotes QuoteSource
	cache  *RateCache
}

// NewResolver creates a Resolver over the given quote source.
// A nil cache gets replaced by a fresh never-expiring one.
func NewResolver(quotes QuoteSource, cache *RateCache) *Resolver {
	if cache == nil {
		cache = NewRateCache(0)
	}
	return &Resolver{quotes: quotes, cache: cache}
}

// Rate returns the best available sell rate for the given day.
//
// Policy: the most recent quote at or before the day; failing that, the
// latest quote overall even if it is dated after the request (best available
// market data); failing that, the neutral rate 1, which signals "no
// conversion possible" without erroring. Only a failing source is an error.
func (r *Resolver) Rate(on Date, currency string) (decimal.Decimal, Resolution, error) {
	q, ok, err := r.quotes.QuoteAsOf(on, currency)
	if err != nil {
		return decimal.Decimal{}, ResolvedNone, err
	}
	if ok {
		if q.Date == on {
			return q.Sell, ResolvedExact, nil
		}
		return q.Sell, ResolvedPrior, nil
	}
	q, ok, err = r.quotes.Latest(currency)
	if err != nil {
		return decimal.Decimal{}, ResolvedNone, err
	}
	if ok {
		return q.Sell, ResolvedLatest, nil
	}
	return decimal.NewFromInt(1), ResolvedNone, nil
}

// HistoricalRate is the conservative policy used by import and backfill
// paths. It only accepts a quote dated exactly on the requested day or up to
// maxLookback days before it, never after. It reports ok=false once the
// budget is exhausted.
//
// Every successful resolution is memoized under all the days visited on the
// way down, so a Sunday request permanently caches Friday's value for that
// Sunday (and for the Saturday in between).
func (r *Resolver) HistoricalRate(on Date, currency string, maxLookback int) (decimal.Decimal, bool, error) {
	visited := make([]Date, 0, maxLookback+1)
	for step := 0; step <= maxLookback; step++ {
		day := on.Add(-step)
		if rate, ok := r.cache.get(rateKey{on: day, currency: currency}); ok {
			r.memoize(visited, currency, rate)
			return rate, true, nil
		}
		visited = append(visited, day)

		q, ok, err := r.quotes.QuoteAsOf(day, currency)
		if err != nil {
			return decimal.Decimal{}, false, err
		}
		if ok && q.Date == day {
			r.memoize(visited, currency, q.Sell)
			return q.Sell, true, nil
		}
	}
	return decimal.Decimal{}, false, nil
}

func (r *Resolver) memoize(days []Date, currency string, rate decimal.Decimal) {
	for _, day := range days {
		r.cache.put(rateKey{on: day, currency: currency}, rate)
	}
}
