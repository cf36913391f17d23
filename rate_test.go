package indexa

import (
	"testing"
	"time"
)

func TestResolverRate_ClosestBefore(t *testing.T) {
	store := quoted(usdQuote(NewDate(2024, time.January, 10), 850))
	resolver := NewResolver(store, nil)

	rate, res, err := resolver.Rate(NewDate(2024, time.January, 15), USD)
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if !rate.Equal(dec(850)) {
		t.Errorf("Rate() = %s, want 850", rate)
	}
	if res != ResolvedPrior {
		t.Errorf("Resolution = %s, want prior", res)
	}
}

func TestResolverRate_ExactDay(t *testing.T) {
	on := NewDate(2024, time.January, 10)
	resolver := NewResolver(quoted(usdQuote(on, 850)), nil)

	rate, res, err := resolver.Rate(on, USD)
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if !rate.Equal(dec(850)) || res != ResolvedExact {
		t.Errorf("Rate() = %s %s, want 850 exact", rate, res)
	}
}

func TestResolverRate_LatestOverallFallback(t *testing.T) {
	// a request before any known quote falls back to the latest overall
	// quote, even though it is dated after the request. Deliberate
	// best-available-market-data policy, not a lookup bug.
	resolver := NewResolver(quoted(usdQuote(NewDate(2024, time.June, 1), 900)), nil)

	rate, res, err := resolver.Rate(NewDate(2023, time.January, 1), USD)
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if !rate.Equal(dec(900)) {
		t.Errorf("Rate() = %s, want the 2024 quote (900), not the neutral 1", rate)
	}
	if res != ResolvedLatest {
		t.Errorf("Resolution = %s, want latest", res)
	}
}

func TestResolverRate_NoQuotesNeutral(t *testing.T) {
	resolver := NewResolver(NewMemoryStore(), nil)

	rate, res, err := resolver.Rate(NewDate(2024, time.January, 1), USD)
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if !rate.Equal(dec(1)) || res != ResolvedNone {
		t.Errorf("Rate() = %s %s, want neutral 1 none", rate, res)
	}
}

func TestHistoricalRate_NeverLooksForward(t *testing.T) {
	day := NewDate(2024, time.March, 10)
	store := quoted(
		usdQuote(day.Add(-2), 800),
		usdQuote(day.Add(1), 999), // closer, but in the future
	)
	resolver := NewResolver(store, nil)

	rate, ok, err := resolver.HistoricalRate(day, USD, 2)
	if err != nil {
		t.Fatalf("HistoricalRate() error = %v", err)
	}
	if !ok {
		t.Fatalf("HistoricalRate() not found, want the D-2 quote")
	}
	if !rate.Equal(dec(800)) {
		t.Errorf("HistoricalRate() = %s, want 800 (the D-2 quote, never D+1)", rate)
	}
}

func TestHistoricalRate_BudgetExhausted(t *testing.T) {
	day := NewDate(2024, time.March, 10)
	resolver := NewResolver(quoted(usdQuote(day.Add(-5), 800)), nil)

	if _, ok, _ := resolver.HistoricalRate(day, USD, 3); ok {
		t.Errorf("HistoricalRate() found a quote beyond the lookback budget")
	}
	if rate, ok, _ := resolver.HistoricalRate(day, USD, 5); !ok || !rate.Equal(dec(800)) {
		t.Errorf("HistoricalRate() with budget 5 = %s %v, want 800", rate, ok)
	}
}

func TestHistoricalRate_MemoizesVisitedDays(t *testing.T) {
	// resolving a Sunday from a Friday quote caches the value under the
	// Sunday and the Saturday, permanently.
	friday := NewDate(2024, time.March, 8)
	sunday := friday.Add(2)
	store := quoted(usdQuote(friday, 820))
	cache := NewRateCache(0)
	resolver := NewResolver(store, cache)

	if _, ok, _ := resolver.HistoricalRate(sunday, USD, DefaultLookback); !ok {
		t.Fatalf("HistoricalRate() not found")
	}
	if cache.Len() != 3 {
		t.Errorf("cache holds %d entries, want 3 (sunday, saturday, friday)", cache.Len())
	}

	// even after the quote is overwritten, the memoized value sticks
	if err := store.Upsert(usdQuote(friday, 999)); err != nil {
		t.Fatal(err)
	}
	rate, ok, _ := resolver.HistoricalRate(sunday, USD, DefaultLookback)
	if !ok || !rate.Equal(dec(820)) {
		t.Errorf("HistoricalRate() after overwrite = %s, want cached 820", rate)
	}
}

func TestRateCacheTTL(t *testing.T) {
	cache := NewRateCache(time.Hour)
	now := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	k := rateKey{on: NewDate(2025, time.March, 8), currency: USD}
	cache.put(k, dec(800))

	if _, ok := cache.get(k); !ok {
		t.Fatalf("fresh entry not found")
	}

	now = now.Add(2 * time.Hour)
	if _, ok := cache.get(k); ok {
		t.Errorf("expired entry still served")
	}
}
