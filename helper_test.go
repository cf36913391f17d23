package indexa

import "github.com/shopspring/decimal"

// ars is a helper for tests to create pesos from const
func ars(v float64) Money { return M(v, ARS) }

// usd is a helper for tests to create dollars from const
func usd(v float64) Money { return M(v, USD) }

// dec is a helper for tests to create decimals from const
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// quoted returns a store preloaded with USD sell quotes.
func quoted(quotes ...Quote) *MemoryStore {
	s := NewMemoryStore()
	for _, q := range quotes {
		if err := s.Upsert(q); err != nil {
			panic(err)
		}
	}
	return s
}

// usdQuote is a helper for tests to create a USD quote from const.
func usdQuote(on Date, sell float64) Quote {
	return Quote{Date: on, Currency: USD, Sell: dec(sell)}
}
