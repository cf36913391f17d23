package indexa

// Converter converts amounts between the ARS/USD pair using historical
// sell rates.
type Converter struct {
	resolver *Resolver
}

// NewConverter creates a Converter over the given resolver.
func NewConverter(resolver *Resolver) *Converter {
	return &Converter{resolver: resolver}
}

// Convert converts m into the target currency at the rate resolved for the
// given day.
//
// Same-currency conversion returns m untouched, with no rounding. The pair
// is always priced through the USD sell rate, whichever side of it m is on:
// USD to ARS multiplies, ARS to USD divides. A zero resolved rate leaves the
// amount unconverted rather than dividing by zero. Any pair other than
// ARS/USD passes through unchanged: a known two-currency limitation, not to
// be silently extended.
func (c *Converter) Convert(m Money, to string, on Date) (Money, error) {
	if m.Currency() == to {
		return m, nil
	}

	rate, _, err := c.resolver.Rate(on, USD)
	if err != nil {
		return Money{}, err
	}

	switch {
	case m.Currency() == USD && to == ARS:
		return M(m.value.Mul(rate), ARS), nil
	case m.Currency() == ARS && to == USD:
		if rate.IsZero() {
			return m, nil
		}
		return M(m.value.Div(rate), USD), nil
	default:
		return m, nil
	}
}
