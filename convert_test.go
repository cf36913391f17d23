package indexa

import (
	"testing"
	"time"
)

func newTestConverter(quotes ...Quote) *Converter {
	return NewConverter(NewResolver(quoted(quotes...), nil))
}

func TestConvert_IdentityIsExact(t *testing.T) {
	c := newTestConverter() // no quotes at all: identity must not care
	on := NewDate(2024, time.March, 1)

	in := ars(1234.5678)
	got, err := c.Convert(in, ARS, on)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !got.Equal(in) {
		t.Errorf("Convert(x, ARS, ARS) = %v, want %v unchanged, no rounding", got, in)
	}
}

func TestConvert_BothDirections(t *testing.T) {
	on := NewDate(2024, time.March, 1)
	c := newTestConverter(usdQuote(on, 850))

	got, err := c.Convert(usd(10), ARS, on)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if want := ars(8500); !got.Equal(want) {
		t.Errorf("USD->ARS = %v, want %v", got, want)
	}

	got, err = c.Convert(ars(8500), USD, on)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if want := usd(10); !got.Equal(want) {
		t.Errorf("ARS->USD = %v, want %v", got, want)
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	on := NewDate(2024, time.March, 1)
	c := newTestConverter(usdQuote(on, 873.25))

	in := usd(123.45)
	there, err := c.Convert(in, ARS, on)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	back, err := c.Convert(there, USD, on)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	// within decimal division precision
	diff := back.Amount().Sub(in.Amount()).Abs()
	if diff.GreaterThan(dec(0.0000001)) {
		t.Errorf("round trip USD->ARS->USD = %s, want %s", back.Amount(), in.Amount())
	}
}

func TestConvert_ZeroRateGuard(t *testing.T) {
	on := NewDate(2024, time.March, 1)
	c := newTestConverter(Quote{Date: on, Currency: USD, Sell: dec(0)})

	in := ars(100)
	got, err := c.Convert(in, USD, on)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !got.Equal(in) {
		t.Errorf("Convert with zero rate = %v, want %v unconverted", got, in)
	}
}

func TestConvert_UnsupportedPairPassesThrough(t *testing.T) {
	on := NewDate(2024, time.March, 1)
	c := newTestConverter(usdQuote(on, 850))

	in := M(100, "EUR")
	got, err := c.Convert(in, ARS, on)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !got.Equal(in) {
		t.Errorf("Convert(EUR, ARS) = %v, want %v unchanged (two-currency limitation)", got, in)
	}
}
