// Package dolarapi fetches official USD sell-rate quotes for the Argentine
// peso from dolarapi.com (latest) and argentinadatos.com (history).
package dolarapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/nmoretto/indexa"
)

const (
	latestURL     = "https://dolarapi.com/v1/dolares/oficial"
	historicalURL = "https://api.argentinadatos.com/v1/cotizaciones/dolares/oficial"
)

// Client fetches USD quotes. The zero value is not usable, use New.
type Client struct {
	http        *http.Client
	latestAddr  string
	historyAddr string
}

// New returns a Client over the public endpoints, with a daily-expiring
// disk cache so repeated runs in the same day never re-download.
func New() *Client {
	return &Client{
		http:        newDailyCachingClient(),
		latestAddr:  latestURL,
		historyAddr: historicalURL,
	}
}

/*
	{
	    "moneda": "USD",
	    "casa": "oficial",
	    "nombre": "Oficial",
	    "compra": 1005.5,
	    "venta": 1045.5,
	    "fechaActualizacion": "2024-03-08T16:30:00.000Z"
	}
*/

// Latest returns today's official USD sell quote.
func (c *Client) Latest() (indexa.Quote, error) {
	var jobj any
	if err := jwget(c.http, c.latestAddr, &jobj); err != nil {
		return indexa.Quote{}, fmt.Errorf("error in wget %q: %w", "USD oficial", err)
	}

	sell, err := jfloat(jobj, "$.venta")
	if err != nil {
		return indexa.Quote{}, err
	}

	jdate, err := jsonpath.Get("$.fechaActualizacion", jobj)
	if err != nil {
		return indexa.Quote{}, fmt.Errorf("error parsing %q: %q %w", "USD oficial", "$.fechaActualizacion", err)
	}
	stamp, _ := jdate.(string)
	on := indexa.Today()
	if len(stamp) >= 10 {
		if d, err := indexa.ParseDate(stamp[:10]); err == nil {
			on = d
		}
	}

	return indexa.Quote{
		Date:     on,
		Currency: indexa.USD,
		Sell:     decimal.NewFromFloat(sell),
	}, nil
}

// jfloat extracts one float value at path from a decoded json object.
func jfloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %q %w", "USD oficial", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing %q: %q %s %v", "USD oficial", path, "not a float", jval)
	}
	return val, nil
}

/*
	[
	    {
	        "casa": "oficial",
	        "compra": 365.5,
	        "venta": 383.5,
	        "fecha": "2023-12-01"
	    },
*/

// Historical returns the official USD sell quotes within the range, oldest
// first. Days the market did not publish a rate are simply absent.
func (c *Client) Historical(r indexa.Range) ([]indexa.Quote, error) {
	type record struct {
		Casa  string          `json:"casa"`
		Venta decimal.Decimal `json:"venta"`
		Fecha string          `json:"fecha"`
	}

	content := make([]record, 0)
	if err := jwget(c.http, c.historyAddr, &content); err != nil {
		return nil, fmt.Errorf("error in wget %q history: %w", "USD oficial", err)
	}

	var quotes []indexa.Quote
	for _, rec := range content {
		if rec.Casa != "" && !strings.EqualFold(rec.Casa, "oficial") {
			continue
		}
		on, err := indexa.ParseDate(rec.Fecha)
		if err != nil {
			return nil, fmt.Errorf("invalid quote date %q: %w", rec.Fecha, err)
		}
		if !r.Contains(on) {
			continue
		}
		quotes = append(quotes, indexa.Quote{Date: on, Currency: indexa.USD, Sell: rec.Venta})
	}
	return quotes, nil
}
