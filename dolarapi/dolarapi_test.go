package dolarapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoretto/indexa"
)

const latestPayload = `{
  "moneda": "USD",
  "casa": "oficial",
  "nombre": "Oficial",
  "compra": 1005.5,
  "venta": 1045.5,
  "fechaActualizacion": "2024-03-08T16:30:00.000Z"
}`

const historyPayload = `[
  {"casa": "oficial", "compra": 360, "venta": 365.5, "fecha": "2024-01-05"},
  {"casa": "blue", "compra": 900, "venta": 950, "fecha": "2024-01-06"},
  {"casa": "oficial", "compra": 370, "venta": 380, "fecha": "2024-01-10"},
  {"casa": "oficial", "compra": 400, "venta": 410, "fecha": "2024-06-01"}
]`

func newTestClient(t *testing.T, payload string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return &Client{http: srv.Client(), latestAddr: srv.URL, historyAddr: srv.URL}
}

func TestLatest(t *testing.T) {
	c := newTestClient(t, latestPayload)

	q, err := c.Latest()
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if q.Currency != indexa.USD {
		t.Errorf("Latest().Currency = %s, want USD", q.Currency)
	}
	if !q.Sell.Equal(decimal.NewFromFloat(1045.5)) {
		t.Errorf("Latest().Sell = %s, want the venta 1045.5", q.Sell)
	}
	if want := indexa.NewDate(2024, time.March, 8); q.Date != want {
		t.Errorf("Latest().Date = %s, want %s", q.Date, want)
	}
}

func TestHistorical(t *testing.T) {
	c := newTestClient(t, historyPayload)
	r := indexa.NewRange(indexa.NewDate(2024, time.January, 1), indexa.NewDate(2024, time.January, 31))

	quotes, err := c.Historical(r)
	if err != nil {
		t.Fatalf("Historical() error = %v", err)
	}
	// the blue quote and the out-of-range June one are skipped
	if len(quotes) != 2 {
		t.Fatalf("Historical() returned %d quotes, want 2", len(quotes))
	}
	if want := indexa.NewDate(2024, time.January, 5); quotes[0].Date != want {
		t.Errorf("quotes[0].Date = %s, want %s", quotes[0].Date, want)
	}
	if !quotes[1].Sell.Equal(decimal.NewFromFloat(380)) {
		t.Errorf("quotes[1].Sell = %s, want 380", quotes[1].Sell)
	}
}
