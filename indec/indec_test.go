package indec

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoretto/indexa"
)

func TestParseSeries(t *testing.T) {
	csvData := `indice_tiempo,ipc_ni_nacional_percent_change
2024-01-01,0.206
2024-02-01,0.132
2024-03-01,
2024-04-01,0.088
`

	records, err := parseSeries(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("parseSeries() failed: %v", err)
	}

	// the empty March value is skipped, not zero
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	if want := indexa.NewDate(2024, time.January, 1); records[0].Period != want {
		t.Errorf("records[0].Period = %s, want %s", records[0].Period, want)
	}
	// fractions become percentages
	if want := decimal.NewFromFloat(20.6); !records[0].Monthly.Equal(want) {
		t.Errorf("records[0].Monthly = %s, want %s", records[0].Monthly, want)
	}
	if want := decimal.NewFromFloat(8.8); !records[2].Monthly.Equal(want) {
		t.Errorf("records[2].Monthly = %s, want %s", records[2].Monthly, want)
	}
}

func TestParseSeries_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		csvData string
		wantErr string
	}{
		{
			name:    "not enough records",
			csvData: `indice_tiempo,value`,
			wantErr: "not enough records in csv",
		},
		{
			name: "bad header",
			csvData: `fecha,value
2024-01-01,0.2`,
			wantErr: "unexpected csv header",
		},
		{
			name: "bad period",
			csvData: `indice_tiempo,value
enero,0.2`,
			wantErr: "invalid period",
		},
		{
			name: "bad value",
			csvData: `indice_tiempo,value
2024-01-01,not-a-float`,
			wantErr: "failed to parse value",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseSeries(strings.NewReader(tc.csvData))
			if err == nil {
				t.Fatalf("parseSeries() expected an error, but got none")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("parseSeries() error = %q, want to contain %q", err, tc.wantErr)
			}
		})
	}
}
