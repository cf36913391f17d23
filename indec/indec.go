// Package indec fetches the monthly national CPI variation series published
// through the datos.gob.ar time-series API.
package indec

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nmoretto/indexa"
)

// seriesID is the national CPI monthly variation series.
const seriesID = "148.3_INIVELNAL_DICI_M_26"

const apiURL = "https://apis.datos.gob.ar/series/api/series/"

// Fetch downloads the monthly CPI percentage records within the range,
// oldest first.
func Fetch(r indexa.Range) ([]indexa.CPIRecord, error) {
	url := fmt.Sprintf("%s?ids=%s:percent_change&format=csv&start_date=%s&end_date=%s",
		apiURL, seriesID, r.From.MonthStart(), r.To.MonthStart())
	log.Println("Downloading from INDEC:", url)

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download CPI series %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download CPI series %s: received status %s", seriesID, resp.Status)
	}

	records, err := parseSeries(resp.Body)
	if err != nil {
		return nil, err
	}

	var out []indexa.CPIRecord
	for _, rec := range records {
		if r.Contains(rec.Period) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// parseSeries reads the two-column CSV series format: a header line, then
// one "indice_tiempo,value" row per month. Values are unit fractions
// (0.042 is a 4.2% monthly rise) and are converted to percentages.
func parseSeries(r io.Reader) ([]indexa.CPIRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("not enough records in csv to parse series")
	}
	if len(rows[0]) < 2 || !strings.EqualFold(rows[0][0], "indice_tiempo") {
		return nil, fmt.Errorf("unexpected csv header %v", rows[0])
	}

	var records []indexa.CPIRecord
	for _, row := range rows[1:] {
		if len(row) < 2 || row[1] == "" {
			continue
		}
		period, err := indexa.ParseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("invalid period %q: %w", row[0], err)
		}
		val, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse value %q for period %q: %w", row[1], row[0], err)
		}
		records = append(records, indexa.CPIRecord{
			Period:  period.MonthStart(),
			Monthly: decimal.NewFromFloat(val).Mul(decimal.NewFromInt(100)),
		})
	}
	return records, nil
}
