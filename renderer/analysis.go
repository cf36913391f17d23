// Package renderer turns engine reports into markdown.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/nmoretto/indexa"
)

// AnalysisMarkdown renders an expense analysis to a markdown string.
func AnalysisMarkdown(a *indexa.Analysis, r indexa.Range, granularity indexa.Period) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Expense Analysis %s", r))

	if len(a.Series) == 0 {
		doc.PlainText("No expenses in range.")
		return doc.String()
	}

	doc.H2(fmt.Sprintf("By %s", granularity))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Bucket", "Amount"},
	}
	for _, p := range a.Series {
		table.Rows = append(table.Rows, []string{p.Label, p.Amount.String()})
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), md.Bold(a.Total.String())})
	doc.Table(table)

	if len(a.Seasonality) > 0 {
		doc.H2("Seasonality")
		var alerts []string
		for _, alert := range a.Seasonality {
			alerts = append(alerts, fmt.Sprintf("%s: %s, %s over the bucket mean",
				alert.Label, alert.Amount.String(), alert.OverMean.SignedString()))
		}
		doc.BulletList(alerts...)
	}

	if cmp := a.Comparative; cmp != nil {
		trend := "down"
		if cmp.Adverse {
			trend = "up"
		}
		doc.H2("Latest vs Previous")
		doc.PlainText(fmt.Sprintf("%s: %s, %s: %s, %s %s",
			cmp.Previous.Label, cmp.Previous.Amount.String(),
			cmp.Current.Label, cmp.Current.Amount.String(),
			trend, cmp.Delta.SignedString()))
	}

	if peaks := peakDays(a.Heatmap, 5); len(peaks) > 0 {
		doc.H2("Heaviest Days")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Day", "Amount", "Intensity"},
		}
		for _, p := range peaks {
			table.Rows = append(table.Rows, []string{
				p.Date.String(),
				p.Amount.String(),
				fmt.Sprintf("%.0f%%", p.Intensity*100),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

// peakDays returns the n highest-intensity heatmap points, hottest first.
func peakDays(points []indexa.HeatmapPoint, n int) []indexa.HeatmapPoint {
	peaks := make([]indexa.HeatmapPoint, len(points))
	copy(peaks, points)
	for i := 0; i < len(peaks); i++ {
		for j := i + 1; j < len(peaks); j++ {
			if peaks[j].Intensity > peaks[i].Intensity {
				peaks[i], peaks[j] = peaks[j], peaks[i]
			}
		}
	}
	if len(peaks) > n {
		peaks = peaks[:n]
	}
	return peaks
}
