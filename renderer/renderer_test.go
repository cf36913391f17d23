package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoretto/indexa"
)

func ars(v float64) indexa.Money { return indexa.M(v, indexa.ARS) }

func testAnalysis(t *testing.T) (*indexa.Analysis, indexa.Range) {
	t.Helper()
	store := indexa.NewMemoryStore()
	store.AddAmount(indexa.NewDate(2025, time.January, 10), ars(100))
	store.AddAmount(indexa.NewDate(2025, time.February, 10), ars(100))
	store.AddAmount(indexa.NewDate(2025, time.March, 10), ars(100))
	store.AddAmount(indexa.NewDate(2025, time.April, 10), ars(900))

	r := indexa.NewRange(indexa.NewDate(2025, time.January, 1), indexa.NewDate(2025, time.April, 30))
	analysis, err := indexa.NewAnalyzer(store, store).Analyze(r, indexa.Monthly, false)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return analysis, r
}

func TestAnalysisMarkdown(t *testing.T) {
	analysis, r := testAnalysis(t)
	got := AnalysisMarkdown(analysis, r, indexa.Monthly)

	for _, want := range []string{
		"# Expense Analysis",
		"## By monthly",
		"2025-01",
		"## Seasonality",
		"2025-04",
		"## Latest vs Previous",
		"up",
		"## Heaviest Days",
		"2025-04-10",
		"100%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("AnalysisMarkdown() misses %q in:\n%s", want, got)
		}
	}

	// amount columns are right-aligned
	if !strings.Contains(got, "---:") {
		t.Errorf("AnalysisMarkdown() tables are not right-aligned:\n%s", got)
	}
}

func TestAnalysisMarkdown_Empty(t *testing.T) {
	r := indexa.NewRange(indexa.NewDate(2025, time.January, 1), indexa.NewDate(2025, time.January, 31))
	got := AnalysisMarkdown(&indexa.Analysis{}, r, indexa.Monthly)

	if !strings.Contains(got, "No expenses in range.") {
		t.Errorf("AnalysisMarkdown(empty) = %q", got)
	}
	if strings.Contains(got, "## Seasonality") {
		t.Errorf("AnalysisMarkdown(empty) rendered a seasonality section:\n%s", got)
	}
}

func TestBudgetMarkdown(t *testing.T) {
	store := indexa.NewMemoryStore()
	store.AddObligation(indexa.Obligation{
		Category: "rent", Description: "Apartment", Base: ars(1000),
		Rule: indexa.RuleFixed, Frequency: 1,
		LastDue: indexa.NewDate(2025, time.February, 1),
	})
	store.AddObligation(indexa.Obligation{
		Category: "utilities", Base: ars(200),
		Rule: indexa.RuleSeasonalCPI, Frequency: 1,
		LastDue: indexa.NewDate(2025, time.February, 1),
	})

	converter := indexa.NewConverter(indexa.NewResolver(store, nil))
	budget, err := indexa.NewProjector(store, converter).Project(
		indexa.NewDate(2025, time.March, 1), 2, decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	got := BudgetMarkdown(budget)
	for _, want := range []string{
		"# Projected Budget from 2025-03-01, 2 months",
		"## Monthly Totals",
		"2025-03",
		"## By Category",
		"utilities",
		"## Schedule",
		"rent (Apartment)",
		"## Fixed",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BudgetMarkdown() misses %q in:\n%s", want, got)
		}
	}
	if !strings.Contains(got, "---:") {
		t.Errorf("BudgetMarkdown() tables are not right-aligned:\n%s", got)
	}
	// the fixed note names only the fixed obligation
	fixedSection := got[strings.Index(got, "## Fixed"):]
	if strings.Contains(fixedSection, "utilities") {
		t.Errorf("fixed section lists an indexed obligation:\n%s", fixedSection)
	}
}

func TestBudgetMarkdown_Empty(t *testing.T) {
	budget := &indexa.Budget{Start: indexa.NewDate(2025, time.March, 1), Months: 3}
	got := BudgetMarkdown(budget)
	if !strings.Contains(got, "Nothing due in the projected window.") {
		t.Errorf("BudgetMarkdown(empty) = %q", got)
	}
}
