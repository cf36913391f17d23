package cmd

import (
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"

	"github.com/nmoretto/indexa"
)

func TestParseDateFlag(t *testing.T) {
	on, err := parseDateFlag("")
	if err != nil {
		t.Fatalf("parseDateFlag(\"\") error = %v", err)
	}
	if got, want := on, indexa.Today(); got != want {
		t.Errorf("parseDateFlag(\"\") = %s, want today %s", got, want)
	}

	on, err = parseDateFlag("2025-03-08")
	if err != nil {
		t.Fatalf("parseDateFlag() error = %v", err)
	}
	if got, want := on, indexa.NewDate(2025, 3, 8); got != want {
		t.Errorf("parseDateFlag() = %s, want %s", got, want)
	}

	if _, err := parseDateFlag("not-a-date"); err == nil {
		t.Error("parseDateFlag(not-a-date) expected an error")
	}
}

// useTempDB points the global -db flag at a throwaway database for the test.
func useTempDB(t *testing.T) {
	t.Helper()
	old := *dbPath
	*dbPath = filepath.Join(t.TempDir(), "test.db")
	t.Cleanup(func() { *dbPath = old })
}

func noFlags(t *testing.T, args ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestAddQuoteThenRate(t *testing.T) {
	useTempDB(t)
	ctx := context.Background()

	add := &addQuoteCmd{date: "2025-03-08", sell: "1045.50"}
	if got := add.Execute(ctx, noFlags(t)); got != subcommands.ExitSuccess {
		t.Fatalf("add-quote exit = %v", got)
	}

	rate := &rateCmd{date: "2025-03-09"}
	if got := rate.Execute(ctx, noFlags(t)); got != subcommands.ExitSuccess {
		t.Fatalf("rate exit = %v", got)
	}
}

func TestAddQuoteRejectsGarbage(t *testing.T) {
	useTempDB(t)
	ctx := context.Background()

	add := &addQuoteCmd{date: "2025-03-08", sell: "not-a-rate"}
	if got := add.Execute(ctx, noFlags(t)); got != subcommands.ExitUsageError {
		t.Errorf("add-quote with bad rate exit = %v, want usage error", got)
	}

	add = &addQuoteCmd{date: "2025-03-08"}
	if got := add.Execute(ctx, noFlags(t)); got != subcommands.ExitUsageError {
		t.Errorf("add-quote without rate exit = %v, want usage error", got)
	}
}

func TestAddCPIIsAppendOnly(t *testing.T) {
	useTempDB(t)
	ctx := context.Background()

	add := &addCPICmd{period: "2025-02", pct: "4.2"}
	if got := add.Execute(ctx, noFlags(t)); got != subcommands.ExitSuccess {
		t.Fatalf("add-cpi exit = %v", got)
	}

	// Same month again, even on a different day, must fail.
	again := &addCPICmd{period: "2025-02-15", pct: "5.0"}
	if got := again.Execute(ctx, noFlags(t)); got != subcommands.ExitFailure {
		t.Errorf("duplicate add-cpi exit = %v, want failure", got)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	useTempDB(t)
	ctx := context.Background()

	add := &addQuoteCmd{date: "2025-03-08", sell: "1000"}
	if got := add.Execute(ctx, noFlags(t)); got != subcommands.ExitSuccess {
		t.Fatalf("add-quote exit = %v", got)
	}

	conv := &convertCmd{date: "2025-03-08", to: indexa.ARS}
	if got := conv.Execute(ctx, noFlags(t, "100", "USD")); got != subcommands.ExitSuccess {
		t.Fatalf("convert exit = %v", got)
	}

	conv = &convertCmd{date: "2025-03-08", to: indexa.USD}
	if got := conv.Execute(ctx, noFlags(t)); got != subcommands.ExitUsageError {
		t.Errorf("convert without amount exit = %v, want usage error", got)
	}
}

func TestObligationLifecycle(t *testing.T) {
	useTempDB(t)
	ctx := context.Background()

	add := &addObligationCmd{category: "rent", rule: "contract-index", frequency: "quarterly"}
	if got := add.Execute(ctx, noFlags(t)); got != subcommands.ExitSuccess {
		t.Fatalf("add-obligation exit = %v", got)
	}

	due := &addDueCmd{obligation: 1, date: "2025-03-01", currency: indexa.ARS}
	if got := due.Execute(ctx, noFlags(t, "450000")); got != subcommands.ExitSuccess {
		t.Fatalf("add-due exit = %v", got)
	}

	project := &projectCmd{months: 6}
	if got := project.Execute(ctx, noFlags(t)); got != subcommands.ExitSuccess {
		t.Fatalf("project exit = %v", got)
	}

	retire := &retireCmd{obligation: 1}
	if got := retire.Execute(ctx, noFlags(t)); got != subcommands.ExitSuccess {
		t.Fatalf("retire exit = %v", got)
	}
}
