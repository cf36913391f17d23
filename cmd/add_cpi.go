package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/nmoretto/indexa"
)

// addCPICmd holds the flags for the 'add-cpi' subcommand.
type addCPICmd struct {
	period string
	pct    string
}

func (*addCPICmd) Name() string     { return "add-cpi" }
func (*addCPICmd) Synopsis() string { return "record the monthly CPI percentage for a month" }
func (*addCPICmd) Usage() string {
	return `idx add-cpi -p <month> -pct <percentage>

  Records the monthly CPI variation for a month. Inflation history is
  append-only: recording a month that already exists fails, published
  CPI figures are never silently rewritten.

Usage Examples:
$ idx add-cpi -p 2025-02 -pct 4.2

`
}

func (c *addCPICmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Month of the record, e.g. 2025-02 (defaults to the current month)")
	f.StringVar(&c.pct, "pct", "", "Monthly CPI variation in percent, e.g. 4.2")
}

func (c *addCPICmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.pct == "" {
		fmt.Fprintf(os.Stderr, "Error: -pct is required\n%s", c.Usage())
		return subcommands.ExitUsageError
	}
	pct, err := decimal.NewFromString(c.pct)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -pct %q: %v\n", c.pct, err)
		return subcommands.ExitUsageError
	}
	period, err := parseDateFlag(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	engine, closer, err := OpenEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open the database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer()

	if err := engine.AppendCPI(period, pct); err != nil {
		if errors.Is(err, indexa.ErrDuplicateRecord) {
			fmt.Fprintf(os.Stderr, "Error: %v (inflation history is append-only)\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: could not record CPI: %v\n", err)
		}
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s%% for %s\n", pct, period.MonthStart())
	return subcommands.ExitSuccess
}
