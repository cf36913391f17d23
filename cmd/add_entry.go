package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/nmoretto/indexa"
)

// addEntryCmd holds the flags for the 'add-entry' subcommand.
type addEntryCmd struct {
	date     string
	category string
	currency string
}

func (*addEntryCmd) Name() string     { return "add-entry" }
func (*addEntryCmd) Synopsis() string { return "record an expense" }
func (*addEntryCmd) Usage() string {
	return `idx add-entry [-d <date>] [-c <category>] [-cur <currency>] <amount>

  Records one expense. A negative amount is a refund; refunds offset
  expenses inside their analysis bucket.

Usage Examples:
$ idx add-entry -d 2025-03-08 -c groceries 45000

`
}

func (c *addEntryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Day of the expense (defaults to today)")
	f.StringVar(&c.category, "c", "", "Free-form category label")
	f.StringVar(&c.currency, "cur", indexa.ARS, "Currency of the amount, ARS or USD")
}

func (c *addEntryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: an amount is required\n%s", c.Usage())
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	on, err := parseDateFlag(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open the database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	m := indexa.M(amount, strings.ToUpper(c.currency))
	if err := s.AddEntry(on, m, c.category); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not record expense: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s on %s\n", m, on)
	return subcommands.ExitSuccess
}
