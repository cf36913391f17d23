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

// convertCmd holds the flags for the 'convert' subcommand.
type convertCmd struct {
	date string
	to   string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert an amount between ARS and USD" }
func (*convertCmd) Usage() string {
	return `idx convert [-d <date>] [-to <currency>] <amount> [<currency>]

  Converts an amount at the USD sell rate resolved for the given day.
  The amount currency defaults to ARS, the target to USD.

Usage Examples:
# How many pesos were 100 dollars worth on March 8th?
$ idx convert -d 2025-03-08 -to ARS 100 USD

`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date whose rate applies (defaults to today)")
	f.StringVar(&c.to, "to", indexa.USD, "Target currency, ARS or USD")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: an amount is required\n%s", c.Usage())
		return subcommands.ExitUsageError
	}

	amount, err := decimal.NewFromString(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	currency := indexa.ARS
	if f.NArg() > 1 {
		currency = strings.ToUpper(f.Arg(1))
	}

	on, err := parseDateFlag(c.date)
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

	m, err := engine.Convert(indexa.M(amount, currency), strings.ToUpper(c.to), on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not convert: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s %s = %s on %s\n", amount, currency, m, on)
	return subcommands.ExitSuccess
}
