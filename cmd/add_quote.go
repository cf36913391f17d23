package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/nmoretto/indexa"
)

// addQuoteCmd holds the flags for the 'add-quote' subcommand.
type addQuoteCmd struct {
	date string
	sell string
}

func (*addQuoteCmd) Name() string     { return "add-quote" }
func (*addQuoteCmd) Synopsis() string { return "record the official USD sell rate for a day" }
func (*addQuoteCmd) Usage() string {
	return `idx add-quote -d <date> -sell <rate>

  Records the official USD sell rate for a day. Recording the same day
  twice silently overwrites the previous value, market data is
  correctable.

Usage Examples:
$ idx add-quote -d 2025-03-08 -sell 1045.50

`
}

func (c *addQuoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Day of the quote (defaults to today)")
	f.StringVar(&c.sell, "sell", "", "USD sell rate in pesos")
}

func (c *addQuoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.sell == "" {
		fmt.Fprintf(os.Stderr, "Error: -sell is required\n%s", c.Usage())
		return subcommands.ExitUsageError
	}
	sell, err := decimal.NewFromString(c.sell)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -sell %q: %v\n", c.sell, err)
		return subcommands.ExitUsageError
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

	if err := engine.UpsertQuote(on, indexa.USD, sell); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not record quote: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s ARS per USD on %s\n", sell, on)
	return subcommands.ExitSuccess
}
