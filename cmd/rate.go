package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/nmoretto/indexa"
)

// rateCmd holds the flags for the 'rate' subcommand.
type rateCmd struct {
	date string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "resolve the official USD sell rate for a day" }
func (*rateCmd) Usage() string {
	return `idx rate [-d <date>]

  Resolves the best available USD sell rate for a day. Days without a
  quote fall back to the closest prior quote, then to the latest known
  quote, then to the neutral rate 1.0; the resolution tag tells which.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date to resolve the rate for (defaults to today)")
}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	rate, resolution, err := engine.ResolveRate(on, indexa.USD)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not resolve rate: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s: %s ARS per USD (%s)\n", on, rate, resolution)
	return subcommands.ExitSuccess
}

// parseDateFlag parses an optional date flag, empty meaning today.
func parseDateFlag(s string) (indexa.Date, error) {
	if s == "" {
		return indexa.Today(), nil
	}
	return indexa.ParseDate(s)
}
