package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/nmoretto/indexa"
	"github.com/nmoretto/indexa/dolarapi"
)

// importRatesCmd holds the flags for the 'import-rates' subcommand.
type importRatesCmd struct {
	from   string
	to     string
	latest bool
}

func (*importRatesCmd) Name() string     { return "import-rates" }
func (*importRatesCmd) Synopsis() string { return "import official USD quotes from dolarapi.com" }
func (*importRatesCmd) Usage() string {
	return `idx import-rates [-from <date> -to <date>] [-latest]

  Imports official USD sell quotes from the public dolarapi.com and
  argentinadatos.com endpoints. Days already recorded are overwritten
  with the published value.

Usage Examples:
# Backfill the first quarter.
$ idx import-rates -from 2025-01-01 -to 2025-03-31

# Just today's quote.
$ idx import-rates -latest

`
}

func (c *importRatesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First day to import")
	f.StringVar(&c.to, "to", "", "Last day to import (defaults to today)")
	f.BoolVar(&c.latest, "latest", false, "Import only the latest published quote")
}

func (c *importRatesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client := dolarapi.New()

	var quotes []indexa.Quote
	if c.latest || c.from == "" {
		q, err := client.Latest()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not fetch from dolarapi.com: %v\n", err)
			return subcommands.ExitFailure
		}
		quotes = append(quotes, q)
	} else {
		from, err := indexa.ParseDate(c.from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -from: %v\n", err)
			return subcommands.ExitUsageError
		}
		to, err := parseDateFlag(c.to)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -to: %v\n", err)
			return subcommands.ExitUsageError
		}
		quotes, err = client.Historical(indexa.NewRange(from, to))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not fetch history: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	engine, closer, err := OpenEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open the database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer()

	for _, q := range quotes {
		if err := engine.UpsertQuote(q.Date, q.Currency, q.Sell); err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not record quote for %s: %v\n", q.Date, err)
			return subcommands.ExitFailure
		}
		fmt.Println(q.Date, q.Sell, "ARS per USD")
	}

	fmt.Fprintf(os.Stderr, "Finished importing, %d quotes recorded.\n", len(quotes))
	return subcommands.ExitSuccess
}
