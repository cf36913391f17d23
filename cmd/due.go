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

// addDueCmd holds the flags for the 'add-due' subcommand.
type addDueCmd struct {
	obligation int64
	date       string
	currency   string
}

func (*addDueCmd) Name() string     { return "add-due" }
func (*addDueCmd) Synopsis() string { return "record a historical due payment for an obligation" }
func (*addDueCmd) Usage() string {
	return `idx add-due -o <obligation> [-d <date>] [-cur <currency>] <amount>

  Records a due payment. The most recent due record seeds the
  obligation's base amount and anchor date in projections.

Usage Examples:
$ idx add-due -o 1 -d 2025-03-01 450000

`
}

func (c *addDueCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.obligation, "o", 0, "Obligation id, see 'idx add-obligation'")
	f.StringVar(&c.date, "d", "", "Day the payment was due (defaults to today)")
	f.StringVar(&c.currency, "cur", indexa.ARS, "Currency of the amount, ARS or USD")
}

func (c *addDueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.obligation == 0 {
		fmt.Fprintf(os.Stderr, "Error: -o is required\n%s", c.Usage())
		return subcommands.ExitUsageError
	}
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
	if err := s.AddDue(c.obligation, on, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not record due payment: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s due on %s for obligation %d\n", m, on, c.obligation)
	return subcommands.ExitSuccess
}
