package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// addObligationCmd holds the flags for the 'add-obligation' subcommand.
type addObligationCmd struct {
	category    string
	description string
	rule        string
	frequency   string
}

func (*addObligationCmd) Name() string     { return "add-obligation" }
func (*addObligationCmd) Synopsis() string { return "register a recurring payment obligation" }
func (*addObligationCmd) Usage() string {
	return `idx add-obligation -c <category> [-desc <text>] [-rule <rule>] [-freq <frequency>]

  Registers a recurring obligation. Its base amount comes from due
  records, see 'idx add-due'; until the first due record the obligation
  projects as zero.

  Rules: seasonal-cpi (default), fixed, moving-average, contract-index.
  Frequencies: monthly (default), bimonthly, quarterly, four-monthly,
  semiannual, annual.

Usage Examples:
$ idx add-obligation -c rent -desc "downtown apartment" -rule contract-index -freq quarterly

`
}

func (c *addObligationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Category of the obligation")
	f.StringVar(&c.description, "desc", "", "Free-form description")
	f.StringVar(&c.rule, "rule", "seasonal-cpi", "Adjustment rule")
	f.StringVar(&c.frequency, "freq", "monthly", "Recurrence frequency")
}

func (c *addObligationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.category == "" {
		fmt.Fprintf(os.Stderr, "Error: -c is required\n%s", c.Usage())
		return subcommands.ExitUsageError
	}

	s, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open the database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	id, err := s.AddObligation(c.category, c.description, c.rule, c.frequency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not register obligation: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Registered obligation %d (%s)\n", id, c.category)
	return subcommands.ExitSuccess
}
