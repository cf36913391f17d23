package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/nmoretto/indexa/renderer"
)

// projectCmd holds the flags for the 'project' subcommand.
type projectCmd struct {
	months    int
	inflation float64
	fx        float64
	start     string
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "simulate the coming months of obligations" }
func (*projectCmd) Usage() string {
	return `idx project -months <n> [-inflation <pct>] [-fx <rate>] [-start <date>]

  Projects every active obligation over the coming months under a flat
  monthly inflation scenario. Obligations with a fixed adjustment rule
  keep their base amount; USD obligations are brought into pesos at the
  -fx rate, or at today's resolved rate when -fx is omitted.

Usage Examples:
# Six months ahead at 4.5% monthly inflation.
$ idx project -months 6 -inflation 4.5

`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.months, "months", 6, "How many months ahead to project")
	f.Float64Var(&c.inflation, "inflation", 0, "Flat monthly inflation percentage of the scenario, e.g. 4.5")
	f.Float64Var(&c.fx, "fx", 0, "Flat ARS-per-USD rate for foreign obligations (0 uses today's resolved rate)")
	f.StringVar(&c.start, "start", "", "First projected month (defaults to today)")
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, err := parseDateFlag(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -start: %v\n", err)
		return subcommands.ExitUsageError
	}

	engine, closer, err := OpenEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open the database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer()

	budget, err := engine.Project(start, c.months,
		decimal.NewFromFloat(c.inflation), decimal.NewFromFloat(c.fx))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not project obligations: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.BudgetMarkdown(budget))
	return subcommands.ExitSuccess
}
