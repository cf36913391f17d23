package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/nmoretto/indexa"
	"github.com/nmoretto/indexa/renderer"
)

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct {
	from   string
	to     string
	by     string
	adjust bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "bucket expenses over a range and derive statistics" }
func (*analyzeCmd) Usage() string {
	return `idx analyze -from <date> -to <date> [-by <granularity>] [-adjust]

  Buckets the recorded expenses by granularity (daily, weekly, monthly,
  quarterly, yearly) and reports totals, a heatmap of the heaviest days,
  seasonality alerts and the latest-vs-previous trend.

Usage Examples:
# First half of the year, month by month, restated for inflation.
$ idx analyze -from 2025-01-01 -to 2025-06-30 -by monthly -adjust

`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First day of the range")
	f.StringVar(&c.to, "to", "", "Last day of the range (defaults to today)")
	f.StringVar(&c.by, "by", "monthly", "Bucket granularity: daily, weekly, monthly, quarterly, yearly")
	f.BoolVar(&c.adjust, "adjust", false, "Restate every expense at present value through the CPI curve")
}

func (c *analyzeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" {
		fmt.Fprintf(os.Stderr, "Error: -from is required\n%s", c.Usage())
		return subcommands.ExitUsageError
	}
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
	granularity, err := indexa.ParsePeriod(c.by)
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

	r := indexa.NewRange(from, to)
	analysis, err := engine.Analyze(r, granularity, c.adjust)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not analyze expenses: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.AnalysisMarkdown(analysis, r, granularity))
	return subcommands.ExitSuccess
}
