package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/nmoretto/indexa"
	"github.com/nmoretto/indexa/indec"
)

// importCPICmd holds the flags for the 'import-cpi' subcommand.
type importCPICmd struct {
	from string
	to   string
}

func (*importCPICmd) Name() string     { return "import-cpi" }
func (*importCPICmd) Synopsis() string { return "import monthly CPI records from INDEC" }
func (*importCPICmd) Usage() string {
	return `idx import-cpi -from <month> [-to <month>]

  Imports the monthly national CPI variation series published through
  datos.gob.ar. Months already recorded are skipped, inflation history
  is append-only.

Usage Examples:
$ idx import-cpi -from 2024-01 -to 2025-03

`
}

func (c *importCPICmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First month to import")
	f.StringVar(&c.to, "to", "", "Last month to import (defaults to the current month)")
}

func (c *importCPICmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	records, err := indec.Fetch(indexa.NewRange(from, to))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch from INDEC: %v\n", err)
		return subcommands.ExitFailure
	}

	engine, closer, err := OpenEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open the database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer()

	var added, skipped int
	for _, rec := range records {
		err := engine.AppendCPI(rec.Period, rec.Monthly)
		if errors.Is(err, indexa.ErrDuplicateRecord) {
			skipped++
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not record CPI for %s: %v\n", rec.Period, err)
			return subcommands.ExitFailure
		}
		added++
		fmt.Println(rec.Period, rec.Monthly, "%")
	}

	fmt.Fprintf(os.Stderr, "Finished importing, %d records added, %d already known.\n", added, skipped)
	return subcommands.ExitSuccess
}
