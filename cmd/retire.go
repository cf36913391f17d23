package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// retireCmd holds the flags for the 'retire' subcommand.
type retireCmd struct {
	obligation int64
}

func (*retireCmd) Name() string     { return "retire" }
func (*retireCmd) Synopsis() string { return "retire an obligation from future projections" }
func (*retireCmd) Usage() string {
	return `idx retire -o <obligation>

  Retires an obligation. Its due history is kept, it just stops
  appearing in projections.
`
}

func (c *retireCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.obligation, "o", 0, "Obligation id to retire")
}

func (c *retireCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.obligation == 0 {
		fmt.Fprintf(os.Stderr, "Error: -o is required\n%s", c.Usage())
		return subcommands.ExitUsageError
	}

	s, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open the database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if err := s.Deactivate(c.obligation); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not retire obligation: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Retired obligation %d\n", c.obligation)
	return subcommands.ExitSuccess
}
