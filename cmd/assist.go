package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/nmoretto/indexa/agent"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }

func (*assistCmd) Synopsis() string { return "Start an interactive session with the AI assistant." }

func (*assistCmd) Usage() string {
	return `idx assist [<initial question>]

  Start an interactive session with the AI assistant. It can resolve
  rates, convert amounts, analyze expenses and project obligations on
  your behalf.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	engine, closer, err := OpenEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open the database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer()

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	economist := agent.NewEconomist(engine)
	a := agent.New(os.Stdout, os.Stdin, economist)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
