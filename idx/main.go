package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/nmoretto/indexa/cmd"
)

func main() {
	// .env carries GEMINI_API_KEY and INDEXA_DB for the local setup.
	_ = godotenv.Load()

	// In completion mode this prints candidates and exits.
	completion().Complete("idx")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)
	commander.Register(commander.HelpCommand(), "help")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	dates := predict.Nothing
	sub := func(flags map[string]complete.Predictor) *complete.Command {
		return &complete.Command{Flags: flags}
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"db": predict.Files("*.db"),
		},
		Sub: map[string]*complete.Command{
			"rate":    sub(map[string]complete.Predictor{"d": dates}),
			"convert": sub(map[string]complete.Predictor{"d": dates, "to": predict.Set{"ARS", "USD"}}),
			"analyze": sub(map[string]complete.Predictor{
				"from":   dates,
				"to":     dates,
				"by":     predict.Set{"daily", "weekly", "monthly", "quarterly", "yearly"},
				"adjust": predict.Nothing,
			}),
			"project": sub(map[string]complete.Predictor{
				"months": predict.Nothing, "inflation": predict.Nothing,
				"fx": predict.Nothing, "start": dates,
			}),
			"add-quote":    sub(map[string]complete.Predictor{"d": dates, "sell": predict.Nothing}),
			"add-cpi":      sub(map[string]complete.Predictor{"p": dates, "pct": predict.Nothing}),
			"add-entry":    sub(map[string]complete.Predictor{"d": dates, "c": predict.Nothing, "cur": predict.Set{"ARS", "USD"}}),
			"add-obligation": sub(map[string]complete.Predictor{
				"c": predict.Nothing, "desc": predict.Nothing,
				"rule": predict.Set{"seasonal-cpi", "fixed", "moving-average", "contract-index"},
				"freq": predict.Set{"monthly", "bimonthly", "quarterly", "four-monthly", "semiannual", "annual"},
			}),
			"add-due":      sub(map[string]complete.Predictor{"o": predict.Nothing, "d": dates, "cur": predict.Set{"ARS", "USD"}}),
			"retire":       sub(map[string]complete.Predictor{"o": predict.Nothing}),
			"import-rates": sub(map[string]complete.Predictor{"from": dates, "to": dates, "latest": predict.Nothing}),
			"import-cpi":   sub(map[string]complete.Predictor{"from": dates, "to": dates}),
			"topic":        {Args: predict.Set{"readme", "rates", "inflation", "analysis", "projection", "*"}},
			"assist":       {},
		},
	}
}
