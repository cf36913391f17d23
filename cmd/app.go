// Package cmd implements the CLI application to manage obligations,
// exchange rates and inflation records.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/nmoretto/indexa"
	"github.com/nmoretto/indexa/store"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&rateCmd{}, "rates")
	c.Register(&addQuoteCmd{}, "rates")
	c.Register(&importRatesCmd{}, "rates")
	c.Register(&convertCmd{}, "rates")

	c.Register(&addCPICmd{}, "inflation")
	c.Register(&importCPICmd{}, "inflation")

	c.Register(&addEntryCmd{}, "expenses")
	c.Register(&analyzeCmd{}, "expenses")

	c.Register(&addObligationCmd{}, "obligations")
	c.Register(&addDueCmd{}, "obligations")
	c.Register(&retireCmd{}, "obligations")
	c.Register(&projectCmd{}, "obligations")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dbPath = flag.String("db", defaultDBPath(), "Path to the sqlite database file. Empty runs on a throwaway in-memory store.")

func defaultDBPath() string {
	if p := os.Getenv("INDEXA_DB"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "indexa.db"
	}
	return filepath.Join(home, ".indexa", "indexa.db")
}

// OpenEngine opens the persistence layer and wires the engine over it.
// The returned close function is always safe to call.
func OpenEngine() (*indexa.Engine, func(), error) {
	if *dbPath == "" {
		log.Println("warning, no database path, running on an in-memory store")
		m := indexa.NewMemoryStore()
		return indexa.NewEngine(m, m, m, m), func() {}, nil
	}
	s, err := OpenStore()
	if err != nil {
		return nil, func() {}, err
	}
	return indexa.NewEngine(s, s, s, s), func() { s.Close() }, nil
}

// OpenStore opens the sqlite store at the -db path. Commands that record
// expenses or obligations need the store itself, not just the engine.
func OpenStore() (*store.Store, error) {
	if *dbPath == "" {
		return nil, fmt.Errorf("this command needs a database, set -db")
	}
	return store.Open(*dbPath)
}
