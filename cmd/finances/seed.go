package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/seed"
	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
)

type seedCmd struct {
	month string
	mode  string
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "load a consistent demo dataset" }
func (*seedCmd) Usage() string {
	return `seed [-month <YYYY-MM>] [-mode merge|replace]

  Generates a starter dataset anchored at the given month and imports it.
  With -mode merge (the default), existing entities are kept and the demo
  records are added alongside them. With -mode replace, the current dataset
  is dropped first.
`
}

func (c *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Anchor month, YYYY-MM (default: current month)")
	f.StringVar(&c.mode, "mode", string(snapshot.Merge), "Import mode: merge or replace")
}

func (c *seedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month := core.CurrentYearMonth()
	if c.month != "" {
		parsed, err := core.ParseYearMonth(c.month)
		if err != nil {
			return fail(err)
		}
		month = parsed
	}

	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	snap := seed.Generate(month)
	if err := a.Snapshots.Import(ctx, snap, snapshot.ImportMode(c.mode)); err != nil {
		return fail(err)
	}

	fmt.Printf("Seeded %s dataset: %s\n", c.mode, seed.Describe(snap))
	return subcommands.ExitSuccess
}
