package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type overviewCmd struct{}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "print net worth and savings totals" }
func (*overviewCmd) Usage() string {
	return `overview

  Prints the top-level aggregates: net worth across assets and
  liabilities, total saved across goals, and active plan counts.
`
}

func (*overviewCmd) SetFlags(*flag.FlagSet) {}

func (c *overviewCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	currency := a.Stores.Settings.Get().Currency
	ov := a.Service.Overview()

	fmt.Printf("Net worth:       %s %s\n", ov.NetWorth.StringFixed(2), currency)
	fmt.Printf("Total savings:   %s %s\n", ov.TotalSavings.StringFixed(2), currency)
	fmt.Printf("Active goals:    %d\n", ov.ActiveSavings)
	fmt.Printf("Active plans:    %d\n", ov.ActivePlans)
	fmt.Printf("Wishlist saving: %d\n", ov.WishlistSaving)
	return subcommands.ExitSuccess
}
