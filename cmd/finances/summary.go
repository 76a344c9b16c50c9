package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
)

type summaryCmd struct {
	month string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print one month's income, expenses, and needs" }
func (*summaryCmd) Usage() string {
	return `summary [-month <YYYY-MM>]

  Prints the month's transaction totals and the state of every monthly
  need that is active in that month.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month to summarize, YYYY-MM (default: current month)")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	currency := a.Stores.Settings.Get().Currency
	sum := a.Service.MonthSummary(month)

	fmt.Printf("Summary for %s (%d transactions)\n", sum.Month, sum.Transactions)
	fmt.Printf("  Income:   %s %s\n", sum.Income.StringFixed(2), currency)
	fmt.Printf("  Expenses: %s %s\n", sum.Expenses.StringFixed(2), currency)
	fmt.Printf("  Net:      %s %s\n", sum.Net.StringFixed(2), currency)

	if len(sum.Needs) == 0 {
		return subcommands.ExitSuccess
	}

	fmt.Printf("\nMonthly needs (budget %s, paid %s, %d unpaid)\n",
		sum.NeedsBudget.StringFixed(2), sum.NeedsPaid.StringFixed(2), sum.NeedsUnpaid)
	for _, n := range sum.Needs {
		status := "unpaid"
		if n.View.IsPaid {
			status = "paid " + n.View.ActualAmount.StringFixed(2)
			if n.View.IsOverBudget {
				status += " (over budget)"
			}
		}
		fmt.Printf("  %-24s budget %10s  %s\n", n.Need.Name, n.Need.BudgetAmount.StringFixed(2), status)
	}
	return subcommands.ExitSuccess
}
