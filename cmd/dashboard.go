package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct {
	noQuotes bool
}

func (*dashboardCmd) Name() string { return "dashboard" }
func (*dashboardCmd) Synopsis() string {
	return "show the monthly spending and portfolio overview"
}
func (*dashboardCmd) Usage() string {
	return `fin dashboard [-no-quotes]

  Shows the current month: subscription costs, one-time expenses, total
  spending against the monthly limit, and the portfolio valued at live
  market prices.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noQuotes, "no-quotes", false, "Skip fetching market prices (investments value as zero)")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, session, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	if !c.noQuotes {
		store.RefreshQuotes(ctx)
	}

	board := fintrack.NewDashboard(
		store.Subscriptions(),
		store.Expenses(),
		store.Investments(),
		store.Quotes(),
		session.SpendingLimit,
		date.Today(),
	)
	printMarkdown(renderer.Dashboard(board))
	return subcommands.ExitSuccess
}
