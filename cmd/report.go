package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "show the monthly spending trend" }
func (*reportCmd) Usage() string {
	return `fin report

  Shows total spending per month as computed by the backend.
`
}

func (*reportCmd) SetFlags(*flag.FlagSet) {}

func (*reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	totals, err := store.MonthlySummary(ctx)
	if err != nil {
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.MonthlyTrend(totals))
	return subcommands.ExitSuccess
}

type pricesCmd struct{}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "show the current market prices of held instruments" }
func (*pricesCmd) Usage() string {
	return `fin prices

  Fetches and shows the unit prices used to value the portfolio: one per
  held coin, plus the gold, silver and currency rates.
`
}

func (*pricesCmd) SetFlags(*flag.FlagSet) {}

func (*pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	quotes := fintrack.NewQuoter().Fetch(ctx, store.Investments())
	printMarkdown(renderer.Quotes(quotes))
	return subcommands.ExitSuccess
}
