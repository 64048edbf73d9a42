package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
)

type limitCmd struct{}

func (*limitCmd) Name() string     { return "limit" }
func (*limitCmd) Synopsis() string { return "show or set the monthly spending limit" }
func (*limitCmd) Usage() string {
	return `fin limit [<amount>]

  Without argument, prints the current monthly spending limit. With an
  amount, stores it. An amount of 0 disables budget tracking.
`
}

func (*limitCmd) SetFlags(*flag.FlagSet) {}

func (*limitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := loadSession()
	if err != nil {
		return fail(err)
	}

	if f.NArg() == 0 {
		if session.SpendingLimit.IsZero() {
			fmt.Println("No spending limit set.")
		} else {
			fmt.Printf("Monthly spending limit: %s\n", session.SpendingLimit)
		}
		return subcommands.ExitSuccess
	}

	limit, err := fintrack.ParseMoney(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	if limit.IsNegative() {
		fmt.Fprintln(os.Stderr, "Error: the spending limit must not be negative.")
		return subcommands.ExitUsageError
	}

	session.SpendingLimit = limit
	if err := saveSession(session); err != nil {
		return fail(err)
	}
	if limit.IsZero() {
		fmt.Println("✅ Spending limit disabled.")
	} else {
		fmt.Printf("✅ Spending limit set to %s.\n", limit)
	}
	return subcommands.ExitSuccess
}
