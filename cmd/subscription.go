package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type subAddCmd struct {
	name     string
	amount   string
	day      int
	category string
}

func (*subAddCmd) Name() string     { return "sub-add" }
func (*subAddCmd) Synopsis() string { return "add a recurring subscription" }
func (*subAddCmd) Usage() string {
	return `fin sub-add -name <name> -amount <amount> -day <day> [-category <category>]

  Adds a monthly subscription charged on the given day of the month. See
  'fin topic subscriptions' for how the payment status is derived.

Usage Examples:
$ fin sub-add -name "Netflix" -amount 15.99 -day 12 -category streaming
`
}

func (c *subAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the subscription")
	f.StringVar(&c.amount, "amount", "", "Monthly amount")
	f.IntVar(&c.day, "day", 1, "Day of the month the payment is due (1-31)")
	f.StringVar(&c.category, "category", string(fintrack.SubscriptionOther), "Subscription category")
}

func (c *subAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -name and -amount are required.")
		return subcommands.ExitUsageError
	}
	amount, err := fintrack.ParseMoney(c.amount)
	if err != nil {
		return fail(err)
	}
	category, err := fintrack.ParseSubscriptionCategory(c.category)
	if err != nil {
		return fail(err)
	}
	if c.day < 1 || c.day > 31 {
		fmt.Fprintf(os.Stderr, "Error: -day must be in [1,31], got %d.\n", c.day)
		return subcommands.ExitUsageError
	}

	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	if _, err := store.AddSubscription(ctx, fintrack.NewSubscription{
		Name:       c.name,
		Amount:     amount,
		PaymentDay: c.day,
		Category:   category,
	}); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type subListCmd struct{}

func (*subListCmd) Name() string     { return "sub-list" }
func (*subListCmd) Synopsis() string { return "list subscriptions with their payment status" }
func (*subListCmd) Usage() string {
	return `fin sub-list

  Lists all subscriptions with their payment status for the current
  monthly cycle.
`
}

func (*subListCmd) SetFlags(*flag.FlagSet) {}

func (*subListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Subscriptions(store.Subscriptions(), date.Today()))
	return subcommands.ExitSuccess
}

type subEditCmd struct {
	name     string
	amount   string
	day      int
	category string
}

func (*subEditCmd) Name() string     { return "sub-edit" }
func (*subEditCmd) Synopsis() string { return "edit a subscription" }
func (*subEditCmd) Usage() string {
	return `fin sub-edit <id> [-name <name>] [-amount <amount>] [-day <day>] [-category <category>]

  Edits the given subscription. Only the fields passed as flags change,
  the paid cycle marker is untouched.
`
}

func (c *subEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New name")
	f.StringVar(&c.amount, "amount", "", "New monthly amount")
	f.IntVar(&c.day, "day", 0, "New day of the month the payment is due (1-31)")
	f.StringVar(&c.category, "category", "", "New category")
}

func (c *subEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := idArg(f)
	if status != subcommands.ExitSuccess {
		return status
	}

	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	sub, ok := findByID(store.Subscriptions(), func(s fintrack.Subscription) uuid.UUID { return s.ID }, id)
	if !ok {
		return fail(fmt.Errorf("no subscription with id %s", id))
	}

	if c.name != "" {
		sub.Name = c.name
	}
	if c.amount != "" {
		amount, err := fintrack.ParseMoney(c.amount)
		if err != nil {
			return fail(err)
		}
		sub.Amount = amount
	}
	if c.day != 0 {
		sub.PaymentDay = c.day
	}
	if c.category != "" {
		category, err := fintrack.ParseSubscriptionCategory(c.category)
		if err != nil {
			return fail(err)
		}
		sub.Category = category
	}
	if err := sub.Validate(); err != nil {
		return fail(err)
	}

	if _, err := store.UpdateSubscription(ctx, id, sub); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type subRmCmd struct{}

func (*subRmCmd) Name() string     { return "sub-rm" }
func (*subRmCmd) Synopsis() string { return "delete a subscription" }
func (*subRmCmd) Usage() string {
	return `fin sub-rm <id>

  Deletes the given subscription.
`
}

func (*subRmCmd) SetFlags(*flag.FlagSet) {}

func (*subRmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := idArg(f)
	if status != subcommands.ExitSuccess {
		return status
	}
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	if err := store.DeleteSubscription(ctx, id); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type subToggleCmd struct{}

func (*subToggleCmd) Name() string     { return "sub-toggle" }
func (*subToggleCmd) Synopsis() string { return "mark a subscription paid or unpaid for this cycle" }
func (*subToggleCmd) Usage() string {
	return `fin sub-toggle <id>

  Flips the paid-for-current-cycle marker of the given subscription. The
  backend computes the cycle, toggling twice is a no-op.
`
}

func (*subToggleCmd) SetFlags(*flag.FlagSet) {}

func (*subToggleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := idArg(f)
	if status != subcommands.ExitSuccess {
		return status
	}
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	sub, err := store.ToggleSubscription(ctx, id)
	if err != nil {
		return subcommands.ExitFailure
	}
	fmt.Printf("%s is now %s.\n", sub.Name, sub.StatusOn(date.Today()))
	return subcommands.ExitSuccess
}
