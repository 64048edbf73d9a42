package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type expenseAddCmd struct {
	desc     string
	amount   string
	category string
}

func (*expenseAddCmd) Name() string     { return "expense-add" }
func (*expenseAddCmd) Synopsis() string { return "record a one-time expense" }
func (*expenseAddCmd) Usage() string {
	return `fin expense-add -desc <description> -amount <amount> [-category <category>]

  Records a one-time expense dated today. See 'fin topic categories' for
  the list of expense categories.

Usage Examples:
$ fin expense-add -desc "Coffee" -amount 4.50 -category food
`
}

func (c *expenseAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.desc, "desc", "", "Description of the expense")
	f.StringVar(&c.amount, "amount", "", "Amount spent")
	f.StringVar(&c.category, "category", string(fintrack.CategoryOther), "Expense category")
}

func (c *expenseAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.desc == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -desc and -amount are required.")
		return subcommands.ExitUsageError
	}
	amount, err := fintrack.ParseMoney(c.amount)
	if err != nil {
		return fail(err)
	}
	category, err := fintrack.ParseExpenseCategory(c.category)
	if err != nil {
		return fail(err)
	}

	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	if _, err := store.AddExpense(ctx, fintrack.NewExpense{
		Description: c.desc,
		Amount:      amount,
		Category:    category,
	}); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type expenseListCmd struct{}

func (*expenseListCmd) Name() string     { return "expense-list" }
func (*expenseListCmd) Synopsis() string { return "list expenses with a category breakdown" }
func (*expenseListCmd) Usage() string {
	return `fin expense-list

  Lists all recorded expenses, newest first, with totals by category.
`
}

func (*expenseListCmd) SetFlags(*flag.FlagSet) {}

func (*expenseListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Expenses(store.Expenses()))
	return subcommands.ExitSuccess
}

type expenseEditCmd struct {
	desc     string
	amount   string
	category string
}

func (*expenseEditCmd) Name() string     { return "expense-edit" }
func (*expenseEditCmd) Synopsis() string { return "edit a recorded expense" }
func (*expenseEditCmd) Usage() string {
	return `fin expense-edit <id> [-desc <description>] [-amount <amount>] [-category <category>]

  Edits the given expense. Only the fields passed as flags change, the
  expense keeps its original date.
`
}

func (c *expenseEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.desc, "desc", "", "New description")
	f.StringVar(&c.amount, "amount", "", "New amount")
	f.StringVar(&c.category, "category", "", "New category")
}

func (c *expenseEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := idArg(f)
	if status != subcommands.ExitSuccess {
		return status
	}

	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	expense, ok := findByID(store.Expenses(), func(e fintrack.Expense) uuid.UUID { return e.ID }, id)
	if !ok {
		return fail(fmt.Errorf("no expense with id %s", id))
	}

	if c.desc != "" {
		expense.Description = c.desc
	}
	if c.amount != "" {
		amount, err := fintrack.ParseMoney(c.amount)
		if err != nil {
			return fail(err)
		}
		expense.Amount = amount
	}
	if c.category != "" {
		category, err := fintrack.ParseExpenseCategory(c.category)
		if err != nil {
			return fail(err)
		}
		expense.Category = category
	}

	if _, err := store.UpdateExpense(ctx, id, expense); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type expenseRmCmd struct{}

func (*expenseRmCmd) Name() string     { return "expense-rm" }
func (*expenseRmCmd) Synopsis() string { return "delete a recorded expense" }
func (*expenseRmCmd) Usage() string {
	return `fin expense-rm <id>

  Deletes the given expense.
`
}

func (*expenseRmCmd) SetFlags(*flag.FlagSet) {}

func (*expenseRmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := idArg(f)
	if status != subcommands.ExitSuccess {
		return status
	}
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	if err := store.DeleteExpense(ctx, id); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// idArg parses the single positional entity id every edit and rm command
// takes.
func idArg(f *flag.FlagSet) (uuid.UUID, subcommands.ExitStatus) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one <id> argument is required.")
		return uuid.Nil, subcommands.ExitUsageError
	}
	id, err := uuid.Parse(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid id %q: %v\n", f.Arg(0), err)
		return uuid.Nil, subcommands.ExitUsageError
	}
	return id, subcommands.ExitSuccess
}

// findByID returns the item with the given id from the mirror.
func findByID[T any](items []T, id func(T) uuid.UUID, target uuid.UUID) (T, bool) {
	for _, item := range items {
		if id(item) == target {
			return item, true
		}
	}
	var zero T
	return zero, false
}
