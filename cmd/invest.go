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

type investAddCmd struct {
	kind   string
	name   string
	amount string
	price  string
	apiID  string
}

func (*investAddCmd) Name() string     { return "invest-add" }
func (*investAddCmd) Synopsis() string { return "record an investment purchase" }
func (*investAddCmd) Usage() string {
	return `fin invest-add -type <type> -name <name> -amount <quantity> -price <unit_price> [-coin <api_id>]

  Records an investment. The cost basis is frozen at amount times unit
  price. Coins need the price feed id of the coin (-coin), found with
  'fin coin-search'. See 'fin topic instruments' for the instrument types.

Usage Examples:
$ fin invest-add -type coin -name "Bitcoin" -amount 0.5 -price 40000 -coin bitcoin
$ fin invest-add -type gold -name "Wedding ring" -amount 10 -price 60
`
}

func (c *investAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "", "Instrument type (coin, gold, silver, dollar, euro, interest)")
	f.StringVar(&c.name, "name", "", "Name of the investment")
	f.StringVar(&c.amount, "amount", "", "Quantity held (coins, grams, units)")
	f.StringVar(&c.price, "price", "", "Purchase price per unit")
	f.StringVar(&c.apiID, "coin", "", "Price feed id of the coin (coin type only)")
}

func (c *investAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.kind == "" || c.name == "" || c.amount == "" || c.price == "" {
		fmt.Fprintln(os.Stderr, "Error: -type, -name, -amount and -price are required.")
		return subcommands.ExitUsageError
	}
	kind, err := fintrack.ParseInstrumentType(c.kind)
	if err != nil {
		return fail(err)
	}
	amount, err := fintrack.ParseQuantity(c.amount)
	if err != nil {
		return fail(err)
	}
	price, err := fintrack.ParseMoney(c.price)
	if err != nil {
		return fail(err)
	}

	investment := fintrack.Investment{Type: kind, Name: c.name, Amount: amount, APIID: c.apiID}
	if err := investment.Validate(); err != nil {
		return fail(err)
	}

	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	if _, err := store.AddInvestment(ctx, fintrack.NewInvestment{
		Type:          kind,
		Name:          c.name,
		Amount:        amount,
		PurchasePrice: price,
		APIID:         c.apiID,
	}); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type investListCmd struct {
	noQuotes bool
}

func (*investListCmd) Name() string     { return "invest-list" }
func (*investListCmd) Synopsis() string { return "list investments valued at market prices" }
func (*investListCmd) Usage() string {
	return `fin invest-list [-no-quotes]

  Lists all investments with their cost basis, current value and profit
  or loss at the latest market prices.
`
}

func (c *investListCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noQuotes, "no-quotes", false, "Skip fetching market prices (investments value as zero)")
}

func (c *investListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	if !c.noQuotes {
		store.RefreshQuotes(ctx)
	}
	printMarkdown(renderer.Holdings(fintrack.Allocation(store.Investments(), store.Quotes())))
	return subcommands.ExitSuccess
}

type investEditCmd struct {
	name   string
	amount string
	price  string
	apiID  string
}

func (*investEditCmd) Name() string     { return "invest-edit" }
func (*investEditCmd) Synopsis() string { return "edit an investment" }
func (*investEditCmd) Usage() string {
	return `fin invest-edit <id> [-name <name>] [-amount <quantity>] [-price <unit_price>] [-coin <api_id>]

  Edits the given investment. The cost basis is recomputed from the new
  amount and unit price. The instrument type cannot change, delete and
  re-add instead.
`
}

func (c *investEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New name")
	f.StringVar(&c.amount, "amount", "", "New quantity")
	f.StringVar(&c.price, "price", "", "New purchase price per unit")
	f.StringVar(&c.apiID, "coin", "", "New price feed id of the coin (coin type only)")
}

func (c *investEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := idArg(f)
	if status != subcommands.ExitSuccess {
		return status
	}

	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	investment, ok := findByID(store.Investments(), func(i fintrack.Investment) uuid.UUID { return i.ID }, id)
	if !ok {
		return fail(fmt.Errorf("no investment with id %s", id))
	}

	data := fintrack.UpdateInvestment{
		Name:   investment.Name,
		Amount: investment.Amount,
		APIID:  investment.APIID,
	}
	// The stored initialValue is a total, the update payload takes a unit
	// price. Derive the current unit price when -price is not given.
	data.PurchasePrice = investment.InitialValue
	if !investment.Amount.IsZero() {
		data.PurchasePrice = investment.InitialValue.Div(investment.Amount)
	}

	if c.name != "" {
		data.Name = c.name
	}
	if c.amount != "" {
		amount, err := fintrack.ParseQuantity(c.amount)
		if err != nil {
			return fail(err)
		}
		data.Amount = amount
	}
	if c.price != "" {
		price, err := fintrack.ParseMoney(c.price)
		if err != nil {
			return fail(err)
		}
		data.PurchasePrice = price
	}
	if c.apiID != "" {
		data.APIID = c.apiID
	}

	check := fintrack.Investment{Type: investment.Type, Name: data.Name, Amount: data.Amount, APIID: data.APIID}
	if err := check.Validate(); err != nil {
		return fail(err)
	}

	if _, err := store.UpdateInvestment(ctx, id, data); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type investRmCmd struct{}

func (*investRmCmd) Name() string     { return "invest-rm" }
func (*investRmCmd) Synopsis() string { return "delete an investment" }
func (*investRmCmd) Usage() string {
	return `fin invest-rm <id>

  Deletes the given investment.
`
}

func (*investRmCmd) SetFlags(*flag.FlagSet) {}

func (*investRmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := idArg(f)
	if status != subcommands.ExitSuccess {
		return status
	}
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	if err := store.DeleteInvestment(ctx, id); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type coinSearchCmd struct{}

func (*coinSearchCmd) Name() string     { return "coin-search" }
func (*coinSearchCmd) Synopsis() string { return "search the price feed for a coin id" }
func (*coinSearchCmd) Usage() string {
	return `fin coin-search <query>

  Searches the crypto price feed for coins matching the query and shows
  their ids, for use with 'fin invest-add -coin'.

Usage Examples:
$ fin coin-search ethereum
`
}

func (*coinSearchCmd) SetFlags(*flag.FlagSet) {}

func (*coinSearchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one <query> argument is required.")
		return subcommands.ExitUsageError
	}
	options, err := fintrack.NewQuoter().SearchCoins(ctx, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Coins(options))
	return subcommands.ExitSuccess
}
