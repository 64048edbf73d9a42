package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

type assetAddCmd struct {
	name  string
	kind  string
	value string
	iban  string
}

func (*assetAddCmd) Name() string     { return "asset-add" }
func (*assetAddCmd) Synopsis() string { return "record a miscellaneous asset" }
func (*assetAddCmd) Usage() string {
	return `fin asset-add -name <name> -type <type> [-value <amount>] [-iban <iban>]

  Records an asset outside the priced portfolio: a bank account, cash, or
  real estate. Bank accounts require an IBAN and carry no value, the
  other types carry a declared value.

Usage Examples:
$ fin asset-add -name "Checking" -type "Bank Account" -iban DE89370400440532013000
$ fin asset-add -name "Apartment" -type "Real Estate" -value 250000
`
}

func (c *assetAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the asset")
	f.StringVar(&c.kind, "type", "", "Asset type (Bank Account, Cash, Real Estate, Other)")
	f.StringVar(&c.value, "value", "", "Declared value of the asset")
	f.StringVar(&c.iban, "iban", "", "IBAN (Bank Account type only)")
}

func (c *assetAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.kind == "" {
		fmt.Fprintln(os.Stderr, "Error: -name and -type are required.")
		return subcommands.ExitUsageError
	}
	kind, err := fintrack.ParseAssetType(c.kind)
	if err != nil {
		return fail(err)
	}
	var value fintrack.Money
	if c.value != "" {
		value, err = fintrack.ParseMoney(c.value)
		if err != nil {
			return fail(err)
		}
	}

	asset := fintrack.Asset{Name: c.name, Type: kind, CurrentValue: value, IBAN: c.iban}
	if err := asset.Validate(); err != nil {
		return fail(err)
	}

	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	if _, err := store.AddAsset(ctx, fintrack.NewAsset{
		Name:         c.name,
		Type:         kind,
		CurrentValue: value,
		IBAN:         c.iban,
	}); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type assetListCmd struct{}

func (*assetListCmd) Name() string     { return "asset-list" }
func (*assetListCmd) Synopsis() string { return "list miscellaneous assets" }
func (*assetListCmd) Usage() string {
	return `fin asset-list

  Lists all recorded assets.
`
}

func (*assetListCmd) SetFlags(*flag.FlagSet) {}

func (*assetListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Assets(store.Assets()))
	return subcommands.ExitSuccess
}

type assetRmCmd struct{}

func (*assetRmCmd) Name() string     { return "asset-rm" }
func (*assetRmCmd) Synopsis() string { return "delete an asset" }
func (*assetRmCmd) Usage() string {
	return `fin asset-rm <id>

  Deletes the given asset.
`
}

func (*assetRmCmd) SetFlags(*flag.FlagSet) {}

func (*assetRmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := idArg(f)
	if status != subcommands.ExitSuccess {
		return status
	}
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	if err := store.DeleteAsset(ctx, id); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
