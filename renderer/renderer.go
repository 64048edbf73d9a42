// Package renderer builds the markdown views of the tracker's reports.
package renderer

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	md "github.com/nao1215/markdown"
)

// Dashboard renders the financial summary report.
func Dashboard(d *fintrack.Dashboard) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Financial Summary on %s", d.On))

	if d.LimitEnabled {
		if d.OverBudget {
			doc.PlainText(fmt.Sprintf("**Limit Exceeded**: %s of %s spent (%s over)", d.TotalSpend, d.Limit, d.Remaining.Neg()))
		} else {
			doc.PlainText(fmt.Sprintf("Remaining Budget: %s of %s", d.Remaining, d.Limit))
		}
	}

	doc.H2("Monthly Spending")
	doc.Table(md.TableSet{
		Header: []string{"", "Amount"},
		Rows: [][]string{
			{"Subscriptions", d.SubscriptionTotal.String()},
			{"One-Time Expenses", d.MonthExpenseTotal.String()},
			{"Total", d.TotalSpend.String()},
		},
	})

	doc.H2("Investments")
	doc.Table(md.TableSet{
		Header: []string{"", "Amount"},
		Rows: [][]string{
			{"Cost Basis", d.TotalInitialValue.String()},
			{"Current Value", d.TotalCurrentValue.String()},
			{"Profit/Loss", d.TotalProfitLoss.SignedString()},
		},
	})

	return doc.String()
}

// Expenses renders the expense list with a per-category breakdown.
func Expenses(expenses []fintrack.Expense) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Expenses")
	if len(expenses) == 0 {
		doc.PlainText("No expenses recorded yet.")
		return doc.String()
	}

	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			e.Date.String(), e.Description, string(e.Category.Bucket()), e.Amount.String(), e.ID.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Description", "Category", "Amount", "ID"},
		Rows:   rows,
	})

	doc.H2("By Category")
	breakdown := fintrack.CategoryBreakdown(expenses)
	catRows := make([][]string, 0, len(breakdown))
	for _, entry := range breakdown {
		catRows = append(catRows, []string{string(entry.Category), entry.Total.String()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Category", "Total"},
		Rows:   catRows,
	})

	return doc.String()
}

// Subscriptions renders the subscription list with derived payment status.
func Subscriptions(subscriptions []fintrack.Subscription, on date.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Monthly Subscriptions")
	if len(subscriptions) == 0 {
		doc.PlainText("No subscriptions added yet.")
		return doc.String()
	}

	total := fintrack.M(0)
	rows := make([][]string, 0, len(subscriptions))
	for _, s := range subscriptions {
		rows = append(rows, []string{
			s.Name, s.Amount.String(), fmt.Sprintf("Day %d", s.PaymentDay),
			s.StatusOn(on).String(), string(s.Category), s.ID.String(),
		})
		total = total.Add(s.Amount)
	}
	doc.Table(md.TableSet{
		Header: []string{"Name", "Amount", "Payment", "Status", "Category", "ID"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("Total monthly cost: %s", total))

	return doc.String()
}

// Holdings renders the valued investment list.
func Holdings(holdings []fintrack.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Investment Portfolio")
	if len(holdings) == 0 {
		doc.PlainText("No investments added yet.")
		return doc.String()
	}

	totalValue, totalPL := fintrack.M(0), fintrack.M(0)
	rows := make([][]string, 0, len(holdings))
	for _, h := range holdings {
		inv := h.Investment
		rows = append(rows, []string{
			inv.Name, string(inv.Type), inv.Amount.String(),
			inv.InitialValue.String(), h.CurrentValue.String(), h.ProfitLoss.SignedString(),
			inv.ID.String(),
		})
		totalValue = totalValue.Add(h.CurrentValue)
		totalPL = totalPL.Add(h.ProfitLoss)
	}
	doc.Table(md.TableSet{
		Header: []string{"Name", "Type", "Amount", "Cost Basis", "Value", "P/L", "ID"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("Total value: %s (%s)", totalValue, totalPL.SignedString()))

	return doc.String()
}

// Assets renders the asset list. Bank accounts display their IBAN instead
// of a value.
func Assets(assets []fintrack.Asset) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Assets")
	if len(assets) == 0 {
		doc.PlainText("No assets added yet.")
		return doc.String()
	}

	rows := make([][]string, 0, len(assets))
	for _, a := range assets {
		value := a.CurrentValue.String()
		detail := ""
		if a.Type == fintrack.AssetBankAccount {
			value, detail = "-", a.IBAN
		}
		rows = append(rows, []string{a.Name, string(a.Type), value, detail, a.ID.String()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Name", "Type", "Value", "IBAN", "ID"},
		Rows:   rows,
	})

	return doc.String()
}

// MonthlyTrend renders the backend-computed spending history.
func MonthlyTrend(totals []fintrack.MonthlyTotal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Monthly Spending Trend")
	if len(totals) == 0 {
		doc.PlainText("No spending history yet.")
		return doc.String()
	}

	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{t.Month, t.TotalSpending.String()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Month", "Total Spending"},
		Rows:   rows,
	})

	return doc.String()
}

// Quotes renders the current instrument-key price map.
func Quotes(quotes fintrack.QuoteMap) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Current Prices")
	if len(quotes) == 0 {
		doc.PlainText("No quotes available.")
		return doc.String()
	}

	keys := make([]string, 0, len(quotes))
	for key := range quotes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, quotes[key].String()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Instrument", "Unit Price"},
		Rows:   rows,
	})

	return doc.String()
}

// Coins renders coin identifier search results.
func Coins(options []fintrack.CoinOption) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Coin Search Results")
	if len(options) == 0 {
		doc.PlainText("No matching coins.")
		return doc.String()
	}

	rows := make([][]string, 0, len(options))
	for _, o := range options {
		rows = append(rows, []string{o.ID, o.Name, o.Symbol})
	}
	doc.Table(md.TableSet{
		Header: []string{"apiId", "Name", "Symbol"},
		Rows:   rows,
	})

	return doc.String()
}
