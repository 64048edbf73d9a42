package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
)

func TestDashboardOverBudget(t *testing.T) {
	today := date.New(2026, 8, 28)
	expenses := []fintrack.Expense{{Amount: fintrack.M(75), Date: today}}
	board := fintrack.NewDashboard(nil, expenses, nil, nil, fintrack.M(50), today)

	got := Dashboard(board)
	for _, want := range []string{"Financial Summary on 2026-08-28", "Limit Exceeded", "$75.00", "$25.00 over"} {
		if !strings.Contains(got, want) {
			t.Errorf("dashboard missing %q:\n%s", want, got)
		}
	}
}

func TestDashboardUnderBudget(t *testing.T) {
	today := date.New(2026, 8, 28)
	expenses := []fintrack.Expense{{Amount: fintrack.M(75), Date: today}}
	board := fintrack.NewDashboard(nil, expenses, nil, nil, fintrack.M(100), today)

	got := Dashboard(board)
	if !strings.Contains(got, "Remaining Budget: $25.00 of $100.00") {
		t.Errorf("dashboard missing the remaining budget line:\n%s", got)
	}
	if strings.Contains(got, "Limit Exceeded") {
		t.Errorf("dashboard wrongly reports an exceeded limit:\n%s", got)
	}
}

func TestDashboardNoLimit(t *testing.T) {
	board := fintrack.NewDashboard(nil, nil, nil, nil, fintrack.M(0), date.New(2026, 8, 28))
	got := Dashboard(board)
	if strings.Contains(got, "Remaining Budget") || strings.Contains(got, "Limit Exceeded") {
		t.Errorf("dashboard shows budget lines with no limit set:\n%s", got)
	}
}

func TestExpenses(t *testing.T) {
	expenses := []fintrack.Expense{
		{Description: "Coffee", Amount: fintrack.M(4.5), Date: date.New(2026, 8, 2), Category: fintrack.CategoryFood},
		{Description: "Mystery", Amount: fintrack.M(3), Date: date.New(2026, 8, 3), Category: "snacks"},
	}
	got := Expenses(expenses)
	for _, want := range []string{"Coffee", "$4.50", "By Category", "food"} {
		if !strings.Contains(got, want) {
			t.Errorf("expenses missing %q:\n%s", want, got)
		}
	}
	// Unknown categories display as the "other" bucket.
	if strings.Contains(got, "snacks") {
		t.Errorf("expenses leaked an unknown category:\n%s", got)
	}
}

func TestExpensesEmpty(t *testing.T) {
	if got := Expenses(nil); !strings.Contains(got, "No expenses recorded yet.") {
		t.Errorf("empty expenses report:\n%s", got)
	}
}

func TestSubscriptions(t *testing.T) {
	on := date.New(2026, 8, 28)
	subscriptions := []fintrack.Subscription{
		{Name: "Netflix", Amount: fintrack.M(15.99), PaymentDay: 12, LastPaidCycle: date.MonthOf(on), Category: fintrack.SubscriptionStreaming},
		{Name: "Gym", Amount: fintrack.M(30), PaymentDay: 12, Category: fintrack.SubscriptionHealth},
	}
	got := Subscriptions(subscriptions, on)
	for _, want := range []string{"Netflix", "Paid", "Gym", "Overdue", "Total monthly cost: $45.99"} {
		if !strings.Contains(got, want) {
			t.Errorf("subscriptions missing %q:\n%s", want, got)
		}
	}
}

func TestHoldings(t *testing.T) {
	quotes := fintrack.QuoteMap{"bitcoin": fintrack.M(40000)}
	investments := []fintrack.Investment{
		{Name: "BTC", Type: fintrack.InstrumentCoin, APIID: "bitcoin", Amount: fintrack.Q(0.5), InitialValue: fintrack.M(15000)},
	}
	got := Holdings(fintrack.Allocation(investments, quotes))
	for _, want := range []string{"BTC", "$15,000.00", "$20,000.00", "+$5,000.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("holdings missing %q:\n%s", want, got)
		}
	}
}

func TestAssetsBankAccount(t *testing.T) {
	assets := []fintrack.Asset{
		{Name: "Checking", Type: fintrack.AssetBankAccount, IBAN: "DE89370400440532013000"},
		{Name: "Apartment", Type: fintrack.AssetRealEstate, CurrentValue: fintrack.M(250000)},
	}
	got := Assets(assets)
	for _, want := range []string{"Checking", "DE89370400440532013000", "Apartment", "$250,000.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("assets missing %q:\n%s", want, got)
		}
	}
}

func TestMonthlyTrend(t *testing.T) {
	totals := []fintrack.MonthlyTotal{
		{Month: "2026-07", TotalSpending: fintrack.M(420)},
		{Month: "2026-08", TotalSpending: fintrack.M(75.49)},
	}
	got := MonthlyTrend(totals)
	for _, want := range []string{"2026-07", "$420.00", "2026-08", "$75.49"} {
		if !strings.Contains(got, want) {
			t.Errorf("trend missing %q:\n%s", want, got)
		}
	}
}

func TestQuotesSorted(t *testing.T) {
	quotes := fintrack.QuoteMap{"gold": fintrack.M(65), "bitcoin": fintrack.M(40000)}
	got := Quotes(quotes)
	if strings.Index(got, "bitcoin") > strings.Index(got, "gold") {
		t.Errorf("quotes are not sorted by instrument:\n%s", got)
	}
}
