package fintrack

import (
	"sort"

	"github.com/etnz/fintrack/date"
)

// The valuation functions are pure: given the same entity snapshot, quote
// map and day, they produce the same figures every time. Nothing here is
// cached or accumulated.

// CurrentValue returns the current market value of a holding: amount times
// the unit price for its instrument key, zero when no quote is present.
func CurrentValue(inv Investment, quotes QuoteMap) Money {
	return quotes.PriceFor(inv.PriceKey()).Mul(inv.Amount)
}

// ProfitLoss returns the gain of a holding over its frozen cost basis.
func ProfitLoss(inv Investment, quotes QuoteMap) Money {
	return CurrentValue(inv, quotes).Sub(inv.InitialValue)
}

// MonthlySpend returns the aggregate spend for the month containing today:
// the sum of all subscription monthly amounts plus the sum of one-time
// expenses dated in that month.
func MonthlySpend(subscriptions []Subscription, expenses []Expense, today date.Date) Money {
	total := M(0)
	for _, sub := range subscriptions {
		total = total.Add(sub.Amount)
	}
	month := date.MonthOf(today)
	for _, exp := range expenses {
		if month.Contains(exp.Date) {
			total = total.Add(exp.Amount)
		}
	}
	return total
}

// RemainingBudget returns the user-set spending limit minus the aggregate
// monthly spend. A negative result means the limit is exceeded.
func RemainingBudget(limit Money, spend Money) Money {
	return limit.Sub(spend)
}

// CategoryTotal is the summed spend of one expense category.
type CategoryTotal struct {
	Category ExpenseCategory
	Total    Money
}

// CategoryBreakdown groups expenses by category. Missing or unknown
// categories land in the fixed "other" bucket. The result is sorted by
// descending total.
func CategoryBreakdown(expenses []Expense) []CategoryTotal {
	totals := make(map[ExpenseCategory]Money)
	for _, exp := range expenses {
		bucket := exp.Category.Bucket()
		totals[bucket] = totals[bucket].Add(exp.Amount)
	}
	breakdown := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		breakdown = append(breakdown, CategoryTotal{category, total})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Total.Equal(breakdown[j].Total) {
			return breakdown[j].Total.LessThan(breakdown[i].Total)
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}

// Holding is the valued view of one investment.
type Holding struct {
	Investment   Investment
	CurrentValue Money
	ProfitLoss   Money
}

// Allocation values every holding against the quote map, preserving the
// holdings order.
func Allocation(investments []Investment, quotes QuoteMap) []Holding {
	holdings := make([]Holding, 0, len(investments))
	for _, inv := range investments {
		holdings = append(holdings, Holding{
			Investment:   inv,
			CurrentValue: CurrentValue(inv, quotes),
			ProfitLoss:   ProfitLoss(inv, quotes),
		})
	}
	return holdings
}

// Dashboard is the financial summary report: monthly spending against the
// user-set limit, and the portfolio totals.
type Dashboard struct {
	On date.Date

	SubscriptionTotal Money // sum of all subscription monthly amounts
	MonthExpenseTotal Money // one-time expenses dated in the current month
	TotalSpend        Money

	Limit        Money
	Remaining    Money
	OverBudget   bool
	LimitEnabled bool

	TotalInitialValue Money
	TotalCurrentValue Money
	TotalProfitLoss   Money
}

// NewDashboard derives the financial summary from an entity snapshot, the
// quote map and the spending limit, all evaluated on the given day.
func NewDashboard(subscriptions []Subscription, expenses []Expense, investments []Investment, quotes QuoteMap, limit Money, on date.Date) *Dashboard {
	d := &Dashboard{On: on, Limit: limit, LimitEnabled: limit.IsPositive()}

	for _, sub := range subscriptions {
		d.SubscriptionTotal = d.SubscriptionTotal.Add(sub.Amount)
	}
	month := date.MonthOf(on)
	for _, exp := range expenses {
		if month.Contains(exp.Date) {
			d.MonthExpenseTotal = d.MonthExpenseTotal.Add(exp.Amount)
		}
	}
	d.TotalSpend = d.SubscriptionTotal.Add(d.MonthExpenseTotal)
	d.Remaining = RemainingBudget(limit, d.TotalSpend)
	d.OverBudget = d.LimitEnabled && d.Remaining.IsNegative()

	for _, h := range Allocation(investments, quotes) {
		d.TotalInitialValue = d.TotalInitialValue.Add(h.Investment.InitialValue)
		d.TotalCurrentValue = d.TotalCurrentValue.Add(h.CurrentValue)
	}
	d.TotalProfitLoss = d.TotalCurrentValue.Sub(d.TotalInitialValue)
	return d
}
