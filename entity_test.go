package fintrack

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/etnz/fintrack/date"
)

func TestSubscriptionStatusOn(t *testing.T) {
	paid := date.MonthOf(date.New(2026, 8, 1))
	tests := []struct {
		name  string
		sub   Subscription
		today date.Date
		want  SubscriptionStatus
	}{
		{"paid this cycle", Subscription{PaymentDay: 12, LastPaidCycle: paid}, date.New(2026, 8, 20), StatusPaid},
		{"paid even on payment day", Subscription{PaymentDay: 12, LastPaidCycle: paid}, date.New(2026, 8, 12), StatusPaid},
		{"due today", Subscription{PaymentDay: 12}, date.New(2026, 8, 12), StatusDueToday},
		{"overdue", Subscription{PaymentDay: 12}, date.New(2026, 8, 13), StatusOverdue},
		{"pending", Subscription{PaymentDay: 12}, date.New(2026, 8, 11), StatusPending},
		{"never paid", Subscription{PaymentDay: 31}, date.New(2026, 8, 1), StatusPending},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sub.StatusOn(tc.today); got != tc.want {
				t.Errorf("StatusOn(%s) = %s want %s", tc.today, got, tc.want)
			}
		})
	}
}

// Advancing to the next month without re-paying reverts a paid
// subscription to pending, then overdue past the payment day.
func TestSubscriptionStatusNextCycle(t *testing.T) {
	sub := Subscription{PaymentDay: 12, LastPaidCycle: date.MonthOf(date.New(2026, 8, 1))}

	if got := sub.StatusOn(date.New(2026, 8, 20)); got != StatusPaid {
		t.Fatalf("status in paid cycle = %s want Paid", got)
	}
	if got := sub.StatusOn(date.New(2026, 9, 1)); got != StatusPending {
		t.Errorf("status at next cycle start = %s want Pending", got)
	}
	if got := sub.StatusOn(date.New(2026, 9, 12)); got != StatusDueToday {
		t.Errorf("status on next payment day = %s want Due Today", got)
	}
	if got := sub.StatusOn(date.New(2026, 9, 13)); got != StatusOverdue {
		t.Errorf("status past next payment day = %s want Overdue", got)
	}
}

func TestExpenseValidate(t *testing.T) {
	tests := []struct {
		name    string
		expense Expense
		wantErr bool
	}{
		{"valid", Expense{Description: "Coffee", Amount: M(4.5), Category: CategoryFood}, false},
		{"negative amount", Expense{Amount: M(-1), Category: CategoryFood}, true},
		{"unknown category", Expense{Amount: M(1), Category: "snacks"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.expense.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSubscriptionValidate(t *testing.T) {
	tests := []struct {
		name    string
		sub     Subscription
		wantErr bool
	}{
		{"valid", Subscription{Amount: M(15.99), PaymentDay: 12, Category: SubscriptionStreaming}, false},
		{"day too small", Subscription{Amount: M(1), PaymentDay: 0, Category: SubscriptionOther}, true},
		{"day too large", Subscription{Amount: M(1), PaymentDay: 32, Category: SubscriptionOther}, true},
		{"negative amount", Subscription{Amount: M(-1), PaymentDay: 1, Category: SubscriptionOther}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.sub.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestInvestmentValidate(t *testing.T) {
	tests := []struct {
		name    string
		inv     Investment
		wantErr bool
	}{
		{"coin with api id", Investment{Type: InstrumentCoin, Amount: Q(0.5), APIID: "bitcoin"}, false},
		{"coin without api id", Investment{Type: InstrumentCoin, Amount: Q(0.5)}, true},
		{"gold with api id", Investment{Type: InstrumentGold, Amount: Q(10), APIID: "bitcoin"}, true},
		{"gold", Investment{Type: InstrumentGold, Amount: Q(10)}, false},
		{"zero amount", Investment{Type: InstrumentGold, Amount: Q(0)}, true},
		{"unknown type", Investment{Type: "stock", Amount: Q(1)}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.inv.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestInvestmentPriceKey(t *testing.T) {
	coin := Investment{Type: InstrumentCoin, APIID: "bitcoin"}
	if got := coin.PriceKey(); got != "bitcoin" {
		t.Errorf("coin PriceKey = %q want bitcoin", got)
	}
	gold := Investment{Type: InstrumentGold, APIID: ""}
	if got := gold.PriceKey(); got != "gold" {
		t.Errorf("gold PriceKey = %q want gold", got)
	}
}

func TestAssetValidate(t *testing.T) {
	tests := []struct {
		name    string
		asset   Asset
		wantErr bool
	}{
		{"bank account with iban", Asset{Type: AssetBankAccount, IBAN: "DE89370400440532013000"}, false},
		{"bank account without iban", Asset{Type: AssetBankAccount}, true},
		{"cash with iban", Asset{Type: AssetCash, IBAN: "DE89"}, true},
		{"real estate", Asset{Type: AssetRealEstate, CurrentValue: M(250000)}, false},
		{"unknown type", Asset{Type: "boat"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.asset.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v wantErr %v", err, tc.wantErr)
			}
		})
	}
}

// A server row with tagged decimals and instant dates mirrors cleanly.
func TestExpenseDecodesWireShapes(t *testing.T) {
	raw := `{
		"id": "c1a6bdb0-93a0-4f59-8b5f-2f2d4b6ff001",
		"description": "Coffee",
		"amount": {"floatValue": 4.5},
		"date": "2026-08-28T10:00:00Z",
		"category": "food"
	}`
	var expense Expense
	if err := json.Unmarshal([]byte(raw), &expense); err != nil {
		t.Fatal(err)
	}
	if !expense.Amount.Equal(M(4.5)) {
		t.Errorf("amount = %s want $4.50", expense.Amount)
	}
	if expense.Date != date.New(2026, 8, 28) {
		t.Errorf("date = %s want 2026-08-28", expense.Date)
	}
	if expense.Category != CategoryFood {
		t.Errorf("category = %s want food", expense.Category)
	}
}

// A row with no date key at all dates the expense today, so it still
// counts in the monthly aggregate.
func TestExpenseMissingDateDefaultsToday(t *testing.T) {
	raw := `{
		"id": "c1a6bdb0-93a0-4f59-8b5f-2f2d4b6ff001",
		"description": "Coffee",
		"amount": 4.5,
		"category": "food"
	}`
	var expense Expense
	if err := json.Unmarshal([]byte(raw), &expense); err != nil {
		t.Fatal(err)
	}
	if !expense.Date.IsToday() {
		t.Errorf("date = %s want today", expense.Date)
	}
	if got := MonthlySpend(nil, []Expense{expense}, date.Today()); !got.Equal(M(4.5)) {
		t.Errorf("MonthlySpend = %s want $4.50", got)
	}
}

// A never-paid subscription marshals its cycle as the empty token.
func TestSubscriptionMarshalNoCycle(t *testing.T) {
	b, err := json.Marshal(Subscription{Name: "Netflix", Amount: M(15.99), PaymentDay: 12, Category: SubscriptionStreaming})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"lastPaidCycle":""`) {
		t.Errorf("marshal = %s want an empty lastPaidCycle token", b)
	}
}

func TestCategoryBucket(t *testing.T) {
	if got := ExpenseCategory("snacks").Bucket(); got != CategoryOther {
		t.Errorf("unknown category buckets to %s want other", got)
	}
	if got := CategoryFood.Bucket(); got != CategoryFood {
		t.Errorf("known category buckets to %s want food", got)
	}
	if got := ExpenseCategory("").Bucket(); got != CategoryOther {
		t.Errorf("empty category buckets to %s want other", got)
	}
}
