package fintrack

import (
	"encoding/json"
	"fmt"

	"github.com/etnz/fintrack/date"
	"github.com/google/uuid"
)

// The entity types are the in-memory mirror of the collections the backend
// owns. They are decoded leniently (see Money, Quantity, date.Date): a
// malformed amount mirrors as zero and a malformed date as today, the
// backend copy stays authoritative.

// Expense is a one-time expense.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      Money           `json:"amount"`
	Date        date.Date       `json:"date"`
	Category    ExpenseCategory `json:"category"`
}

// UnmarshalJSON defaults a row with no date key at all to today, the same
// coercion date.Date applies to a malformed value. A dateless expense would
// otherwise silently drop out of the monthly aggregate.
func (e *Expense) UnmarshalJSON(bytes []byte) error {
	type expense Expense
	var raw expense
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return err
	}
	if raw.Date.IsZero() {
		raw.Date = date.Today()
	}
	*e = Expense(raw)
	return nil
}

// Validate checks an expense for correctness before it is sent out.
func (e Expense) Validate() error {
	if e.Amount.IsNegative() {
		return fmt.Errorf("expense amount must not be negative, got %s", e.Amount)
	}
	if _, err := ParseExpenseCategory(string(e.Category)); err != nil {
		return err
	}
	return nil
}

// Subscription is a recurring monthly payment. The "paid" status is never
// stored: it is derived from LastPaidCycle against the current cycle.
type Subscription struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Amount        Money                `json:"amount"`
	PaymentDay    int                  `json:"paymentDay"`
	LastPaidCycle date.Month           `json:"lastPaidCycle"`
	Category      SubscriptionCategory `json:"category"`
}

// Validate checks a subscription for correctness before it is sent out.
func (s Subscription) Validate() error {
	if s.Amount.IsNegative() {
		return fmt.Errorf("subscription amount must not be negative, got %s", s.Amount)
	}
	if s.PaymentDay < 1 || s.PaymentDay > 31 {
		return fmt.Errorf("payment day must be in [1,31], got %d", s.PaymentDay)
	}
	if _, err := ParseSubscriptionCategory(string(s.Category)); err != nil {
		return err
	}
	return nil
}

// SubscriptionStatus is the derived payment state of a subscription for the
// cycle containing a given day.
type SubscriptionStatus int

const (
	// StatusPaid means LastPaidCycle matches the current cycle.
	StatusPaid SubscriptionStatus = iota
	// StatusDueToday means the payment day is today and not yet paid.
	StatusDueToday
	// StatusOverdue means the payment day has passed without payment.
	StatusOverdue
	// StatusPending means the payment day is still ahead.
	StatusPending
)

func (s SubscriptionStatus) String() string {
	switch s {
	case StatusPaid:
		return "Paid"
	case StatusDueToday:
		return "Due Today"
	case StatusOverdue:
		return "Overdue"
	case StatusPending:
		return "Pending"
	default:
		return "unknown"
	}
}

// StatusOn derives the payment status for the cycle containing today.
// Advancing today to the next month without re-toggling reverts a paid
// subscription to Pending or Overdue depending on the payment day.
func (s Subscription) StatusOn(today date.Date) SubscriptionStatus {
	if s.LastPaidCycle == date.MonthOf(today) {
		return StatusPaid
	}
	switch {
	case today.Day() == s.PaymentDay:
		return StatusDueToday
	case today.Day() > s.PaymentDay:
		return StatusOverdue
	default:
		return StatusPending
	}
}

// Investment is a holding of some instrument. InitialValue is the frozen
// cost basis recorded at purchase or edit time; the current value is never
// stored, always derived from the quote map.
type Investment struct {
	ID           uuid.UUID      `json:"id"`
	Type         InstrumentType `json:"type"`
	Name         string         `json:"name"`
	Amount       Quantity       `json:"amount"`
	PurchaseDate date.Date      `json:"purchaseDate"`
	InitialValue Money          `json:"initialValue"`
	APIID        string         `json:"apiId,omitempty"`
}

// PriceKey returns the instrument key used to look up a unit price: the
// external apiId for coins, the fixed type literal otherwise.
func (i Investment) PriceKey() string {
	if i.Type == InstrumentCoin {
		return i.APIID
	}
	return string(i.Type)
}

// Validate checks an investment for correctness before it is sent out.
func (i Investment) Validate() error {
	if _, err := ParseInstrumentType(string(i.Type)); err != nil {
		return err
	}
	if !i.Amount.IsPositive() {
		return fmt.Errorf("investment amount must be positive, got %s", i.Amount)
	}
	if i.Type.ExternallyPriced() && i.APIID == "" {
		return fmt.Errorf("apiId is required for %s investments", i.Type)
	}
	if !i.Type.ExternallyPriced() && i.APIID != "" {
		return fmt.Errorf("apiId is only valid for %s investments", InstrumentCoin)
	}
	return nil
}

// Asset is a miscellaneous asset such as a bank account or real estate.
type Asset struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Type         AssetType `json:"type"`
	CurrentValue Money     `json:"currentValue"`
	IBAN         string    `json:"iban,omitempty"`
}

// Validate checks an asset for correctness before it is sent out.
func (a Asset) Validate() error {
	if _, err := ParseAssetType(string(a.Type)); err != nil {
		return err
	}
	if a.Type == AssetBankAccount && a.IBAN == "" {
		return fmt.Errorf("iban is required for %s assets", AssetBankAccount)
	}
	if a.Type != AssetBankAccount && a.IBAN != "" {
		return fmt.Errorf("iban is only valid for %s assets", AssetBankAccount)
	}
	return nil
}
