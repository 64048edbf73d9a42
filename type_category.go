package fintrack

import "fmt"

// ExpenseCategory classifies a one-time expense.
type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "food"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryBills         ExpenseCategory = "bills"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryEducation     ExpenseCategory = "education"
	CategoryTravel        ExpenseCategory = "travel"
	CategoryOther         ExpenseCategory = "other"
)

// ExpenseCategories lists all valid expense categories.
var ExpenseCategories = []ExpenseCategory{
	CategoryFood, CategoryTransport, CategoryBills, CategoryShopping,
	CategoryEntertainment, CategoryEducation, CategoryTravel, CategoryOther,
}

// ParseExpenseCategory parses a string into an ExpenseCategory.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	for _, c := range ExpenseCategories {
		if s == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown expense category: %q", s)
}

// Bucket returns the category itself, or the fixed "other" bucket when the
// category is missing or not part of the enum.
func (c ExpenseCategory) Bucket() ExpenseCategory {
	if _, err := ParseExpenseCategory(string(c)); err != nil {
		return CategoryOther
	}
	return c
}

// SubscriptionCategory classifies a recurring subscription.
type SubscriptionCategory string

const (
	SubscriptionStreaming SubscriptionCategory = "streaming"
	SubscriptionSoftware  SubscriptionCategory = "software"
	SubscriptionGaming    SubscriptionCategory = "gaming"
	SubscriptionUtilities SubscriptionCategory = "utilities"
	SubscriptionHealth    SubscriptionCategory = "health"
	SubscriptionOther     SubscriptionCategory = "other"
)

// SubscriptionCategories lists all valid subscription categories.
var SubscriptionCategories = []SubscriptionCategory{
	SubscriptionStreaming, SubscriptionSoftware, SubscriptionGaming,
	SubscriptionUtilities, SubscriptionHealth, SubscriptionOther,
}

// ParseSubscriptionCategory parses a string into a SubscriptionCategory.
func ParseSubscriptionCategory(s string) (SubscriptionCategory, error) {
	for _, c := range SubscriptionCategories {
		if s == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown subscription category: %q", s)
}
