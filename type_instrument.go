package fintrack

import "fmt"

// InstrumentType classifies an investment holding. The set is the union of
// the variants the backend has been observed to serve: coin is priced
// externally by apiId, gold and silver by the metals spot feed, dollar and
// euro by the forex feed, and interest is pegged at 1.0.
type InstrumentType string

const (
	InstrumentCoin     InstrumentType = "coin"
	InstrumentGold     InstrumentType = "gold"
	InstrumentSilver   InstrumentType = "silver"
	InstrumentDollar   InstrumentType = "dollar"
	InstrumentEuro     InstrumentType = "euro"
	InstrumentInterest InstrumentType = "interest"
)

// InstrumentTypes lists all valid instrument types.
var InstrumentTypes = []InstrumentType{
	InstrumentCoin, InstrumentGold, InstrumentSilver,
	InstrumentDollar, InstrumentEuro, InstrumentInterest,
}

// ParseInstrumentType parses a string into an InstrumentType.
func ParseInstrumentType(s string) (InstrumentType, error) {
	for _, t := range InstrumentTypes {
		if s == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown instrument type: %q", s)
}

// ExternallyPriced reports whether the type requires an apiId for quote
// lookups.
func (t InstrumentType) ExternallyPriced() bool { return t == InstrumentCoin }
