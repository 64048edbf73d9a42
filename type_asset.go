package fintrack

import "fmt"

// AssetType classifies a miscellaneous asset.
type AssetType string

const (
	AssetBankAccount AssetType = "Bank Account"
	AssetCash        AssetType = "Cash"
	AssetRealEstate  AssetType = "Real Estate"
	AssetOther       AssetType = "Other"
)

// AssetTypes lists all valid asset types.
var AssetTypes = []AssetType{AssetBankAccount, AssetCash, AssetRealEstate, AssetOther}

// ParseAssetType parses a string into an AssetType.
func ParseAssetType(s string) (AssetType, error) {
	for _, t := range AssetTypes {
		if s == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown asset type: %q", s)
}
