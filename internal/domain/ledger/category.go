package ledger

import "fmt"

// Category groups transaction types for profit and loss reporting
type Category string

const (
	// CategoryBountyRevenue is income from correct arrests
	CategoryBountyRevenue Category = "BOUNTY_REVENUE"

	// CategoryPenalties is money lost to wrong arrests
	CategoryPenalties Category = "PENALTIES"

	// CategoryDroneInvestments is money spent on the drone fleet
	CategoryDroneInvestments Category = "DRONE_INVESTMENTS"

	// CategoryAdjustments covers manual credits and debits
	CategoryAdjustments Category = "ADJUSTMENTS"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryBountyRevenue,
		CategoryPenalties,
		CategoryDroneInvestments,
		CategoryAdjustments,
	}
}

// TypeToCategoryMap maps transaction types to their categories
var TypeToCategoryMap = map[TransactionType]Category{
	TransactionTypeArrestReward:       CategoryBountyRevenue,
	TransactionTypeWrongArrestPenalty: CategoryPenalties,
	TransactionTypeDronePurchase:      CategoryDroneInvestments,
	TransactionTypeAdjustmentCredit:   CategoryAdjustments,
	TransactionTypeAdjustmentDebit:    CategoryAdjustments,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryBountyRevenue, CategoryPenalties, CategoryDroneInvestments, CategoryAdjustments:
		return true
	default:
		return false
	}
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
