package domain

import (
	"time"
)

type Category string

const (
	CategorySoilPreparation Category = "SOIL_PREPARATION"
	CategorySowing          Category = "SOWING"
	CategoryPlantProtection Category = "PLANT_PROTECTION"
	CategoryHarvesting      Category = "HARVESTING"
	CategoryTransportation  Category = "TRANSPORTATION"
	CategoryOther           Category = "OTHER"
)

var categories = []Category{
	CategorySoilPreparation,
	CategorySowing,
	CategoryPlantProtection,
	CategoryHarvesting,
	CategoryTransportation,
	CategoryOther,
}

// Categories returns the closed set of equipment categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory never fails: anything that is not exactly one of the enum
// values, including a different letter case, is priced as OTHER.
func ParseCategory(s string) Category {
	c := Category(s)
	for _, known := range categories {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

type Asset struct {
	ID           string     `json:"id"`
	OperatorID   string     `json:"operator_id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Category     Category   `json:"category"`
	Description  string     `json:"description"`
	Location     string     `json:"location"`
	HourlyRate   int        `json:"hourly_rate"` // derived by the pricing engine, never client supplied
	Margin       float64    `json:"margin"`
	Availability bool       `json:"availability"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
	Operator     *User      `json:"operator,omitempty"` // Populated when fetching asset details
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type AssetFilter struct {
	OperatorID    string
	Type          string
	Category      string
	AvailableOnly bool
}
