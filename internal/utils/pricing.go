package utils

import (
	"fmt"
	"math"
	"time"

	"dhara-backend/internal/domain"
)

const (
	// MinMargin and MaxMargin bound the profit margin an operator may choose.
	MinMargin = 0.10
	MaxMargin = 0.40
	// DefaultMargin is applied when an operator does not choose one.
	DefaultMargin = 0.20

	daysPerYear = 365

	newAssetAgeYears   = 2
	oldAssetAgeYears   = 7
	newAssetMultiplier = 1.25
	oldAssetMultiplier = 0.85
)

// PricingMetric holds the cost parameters of one equipment category.
// All money values are whole rupees.
type PricingMetric struct {
	PurchasePrice       int
	LifeYears           int
	EarningDaysPerYear  int
	HoursPerDay         int
	InsurancePerHour    int
	RegistrationPerHour int
	PermitPerHour       int
	OperatorWagePerHour int
}

// LegalPerHour is the sum of insurance, registration and permit fees.
func (m PricingMetric) LegalPerHour() int {
	return m.InsurancePerHour + m.RegistrationPerHour + m.PermitPerHour
}

// PricingTable maps a category to its metric. It is built once and never mutated.
type PricingTable struct {
	metrics map[domain.Category]PricingMetric
}

// DefaultPricingTable returns the standard per-category cost parameters.
func DefaultPricingTable() *PricingTable {
	return &PricingTable{metrics: map[domain.Category]PricingMetric{
		domain.CategorySoilPreparation: {800000, 10, 120, 8, 20, 10, 5, 150},
		domain.CategorySowing:          {500000, 8, 90, 8, 15, 8, 4, 150},
		domain.CategoryPlantProtection: {300000, 5, 60, 6, 10, 5, 3, 120},
		domain.CategoryHarvesting:      {2500000, 12, 60, 10, 50, 25, 10, 200},
		domain.CategoryTransportation:  {600000, 15, 200, 8, 15, 10, 5, 180},
		domain.CategoryOther:           {400000, 10, 120, 8, 10, 5, 2, 150},
	}}
}

// Lookup returns the metric for category, falling back to OTHER for anything unknown.
func (t *PricingTable) Lookup(category string) PricingMetric {
	if m, ok := t.metrics[domain.ParseCategory(category)]; ok {
		return m
	}
	return t.metrics[domain.CategoryOther]
}

// PriceBreakdown is the itemised result of a quote.
type PriceBreakdown struct {
	Category            domain.Category `json:"category"`
	DepreciationPerHour float64         `json:"depreciation_per_hour"`
	AgeYears            float64         `json:"age_years"`
	AgeMultiplier       float64         `json:"age_multiplier"`
	AdjustedCostPerHour float64         `json:"adjusted_cost_per_hour"`
	LegalPerHour        int             `json:"legal_per_hour"`
	OperatorWagePerHour int             `json:"operator_wage_per_hour"`
	BaseCost            int             `json:"base_cost"`
	Margin              float64         `json:"margin"`
	FinalPrice          int             `json:"final_price"`
}

// PricingEngine derives hourly rental rates from category metrics and asset age.
// It performs no I/O and is safe for concurrent use.
type PricingEngine struct {
	table *PricingTable
	clock Clock
}

func NewPricingEngine(table *PricingTable, clock Clock) *PricingEngine {
	if table == nil {
		table = DefaultPricingTable()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &PricingEngine{table: table, clock: clock}
}

// CalculateBaseCost returns the rounded hourly cost of running an asset before margin.
// A nil purchaseDate applies no age adjustment.
func (e *PricingEngine) CalculateBaseCost(category string, purchaseDate *time.Time) int {
	return e.breakdown(category, purchaseDate).BaseCost
}

// CalculateFinalPrice applies margin to baseCost. The margin is not range checked here.
func (e *PricingEngine) CalculateFinalPrice(baseCost int, margin float64) int {
	return roundHalfUp(float64(baseCost) * (1 + margin))
}

// Quote returns the full price breakdown for the given inputs.
func (e *PricingEngine) Quote(category string, purchaseDate *time.Time, margin float64) PriceBreakdown {
	b := e.breakdown(category, purchaseDate)
	b.Margin = margin
	b.FinalPrice = e.CalculateFinalPrice(b.BaseCost, margin)
	return b
}

func (e *PricingEngine) breakdown(category string, purchaseDate *time.Time) PriceBreakdown {
	m := e.table.Lookup(category)

	costPerDay := float64(m.PurchasePrice) / float64(m.LifeYears*m.EarningDaysPerYear)
	costPerHour := costPerDay / float64(m.HoursPerDay)

	b := PriceBreakdown{
		Category:            domain.ParseCategory(category),
		DepreciationPerHour: costPerHour,
		AgeMultiplier:       1,
		LegalPerHour:        m.LegalPerHour(),
		OperatorWagePerHour: m.OperatorWagePerHour,
	}

	if purchaseDate != nil {
		b.AgeYears = e.clock.Now().Sub(*purchaseDate).Hours() / 24 / daysPerYear
		switch {
		case b.AgeYears < newAssetAgeYears:
			b.AgeMultiplier = newAssetMultiplier
		case b.AgeYears > oldAssetAgeYears:
			b.AgeMultiplier = oldAssetMultiplier
		}
	}

	b.AdjustedCostPerHour = costPerHour * b.AgeMultiplier
	b.BaseCost = roundHalfUp(b.AdjustedCostPerHour + float64(b.LegalPerHour) + float64(b.OperatorWagePerHour))
	return b
}

// roundHalfUp rounds halves toward positive infinity, so -0.5 becomes 0.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// ValidateMargin reports whether margin lies within [MinMargin, MaxMargin].
func ValidateMargin(margin float64) error {
	if math.IsNaN(margin) || margin < MinMargin || margin > MaxMargin {
		return fmt.Errorf("margin must be between %.2f and %.2f", MinMargin, MaxMargin)
	}
	return nil
}
