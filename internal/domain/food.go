package domain

import (
	"fmt"
	"time"
)

// Source kinds for FoodRecord.Source.Kind
const (
	SourceKindUSDA   = "usda"
	SourceKindManual = "manual"
)

// FoodRecord is the canonical food produced once per lookup and treated as immutable afterwards
type FoodRecord struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand,omitempty"`
	BaseServing    BaseServing     `json:"baseServing"`
	ServingOptions []ServingOption `json:"servingOptions"`
	Macros         Macros          `json:"macros"`
	Micronutrients Micronutrients  `json:"micronutrients"`
	Source         Source          `json:"source"`
}

// BaseServing is the reference serving the food's nutrient values are expressed against
type BaseServing struct {
	Unit        string  `json:"unit"`
	AmountGrams float64 `json:"amountGrams"`
	Description string  `json:"description"`
}

// ServingOption is a labelled serving choice
type ServingOption struct {
	Label         string  `json:"label"`
	AmountInGrams float64 `json:"amountInGrams"`
}

// Macros holds energy and macronutrients per base serving
type Macros struct {
	Calories float64 `json:"calories"` // kcal
	ProteinG float64 `json:"proteinG"`
	CarbsG   float64 `json:"carbsG"`
	FatG     float64 `json:"fatG"`
}

// Micronutrients holds the tracked micronutrients per base serving
type Micronutrients struct {
	FiberG        float64 `json:"fiberG"`
	SugarG        float64 `json:"sugarG"`
	SodiumMg      float64 `json:"sodiumMg"`
	CholesterolMg float64 `json:"cholesterolMg"`
	PotassiumMg   float64 `json:"potassiumMg"`
}

// Scale returns a copy with every amount multiplied by factor
func (m Micronutrients) Scale(factor float64) Micronutrients {
	return Micronutrients{
		FiberG:        m.FiberG * factor,
		SugarG:        m.SugarG * factor,
		SodiumMg:      m.SodiumMg * factor,
		CholesterolMg: m.CholesterolMg * factor,
		PotassiumMg:   m.PotassiumMg * factor,
	}
}

// Source records where a FoodRecord came from
type Source struct {
	Kind          string    `json:"kind"`
	ProviderID    string    `json:"providerId"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Validate checks the FoodRecord invariants
func (f *FoodRecord) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil food record", ErrInvalidFoodRecord)
	}
	if !(f.BaseServing.AmountGrams > 0) {
		return fmt.Errorf("%w: base serving must be > 0g, got %v", ErrInvalidFoodRecord, f.BaseServing.AmountGrams)
	}
	for _, opt := range f.ServingOptions {
		if !(opt.AmountInGrams > 0) {
			return fmt.Errorf("%w: serving option %q must be > 0g", ErrInvalidFoodRecord, opt.Label)
		}
	}
	return nil
}

// ServingSelection is the caller-owned state of one serving interaction.
// CustomAmountGrams, when set, overrides SelectedServing for effective grams.
// A non-positive Quantity reads as 1.
type ServingSelection struct {
	SelectedServing   *ServingOption `json:"selectedServing,omitempty"`
	CustomAmountGrams *float64       `json:"customAmountGrams,omitempty"`
	Quantity          float64        `json:"quantity"`
}

// NewServingSelection returns a selection with no serving, no custom amount and quantity 1
func NewServingSelection() ServingSelection {
	return ServingSelection{Quantity: 1}
}

// EffectiveQuantity returns the quantity with the zero value mapped to 1
func (s ServingSelection) EffectiveQuantity() float64 {
	if !(s.Quantity > 0) {
		return 1
	}
	return s.Quantity
}

// WithCustomAmount returns a copy with the custom amount set, or cleared when ok is false
func (s ServingSelection) WithCustomAmount(grams float64, ok bool) ServingSelection {
	if !ok || !(grams > 0) {
		s.CustomAmountGrams = nil
		return s
	}
	s.CustomAmountGrams = &grams
	return s
}
