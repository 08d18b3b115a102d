package serving

import (
	"math"

	"github.com/macrolens/servings/internal/domain"
)

// ScaledNutrition is a food's nutrition at a given selection. Macros stay unrounded
// for percentage math; use RoundDisplay when presenting them.
type ScaledNutrition struct {
	EffectiveGrams float64               `json:"effectiveGrams"`
	Multiplier     float64               `json:"multiplier"`
	Calories       int                   `json:"calories"`
	ProteinG       float64               `json:"proteinG"`
	CarbsG         float64               `json:"carbsG"`
	FatG           float64               `json:"fatG"`
	Micronutrients domain.Micronutrients `json:"micronutrients"`
}

// MacroPercents is each macro's share of the total macro grams
type MacroPercents struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// EffectiveGrams resolves custom amount, then selected serving, then the base serving
func EffectiveGrams(food domain.FoodRecord, sel *domain.ServingSelection) float64 {
	if sel != nil {
		if sel.CustomAmountGrams != nil && *sel.CustomAmountGrams > 0 {
			return *sel.CustomAmountGrams
		}
		if sel.SelectedServing != nil && sel.SelectedServing.AmountInGrams > 0 {
			return sel.SelectedServing.AmountInGrams
		}
	}
	return food.BaseServing.AmountGrams
}

// Multiplier is (effective grams / base grams) * quantity, or 0 without a usable base
func Multiplier(food domain.FoodRecord, sel *domain.ServingSelection) float64 {
	base := food.BaseServing.AmountGrams
	if !(base > 0) {
		return 0
	}
	quantity := 1.0
	if sel != nil {
		quantity = sel.EffectiveQuantity()
	}
	return EffectiveGrams(food, sel) / base * quantity
}

// Scale computes the food's nutrition for the selection; a nil selection means the base serving
func Scale(food domain.FoodRecord, sel *domain.ServingSelection) ScaledNutrition {
	m := Multiplier(food, sel)
	return ScaledNutrition{
		EffectiveGrams: EffectiveGrams(food, sel),
		Multiplier:     m,
		Calories:       int(math.Round(food.Macros.Calories * m)),
		ProteinG:       food.Macros.ProteinG * m,
		CarbsG:         food.Macros.CarbsG * m,
		FatG:           food.Macros.FatG * m,
		Micronutrients: food.Micronutrients.Scale(m),
	}
}

// TotalMacroGrams sums protein, carbs and fat
func (s ScaledNutrition) TotalMacroGrams() float64 {
	return s.ProteinG + s.CarbsG + s.FatG
}

// MacroPercent returns nutrientG as a rounded percentage of the total macro grams
func MacroPercent(nutrientG float64, s ScaledNutrition) int {
	total := s.TotalMacroGrams()
	if !(total > 0) {
		return 0
	}
	return int(math.Round(nutrientG / total * 100))
}

// MacroPercents returns the share of each macro
func (s ScaledNutrition) MacroPercents() MacroPercents {
	return MacroPercents{
		Protein: MacroPercent(s.ProteinG, s),
		Carbs:   MacroPercent(s.CarbsG, s),
		Fat:     MacroPercent(s.FatG, s),
	}
}

// RoundDisplay rounds to one decimal place
func RoundDisplay(v float64) float64 {
	return math.Round(v*10) / 10
}
