package usecase

import (
	"github.com/macrolens/servings/internal/domain"
	"github.com/macrolens/servings/internal/nutrition"
	"github.com/macrolens/servings/internal/serving"
)

// NutritionSummary is scaled nutrition rounded for display
type NutritionSummary struct {
	EffectiveGrams float64 `json:"effectiveGrams"`
	Multiplier     float64 `json:"multiplier"`
	Calories       int     `json:"calories"`
	ProteinG       float64 `json:"proteinG"`
	CarbsG         float64 `json:"carbsG"`
	FatG           float64 `json:"fatG"`
}

// ServingView is everything a serving picker needs for one food and selection
type ServingView struct {
	Food           *domain.FoodRecord      `json:"food"`
	Domain         serving.Domain          `json:"domain"`
	GramsPerUnit   float64                 `json:"gramsPerUnit"`
	Presets        []domain.ServingOption  `json:"presets"`
	CanShowCustom  bool                    `json:"canShowCustom"`
	CustomLabel    string                  `json:"customLabel"`
	Selection      domain.ServingSelection `json:"selection"`
	Nutrition      NutritionSummary        `json:"nutrition"`
	MacroPercents  serving.MacroPercents   `json:"macroPercents"`
	Micronutrients []nutrition.Assessment  `json:"micronutrients"`
}

// ServingService composes the serving engine into views
type ServingService struct {
	maxPresets int
}

// NewServingService creates a serving service offering up to maxPresets presets
func NewServingService(maxPresets int) *ServingService {
	if maxPresets <= 0 {
		maxPresets = serving.DefaultPresetCount
	}
	return &ServingService{maxPresets: maxPresets}
}

// ApplyCustomText resolves free-text custom input onto the selection. Unusable text clears
// the custom amount; ok reports whether the text was accepted.
func (s *ServingService) ApplyCustomText(food *domain.FoodRecord, sel domain.ServingSelection, text string) (domain.ServingSelection, bool) {
	grams, ok := serving.CustomAmountGrams(*food, text)
	return sel.WithCustomAmount(grams, ok), ok
}

// View builds the serving view for a food and selection
func (s *ServingService) View(food *domain.FoodRecord, sel domain.ServingSelection) (*ServingView, error) {
	if err := food.Validate(); err != nil {
		return nil, err
	}
	if !(sel.Quantity > 0) {
		sel.Quantity = 1
	}

	scaled := serving.Scale(*food, &sel)
	customGrams := 0.0
	if sel.CustomAmountGrams != nil {
		customGrams = *sel.CustomAmountGrams
	}

	return &ServingView{
		Food:          food,
		Domain:        serving.DetectFood(*food),
		GramsPerUnit:  serving.GramsPerDomainUnit(*food),
		Presets:       serving.Presets(*food, s.maxPresets),
		CanShowCustom: serving.CanShowCustom(*food),
		CustomLabel:   serving.FormatCustomLabel(*food, customGrams),
		Selection:     sel,
		Nutrition: NutritionSummary{
			EffectiveGrams: serving.RoundDisplay(scaled.EffectiveGrams),
			Multiplier:     scaled.Multiplier,
			Calories:       scaled.Calories,
			ProteinG:       serving.RoundDisplay(scaled.ProteinG),
			CarbsG:         serving.RoundDisplay(scaled.CarbsG),
			FatG:           serving.RoundDisplay(scaled.FatG),
		},
		MacroPercents:  scaled.MacroPercents(),
		Micronutrients: nutrition.AssessAll(scaled.Micronutrients),
	}, nil
}
