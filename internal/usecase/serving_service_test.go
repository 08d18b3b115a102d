package usecase

import (
	"testing"

	"github.com/macrolens/servings/internal/domain"
	"github.com/macrolens/servings/internal/nutrition"
	"github.com/macrolens/servings/internal/serving"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oats() *domain.FoodRecord {
	return &domain.FoodRecord{
		ID:          "usda:173904",
		Name:        "Oats",
		BaseServing: domain.BaseServing{Unit: "cup", AmountGrams: 40, Description: "1/2 cup dry"},
		Macros:      domain.Macros{Calories: 150, ProteinG: 5, CarbsG: 27, FatG: 3},
		Micronutrients: domain.Micronutrients{
			FiberG:   4,
			SodiumMg: 2500,
		},
	}
}

func TestNewServingService(t *testing.T) {
	assert.Equal(t, serving.DefaultPresetCount, NewServingService(0).maxPresets)
	assert.Equal(t, 5, NewServingService(5).maxPresets)
}

func TestServingService_View(t *testing.T) {
	svc := NewServingService(3)

	view, err := svc.View(oats(), domain.NewServingSelection())
	require.NoError(t, err)

	assert.Equal(t, serving.DomainCup, view.Domain)
	assert.Equal(t, 80.0, view.GramsPerUnit)
	require.Len(t, view.Presets, 3)
	assert.Equal(t, "¼ cup", view.Presets[0].Label)
	assert.Equal(t, "½ cup", view.Presets[1].Label)
	assert.Equal(t, "1 cup", view.Presets[2].Label)
	assert.True(t, view.CanShowCustom)
	assert.Equal(t, serving.CustomPlaceholder, view.CustomLabel)

	assert.Equal(t, 40.0, view.Nutrition.EffectiveGrams)
	assert.Equal(t, 1.0, view.Nutrition.Multiplier)
	assert.Equal(t, 150, view.Nutrition.Calories)
	assert.Equal(t, serving.MacroPercents{Protein: 14, Carbs: 77, Fat: 9}, view.MacroPercents)

	require.Len(t, view.Micronutrients, len(nutrition.Tracked))
	sodium := view.Micronutrients[2]
	assert.Equal(t, nutrition.Sodium, sodium.Nutrient)
	assert.Equal(t, nutrition.SignalLowOrHigh, sodium.Signal)
}

func TestServingService_ViewWithSelection(t *testing.T) {
	svc := NewServingService(3)
	food := oats()

	sel, ok := svc.ApplyCustomText(food, domain.NewServingSelection(), "1.5")
	require.True(t, ok)
	sel.Quantity = 2

	view, err := svc.View(food, sel)
	require.NoError(t, err)

	assert.Equal(t, "1½ cups", view.CustomLabel)
	assert.Equal(t, 120.0, view.Nutrition.EffectiveGrams)
	assert.Equal(t, 6.0, view.Nutrition.Multiplier)
	assert.Equal(t, 900, view.Nutrition.Calories)
	assert.Equal(t, 30.0, view.Nutrition.ProteinG)
}

func TestServingService_ApplyCustomText_Rejected(t *testing.T) {
	svc := NewServingService(3)
	food := oats()

	sel, ok := svc.ApplyCustomText(food, domain.NewServingSelection(), "1")
	require.True(t, ok)
	require.NotNil(t, sel.CustomAmountGrams)

	sel, ok = svc.ApplyCustomText(food, sel, "0.1")
	assert.False(t, ok)
	assert.Nil(t, sel.CustomAmountGrams, "rejected text clears the custom amount")
}

func TestServingService_ViewDefaultsQuantity(t *testing.T) {
	view, err := NewServingService(3).View(oats(), domain.ServingSelection{})
	require.NoError(t, err)

	assert.Equal(t, 1.0, view.Selection.Quantity)
	assert.Equal(t, 150, view.Nutrition.Calories)
}

func TestServingService_ViewRejectsInvalidFood(t *testing.T) {
	svc := NewServingService(3)

	_, err := svc.View(nil, domain.NewServingSelection())
	assert.ErrorIs(t, err, domain.ErrInvalidFoodRecord)

	broken := oats()
	broken.BaseServing.AmountGrams = 0
	_, err = svc.View(broken, domain.NewServingSelection())
	assert.ErrorIs(t, err, domain.ErrInvalidFoodRecord)
}
