package usda

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/macrolens/servings/internal/domain"
)

// USDA Nutrient IDs for key macronutrients
const (
	NutrientIDEnergy       = 1008 // Calories (kcal)
	NutrientIDProtein      = 1003 // Protein (g)
	NutrientIDCarbohydrate = 1005 // Carbohydrates (g)
	NutrientIDTotalFat     = 1004 // Total Fat (g)
)

// USDA Nutrient IDs for tracked micronutrients
const (
	NutrientIDFiber       = 1079 // Fiber, total dietary (g)
	NutrientIDSugar       = 2000 // Sugars, total including NLEA (g)
	NutrientIDSodium      = 1093 // Sodium, Na (mg)
	NutrientIDCholesterol = 1253 // Cholesterol (mg)
	NutrientIDPotassium   = 1092 // Potassium, K (mg)
)

// Base-portion scoring weights
const (
	scoreSingleUnit    = 10 // amount == 1
	scoreHalfUnit      = 8  // amount == 0.5
	scoreSmallAmount   = 5  // 0 < amount <= 2
	scoreModifierBonus = 2  // portion carries a modifier ("large", "cup, chopped")
	smallAmountLimit   = 2.0
)

const (
	fallbackServingGrams   = 100.0
	nutrientReferenceGrams = 100.0 // FDC reports nutrient amounts per 100g
	defaultPortionUnit     = "serving"
)

// nutrientMatcher finds one nutrient by id, falling back to its name
type nutrientMatcher struct {
	id   int
	name string // lower-case
	// containsName matches names containing name instead of equal to it
	containsName bool
	// nameOnlyWithoutID restricts the name fallback to records carrying no id
	nameOnlyWithoutID bool
	// unit is the required unit (case-insensitive); records without a unit always pass
	unit string
}

var (
	energyMatcher       = nutrientMatcher{id: NutrientIDEnergy, name: "energy", nameOnlyWithoutID: true, unit: "kcal"}
	proteinMatcher      = nutrientMatcher{id: NutrientIDProtein, name: "protein", nameOnlyWithoutID: true}
	carbohydrateMatcher = nutrientMatcher{id: NutrientIDCarbohydrate, name: "carbohydrate, by difference", nameOnlyWithoutID: true}
	totalFatMatcher     = nutrientMatcher{id: NutrientIDTotalFat, name: "total lipid (fat)", nameOnlyWithoutID: true}

	fiberMatcher       = nutrientMatcher{id: NutrientIDFiber, name: "fiber, total dietary", containsName: true, unit: "g"}
	sugarMatcher       = nutrientMatcher{id: NutrientIDSugar, name: "sugar", containsName: true, unit: "g"}
	sodiumMatcher      = nutrientMatcher{id: NutrientIDSodium, name: "sodium, na", containsName: true, unit: "mg"}
	cholesterolMatcher = nutrientMatcher{id: NutrientIDCholesterol, name: "cholesterol", containsName: true, unit: "mg"}
	potassiumMatcher   = nutrientMatcher{id: NutrientIDPotassium, name: "potassium, k", containsName: true, unit: "mg"}
)

func (m nutrientMatcher) unitOK(n domain.Nutrient) bool {
	return m.unit == "" || n.UnitName == "" || strings.EqualFold(n.UnitName, m.unit)
}

func (m nutrientMatcher) matchesID(n domain.Nutrient) bool {
	return n.ID != 0 && n.ID == m.id && m.unitOK(n)
}

func (m nutrientMatcher) matchesName(n domain.Nutrient) bool {
	if m.nameOnlyWithoutID && n.ID != 0 {
		return false
	}
	name := strings.ToLower(n.Name)
	if name == "" {
		return false
	}
	if m.containsName {
		if !strings.Contains(name, m.name) {
			return false
		}
	} else if name != m.name {
		return false
	}
	return m.unitOK(n)
}

// find returns the first id match, else the first name match
func (m nutrientMatcher) find(nutrients []domain.Nutrient) (float64, bool) {
	for _, n := range nutrients {
		if m.matchesID(n) {
			return n.Amount, true
		}
	}
	for _, n := range nutrients {
		if m.matchesName(n) {
			return n.Amount, true
		}
	}
	return 0, false
}

// MapFoodDetails converts a USDA food-details payload to the canonical FoodRecord.
// FoodData Central reports nutrients per 100 g; the record's macros and micronutrients
// are rescaled to the selected base portion, so they are per BaseServing, not per 100 g.
// fetchedAt stamps the source when the payload carries no publication date.
func MapFoodDetails(details *domain.USDAFoodDetails, fetchedAt time.Time) *domain.FoodRecord {
	nutrients := NormalizeNutrients(details.FoodNutrients)

	base := domain.BaseServing{Unit: "g", AmountGrams: fallbackServingGrams, Description: "100g"}
	options := []domain.ServingOption{}

	if idx, ok := SelectBasePortion(details.FoodPortions); ok {
		selected := details.FoodPortions[idx]
		base = domain.BaseServing{
			Unit:        portionUnit(selected),
			AmountGrams: selected.GramWeight,
			Description: PortionLabel(selected),
		}
		for i, p := range details.FoodPortions {
			if i == idx || !(p.GramWeight > 0) {
				continue
			}
			options = append(options, domain.ServingOption{
				Label:         PortionLabel(p),
				AmountInGrams: p.GramWeight,
			})
		}
	}

	factor := base.AmountGrams / nutrientReferenceGrams
	macros := extractMacros(nutrients)
	micros := extractMicronutrients(nutrients)

	providerID := strconv.FormatInt(details.FdcID, 10)
	return &domain.FoodRecord{
		ID:             fmt.Sprintf("%s:%s", domain.SourceKindUSDA, providerID),
		Name:           strings.TrimSpace(details.Description),
		Brand:          strings.TrimSpace(details.BrandOwner),
		BaseServing:    base,
		ServingOptions: options,
		Macros: domain.Macros{
			Calories: macros.Calories * factor,
			ProteinG: macros.ProteinG * factor,
			CarbsG:   macros.CarbsG * factor,
			FatG:     macros.FatG * factor,
		},
		Micronutrients: micros.Scale(factor),
		Source: domain.Source{
			Kind:          domain.SourceKindUSDA,
			ProviderID:    providerID,
			LastUpdatedAt: publicationTime(details.PublicationDate, fetchedAt),
		},
	}
}

// NormalizeNutrients folds both nutrient encodings into unified records
func NormalizeNutrients(records []domain.USDANutrientRecord) []domain.Nutrient {
	out := make([]domain.Nutrient, 0, len(records))
	for _, r := range records {
		out = append(out, r.Normalize())
	}
	return out
}

// ScorePortion rates how well a portion works as the base serving
func ScorePortion(p domain.USDAPortion) int {
	score := 0
	switch {
	case p.Amount == 1.0:
		score += scoreSingleUnit
	case p.Amount == 0.5:
		score += scoreHalfUnit
	case p.Amount > 0 && p.Amount <= smallAmountLimit:
		score += scoreSmallAmount
	}
	if strings.TrimSpace(p.Modifier) != "" {
		score += scoreModifierBonus
	}
	return score
}

// SelectBasePortion returns the index of the best-scoring portion with a positive gram
// weight. Ties go to the earliest portion; ok is false when no portion has a weight.
func SelectBasePortion(portions []domain.USDAPortion) (int, bool) {
	best, bestScore := -1, -1
	for i, p := range portions {
		if !(p.GramWeight > 0) {
			continue
		}
		if score := ScorePortion(p); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, best >= 0
}

// PortionLabel renders a portion as "<amount> <modifier | unit>", e.g. "½ cup" or "1 large"
func PortionLabel(p domain.USDAPortion) string {
	token := portionAmountToken(p.Amount)
	name, abbreviation := p.Unit()

	word := strings.TrimSpace(p.Modifier)
	if word == "" {
		word = name
	}
	if word == "" {
		word = abbreviation
	}
	if word == "" {
		return token
	}
	return token + " " + word
}

func portionAmountToken(amount float64) string {
	switch {
	case !(amount > 0):
		return "1"
	case amount == 0.25:
		return "¼"
	case amount == 0.5:
		return "½"
	case amount == 0.75:
		return "¾"
	case amount == 1.5:
		return "1½"
	}
	return strconv.FormatInt(int64(math.Round(amount)), 10)
}

func portionUnit(p domain.USDAPortion) string {
	name, abbreviation := p.Unit()
	switch {
	case abbreviation != "":
		return abbreviation
	case name != "":
		return name
	}
	return defaultPortionUnit
}

var publicationLayouts = []string{"2006-01-02", "1/2/2006", time.RFC3339}

func publicationTime(value string, fallback time.Time) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range publicationLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return fallback
}

// extractMacros extracts the key macronutrients from the nutrient list
func extractMacros(nutrients []domain.Nutrient) domain.Macros {
	macros := domain.Macros{}
	macros.Calories, _ = energyMatcher.find(nutrients)
	macros.ProteinG, _ = proteinMatcher.find(nutrients)
	macros.CarbsG, _ = carbohydrateMatcher.find(nutrients)
	macros.FatG, _ = totalFatMatcher.find(nutrients)
	return macros
}

// extractMicronutrients extracts the tracked micronutrients; unit mismatches are skipped
func extractMicronutrients(nutrients []domain.Nutrient) domain.Micronutrients {
	micros := domain.Micronutrients{}
	micros.FiberG, _ = fiberMatcher.find(nutrients)
	micros.SugarG, _ = sugarMatcher.find(nutrients)
	micros.SodiumMg, _ = sodiumMatcher.find(nutrients)
	micros.CholesterolMg, _ = cholesterolMatcher.find(nutrients)
	micros.PotassiumMg, _ = potassiumMatcher.find(nutrients)
	return micros
}

// FindNutrientValue finds a specific nutrient value by ID
func FindNutrientValue(nutrients []domain.Nutrient, nutrientID int) float64 {
	for _, nutrient := range nutrients {
		if nutrient.ID == nutrientID {
			return nutrient.Amount
		}
	}
	return 0.0
}
