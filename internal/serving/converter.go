package serving

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/macrolens/servings/internal/domain"
)

// Leading-quantity patterns, tried in order
var (
	mixedFractionPattern   = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)`)
	fractionPattern        = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)`)
	unicodeFractionPattern = regexp.MustCompile(`^(\d+)?\s*([½¼¾])`)
	decimalPattern         = regexp.MustCompile(`^(\d*\.\d+|\d+)`)
)

var unicodeFractions = map[string]float64{
	"¼": 0.25,
	"½": 0.5,
	"¾": 0.75,
}

// parseLeadingQuantity reads the number a serving text starts with ("1/2 cup", "1½ cups",
// "2 tbsp") and returns it with the remaining text.
func parseLeadingQuantity(text string) (float64, string, bool) {
	s := strings.TrimSpace(text)

	if m := mixedFractionPattern.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		if frac, ok := ratio(m[2], m[3]); ok {
			return whole + frac, rest(s, m[0]), true
		}
	}
	if m := fractionPattern.FindStringSubmatch(s); m != nil {
		if frac, ok := ratio(m[1], m[2]); ok && frac > 0 {
			return frac, rest(s, m[0]), true
		}
	}
	if m := unicodeFractionPattern.FindStringSubmatch(s); m != nil {
		value := unicodeFractions[m[2]]
		if m[1] != "" {
			whole, _ := strconv.ParseFloat(m[1], 64)
			value += whole
		}
		return value, rest(s, m[0]), true
	}
	if m := decimalPattern.FindStringSubmatch(s); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err == nil && value > 0 {
			return value, rest(s, m[0]), true
		}
	}
	return 0, s, false
}

func ratio(num, den string) (float64, bool) {
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

func rest(s, matched string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, matched))
}

// profile is the conversion state derived from a food's base serving
type profile struct {
	domain       Domain
	baseGrams    float64
	baseUnits    float64 // quantity parsed from the base description, 1 when absent
	gramsPerUnit float64
}

func newProfile(food domain.FoodRecord) profile {
	p := profile{
		domain:    DetectFood(food),
		baseGrams: food.BaseServing.AmountGrams,
		baseUnits: 1,
	}
	if p.domain == DomainGram {
		p.gramsPerUnit = 1
		p.baseUnits = p.baseGrams
		return p
	}
	if p.domain == DomainML && !measuredInMillilitres(food.BaseServing.Description) {
		// volume read off the weight, 1 g to 1 ml
		p.gramsPerUnit = 1
		p.baseUnits = p.baseGrams
		return p
	}
	if units, _, ok := parseLeadingQuantity(food.BaseServing.Description); ok {
		p.baseUnits = units
	}
	p.gramsPerUnit = p.baseGrams / p.baseUnits
	return p
}

func (p profile) toGrams(units float64) float64 {
	if p.domain == DomainGram {
		return units
	}
	return units * p.gramsPerUnit
}

func (p profile) toUnits(grams float64) float64 {
	if p.domain == DomainGram || p.gramsPerUnit == 0 {
		return grams
	}
	return grams / p.gramsPerUnit
}

// GramsPerDomainUnit returns how many grams one unit of the food's domain weighs,
// e.g. 80 for a "1/2 cup dry" base serving of 40g.
func GramsPerDomainUnit(food domain.FoodRecord) float64 {
	return newProfile(food).gramsPerUnit
}

// DomainUnitsToGrams converts an amount in domain units to grams
func DomainUnitsToGrams(food domain.FoodRecord, units float64) float64 {
	return newProfile(food).toGrams(units)
}

// GramsToDomainUnits converts grams to domain units. Grams are returned unchanged for
// gram-domain foods and when the conversion factor is zero.
func GramsToDomainUnits(food domain.FoodRecord, grams float64) float64 {
	return newProfile(food).toUnits(grams)
}
