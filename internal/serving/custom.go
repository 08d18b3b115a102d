package serving

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/macrolens/servings/internal/domain"
)

// MinCustomAmount is the smallest custom amount accepted, in domain units
const MinCustomAmount = 0.25

// CustomPlaceholder is shown while no custom amount is set
const CustomPlaceholder = "Custom"

// customAmountPattern admits plain decimals only: no sign, exponent, hex or words
var customAmountPattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

// ParseAndSnap reads free-text input as a number of domain units and snaps it to the
// nearest quarter. ok is false for empty, non-numeric or sub-quarter input; callers
// should clear the custom amount in that case.
func ParseAndSnap(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if !customAmountPattern.MatchString(text) {
		return 0, false
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(value, 0) {
		return 0, false
	}
	if value < MinCustomAmount {
		return 0, false
	}
	return math.Round(value*4) / 4, true
}

// CustomAmountGrams parses text as domain units and converts it to grams
func CustomAmountGrams(food domain.FoodRecord, text string) (float64, bool) {
	units, ok := ParseAndSnap(text)
	if !ok {
		return 0, false
	}
	return DomainUnitsToGrams(food, units), true
}

// FormatCustomLabel renders a custom gram amount in the food's own unit
func FormatCustomLabel(food domain.FoodRecord, grams float64) string {
	if !(grams > 0) {
		return CustomPlaceholder
	}
	p := newProfile(food)
	if p.domain.IsGramBased() {
		return fmt.Sprintf("%dg", int64(math.Round(grams)))
	}
	return domainLabel(p.domain, p.toUnits(grams))
}

// CanShowCustom reports whether custom amounts can be entered for the food
func CanShowCustom(food domain.FoodRecord) bool {
	d := DetectFood(food)
	if d == DomainGram {
		return true
	}
	_, _, ok := d.UnitNames()
	return ok
}
