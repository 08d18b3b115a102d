// Package serving classifies how a food's serving is measured, converts between
// household units and grams, builds preset serving choices, parses custom amounts
// and scales nutrition to a selection. Everything here is pure and safe for
// concurrent use.
package serving

import (
	"strings"

	"github.com/macrolens/servings/internal/domain"
)

// Domain is the measurement category of a serving
type Domain string

const (
	DomainCup         Domain = "cup"
	DomainTbsp        Domain = "tbsp"
	DomainTsp         Domain = "tsp"
	DomainML          Domain = "ml"
	DomainSlice       Domain = "slice"
	DomainPieceOrItem Domain = "pieceOrItem"
	DomainGram        Domain = "gram"
	DomainUnknown     Domain = "unknown"
)

// unitNames holds the display words for domains that count in a household unit
var unitNames = map[Domain][2]string{
	DomainCup:         {"cup", "cups"},
	DomainTbsp:        {"tbsp", "tbsp"},
	DomainTsp:         {"tsp", "tsp"},
	DomainML:          {"ml", "ml"},
	DomainSlice:       {"slice", "slices"},
	DomainPieceOrItem: {"item", "items"},
}

// UnitNames returns the singular and plural unit words for the domain.
// ok is false for gram and unknown.
func (d Domain) UnitNames() (singular, plural string, ok bool) {
	names, ok := unitNames[d]
	if !ok {
		return "", "", false
	}
	return names[0], names[1], true
}

// IsGramBased reports whether labels for the domain are written in grams
func (d Domain) IsGramBased() bool {
	return d == DomainGram || d == DomainUnknown
}

// detectionRule maps a predicate over the lower-cased description and unit to a domain
type detectionRule struct {
	name   string
	match  func(description, unit string) bool
	domain Domain
}

// detectionRules are evaluated in order; the first match wins.
// Keyword rules come before the gram-unit rule so "1 large egg" with unit "g" is a piece.
var detectionRules = []detectionRule{
	{name: "slice", match: mentions("slice"), domain: DomainSlice},
	{name: "cup", match: mentions("cup"), domain: DomainCup},
	{name: "tablespoon", match: mentions("tbsp", "tablespoon"), domain: DomainTbsp},
	{name: "teaspoon", match: mentions("tsp", "teaspoon"), domain: DomainTsp},
	{name: "millilitre", match: mentions("ml", "milliliter", "millilitre"), domain: DomainML},
	{name: "piece", match: mentions("piece", "item"), domain: DomainPieceOrItem},
	{name: "counted food", match: mentions("egg", "apple"), domain: DomainPieceOrItem},
	{name: "gram unit", match: unitIs("g", "gram", "grams"), domain: DomainGram},
}

// mentions matches when any keyword appears in the description or the unit
func mentions(keywords ...string) func(description, unit string) bool {
	return func(description, unit string) bool {
		for _, kw := range keywords {
			if strings.Contains(description, kw) || strings.Contains(unit, kw) {
				return true
			}
		}
		return false
	}
}

// unitIs matches when the unit equals one of the given codes
func unitIs(codes ...string) func(description, unit string) bool {
	return func(_, unit string) bool {
		for _, code := range codes {
			if unit == code {
				return true
			}
		}
		return false
	}
}

// Detect classifies a serving description and unit code. It never fails;
// anything unrecognised is DomainUnknown.
func Detect(description, unit string) Domain {
	desc := strings.ToLower(strings.TrimSpace(description))
	u := strings.ToLower(strings.TrimSpace(unit))

	for _, rule := range detectionRules {
		if rule.match(desc, u) {
			return rule.domain
		}
	}
	return DomainUnknown
}

// DetectFood classifies the food's base serving
func DetectFood(food domain.FoodRecord) Domain {
	return Detect(food.BaseServing.Description, food.BaseServing.Unit)
}
