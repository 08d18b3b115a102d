package serving

import (
	"math"
	"sort"

	"github.com/macrolens/servings/internal/domain"
)

// DefaultPresetCount is the number of presets offered when the caller does not say
const DefaultPresetCount = 3

// baseMatchTolerance is how close (in grams) a candidate must be to stand in for the base
const baseMatchTolerance = 0.1

// anchorTolerance is how close the parsed base quantity must be to a domain anchor
const anchorTolerance = 0.01

// multiplierSet lists the conceptual-unit multiples offered for a domain. When the base
// serving sits on the anchor quantity (½ cup, 2 tbsp, ...) the anchored set is used instead.
type multiplierSet struct {
	anchor   float64
	anchored []float64
	normal   []float64
}

var conceptualMultipliers = map[Domain]multiplierSet{
	DomainCup:         {anchor: 0.5, anchored: []float64{0.25, 0.5, 1.0}, normal: []float64{0.5, 1.0, 1.5}},
	DomainSlice:       {anchor: 0.5, anchored: []float64{0.5, 1.0, 2.0}, normal: []float64{1.0, 2.0, 3.0}},
	DomainTbsp:        {anchor: 2.0, anchored: []float64{1.0, 2.0, 3.0}, normal: []float64{0.5, 1.0, 1.5}},
	DomainTsp:         {anchor: 2.0, anchored: []float64{1.0, 2.0, 3.0}, normal: []float64{0.5, 1.0, 1.5}},
	DomainML:          {normal: []float64{1.0, 2.0, 3.0}},
	DomainPieceOrItem: {normal: []float64{1.0, 2.0, 3.0}},
}

// gramPresets are offered for gram-measured foods and for anything unrecognised
var gramPresets = []float64{50, 100, 150, 200}

func (m multiplierSet) forBase(baseUnits float64) []float64 {
	if m.anchored != nil && math.Abs(baseUnits-m.anchor) < anchorTolerance {
		return m.anchored
	}
	return m.normal
}

// Presets returns at most maxCount serving choices for the food, ascending by grams.
// Exactly one of them stands for the base serving.
func Presets(food domain.FoodRecord, maxCount int) []domain.ServingOption {
	if maxCount <= 0 {
		maxCount = DefaultPresetCount
	}
	p := newProfile(food)
	base := baseOption(food, p)

	candidates := make([]domain.ServingOption, 0, 8)
	if p.domain == DomainGram && labelLength(base.Label) <= labelBound(p.domain) {
		candidates = append(candidates, base)
	}
	for _, c := range conceptualCandidates(p) {
		if acceptLabel(c.Label, p.domain) {
			candidates = append(candidates, c)
		}
	}
	for _, opt := range food.ServingOptions {
		if opt.AmountInGrams > 0 && acceptLabel(opt.Label, p.domain) {
			candidates = append(candidates, opt)
		}
	}

	sortByGrams(candidates)
	candidates = dedupeByLabel(candidates, p.domain)

	baseIdx := -1
	for i, c := range candidates {
		if nearGrams(c.AmountInGrams, base.AmountInGrams) || c.Label == base.Label {
			baseIdx = i
			break
		}
	}

	result := make([]domain.ServingOption, 0, maxCount)
	if baseIdx >= 0 {
		result = append(result, candidates[baseIdx])
	} else {
		result = append(result, base)
	}

	for i, c := range candidates {
		if len(result) >= maxCount {
			break
		}
		if i == baseIdx || c.Label == result[0].Label || nearAny(result, c.AmountInGrams) {
			continue
		}
		result = append(result, c)
	}

	sortByGrams(result)
	return result
}

// baseOption is the base serving with its normalized label
func baseOption(food domain.FoodRecord, p profile) domain.ServingOption {
	label := normalizeLabel(food.BaseServing.Description, p.domain)
	tooLong := labelLength(label) > labelBound(p.domain)
	switch {
	case p.domain.IsGramBased():
		if tooLong || !isGramLabel(label) {
			label = formatGrams(p.baseGrams)
		}
	case label == "" || tooLong:
		label = domainLabel(p.domain, p.baseUnits)
	case p.domain == DomainML && !measuredInMillilitres(label):
		label = domainLabel(p.domain, p.baseUnits)
	}
	return domain.ServingOption{Label: label, AmountInGrams: p.baseGrams}
}

// conceptualCandidates generates the domain's multiples of its conceptual unit
func conceptualCandidates(p profile) []domain.ServingOption {
	if p.domain.IsGramBased() {
		out := make([]domain.ServingOption, 0, len(gramPresets))
		for _, g := range gramPresets {
			out = append(out, domain.ServingOption{Label: formatGrams(g), AmountInGrams: g})
		}
		return out
	}

	set := conceptualMultipliers[p.domain]
	multipliers := set.forBase(p.baseUnits)
	out := make([]domain.ServingOption, 0, len(multipliers))
	for _, m := range multipliers {
		if p.domain == DomainML {
			// the conceptual unit for volumes is the base serving itself
			out = append(out, domain.ServingOption{
				Label:         formatMillilitres(p.baseUnits * m),
				AmountInGrams: p.gramsPerUnit * p.baseUnits * m,
			})
			continue
		}
		out = append(out, domain.ServingOption{
			Label:         domainLabel(p.domain, m),
			AmountInGrams: p.gramsPerUnit * m,
		})
	}
	return out
}

func sortByGrams(options []domain.ServingOption) {
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].AmountInGrams < options[j].AmountInGrams
	})
}

// dedupeByLabel normalizes every label and keeps the first option per label
func dedupeByLabel(options []domain.ServingOption, d Domain) []domain.ServingOption {
	seen := make(map[string]bool, len(options))
	out := make([]domain.ServingOption, 0, len(options))
	for _, opt := range options {
		label := normalizeLabel(opt.Label, d)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, domain.ServingOption{Label: label, AmountInGrams: opt.AmountInGrams})
	}
	return out
}

func nearGrams(a, b float64) bool {
	return math.Abs(a-b) <= baseMatchTolerance
}

func nearAny(options []domain.ServingOption, grams float64) bool {
	for _, opt := range options {
		if nearGrams(opt.AmountInGrams, grams) {
			return true
		}
	}
	return false
}
