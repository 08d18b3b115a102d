package serving

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxLabelLength      = 12
	maxPieceLabelLength = 24 // "3 medium apples"
)

const fractionTolerance = 1e-6

// quarterGlyphs renders the fractional quarter of an amount
var quarterGlyphs = [4]string{"", "¼", "½", "¾"}

// descriptorWords are dropped when labels are compared
var descriptorWords = map[string]bool{
	"dry": true, "cooked": true, "raw": true, "boiled": true,
	"chopped": true, "diced": true, "sliced": true, "whole": true,
	"large": true, "medium": true, "small": true,
}

var (
	parentheticalPattern  = regexp.MustCompile(`\([^)]*\)`)
	gramLabelPattern      = regexp.MustCompile(`^\d*\.?\d+\s*(g|gram|grams)$`)
	trailingGramPattern   = regexp.MustCompile(`(^|[\d\s])(g|gram|grams)$`)
	millilitreUnitPattern = regexp.MustCompile(`^(ml|millilit(er|re)s?)([^a-z]|$)`)
)

// UnitLabel formats a multiplier with its unit word: 0.5 -> "½ cup", 1.5 -> "1½ cups",
// 3 -> "3 cups". Amounts off the quarter grid keep two decimals: 0.33 -> "0.33 cup".
func UnitLabel(multiplier float64, singular, plural string) string {
	unit := plural
	if multiplier <= 1+fractionTolerance {
		unit = singular
	}
	if !onQuarter(multiplier) {
		return strconv.FormatFloat(math.Round(multiplier*100)/100, 'f', -1, 64) + " " + unit
	}
	quarters := int64(math.Round(multiplier * 4))
	token := quarterGlyphs[quarters%4]
	if whole := quarters / 4; whole > 0 {
		token = strconv.FormatInt(whole, 10) + token
	}
	return token + " " + unit
}

// onQuarter reports whether v is a positive multiple of ¼
func onQuarter(v float64) bool {
	q := v * 4
	return q >= 1-fractionTolerance && math.Abs(q-math.Round(q)) < fractionTolerance
}

func isWhole(v float64) bool {
	return v > 0 && math.Abs(v-math.Round(v)) < fractionTolerance
}

// formatGrams renders a gram amount as "150g", keeping one decimal when present
func formatGrams(grams float64) string {
	rounded := math.Round(grams*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64) + "g"
}

// formatMillilitres renders a volume rounded to whole millilitres
func formatMillilitres(ml float64) string {
	return fmt.Sprintf("%d ml", int64(math.Round(ml)))
}

// domainLabel renders an amount of domain units the way presets display it
func domainLabel(d Domain, units float64) string {
	switch {
	case d.IsGramBased():
		return formatGrams(units)
	case d == DomainML:
		return formatMillilitres(units)
	}
	singular, plural, _ := d.UnitNames()
	return UnitLabel(units, singular, plural)
}

// labelBound is the longest label the domain accepts
func labelBound(d Domain) int {
	if d == DomainPieceOrItem {
		return maxPieceLabelLength
	}
	return maxLabelLength
}

func labelLength(label string) int {
	return utf8.RuneCountInString(label)
}

// measuredInMillilitres reports whether the text leads with an amount of millilitres,
// as in "240 ml" but not "12 fl oz (355 ml)"
func measuredInMillilitres(text string) bool {
	s := parentheticalPattern.ReplaceAllString(strings.ToLower(text), " ")
	_, remainder, ok := parseLeadingQuantity(s)
	return ok && millilitreUnitPattern.MatchString(remainder)
}

func isGramLabel(label string) bool {
	return gramLabelPattern.MatchString(strings.ToLower(strings.TrimSpace(label)))
}

// matchesDomain keeps gram labels out of household-unit foods and the reverse
func matchesDomain(label string, d Domain) bool {
	lower := strings.ToLower(strings.TrimSpace(label))
	if d.IsGramBased() {
		return isGramLabel(lower)
	}
	if trailingGramPattern.MatchString(lower) {
		return false
	}
	return Detect(lower, "") == d
}

// acceptLabel applies the length bound and the domain filter
func acceptLabel(label string, d Domain) bool {
	if strings.TrimSpace(label) == "" || labelLength(label) > labelBound(d) {
		return false
	}
	return matchesDomain(label, d)
}

// normalizeLabel strips descriptors and collapses the unit word so that
// "1 cup, chopped", "1 cups" and "1 cup" compare equal. Amounts on the quarter grid are
// re-rendered ("1/2 cup" -> "½ cup"); any other amount keeps its own token ("2/3 cup").
func normalizeLabel(label string, d Domain) string {
	s := strings.ToLower(label)
	s = parentheticalPattern.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, ",", " ")

	words := strings.Fields(s)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !descriptorWords[w] {
			kept = append(kept, w)
		}
	}
	s = strings.Join(kept, " ")

	amount, remainder, ok := parseLeadingQuantity(s)
	if !ok {
		return s
	}
	token := strings.TrimSpace(strings.TrimSuffix(s, remainder))

	switch d {
	case DomainUnknown:
		return s
	case DomainGram:
		if isGramLabel(s) || remainder == "" {
			return formatGrams(amount)
		}
		return s
	case DomainML:
		if !millilitreUnitPattern.MatchString(remainder) {
			return s
		}
		if !isWhole(amount) {
			return token + " ml"
		}
		return formatMillilitres(amount)
	}

	if !onQuarter(amount) {
		singular, plural, _ := d.UnitNames()
		if amount <= 1 {
			return token + " " + singular
		}
		return token + " " + plural
	}
	return domainLabel(d, amount)
}
