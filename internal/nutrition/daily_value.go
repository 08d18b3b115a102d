// Package nutrition rates micronutrient amounts against daily reference values.
package nutrition

import (
	"math"

	"github.com/macrolens/servings/internal/domain"
)

// Micronutrient identifies a tracked micronutrient
type Micronutrient string

const (
	Fiber       Micronutrient = "fiber"
	Sugar       Micronutrient = "sugar"
	Sodium      Micronutrient = "sodium"
	Cholesterol Micronutrient = "cholesterol"
	Potassium   Micronutrient = "potassium"
)

// Signal is the coarse rating shown next to a micronutrient
type Signal string

const (
	SignalGood      Signal = "good"
	SignalModerate  Signal = "moderate"
	SignalLowOrHigh Signal = "lowOrHigh"
)

// Flag says which side of the healthy band a lowOrHigh signal falls on
type Flag string

const (
	FlagNone Flag = ""
	FlagLow  Flag = "low"
	FlagHigh Flag = "high"
)

// Classification thresholds, in percent of daily value
const (
	lowIntakePercent  = 25
	highIntakePercent = 100
)

type dailyReference struct {
	amount       float64
	unit         string
	moreIsBetter bool
}

// dailyReferences are approximate per-day targets
var dailyReferences = map[Micronutrient]dailyReference{
	Fiber:       {amount: 28, unit: "g", moreIsBetter: true},
	Sugar:       {amount: 50, unit: "g"},
	Sodium:      {amount: 2300, unit: "mg"},
	Cholesterol: {amount: 300, unit: "mg"},
	Potassium:   {amount: 3400, unit: "mg", moreIsBetter: true},
}

// Tracked lists the micronutrients in display order
var Tracked = []Micronutrient{Fiber, Sugar, Sodium, Cholesterol, Potassium}

// Assessment is a micronutrient amount with its daily-value rating
type Assessment struct {
	Nutrient            Micronutrient `json:"nutrient"`
	Amount              float64       `json:"amount"`
	Unit                string        `json:"unit"`
	PercentOfDailyValue *int          `json:"percentOfDailyValue"`
	Signal              Signal        `json:"signal"`
	Flag                Flag          `json:"flag,omitempty"`
}

// ReferenceAmount returns the daily reference value and its unit
func ReferenceAmount(n Micronutrient) (float64, string, bool) {
	ref, ok := dailyReferences[n]
	if !ok {
		return 0, "", false
	}
	return ref.amount, ref.unit, true
}

// DailyPercentage returns amount as a rounded percent of the daily reference.
// ok is false for non-positive amounts and unknown nutrients.
func DailyPercentage(n Micronutrient, amount float64) (int, bool) {
	ref, ok := dailyReferences[n]
	if !ok || !(amount > 0) || !(ref.amount > 0) {
		return 0, false
	}
	return int(math.Round(amount / ref.amount * 100)), true
}

// Classify rates a percentage. Without one the rating is moderate.
func Classify(n Micronutrient, percent int, ok bool) (Signal, Flag) {
	ref, known := dailyReferences[n]
	if !ok || !known {
		return SignalModerate, FlagNone
	}

	if ref.moreIsBetter {
		switch {
		case percent < lowIntakePercent:
			return SignalLowOrHigh, FlagLow
		case percent <= highIntakePercent:
			return SignalGood, FlagNone
		default:
			return SignalLowOrHigh, FlagHigh
		}
	}

	switch {
	case percent <= lowIntakePercent:
		return SignalGood, FlagNone
	case percent <= highIntakePercent:
		return SignalModerate, FlagNone
	default:
		return SignalLowOrHigh, FlagHigh
	}
}

// Assess computes the percentage and rating for one micronutrient amount
func Assess(n Micronutrient, amount float64) Assessment {
	_, unit, _ := ReferenceAmount(n)
	out := Assessment{Nutrient: n, Amount: amount, Unit: unit}

	percent, ok := DailyPercentage(n, amount)
	if ok {
		out.PercentOfDailyValue = &percent
	}
	out.Signal, out.Flag = Classify(n, percent, ok)
	return out
}

// AssessAll rates every tracked micronutrient in display order
func AssessAll(m domain.Micronutrients) []Assessment {
	amounts := map[Micronutrient]float64{
		Fiber:       m.FiberG,
		Sugar:       m.SugarG,
		Sodium:      m.SodiumMg,
		Cholesterol: m.CholesterolMg,
		Potassium:   m.PotassiumMg,
	}
	out := make([]Assessment, 0, len(Tracked))
	for _, n := range Tracked {
		out = append(out, Assess(n, amounts[n]))
	}
	return out
}
