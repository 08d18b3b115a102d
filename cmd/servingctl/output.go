package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/macrolens/servings/internal/usecase"
)

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}

func writeView(w io.Writer, view *usecase.ServingView) {
	fmt.Fprintf(w, "Food: %s\n", view.Food.Name)
	if view.Food.Brand != "" {
		fmt.Fprintf(w, "Brand: %s\n", view.Food.Brand)
	}
	fmt.Fprintf(w, "Base serving: %s (%.1fg)\n", view.Food.BaseServing.Description, view.Food.BaseServing.AmountGrams)
	fmt.Fprintf(w, "Domain: %s (%.2fg per unit)\n", view.Domain, view.GramsPerUnit)
	fmt.Fprintln(w, "Presets:")
	for _, p := range view.Presets {
		fmt.Fprintf(w, "  %-12s %.1fg\n", p.Label, p.AmountInGrams)
	}
	if view.Selection.CustomAmountGrams != nil {
		fmt.Fprintf(w, "Custom: %s\n", view.CustomLabel)
	}
	n := view.Nutrition
	fmt.Fprintf(w, "Amount: %.1fg x%.2f\n", n.EffectiveGrams, view.Selection.Quantity)
	fmt.Fprintf(w, "Calories: %d\nProtein: %.1fg (%d%%)\nCarbs: %.1fg (%d%%)\nFat: %.1fg (%d%%)\n",
		n.Calories,
		n.ProteinG, view.MacroPercents.Protein,
		n.CarbsG, view.MacroPercents.Carbs,
		n.FatG, view.MacroPercents.Fat)
	for _, a := range view.Micronutrients {
		pct := "-"
		if a.PercentOfDailyValue != nil {
			pct = fmt.Sprintf("%d%%", *a.PercentOfDailyValue)
		}
		signal := string(a.Signal)
		if a.Flag != "" {
			signal += " (" + string(a.Flag) + ")"
		}
		fmt.Fprintf(w, "  %-12s %.1f%s %s %s\n", a.Nutrient, a.Amount, a.Unit, pct, signal)
	}
}
