package main

import (
	"fmt"
	"strings"

	"github.com/macrolens/servings/internal/domain"
	"github.com/macrolens/servings/internal/usecase"
	"github.com/spf13/cobra"
)

func newScaleCmd(opts *rootOptions) *cobra.Command {
	var (
		grams    float64
		custom   string
		quantity float64
		label    string
	)
	cmd := &cobra.Command{
		Use:   "scale <payload.json>",
		Short: "Scale a food's nutrition to a serving, custom amount and quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if grams < 0 {
				return fmt.Errorf("--grams must be > 0")
			}
			if quantity <= 0 {
				return fmt.Errorf("--qty must be > 0")
			}
			food, err := loadFood(args[0])
			if err != nil {
				return err
			}
			svc := usecase.NewServingService(opts.maxPresets)

			sel := domain.NewServingSelection()
			sel.Quantity = quantity
			if label = strings.TrimSpace(label); label != "" {
				opt, ok := findServing(food, svc, label)
				if !ok {
					return fmt.Errorf("no serving labelled %q", label)
				}
				sel.SelectedServing = &opt
			}
			if grams > 0 {
				sel = sel.WithCustomAmount(grams, true)
			}
			if custom != "" {
				var accepted bool
				sel, accepted = svc.ApplyCustomText(food, sel, custom)
				if !accepted {
					fmt.Fprintf(cmd.ErrOrStderr(), "ignoring custom amount %q: need a number of at least 0.25\n", custom)
				}
			}

			view, err := svc.View(food, sel)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			writeView(cmd.OutOrStdout(), view)
			return nil
		},
	}
	cmd.Flags().Float64Var(&grams, "grams", 0, "Custom amount in grams")
	cmd.Flags().StringVar(&custom, "custom", "", "Custom amount in the food's own unit, e.g. 1.5")
	cmd.Flags().Float64Var(&quantity, "qty", 1, "Number of servings")
	cmd.Flags().StringVar(&label, "serving", "", "Preset or serving option label to select")
	return cmd
}

// findServing looks the label up among the presets first, then the food's own options
func findServing(food *domain.FoodRecord, svc *usecase.ServingService, label string) (domain.ServingOption, bool) {
	view, err := svc.View(food, domain.NewServingSelection())
	if err == nil {
		for _, p := range view.Presets {
			if strings.EqualFold(p.Label, label) {
				return p, true
			}
		}
	}
	for _, opt := range food.ServingOptions {
		if strings.EqualFold(opt.Label, label) {
			return opt, true
		}
	}
	return domain.ServingOption{}, false
}
