package main

import (
	"github.com/macrolens/servings/internal/domain"
	"github.com/macrolens/servings/internal/usecase"
	"github.com/spf13/cobra"
)

func newPresetsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presets <payload.json>",
		Short: "Show the serving presets for a food record or USDA payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			food, err := loadFood(args[0])
			if err != nil {
				return err
			}
			view, err := usecase.NewServingService(opts.maxPresets).View(food, domain.NewServingSelection())
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), view.Presets)
			}
			writeView(cmd.OutOrStdout(), view)
			return nil
		},
	}
}
