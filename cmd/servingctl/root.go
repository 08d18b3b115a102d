package main

import (
	"fmt"
	"os"

	"github.com/macrolens/servings/internal/serving"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	jsonOutput bool
	maxPresets int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "servingctl",
		Short:         "servingctl previews serving presets and scaled nutrition for a food",
		Long:          "servingctl runs the serving-size engine against a food record, a USDA food-details payload, or a live FDC lookup.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Print JSON instead of text")
	cmd.PersistentFlags().IntVar(&opts.maxPresets, "max-presets", serving.DefaultPresetCount, "Maximum number of presets to offer")

	cmd.AddCommand(newPresetsCmd(opts))
	cmd.AddCommand(newScaleCmd(opts))
	cmd.AddCommand(newFetchCmd(opts))
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
