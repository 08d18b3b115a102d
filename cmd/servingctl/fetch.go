package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/macrolens/servings/internal/domain"
	"github.com/macrolens/servings/internal/infrastructure/usda"
	"github.com/macrolens/servings/internal/usecase"
	"github.com/spf13/cobra"
)

const (
	defaultBaseURL = "https://api.nal.usda.gov/fdc"
	apiKeyEnv      = "SERVINGS_USDA_API_KEY"
)

func newFetchCmd(opts *rootOptions) *cobra.Command {
	var (
		apiKey  string
		baseURL string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "fetch <fdcId>",
		Short: "Look a food up in USDA FoodData Central and show its servings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(apiKey)
			if key == "" {
				key = strings.TrimSpace(os.Getenv(apiKeyEnv))
			}
			if key == "" {
				return fmt.Errorf("USDA API key is required (use --api-key or %s)", apiKeyEnv)
			}

			client := usda.NewClient(key, baseURL, usda.WithTimeout(timeout))
			foods := usecase.NewFoodService(nil, client, usecase.FoodServiceConfig{})

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout*2)
			defer cancel()
			food, err := foods.GetFood(ctx, args[0])
			if err != nil {
				return err
			}

			view, err := usecase.NewServingService(opts.maxPresets).View(food, domain.NewServingSelection())
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
	cmd.Flags().StringVar(&apiKey, "api-key", "", "USDA FoodData Central API key")
	cmd.Flags().StringVar(&baseURL, "base-url", defaultBaseURL, "USDA FoodData Central base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	return cmd
}
