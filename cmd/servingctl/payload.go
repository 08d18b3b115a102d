package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/macrolens/servings/internal/domain"
	"github.com/macrolens/servings/internal/usecase"
)

// payloadProbe tells a raw USDA food-details payload apart from a canonical food record
type payloadProbe struct {
	FdcID         json.RawMessage `json:"fdcId"`
	FoodNutrients json.RawMessage `json:"foodNutrients"`
}

// loadFood reads a food record, or a USDA payload that is mapped on the fly
func loadFood(path string) (*domain.FoodRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	var probe payloadProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("decode payload %s: %w", path, err)
	}

	if probe.FdcID != nil || probe.FoodNutrients != nil {
		var details domain.USDAFoodDetails
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, fmt.Errorf("decode USDA payload %s: %w", path, err)
		}
		return usecase.MapFoodDetails(&details, time.Now())
	}

	var food domain.FoodRecord
	if err := json.Unmarshal(raw, &food); err != nil {
		return nil, fmt.Errorf("decode food record %s: %w", path, err)
	}
	if err := food.Validate(); err != nil {
		return nil, err
	}
	return &food, nil
}
