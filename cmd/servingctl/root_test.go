package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/macrolens/servings/internal/domain"
	"github.com/macrolens/servings/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eggRecord = `{
	"id": "manual:egg",
	"name": "Egg, whole, raw",
	"baseServing": {"unit": "large", "amountGrams": 50, "description": "1 large egg"},
	"servingOptions": [],
	"macros": {"calories": 72, "proteinG": 6.3, "carbsG": 0.4, "fatG": 4.8},
	"micronutrients": {"sodiumMg": 71, "cholesterolMg": 186, "potassiumMg": 69},
	"source": {"kind": "manual", "providerId": "egg"}
}`

const peanutButterDetails = `{
	"fdcId": 2262072,
	"description": "Peanut butter, smooth",
	"foodPortions": [
		{"amount": 2, "unitName": "tbsp", "gramWeight": 32}
	],
	"foodNutrients": [
		{"nutrient": {"id": 1008, "name": "Energy", "unitName": "kcal"}, "amount": 600},
		{"nutrient": {"id": 1003, "name": "Protein", "unitName": "g"}, "amount": 25},
		{"nutrient": {"id": 1005, "name": "Carbohydrate, by difference", "unitName": "g"}, "amount": 20},
		{"nutrient": {"id": 1004, "name": "Total lipid (fat)", "unitName": "g"}, "amount": 50}
	]
}`

func writePayload(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "presets")
	assert.Contains(t, out, "scale")
	assert.Contains(t, out, "fetch")
}

func TestPresetsCommand_FoodRecord(t *testing.T) {
	path := writePayload(t, eggRecord)

	out, err := run(t, "presets", path, "--json")
	require.NoError(t, err)

	var presets []domain.ServingOption
	require.NoError(t, json.Unmarshal([]byte(out), &presets))
	assert.Equal(t, []domain.ServingOption{
		{Label: "1 item", AmountInGrams: 50},
		{Label: "2 items", AmountInGrams: 100},
		{Label: "3 items", AmountInGrams: 150},
	}, presets)
}

func TestPresetsCommand_USDAPayload(t *testing.T) {
	path := writePayload(t, peanutButterDetails)

	out, err := run(t, "presets", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Food: Peanut butter, smooth")
	assert.Contains(t, out, "1 tbsp")
	assert.Contains(t, out, "3 tbsp")
	assert.Contains(t, out, "Calories: 192")
}

func TestPresetsCommand_Errors(t *testing.T) {
	_, err := run(t, "presets", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := writePayload(t, `{"name": "broken", "baseServing": {"amountGrams": 0}}`)
	_, err = run(t, "presets", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidFoodRecord)
}

func TestScaleCommand(t *testing.T) {
	path := writePayload(t, eggRecord)

	tests := []struct {
		name         string
		args         []string
		wantGrams    float64
		wantCalories int
	}{
		{name: "base serving", args: nil, wantGrams: 50, wantCalories: 72},
		{name: "grams", args: []string{"--grams", "100"}, wantGrams: 100, wantCalories: 144},
		{name: "custom units", args: []string{"--custom", "3"}, wantGrams: 150, wantCalories: 216},
		{name: "preset with quantity", args: []string{"--serving", "2 items", "--qty", "2"}, wantGrams: 100, wantCalories: 288},
		{name: "rejected custom text", args: []string{"--custom", "0.1"}, wantGrams: 50, wantCalories: 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"scale", path, "--json"}, tt.args...)
			buf := &bytes.Buffer{}
			cmd := newRootCmd()
			cmd.SetOut(buf)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(args)
			require.NoError(t, cmd.Execute())

			var view usecase.ServingView
			require.NoError(t, json.Unmarshal(buf.Bytes(), &view))
			assert.Equal(t, tt.wantGrams, view.Nutrition.EffectiveGrams)
			assert.Equal(t, tt.wantCalories, view.Nutrition.Calories)
		})
	}
}

func TestScaleCommand_UnknownServing(t *testing.T) {
	path := writePayload(t, eggRecord)
	_, err := run(t, "scale", path, "--serving", "1 cup")
	assert.ErrorContains(t, err, "no serving labelled")
}

func TestFetchCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/food/2262072", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(peanutButterDetails))
	}))
	defer server.Close()

	out, err := run(t, "fetch", "2262072", "--api-key", "test-key", "--base-url", server.URL, "--json")
	require.NoError(t, err)

	var view usecase.ServingView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "usda:2262072", view.Food.ID)
	assert.Equal(t, 32.0, view.Food.BaseServing.AmountGrams)
	require.Len(t, view.Presets, 3)
	assert.Equal(t, "2 tbsp", view.Presets[1].Label)
}

func TestFetchCommand_RequiresAPIKey(t *testing.T) {
	t.Setenv(apiKeyEnv, "")
	_, err := run(t, "fetch", "123")
	assert.ErrorContains(t, err, "API key is required")
}
