package serving

import (
	"testing"

	"github.com/macrolens/servings/internal/domain"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		description string
		unit        string
		want        Domain
	}{
		{name: "slice", description: "1 slice", unit: "", want: DomainSlice},
		{name: "slice beats cup", description: "1 slice (1 cup)", unit: "", want: DomainSlice},
		{name: "cup", description: "1/2 cup dry", unit: "", want: DomainCup},
		{name: "cup from unit", description: "", unit: "CUP", want: DomainCup},
		{name: "tbsp", description: "2 tbsp", unit: "", want: DomainTbsp},
		{name: "tablespoon", description: "1 Tablespoon", unit: "", want: DomainTbsp},
		{name: "tsp", description: "1 tsp", unit: "", want: DomainTsp},
		{name: "teaspoon", description: "½ teaspoon", unit: "", want: DomainTsp},
		{name: "ml", description: "240 ml", unit: "", want: DomainML},
		{name: "milliliter", description: "250 Milliliter", unit: "", want: DomainML},
		{name: "piece", description: "1 piece", unit: "", want: DomainPieceOrItem},
		{name: "item", description: "1 item", unit: "", want: DomainPieceOrItem},
		{name: "egg with gram unit", description: "1 large egg", unit: "g", want: DomainPieceOrItem},
		{name: "apple", description: "1 medium apple", unit: "", want: DomainPieceOrItem},
		{name: "gram unit", description: "100 g", unit: "g", want: DomainGram},
		{name: "grams unit", description: "serving", unit: "Grams", want: DomainGram},
		{name: "unknown", description: "1 serving", unit: "oz", want: DomainUnknown},
		{name: "empty", description: "", unit: "", want: DomainUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.description, tt.unit); got != tt.want {
				t.Errorf("Detect(%q, %q) = %v, want %v", tt.description, tt.unit, got, tt.want)
			}
		})
	}
}

func TestDetectFood(t *testing.T) {
	food := domain.FoodRecord{BaseServing: domain.BaseServing{Unit: "g", AmountGrams: 32, Description: "2 tbsp"}}
	if got := DetectFood(food); got != DomainTbsp {
		t.Errorf("DetectFood() = %v, want %v", got, DomainTbsp)
	}
}

func TestDomainUnitNames(t *testing.T) {
	tests := []struct {
		domain       Domain
		wantSingular string
		wantPlural   string
		wantOK       bool
	}{
		{DomainCup, "cup", "cups", true},
		{DomainTbsp, "tbsp", "tbsp", true},
		{DomainTsp, "tsp", "tsp", true},
		{DomainML, "ml", "ml", true},
		{DomainSlice, "slice", "slices", true},
		{DomainPieceOrItem, "item", "items", true},
		{DomainGram, "", "", false},
		{DomainUnknown, "", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.domain), func(t *testing.T) {
			s, p, ok := tt.domain.UnitNames()
			if s != tt.wantSingular || p != tt.wantPlural || ok != tt.wantOK {
				t.Errorf("UnitNames() = (%q, %q, %v), want (%q, %q, %v)", s, p, ok, tt.wantSingular, tt.wantPlural, tt.wantOK)
			}
		})
	}
}

func TestDomainIsGramBased(t *testing.T) {
	if !DomainGram.IsGramBased() || !DomainUnknown.IsGramBased() {
		t.Error("gram and unknown must be gram based")
	}
	if DomainCup.IsGramBased() || DomainPieceOrItem.IsGramBased() {
		t.Error("household domains must not be gram based")
	}
}
