package domain

import "strings"

// USDAFoodDetails is the decoded FoodData Central food-details payload
type USDAFoodDetails struct {
	FdcID           int64                `json:"fdcId"`
	Description     string               `json:"description"`
	BrandOwner      string               `json:"brandOwner,omitempty"`
	DataType        string               `json:"dataType,omitempty"`
	PublicationDate string               `json:"publicationDate,omitempty"`
	FoodPortions    []USDAPortion        `json:"foodPortions"`
	FoodNutrients   []USDANutrientRecord `json:"foodNutrients"`
}

// USDAPortion is one household measure of a food with its gram weight
type USDAPortion struct {
	GramWeight       float64          `json:"gramWeight,omitempty"`
	Amount           float64          `json:"amount,omitempty"`
	Modifier         string           `json:"modifier,omitempty"`
	UnitName         string           `json:"unitName,omitempty"`
	UnitAbbreviation string           `json:"unitAbbreviation,omitempty"`
	MeasureUnit      *USDAMeasureUnit `json:"measureUnit,omitempty"`
}

// USDAMeasureUnit is the nested unit object FDC attaches to portions
type USDAMeasureUnit struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// undeterminedUnit is FDC's placeholder for portions without a real unit
const undeterminedUnit = "undetermined"

// Unit returns the portion's unit name and abbreviation, preferring the flat fields
func (p USDAPortion) Unit() (name, abbreviation string) {
	name = strings.TrimSpace(p.UnitName)
	abbreviation = strings.TrimSpace(p.UnitAbbreviation)
	if p.MeasureUnit != nil {
		if name == "" {
			name = strings.TrimSpace(p.MeasureUnit.Name)
		}
		if abbreviation == "" {
			abbreviation = strings.TrimSpace(p.MeasureUnit.Abbreviation)
		}
	}
	if strings.EqualFold(name, undeterminedUnit) {
		name = ""
	}
	if strings.EqualFold(abbreviation, undeterminedUnit) {
		abbreviation = ""
	}
	return name, abbreviation
}

// USDANutrientRecord is a nutrient entry in either of the two encodings FDC emits:
// nested {nutrient:{id,name,unitName}, amount} from food details, or flat
// {nutrientId, nutrientName, unitName, value} from search results.
type USDANutrientRecord struct {
	// nested shape
	Nutrient *USDANutrientRef `json:"nutrient,omitempty"`
	Amount   *float64         `json:"amount,omitempty"`

	// flat shape
	NutrientID   int     `json:"nutrientId,omitempty"`
	NutrientName string  `json:"nutrientName,omitempty"`
	UnitName     string  `json:"unitName,omitempty"`
	Value        float64 `json:"value,omitempty"`
}

// USDANutrientRef identifies a nutrient inside the nested shape
type USDANutrientRef struct {
	ID       int    `json:"id"`
	Number   string `json:"number,omitempty"`
	Name     string `json:"name"`
	UnitName string `json:"unitName"`
}

// Nutrient is the unified nutrient record every lookup works against.
// ID is 0 when the payload carried none.
type Nutrient struct {
	ID       int
	Name     string
	UnitName string
	Amount   float64
}

// IsNested reports whether the record uses the nested encoding
func (r USDANutrientRecord) IsNested() bool {
	return r.Nutrient != nil || r.Amount != nil
}

// Normalize folds either encoding into a Nutrient
func (r USDANutrientRecord) Normalize() Nutrient {
	if r.IsNested() {
		n := Nutrient{}
		if r.Nutrient != nil {
			n.ID = r.Nutrient.ID
			n.Name = strings.TrimSpace(r.Nutrient.Name)
			n.UnitName = strings.TrimSpace(r.Nutrient.UnitName)
		}
		if r.Amount != nil {
			n.Amount = *r.Amount
		}
		return n
	}
	return Nutrient{
		ID:       r.NutrientID,
		Name:     strings.TrimSpace(r.NutrientName),
		UnitName: strings.TrimSpace(r.UnitName),
		Amount:   r.Value,
	}
}
