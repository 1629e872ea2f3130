package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Ingredient is either free text ("oats" or "oats 40g") or a measured pair
// of name and quantity. Both shapes appear in stored menus and AI output.
type Ingredient struct {
	Name     string
	Quantity string
	measured bool
}

// PlainIngredient wraps a free-text ingredient.
func PlainIngredient(text string) Ingredient {
	return Ingredient{Name: strings.TrimSpace(text)}
}

// MeasuredIngredient builds a name and quantity pair.
func MeasuredIngredient(name, quantity string) Ingredient {
	return Ingredient{
		Name:     strings.TrimSpace(name),
		Quantity: strings.TrimSpace(quantity),
		measured: true,
	}
}

// IsMeasured reports whether the ingredient carries a separate quantity.
func (i Ingredient) IsMeasured() bool {
	return i.measured
}

// Label renders the ingredient for display and shopping lists.
func (i Ingredient) Label() string {
	if i.measured {
		return strings.TrimSpace(i.Name + " " + i.Quantity)
	}
	text := strings.TrimSpace(i.Name)
	switch {
	case text == "":
		return ""
	case strings.Contains(text, " "):
		return text
	default:
		return text + " as needed"
	}
}

type measuredIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

func (i Ingredient) MarshalJSON() ([]byte, error) {
	if i.measured {
		return json.Marshal(measuredIngredient{Name: i.Name, Quantity: i.Quantity})
	}
	return json.Marshal(i.Name)
}

func (i *Ingredient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*i = Ingredient{}
		return nil
	case data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*i = PlainIngredient(text)
		return nil
	case data[0] == '{':
		var pair measuredIngredient
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		if strings.TrimSpace(pair.Quantity) == "" {
			*i = PlainIngredient(pair.Name)
			return nil
		}
		*i = MeasuredIngredient(pair.Name, pair.Quantity)
		return nil
	default:
		return fmt.Errorf("models: unsupported ingredient value %s", data)
	}
}
