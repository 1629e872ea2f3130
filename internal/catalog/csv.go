package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"nutriplan/models"
)

var expectedHeader = []string{"meal_type", "name", "ingredients", "recipe"}

// ParseCSV reads dish templates from r. Ingredients are written as
// "name:quantity;name:quantity"; an entry without a colon is kept as free text.
func ParseCSV(r io.Reader) (map[string][]DishTemplate, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(expectedHeader) {
		return nil, fmt.Errorf("invalid header length: expected %d columns, got %d", len(expectedHeader), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(strings.ToLower(h)) != expectedHeader[i] {
			return nil, fmt.Errorf("invalid header: expected %s at position %d, got %s", expectedHeader[i], i, h)
		}
	}

	dishes := map[string][]DishTemplate{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		mealType := strings.ToLower(strings.TrimSpace(record[0]))
		if !models.ValidMealType(mealType) {
			return nil, fmt.Errorf("line %d: unknown meal type %q", line, record[0])
		}
		name := strings.TrimSpace(record[1])
		if name == "" {
			return nil, fmt.Errorf("line %d: dish name is required", line)
		}

		dishes[mealType] = append(dishes[mealType], DishTemplate{
			Name:        name,
			Ingredients: parseIngredients(record[2]),
			Recipe:      strings.TrimSpace(record[3]),
		})
	}

	return dishes, nil
}

func parseIngredients(value string) []models.Ingredient {
	ingredients := []models.Ingredient{}
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, quantity, found := strings.Cut(part, ":")
		if !found || strings.TrimSpace(quantity) == "" {
			ingredients = append(ingredients, models.PlainIngredient(name))
			continue
		}
		ingredients = append(ingredients, models.MeasuredIngredient(name, quantity))
	}
	return ingredients
}

// LoadDir merges every *.csv file in dir into one catalog.
func LoadDir(dir string) (*Catalog, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing catalog files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("catalog: no csv files in %s", dir)
	}
	sort.Strings(paths)

	merged := map[string][]DishTemplate{}
	for _, path := range paths {
		dishes, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		for mealType, templates := range dishes {
			merged[mealType] = append(merged[mealType], templates...)
		}
	}

	return New(merged)
}

func loadFile(path string) (map[string][]DishTemplate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}
