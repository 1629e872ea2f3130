package catalog

import (
	"fmt"
	"sync"

	"nutriplan/models"
)

// DishTemplate is the reusable shape of a generated dish.
type DishTemplate struct {
	Name        string
	Ingredients []models.Ingredient
	Recipe      string
}

// Picker chooses the dish served for a meal type on a plan day.
type Picker interface {
	Pick(mealType string, day int) DishTemplate
}

// Catalog is an immutable set of dish templates keyed by meal type.
type Catalog struct {
	dishes map[string][]DishTemplate
}

// New validates that every meal type has at least one template.
func New(dishes map[string][]DishTemplate) (*Catalog, error) {
	copied := make(map[string][]DishTemplate, len(models.MealTypes))
	for _, mealType := range models.MealTypes {
		templates := dishes[mealType]
		if len(templates) == 0 {
			return nil, fmt.Errorf("catalog: no dishes for %s", mealType)
		}
		copied[mealType] = append([]DishTemplate(nil), templates...)
	}
	for mealType := range dishes {
		if !models.ValidMealType(mealType) {
			return nil, fmt.Errorf("catalog: unknown meal type %q", mealType)
		}
	}
	return &Catalog{dishes: copied}, nil
}

// Pick rotates through the templates of mealType by day index.
func (c *Catalog) Pick(mealType string, day int) DishTemplate {
	templates := c.dishes[mealType]
	if len(templates) == 0 {
		return DishTemplate{Name: mealType}
	}
	if day < 0 {
		day = -day
	}
	return templates[day%len(templates)]
}

// Len reports the number of templates for mealType.
func (c *Catalog) Len(mealType string) int {
	return len(c.dishes[mealType])
}

// Source holds the catalog currently in use and lets a watcher swap it.
type Source struct {
	mu      sync.RWMutex
	current *Catalog
}

// NewSource starts from initial, or the built-in catalog when initial is nil.
func NewSource(initial *Catalog) *Source {
	if initial == nil {
		initial = Default()
	}
	return &Source{current: initial}
}

func (s *Source) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Source) Set(c *Catalog) {
	if c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

func (s *Source) Pick(mealType string, day int) DishTemplate {
	return s.Current().Pick(mealType, day)
}

// Snapshot pins a swappable picker to the catalog it currently holds, so a
// reload cannot change dishes halfway through a plan. Other pickers are
// returned unchanged.
func Snapshot(p Picker) Picker {
	if s, ok := p.(interface{ Current() *Catalog }); ok {
		if c := s.Current(); c != nil {
			return c
		}
	}
	return p
}
