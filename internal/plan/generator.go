package plan

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"nutriplan/internal/catalog"
	"nutriplan/internal/nutrition"
	"nutriplan/models"
)

// Days is the length of a generated plan.
const Days = 60

const (
	LifestyleEasy      = "easy"
	LifestyleStandard  = "standard"
	LifestyleEfficient = "efficient"
)

// maxCalorieOffset is the largest fraction trimmed from a meal's calorie share.
const maxCalorieOffset = 0.11

// mealShares divides the daily calorie baseline between the meal slots.
var mealShares = map[string]float64{
	models.MealBreakfast: 400.0 / 1800,
	models.MealLunch:     550.0 / 1800,
	models.MealDinner:    650.0 / 1800,
	models.MealSnack:     200.0 / 1800,
}

type macroSplit struct {
	protein, carbs, fat float64
}

var lifestyleSplits = map[string]macroSplit{
	LifestyleEasy:      {protein: 0.20, carbs: 0.50, fat: 0.30},
	LifestyleStandard:  {protein: 0.25, carbs: 0.45, fat: 0.30},
	LifestyleEfficient: {protein: 0.30, carbs: 0.40, fat: 0.30},
}

// Options configures one plan generation. WeightLossGoal is a percentage of
// body weight; it does not change the generated menus.
type Options struct {
	Lifestyle      string  `json:"lifestyle"`
	StartDate      string  `json:"start_date"`
	WeightLossGoal float64 `json:"weight_loss_goal"`
}

// Generator builds 60-day plans from a dish catalog. It performs no I/O.
type Generator struct {
	picker catalog.Picker

	mu   sync.Mutex
	rand *rand.Rand
}

type GeneratorOption func(*Generator)

// WithRand fixes the source of calorie jitter, mainly for tests.
func WithRand(r *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		g.rand = r
	}
}

func NewGenerator(picker catalog.Picker, opts ...GeneratorOption) *Generator {
	if picker == nil {
		picker = catalog.Default()
	}
	g := &Generator{picker: picker}
	for _, opt := range opts {
		opt(g)
	}
	if g.rand == nil {
		g.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Generate returns Days menus for userID ascending from opts.StartDate.
// Each call draws fresh jitter, so repeated calls differ.
func (g *Generator) Generate(userID string, profile models.Profile, opts Options) ([]models.DailyMenu, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	lifestyle := strings.ToLower(strings.TrimSpace(opts.Lifestyle))
	if lifestyle == "" {
		lifestyle = LifestyleStandard
	}
	split, ok := lifestyleSplits[lifestyle]
	if !ok {
		return nil, fmt.Errorf("%w: unknown lifestyle %q", ErrInvalidInput, opts.Lifestyle)
	}
	start, err := time.Parse(models.DateLayout, opts.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if opts.WeightLossGoal < 0 || opts.WeightLossGoal >= 100 || math.IsNaN(opts.WeightLossGoal) {
		return nil, fmt.Errorf("%w: weight loss goal must be a percentage between 0 and 100", ErrInvalidInput)
	}

	baseline := float64(nutrition.DailyCalories(profile))
	picker := catalog.Snapshot(g.picker)

	g.mu.Lock()
	defer g.mu.Unlock()
	menus := make([]models.DailyMenu, 0, Days)
	for i := range Days {
		menus = append(menus, g.day(picker, userID, start.AddDate(0, 0, i), i, lifestyle, split, baseline))
	}
	return menus, nil
}

func (g *Generator) day(picker catalog.Picker, userID string, date time.Time, index int, lifestyle string, split macroSplit, baseline float64) models.DailyMenu {
	dayNumber := index + 1
	meals := make([]models.Meal, 0, len(models.MealTypes))
	for _, mealType := range models.MealTypes {
		template := picker.Pick(mealType, index)
		share := baseline * mealShares[mealType]
		calories := math.Min(math.Ceil(share*(1-g.rand.Float64()*maxCalorieOffset)*10)/10, share)

		meals = append(meals, models.Meal{
			MealType: mealType,
			Dishes: []models.Dish{{
				Name:        fmt.Sprintf("%s (day %d)", template.Name, dayNumber),
				Calories:    calories,
				Protein:     grams(calories, split.protein, 4),
				Carbs:       grams(calories, split.carbs, 4),
				Fat:         grams(calories, split.fat, 9),
				Ingredients: append([]models.Ingredient(nil), template.Ingredients...),
				Recipe:      template.Recipe,
			}},
		})
	}

	menu := models.DailyMenu{
		Title:      fmt.Sprintf("Day %d %s plan", dayNumber, lifestyle),
		TargetDate: date.Format(models.DateLayout),
		Meals:      meals,
		CreatedBy:  userID,
	}
	menu.RecalculateTotals()
	return menu
}

func grams(calories, fraction, kcalPerGram float64) float64 {
	return math.Round(calories*fraction/kcalPerGram*10) / 10
}
