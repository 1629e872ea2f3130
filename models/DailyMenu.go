package models

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DateLayout is the on-disk and wire format of DailyMenu.TargetDate.
const DateLayout = "2006-01-02"

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// MealTypes lists the supported meal types in serving order.
var MealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

// DailyMenu is one day of a user's nutrition plan.
type DailyMenu struct {
	ID            string                    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
	Title         string                    `gorm:"not null" json:"title"`
	TargetDate    string                    `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_menus_owner_date,priority:2" json:"target_date"`
	TotalCalories float64                   `gorm:"not null;default:0" json:"total_calories"`
	TotalProtein  float64                   `gorm:"not null;default:0" json:"total_protein"`
	TotalCarbs    float64                   `gorm:"not null;default:0" json:"total_carbs"`
	TotalFat      float64                   `gorm:"not null;default:0" json:"total_fat"`
	Meals         datatypes.JSONSlice[Meal] `json:"meals"`
	CreatedBy     string                    `gorm:"type:varchar(64);not null;uniqueIndex:idx_daily_menus_owner_date,priority:1" json:"created_by"`
	IsFavorite    bool                      `gorm:"not null;default:false" json:"is_favorite"`
}

// Meal is one serving slot of a DailyMenu.
type Meal struct {
	MealType string `json:"meal_type"`
	Dishes   []Dish `json:"dishes"`
}

// Dish is a single recipe within a meal.
type Dish struct {
	Name        string       `json:"name"`
	Calories    float64      `json:"calories"`
	Protein     float64      `json:"protein"`
	Carbs       float64      `json:"carbs"`
	Fat         float64      `json:"fat"`
	Ingredients []Ingredient `json:"ingredients"`
	Recipe      string       `json:"recipe"`
}

// Macros groups the four tracked nutrition totals.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the element-wise sum of m and other.
func (m Macros) Add(other Macros) Macros {
	return Macros{
		Calories: m.Calories + other.Calories,
		Protein:  m.Protein + other.Protein,
		Carbs:    m.Carbs + other.Carbs,
		Fat:      m.Fat + other.Fat,
	}
}

func (d Dish) Macros() Macros {
	return Macros{Calories: d.Calories, Protein: d.Protein, Carbs: d.Carbs, Fat: d.Fat}
}

func (d *DailyMenu) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return
}

// Totals returns the stored aggregate macros.
func (d DailyMenu) Totals() Macros {
	return Macros{
		Calories: d.TotalCalories,
		Protein:  d.TotalProtein,
		Carbs:    d.TotalCarbs,
		Fat:      d.TotalFat,
	}
}

// DishTotals sums the macros of every dish in every meal.
func (d DailyMenu) DishTotals() Macros {
	var sum Macros
	for _, meal := range d.Meals {
		for _, dish := range meal.Dishes {
			sum = sum.Add(dish.Macros())
		}
	}
	return sum
}

// TotalsConsistent reports whether the stored totals match the dish sums to 0.5 units.
func (d DailyMenu) TotalsConsistent() bool {
	got, want := d.Totals(), d.DishTotals()
	return near(got.Calories, want.Calories) &&
		near(got.Protein, want.Protein) &&
		near(got.Carbs, want.Carbs) &&
		near(got.Fat, want.Fat)
}

// RecalculateTotals overwrites the aggregate macros with the dish sums.
func (d *DailyMenu) RecalculateTotals() {
	sum := d.DishTotals()
	d.TotalCalories = round1(sum.Calories)
	d.TotalProtein = round1(sum.Protein)
	d.TotalCarbs = round1(sum.Carbs)
	d.TotalFat = round1(sum.Fat)
}

// Date parses TargetDate in UTC.
func (d DailyMenu) Date() (time.Time, error) {
	return time.Parse(DateLayout, d.TargetDate)
}

// OwnerKey formats an account id the way it is stored in DailyMenu.CreatedBy.
func OwnerKey(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

// ValidMealType reports whether value is one of MealTypes.
func ValidMealType(value string) bool {
	for _, t := range MealTypes {
		if t == value {
			return true
		}
	}
	return false
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 0.5
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
