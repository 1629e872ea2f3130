package models

import "testing"

func sampleMenu() DailyMenu {
	return DailyMenu{
		Title:      "Sample",
		TargetDate: "2024-01-01",
		Meals: []Meal{
			{MealType: MealBreakfast, Dishes: []Dish{{Name: "Oats", Calories: 400, Protein: 20, Carbs: 50, Fat: 12}}},
			{MealType: MealLunch, Dishes: []Dish{
				{Name: "Rice", Calories: 300, Protein: 6, Carbs: 60, Fat: 2},
				{Name: "Chicken", Calories: 250, Protein: 40, Carbs: 0, Fat: 9},
			}},
		},
	}
}

func TestRecalculateTotals(t *testing.T) {
	t.Parallel()

	menu := sampleMenu()
	if menu.TotalsConsistent() {
		t.Fatal("expected zero totals to be inconsistent with dishes")
	}

	menu.RecalculateTotals()

	want := Macros{Calories: 950, Protein: 66, Carbs: 110, Fat: 23}
	if got := menu.Totals(); got != want {
		t.Fatalf("Totals() = %+v, want %+v", got, want)
	}
	if !menu.TotalsConsistent() {
		t.Fatal("expected totals to be consistent after recalculation")
	}
}

func TestOwnerKey(t *testing.T) {
	t.Parallel()

	if got := OwnerKey(42); got != "42" {
		t.Fatalf("OwnerKey(42) = %q", got)
	}
	if got := (User{}).OwnerKey(); got != "0" {
		t.Fatalf("zero user OwnerKey = %q", got)
	}
}

func TestValidMealType(t *testing.T) {
	t.Parallel()

	for _, value := range MealTypes {
		if !ValidMealType(value) {
			t.Fatalf("expected %q to be valid", value)
		}
	}
	if ValidMealType("brunch") {
		t.Fatal("expected brunch to be invalid")
	}
}

func TestDateParsesTargetDate(t *testing.T) {
	t.Parallel()

	menu := sampleMenu()
	date, err := menu.Date()
	if err != nil {
		t.Fatalf("Date() error = %v", err)
	}
	if date.Format(DateLayout) != "2024-01-01" {
		t.Fatalf("unexpected date %s", date)
	}
}
