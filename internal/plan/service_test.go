package plan

import (
	"context"
	"errors"
	"testing"

	"nutriplan/models"
)

func TestCreatePlanPersistsEveryDay(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	svc := NewService(NewGenerator(nil), store)

	p, err := svc.CreatePlan(context.Background(), "user-1", models.Profile{}, Options{StartDate: "2024-06-01"})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	if p.StartDate != "2024-06-01" || p.EndDate != "2024-07-30" || len(p.Menus) != Days {
		t.Fatalf("unexpected plan %s..%s with %d menus", p.StartDate, p.EndDate, len(p.Menus))
	}
	for _, menu := range p.Menus {
		if menu.ID == "" {
			t.Fatalf("expected persisted id for %s", menu.TargetDate)
		}
	}
	if len(store.menus) != Days {
		t.Fatalf("expected %d stored menus, got %d", Days, len(store.menus))
	}
}

func TestCreatePlanReplacesExistingDates(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	svc := NewService(NewGenerator(nil), store)
	ctx := context.Background()

	first, err := svc.CreatePlan(ctx, "user-1", models.Profile{}, Options{StartDate: "2024-06-01"})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	if _, err := store.Update(ctx, first.Menus[0].ID, map[string]any{"is_favorite": true}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	second, err := svc.CreatePlan(ctx, "user-1", models.Profile{}, Options{Lifestyle: LifestyleEasy, StartDate: "2024-06-01"})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	if len(store.menus) != Days {
		t.Fatalf("expected upsert to keep %d menus, got %d", Days, len(store.menus))
	}
	if second.Menus[0].ID != first.Menus[0].ID || !second.Menus[0].IsFavorite {
		t.Fatalf("expected id and favorite flag to survive, got %+v", second.Menus[0])
	}
}

func TestCreatePlanFailures(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.insertErr = errDriver
	svc := NewService(NewGenerator(nil), store)

	if _, err := svc.CreatePlan(context.Background(), "user-1", models.Profile{}, Options{StartDate: "2024-06-01"}); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := svc.CreatePlan(context.Background(), "", models.Profile{}, Options{StartDate: "2024-06-01"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(store.menus) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(store.menus))
	}
}

func TestSaveMenuComputesMissingTotals(t *testing.T) {
	t.Parallel()

	svc := NewService(NewGenerator(nil), newMemoryStore())
	menu := models.DailyMenu{
		Title:      "Light day",
		TargetDate: "2024-06-01",
		CreatedBy:  "user-1",
		Meals: []models.Meal{
			{MealType: models.MealLunch, Dishes: []models.Dish{{Name: "Soup", Calories: 320, Protein: 12, Carbs: 40, Fat: 9}}},
			{MealType: models.MealLunch, Dishes: []models.Dish{{Name: "Bread", Calories: 150, Protein: 5, Carbs: 28, Fat: 2}}},
		},
	}

	saved, err := svc.SaveMenu(context.Background(), menu)
	if err != nil {
		t.Fatalf("SaveMenu() error = %v", err)
	}
	if saved.ID == "" || saved.TotalCalories != 470 || saved.TotalProtein != 17 {
		t.Fatalf("unexpected saved menu %+v", saved)
	}
}

func TestSaveMenuKeepsSuppliedTotals(t *testing.T) {
	t.Parallel()

	svc := NewService(NewGenerator(nil), newMemoryStore())
	menu := models.DailyMenu{
		TargetDate:    "2024-06-01",
		CreatedBy:     "user-1",
		TotalCalories: 999,
		Meals:         []models.Meal{{MealType: models.MealSnack, Dishes: []models.Dish{{Name: "Nuts", Calories: 200}}}},
	}
	saved, err := svc.SaveMenu(context.Background(), menu)
	if err != nil {
		t.Fatalf("SaveMenu() error = %v", err)
	}
	if saved.TotalCalories != 999 {
		t.Fatalf("expected supplied total to be kept, got %.1f", saved.TotalCalories)
	}
}

func TestSaveMenuValidation(t *testing.T) {
	t.Parallel()

	svc := NewService(NewGenerator(nil), newMemoryStore())
	meals := []models.Meal{{MealType: models.MealSnack}}
	cases := map[string]models.DailyMenu{
		"owner":     {TargetDate: "2024-06-01", Meals: meals},
		"date":      {CreatedBy: "u", TargetDate: "June 1", Meals: meals},
		"meals":     {CreatedBy: "u", TargetDate: "2024-06-01"},
		"meal type": {CreatedBy: "u", TargetDate: "2024-06-01", Meals: []models.Meal{{MealType: "brunch"}}},
	}
	for name, menu := range cases {
		if _, err := svc.SaveMenu(context.Background(), menu); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}
