package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	applog "nutriplan/internal/log"
	"nutriplan/models"
)

// Service composes plan generation with persistence.
type Service struct {
	generator *Generator
	store     Store
}

func NewService(generator *Generator, store Store) *Service {
	return &Service{generator: generator, store: store}
}

// CreatePlan generates Days menus and stores them in one batch. No partial
// plan is returned when the write fails.
func (s *Service) CreatePlan(ctx context.Context, userID string, profile models.Profile, opts Options) (NutritionPlan, error) {
	menus, err := s.generator.Generate(userID, profile, opts)
	if err != nil {
		return NutritionPlan{}, err
	}

	saved, err := s.store.InsertMany(ctx, menus)
	if err != nil {
		if !errors.Is(err, ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		applog.Error(ctx, "failed to store generated plan", "user_id", userID, "start_date", opts.StartDate, "error", err)
		return NutritionPlan{}, err
	}

	start, _ := time.Parse(models.DateLayout, opts.StartDate)
	applog.Info(ctx, "nutrition plan created", "user_id", userID, "start_date", opts.StartDate, "days", len(saved))
	return NutritionPlan{
		UserID:    userID,
		StartDate: opts.StartDate,
		EndDate:   start.AddDate(0, 0, Days-1).Format(models.DateLayout),
		Menus:     saved,
	}, nil
}

// SaveMenu upserts a single menu for its owner and date.
func (s *Service) SaveMenu(ctx context.Context, menu models.DailyMenu) (models.DailyMenu, error) {
	if menu.CreatedBy == "" {
		return models.DailyMenu{}, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if _, err := time.Parse(models.DateLayout, menu.TargetDate); err != nil {
		return models.DailyMenu{}, fmt.Errorf("%w: target date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if len(menu.Meals) == 0 {
		return models.DailyMenu{}, fmt.Errorf("%w: at least one meal is required", ErrInvalidInput)
	}
	for _, meal := range menu.Meals {
		if !models.ValidMealType(meal.MealType) {
			return models.DailyMenu{}, fmt.Errorf("%w: unknown meal type %q", ErrInvalidInput, meal.MealType)
		}
	}
	NormalizeTotals(ctx, &menu)

	saved, err := s.store.InsertMany(ctx, []models.DailyMenu{menu})
	if err != nil {
		return models.DailyMenu{}, err
	}
	if len(saved) != 1 {
		return models.DailyMenu{}, fmt.Errorf("%w: expected one saved menu, got %d", ErrStoreUnavailable, len(saved))
	}
	return saved[0], nil
}

// NormalizeTotals fills zero totals from the dish sums. Totals supplied by
// the caller are kept; a disagreement with the dishes is only logged.
func NormalizeTotals(ctx context.Context, menu *models.DailyMenu) {
	if menu.Totals() == (models.Macros{}) {
		menu.RecalculateTotals()
		return
	}
	if !menu.TotalsConsistent() {
		applog.Debug(ctx, "menu totals differ from dish sums",
			"target_date", menu.TargetDate,
			"totals", menu.Totals(),
			"dish_totals", menu.DishTotals(),
		)
	}
}
