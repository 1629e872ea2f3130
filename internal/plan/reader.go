package plan

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	applog "nutriplan/internal/log"
	"nutriplan/models"
)

// Reader loads the current plan window for a user.
type Reader struct {
	store    Store
	location *time.Location
	now      func() time.Time
}

type ReaderOption func(*Reader)

// WithLocation sets the time zone that decides which calendar day is today.
func WithLocation(loc *time.Location) ReaderOption {
	return func(r *Reader) {
		if loc != nil {
			r.location = loc
		}
	}
}

func WithClock(now func() time.Time) ReaderOption {
	return func(r *Reader) {
		if now != nil {
			r.now = now
		}
	}
}

func NewReader(store Store, opts ...ReaderOption) *Reader {
	r := &Reader{store: store, location: time.UTC, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Today is the current date in the reader's location.
func (r *Reader) Today() time.Time {
	now := r.now().In(r.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.location)
}

// Fetch returns the user's menus dated within [today, today+59].
func (r *Reader) Fetch(ctx context.Context, userID string) (NutritionPlan, error) {
	if strings.TrimSpace(userID) == "" {
		return NutritionPlan{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	today := r.Today()
	from := today.Format(models.DateLayout)
	to := today.AddDate(0, 0, Days-1).Format(models.DateLayout)

	menus, err := r.store.Find(ctx, Filter{CreatedBy: userID, From: from, To: to}, OrderAscending)
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			return NutritionPlan{}, err
		}
		return NutritionPlan{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(menus) == 0 {
		return NutritionPlan{}, ErrNoPlan
	}

	slices.SortStableFunc(menus, func(a, b models.DailyMenu) int {
		return strings.Compare(a.TargetDate, b.TargetDate)
	})

	return NutritionPlan{UserID: userID, StartDate: from, EndDate: to, Menus: menus}, nil
}

// GetUserPlan is Fetch with every failure reported as "no plan". Store
// failures are logged.
func (r *Reader) GetUserPlan(ctx context.Context, userID string) *NutritionPlan {
	p, err := r.Fetch(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNoPlan) {
			applog.Error(ctx, "failed to load nutrition plan", "user_id", userID, "error", err)
		}
		return nil
	}
	return &p
}
