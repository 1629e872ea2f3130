package plan

import (
	"context"

	"nutriplan/models"
)

// Order controls the target_date ordering of Find results.
type Order int

const (
	OrderAscending Order = iota
	OrderDescending
)

// Filter narrows Find to one owner and an inclusive date window. Empty bounds
// are open.
type Filter struct {
	CreatedBy     string
	From          string
	To            string
	FavoritesOnly bool
}

// Store persists daily menus. Implementations wrap driver failures with
// ErrStoreUnavailable and report unknown ids with ErrMenuNotFound.
type Store interface {
	Find(ctx context.Context, filter Filter, order Order) ([]models.DailyMenu, error)
	// InsertMany writes every menu or none. Rows colliding on
	// (created_by, target_date) have their content replaced.
	InsertMany(ctx context.Context, menus []models.DailyMenu) ([]models.DailyMenu, error)
	Get(ctx context.Context, id string) (models.DailyMenu, error)
	Update(ctx context.Context, id string, fields map[string]any) (models.DailyMenu, error)
	DeleteByID(ctx context.Context, id string) error
	// DeleteBefore removes menus dated strictly before cutoff and returns the
	// number of rows removed.
	DeleteBefore(ctx context.Context, cutoff string, keepFavorites bool) (int64, error)
}
