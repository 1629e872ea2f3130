package db

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutriplan/internal/plan"
	"nutriplan/models"
)

func newTestStore(t *testing.T) (*MenuStore, *gorm.DB) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	database, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	if err := AutoMigrate(database); err != nil {
		t.Fatalf("automigrate sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewMenuStore(database), database
}

func generated(t *testing.T, owner, start string) []models.DailyMenu {
	t.Helper()
	menus, err := plan.NewGenerator(nil).Generate(owner, models.Profile{}, plan.Options{StartDate: start})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return menus
}

func TestMenuStoreInsertManyAndFind(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	saved, err := store.InsertMany(ctx, generated(t, "1", "2024-01-01"))
	if err != nil {
		t.Fatalf("InsertMany() error = %v", err)
	}
	if len(saved) != plan.Days {
		t.Fatalf("expected %d saved menus, got %d", plan.Days, len(saved))
	}
	if saved[0].ID == "" || saved[0].TargetDate != "2024-01-01" {
		t.Fatalf("unexpected first menu %+v", saved[0])
	}
	if len(saved[0].Meals) != 4 || saved[0].Meals[0].Dishes[0].Ingredients[0].Label() == "" {
		t.Fatalf("expected meals to round-trip through the json column, got %+v", saved[0].Meals)
	}

	found, err := store.Find(ctx, plan.Filter{CreatedBy: "1", From: "2024-01-10", To: "2024-01-19"}, plan.OrderDescending)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(found) != 10 || found[0].TargetDate != "2024-01-19" || found[9].TargetDate != "2024-01-10" {
		t.Fatalf("unexpected window %d menus", len(found))
	}

	other, err := store.Find(ctx, plan.Filter{CreatedBy: "2"}, plan.OrderAscending)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no menus for another owner, got %d", len(other))
	}
}

func TestMenuStoreUpsertPreservesIdentity(t *testing.T) {
	store, database := newTestStore(t)
	ctx := context.Background()

	first, err := store.InsertMany(ctx, generated(t, "1", "2024-01-01"))
	if err != nil {
		t.Fatalf("InsertMany() error = %v", err)
	}
	if _, err := store.Update(ctx, first[3].ID, map[string]any{"is_favorite": true}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	replacement := generated(t, "1", "2024-01-01")
	replacement[3].Title = "Replaced"
	second, err := store.InsertMany(ctx, replacement)
	if err != nil {
		t.Fatalf("InsertMany() error = %v", err)
	}

	var count int64
	database.Model(&models.DailyMenu{}).Count(&count)
	if count != plan.Days {
		t.Fatalf("expected %d rows after upsert, got %d", plan.Days, count)
	}
	got := second[3]
	if got.ID != first[3].ID || !got.IsFavorite || got.Title != "Replaced" {
		t.Fatalf("unexpected upserted menu %+v", got)
	}
}

func TestMenuStoreInsertManyIsAllOrNothing(t *testing.T) {
	store, database := newTestStore(t)
	ctx := context.Background()

	menus := generated(t, "1", "2024-01-01")[:3]
	menus[2].ID = "duplicate"
	menus[1].ID = "duplicate"

	if _, err := store.InsertMany(ctx, menus); !errors.Is(err, plan.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}

	var count int64
	database.Model(&models.DailyMenu{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected failed batch to leave no rows, got %d", count)
	}
}

func TestMenuStoreGetUpdateDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	saved, err := store.InsertMany(ctx, generated(t, "1", "2024-01-01")[:2])
	if err != nil {
		t.Fatalf("InsertMany() error = %v", err)
	}
	id := saved[0].ID

	updated, err := store.Update(ctx, id, map[string]any{"title": "Renamed"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("expected renamed menu, got %q", updated.Title)
	}

	if err := store.DeleteByID(ctx, id); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}
	if _, err := store.Get(ctx, id); !errors.Is(err, plan.ErrMenuNotFound) {
		t.Fatalf("expected ErrMenuNotFound, got %v", err)
	}
	if err := store.DeleteByID(ctx, id); !errors.Is(err, plan.ErrMenuNotFound) {
		t.Fatalf("expected ErrMenuNotFound on second delete, got %v", err)
	}
	if _, err := store.Update(ctx, "missing", map[string]any{"title": "x"}); !errors.Is(err, plan.ErrMenuNotFound) {
		t.Fatalf("expected ErrMenuNotFound on update, got %v", err)
	}
}

func TestMenuStoreDeleteBefore(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	saved, err := store.InsertMany(ctx, generated(t, "1", "2024-01-01")[:10])
	if err != nil {
		t.Fatalf("InsertMany() error = %v", err)
	}
	if _, err := store.Update(ctx, saved[0].ID, map[string]any{"is_favorite": true}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	removed, err := store.DeleteBefore(ctx, "2024-01-05", true)
	if err != nil {
		t.Fatalf("DeleteBefore() error = %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed menus, got %d", removed)
	}

	removed, err = store.DeleteBefore(ctx, "2024-01-05", false)
	if err != nil {
		t.Fatalf("DeleteBefore() error = %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected favorite to be removed once allowed, got %d", removed)
	}
}

func TestMenuStoreFindFavoritesOnly(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	saved, err := store.InsertMany(ctx, generated(t, "1", "2024-01-01")[:5])
	if err != nil {
		t.Fatalf("InsertMany() error = %v", err)
	}
	for _, i := range []int{1, 3} {
		if _, err := store.Update(ctx, saved[i].ID, map[string]any{"is_favorite": true}); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}

	favorites, err := store.Find(ctx, plan.Filter{CreatedBy: "1", FavoritesOnly: true}, plan.OrderAscending)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(favorites) != 2 || favorites[0].ID != saved[1].ID || favorites[1].ID != saved[3].ID {
		t.Fatalf("unexpected favorites %+v", favorites)
	}
}

func TestMenuStoreWorksWithReader(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertMany(ctx, generated(t, "7", "2024-01-01")); err != nil {
		t.Fatalf("InsertMany() error = %v", err)
	}

	reader := plan.NewReader(store, plan.WithClock(func() time.Time {
		return time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	}))
	p, err := reader.Fetch(ctx, "7")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(p.Menus) != plan.Days || p.EndDate != "2024-02-29" {
		t.Fatalf("unexpected plan %s..%s with %d menus", p.StartDate, p.EndDate, len(p.Menus))
	}
}
