package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nutriplan/internal/plan"
	"nutriplan/models"
)

const menuOwnerDateIndex = "idx_daily_menus_owner_date"

// upsertColumns are replaced when a menu collides on (created_by, target_date).
// id, is_favorite and created_at keep their stored values.
var upsertColumns = []string{
	"title",
	"total_calories",
	"total_protein",
	"total_carbs",
	"total_fat",
	"meals",
	"updated_at",
}

// MenuStore persists daily menus with gorm.
type MenuStore struct {
	db *gorm.DB
}

var _ plan.Store = (*MenuStore)(nil)

func NewMenuStore(db *gorm.DB) *MenuStore {
	return &MenuStore{db: db}
}

func (s *MenuStore) Find(ctx context.Context, filter plan.Filter, order plan.Order) ([]models.DailyMenu, error) {
	query := s.db.WithContext(ctx).Model(&models.DailyMenu{})
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.From != "" {
		query = query.Where("target_date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("target_date <= ?", filter.To)
	}
	if filter.FavoritesOnly {
		query = query.Where("is_favorite = ?", true)
	}
	if order == plan.OrderDescending {
		query = query.Order("target_date DESC")
	} else {
		query = query.Order("target_date ASC")
	}

	var menus []models.DailyMenu
	if err := query.Find(&menus).Error; err != nil {
		return nil, unavailable(err)
	}
	return menus, nil
}

func (s *MenuStore) InsertMany(ctx context.Context, menus []models.DailyMenu) ([]models.DailyMenu, error) {
	if len(menus) == 0 {
		return []models.DailyMenu{}, nil
	}

	rows := append([]models.DailyMenu(nil), menus...)
	var saved []models.DailyMenu
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "created_by"}, {Name: "target_date"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).Create(&rows).Error; err != nil {
			return err
		}

		// Conflicting rows keep their stored id, so read back what was persisted.
		byOwner := map[string][]string{}
		for _, menu := range rows {
			byOwner[menu.CreatedBy] = append(byOwner[menu.CreatedBy], menu.TargetDate)
		}
		persisted := make(map[[2]string]models.DailyMenu, len(rows))
		for owner, dates := range byOwner {
			var found []models.DailyMenu
			if err := tx.Where("created_by = ? AND target_date IN ?", owner, dates).Find(&found).Error; err != nil {
				return err
			}
			for _, menu := range found {
				persisted[[2]string{menu.CreatedBy, menu.TargetDate}] = menu
			}
		}

		saved = make([]models.DailyMenu, 0, len(rows))
		for _, menu := range rows {
			row, ok := persisted[[2]string{menu.CreatedBy, menu.TargetDate}]
			if !ok {
				return fmt.Errorf("menu for %s on %s missing after insert", menu.CreatedBy, menu.TargetDate)
			}
			saved = append(saved, row)
		}
		return nil
	})
	if err != nil {
		return nil, unavailable(err)
	}
	return saved, nil
}

func (s *MenuStore) Get(ctx context.Context, id string) (models.DailyMenu, error) {
	var menu models.DailyMenu
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DailyMenu{}, plan.ErrMenuNotFound
		}
		return models.DailyMenu{}, unavailable(err)
	}
	return menu, nil
}

func (s *MenuStore) Update(ctx context.Context, id string, fields map[string]any) (models.DailyMenu, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return models.DailyMenu{}, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.DailyMenu{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return models.DailyMenu{}, unavailable(err)
		}
	}
	return s.Get(ctx, id)
}

func (s *MenuStore) DeleteByID(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DailyMenu{})
	if result.Error != nil {
		return unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return plan.ErrMenuNotFound
	}
	return nil
}

func (s *MenuStore) DeleteBefore(ctx context.Context, cutoff string, keepFavorites bool) (int64, error) {
	query := s.db.WithContext(ctx).Where("target_date < ?", cutoff)
	if keepFavorites {
		query = query.Where("is_favorite = ?", false)
	}
	result := query.Delete(&models.DailyMenu{})
	if result.Error != nil {
		return 0, unavailable(result.Error)
	}
	return result.RowsAffected, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", plan.ErrStoreUnavailable, err)
}
