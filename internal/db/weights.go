package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nutriplan/models"
)

const weightUserDateIndex = "idx_weight_entries_user_date"

// ErrWeightNotFound is returned when a user has no entry for a date.
var ErrWeightNotFound = errors.New("weight entry not found")

// WeightStore persists the per-day weight log.
type WeightStore struct {
	db *gorm.DB
}

func NewWeightStore(db *gorm.DB) *WeightStore {
	return &WeightStore{db: db}
}

// Record stores the weight for userID on date, replacing any entry already
// logged for that day.
func (s *WeightStore) Record(ctx context.Context, userID uint, date string, weightKG float64) (models.WeightEntry, error) {
	entry := models.WeightEntry{UserID: userID, EntryDate: date, WeightKG: weightKG}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"weight_kg", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return models.WeightEntry{}, fmt.Errorf("record weight: %w", err)
	}

	var stored models.WeightEntry
	if err := s.db.WithContext(ctx).Where("user_id = ? AND entry_date = ?", userID, date).First(&stored).Error; err != nil {
		return models.WeightEntry{}, fmt.Errorf("reload weight: %w", err)
	}
	return stored, nil
}

// List returns the weight log of userID in date order.
func (s *WeightStore) List(ctx context.Context, userID uint) ([]models.WeightEntry, error) {
	var entries []models.WeightEntry
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("entry_date ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	return entries, nil
}

func (s *WeightStore) Delete(ctx context.Context, userID uint, date string) error {
	result := s.db.WithContext(ctx).Unscoped().Where("user_id = ? AND entry_date = ?", userID, date).Delete(&models.WeightEntry{})
	if result.Error != nil {
		return fmt.Errorf("delete weight: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWeightNotFound
	}
	return nil
}
