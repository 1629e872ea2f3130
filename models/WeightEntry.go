package models

import "gorm.io/gorm"

// WeightEntry is one day of a user's weight log. Each user has at most one
// entry per date.
type WeightEntry struct {
	gorm.Model
	UserID    uint    `gorm:"not null;uniqueIndex:idx_weight_entries_user_date,priority:1" json:"user_id"`
	EntryDate string  `gorm:"type:varchar(10);not null;uniqueIndex:idx_weight_entries_user_date,priority:2" json:"date"`
	WeightKG  float64 `gorm:"not null" json:"weight_kg"`
}
