package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

const (
	GoalMaintain          = "maintain"
	GoalLoseWeight        = "lose_weight"
	GoalGainWeight        = "gain_weight"
	GoalMuscleGain        = "muscle_gain"
	GoalHealthImprovement = "health_improvement"
)

// Profile holds the dietary context used when generating menus for a user.
type Profile struct {
	gorm.Model
	UserID              uint                        `gorm:"uniqueIndex;not null" json:"user_id"`
	Age                 int                         `json:"age"`
	Gender              string                      `gorm:"type:varchar(16)" json:"gender"`
	HeightCM            float64                     `json:"height_cm"`
	WeightKG            float64                     `json:"weight_kg"`
	ActivityLevel       string                      `gorm:"type:varchar(32)" json:"activity_level"`
	Goal                string                      `gorm:"type:varchar(32)" json:"goal"`
	WeightLossGoal      float64                     `gorm:"not null;default:0" json:"weight_loss_goal"`
	Allergies           datatypes.JSONSlice[string] `json:"allergies"`
	DietaryRestrictions datatypes.JSONSlice[string] `json:"dietary_restrictions"`
	PreferredCuisine    datatypes.JSONSlice[string] `json:"preferred_cuisine"`
	DislikedFoods       datatypes.JSONSlice[string] `json:"disliked_foods"`
}

// ValidActivityLevel reports whether value is one of the supported activity levels.
func ValidActivityLevel(value string) bool {
	switch value {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return true
	default:
		return false
	}
}

// ValidGender reports whether value is one of the supported genders.
func ValidGender(value string) bool {
	switch value {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// ValidGoal reports whether value is one of the supported goals.
func ValidGoal(value string) bool {
	switch value {
	case GoalMaintain, GoalLoseWeight, GoalGainWeight, GoalMuscleGain, GoalHealthImprovement:
		return true
	default:
		return false
	}
}
