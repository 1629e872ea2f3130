package nutrition

import (
	"math"

	"nutriplan/models"
)

// DefaultDailyCalories is used whenever a profile lacks the data needed for an estimate.
const DefaultDailyCalories = 1800

var activityMultipliers = map[string]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

// DailyCalories estimates daily energy expenditure with the revised
// Harris-Benedict equation scaled by the profile's activity level. Estimates
// that do not come out positive fall back to DefaultDailyCalories.
func DailyCalories(profile models.Profile) int {
	if profile.Age <= 0 || profile.Gender == "" || profile.HeightCM <= 0 || profile.WeightKG <= 0 {
		return DefaultDailyCalories
	}
	multiplier, ok := activityMultipliers[profile.ActivityLevel]
	if !ok {
		return DefaultDailyCalories
	}

	age := float64(profile.Age)
	var bmr float64
	if profile.Gender == models.GenderMale {
		bmr = 88.362 + 13.397*profile.WeightKG + 4.799*profile.HeightCM - 5.677*age
	} else {
		bmr = 447.593 + 9.247*profile.WeightKG + 3.098*profile.HeightCM - 4.330*age
	}

	estimate := int(math.Round(bmr * multiplier))
	if estimate <= 0 {
		return DefaultDailyCalories
	}
	return estimate
}

// TargetCalories applies a signed adjustment to the daily estimate. The result never drops below zero.
func TargetCalories(profile models.Profile, adjustment int) int {
	return max(DailyCalories(profile)+adjustment, 0)
}
