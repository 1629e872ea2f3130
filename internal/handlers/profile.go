package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm/clause"

	applog "nutriplan/internal/log"
	"nutriplan/internal/nutrition"
	"nutriplan/models"
)

type profileRequest struct {
	Age                 int      `json:"age"`
	Gender              string   `json:"gender"`
	HeightCM            float64  `json:"height_cm"`
	WeightKG            float64  `json:"weight_kg"`
	ActivityLevel       string   `json:"activity_level"`
	Goal                string   `json:"goal"`
	WeightLossGoal      float64  `json:"weight_loss_goal"`
	Allergies           []string `json:"allergies"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	PreferredCuisine    []string `json:"preferred_cuisine"`
	DislikedFoods       []string `json:"disliked_foods"`
}

type profileResponse struct {
	models.Profile
	DailyCalories int `json:"daily_calories"`
}

// ProfileResource reads and replaces the dietary profile of the current user.
func ProfileResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "profile request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		showProfile(w, r, userID)
	case http.MethodPut:
		updateProfile(w, r, userID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func showProfile(w http.ResponseWriter, r *http.Request, userID uint) {
	profile, err := loadProfile(r.Context(), userID)
	if err != nil {
		applog.Error(r.Context(), "failed to load profile", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "unable to load profile")
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Profile: profile, DailyCalories: nutrition.DailyCalories(profile)})
}

func updateProfile(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()

	var payload profileRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		applog.Debug(ctx, "invalid profile payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if message := validateProfile(&payload); message != "" {
		writeJSONError(w, http.StatusBadRequest, message)
		return
	}

	profile := models.Profile{
		UserID:              userID,
		Age:                 payload.Age,
		Gender:              payload.Gender,
		HeightCM:            payload.HeightCM,
		WeightKG:            payload.WeightKG,
		ActivityLevel:       payload.ActivityLevel,
		Goal:                payload.Goal,
		WeightLossGoal:      payload.WeightLossGoal,
		Allergies:           cleanList(payload.Allergies),
		DietaryRestrictions: cleanList(payload.DietaryRestrictions),
		PreferredCuisine:    cleanList(payload.PreferredCuisine),
		DislikedFoods:       cleanList(payload.DislikedFoods),
	}

	err := database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"age", "gender", "height_cm", "weight_kg", "activity_level", "goal", "weight_loss_goal",
			"allergies", "dietary_restrictions", "preferred_cuisine", "disliked_foods", "updated_at",
		}),
	}).Create(&profile).Error
	if err != nil {
		applog.Error(ctx, "failed to save profile", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "failed to save profile")
		return
	}

	applog.Debug(ctx, "profile updated", "activity", profile.ActivityLevel, "goal", profile.Goal)
	showProfile(w, r, userID)
}

func validateProfile(p *profileRequest) string {
	p.Gender = strings.ToLower(strings.TrimSpace(p.Gender))
	p.ActivityLevel = strings.ToLower(strings.TrimSpace(p.ActivityLevel))
	p.Goal = strings.ToLower(strings.TrimSpace(p.Goal))

	switch {
	case p.Age < 0 || p.Age > 130:
		return "age must be between 0 and 130"
	case p.HeightCM < 0 || p.HeightCM > 300:
		return "height_cm must be between 0 and 300"
	case p.WeightKG < 0 || p.WeightKG > 500:
		return "weight_kg must be between 0 and 500"
	case p.WeightLossGoal < 0 || p.WeightLossGoal >= 100:
		return "weight_loss_goal must be a percentage between 0 and 100"
	case p.Gender != "" && !models.ValidGender(p.Gender):
		return "gender must be male, female or other"
	case p.ActivityLevel != "" && !models.ValidActivityLevel(p.ActivityLevel):
		return "unknown activity_level"
	case p.Goal != "" && !models.ValidGoal(p.Goal):
		return "unknown goal"
	}
	return ""
}

func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}
