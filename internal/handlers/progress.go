package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm/clause"

	appdb "nutriplan/internal/db"
	applog "nutriplan/internal/log"
	"nutriplan/internal/nutrition"
	"nutriplan/models"
)

const maxWeightKG = 500

type weightRequest struct {
	Date     string  `json:"date"`
	WeightKG float64 `json:"weight_kg"`
}

// ProgressResource serves the weight log of the current user.
//
//	GET    /app/api/progress
//	POST   /app/api/progress
//	DELETE /app/api/progress/{YYYY-MM-DD}
func ProgressResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "progress request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	date := strings.Trim(strings.TrimPrefix(r.URL.Path, "/app/api/progress"), "/")
	if date != "" {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		deleteWeight(w, r, userID, date)
		return
	}

	switch r.Method {
	case http.MethodGet:
		showProgress(w, r, userID)
	case http.MethodPost:
		recordWeight(w, r, userID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func showProgress(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()
	profile, err := loadProfile(ctx, userID)
	if err != nil {
		applog.Error(ctx, "failed to load profile for progress", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "unable to load progress")
		return
	}
	entries, err := appdb.NewWeightStore(database).List(ctx, userID)
	if err != nil {
		applog.Error(ctx, "failed to load weight log", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "unable to load progress")
		return
	}
	writeJSON(w, http.StatusOK, nutrition.WeightProgress(entries, profile.WeightKG, profile.WeightLossGoal))
}

func recordWeight(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()

	var payload weightRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		applog.Debug(ctx, "invalid weight payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.WeightKG <= 0 || payload.WeightKG > maxWeightKG || math.IsNaN(payload.WeightKG) {
		writeJSONError(w, http.StatusBadRequest, "weight_kg must be greater than 0 and at most 500")
		return
	}
	date := strings.TrimSpace(payload.Date)
	if date == "" {
		date = today().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		writeJSONError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	if _, err := appdb.NewWeightStore(database).Record(ctx, userID, date, payload.WeightKG); err != nil {
		applog.Error(ctx, "failed to record weight", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "We couldn't save your weight. Please try again.")
		return
	}
	applog.Debug(ctx, "weight recorded", "date", date)
	showProgress(w, r, userID)
}

func deleteWeight(w http.ResponseWriter, r *http.Request, userID uint, date string) {
	err := appdb.NewWeightStore(database).Delete(r.Context(), userID, date)
	switch {
	case errors.Is(err, appdb.ErrWeightNotFound):
		writeJSONError(w, http.StatusNotFound, "no weight for "+date)
	case err != nil:
		applog.Error(r.Context(), "failed to delete weight", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "We couldn't delete that entry. Please try again.")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// rememberWeightLossGoal stores the goal chosen for a new plan on the user's
// profile so progress is measured against it.
func rememberWeightLossGoal(ctx context.Context, userID uint, goal float64) error {
	if database == nil || goal <= 0 {
		return nil
	}
	return database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"weight_loss_goal", "updated_at"}),
	}).Create(&models.Profile{UserID: userID, WeightLossGoal: goal}).Error
}

// today is the current date in the plan time zone, or UTC before planning
// is configured.
func today() time.Time {
	if planning.Reader != nil {
		return planning.Reader.Today()
	}
	return time.Now().UTC()
}
