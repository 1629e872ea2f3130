package handlers

import (
	"net/http"
	"strings"

	applog "nutriplan/internal/log"
	"nutriplan/internal/nutrition"
	"nutriplan/internal/plan"
	"nutriplan/models"
)

const defaultAnalysisRange = "7days"

// Analysis summarises the current user's menus over ?range=7days|30days|90days.
func Analysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	rangeKey := strings.TrimSpace(r.URL.Query().Get("range"))
	if rangeKey == "" {
		rangeKey = defaultAnalysisRange
	}
	days, ok := nutrition.Ranges[rangeKey]
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "range must be one of 7days, 30days or 90days")
		return
	}

	profile, err := loadProfile(ctx, userID)
	if err != nil {
		applog.Error(ctx, "failed to load profile for analysis", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "unable to load profile")
		return
	}

	today := planning.Reader.Today()
	from := today.AddDate(0, 0, -days)
	if weekly := today.AddDate(0, 0, -28); weekly.Before(from) {
		from = weekly
	}

	menus, err := planning.Store.Find(ctx, plan.Filter{
		CreatedBy: models.OwnerKey(userID),
		From:      from.Format(models.DateLayout),
		To:        today.Format(models.DateLayout),
	}, plan.OrderDescending)
	if err != nil {
		writePlanError(w, r, err, "unable to load menus")
		return
	}

	writeJSON(w, http.StatusOK, nutrition.Analyze(menus, today, days, nutrition.DailyCalories(profile)))
}
