package handlers

import (
	"net/http"
	"strconv"
	"strings"

	applog "nutriplan/internal/log"
	"nutriplan/internal/plan"
	"nutriplan/models"
)

type createPlanRequest struct {
	Lifestyle      string  `json:"lifestyle"`
	StartDate      string  `json:"start_date"`
	WeightLossGoal float64 `json:"weight_loss_goal"`
}

// PlanResource serves plan generation and the current plan window.
//
//	POST /app/api/plans
//	GET  /app/api/plans/current
//	GET  /app/api/plans/current/days/{YYYY-MM-DD}
func PlanResource(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/plans")
	path = strings.Trim(path, "/")

	if path == "" {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		createPlan(w, r, userID)
		return
	}

	segments := strings.Split(path, "/")
	if segments[0] != "current" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	switch {
	case len(segments) == 1:
		showCurrentPlan(w, r, userID)
	case len(segments) == 3 && segments[1] == "days":
		showPlanDay(w, r, userID, segments[2])
	default:
		http.NotFound(w, r)
	}
}

func createPlan(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()

	var payload createPlanRequest
	if wantsJSON(r) {
		if err := decodeJSON(w, r, &payload); err != nil {
			applog.Debug(ctx, "invalid plan payload", "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
	} else if err := r.ParseForm(); err == nil {
		payload.Lifestyle = r.PostFormValue("lifestyle")
		payload.StartDate = r.PostFormValue("start_date")
		if goal := strings.TrimSpace(r.PostFormValue("weight_loss_goal")); goal != "" {
			parsed, err := strconv.ParseFloat(goal, 64)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, "weight_loss_goal must be a number")
				return
			}
			payload.WeightLossGoal = parsed
		}
	}

	if strings.TrimSpace(payload.StartDate) == "" {
		payload.StartDate = planning.Reader.Today().Format(models.DateLayout)
	}

	profile, err := loadProfile(ctx, userID)
	if err != nil {
		applog.Error(ctx, "failed to load profile for plan", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "unable to load profile")
		return
	}

	created, err := planning.Service.CreatePlan(ctx, models.OwnerKey(userID), profile, plan.Options{
		Lifestyle:      payload.Lifestyle,
		StartDate:      strings.TrimSpace(payload.StartDate),
		WeightLossGoal: payload.WeightLossGoal,
	})
	if err != nil {
		writePlanError(w, r, err, "We couldn't save your plan. Please try again.")
		return
	}
	if err := rememberWeightLossGoal(ctx, userID, payload.WeightLossGoal); err != nil {
		applog.Error(ctx, "failed to store weight loss goal", "error", err)
	}

	writeJSON(w, http.StatusCreated, created)
}

func showCurrentPlan(w http.ResponseWriter, r *http.Request, userID uint) {
	current, err := planning.Reader.Fetch(r.Context(), models.OwnerKey(userID))
	if err != nil {
		writePlanError(w, r, err, "We couldn't load your plan. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func showPlanDay(w http.ResponseWriter, r *http.Request, userID uint, date string) {
	current, err := planning.Reader.Fetch(r.Context(), models.OwnerKey(userID))
	if err != nil {
		writePlanError(w, r, err, "We couldn't load your plan. Please try again.")
		return
	}
	menu, ok := current.MenuOn(date)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "no menu for "+date)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}
