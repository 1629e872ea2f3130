package handlers

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"nutriplan/internal/ai"
	applog "nutriplan/internal/log"
	"nutriplan/internal/plan"
	"nutriplan/models"
)

// MenuDrafter produces unsaved single-day menus.
type MenuDrafter interface {
	GenerateDailyMenu(ctx context.Context, profile models.Profile, req ai.DayRequest) (models.DailyMenu, error)
}

// Planning groups the plan services used by the JSON API and calendar views.
// Drafter may be nil when no AI provider is configured.
type Planning struct {
	Service *plan.Service
	Reader  *plan.Reader
	Store   plan.Store
	Drafter MenuDrafter
}

var planning Planning

// ConfigurePlanning installs the plan services used by the handlers.
func ConfigurePlanning(p Planning) {
	planning = p
}

func planningReady() bool {
	return planning.Service != nil && planning.Reader != nil && planning.Store != nil
}

// requireOwner resolves the authenticated user and writes an error response
// when the request cannot be served.
func requireOwner(w http.ResponseWriter, r *http.Request) (uint, bool) {
	if !planningReady() {
		applog.Debug(r.Context(), "planning request without configured services")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return 0, false
	}
	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	return userID, true
}

// loadProfile returns the stored profile, or an empty one when the user has
// not filled it in yet.
func loadProfile(ctx context.Context, userID uint) (models.Profile, error) {
	profile := models.Profile{UserID: userID}
	if database == nil {
		return profile, nil
	}
	err := database.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Profile{}, err
	}
	return profile, nil
}

// writePlanError maps plan errors to HTTP responses.
func writePlanError(w http.ResponseWriter, r *http.Request, err error, unavailableMessage string) {
	switch {
	case errors.Is(err, plan.ErrInvalidInput):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, plan.ErrNoPlan):
		writeJSONError(w, http.StatusNotFound, "no plan")
	case errors.Is(err, plan.ErrMenuNotFound):
		writeJSONError(w, http.StatusNotFound, "menu not found")
	default:
		applog.Error(r.Context(), "plan request failed", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, unavailableMessage)
	}
}
