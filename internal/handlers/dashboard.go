package handlers

import (
	"net/http"

	templpkg "github.com/a-h/templ"

	applog "nutriplan/internal/log"
	"nutriplan/internal/views/pages"
	"nutriplan/models"
)

// Dashboard renders the week calendar of the current plan once a user is authenticated.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !planningReady() {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		redirectToLogin(w, r)
		return
	}

	userName := ""
	if sessionManager != nil {
		userName = sessionManager.GetString(r.Context(), sessionUserNameKey)
	}

	today := planning.Reader.Today()
	anchor := pages.WeekFromRequest(r, today)
	current := planning.Reader.GetUserPlan(r.Context(), models.OwnerKey(userID))
	applog.Debug(r.Context(), "rendering calendar", "week", anchor.Format(models.DateLayout), "hasPlan", current != nil)

	snapshot := pages.NewCalendarSnapshot(userName, current, anchor)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var component templpkg.Component
	if isHTMX(r) {
		component = pages.CalendarPartial(snapshot)
	} else {
		component = pages.Calendar(snapshot)
	}

	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
