package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"gorm.io/gorm"

	applog "nutriplan/internal/log"
	"nutriplan/internal/views/pages"
)

const minPasswordLength = 8

// Signup displays the account creation form and registers new accounts. JSON
// submissions receive the created account as JSON.
func Signup(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling signup request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToApp(w, r)
			return
		}
		renderSignup(w, r, "", "", "")
	case http.MethodPost:
		register(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func register(w http.ResponseWriter, r *http.Request) {
	jsonClient := wantsJSON(r)
	fail := func(status int, message, name, email string) {
		if jsonClient {
			writeJSONError(w, status, message)
			return
		}
		renderSignup(w, r, message, name, email)
	}

	if sessionManager == nil || database == nil {
		applog.Debug(r.Context(), "registration dependencies unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
		if jsonClient {
			writeJSONError(w, http.StatusServiceUnavailable, "registration not available")
			return
		}
		http.Error(w, "registration not available", http.StatusServiceUnavailable)
		return
	}

	creds, err := readCredentials(w, r)
	if err != nil {
		applog.Debug(r.Context(), "failed to read signup submission", "error", err)
		if jsonClient {
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	if message := validateSignup(creds); message != "" {
		fail(http.StatusBadRequest, message, creds.Name, creds.Email)
		return
	}

	if _, err := findUserByEmail(r, creds.Email); err == nil {
		fail(http.StatusConflict, "An account with that email already exists.", creds.Name, creds.Email)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		applog.Error(r.Context(), "failed to check existing user", "error", err)
		fail(http.StatusServiceUnavailable, "We couldn't create your account right now. Please try again.", creds.Name, creds.Email)
		return
	}

	user, err := createUser(r, creds.Email, creds.Name, creds.Password)
	if err != nil {
		applog.Error(r.Context(), "failed to create user", "error", err)
		fail(http.StatusServiceUnavailable, "We couldn't create your account right now. Please try again.", creds.Name, creds.Email)
		return
	}

	if err := establishSession(r, user); err != nil {
		applog.Error(r.Context(), "failed to establish session after signup", "error", err)
		fail(http.StatusServiceUnavailable, "We couldn't sign you in after creating your account. Please try again.", creds.Name, creds.Email)
		return
	}

	applog.Info(r.Context(), "account created", "user_id", user.ID)
	if jsonClient {
		writeJSON(w, http.StatusCreated, newAccountResponse(user))
		return
	}
	redirectToApp(w, r)
}

func validateSignup(creds credentials) string {
	switch {
	case creds.Email == "" || !strings.Contains(creds.Email, "@"):
		return "Please provide a valid email address."
	case len(creds.Password) < minPasswordLength:
		return "Password must be at least 8 characters long."
	case creds.Password != creds.ConfirmPassword:
		return "Passwords do not match."
	}
	return ""
}

func renderSignup(w http.ResponseWriter, r *http.Request, message, name, email string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var component templ.Component
	if isHTMX(r) {
		component = pages.SignupPartial(message, name, email)
	} else {
		component = pages.Signup(message, name, email)
	}
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render signup", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
