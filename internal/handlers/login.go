package handlers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	applog "nutriplan/internal/log"
	"nutriplan/internal/views/pages"
	"nutriplan/models"
)

type credentials struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type accountResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func newAccountResponse(user *models.User) accountResponse {
	return accountResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}

// readCredentials accepts either a form post or a JSON body.
func readCredentials(w http.ResponseWriter, r *http.Request) (credentials, error) {
	var creds credentials
	if wantsJSON(r) {
		if err := decodeJSON(w, r, &creds); err != nil {
			return credentials{}, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return credentials{}, err
		}
		creds = credentials{
			Name:            r.PostFormValue("name"),
			Email:           r.PostFormValue("email"),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirm_password"),
		}
	}
	creds.Name = strings.TrimSpace(creds.Name)
	creds.Email = strings.TrimSpace(creds.Email)
	return creds, nil
}

// Login renders the sign-in view and processes sign-in submissions. JSON
// submissions receive the account as JSON instead of a redirect.
func Login(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling login request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToApp(w, r)
			return
		}
		message := ""
		if sessionManager != nil {
			message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		}
		renderLogin(w, r, message, "")
	case http.MethodPost:
		jsonClient := wantsJSON(r)
		if sessionManager == nil || database == nil {
			applog.Debug(r.Context(), "authentication dependencies unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
			if jsonClient {
				writeJSONError(w, http.StatusServiceUnavailable, "authentication not available")
				return
			}
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}
		creds, err := readCredentials(w, r)
		if err != nil {
			applog.Debug(r.Context(), "failed to read login submission", "error", err)
			if jsonClient {
				writeJSONError(w, http.StatusBadRequest, "invalid request payload")
				return
			}
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}

		if creds.Email == "" || creds.Password == "" {
			failLogin(w, r, jsonClient, http.StatusBadRequest, "Email and password are required.", creds.Email)
			return
		}

		user, ok := authenticate(w, r, creds.Email, creds.Password)
		if !ok {
			applog.Debug(r.Context(), "authentication failed", "email", strings.ToLower(creds.Email))
			message := sessionManager.PopString(r.Context(), sessionLoginMessageKey)
			if message == "" {
				message = "We were unable to sign you in. Please try again."
			}
			failLogin(w, r, jsonClient, http.StatusUnauthorized, message, creds.Email)
			return
		}

		applog.Info(r.Context(), "user signed in", "user_id", user.ID)
		if jsonClient {
			writeJSON(w, http.StatusOK, newAccountResponse(user))
			return
		}
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func failLogin(w http.ResponseWriter, r *http.Request, jsonClient bool, status int, message, email string) {
	if jsonClient {
		writeJSONError(w, status, message)
		return
	}
	renderLogin(w, r, message, email)
}

func renderLogin(w http.ResponseWriter, r *http.Request, message, email string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var component templ.Component
	if isHTMX(r) {
		component = pages.LoginPartial(message, email)
	} else {
		component = pages.Login(message, email)
	}
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render login", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
