package handlers

import "net/http"

// Home sends visitors to the calendar, which in turn requires a session.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/app", http.StatusFound)
}
