package handlers

import (
	"net/http"
	"strings"
)

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}

// isAPIRequest reports whether r targets the JSON API. API clients get JSON
// errors instead of login redirects.
func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, apiPrefix)
}

// wantsJSON reports whether the client posted a JSON body.
func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}
