// Package htmx provides the few HTMX request and response helpers the shell uses.
package htmx

import "net/http"

const (
	HeaderHXRequest  = "HX-Request"
	HeaderHXRedirect = "HX-Redirect"
)

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// Redirect redirects regular requests with status and HTMX requests with an
// HX-Redirect header, since HTMX does not follow 3xx responses into a full
// navigation.
func Redirect(w http.ResponseWriter, r *http.Request, targetURL string, status int) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRedirect, targetURL)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, targetURL, status)
}
