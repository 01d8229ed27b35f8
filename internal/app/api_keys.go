package app

import (
	"crypto/subtle"
	"net/http"
)

// RequiresAPIKey reports whether operator endpoints are locked down.
func (app *Application) RequiresAPIKey() bool {
	return len(app.Config.ApiKeys) > 0
}

// RequestHasInvalidAPIKey checks the "key" query parameter. With no keys
// configured every request is accepted.
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	if !app.RequiresAPIKey() {
		return false
	}
	return app.IsInvalidAPIKey(r.URL.Query().Get("key"))
}

func (app *Application) IsInvalidAPIKey(key string) bool {
	if key == "" {
		return true
	}

	for _, validKey := range app.Config.ApiKeys {
		// Constant time so response timing does not leak key prefixes.
		if subtle.ConstantTimeCompare([]byte(key), []byte(validKey)) == 1 {
			return false
		}
	}

	return true
}
