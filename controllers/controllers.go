package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"peertrust_server/middleware"
	"peertrust_server/services"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service error kinds onto HTTP statuses. Every kind
// is recoverable at the UI level; the message is shown to the user as-is.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCodeNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrSelfRedemption), errors.Is(err, services.ErrInvalidPeer):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotAuthorized):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrAlreadyResolved):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrCommitFailed), errors.Is(err, services.ErrIssuanceFailed):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("Unhandled service error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// currentUser pulls the authenticated user id off the request context. The
// auth middleware guarantees it for every /api route; a miss means the route
// was wired outside the middleware.
func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return "", false
	}
	return userID, true
}

// HealthCheckHandler reports service liveness
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
