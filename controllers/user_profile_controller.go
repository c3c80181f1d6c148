package controllers

import (
	"encoding/json"
	"net/http"

	"peertrust_server/models"
	"peertrust_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController manages user profiles.
type UserProfileController struct {
	UserProfileService *services.UserProfileService
}

// NewUserProfileController initializes the controller
func NewUserProfileController(service *services.UserProfileService) *UserProfileController {
	return &UserProfileController{UserProfileService: service}
}

// HandleCreateProfile - create the caller's profile
func (c *UserProfileController) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	profile.UserID = userID

	created, err := c.UserProfileService.AddUserProfile(r.Context(), profile)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// HandleGetProfile - fetch a profile by user id
func (c *UserProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	profile, err := c.UserProfileService.GetUserProfile(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if profile == nil {
		respondError(w, http.StatusNotFound, "Profile not found")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// HandleGetProfileByEmail - fetch a profile by email
func (c *UserProfileController) HandleGetProfileByEmail(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	profile, err := c.UserProfileService.GetUserProfileByEmail(r.Context(), mux.Vars(r)["emailId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if profile == nil {
		respondError(w, http.StatusNotFound, "Profile not found")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// HandleUpdateProfile - partial update of the caller's own profile
func (c *UserProfileController) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := c.UserProfileService.UpdateUserProfile(r.Context(), userID, updates)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
