package controllers

import (
	"net/http"

	"peertrust_server/services"
)

// InteractionController serves the caller's confirmed interaction history.
type InteractionController struct {
	InteractionService *services.InteractionService
}

// NewInteractionController initializes the controller
func NewInteractionController(service *services.InteractionService) *InteractionController {
	return &InteractionController{InteractionService: service}
}

// HandleGetInteractions - fetch all confirmed interactions for the caller
func (c *InteractionController) HandleGetInteractions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	interactions, err := c.InteractionService.GetInteractionsForUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, interactions)
}
