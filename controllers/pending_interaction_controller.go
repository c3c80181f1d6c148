package controllers

import (
	"encoding/json"
	"net/http"

	"peertrust_server/services"

	"github.com/gorilla/mux"
)

// PendingInteractionController exposes the request/approve confirmation flow.
type PendingInteractionController struct {
	PendingService *services.PendingInteractionService
}

// NewPendingInteractionController initializes the controller
func NewPendingInteractionController(service *services.PendingInteractionService) *PendingInteractionController {
	return &PendingInteractionController{PendingService: service}
}

// HandleRequestInteraction - nominate a peer to confirm an interaction
func (c *PendingInteractionController) HandleRequestInteraction(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var request struct {
		RequesteeID string `json:"requesteeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.RequesteeID == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pending, err := c.PendingService.RequestInteraction(r.Context(), userID, request.RequesteeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, pending)
}

// HandleApprove - approve a pending interaction addressed to the caller
func (c *PendingInteractionController) HandleApprove(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	requestID := mux.Vars(r)["requestId"]
	pair, err := c.PendingService.Approve(r.Context(), requestID, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, pair)
}

// HandleDecline - decline a pending interaction addressed to the caller
func (c *PendingInteractionController) HandleDecline(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	requestID := mux.Vars(r)["requestId"]
	if err := c.PendingService.Decline(r.Context(), requestID, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "declined"})
}

// HandleGetIncoming - pending interaction requests awaiting the caller
func (c *PendingInteractionController) HandleGetIncoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	pending, err := c.PendingService.GetIncoming(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pending)
}

// HandleGetSent - pending interaction requests the caller initiated
func (c *PendingInteractionController) HandleGetSent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	pending, err := c.PendingService.GetSent(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pending)
}
