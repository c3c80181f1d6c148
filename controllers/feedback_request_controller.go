package controllers

import (
	"encoding/json"
	"net/http"

	"peertrust_server/services"

	"github.com/gorilla/mux"
)

// FeedbackRequestController manages requests for feedback.
type FeedbackRequestController struct {
	RequestService *services.FeedbackRequestService
}

// NewFeedbackRequestController initializes the controller
func NewFeedbackRequestController(service *services.FeedbackRequestService) *FeedbackRequestController {
	return &FeedbackRequestController{RequestService: service}
}

// HandleCreateRequest - ask a peer for feedback about the caller
func (c *FeedbackRequestController) HandleCreateRequest(w http.ResponseWriter, r *http.Request) {
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

	created, err := c.RequestService.CreateRequest(r.Context(), userID, request.RequesteeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// HandleDeclineRequest - decline a feedback request addressed to the caller
func (c *FeedbackRequestController) HandleDeclineRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	requestID := mux.Vars(r)["requestId"]
	if err := c.RequestService.DeclineRequest(r.Context(), requestID, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "declined"})
}

// HandleGetIncoming - feedback requests awaiting the caller's review
func (c *FeedbackRequestController) HandleGetIncoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	requests, err := c.RequestService.GetIncoming(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

// HandleGetSent - feedback requests the caller has sent
func (c *FeedbackRequestController) HandleGetSent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	requests, err := c.RequestService.GetSent(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}
