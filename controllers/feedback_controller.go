package controllers

import (
	"encoding/json"
	"net/http"

	"peertrust_server/services"
)

// FeedbackController exposes feedback submission and the reviewee-side
// dashboard views.
type FeedbackController struct {
	FeedbackService *services.FeedbackService
	InsightService  *services.InsightService
}

// NewFeedbackController initializes the controller
func NewFeedbackController(feedback *services.FeedbackService, insights *services.InsightService) *FeedbackController {
	return &FeedbackController{FeedbackService: feedback, InsightService: insights}
}

// HandleSubmitFeedback - submit a review of a peer
func (c *FeedbackController) HandleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.FeedbackInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.RevieweeID == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	feedback, err := c.FeedbackService.SubmitFeedback(r.Context(), userID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, feedback)
}

// HandleGetFeedback - list feedback the caller has received
func (c *FeedbackController) HandleGetFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	feedback, err := c.FeedbackService.GetFeedbackForUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, feedback)
}

// HandleGetSummary - aggregate ratings for the caller's dashboard
func (c *FeedbackController) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	summary, err := c.FeedbackService.Summarize(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// HandleGetInsights - AI-generated summary of the caller's feedback
func (c *FeedbackController) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	insight, err := c.InsightService.SummarizeInsights(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, insight)
}
