package routes

import (
	"peertrust_server/controllers"
	"peertrust_server/services"

	"github.com/gorilla/mux"
)

// RegisterFeedbackRoutes sets up feedback submission, dashboard, and feedback
// request routes under /feedback
func RegisterFeedbackRoutes(api *mux.Router, feedbackService *services.FeedbackService, insightService *services.InsightService, requestService *services.FeedbackRequestService) {
	feedbackController := controllers.NewFeedbackController(feedbackService, insightService)
	requestController := controllers.NewFeedbackRequestController(requestService)

	feedbackRouter := api.PathPrefix("/feedback").Subrouter()
	feedbackRouter.HandleFunc("", feedbackController.HandleSubmitFeedback).Methods("POST")
	feedbackRouter.HandleFunc("", feedbackController.HandleGetFeedback).Methods("GET")
	feedbackRouter.HandleFunc("/summary", feedbackController.HandleGetSummary).Methods("GET")
	feedbackRouter.HandleFunc("/insights", feedbackController.HandleGetInsights).Methods("GET")
	feedbackRouter.HandleFunc("/requests", requestController.HandleCreateRequest).Methods("POST")
	feedbackRouter.HandleFunc("/requests/incoming", requestController.HandleGetIncoming).Methods("GET")
	feedbackRouter.HandleFunc("/requests/sent", requestController.HandleGetSent).Methods("GET")
	feedbackRouter.HandleFunc("/requests/{requestId}/decline", requestController.HandleDeclineRequest).Methods("POST")
}
