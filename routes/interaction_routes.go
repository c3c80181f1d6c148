package routes

import (
	"peertrust_server/controllers"
	"peertrust_server/services"

	"github.com/gorilla/mux"
)

// RegisterInteractionRoutes sets up routes for confirmed interactions and the
// request/approve flow under /interactions
func RegisterInteractionRoutes(api *mux.Router, interactionService *services.InteractionService, pendingService *services.PendingInteractionService) {
	interactionController := controllers.NewInteractionController(interactionService)
	pendingController := controllers.NewPendingInteractionController(pendingService)

	interactionRouter := api.PathPrefix("/interactions").Subrouter()
	interactionRouter.HandleFunc("", interactionController.HandleGetInteractions).Methods("GET")
	interactionRouter.HandleFunc("/requests", pendingController.HandleRequestInteraction).Methods("POST")
	interactionRouter.HandleFunc("/requests/incoming", pendingController.HandleGetIncoming).Methods("GET")
	interactionRouter.HandleFunc("/requests/sent", pendingController.HandleGetSent).Methods("GET")
	interactionRouter.HandleFunc("/requests/{requestId}/approve", pendingController.HandleApprove).Methods("POST")
	interactionRouter.HandleFunc("/requests/{requestId}/decline", pendingController.HandleDecline).Methods("POST")
}
