package routes

import (
	"peertrust_server/controllers"
	"peertrust_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for user profile operations under
// /profiles
func RegisterUserProfileRoutes(api *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewUserProfileController(userProfileService)

	profileRouter := api.PathPrefix("/profiles").Subrouter()
	profileRouter.HandleFunc("", controller.HandleCreateProfile).Methods("POST")
	profileRouter.HandleFunc("", controller.HandleUpdateProfile).Methods("PATCH")
	profileRouter.HandleFunc("/email/{emailId}", controller.HandleGetProfileByEmail).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.HandleGetProfile).Methods("GET")
}
