package routes

import (
	"peertrust_server/controllers"
	"peertrust_server/services"

	"github.com/gorilla/mux"
)

// RegisterCodeRoutes sets up routes for interaction codes under /codes
func RegisterCodeRoutes(api *mux.Router, codeService *services.CodeService) {
	controller := controllers.NewCodeController(codeService)

	codeRouter := api.PathPrefix("/codes").Subrouter()
	codeRouter.HandleFunc("", controller.HandleIssueCode).Methods("POST")
	codeRouter.HandleFunc("/redeem", controller.HandleRedeemCode).Methods("POST")
}
