package routes

import (
	"peertrust_server/controllers"
	"peertrust_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for profile photo presigned URLs under /s3
func RegisterS3Routes(api *mux.Router, s3Service *services.S3Service) {
	controller := controllers.NewS3Controller(s3Service)

	s3Router := api.PathPrefix("/s3").Subrouter()
	s3Router.HandleFunc("/upload-url", controller.HandleGeneratePresignedURL).Methods("POST")
	s3Router.HandleFunc("/read-url", controller.HandleGetPresignedReadURL).Methods("POST")
}
