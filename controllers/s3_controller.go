package controllers

import (
	"encoding/json"
	"net/http"

	"peertrust_server/services"
)

// S3Controller issues presigned URLs for profile photos.
type S3Controller struct {
	S3Service *services.S3Service
}

// NewS3Controller initializes the controller
func NewS3Controller(service *services.S3Service) *S3Controller {
	return &S3Controller{S3Service: service}
}

// HandleGeneratePresignedURL generates a presigned URL for photo uploads
func (c *S3Controller) HandleGeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.FileName == "" || payload.FileType == "" {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	url, key, err := c.S3Service.GenerateUploadURL(r.Context(), payload.FileName, payload.FileType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate pre-signed URL")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// HandleGetPresignedReadURL generates a presigned URL for reading stored photos
func (c *S3Controller) HandleGetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	url, err := c.S3Service.GenerateReadURL(r.Context(), payload.Key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate read pre-signed URL")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}
