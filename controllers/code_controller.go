package controllers

import (
	"encoding/json"
	"net/http"

	"peertrust_server/services"
)

// CodeController exposes interaction code issuance and redemption.
type CodeController struct {
	CodeService *services.CodeService
}

// NewCodeController initializes the controller
func NewCodeController(service *services.CodeService) *CodeController {
	return &CodeController{CodeService: service}
}

// HandleIssueCode - issue (or reissue) the caller's interaction code
func (c *CodeController) HandleIssueCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	code, err := c.CodeService.IssueCode(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, code)
}

// HandleRedeemCode - redeem a peer's code and confirm the interaction
func (c *CodeController) HandleRedeemCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var request struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := c.CodeService.RedeemCode(r.Context(), userID, request.Code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, pair)
}
