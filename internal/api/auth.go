package api

import (
	"net/http"

	"github.com/chorepoint/chorepoint/internal/middleware"
)

type verifyPINRequest struct {
	UserID string `json:"user_id"`
	PIN    string `json:"pin"`
}

// handleVerifyPIN exchanges a correct caregiver PIN for a session token.
// POST /api/auth/pin/verify
func (s *Server) handleVerifyPIN(w http.ResponseWriter, r *http.Request) {
	var req verifyPINRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.auth.VerifyPIN(r.Context(), req.UserID, req.PIN)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

type setPINRequest struct {
	PIN string `json:"pin"`
}

// handleSetPIN sets or changes the authenticated caregiver's PIN.
// PUT /api/auth/pin
func (s *Server) handleSetPIN(w http.ResponseWriter, r *http.Request) {
	var req setPINRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := s.auth.SetPIN(r.Context(), userID, req.PIN); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "pin updated"})
}
