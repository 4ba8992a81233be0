package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createRewardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TokenCost   int    `json:"token_cost"`
}

// handleCreateReward adds a reward to the catalog.
// POST /api/rewards
func (s *Server) handleCreateReward(w http.ResponseWriter, r *http.Request) {
	var req createRewardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}

	reward, err := s.rewards.Create(r.Context(), req.Title, req.Description, req.TokenCost)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reward)
}

// handleListRewards returns catalog entries; pass all=true to include
// retired ones.
// GET /api/rewards
func (s *Server) handleListRewards(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"
	rewards, err := s.rewards.List(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rewards": rewards})
}

type setRewardActiveRequest struct {
	Active bool `json:"active"`
}

// handleSetRewardActive activates or retires a catalog entry.
// PATCH /api/rewards/{id}
func (s *Server) handleSetRewardActive(w http.ResponseWriter, r *http.Request) {
	var req setRewardActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reward, err := s.rewards.SetActive(r.Context(), chi.URLParam(r, "id"), req.Active)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reward)
}

type redeemRequest struct {
	UserID string `json:"user_id"`
}

// handleRedeemReward spends a user's tokens on a reward.
// POST /api/rewards/{id}/redeem
func (s *Server) handleRedeemReward(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := decodeJSON(r, &req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id required")
		return
	}

	result, err := s.rewards.Redeem(r.Context(), req.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleListRedemptions returns a user's redemption history.
// GET /api/rewards/redemptions?user_id=...
func (s *Server) handleListRedemptions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id query parameter required")
		return
	}
	redemptions, err := s.rewards.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"redemptions": redemptions})
}
