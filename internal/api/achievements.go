package api

import "net/http"

// handleListAchievements returns all achievement records for a user,
// locked ones included, so the UI can show partial progress.
// GET /api/achievements?user_id=...
func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id query parameter required")
		return
	}
	achievements, err := s.achievements.AllAchievements(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"achievements": achievements})
}

// handleListUnlocked returns only the unlocked achievements.
// GET /api/achievements/unlocked?user_id=...
func (s *Server) handleListUnlocked(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id query parameter required")
		return
	}
	achievements, err := s.achievements.UnlockedAchievements(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"achievements": achievements})
}
