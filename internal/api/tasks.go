package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chorepoint/chorepoint/internal/models"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	AssignedTo  string `json:"assigned_to"`
	TokenReward *int   `json:"token_reward,omitempty"`
}

// handleCreateTask creates a task.
// POST /api/tasks
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := s.tasks.Create(r.Context(), req.Title, category, req.AssignedTo, req.TokenReward)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// handleGetTask returns one task.
// GET /api/tasks/{id}
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.tasks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// handleListTasks returns a user's tasks.
// GET /api/tasks?user_id=...
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id query parameter required")
		return
	}
	tasks, err := s.tasks.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

// handleCompleteTask completes a task, granting its reward and reporting
// achievement unlocks.
// POST /api/tasks/{id}/complete
func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	result, err := s.tasks.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleUndoTask reverts a completed task and revokes its reward.
// POST /api/tasks/{id}/undo
func (s *Server) handleUndoTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.tasks.Undo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

type reassignRequest struct {
	UserID string `json:"user_id"`
}

// handleReassignTask moves a task to another user.
// POST /api/tasks/{id}/reassign
func (s *Server) handleReassignTask(w http.ResponseWriter, r *http.Request) {
	var req reassignRequest
	if err := decodeJSON(r, &req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id required")
		return
	}
	task, err := s.tasks.Reassign(r.Context(), chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}
