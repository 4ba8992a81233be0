// Package api provides the HTTP server for Chorepoint. It exposes the
// family task, token, achievement, and reward operations as a JSON REST
// API.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chorepoint/chorepoint/internal/auth"
	"github.com/chorepoint/chorepoint/internal/middleware"
	"github.com/chorepoint/chorepoint/internal/service"
)

// Server is the Chorepoint HTTP API server.
type Server struct {
	users        *service.UserService
	tasks        *service.TaskService
	achievements *service.AchievementService
	rewards      *service.RewardService
	auth         *service.AuthService
	jwtManager   *auth.JWTManager

	metricsEnabled bool
}

// NewServer creates a new API server over the given services.
func NewServer(
	users *service.UserService,
	tasks *service.TaskService,
	achievements *service.AchievementService,
	rewards *service.RewardService,
	authSvc *service.AuthService,
	jwtManager *auth.JWTManager,
) *Server {
	return &Server{
		users:        users,
		tasks:        tasks,
		achievements: achievements,
		rewards:      rewards,
		auth:         authSvc,
		jwtManager:   jwtManager,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	caregiverOnly := middleware.RequireCaregiver(s.jwtManager)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/pin/verify", s.handleVerifyPIN)
			r.With(caregiverOnly).Put("/pin", s.handleSetPIN)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}", s.handleGetUser)
			r.Get("/", s.handleListUsers)
			r.With(caregiverOnly).Post("/", s.handleCreateUser)
			r.With(caregiverOnly).Post("/{id}/tokens/adjust", s.handleAdjustBalance)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.handleListTasks)
			r.Get("/{id}", s.handleGetTask)
			r.Post("/{id}/complete", s.handleCompleteTask)
			r.With(caregiverOnly).Post("/", s.handleCreateTask)
			r.With(caregiverOnly).Post("/{id}/undo", s.handleUndoTask)
			r.With(caregiverOnly).Post("/{id}/reassign", s.handleReassignTask)
		})

		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", s.handleListAchievements)
			r.Get("/unlocked", s.handleListUnlocked)
		})

		r.Route("/rewards", func(r chi.Router) {
			r.Get("/", s.handleListRewards)
			r.Post("/{id}/redeem", s.handleRedeemReward)
			r.With(caregiverOnly).Post("/", s.handleCreateReward)
			r.With(caregiverOnly).Patch("/{id}", s.handleSetRewardActive)
			r.Get("/redemptions", s.handleListRedemptions)
		})
	})

	return r
}
