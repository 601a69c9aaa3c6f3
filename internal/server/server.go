package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/mossery/chorequest/internal/handler"
	"github.com/mossery/chorequest/internal/middleware"
	"github.com/mossery/chorequest/internal/progression"
	"github.com/mossery/chorequest/internal/reward"
	"github.com/mossery/chorequest/internal/store"
	ws "github.com/mossery/chorequest/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	authH        *handler.AuthHandler
	userH        *handler.UserHandler
	taskH        *handler.TaskHandler
	levelH       *handler.LevelHandler
	activityH    *handler.ActivityHandler
	smallRewardH *handler.SmallRewardHandler
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	adminStore := store.NewAdminStore(db)
	sessionStore := store.NewSessionStore(db)
	userStore := store.NewUserStore(db)
	taskStore := store.NewTaskStore(db)
	levelStore := store.NewLevelStore(db)
	activityStore := store.NewActivityStore(db)
	smallRewardStore := store.NewSmallRewardStore(db)

	progressionSvc := progression.NewService(db, logger.With("component", "progression"))
	picker := reward.NewPicker(rand.New(rand.NewSource(time.Now().UnixNano())))

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(adminStore, sessionStore, logger.With("component", "auth")),
		userH:        handler.NewUserHandler(userStore, progressionSvc, logger.With("component", "user")),
		taskH:        handler.NewTaskHandler(taskStore, logger.With("component", "task")),
		levelH:       handler.NewLevelHandler(levelStore, logger.With("component", "level")),
		activityH:    handler.NewActivityHandler(progressionSvc, activityStore, smallRewardStore, picker, hub, logger.With("component", "activity")),
		smallRewardH: handler.NewSmallRewardHandler(smallRewardStore, picker, logger.With("component", "small_reward")),
		sessionStore: sessionStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.authH.Logout)

	// Users (children)
	mux.HandleFunc("GET /api/users", s.userH.List)
	mux.HandleFunc("POST /api/users", s.userH.Create)
	mux.HandleFunc("GET /api/users/{id}", s.userH.Get)
	mux.HandleFunc("PUT /api/users/{id}", s.userH.Update)
	mux.HandleFunc("DELETE /api/users/{id}", s.userH.Delete)
	mux.HandleFunc("GET /api/users/{id}/progress", s.userH.Progress)
	mux.HandleFunc("GET /api/users/{id}/activities", s.activityH.ListForUser)

	// Tasks
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)

	// Levels
	mux.HandleFunc("GET /api/levels", s.levelH.List)
	mux.HandleFunc("POST /api/levels", s.levelH.Add)
	mux.HandleFunc("PUT /api/levels/{level}", s.levelH.Update)

	// Activity ledger
	mux.HandleFunc("POST /api/activities", s.activityH.Log)

	// Small rewards
	mux.HandleFunc("GET /api/small-rewards", s.smallRewardH.List)
	mux.HandleFunc("POST /api/small-rewards", s.smallRewardH.Create)
	mux.HandleFunc("DELETE /api/small-rewards/{id}", s.smallRewardH.Delete)
	mux.HandleFunc("GET /api/small-rewards/draw", s.smallRewardH.Draw)

	// Dashboard
	mux.HandleFunc("GET /api/summary", s.userH.Summary)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
}
