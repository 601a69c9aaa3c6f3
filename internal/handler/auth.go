package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mossery/chorequest/internal/auth"
	"github.com/mossery/chorequest/internal/middleware"
	"github.com/mossery/chorequest/internal/store"
)

type AuthHandler struct {
	adminStore   *store.AdminStore
	sessionStore *store.SessionStore
	logger       *slog.Logger
}

func NewAuthHandler(as *store.AdminStore, ss *store.SessionStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{adminStore: as, sessionStore: ss, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new tenant and seeds its default level ladder.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	admin, err := h.adminStore.Register(req.Username, req.Password)
	if errors.Is(err, store.ErrDuplicateUsername) {
		writeError(w, http.StatusConflict, "username already taken")
		return
	}
	if err != nil {
		h.logger.Error("register admin", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	writeJSON(w, http.StatusCreated, admin)
}

// Login authenticates a tenant and starts a session. Unknown usernames and
// wrong passwords produce the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	admin, err := h.adminStore.Authenticate(strings.TrimSpace(req.Username), req.Password)
	if errors.Is(err, store.ErrNotAuthenticated) {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		h.logger.Error("authenticate", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	sess, err := h.sessionStore.Create(admin.ID)
	if err != nil {
		h.logger.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   90 * 24 * 60 * 60, // 90 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	writeJSON(w, http.StatusOK, map[string]any{"admin_id": admin.ID, "username": admin.Username})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if ac, ok := auth.FromContext(r.Context()); ok {
		if err := h.sessionStore.Delete(ac.SessionID); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	w.WriteHeader(http.StatusNoContent)
}
