package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mossery/chorequest/internal/auth"
	"github.com/mossery/chorequest/internal/model"
	"github.com/mossery/chorequest/internal/progression"
	"github.com/mossery/chorequest/internal/reward"
	"github.com/mossery/chorequest/internal/store"
	"github.com/mossery/chorequest/internal/websocket"
)

type ActivityHandler struct {
	progression   *progression.Service
	activityStore *store.ActivityStore
	rewardStore   *store.SmallRewardStore
	picker        *reward.Picker
	hub           *websocket.Hub
	logger        *slog.Logger
}

func NewActivityHandler(
	ps *progression.Service,
	as *store.ActivityStore,
	rs *store.SmallRewardStore,
	picker *reward.Picker,
	hub *websocket.Hub,
	logger *slog.Logger,
) *ActivityHandler {
	return &ActivityHandler{
		progression:   ps,
		activityStore: as,
		rewardStore:   rs,
		picker:        picker,
		hub:           hub,
		logger:        logger,
	}
}

func (h *ActivityHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type logActivityRequest struct {
	UserID    int64  `json:"user_id"`
	TaskID    int64  `json:"task_id"`
	Date      string `json:"date"`
	TimeSpent int    `json:"time_spent"`
	BonusXP   int    `json:"bonus_xp"`
}

type logActivityResponse struct {
	XPEarned     int    `json:"xp_earned"`
	TotalXP      int    `json:"total_xp"`
	CurrentLevel int    `json:"current_level"`
	LeveledUp    bool   `json:"leveled_up"`
	SmallReward  string `json:"small_reward,omitempty"`
}

// Log records one activity: ledger append, XP increment, and level recompute
// happen atomically in the progression service. A small reward may come back
// as a side incentive; it is advisory and never persisted.
func (h *ActivityHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req logActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	adminID := auth.AdminID(r.Context())
	result, err := h.progression.LogActivity(adminID, req.UserID, req.TaskID, req.Date, req.TimeSpent, req.BonusXP)
	switch {
	case errors.Is(err, progression.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, progression.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
		return
	case errors.Is(err, progression.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "task not found")
		return
	case err != nil:
		h.logger.Error("log activity", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to log activity")
		return
	}

	resp := logActivityResponse{
		XPEarned:     result.XPEarned,
		TotalXP:      result.TotalXP,
		CurrentLevel: result.CurrentLevel,
		LeveledUp:    result.LeveledUp,
	}

	if pool, err := h.rewardStore.List(); err != nil {
		h.logger.Error("list small rewards", "error", err)
	} else if picked, ok := h.picker.Pick(pool); ok {
		resp.SmallReward = picked
	}

	h.broadcast(websocket.NewMessage("activity", "logged", result.Entry.ID, map[string]any{
		"user_id":   req.UserID,
		"xp_earned": result.XPEarned,
	}))
	if result.LeveledUp {
		h.broadcast(websocket.NewMessage("user", "level_up", req.UserID, map[string]any{
			"level": result.CurrentLevel,
		}))
	}

	writeJSON(w, http.StatusCreated, resp)
}

// ListForUser returns a user's ledger entries: all of them, most recent date
// first, or a single day when ?date=YYYY-MM-DD is given.
func (h *ActivityHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	adminID := auth.AdminID(r.Context())

	var entries []model.ActivityEntry
	if date := r.URL.Query().Get("date"); date != "" {
		entries, err = h.activityStore.ListByUserAndDate(adminID, userID, date)
	} else {
		entries, err = h.activityStore.ListByUser(adminID, userID)
	}
	if err != nil {
		h.logger.Error("list activities", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list activities")
		return
	}
	if entries == nil {
		entries = []model.ActivityEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
