package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mossery/chorequest/internal/model"
	"github.com/mossery/chorequest/internal/reward"
	"github.com/mossery/chorequest/internal/store"
)

type SmallRewardHandler struct {
	rewardStore *store.SmallRewardStore
	picker      *reward.Picker
	logger      *slog.Logger
}

func NewSmallRewardHandler(rs *store.SmallRewardStore, picker *reward.Picker, logger *slog.Logger) *SmallRewardHandler {
	return &SmallRewardHandler{rewardStore: rs, picker: picker, logger: logger}
}

func (h *SmallRewardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reward string `json:"reward"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Reward = strings.TrimSpace(req.Reward)
	if req.Reward == "" {
		writeError(w, http.StatusBadRequest, "reward is required")
		return
	}

	sr, err := h.rewardStore.Add(req.Reward)
	if err != nil {
		h.logger.Error("add small reward", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add reward")
		return
	}
	writeJSON(w, http.StatusCreated, sr)
}

func (h *SmallRewardHandler) List(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.rewardStore.List()
	if err != nil {
		h.logger.Error("list small rewards", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list rewards")
		return
	}
	if rewards == nil {
		rewards = []model.SmallReward{}
	}
	writeJSON(w, http.StatusOK, rewards)
}

func (h *SmallRewardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.rewardStore.Delete(id); err != nil {
		h.logger.Error("delete small reward", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete reward")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Draw picks one reward uniformly at random without consuming it. An empty
// pool yields an empty response body with 204.
func (h *SmallRewardHandler) Draw(w http.ResponseWriter, r *http.Request) {
	pool, err := h.rewardStore.List()
	if err != nil {
		h.logger.Error("list small rewards", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to draw reward")
		return
	}

	picked, ok := h.picker.Pick(pool)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reward": picked})
}
