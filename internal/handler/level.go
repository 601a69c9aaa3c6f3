package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mossery/chorequest/internal/auth"
	"github.com/mossery/chorequest/internal/model"
	"github.com/mossery/chorequest/internal/store"
)

type LevelHandler struct {
	levelStore *store.LevelStore
	logger     *slog.Logger
}

func NewLevelHandler(ls *store.LevelStore, logger *slog.Logger) *LevelHandler {
	return &LevelHandler{levelStore: ls, logger: logger}
}

type levelRequest struct {
	Level        int    `json:"level"`
	XPRequired   int    `json:"xp_required"`
	CumulativeXP int    `json:"cumulative_xp"`
	Reward       string `json:"reward"`
}

func (req *levelRequest) validate() string {
	if req.Level < 1 {
		return "level must be >= 1"
	}
	if req.XPRequired < 0 {
		return "xp_required must be >= 0"
	}
	if req.CumulativeXP < 0 {
		return "cumulative_xp must be >= 0"
	}
	return ""
}

func (h *LevelHandler) List(w http.ResponseWriter, r *http.Request) {
	levels, err := h.levelStore.List(auth.AdminID(r.Context()))
	if err != nil {
		h.logger.Error("list levels", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list levels")
		return
	}
	if levels == nil {
		levels = []model.Level{}
	}
	writeJSON(w, http.StatusOK, levels)
}

func (h *LevelHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req levelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	adminID := auth.AdminID(r.Context())
	existing, err := h.levelStore.Get(adminID, req.Level)
	if err != nil {
		h.logger.Error("get level", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to check level")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "level already exists")
		return
	}

	level, err := h.levelStore.Add(adminID, req.Level, req.XPRequired, req.CumulativeXP, req.Reward)
	if err != nil {
		h.logger.Error("add level", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add level")
		return
	}
	writeJSON(w, http.StatusCreated, level)
}

func (h *LevelHandler) Update(w http.ResponseWriter, r *http.Request) {
	levelNum, err := strconv.Atoi(r.PathValue("level"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid level")
		return
	}

	adminID := auth.AdminID(r.Context())
	existing, err := h.levelStore.Get(adminID, levelNum)
	if err != nil {
		h.logger.Error("get level", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get level")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "level not found")
		return
	}

	var req levelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.XPRequired < 0 || req.CumulativeXP < 0 {
		writeError(w, http.StatusBadRequest, "thresholds must be >= 0")
		return
	}

	level, err := h.levelStore.Update(adminID, levelNum, req.XPRequired, req.CumulativeXP, req.Reward)
	if err != nil {
		h.logger.Error("update level", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update level")
		return
	}
	writeJSON(w, http.StatusOK, level)
}
