package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mossery/chorequest/internal/auth"
	"github.com/mossery/chorequest/internal/model"
	"github.com/mossery/chorequest/internal/store"
)

type TaskHandler struct {
	taskStore *store.TaskStore
	logger    *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskStore: ts, logger: logger}
}

type taskRequest struct {
	TaskName       string  `json:"task_name"`
	BaseXP         int     `json:"base_xp"`
	TimeMultiplier float64 `json:"time_multiplier"`
}

func (req *taskRequest) validate() string {
	req.TaskName = strings.TrimSpace(req.TaskName)
	if req.TaskName == "" {
		return "task_name is required"
	}
	if req.BaseXP < 0 {
		return "base_xp must be >= 0"
	}
	if req.TimeMultiplier < 0 {
		return "time_multiplier must be >= 0"
	}
	return ""
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	task, err := h.taskStore.Create(auth.AdminID(r.Context()), req.TaskName, req.BaseXP, req.TimeMultiplier)
	if err != nil {
		h.logger.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskStore.List(auth.AdminID(r.Context()))
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	adminID := auth.AdminID(r.Context())
	existing, err := h.taskStore.GetByID(adminID, id)
	if err != nil {
		h.logger.Error("get task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	task, err := h.taskStore.Update(adminID, id, req.TaskName, req.BaseXP, req.TimeMultiplier)
	if err != nil {
		h.logger.Error("update task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	adminID := auth.AdminID(r.Context())
	existing, err := h.taskStore.GetByID(adminID, id)
	if err != nil {
		h.logger.Error("get task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	if err := h.taskStore.Delete(adminID, id); err != nil {
		h.logger.Error("delete task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
