package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"hogar/internal/auth"
	"hogar/internal/model"
	"hogar/internal/store"
	"hogar/internal/websocket"
)

type TaskHandler struct {
	taskStore *store.TaskStore
	userStore *store.UserStore
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, us *store.UserStore, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskStore: ts, userStore: us, hub: hub, logger: logger}
}

func (h *TaskHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type taskRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Points       int      `json:"points"`
	AssignedTo   string   `json:"assigned_to"`
	AssignedDays []string `json:"assigned_days"`
	DueDate      string   `json:"due_date"`
	TaskTime     string   `json:"task_time"`
}

func (r *taskRequest) dueDate() (*time.Time, error) {
	if r.DueDate == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(time.DateOnly, r.DueDate, time.Local)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Points < 0 {
		writeError(w, http.StatusBadRequest, "points must not be negative")
		return
	}
	if req.Category == "" {
		req.Category = "Otros"
	}

	due, err := req.dueDate()
	if err != nil {
		writeError(w, http.StatusBadRequest, "due_date must be YYYY-MM-DD")
		return
	}

	userID := auth.UserID(r.Context())
	task, err := h.taskStore.Create(req.Title, req.Description, req.Category, req.Points, req.AssignedTo, req.AssignedDays, due, req.TaskTime, &userID)
	if err != nil {
		h.logger.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	h.broadcast(websocket.NewMessage("task", "created", task.ID, nil))

	writeJSON(w, http.StatusCreated, task)
}

// List returns all tasks, newest first. The status and category query
// parameters narrow the result.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskStore.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	status := r.URL.Query().Get("status")
	category := r.URL.Query().Get("category")

	filtered := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if status != "" && string(t.Status) != status {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		filtered = append(filtered, t)
	}

	writeJSON(w, http.StatusOK, filtered)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	task, err := h.taskStore.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.taskStore.GetByID(id)
	if err != nil {
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

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Points < 0 {
		writeError(w, http.StatusBadRequest, "points must not be negative")
		return
	}
	if req.Category == "" {
		req.Category = existing.Category
	}

	due, err := req.dueDate()
	if err != nil {
		writeError(w, http.StatusBadRequest, "due_date must be YYYY-MM-DD")
		return
	}

	task, err := h.taskStore.Update(id, req.Title, req.Description, req.Category, req.Points, req.AssignedTo, req.AssignedDays, due, req.TaskTime)
	if err != nil {
		h.logger.Error("update task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	h.broadcast(websocket.NewMessage("task", "updated", id, nil))

	writeJSON(w, http.StatusOK, task)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a task through its lifecycle. Completing a task awards
// its points to the acting user; points are never taken back, so reopening a
// completed task leaves the score as is.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	status := model.TaskStatus(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	existing, err := h.taskStore.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	task, err := h.taskStore.UpdateStatus(id, status)
	if err != nil {
		h.logger.Error("update task status", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	if status == model.StatusCompleted && existing.Status != model.StatusCompleted {
		userID := auth.UserID(r.Context())
		if _, err := h.userStore.AddPoints(userID, task.Points); err != nil {
			h.logger.Error("award points", "user_id", userID, "error", err)
		}
		h.broadcast(websocket.NewMessage("task", "completed", id, map[string]any{"points": task.Points}))
	} else {
		h.broadcast(websocket.NewMessage("task", "updated", id, nil))
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.taskStore.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	if err := h.taskStore.Delete(id); err != nil {
		h.logger.Error("delete task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	h.broadcast(websocket.NewMessage("task", "deleted", id, nil))

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
