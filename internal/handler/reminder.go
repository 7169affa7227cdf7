package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"

	"hogar/internal/model"
	"hogar/internal/store"
	"hogar/internal/websocket"
)

var reminderTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

type ReminderHandler struct {
	reminderStore *store.ReminderStore
	taskStore     *store.TaskStore
	hub           *websocket.Hub
	logger        *slog.Logger
}

func NewReminderHandler(rs *store.ReminderStore, ts *store.TaskStore, hub *websocket.Hub, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{reminderStore: rs, taskStore: ts, hub: hub, logger: logger}
}

func (h *ReminderHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type reminderRequest struct {
	ReminderTime string   `json:"reminder_time"`
	DaysOfWeek   []string `json:"days_of_week"`
}

// Create adds a reminder to the task in the path. An empty days_of_week
// list means the reminder fires every day.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	taskID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	task, err := h.taskStore.GetByID(taskID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if !reminderTimeRe.MatchString(req.ReminderTime) {
		writeError(w, http.StatusBadRequest, "reminder_time must be HH:MM or HH:MM:SS")
		return
	}

	reminder, err := h.reminderStore.Create(taskID, req.ReminderTime, req.DaysOfWeek)
	if err != nil {
		h.logger.Error("create reminder", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create reminder")
		return
	}

	h.broadcast(websocket.NewMessage("reminder", "created", reminder.ID, map[string]any{"task_id": taskID}))

	writeJSON(w, http.StatusCreated, reminder)
}

// ListByTask returns the active reminders for a task, earliest first.
func (h *ReminderHandler) ListByTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	reminders, err := h.reminderStore.ListActiveByTask(taskID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list reminders")
		return
	}
	if reminders == nil {
		reminders = []model.Reminder{}
	}

	writeJSON(w, http.StatusOK, reminders)
}

// Delete deactivates a reminder. The row stays for the notification log.
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.reminderStore.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get reminder")
		return
	}
	if existing == nil || !existing.IsActive {
		writeError(w, http.StatusNotFound, "reminder not found")
		return
	}

	if err := h.reminderStore.Deactivate(id); err != nil {
		h.logger.Error("deactivate reminder", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete reminder")
		return
	}

	h.broadcast(websocket.NewMessage("reminder", "deleted", id, nil))

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
