package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"hogar/internal/auth"
	"hogar/internal/model"
	"hogar/internal/store"
	"hogar/internal/websocket"
)

const defaultTaskPoints = 10

type OnboardingHandler struct {
	userStore *store.UserStore
	taskStore *store.TaskStore
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewOnboardingHandler(us *store.UserStore, ts *store.TaskStore, hub *websocket.Hub, logger *slog.Logger) *OnboardingHandler {
	return &OnboardingHandler{userStore: us, taskStore: ts, hub: hub, logger: logger}
}

type onboardingStatus struct {
	Completed bool `json:"completed"`
	TaskCount int  `json:"task_count"`
}

// Status reports whether the household board has been set up. The wizard
// shows until at least one task exists.
func (h *OnboardingHandler) Status(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskStore.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check onboarding")
		return
	}

	writeJSON(w, http.StatusOK, onboardingStatus{
		Completed: len(tasks) > 0,
		TaskCount: len(tasks),
	})
}

type onboardingTask struct {
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Points       int      `json:"points"`
	AssignedDays []string `json:"assigned_days"`
	TaskTime     string   `json:"task_time"`
}

type onboardingRequest struct {
	Name     string           `json:"name"`
	PhotoURL string           `json:"photo_url"`
	Tasks    []onboardingTask `json:"tasks"`
}

// Complete runs the setup wizard in one shot: saves the user's display name
// and photo, then creates the initial tasks assigned to them.
func (h *OnboardingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req onboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	userID := auth.UserID(r.Context())
	user, err := h.userStore.GetByID(userID)
	if err != nil || user == nil {
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	user, err = h.userStore.Update(userID, req.Name, user.Email, req.PhotoURL)
	if err != nil {
		h.logger.Error("onboarding update user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	created := make([]model.Task, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" {
			continue
		}
		if t.Category == "" {
			t.Category = "Otros"
		}
		if t.Points <= 0 {
			t.Points = defaultTaskPoints
		}

		task, err := h.taskStore.Create(t.Title, "", t.Category, t.Points, req.Name, t.AssignedDays, nil, t.TaskTime, &userID)
		if err != nil {
			h.logger.Error("onboarding create task", "title", t.Title, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to create tasks")
			return
		}
		created = append(created, *task)
	}

	if h.hub != nil && len(created) > 0 {
		h.hub.Broadcast(websocket.NewMessage("task", "created", 0, map[string]any{"count": len(created)}))
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":  user,
		"tasks": created,
	})
}
