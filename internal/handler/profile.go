package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"hogar/internal/auth"
	"hogar/internal/model"
	"hogar/internal/ranking"
	"hogar/internal/schedule"
	"hogar/internal/store"
)

type ProfileHandler struct {
	userStore *store.UserStore
	taskStore *store.TaskStore
	logger    *slog.Logger
}

func NewProfileHandler(us *store.UserStore, ts *store.TaskStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{userStore: us, taskStore: ts, logger: logger}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userStore.GetByID(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type profileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo_url"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	existing, err := h.userStore.GetByID(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" {
		req.Name = existing.Name
	}
	if req.Email == "" {
		req.Email = existing.Email
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email")
		return
	}

	user, err := h.userStore.Update(userID, req.Name, req.Email, req.PhotoURL)
	if err != nil {
		h.logger.Error("update profile", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type statsResponse struct {
	schedule.Stats
	TotalPoints int `json:"total_points"`
	Rank        int `json:"rank"`
}

// Stats returns personal task statistics: counts over the tasks assigned to
// the user plus their position on the scoreboard.
func (h *ProfileHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, err := h.userStore.GetByID(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	tasks, err := h.taskStore.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	var mine []model.Task
	for _, t := range tasks {
		if t.AssignedTo == user.Name {
			mine = append(mine, t)
		}
	}

	users, err := h.userStore.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	rank := 0
	for _, e := range ranking.Compute(users, tasks) {
		if e.UserID == user.ID {
			rank = e.Rank
			break
		}
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Stats:       schedule.ComputeStats(mine),
		TotalPoints: user.TotalPoints,
		Rank:        rank,
	})
}
