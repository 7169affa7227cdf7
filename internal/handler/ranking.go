package handler

import (
	"net/http"

	"hogar/internal/ranking"
	"hogar/internal/store"
)

type RankingHandler struct {
	userStore *store.UserStore
	taskStore *store.TaskStore
}

func NewRankingHandler(us *store.UserStore, ts *store.TaskStore) *RankingHandler {
	return &RankingHandler{userStore: us, taskStore: ts}
}

// Get returns the household scoreboard, highest points first.
func (h *RankingHandler) Get(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	tasks, err := h.taskStore.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	entries := ranking.Compute(users, tasks)
	if entries == nil {
		entries = []ranking.Entry{}
	}

	writeJSON(w, http.StatusOK, entries)
}
