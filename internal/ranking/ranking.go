// Package ranking derives the points leaderboard from users and tasks.
package ranking

import (
	"sort"

	"hogar/internal/model"
)

// Entry is one leaderboard row. UserID is zero for entries synthesized from
// task history (fallback path).
type Entry struct {
	UserID      int64  `json:"user_id,omitempty"`
	Name        string `json:"name"`
	PhotoURL    string `json:"photo_url,omitempty"`
	TotalPoints int    `json:"total_points"`
	Rank        int    `json:"rank"`
}

// Compute builds the leaderboard. When any user records exist they are ranked
// by their stored point totals and the task history is ignored entirely. Only
// a fully empty user set triggers the fallback, which reconstructs totals by
// summing completed-task points per assignee name.
func Compute(users []model.User, tasks []model.Task) []Entry {
	if len(users) == 0 {
		return fromCompletedTasks(tasks)
	}

	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		entries = append(entries, Entry{
			UserID:      u.ID,
			Name:        u.Name,
			PhotoURL:    u.PhotoURL,
			TotalPoints: u.TotalPoints,
		})
	}
	rank(entries)
	return entries
}

func fromCompletedTasks(tasks []model.Task) []Entry {
	totals := make(map[string]int)
	var order []string

	for _, t := range tasks {
		if t.Status != model.StatusCompleted || t.AssignedTo == "" {
			continue
		}
		if _, seen := totals[t.AssignedTo]; !seen {
			order = append(order, t.AssignedTo)
		}
		totals[t.AssignedTo] += t.Points
	}

	entries := make([]Entry, 0, len(order))
	for _, name := range order {
		entries = append(entries, Entry{Name: name, TotalPoints: totals[name]})
	}
	rank(entries)
	return entries
}

// rank sorts descending by points (stable, so ties keep their fetch order)
// and assigns 1-based positions.
func rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
