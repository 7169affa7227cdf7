package ranking

import (
	"testing"

	"hogar/internal/model"
)

func TestComputeFromUsers(t *testing.T) {
	users := []model.User{
		{ID: 1, Name: "Ana", TotalPoints: 30},
		{ID: 2, Name: "Leo", TotalPoints: 80},
		{ID: 3, Name: "Mar", TotalPoints: 30},
	}

	entries := Compute(users, nil)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Name != "Leo" || entries[0].Rank != 1 {
		t.Errorf("first = %+v, want Leo rank 1", entries[0])
	}
	// Ana and Mar are tied; fetch order breaks the tie.
	if entries[1].Name != "Ana" || entries[1].Rank != 2 {
		t.Errorf("second = %+v, want Ana rank 2", entries[1])
	}
	if entries[2].Name != "Mar" || entries[2].Rank != 3 {
		t.Errorf("third = %+v, want Mar rank 3", entries[2])
	}
}

func TestComputeFallback(t *testing.T) {
	tasks := []model.Task{
		{AssignedTo: "Ana", Points: 10, Status: model.StatusCompleted},
		{AssignedTo: "Ana", Points: 5, Status: model.StatusCompleted},
		{AssignedTo: "Leo", Points: 8, Status: model.StatusCompleted},
		{AssignedTo: "Leo", Points: 99, Status: model.StatusPending}, // not completed
		{Points: 50, Status: model.StatusCompleted},                  // unassigned
	}

	entries := Compute(nil, tasks)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Ana" || entries[0].TotalPoints != 15 || entries[0].Rank != 1 {
		t.Errorf("first = %+v, want Ana 15pts rank 1", entries[0])
	}
	if entries[1].Name != "Leo" || entries[1].TotalPoints != 8 || entries[1].Rank != 2 {
		t.Errorf("second = %+v, want Leo 8pts rank 2", entries[1])
	}
}

func TestFallbackSkippedWhenAnyUserExists(t *testing.T) {
	// Even a zero-point user suppresses the task-history fallback entirely.
	users := []model.User{{ID: 1, Name: "Ana", TotalPoints: 0}}
	tasks := []model.Task{
		{AssignedTo: "Leo", Points: 100, Status: model.StatusCompleted},
	}

	entries := Compute(users, tasks)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "Ana" || entries[0].TotalPoints != 0 {
		t.Errorf("got %+v, want Ana with 0 points", entries[0])
	}
}

func TestComputeEmpty(t *testing.T) {
	if entries := Compute(nil, nil); len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
