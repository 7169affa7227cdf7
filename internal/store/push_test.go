package store

import (
	"testing"

	"hogar/internal/database"
)

func setupPushTestDB(t *testing.T) (*PushStore, *ReminderStore, *TaskStore, *UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPushStore(db), NewReminderStore(db), NewTaskStore(db), NewUserStore(db)
}

func TestSubscriptionUpsert(t *testing.T) {
	ps, _, _, us := setupPushTestDB(t)

	user, err := us.Create("Ana", "", "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	sub, err := ps.CreateSubscription(user.ID, "https://push.example/ep1", "key1", "auth1", "Teléfono")
	if err != nil {
		t.Fatalf("create subscription: %v", err)
	}

	// Same endpoint again replaces the keys instead of duplicating.
	sub2, err := ps.CreateSubscription(user.ID, "https://push.example/ep1", "key2", "auth2", "Teléfono")
	if err != nil {
		t.Fatalf("re-subscribe: %v", err)
	}
	if sub2.ID != sub.ID {
		t.Errorf("expected same row, got %d and %d", sub.ID, sub2.ID)
	}
	if sub2.P256dhKey != "key2" {
		t.Errorf("p256dh = %q, want key2", sub2.P256dhKey)
	}

	subs, err := ps.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list subscriptions: %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("expected 1 subscription, got %d", len(subs))
	}

	if err := ps.DeleteByEndpoint("https://push.example/ep1"); err != nil {
		t.Fatalf("delete by endpoint: %v", err)
	}
	subs, _ = ps.ListByUser(user.ID)
	if len(subs) != 0 {
		t.Errorf("expected 0 subscriptions, got %d", len(subs))
	}
}

func TestNotificationLogDedup(t *testing.T) {
	ps, rs, ts, _ := setupPushTestDB(t)

	task, err := ts.Create("Regar", "", "Jardín", 2, "", nil, nil, "", nil)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	rem, err := rs.Create(task.ID, "09:00:00", nil)
	if err != nil {
		t.Fatalf("create reminder: %v", err)
	}

	sent, err := ps.WasSent(rem.ID, "2026-02-02")
	if err != nil {
		t.Fatalf("was sent: %v", err)
	}
	if sent {
		t.Error("nothing recorded yet")
	}

	if err := ps.RecordSent(rem.ID, "2026-02-02"); err != nil {
		t.Fatalf("record sent: %v", err)
	}
	// Recording twice is harmless.
	if err := ps.RecordSent(rem.ID, "2026-02-02"); err != nil {
		t.Fatalf("record sent again: %v", err)
	}

	sent, err = ps.WasSent(rem.ID, "2026-02-02")
	if err != nil {
		t.Fatalf("was sent: %v", err)
	}
	if !sent {
		t.Error("expected dedup hit")
	}

	sent, _ = ps.WasSent(rem.ID, "2026-02-03")
	if sent {
		t.Error("different day should not dedup")
	}
}
