package store

import (
	"database/sql"
	"testing"
)

// insertActivity writes a ledger row directly. Production writes go through
// progression.Service; the store itself is read-only.
func insertActivity(t *testing.T, db *sql.DB, adminID, userID, taskID int64, date string, xp int) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO activity_log (admin_id, user_id, task_id, date, time_spent, xp_earned, bonus_xp) VALUES (?, ?, ?, ?, ?, ?, 0)`,
		adminID, userID, taskID, date, 30, xp,
	)
	if err != nil {
		t.Fatalf("insert activity: %v", err)
	}
}

func TestActivityListByUserAndDate(t *testing.T) {
	db := openTestDB(t)
	as := NewAdminStore(db)
	a, err := as.Register("mum", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	u, err := NewUserStore(db).Create(a.ID, "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	task, err := NewTaskStore(db).Create(a.ID, "Dishes", 10, 1.0)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	insertActivity(t, db, a.ID, u.ID, task.ID, "2026-08-27", 10)
	insertActivity(t, db, a.ID, u.ID, task.ID, "2026-08-28", 10)
	insertActivity(t, db, a.ID, u.ID, task.ID, "2026-08-28", 15)

	acts := NewActivityStore(db)
	entries, err := acts.ListByUserAndDate(a.ID, u.ID, "2026-08-28")
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].TaskName != "Dishes" {
		t.Errorf("task_name = %q, want %q", entries[0].TaskName, "Dishes")
	}
}

func TestActivityListByUserNewestFirst(t *testing.T) {
	db := openTestDB(t)
	as := NewAdminStore(db)
	a, err := as.Register("mum", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	u, err := NewUserStore(db).Create(a.ID, "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	task, err := NewTaskStore(db).Create(a.ID, "Dishes", 10, 1.0)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	insertActivity(t, db, a.ID, u.ID, task.ID, "2026-08-26", 10)
	insertActivity(t, db, a.ID, u.ID, task.ID, "2026-08-28", 10)
	insertActivity(t, db, a.ID, u.ID, task.ID, "2026-08-27", 10)

	entries, err := NewActivityStore(db).ListByUser(a.ID, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	want := []string{"2026-08-28", "2026-08-27", "2026-08-26"}
	for i, w := range want {
		if entries[i].Date != w {
			t.Errorf("entries[%d].Date = %q, want %q", i, entries[i].Date, w)
		}
	}
}

// Ledger rows survive the deletion of the task they reference; the joined
// task name just comes back empty.
func TestActivitySurvivesTaskDelete(t *testing.T) {
	db := openTestDB(t)
	as := NewAdminStore(db)
	a, err := as.Register("mum", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	u, err := NewUserStore(db).Create(a.ID, "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	ts := NewTaskStore(db)
	task, err := ts.Create(a.ID, "Dishes", 10, 1.0)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	insertActivity(t, db, a.ID, u.ID, task.ID, "2026-08-28", 10)

	if err := ts.Delete(a.ID, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}

	entries, err := NewActivityStore(db).ListByUser(a.ID, u.ID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len = %d, want 1", len(entries))
	}
	if entries[0].TaskName != "" {
		t.Errorf("task_name = %q, want empty after task delete", entries[0].TaskName)
	}
	if entries[0].XPEarned != 10 {
		t.Errorf("xp_earned = %d, want 10", entries[0].XPEarned)
	}
}
