package store

import (
	"testing"
	"time"
)

func setupSessionTest(t *testing.T) (*SessionStore, int64) {
	t.Helper()
	db := openTestDB(t)
	as := NewAdminStore(db)
	a, err := as.Register("mum", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return NewSessionStore(db), a.ID
}

func TestSessionCreate(t *testing.T) {
	ss, adminID := setupSessionTest(t)

	sess, err := ss.Create(adminID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(sess.Token))
	}
	if sess.AdminID != adminID {
		t.Errorf("admin_id = %d, want %d", sess.AdminID, adminID)
	}
	if !sess.ExpiresAt.After(time.Now()) {
		t.Error("new session already expired")
	}
}

func TestSessionTokensUnique(t *testing.T) {
	ss, adminID := setupSessionTest(t)

	s1, err := ss.Create(adminID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	s2, err := ss.Create(adminID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if s1.Token == s2.Token {
		t.Error("two sessions share a token")
	}
}

func TestSessionGetByToken(t *testing.T) {
	ss, adminID := setupSessionTest(t)

	created, err := ss.Create(adminID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess == nil || sess.ID != created.ID {
		t.Errorf("got %+v, want session %d", sess, created.ID)
	}
}

func TestSessionGetByTokenUnknown(t *testing.T) {
	ss, _ := setupSessionTest(t)

	sess, err := ss.GetByToken("no-such-token")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess != nil {
		t.Error("expected nil for unknown token")
	}
}

func TestSessionDelete(t *testing.T) {
	ss, adminID := setupSessionTest(t)

	created, err := ss.Create(adminID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if err := ss.Delete(created.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if sess != nil {
		t.Error("session still resolvable after delete")
	}
}

func TestSessionDeleteExpired(t *testing.T) {
	db := openTestDB(t)
	as := NewAdminStore(db)
	a, err := as.Register("mum", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	ss := NewSessionStore(db)

	live, err := ss.Create(a.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	// Insert one already-expired row directly.
	if _, err := db.Exec(
		`INSERT INTO sessions (admin_id, token, expires_at) VALUES (?, ?, ?)`,
		a.ID, "expiredtoken", time.Now().Add(-time.Hour).UTC(),
	); err != nil {
		t.Fatalf("insert expired session: %v", err)
	}

	n, err := ss.DeleteExpired()
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}

	sess, err := ss.GetByToken(live.Token)
	if err != nil {
		t.Fatalf("get live session: %v", err)
	}
	if sess == nil {
		t.Error("live session was deleted")
	}
}
