package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mossery/chorequest/internal/auth"
	"github.com/mossery/chorequest/internal/database"
	"github.com/mossery/chorequest/internal/store"
)

func setupAuthTest(t *testing.T) (*store.SessionStore, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// In-memory SQLite is per-connection; keep the pool on one.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	admin, err := store.NewAdminStore(db).Register("mum", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return store.NewSessionStore(db), admin.ID
}

func TestRequireAuthValidSession(t *testing.T) {
	ss, adminID := setupAuthTest(t)
	sess, err := ss.Create(adminID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	var gotAdminID int64
	handler := RequireAuth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAdminID = auth.AdminID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.Token})
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotAdminID != adminID {
		t.Errorf("admin id in context = %d, want %d", gotAdminID, adminID)
	}
}

func TestRequireAuthNoCookie(t *testing.T) {
	ss, _ := setupAuthTest(t)

	handler := RequireAuth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without session")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q, want application/json", ct)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	ss, _ := setupAuthTest(t)

	handler := RequireAuth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with bogus token")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bogus"})
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthDeletedSession(t *testing.T) {
	ss, adminID := setupAuthTest(t)
	sess, err := ss.Create(adminID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := ss.Delete(sess.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	handler := RequireAuth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with deleted session")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.Token})
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
