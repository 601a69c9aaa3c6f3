package store

import "testing"

func setupUserTest(t *testing.T) (*UserStore, int64, int64) {
	t.Helper()
	db := openTestDB(t)
	as := NewAdminStore(db)
	a1, err := as.Register("mum", "secret123")
	if err != nil {
		t.Fatalf("register tenant a: %v", err)
	}
	a2, err := as.Register("dad", "secret456")
	if err != nil {
		t.Fatalf("register tenant b: %v", err)
	}
	return NewUserStore(db), a1.ID, a2.ID
}

func TestUserCreate(t *testing.T) {
	us, adminID, _ := setupUserTest(t)

	u, err := us.Create(adminID, "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Name != "Alice" {
		t.Errorf("name = %q, want %q", u.Name, "Alice")
	}
	if u.CurrentLevel != 0 {
		t.Errorf("current_level = %d, want 0", u.CurrentLevel)
	}
	if u.TotalXP != 0 {
		t.Errorf("total_xp = %d, want 0", u.TotalXP)
	}
}

func TestUserGetByIDNotFound(t *testing.T) {
	us, adminID, _ := setupUserTest(t)

	u, err := us.GetByID(adminID, 999)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if u != nil {
		t.Error("expected nil for nonexistent user")
	}
}

func TestUserTenantIsolation(t *testing.T) {
	us, adminA, adminB := setupUserTest(t)

	created, err := us.Create(adminA, "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	u, err := us.GetByID(adminB, created.ID)
	if err != nil {
		t.Fatalf("get across tenants: %v", err)
	}
	if u != nil {
		t.Error("tenant B must not see tenant A's user")
	}

	listB, err := us.List(adminB)
	if err != nil {
		t.Fatalf("list tenant b: %v", err)
	}
	if len(listB) != 0 {
		t.Errorf("tenant B list = %d users, want 0", len(listB))
	}

	if _, err := us.Update(adminB, created.ID, "Mallory"); err != nil {
		t.Fatalf("cross-tenant update: %v", err)
	}
	u, _ = us.GetByID(adminA, created.ID)
	if u.Name != "Alice" {
		t.Errorf("cross-tenant update changed name to %q", u.Name)
	}
}

func TestUserUpdate(t *testing.T) {
	us, adminID, _ := setupUserTest(t)

	created, err := us.Create(adminID, "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	updated, err := us.Update(adminID, created.ID, "Alice B")
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Name != "Alice B" {
		t.Errorf("name = %q, want %q", updated.Name, "Alice B")
	}
}

func TestUserDelete(t *testing.T) {
	us, adminID, _ := setupUserTest(t)

	created, err := us.Create(adminID, "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := us.Delete(adminID, created.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	u, err := us.GetByID(adminID, created.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if u != nil {
		t.Error("expected nil after delete")
	}
}

// A fractional mean rounds to the nearest XP rather than truncating.
func TestUserSummaryRoundsAverageXP(t *testing.T) {
	db := openTestDB(t)
	as := NewAdminStore(db)
	a, err := as.Register("mum", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	us := NewUserStore(db)

	for _, xp := range []int{10, 15} {
		u, err := us.Create(a.ID, "kid")
		if err != nil {
			t.Fatalf("create user: %v", err)
		}
		if _, err := db.Exec(`UPDATE users SET total_xp = ? WHERE id = ?`, xp, u.ID); err != nil {
			t.Fatalf("set total_xp: %v", err)
		}
	}

	sum, err := us.Summary(a.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	// Mean of 10 and 15 is 12.5; rounds to 13.
	if sum.AverageXP != 13 {
		t.Errorf("average_xp = %d, want 13", sum.AverageXP)
	}
}

func TestUserSummaryEmpty(t *testing.T) {
	us, adminID, _ := setupUserTest(t)

	sum, err := us.Summary(adminID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.UserCount != 0 || sum.HighestLevel != 0 || sum.AverageXP != 0 {
		t.Errorf("empty summary = %+v, want zeros", sum)
	}
}
