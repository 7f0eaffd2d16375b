package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gymadmin/internal/domain/user"
)

func TestSessionStore_CreateGetDelete(t *testing.T) {
	ss := NewSessionStore()

	token, err := ss.Create("u1", "ana", user.RoleStaff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess, ok := ss.Get(token)
	if !ok {
		t.Fatal("session not found after create")
	}
	if sess.UserID != "u1" || sess.Username != "ana" || sess.Role != user.RoleStaff {
		t.Errorf("session = %+v", sess)
	}

	ss.Delete(token)
	if _, ok := ss.Get(token); ok {
		t.Error("session still present after delete")
	}
}

func TestSessionStore_ExpiredSessionIsAMiss(t *testing.T) {
	ss := NewSessionStore()
	ss.sessions["old"] = Session{UserID: "u1", CreatedAt: time.Now().Add(-25 * time.Hour)}

	if _, ok := ss.Get("old"); ok {
		t.Error("expired session returned as valid")
	}
	if _, present := ss.sessions["old"]; present {
		t.Error("expired session not evicted")
	}
}

// TestSessionStore_ConcurrentGetWithExpiry exercises concurrent lookups while
// an expired entry is being evicted. Run with -race.
func TestSessionStore_ConcurrentGetWithExpiry(t *testing.T) {
	ss := NewSessionStore()
	ss.sessions["old"] = Session{UserID: "u1", CreatedAt: time.Now().Add(-25 * time.Hour)}
	fresh, err := ss.Create("u2", "bea", user.RoleStaff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, ok := ss.Get("old"); ok {
					t.Error("expired session returned as valid")
				}
				if _, ok := ss.Get(fresh); !ok {
					t.Error("fresh session lost")
				}
			}
		}()
	}
	wg.Wait()
}

func TestRequireAuth_Unauthenticated(t *testing.T) {
	h := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a session")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/members", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("location = %s, want /login", loc)
	}
}

// TestRequireRole_StaffDenied tests that an authenticated non-admin is sent
// back to the dashboard with an access-denied message, not a bare 403.
func TestRequireRole_StaffDenied(t *testing.T) {
	h := RequireRole(user.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without the admin role")
	}))

	req := httptest.NewRequest("GET", "/users", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{UserID: "u1", Username: "ana", Role: user.RoleStaff}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/?msg=Access+denied" {
		t.Errorf("location = %s, want /?msg=Access+denied", loc)
	}
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	reached := false
	h := RequireRole(user.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest("GET", "/users", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{UserID: "u1", Username: "ana", Role: user.RoleAdmin}))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !reached {
		t.Error("admin request did not reach the handler")
	}
}
