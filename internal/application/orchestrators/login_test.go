package orchestrators

import (
	"context"
	"errors"
	"testing"

	"gymadmin/internal/domain/user"
)

// mockUserStore implements UserStoreForLogin and UserStoreForAdmin for testing.
type mockUserStore struct {
	users map[string]user.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]user.User)}
}

func (m *mockUserStore) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, errors.New("not found")
	}
	return u, nil
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, errors.New("not found")
}

func (m *mockUserStore) Save(_ context.Context, u user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserStore) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserStore) Count(_ context.Context) (int, error) {
	return len(m.users), nil
}

func seedTestUser(t *testing.T, store *mockUserStore, username, password, role string) user.User {
	t.Helper()
	u := user.User{ID: "u-" + username, Username: username, Role: role}
	if err := u.SetPassword(password); err != nil {
		t.Fatalf("set password: %v", err)
	}
	store.users[u.ID] = u
	return u
}

// TestExecuteLogin_Valid tests a successful login.
func TestExecuteLogin_Valid(t *testing.T) {
	store := newMockUserStore()
	seedTestUser(t, store, "admin", "admin123!", user.RoleAdmin)

	result, err := ExecuteLogin(context.Background(), LoginInput{
		Username: "admin",
		Password: "admin123!",
	}, LoginDeps{UserStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Role != user.RoleAdmin {
		t.Errorf("role = %s, want admin", result.Role)
	}
	if result.UserID == "" {
		t.Error("expected user id in result")
	}
}

// TestExecuteLogin_WrongPassword tests that bad credentials are rejected and counted.
func TestExecuteLogin_WrongPassword(t *testing.T) {
	store := newMockUserStore()
	u := seedTestUser(t, store, "admin", "admin123!", user.RoleAdmin)

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Username: "admin",
		Password: "wrong",
	}, LoginDeps{UserStore: store})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if got := store.users[u.ID].FailedLogins; got != 1 {
		t.Errorf("failed logins = %d, want 1", got)
	}
}

// TestExecuteLogin_LockoutAfterRepeatedFailures tests the lockout threshold.
func TestExecuteLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	store := newMockUserStore()
	seedTestUser(t, store, "admin", "admin123!", user.RoleAdmin)
	deps := LoginDeps{UserStore: store}

	for i := 0; i < 5; i++ {
		_, err := ExecuteLogin(context.Background(), LoginInput{Username: "admin", Password: "wrong"}, deps)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// Even the correct password is refused while locked
	_, err := ExecuteLogin(context.Background(), LoginInput{Username: "admin", Password: "admin123!"}, deps)
	if !errors.Is(err, ErrUserLocked) {
		t.Errorf("expected ErrUserLocked, got %v", err)
	}
}

// TestExecuteCreateUser_DuplicateUsername tests username uniqueness.
func TestExecuteCreateUser_DuplicateUsername(t *testing.T) {
	store := newMockUserStore()
	seedTestUser(t, store, "reception", "reception1", user.RoleStaff)

	_, err := ExecuteCreateUser(context.Background(), CreateUserInput{
		Username: "reception",
		Password: "another-pass",
		Role:     user.RoleStaff,
	}, CreateUserDeps{UserStore: store, NewID: fixedID, Now: fixedNow})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

// TestExecuteDeleteUser_Self tests the self-delete guard.
func TestExecuteDeleteUser_Self(t *testing.T) {
	store := newMockUserStore()
	u := seedTestUser(t, store, "admin", "admin123!", user.RoleAdmin)

	err := ExecuteDeleteUser(context.Background(), DeleteUserInput{
		UserID:        u.ID,
		RequestedByID: u.ID,
	}, DeleteUserDeps{UserStore: store})
	if !errors.Is(err, ErrSelfDelete) {
		t.Errorf("expected ErrSelfDelete, got %v", err)
	}
	if _, ok := store.users[u.ID]; !ok {
		t.Error("user should not have been deleted")
	}
}

// TestExecuteSeedAdmin tests that seeding only happens on an empty user table.
func TestExecuteSeedAdmin(t *testing.T) {
	store := newMockUserStore()

	created, err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{
		Username: "admin",
		Password: "admin123!",
	}, SeedAdminDeps{UserStore: store, NewID: fixedID, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected admin to be created")
	}

	created, err = ExecuteSeedAdmin(context.Background(), SeedAdminInput{
		Username: "admin",
		Password: "admin123!",
	}, SeedAdminDeps{UserStore: store, NewID: fixedID, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("seeding should be skipped when users exist")
	}
}
