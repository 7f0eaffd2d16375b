package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymadmin/internal/domain/user"
)

// UserStoreForLogin defines the store interface needed by Login.
type UserStoreForLogin interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Save(ctx context.Context, u user.User) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	UserID   string
	Username string
	Role     string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	UserStore UserStoreForLogin
}

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserLocked         = errors.New("account is locked due to too many failed attempts")
)

// ExecuteLogin validates credentials and returns user info for session creation.
// PRE: Valid username and password provided
// POST: Returns user info on success, records failed login on failure
// INVARIANT: User must not be locked
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	u, err := deps.UserStore.GetByUsername(ctx, input.Username)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if u.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "username", input.Username, "reason", "locked")
		return LoginResult{}, ErrUserLocked
	}

	if err := u.CheckPassword(input.Password); err != nil {
		u.RecordFailedLogin()
		_ = deps.UserStore.Save(ctx, u)
		slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "wrong_password", "failed_logins", u.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	// Successful login — reset failed attempts
	u.ResetFailedLogins()
	_ = deps.UserStore.Save(ctx, u)

	slog.Info("auth_event", "event", "login_success", "username", input.Username, "role", u.Role)

	return LoginResult{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	}, nil
}
