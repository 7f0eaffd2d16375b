package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gymadmin/internal/domain/user"
)

// UserStoreForAdmin defines the store interface needed by user management.
type UserStoreForAdmin interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Save(ctx context.Context, u user.User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrSelfDelete    = errors.New("you cannot delete your own account")
)

// CreateUserInput carries input for creating a staff or admin user.
type CreateUserInput struct {
	Username string
	Password string
	Role     string
}

// CreateUserDeps holds dependencies for CreateUser.
type CreateUserDeps struct {
	UserStore UserStoreForAdmin
	NewID     func() string
	Now       func() time.Time
}

// ExecuteCreateUser creates a new user with a hashed password.
// PRE: Username, password and role provided
// POST: User is persisted; username is unique
func ExecuteCreateUser(ctx context.Context, input CreateUserInput, deps CreateUserDeps) (user.User, error) {
	if _, err := deps.UserStore.GetByUsername(ctx, input.Username); err == nil {
		return user.User{}, ErrUsernameTaken
	}

	u := user.User{
		ID:        deps.NewID(),
		Username:  input.Username,
		Role:      input.Role,
		CreatedAt: deps.Now(),
	}
	if err := u.SetPassword(input.Password); err != nil {
		return user.User{}, err
	}
	if err := u.Validate(); err != nil {
		return user.User{}, err
	}

	if err := deps.UserStore.Save(ctx, u); err != nil {
		return user.User{}, fmt.Errorf("failed to save user: %w", err)
	}

	slog.Info("user_event", "event", "user_created", "username", u.Username, "role", u.Role)
	return u, nil
}

// DeleteUserInput carries input for deleting a user.
type DeleteUserInput struct {
	UserID        string // user to delete
	RequestedByID string // user performing the deletion
}

// DeleteUserDeps holds dependencies for DeleteUser.
type DeleteUserDeps struct {
	UserStore UserStoreForAdmin
}

// ExecuteDeleteUser removes a user account.
// PRE: UserID exists
// INVARIANT: A user cannot delete their own account
func ExecuteDeleteUser(ctx context.Context, input DeleteUserInput, deps DeleteUserDeps) error {
	if input.UserID == input.RequestedByID {
		return ErrSelfDelete
	}

	u, err := deps.UserStore.GetByID(ctx, input.UserID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	if err := deps.UserStore.Delete(ctx, u.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("user_event", "event", "user_deleted", "username", u.Username, "by", input.RequestedByID)
	return nil
}

// SeedAdminInput carries input for seeding the initial admin account.
type SeedAdminInput struct {
	Username string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	UserStore UserStoreForAdmin
	NewID     func() string
	Now       func() time.Time
}

// ExecuteSeedAdmin creates the initial admin user if no users exist yet.
// POST: Returns true if an admin was created, false if users already exist
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) (bool, error) {
	count, err := deps.UserStore.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	u := user.User{
		ID:        deps.NewID(),
		Username:  input.Username,
		Role:      user.RoleAdmin,
		CreatedAt: deps.Now(),
	}
	if err := u.SetPassword(input.Password); err != nil {
		return false, err
	}
	if err := deps.UserStore.Save(ctx, u); err != nil {
		return false, fmt.Errorf("failed to seed admin: %w", err)
	}

	slog.Info("user_event", "event", "admin_seeded", "username", u.Username)
	return true, nil
}
