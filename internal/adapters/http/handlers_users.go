package web

import (
	"net/http"

	"gymadmin/internal/adapters/http/middleware"
	"gymadmin/internal/application/orchestrators"
	"gymadmin/internal/domain/user"
)

// userRow wraps a user with its computed lock state for display.
type userRow struct {
	user.User
	Locked bool
}

// handleUsers handles GET /users. Admin only.
func handleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := stores.UserStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{User: u, Locked: u.IsLocked()})
	}

	renderTemplate(w, r, "users.html", map[string]any{
		"Users": rows,
		"Roles": user.ValidRoles,
	})
}

// handleAddUser handles POST /add_user. Admin only.
func handleAddUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	_, err := orchestrators.ExecuteCreateUser(r.Context(), orchestrators.CreateUserInput{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
		Role:     r.FormValue("role"),
	}, orchestrators.CreateUserDeps{
		UserStore: stores.UserStore,
		NewID:     generateID,
		Now:       timeNow,
	})
	if err != nil {
		redirectWithFlash(w, r, "/users", err.Error())
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// handleDeleteUser handles POST /delete_user/{id}. Admin only; self-deletion
// is refused.
func handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	err := orchestrators.ExecuteDeleteUser(r.Context(), orchestrators.DeleteUserInput{
		UserID:        r.PathValue("id"),
		RequestedByID: sess.UserID,
	}, orchestrators.DeleteUserDeps{UserStore: stores.UserStore})
	if err != nil {
		redirectWithFlash(w, r, "/users", err.Error())
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
