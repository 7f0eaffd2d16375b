package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"gymadmin/internal/adapters/http/middleware"
	memberStore "gymadmin/internal/adapters/storage/member"
	"gymadmin/internal/application/orchestrators"
	"gymadmin/internal/application/projections"
)

// memberListAll is the filter used by dropdowns that list every member.
func memberListAll() memberStore.ListFilter {
	return memberStore.ListFilter{Sort: "last_name", Dir: "asc"}
}

// timeNow is a variable for testability.
var timeNow = time.Now

// Date and datetime layouts accepted from forms.
const (
	formDateLayout     = "2006-01-02"
	formDateTimeLayout = "2006-01-02T15:04"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// redirectWithFlash redirects to path carrying a one-shot message in the
// query string, shown by the layout on the next page load.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, path, msg string) {
	http.Redirect(w, r, path+"?msg="+url.QueryEscape(msg), http.StatusSeeOther)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// checkInResponse is the JSON contract for device check-in endpoints.
type checkInResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// parseFormDate parses a required "2006-01-02" form value.
func parseFormDate(value string) (time.Time, error) {
	t, err := time.Parse(formDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must use the YYYY-MM-DD format")
	}
	return t, nil
}

// parseOptionalFormDate parses a "2006-01-02" form value, allowing empty.
func parseOptionalFormDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return parseFormDate(value)
}

// parseFormDateTime parses a "2006-01-02T15:04" form value.
func parseFormDateTime(value string) (time.Time, error) {
	t, err := time.Parse(formDateTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date and time must use the YYYY-MM-DDTHH:MM format")
	}
	return t, nil
}

const templatesDir = "internal/adapters/http/templates"

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	username := ""
	if ok {
		role = sess.Role
		username = sess.Username
	}

	funcMap := template.FuncMap{
		"currentRole":     func() string { return role },
		"currentUsername": func() string { return username },
		"isLoggedIn":      func() bool { return role != "" },
		"isAdmin":         func() bool { return role == "admin" },
		"csrfToken":       func() string { return csrf.Token(r) },
		"flashMessage":    func() string { return r.URL.Query().Get("msg") },
		"dollars": func(cents any) string {
			switch c := cents.(type) {
			case int:
				return fmt.Sprintf("$%.2f", float64(c)/100)
			case int64:
				return fmt.Sprintf("$%.2f", float64(c)/100)
			default:
				return "$0.00"
			}
		},
		"fmtDate": func(t time.Time) string {
			if t.IsZero() {
				return "—"
			}
			return t.Format("02 Jan 2006")
		},
		"fmtTime": func(t time.Time) string {
			if t.IsZero() {
				return "—"
			}
			return t.Format("02 Jan 2006 15:04")
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleDashboard handles GET /
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardDeps{
		MemberStore:     stores.MemberStore,
		ClassStore:      stores.ClassStore,
		PaymentStore:    stores.PaymentStore,
		ReminderStore:   stores.FeeReminderStore,
		AttendanceStore: stores.AttendanceStore,
	}, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "dashboard.html", map[string]any{
		"Stats": result,
	})
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already logged in, redirect to dashboard
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", nil)
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
			UserStore: stores.UserStore,
		})
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"Error": err.Error(),
			})
			return
		}

		token, err := sessions.Create(result.UserID, result.Username, result.Role)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cookie, err := r.Cookie("gymadmin_session")
	if err == nil {
		sessions.Delete(cookie.Value)
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
