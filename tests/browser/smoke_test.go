package browser_test

import (
	"fmt"
	"testing"
)

// TestSmoke_NavigationCrawl verifies all major routes load without errors.
func TestSmoke_NavigationCrawl(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)

	routes := []struct {
		path       string
		authed     bool
		wantStatus int
	}{
		{path: "/login", authed: false, wantStatus: 200},

		{path: "/", authed: true, wantStatus: 200},
		{path: "/members", authed: true, wantStatus: 200},
		{path: "/add_member", authed: true, wantStatus: 200},
		{path: "/classes", authed: true, wantStatus: 200},
		{path: "/add_class", authed: true, wantStatus: 200},
		{path: "/class_registrations", authed: true, wantStatus: 200},
		{path: "/payments", authed: true, wantStatus: 200},
		{path: "/add_payment", authed: true, wantStatus: 200},
		{path: "/fee_reminders", authed: true, wantStatus: 200},
		{path: "/attendance", authed: true, wantStatus: 200},
		{path: "/attendance_history", authed: true, wantStatus: 200},
		{path: "/manual_check_in", authed: true, wantStatus: 200},
		{path: "/attendance_devices", authed: true, wantStatus: 200},
		{path: "/add_device", authed: true, wantStatus: 200},
		{path: "/users", authed: true, wantStatus: 200},
	}

	for _, route := range routes {
		t.Run(fmt.Sprintf("crawl%s", route.path), func(t *testing.T) {
			page := app.newPage(t)

			if route.authed {
				app.login(t, page)
			}

			resp, err := page.Goto(app.BaseURL + route.path)
			if err != nil {
				t.Errorf("failed to navigate to %s: %v", route.path, err)
				return
			}
			if resp.Status() != route.wantStatus {
				t.Errorf("%s: got status %d, want %d", route.path, resp.Status(), route.wantStatus)
			}
		})
	}
}

// TestSmoke_LoginRequired verifies unauthenticated requests are redirected to
// the login page.
func TestSmoke_LoginRequired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)

	resp, err := page.Goto(app.BaseURL + "/members")
	if err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if resp.Status() != 200 {
		t.Errorf("status = %d, want 200 (login page)", resp.Status())
	}
	if page.URL() != app.BaseURL+"/login" {
		t.Errorf("URL = %s, want %s/login", page.URL(), app.BaseURL)
	}
}
