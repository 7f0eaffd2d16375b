package browser_test

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// TestMemberFlow_AddAndCheckIn walks the main front-desk flow: create a
// member, see the initial fee reminder, then check them in manually.
func TestMemberFlow_AddAndCheckIn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	// Create a member
	if _, err := page.Goto(app.BaseURL + "/add_member"); err != nil {
		t.Fatalf("goto add_member: %v", err)
	}
	page.Locator("input[name=first_name]").Fill("Maria")
	page.Locator("input[name=last_name]").Fill("Costa")
	page.Locator("input[name=email]").Fill("maria@test.com")
	page.Locator("select[name=membership_type]").SelectOption(playwright.SelectOptionValues{Values: &[]string{"Premium"}})
	if err := page.Locator("main form button[type=submit]").Click(); err != nil {
		t.Fatalf("submit member form: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/members", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("member creation did not redirect to list: %v", err)
	}

	content, err := page.Content()
	if err != nil {
		t.Fatalf("page content: %v", err)
	}
	if !strings.Contains(content, "Maria Costa") {
		t.Error("member list does not show the new member")
	}

	// The initial fee reminder should be waiting
	if _, err := page.Goto(app.BaseURL + "/fee_reminders"); err != nil {
		t.Fatalf("goto fee_reminders: %v", err)
	}
	content, _ = page.Content()
	if !strings.Contains(content, "Maria Costa") {
		t.Error("fee reminders page does not show the initial reminder")
	}

	// Check the member in manually
	if _, err := page.Goto(app.BaseURL + "/manual_check_in"); err != nil {
		t.Fatalf("goto manual_check_in: %v", err)
	}
	if err := page.Locator("main form button[type=submit]").Click(); err != nil {
		t.Fatalf("submit check-in form: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/attendance", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("check-in did not redirect to attendance: %v", err)
	}

	content, _ = page.Content()
	if !strings.Contains(content, "Maria Costa") {
		t.Error("attendance page does not show the checked-in member")
	}
	if !strings.Contains(content, "in gym") {
		t.Error("attendance page does not show an open check-in")
	}
}

