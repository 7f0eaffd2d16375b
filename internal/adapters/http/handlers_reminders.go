package web

import (
	"net/http"
	"strconv"

	"gymadmin/internal/application/orchestrators"
	"gymadmin/internal/application/projections"
)

// handleFeeReminders handles GET /fee_reminders.
func handleFeeReminders(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetFeeReminders(r.Context(), stores.FeeReminderStore, stores.MemberStore, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "fee_reminders.html", map[string]any{
		"Pending": result.Pending,
		"Paid":    result.Paid,
	})
}

// handleMarkPaid handles POST /mark_paid/{id}.
func handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	_, err := orchestrators.ExecuteMarkReminderPaid(r.Context(), orchestrators.MarkReminderPaidInput{
		ReminderID: r.PathValue("id"),
	}, orchestrators.MarkReminderPaidDeps{ReminderStore: stores.FeeReminderStore})
	if err != nil {
		redirectWithFlash(w, r, "/fee_reminders", err.Error())
		return
	}

	http.Redirect(w, r, "/fee_reminders", http.StatusSeeOther)
}

// handleAddFeeReminder handles GET (form) and POST (create) for /add_fee_reminder/{member_id}.
func handleAddFeeReminder(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("member_id")
	action := "/add_fee_reminder/" + memberID

	m, err := stores.MemberStore.GetByID(r.Context(), memberID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	renderForm := func(values map[string]string, errMsg string) {
		renderTemplate(w, r, "reminder_form.html", map[string]any{
			"Member": m,
			"Action": action,
			"Values": values,
			"Error":  errMsg,
		})
	}

	if r.Method == "GET" {
		renderForm(map[string]string{}, "")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	values := map[string]string{
		"reminder_date": r.FormValue("reminder_date"),
		"amount":        r.FormValue("amount"),
		"notes":         r.FormValue("notes"),
	}

	date, err := parseOptionalFormDate(values["reminder_date"])
	if err != nil {
		renderForm(values, err.Error())
		return
	}
	amountCents := 0
	if values["amount"] != "" {
		amount, err := strconv.ParseFloat(values["amount"], 64)
		if err != nil || amount <= 0 {
			renderForm(values, "amount must be a positive number")
			return
		}
		amountCents = int(amount*100 + 0.5)
	}

	_, err = orchestrators.ExecuteAddReminder(r.Context(), orchestrators.AddReminderInput{
		MemberID:     memberID,
		ReminderDate: date,
		AmountCents:  amountCents,
		Notes:        values["notes"],
	}, orchestrators.AddReminderDeps{
		ReminderStore: stores.FeeReminderStore,
		MemberStore:   stores.MemberStore,
		NewID:         generateID,
		Now:           timeNow,
	})
	if err != nil {
		renderForm(values, err.Error())
		return
	}

	http.Redirect(w, r, "/fee_reminders", http.StatusSeeOther)
}

// handleDeleteReminder handles POST /delete_reminder/{id}.
func handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteReminder(r.Context(), orchestrators.DeleteReminderInput{
		ReminderID: r.PathValue("id"),
	}, orchestrators.DeleteReminderDeps{ReminderStore: stores.FeeReminderStore})
	if err != nil {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/fee_reminders", http.StatusSeeOther)
}
