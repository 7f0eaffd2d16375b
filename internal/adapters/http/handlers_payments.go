package web

import (
	"net/http"
	"strconv"

	"gymadmin/internal/application/orchestrators"
	"gymadmin/internal/domain/payment"
)

// handlePayments handles GET /payments.
func handlePayments(w http.ResponseWriter, r *http.Request) {
	payments, err := stores.PaymentStore.List(r.Context(), 0)
	if err != nil {
		internalError(w, err)
		return
	}

	// Resolve member names for display.
	names := make(map[string]string)
	for _, p := range payments {
		if _, ok := names[p.MemberID]; ok {
			continue
		}
		names[p.MemberID] = "Unknown member"
		if m, err := stores.MemberStore.GetByID(r.Context(), p.MemberID); err == nil {
			names[p.MemberID] = m.FullName()
		}
	}

	renderTemplate(w, r, "payments.html", map[string]any{
		"Payments":    payments,
		"MemberNames": names,
	})
}

func renderPaymentForm(w http.ResponseWriter, r *http.Request, title, action string, values map[string]string, errMsg string) {
	members, err := stores.MemberStore.List(r.Context(), memberListAll())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "payment_form.html", map[string]any{
		"Title":    title,
		"Action":   action,
		"Values":   values,
		"Error":    errMsg,
		"Members":  members,
		"Methods":  payment.ValidMethods,
		"Statuses": payment.ValidStatuses,
	})
}

func paymentFormValues(r *http.Request) map[string]string {
	return map[string]string{
		"member_id":    r.FormValue("member_id"),
		"amount":       r.FormValue("amount"),
		"payment_date": r.FormValue("payment_date"),
		"method":       r.FormValue("method"),
		"status":       r.FormValue("status"),
		"notes":        r.FormValue("notes"),
	}
}

// savePaymentFromForm is shared by add and edit.
func savePaymentFromForm(w http.ResponseWriter, r *http.Request, paymentID, title, action string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	values := paymentFormValues(r)

	amount, err := strconv.ParseFloat(values["amount"], 64)
	if err != nil || amount <= 0 {
		renderPaymentForm(w, r, title, action, values, "amount must be a positive number")
		return
	}
	date, err := parseOptionalFormDate(values["payment_date"])
	if err != nil {
		renderPaymentForm(w, r, title, action, values, err.Error())
		return
	}

	_, err = orchestrators.ExecuteRecordPayment(r.Context(), orchestrators.RecordPaymentInput{
		PaymentID:   paymentID,
		MemberID:    values["member_id"],
		AmountCents: int(amount*100 + 0.5),
		PaymentDate: date,
		Method:      values["method"],
		Status:      values["status"],
		Notes:       values["notes"],
	}, orchestrators.RecordPaymentDeps{
		PaymentStore: stores.PaymentStore,
		MemberStore:  stores.MemberStore,
		NewID:        generateID,
		Now:          timeNow,
	})
	if err != nil {
		renderPaymentForm(w, r, title, action, values, err.Error())
		return
	}

	http.Redirect(w, r, "/payments", http.StatusSeeOther)
}

// handleAddPayment handles GET (form) and POST (record) for /add_payment.
func handleAddPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderPaymentForm(w, r, "Record payment", "/add_payment", map[string]string{
			"status": payment.StatusCompleted,
		}, "")
		return
	}
	savePaymentFromForm(w, r, "", "Record payment", "/add_payment")
}

// handleEditPayment handles GET (form) and POST (update) for /edit_payment/{id}.
func handleEditPayment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	action := "/edit_payment/" + id

	p, err := stores.PaymentStore.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if r.Method == "GET" {
		renderPaymentForm(w, r, "Edit payment", action, map[string]string{
			"member_id":    p.MemberID,
			"amount":       strconv.FormatFloat(float64(p.AmountCents)/100, 'f', 2, 64),
			"payment_date": p.PaymentDate.Format(formDateLayout),
			"method":       p.Method,
			"status":       p.Status,
			"notes":        p.Notes,
		}, "")
		return
	}

	savePaymentFromForm(w, r, id, "Edit payment", action)
}

// handleDeletePayment handles POST /delete_payment/{id}.
func handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeletePayment(r.Context(), orchestrators.DeletePaymentInput{
		PaymentID: r.PathValue("id"),
	}, orchestrators.DeletePaymentDeps{PaymentStore: stores.PaymentStore})
	if err != nil {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/payments", http.StatusSeeOther)
}
