package web

import (
	"net/http"

	"gymadmin/internal/application/listutil"
	"gymadmin/internal/application/orchestrators"
	"gymadmin/internal/application/projections"
	"gymadmin/internal/domain/feereminder"
	"gymadmin/internal/domain/member"
)

// handleMembers handles GET /members (list with pagination, sorting and search).
func handleMembers(w http.ResponseWriter, r *http.Request) {
	lp := listutil.ParseListParams(r.URL.Query(), projections.MemberSortColumns, projections.MemberFilterKeys)

	result, err := projections.QueryGetMemberList(r.Context(), stores.MemberStore, lp)
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "members.html", map[string]any{
		"Members":         result.Members,
		"PageInfo":        result.PageInfo,
		"Sort":            lp.Sort,
		"Dir":             lp.Dir,
		"Search":          lp.Search,
		"MembershipType":  lp.Filters["membership_type"],
		"Status":          lp.Filters["status"],
		"PerPageOptions":  listutil.PerPageOptions,
		"MembershipTiers": feereminder.Tiers,
		"Statuses":        member.ValidStatuses,
	})
}

// memberFormValues reads the member form into the shape shared by add and edit.
func memberFormValues(r *http.Request) map[string]string {
	return map[string]string{
		"first_name":      r.FormValue("first_name"),
		"last_name":       r.FormValue("last_name"),
		"email":           r.FormValue("email"),
		"phone":           r.FormValue("phone"),
		"date_of_birth":   r.FormValue("date_of_birth"),
		"join_date":       r.FormValue("join_date"),
		"membership_type": r.FormValue("membership_type"),
		"status":          r.FormValue("status"),
	}
}

func renderMemberForm(w http.ResponseWriter, r *http.Request, title, action string, values map[string]string, errMsg string) {
	renderTemplate(w, r, "member_form.html", map[string]any{
		"Title":           title,
		"Action":          action,
		"Values":          values,
		"Error":           errMsg,
		"MembershipTiers": feereminder.Tiers,
		"Statuses":        member.ValidStatuses,
	})
}

// handleAddMember handles GET (form) and POST (create) for /add_member.
// Creating a member also creates their first fee reminder.
func handleAddMember(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderMemberForm(w, r, "Add Member", "/add_member", map[string]string{
			"status": member.StatusActive,
		}, "")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	values := memberFormValues(r)

	dob, err := parseOptionalFormDate(values["date_of_birth"])
	if err != nil {
		renderMemberForm(w, r, "Add Member", "/add_member", values, err.Error())
		return
	}
	joinDate, err := parseOptionalFormDate(values["join_date"])
	if err != nil {
		renderMemberForm(w, r, "Add Member", "/add_member", values, err.Error())
		return
	}

	_, err = orchestrators.ExecuteCreateMember(r.Context(), orchestrators.CreateMemberInput{
		FirstName:      values["first_name"],
		LastName:       values["last_name"],
		Email:          values["email"],
		Phone:          values["phone"],
		DateOfBirth:    dob,
		JoinDate:       joinDate,
		MembershipType: values["membership_type"],
		Status:         values["status"],
	}, orchestrators.CreateMemberDeps{
		MemberStore: stores.MemberStore,
		NewID:       generateID,
		Now:         timeNow,
	})
	if err != nil {
		renderMemberForm(w, r, "Add Member", "/add_member", values, err.Error())
		return
	}

	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// handleEditMember handles GET (form) and POST (update) for /edit_member/{id}.
func handleEditMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	action := "/edit_member/" + id

	m, err := stores.MemberStore.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if r.Method == "GET" {
		values := map[string]string{
			"first_name":      m.FirstName,
			"last_name":       m.LastName,
			"email":           m.Email,
			"phone":           m.Phone,
			"membership_type": m.MembershipType,
			"status":          m.Status,
		}
		if !m.DateOfBirth.IsZero() {
			values["date_of_birth"] = m.DateOfBirth.Format(formDateLayout)
		}
		values["join_date"] = m.JoinDate.Format(formDateLayout)
		renderMemberForm(w, r, "Edit Member", action, values, "")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	values := memberFormValues(r)

	dob, err := parseOptionalFormDate(values["date_of_birth"])
	if err != nil {
		renderMemberForm(w, r, "Edit Member", action, values, err.Error())
		return
	}

	_, err = orchestrators.ExecuteUpdateMember(r.Context(), orchestrators.UpdateMemberInput{
		MemberID:       id,
		FirstName:      values["first_name"],
		LastName:       values["last_name"],
		Email:          values["email"],
		Phone:          values["phone"],
		DateOfBirth:    dob,
		MembershipType: values["membership_type"],
		Status:         values["status"],
	}, orchestrators.UpdateMemberDeps{MemberStore: stores.MemberStore})
	if err != nil {
		renderMemberForm(w, r, "Edit Member", action, values, err.Error())
		return
	}

	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// handleDeleteMember handles POST /delete_member/{id}.
// Members with dependent records are refused.
func handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteMember(r.Context(), orchestrators.DeleteMemberInput{
		MemberID: r.PathValue("id"),
	}, orchestrators.DeleteMemberDeps{
		MemberStore:         stores.MemberStore,
		PaymentCounter:      stores.PaymentStore,
		RegistrationCounter: stores.RegistrationStore,
		ReminderCounter:     stores.FeeReminderStore,
		AttendanceCounter:   stores.AttendanceStore,
	})
	if err != nil {
		redirectWithFlash(w, r, "/members", err.Error())
		return
	}

	http.Redirect(w, r, "/members", http.StatusSeeOther)
}
