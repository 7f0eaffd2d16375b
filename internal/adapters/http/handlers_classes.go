package web

import (
	"net/http"
	"strconv"

	"gymadmin/internal/application/orchestrators"
	"gymadmin/internal/application/projections"
)

// handleClasses handles GET /classes.
func handleClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := stores.ClassStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	// Show how full each class is alongside its details.
	counts := make(map[string]int, len(classes))
	for _, c := range classes {
		n, err := stores.RegistrationStore.CountByClassID(r.Context(), c.ID)
		if err != nil {
			internalError(w, err)
			return
		}
		counts[c.ID] = n
	}

	renderTemplate(w, r, "classes.html", map[string]any{
		"Classes":           classes,
		"RegistrationCount": counts,
	})
}

func renderClassForm(w http.ResponseWriter, r *http.Request, title, action string, values map[string]string, errMsg string) {
	renderTemplate(w, r, "class_form.html", map[string]any{
		"Title":  title,
		"Action": action,
		"Values": values,
		"Error":  errMsg,
	})
}

func classFormValues(r *http.Request) map[string]string {
	return map[string]string{
		"name":             r.FormValue("name"),
		"description":      r.FormValue("description"),
		"instructor":       r.FormValue("instructor"),
		"schedule":         r.FormValue("schedule"),
		"duration_minutes": r.FormValue("duration_minutes"),
		"capacity":         r.FormValue("capacity"),
	}
}

// saveClassFromForm is shared by add and edit.
func saveClassFromForm(w http.ResponseWriter, r *http.Request, classID, title, action string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	values := classFormValues(r)

	schedule, err := parseFormDateTime(values["schedule"])
	if err != nil {
		renderClassForm(w, r, title, action, values, err.Error())
		return
	}
	duration, err := strconv.Atoi(values["duration_minutes"])
	if err != nil {
		renderClassForm(w, r, title, action, values, "duration must be a whole number of minutes")
		return
	}
	capacity, err := strconv.Atoi(values["capacity"])
	if err != nil {
		renderClassForm(w, r, title, action, values, "capacity must be a whole number")
		return
	}

	_, err = orchestrators.ExecuteSaveClass(r.Context(), orchestrators.SaveClassInput{
		ClassID:         classID,
		Name:            values["name"],
		Description:     values["description"],
		Instructor:      values["instructor"],
		Schedule:        schedule,
		DurationMinutes: duration,
		Capacity:        capacity,
	}, orchestrators.SaveClassDeps{
		ClassStore: stores.ClassStore,
		NewID:      generateID,
	})
	if err != nil {
		renderClassForm(w, r, title, action, values, err.Error())
		return
	}

	http.Redirect(w, r, "/classes", http.StatusSeeOther)
}

// handleAddClass handles GET (form) and POST (create) for /add_class.
func handleAddClass(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderClassForm(w, r, "Add Class", "/add_class", map[string]string{}, "")
		return
	}
	saveClassFromForm(w, r, "", "Add Class", "/add_class")
}

// handleEditClass handles GET (form) and POST (update) for /edit_class/{id}.
func handleEditClass(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	action := "/edit_class/" + id

	c, err := stores.ClassStore.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if r.Method == "GET" {
		renderClassForm(w, r, "Edit Class", action, map[string]string{
			"name":             c.Name,
			"description":      c.Description,
			"instructor":       c.Instructor,
			"schedule":         c.Schedule.Format(formDateTimeLayout),
			"duration_minutes": strconv.Itoa(c.DurationMinutes),
			"capacity":         strconv.Itoa(c.Capacity),
		}, "")
		return
	}

	saveClassFromForm(w, r, id, "Edit Class", action)
}

// handleDeleteClass handles POST /delete_class/{id}.
func handleDeleteClass(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteClass(r.Context(), orchestrators.DeleteClassInput{
		ClassID: r.PathValue("id"),
	}, orchestrators.DeleteClassDeps{
		ClassStore:          stores.ClassStore,
		RegistrationCounter: stores.RegistrationStore,
	})
	if err != nil {
		redirectWithFlash(w, r, "/classes", err.Error())
		return
	}

	http.Redirect(w, r, "/classes", http.StatusSeeOther)
}

// handleClassRegistrations handles GET /class_registrations.
func handleClassRegistrations(w http.ResponseWriter, r *http.Request) {
	rows, err := projections.QueryGetRegistrations(r.Context(), stores.RegistrationStore, stores.MemberStore, stores.ClassStore)
	if err != nil {
		internalError(w, err)
		return
	}

	members, err := stores.MemberStore.List(r.Context(), memberListAll())
	if err != nil {
		internalError(w, err)
		return
	}
	classes, err := stores.ClassStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "class_registrations.html", map[string]any{
		"Registrations": rows,
		"Members":       members,
		"Classes":       classes,
	})
}

// handleRegisterMemberClass handles POST /register_member_class.
func handleRegisterMemberClass(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	_, err := orchestrators.ExecuteRegisterClass(r.Context(), orchestrators.RegisterClassInput{
		MemberID: r.FormValue("member_id"),
		ClassID:  r.FormValue("class_id"),
	}, orchestrators.RegisterClassDeps{
		RegistrationStore: stores.RegistrationStore,
		MemberStore:       stores.MemberStore,
		ClassStore:        stores.ClassStore,
		NewID:             generateID,
		Now:               timeNow,
	})
	if err != nil {
		redirectWithFlash(w, r, "/class_registrations", err.Error())
		return
	}

	http.Redirect(w, r, "/class_registrations", http.StatusSeeOther)
}

// handleDeleteRegistration handles POST /delete_registration/{id}.
func handleDeleteRegistration(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteRegistration(r.Context(), orchestrators.DeleteRegistrationInput{
		RegistrationID: r.PathValue("id"),
	}, orchestrators.DeleteRegistrationDeps{RegistrationStore: stores.RegistrationStore})
	if err != nil {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/class_registrations", http.StatusSeeOther)
}
