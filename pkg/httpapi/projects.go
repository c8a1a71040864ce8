package httpapi

import "net/http"

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (a *api) createProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req createProjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.CreateProject(r.Context(), caller, req.Name, req.Description); err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, nil)
}

type inviteToProjectRequest struct {
	TargetCompanyID uint64 `json:"target_company_id"`
}

func (a *api) inviteToProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	projectID, ok := uintParam(r, "id")
	if !ok {
		writeError(w, errBadRequest)
		return
	}
	var req inviteToProjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.InviteToProject(r.Context(), caller, projectID, req.TargetCompanyID); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}

// projectAction covers accept/decline/leave/delete, which take only the
// caller and the project ID from the URL.
func (a *api) projectAction(handle func(r *http.Request, projectID uint64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.caller(r); !ok {
			writeError(w, errUnauthenticated)
			return
		}
		projectID, ok := uintParam(r, "id")
		if !ok {
			writeError(w, errBadRequest)
			return
		}
		if err := handle(r, projectID); err != nil {
			writeError(w, err)
			return
		}
		writeOK(w, nil)
	}
}

func (a *api) acceptProjectInvite(w http.ResponseWriter, r *http.Request) {
	a.projectAction(func(r *http.Request, projectID uint64) error {
		caller, _ := a.caller(r)
		return a.eng.AcceptProjectInvite(r.Context(), caller, projectID)
	})(w, r)
}

func (a *api) declineProjectInvite(w http.ResponseWriter, r *http.Request) {
	a.projectAction(func(r *http.Request, projectID uint64) error {
		caller, _ := a.caller(r)
		return a.eng.DeclineProjectInvite(r.Context(), caller, projectID)
	})(w, r)
}

func (a *api) leaveProject(w http.ResponseWriter, r *http.Request) {
	a.projectAction(func(r *http.Request, projectID uint64) error {
		caller, _ := a.caller(r)
		return a.eng.LeaveProject(r.Context(), caller, projectID)
	})(w, r)
}

func (a *api) deleteProject(w http.ResponseWriter, r *http.Request) {
	a.projectAction(func(r *http.Request, projectID uint64) error {
		caller, _ := a.caller(r)
		return a.eng.DeleteProject(r.Context(), caller, projectID)
	})(w, r)
}

type kickFromProjectRequest struct {
	TargetCompanyID uint64 `json:"target_company_id"`
}

func (a *api) kickFromProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	projectID, ok := uintParam(r, "id")
	if !ok {
		writeError(w, errBadRequest)
		return
	}
	var req kickFromProjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.KickFromProject(r.Context(), caller, projectID, req.TargetCompanyID); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}
