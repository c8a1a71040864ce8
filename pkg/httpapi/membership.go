package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/models"
)

type generateInviteCodeRequest struct {
	MaxUses int `json:"max_uses"`
}

func (a *api) generateInviteCode(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req generateInviteCodeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	code, err := a.eng.GenerateInviteCode(r.Context(), caller, req.MaxUses)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, map[string]string{"code": code})
}

func (a *api) deleteInviteCode(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	code := chi.URLParam(r, "code")
	if err := a.eng.DeleteInviteCode(r.Context(), caller, code); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}

type joinCompanyRequest struct {
	Code string `json:"code"`
}

func (a *api) joinCompany(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req joinCompanyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.JoinCompany(r.Context(), caller, req.Code); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}

type addColleagueByIdentityRequest struct {
	Colleague string `json:"colleague"`
}

func (a *api) addColleagueByIdentity(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req addColleagueByIdentityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	colleague, err := identity.Parse(req.Colleague)
	if err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.AddColleagueByIdentity(r.Context(), caller, colleague); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}

type updateUserRoleRequest struct {
	Target  string `json:"target"`
	NewRole string `json:"new_role"`
}

func (a *api) updateUserRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req updateUserRoleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	target, err := identity.Parse(req.Target)
	if err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.UpdateUserRole(r.Context(), caller, target, models.Role(req.NewRole)); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}

type transferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

func (a *api) transferOwnership(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req transferOwnershipRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	newOwner, err := identity.Parse(req.NewOwner)
	if err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.TransferOwnership(r.Context(), caller, newOwner); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}

type removeColleagueRequest struct {
	Colleague string `json:"colleague"`
}

func (a *api) removeColleague(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req removeColleagueRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	colleague, err := identity.Parse(req.Colleague)
	if err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.RemoveColleague(r.Context(), caller, colleague); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}

func (a *api) leaveCompany(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	if err := a.eng.LeaveCompany(r.Context(), caller); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}
