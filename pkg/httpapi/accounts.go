package httpapi

import "net/http"

type createAccountRequest struct {
	FullName string `json:"full_name"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

func (a *api) createAccount(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req createAccountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.CreateAccount(r.Context(), caller, req.FullName, req.Nickname, req.Email); err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, nil)
}

type updateProfileRequest struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

func (a *api) updateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req updateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.UpdateProfile(r.Context(), caller, req.Nickname, req.Email); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}
