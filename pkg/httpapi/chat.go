package httpapi

import "net/http"

type chatTextRequest struct {
	Text string `json:"text"`
}

func (a *api) sendConnectionChat(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	connectionID, ok := uintParam(r, "id")
	if !ok {
		writeError(w, errBadRequest)
		return
	}
	var req chatTextRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.SendConnectionChat(r.Context(), caller, connectionID, req.Text); err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, nil)
}

func (a *api) sendProjectChat(w http.ResponseWriter, r *http.Request) {
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
	var req chatTextRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.SendProjectChat(r.Context(), caller, projectID, req.Text); err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, nil)
}
