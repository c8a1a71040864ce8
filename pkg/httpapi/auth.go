package httpapi

import (
	"net/http"

	"github.com/tradecircle/backend/pkg/authtoken"
)

// authHandler exposes the two public, unauthenticated endpoints that
// bootstrap a session. The identity provider is external to this
// service; callers authenticate with a bearer "subject" string (e.g. an
// email) that authtoken.Service.IssuePair hashes into a stable
// identity.ID.
type authHandler struct {
	tokens *authtoken.Service
}

type sessionRequest struct {
	Subject string `json:"subject"`
}

type sessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Identity     string `json:"identity"`
}

func (h *authHandler) createSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeBody(r, &req); err != nil || req.Subject == "" {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: &apiError{Code: "bad_request", Message: "subject is required"}})
		return
	}
	access, refresh, id, err := h.tokens.IssuePair(req.Subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, sessionResponse{AccessToken: access, RefreshToken: refresh, Identity: id.String()})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *authHandler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeBody(r, &req); err != nil || req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: &apiError{Code: "bad_request", Message: "refresh_token is required"}})
		return
	}
	access, err := h.tokens.Refresh(req.RefreshToken)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: &apiError{Code: "unauthorized", Message: "invalid or expired refresh token"}})
		return
	}
	writeOK(w, map[string]string{"access_token": access})
}
