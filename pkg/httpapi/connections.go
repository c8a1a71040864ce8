package httpapi

import (
	"context"
	"net/http"

	"github.com/tradecircle/backend/pkg/identity"
)

type targetCompanyRequest struct {
	TargetCompanyID uint64 `json:"target_company_id"`
}

type requestConnectionRequest struct {
	TargetCompanyID uint64 `json:"target_company_id"`
	Message         string `json:"message"`
}

func (a *api) requestConnection(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req requestConnectionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.RequestConnection(r.Context(), caller, req.TargetCompanyID, req.Message); err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, nil)
}

// connectionAction covers the six remaining connection transitions,
// which all share the {target_company_id} request shape.
func (a *api) connectionAction(handle func(ctx context.Context, caller identity.ID, targetCompanyID uint64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := a.caller(r)
		if !ok {
			writeError(w, errUnauthenticated)
			return
		}
		var req targetCompanyRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, errBadRequest)
			return
		}
		if err := handle(r.Context(), caller, req.TargetCompanyID); err != nil {
			writeError(w, err)
			return
		}
		writeOK(w, nil)
	}
}
