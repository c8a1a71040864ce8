package httpapi

import "net/http"

type notificationDTO struct {
	ID        uint64 `json:"id"`
	CompanyID uint64 `json:"company_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	IsRead    bool   `json:"is_read"`
	CreatedAt int64  `json:"created_at"`
}

// listNotifications is the read-side endpoint that lets a client poll
// for a caller's notifications scoped to a company.
func (a *api) listNotifications(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	companyID, ok := uintQuery(r, "company_id")
	if !ok {
		writeError(w, errBadRequest)
		return
	}
	notifications, err := a.eng.ListNotifications(r.Context(), caller, companyID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]notificationDTO, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, notificationDTO{
			ID:        n.ID,
			CompanyID: n.CompanyID,
			Type:      string(n.Type),
			Title:     n.Title,
			Body:      n.Body,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	writeOK(w, out)
}

func (a *api) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	notificationID, ok := uintParam(r, "id")
	if !ok {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.MarkNotificationRead(r.Context(), caller, notificationID); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}

type companyScopedRequest struct {
	CompanyID uint64 `json:"company_id"`
}

func (a *api) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req companyScopedRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.MarkAllNotificationsRead(r.Context(), caller, req.CompanyID); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}

func (a *api) clearNotifications(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req companyScopedRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.ClearNotifications(r.Context(), caller, req.CompanyID); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}
