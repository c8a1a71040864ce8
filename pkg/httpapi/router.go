package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradecircle/backend/pkg/authtoken"
	"github.com/tradecircle/backend/pkg/engine"
)

// NewRouter builds the full chi.Router for the collaboration backend:
// one endpoint per domain operation under /api/v1, JWT-protected except
// for the two session-bootstrap endpoints.
func NewRouter(eng *engine.Engine, tokens *authtoken.Service, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()
	router.Use(requestID)
	router.Use(requestLogger)
	router.Use(recoverer)
	router.Use(corsMiddleware(allowedOrigins))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]string{"status": "ok"})
	})

	a := &api{eng: eng}
	auth := &authHandler{tokens: tokens}

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/session", auth.createSession)
		r.Post("/auth/refresh", auth.refresh)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth(tokens))

			r.Post("/accounts", a.createAccount)
			r.Put("/accounts/profile", a.updateProfile)

			r.Post("/companies", a.createCompany)
			r.Put("/companies/profile", a.updateCompanyProfile)
			r.Put("/companies/capabilities", a.updateCapabilities)
			r.Post("/companies/switch", a.switchActiveCompany)
			r.Delete("/companies", a.deleteCompany)

			r.Post("/invite-codes", a.generateInviteCode)
			r.Delete("/invite-codes/{code}", a.deleteInviteCode)
			r.Post("/membership/join", a.joinCompany)
			r.Post("/membership/add-colleague", a.addColleagueByIdentity)
			r.Put("/membership/role", a.updateUserRole)
			r.Post("/membership/transfer-ownership", a.transferOwnership)
			r.Post("/membership/remove-colleague", a.removeColleague)
			r.Post("/membership/leave", a.leaveCompany)

			r.Post("/connections/request", a.requestConnection)
			r.Post("/connections/accept", a.connectionAction(a.eng.AcceptConnection))
			r.Post("/connections/decline", a.connectionAction(a.eng.DeclineConnection))
			r.Post("/connections/cancel", a.connectionAction(a.eng.CancelRequest))
			r.Post("/connections/disconnect", a.connectionAction(a.eng.DisconnectCompany))
			r.Post("/connections/block", a.connectionAction(a.eng.BlockCompany))
			r.Post("/connections/unblock", a.connectionAction(a.eng.UnblockCompany))
			r.Post("/connections/{id}/chat", a.sendConnectionChat)

			r.Post("/projects", a.createProject)
			r.Post("/projects/{id}/invite", a.inviteToProject)
			r.Post("/projects/{id}/accept", a.acceptProjectInvite)
			r.Post("/projects/{id}/decline", a.declineProjectInvite)
			r.Post("/projects/{id}/kick", a.kickFromProject)
			r.Post("/projects/{id}/leave", a.leaveProject)
			r.Delete("/projects/{id}", a.deleteProject)
			r.Post("/projects/{id}/chat", a.sendProjectChat)

			r.Get("/notifications", a.listNotifications)
			r.Post("/notifications/{id}/read", a.markNotificationRead)
			r.Post("/notifications/read-all", a.markAllNotificationsRead)
			r.Post("/notifications/clear", a.clearNotifications)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, envelope{Success: false, Error: &apiError{
			Code:    "not_found",
			Message: fmt.Sprintf("route not found: %s %s", r.Method, r.URL.Path),
		}})
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Success: false, Error: &apiError{
			Code:    "method_not_allowed",
			Message: fmt.Sprintf("method %s not allowed for %s", r.Method, r.URL.Path),
		}})
	})

	return router
}
