package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tradecircle/backend/pkg/engine"
	"github.com/tradecircle/backend/pkg/identity"
)

// api holds the engine every handler dispatches to. A single struct is
// enough since this repo has one domain engine rather than a
// handler-per-database split.
type api struct {
	eng *engine.Engine
}

func (a *api) caller(r *http.Request) (identity.ID, bool) {
	return callerFromContext(r.Context())
}

func uintParam(r *http.Request, name string) (uint64, bool) {
	v := chi.URLParam(r, name)
	n, err := strconv.ParseUint(v, 10, 64)
	return n, err == nil
}

func uintQuery(r *http.Request, name string) (uint64, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	return n, err == nil
}
