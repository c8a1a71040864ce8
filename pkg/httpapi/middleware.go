package httpapi

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/tradecircle/backend/pkg/authtoken"
	"github.com/tradecircle/backend/pkg/identity"
)

type ctxKey string

const identityCtxKey ctxKey = "identity"

// requireAuth checks the Bearer header against an HS256 access token,
// rejecting on any parse/expiry failure. The caller's derived
// identity.ID is stashed in the request context for handlers to read.
func requireAuth(tokens *authtoken.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: &apiError{Code: "unauthorized", Message: "missing authorization header"}})
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header {
				writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: &apiError{Code: "unauthorized", Message: "invalid authorization header format"}})
				return
			}
			claims, err := tokens.Validate(tokenString, authtoken.TypeAccess)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: &apiError{Code: "unauthorized", Message: "invalid or expired token"}})
				return
			}
			id, err := authtoken.IdentityOf(claims)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: &apiError{Code: "unauthorized", Message: "invalid token claims"}})
				return
			}
			ctx := context.WithValue(r.Context(), identityCtxKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func callerFromContext(ctx context.Context) (identity.ID, bool) {
	id, ok := ctx.Value(identityCtxKey).(identity.ID)
	return id, ok
}

// corsMiddleware wraps go-chi/cors.Handler with the methods and headers
// this API needs, driven by config instead of an environment check.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions, http.MethodPatch},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: len(allowedOrigins) > 0 && allowedOrigins[0] != "*",
		MaxAge:           300,
	})
}

// requestID mints a uuid per request and attaches it as X-Request-Id,
// using google/uuid rather than chi's counter-based IDs so request IDs
// stay unique across process restarts and multiple instances.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one line per request with method, path, status,
// and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, sw.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

// recoverer catches a panic, logs the stack, and answers with a 500
// envelope instead of crashing the process.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("PANIC: %v\n%s", rec, debug.Stack())
				writeJSON(w, http.StatusInternalServerError, envelope{
					Success: false,
					Error:   &apiError{Code: "internal_error", Message: fmt.Sprintf("internal server error: %v", rec)},
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
