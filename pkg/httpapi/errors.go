package httpapi

import "github.com/tradecircle/backend/pkg/engine"

// Transport-level errors that never reach the engine: a missing/invalid
// bearer identity, or a body that doesn't parse. Built as engine.Error
// values so writeError's single Kind->status switch handles every error
// this package produces.
var (
	errUnauthenticated = &engine.Error{Kind: engine.KindPermission, Message: "not authenticated"}
	errBadRequest      = &engine.Error{Kind: engine.KindValidation, Message: "malformed request body"}
)
