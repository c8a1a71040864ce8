package store

import "github.com/tradecircle/backend/pkg/identity"

// OnlineUser is a schema-only placeholder for a future presence
// subsystem. The realtime transport and presence logic that would
// toggle IsOnline are out of scope here; this type exists only so a
// future presence implementation has a documented row shape to write
// into. No Tx method reads or writes it, and no engine operation
// constructs one.
type OnlineUser struct {
	Identity   identity.ID
	CompanyID  uint64
	IsOnline   bool
	LastSeenAt int64
}
