package engine

import (
	"log"

	"github.com/tradecircle/backend/pkg/identity"
)

// audit logs a single line for a sensitive membership or company
// mutation: who did it, to which company, and what changed.
func audit(actor identity.ID, companyID uint64, action, detail string) {
	log.Printf("AUDIT: actor=%s company=%d action=%s %s", actor.Short(), companyID, action, detail)
}
