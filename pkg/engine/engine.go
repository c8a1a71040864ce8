// Package engine is the transactional domain engine: account, company,
// membership, connection, project, chat, and notification operations,
// their invariants, cascades, and notification fan-out. Every exported
// method opens exactly one store.Tx and either commits all its writes
// or none, dispatching against the store.Store interface so callers
// never touch sql.DB or a map directly.
package engine

import (
	"context"

	"github.com/tradecircle/backend/pkg/clock"
	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/invitecode"
	"github.com/tradecircle/backend/pkg/store"
)

// Engine wires the pluggable oracles the domain rules depend on but
// don't own: persistence, time, and invite-code generation.
type Engine struct {
	store store.Store
	clock clock.Clock
	codes invitecode.Generator
}

func New(s store.Store, c clock.Clock, g invitecode.Generator) *Engine {
	return &Engine{store: s, clock: c, codes: g}
}

// run is the shared shape every operation follows: open a Tx, resolve
// the caller's AuthContext, run body, return its error. Kept as a
// method so operations read as a single call instead of repeating the
// store.Tx boilerplate ~30 times.
func (e *Engine) run(ctx context.Context, caller identity.ID, body func(tx store.Tx, ac *AuthContext) error) error {
	return e.store.Tx(ctx, func(tx store.Tx) error {
		ac, err := resolveAuthContext(tx, caller)
		if err != nil {
			return err
		}
		return body(tx, ac)
	})
}
