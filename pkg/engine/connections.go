package engine

import (
	"context"
	"fmt"

	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/models"
	"github.com/tradecircle/backend/pkg/store"
	"github.com/tradecircle/backend/pkg/validate"
)

func canonicalPair(a, b uint64) (uint64, uint64) {
	if a < b {
		return a, b
	}
	return b, a
}

// RequestConnection opens a pending connection request from caller's
// active company to targetCompanyID. If the target has blocked caller's
// company, the call silently succeeds and touches nothing, so a blocked
// requester cannot distinguish a block from a fresh accepted request.
func (e *Engine) RequestConnection(ctx context.Context, caller identity.ID, targetCompanyID uint64, message string) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		if targetCompanyID == ac.Company.ID {
			return ErrCannotConnectToSelf
		}
		if _, ok := tx.GetCompany(targetCompanyID); !ok {
			return ErrCompanyNotFound
		}
		message = validate.Trimmed(message)
		if err := requireMax(message, validate.MaxInitialMessage, ErrMessageTooLong); err != nil {
			return err
		}

		existing, hasExisting := tx.GetConnectionByPair(ac.Company.ID, targetCompanyID)
		if hasExisting {
			switch existing.Status {
			case models.ConnectionBlocked:
				return nil // ghosting: silent success, no writes, no notification
			case models.ConnectionPending, models.ConnectionAccepted:
				return ErrConnectionAlreadyExists
			}
		}

		a, b := canonicalPair(ac.Company.ID, targetCompanyID)
		now := e.clock.NowMicros()
		conn := &models.Connection{
			ID:                 tx.NextConnectionID(),
			CompanyA:           a,
			CompanyB:           b,
			Status:             models.ConnectionPending,
			RequestedBy:        caller,
			RequestedByCompany: ac.Company.ID,
			InitialMessage:     message,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		tx.PutConnection(conn)

		e.notifyManagers(tx, targetCompanyID, models.NotificationConnectionRequested,
			"New connection request", fmt.Sprintf("%s wants to connect", ac.Company.Name))
		return nil
	})
}

// AcceptConnection accepts a pending request addressed to caller's
// active company. Only the non-requesting side may accept.
func (e *Engine) AcceptConnection(ctx context.Context, caller identity.ID, targetCompanyID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		conn, ok := tx.GetConnectionByPair(ac.Company.ID, targetCompanyID)
		if !ok || conn.Status != models.ConnectionPending {
			return ErrNotPending
		}
		if conn.RequestedByCompany == ac.Company.ID {
			return ErrNotPermitted
		}

		conn.Status = models.ConnectionAccepted
		conn.UpdatedAt = e.clock.NowMicros()
		tx.PutConnection(conn)

		e.notifyManagers(tx, conn.RequestedByCompany, models.NotificationConnectionAccepted,
			"Connection accepted", fmt.Sprintf("%s accepted your connection request", ac.Company.Name))
		return nil
	})
}

// DeclineConnection rejects and removes a pending request. Only the
// non-requester side may decline.
func (e *Engine) DeclineConnection(ctx context.Context, caller identity.ID, targetCompanyID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		conn, ok := tx.GetConnectionByPair(ac.Company.ID, targetCompanyID)
		if !ok || conn.Status != models.ConnectionPending {
			return ErrNotPending
		}
		if conn.RequestedByCompany == ac.Company.ID {
			return ErrNotPermitted
		}
		cascadeDeleteConnection(tx, conn.ID)
		return nil
	})
}

// CancelRequest withdraws a pending request. Only the requesting side
// may cancel.
func (e *Engine) CancelRequest(ctx context.Context, caller identity.ID, targetCompanyID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		conn, ok := tx.GetConnectionByPair(ac.Company.ID, targetCompanyID)
		if !ok || conn.Status != models.ConnectionPending {
			return ErrNotPending
		}
		if conn.RequestedByCompany != ac.Company.ID {
			return ErrOnlyRequesterCanCancel
		}
		cascadeDeleteConnection(tx, conn.ID)
		return nil
	})
}

// DisconnectCompany tears down an accepted connection. Either party may
// invoke it.
func (e *Engine) DisconnectCompany(ctx context.Context, caller identity.ID, targetCompanyID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		conn, ok := tx.GetConnectionByPair(ac.Company.ID, targetCompanyID)
		if !ok || conn.Status != models.ConnectionAccepted {
			return ErrConnectionNotAccepted
		}
		cascadeDeleteConnection(tx, conn.ID)
		return nil
	})
}

// BlockCompany blocks targetCompanyID from caller's active company,
// dropping any existing connection chats. Idempotent when caller's own
// company already holds the block.
func (e *Engine) BlockCompany(ctx context.Context, caller identity.ID, targetCompanyID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		if targetCompanyID == ac.Company.ID {
			return ErrCannotBlockSelf
		}
		now := e.clock.NowMicros()
		conn, ok := tx.GetConnectionByPair(ac.Company.ID, targetCompanyID)
		if ok {
			if conn.Status == models.ConnectionBlocked && conn.BlockingCompanyID != nil && *conn.BlockingCompanyID == ac.Company.ID {
				return nil // idempotent
			}
			blocker := ac.Company.ID
			conn.Status = models.ConnectionBlocked
			conn.BlockingCompanyID = &blocker
			conn.UpdatedAt = now
			tx.DeleteConnectionChatsByConnection(conn.ID)
			tx.PutConnection(conn)
			audit(caller, ac.Company.ID, "block_company", fmt.Sprintf("target=%d", targetCompanyID))
			return nil
		}

		a, b := canonicalPair(ac.Company.ID, targetCompanyID)
		blocker := ac.Company.ID
		tx.PutConnection(&models.Connection{
			ID:                 tx.NextConnectionID(),
			CompanyA:           a,
			CompanyB:           b,
			Status:             models.ConnectionBlocked,
			RequestedBy:        caller,
			RequestedByCompany: ac.Company.ID,
			BlockingCompanyID:  &blocker,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
		audit(caller, ac.Company.ID, "block_company", fmt.Sprintf("target=%d", targetCompanyID))
		return nil
	})
}

// UnblockCompany lifts a block caller's active company placed on
// targetCompanyID. Only the company that placed the block may lift it.
func (e *Engine) UnblockCompany(ctx context.Context, caller identity.ID, targetCompanyID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		conn, ok := tx.GetConnectionByPair(ac.Company.ID, targetCompanyID)
		if !ok || conn.Status != models.ConnectionBlocked {
			return ErrConnectionNotBlocked
		}
		if conn.BlockingCompanyID == nil || *conn.BlockingCompanyID != ac.Company.ID {
			return ErrOnlyBlockerCanUnblock
		}
		cascadeDeleteConnection(tx, conn.ID)
		audit(caller, ac.Company.ID, "unblock_company", fmt.Sprintf("target=%d", targetCompanyID))
		return nil
	})
}
