package engine

import (
	"context"
	"fmt"

	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/models"
	"github.com/tradecircle/backend/pkg/store"
	"github.com/tradecircle/backend/pkg/validate"
)

// SendConnectionChat posts a chat message on connectionID from caller's
// active company. Both parties may send unless the connection is
// blocked.
func (e *Engine) SendConnectionChat(ctx context.Context, caller identity.ID, connectionID uint64, text string) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		text = validate.Trimmed(text)
		if err := requireNonEmptyMax(text, validate.MaxChatText, ErrChatTextEmpty, ErrChatTextTooLong); err != nil {
			return err
		}
		if ac.Company == nil {
			return ErrNotPermitted
		}
		conn, ok := tx.GetConnection(connectionID)
		if !ok {
			return ErrConnectionNotFound
		}
		if !conn.IsParty(ac.Company.ID) {
			return ErrNotPermitted
		}
		if conn.Status == models.ConnectionBlocked {
			return ErrBlockedConnection
		}

		tx.PutConnectionChat(&models.ConnectionChat{
			ID:           tx.NextConnectionChatID(),
			ConnectionID: connectionID,
			Sender:       caller,
			Text:         text,
			CreatedAt:    e.clock.NowMicros(),
		})

		other := conn.Other(ac.Company.ID)
		e.notifyManagers(tx, other, models.NotificationChatMessage,
			"New message", fmt.Sprintf("%s: %s", ac.Company.Name, truncate(text, 80)))
		return nil
	})
}

// SendProjectChat posts a chat message on projectID from caller's
// active company. Only accepted project members may send.
func (e *Engine) SendProjectChat(ctx context.Context, caller identity.ID, projectID uint64, text string) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		text = validate.Trimmed(text)
		if err := requireNonEmptyMax(text, validate.MaxChatText, ErrChatTextEmpty, ErrChatTextTooLong); err != nil {
			return err
		}
		if ac.Company == nil {
			return ErrNotAcceptedMember
		}
		pm, ok := tx.GetProjectMember(projectID, ac.Company.ID)
		if !ok || pm.Status != models.ProjectMemberAccepted {
			return ErrNotAcceptedMember
		}

		tx.PutProjectChat(&models.ProjectChat{
			ID:        tx.NextProjectChatID(),
			ProjectID: projectID,
			Sender:    caller,
			Text:      text,
			CreatedAt: e.clock.NowMicros(),
		})

		for _, member := range tx.ListProjectMembersByProject(projectID) {
			if member.Status != models.ProjectMemberAccepted || member.CompanyID == ac.Company.ID {
				continue
			}
			e.notifyManagers(tx, member.CompanyID, models.NotificationProjectChat,
				"New project message", fmt.Sprintf("%s: %s", ac.Company.Name, truncate(text, 80)))
		}
		return nil
	})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
