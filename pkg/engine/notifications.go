package engine

import (
	"context"

	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/models"
	"github.com/tradecircle/backend/pkg/store"
)

// notify inserts a single Notification row. Notifications are emitted
// synchronously inside the same transaction as the triggering write so
// a client never observes one without the other.
func (e *Engine) notify(tx store.Tx, recipient identity.ID, companyID uint64, typ models.NotificationType, title, body string) {
	tx.PutNotification(&models.Notification{
		ID:                tx.NextNotificationID(),
		RecipientIdentity: recipient,
		CompanyID:         companyID,
		Type:              typ,
		Title:             title,
		Body:              body,
		CreatedAt:         e.clock.NowMicros(),
	})
}

// managersOf returns the identities of every can-manage (Owner/Admin)
// membership of companyID, computed fresh from Membership rows at
// emission time so the fan-out set always reflects current roles.
func managersOf(tx store.Tx, companyID uint64) []identity.ID {
	var out []identity.ID
	for _, m := range tx.ListMembershipsByCompany(companyID) {
		if m.Role.CanManage() {
			out = append(out, m.Identity)
		}
	}
	return out
}

func (e *Engine) notifyManagers(tx store.Tx, companyID uint64, typ models.NotificationType, title, body string) {
	for _, id := range managersOf(tx, companyID) {
		e.notify(tx, id, companyID, typ, title, body)
	}
}

// ListNotifications returns caller's notifications scoped to companyID,
// the read-side companion the HTTP transport needs.
func (e *Engine) ListNotifications(ctx context.Context, caller identity.ID, companyID uint64) ([]*models.Notification, error) {
	var out []*models.Notification
	err := e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		out = tx.ListNotificationsByRecipientCompany(caller, companyID)
		return nil
	})
	return out, err
}

// MarkNotificationRead marks a single notification read. Only its
// recipient may call it.
func (e *Engine) MarkNotificationRead(ctx context.Context, caller identity.ID, notificationID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		n, ok := tx.GetNotification(notificationID)
		if !ok {
			return ErrNotificationNotFound
		}
		if n.RecipientIdentity != caller {
			return ErrNotPermitted
		}
		if !n.IsRead {
			n.IsRead = true
			tx.PutNotification(n)
		}
		return nil
	})
}

// MarkAllNotificationsRead marks every unread notification caller has
// for companyID as read.
func (e *Engine) MarkAllNotificationsRead(ctx context.Context, caller identity.ID, companyID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		for _, n := range tx.ListNotificationsByRecipientCompany(caller, companyID) {
			if !n.IsRead {
				n.IsRead = true
				tx.PutNotification(n)
			}
		}
		return nil
	})
}

// ClearNotifications deletes every already-read notification caller has
// for companyID.
func (e *Engine) ClearNotifications(ctx context.Context, caller identity.ID, companyID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		for _, n := range tx.ListNotificationsByRecipientCompany(caller, companyID) {
			if n.IsRead {
				tx.DeleteNotification(n.ID)
			}
		}
		return nil
	})
}
