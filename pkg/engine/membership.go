package engine

import (
	"context"
	"fmt"

	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/invitecode"
	"github.com/tradecircle/backend/pkg/models"
	"github.com/tradecircle/backend/pkg/store"
)

// GenerateInviteCode mints a fresh invite code for caller's active
// company, good for maxUses redemptions. The code generator is
// rejection-sampled here since uniqueness is the engine's job, not the
// generator's.
func (e *Engine) GenerateInviteCode(ctx context.Context, caller identity.ID, maxUses int) (string, error) {
	var code string
	err := e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		if maxUses < 1 {
			return ErrMaxUsesTooLow
		}
		for {
			c, err := e.codes.New()
			if err != nil {
				return fmt.Errorf("engine: generate invite code: %w", err)
			}
			if _, exists := tx.GetInviteCode(c); !exists {
				code = c
				break
			}
		}
		tx.PutInviteCode(&models.InviteCode{
			Code:          code,
			CompanyID:     ac.Company.ID,
			CreatedBy:     caller,
			MaxUses:       uint32(maxUses),
			UsesRemaining: uint32(maxUses),
			CreatedAt:     e.clock.NowMicros(),
		})
		return nil
	})
	return code, err
}

// DeleteInviteCode revokes a code belonging to caller's active company.
func (e *Engine) DeleteInviteCode(ctx context.Context, caller identity.ID, code string) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		canonical := invitecode.Canonicalize(code)
		ic, ok := tx.GetInviteCode(canonical)
		if !ok || ic.CompanyID != ac.Company.ID {
			return ErrInviteCodeInvalid
		}
		tx.DeleteInviteCode(canonical)
		return nil
	})
}

// JoinCompany redeems an invite code, creating a Pending membership for
// caller and notifying the company's managers.
func (e *Engine) JoinCompany(ctx context.Context, caller identity.ID, code string) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		canonical := invitecode.Canonicalize(code)
		ic, ok := tx.GetInviteCode(canonical)
		if !ok || ic.UsesRemaining <= 0 {
			return ErrInviteCodeInvalid
		}
		if _, exists := tx.GetMembership(caller, ic.CompanyID); exists {
			return ErrAlreadyMember
		}

		now := e.clock.NowMicros()
		tx.PutMembership(&models.Membership{
			ID:        tx.NextMembershipID(),
			Identity:  caller,
			CompanyID: ic.CompanyID,
			Role:      models.RolePending,
			JoinedAt:  now,
		})

		ic.UsesRemaining--
		if ic.UsesRemaining <= 0 {
			tx.DeleteInviteCode(ic.Code)
		} else {
			tx.PutInviteCode(ic)
		}

		if len(tx.ListMembershipsByIdentity(caller)) == 1 {
			ac.Account.ActiveCompanyID = &ic.CompanyID
			tx.PutAccount(ac.Account)
		}

		company, _ := tx.GetCompany(ic.CompanyID)
		companyName := "a company"
		if company != nil {
			companyName = company.Name
		}
		e.notifyManagers(tx, ic.CompanyID, models.NotificationMemberJoined,
			"New member joined",
			fmt.Sprintf("%s joined %s and is awaiting activation", ac.Account.FullName, companyName))
		return nil
	})
}

// AddColleagueByIdentity directly adds an existing, company-less account
// to caller's active company as a Member, bypassing invite codes and
// the Pending state entirely. Unlike JoinCompany, the new membership is
// active immediately.
func (e *Engine) AddColleagueByIdentity(ctx context.Context, caller, colleague identity.ID) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		colleagueAccount, ok := tx.GetAccount(colleague)
		if !ok {
			return ErrAccountNotFound
		}
		if len(tx.ListMembershipsByIdentity(colleague)) > 0 {
			return ErrColleagueAlreadyInCompany
		}

		now := e.clock.NowMicros()
		tx.PutMembership(&models.Membership{
			ID:        tx.NextMembershipID(),
			Identity:  colleague,
			CompanyID: ac.Company.ID,
			Role:      models.RoleMember,
			JoinedAt:  now,
		})

		if colleagueAccount.ActiveCompanyID == nil {
			colleagueAccount.ActiveCompanyID = &ac.Company.ID
			tx.PutAccount(colleagueAccount)
		}

		e.notify(tx, colleague, ac.Company.ID, models.NotificationAddedToCompany,
			"Added to a company", fmt.Sprintf("You were added to %s", ac.Company.Name))
		audit(caller, ac.Company.ID, "add_colleague_by_identity", fmt.Sprintf("colleague=%s", colleague.Short()))
		return nil
	})
}

// UpdateUserRole changes target's role within caller's active company.
// Owner is never assigned this way (see TransferOwnership), and a
// manager can never promote a peer to a role at or above their own.
func (e *Engine) UpdateUserRole(ctx context.Context, caller, target identity.ID, newRole models.Role) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		if !newRole.Valid() {
			return ErrInvalidRole
		}
		if newRole == models.RoleOwner {
			return ErrUseTransferOwnership
		}
		if target == caller {
			return ErrCannotChangeOwnRole
		}
		targetMembership, ok := tx.GetMembership(target, ac.Company.ID)
		if !ok {
			return ErrTargetNotInCompany
		}
		if targetMembership.Role.AtOrAbove(ac.Membership.Role) {
			return ErrTargetAtOrAboveCaller
		}
		if newRole == models.RoleAdmin && !ac.IsOwner() {
			return ErrOnlyOwnerCanDoThis
		}
		targetMembership.Role = newRole
		tx.PutMembership(targetMembership)
		audit(caller, ac.Company.ID, "update_user_role", fmt.Sprintf("target=%s new_role=%s", target.Short(), newRole))
		return nil
	})
}

// TransferOwnership hands ownership of caller's active company to
// newOwner, demoting caller to Admin. newOwner must already hold a
// non-Pending membership.
func (e *Engine) TransferOwnership(ctx context.Context, caller, newOwner identity.ID) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireOwner(ac); err != nil {
			return err
		}
		targetMembership, ok := tx.GetMembership(newOwner, ac.Company.ID)
		if !ok {
			return ErrMembershipNotFound
		}
		if targetMembership.Role.IsPending() {
			return ErrTargetIsPending
		}

		ac.Membership.Role = models.RoleAdmin
		targetMembership.Role = models.RoleOwner
		tx.PutMembership(ac.Membership)
		tx.PutMembership(targetMembership)

		e.notify(tx, caller, ac.Company.ID, models.NotificationOwnershipTransferred,
			"Ownership transferred", fmt.Sprintf("You transferred ownership of %s", ac.Company.Name))
		e.notify(tx, newOwner, ac.Company.ID, models.NotificationOwnershipTransferred,
			"You are now the owner", fmt.Sprintf("You were made owner of %s", ac.Company.Name))
		audit(caller, ac.Company.ID, "transfer_ownership", fmt.Sprintf("new_owner=%s", newOwner.Short()))
		return nil
	})
}

// RemoveColleague evicts colleague from caller's active company. An
// owner can never be removed, and an admin can only remove members
// below admin rank (never another admin).
func (e *Engine) RemoveColleague(ctx context.Context, caller, colleague identity.ID) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		if colleague == caller {
			return ErrCannotRemoveSelf
		}
		target, ok := tx.GetMembership(colleague, ac.Company.ID)
		if !ok {
			return ErrTargetNotInCompany
		}
		if target.Role == models.RoleOwner {
			return ErrNotPermitted
		}
		if !ac.IsOwner() && target.Role == models.RoleAdmin {
			return ErrNotPermitted
		}

		tx.DeleteMembership(target.ID)
		reassignActiveCompanyOnRemoval(tx, colleague, ac.Company.ID)
		e.notify(tx, colleague, ac.Company.ID, models.NotificationRemoved,
			"Removed from company", fmt.Sprintf("You were removed from %s", ac.Company.Name))
		audit(caller, ac.Company.ID, "remove_colleague", fmt.Sprintf("target=%s", colleague.Short()))
		return nil
	})
}

// LeaveCompany removes caller's own membership from their active
// company. The owner cannot leave; they must transfer ownership first.
func (e *Engine) LeaveCompany(ctx context.Context, caller identity.ID) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if ac.Membership == nil {
			return ErrNotPermitted
		}
		if ac.IsOwner() {
			return ErrOwnerCannotLeave
		}
		tx.DeleteMembership(ac.Membership.ID)
		reassignActiveCompanyOnRemoval(tx, caller, ac.Company.ID)
		return nil
	})
}
