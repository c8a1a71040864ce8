package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/tradecircle/backend/pkg/models"
	"github.com/tradecircle/backend/pkg/store"
)

func TestJoinCompanyByInviteCode(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	joiner := testIdentity("joiner")
	mustCreateCompany(t, e, owner, "owner")

	code, err := e.GenerateInviteCode(context.Background(), owner, 1)
	if err != nil {
		t.Fatalf("GenerateInviteCode: %v", err)
	}
	mustCreateAccount(t, e, joiner, "joiner")
	if err := e.JoinCompany(context.Background(), joiner, code); err != nil {
		t.Fatalf("JoinCompany: %v", err)
	}

	// max_uses was 1: a second redemption must fail as invalid.
	other := testIdentity("other")
	mustCreateAccount(t, e, other, "other")
	err = e.JoinCompany(context.Background(), other, code)
	if !errors.Is(err, ErrInviteCodeInvalid) {
		t.Fatalf("expected ErrInviteCodeInvalid once uses are exhausted, got %v", err)
	}
}

func TestAddColleagueByIdentity(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	colleague := testIdentity("colleague")
	companyID := mustCreateCompany(t, e, owner, "owner")
	mustCreateAccount(t, e, colleague, "colleague")

	if err := e.AddColleagueByIdentity(context.Background(), owner, colleague); err != nil {
		t.Fatalf("AddColleagueByIdentity: %v", err)
	}

	err := e.run(context.Background(), colleague, func(_ store.Tx, ac *AuthContext) error {
		if ac.ActiveCompanyID() != companyID {
			t.Fatalf("expected colleague's active company to be %d, got %d", companyID, ac.ActiveCompanyID())
		}
		if ac.Membership == nil || ac.Membership.Role != models.RoleMember {
			t.Fatalf("expected an active Member membership, got %+v", ac.Membership)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("resolve colleague: %v", err)
	}

	notifications, err := e.ListNotifications(context.Background(), colleague, companyID)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(notifications) != 1 || notifications[0].Type != models.NotificationAddedToCompany {
		t.Fatalf("expected one added_to_company notification, got %+v", notifications)
	}
}

func TestAddColleagueByIdentityRejectsAlreadyPlacedAccounts(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	other := testIdentity("other")
	mustCreateCompany(t, e, owner, "owner")
	mustCreateCompany(t, e, other, "other")

	err := e.AddColleagueByIdentity(context.Background(), owner, other)
	if !errors.Is(err, ErrColleagueAlreadyInCompany) {
		t.Fatalf("expected ErrColleagueAlreadyInCompany, got %v", err)
	}
}

func TestAddColleagueByIdentityRequiresCanManage(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	member := testIdentity("member")
	colleague := testIdentity("colleague")
	mustCreateCompany(t, e, owner, "owner")

	code, _ := e.GenerateInviteCode(context.Background(), owner, 5)
	mustCreateAccount(t, e, member, "member")
	if err := e.JoinCompany(context.Background(), member, code); err != nil {
		t.Fatalf("JoinCompany: %v", err)
	}
	if err := e.UpdateUserRole(context.Background(), owner, member, models.RoleMember); err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}

	mustCreateAccount(t, e, colleague, "colleague")
	err := e.AddColleagueByIdentity(context.Background(), member, colleague)
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted for a non-managing member, got %v", err)
	}
}

func TestUpdateUserRoleHierarchy(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	admin := testIdentity("admin")
	member := testIdentity("member")
	mustCreateCompany(t, e, owner, "owner")

	code, _ := e.GenerateInviteCode(context.Background(), owner, 5)
	mustCreateAccount(t, e, admin, "admin")
	if err := e.JoinCompany(context.Background(), admin, code); err != nil {
		t.Fatalf("JoinCompany(admin): %v", err)
	}
	if err := e.UpdateUserRole(context.Background(), owner, admin, models.RoleAdmin); err != nil {
		t.Fatalf("UpdateUserRole(admin): %v", err)
	}

	code2, _ := e.GenerateInviteCode(context.Background(), owner, 5)
	mustCreateAccount(t, e, member, "member")
	if err := e.JoinCompany(context.Background(), member, code2); err != nil {
		t.Fatalf("JoinCompany(member): %v", err)
	}
	if err := e.UpdateUserRole(context.Background(), owner, member, models.RoleMember); err != nil {
		t.Fatalf("UpdateUserRole(member): %v", err)
	}

	// Only the owner may promote to Admin.
	other := testIdentity("other")
	code3, _ := e.GenerateInviteCode(context.Background(), owner, 5)
	mustCreateAccount(t, e, other, "other")
	if err := e.JoinCompany(context.Background(), other, code3); err != nil {
		t.Fatalf("JoinCompany(other): %v", err)
	}
	if err := e.UpdateUserRole(context.Background(), owner, other, models.RoleMember); err != nil {
		t.Fatalf("UpdateUserRole(other->member): %v", err)
	}
	err := e.UpdateUserRole(context.Background(), admin, other, models.RoleAdmin)
	if !errors.Is(err, ErrOnlyOwnerCanDoThis) {
		t.Fatalf("expected ErrOnlyOwnerCanDoThis for an Admin promoting to Admin, got %v", err)
	}

	// Admin cannot change its own role.
	err = e.UpdateUserRole(context.Background(), admin, admin, models.RoleMember)
	if !errors.Is(err, ErrCannotChangeOwnRole) {
		t.Fatalf("expected ErrCannotChangeOwnRole, got %v", err)
	}

	// Assigning Owner directly is always rejected.
	err = e.UpdateUserRole(context.Background(), owner, member, models.RoleOwner)
	if !errors.Is(err, ErrUseTransferOwnership) {
		t.Fatalf("expected ErrUseTransferOwnership, got %v", err)
	}
}

func TestTransferOwnership(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	successor := testIdentity("successor")
	mustCreateCompany(t, e, owner, "owner")

	code, _ := e.GenerateInviteCode(context.Background(), owner, 5)
	mustCreateAccount(t, e, successor, "successor")
	if err := e.JoinCompany(context.Background(), successor, code); err != nil {
		t.Fatalf("JoinCompany: %v", err)
	}

	// A Pending member can't be handed ownership.
	err := e.TransferOwnership(context.Background(), owner, successor)
	if !errors.Is(err, ErrTargetIsPending) {
		t.Fatalf("expected ErrTargetIsPending, got %v", err)
	}

	if err := e.UpdateUserRole(context.Background(), owner, successor, models.RoleMember); err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}
	if err := e.TransferOwnership(context.Background(), owner, successor); err != nil {
		t.Fatalf("TransferOwnership: %v", err)
	}

	// The old owner can no longer do owner-only things.
	err = e.DeleteCompany(context.Background(), owner)
	if !errors.Is(err, ErrOnlyOwnerCanDoThis) {
		t.Fatalf("expected the former owner to lose owner rights, got %v", err)
	}
	// The new owner can.
	if err := e.TransferOwnership(context.Background(), successor, owner); err != nil {
		t.Fatalf("TransferOwnership back: %v", err)
	}
}

func TestOwnerCannotLeave(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	mustCreateCompany(t, e, owner, "owner")

	err := e.LeaveCompany(context.Background(), owner)
	if !errors.Is(err, ErrOwnerCannotLeave) {
		t.Fatalf("expected ErrOwnerCannotLeave, got %v", err)
	}
}

func TestRemoveColleagueReassignsActiveCompany(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	member := testIdentity("member")
	mustCreateCompany(t, e, owner, "owner")

	code, _ := e.GenerateInviteCode(context.Background(), owner, 5)
	mustCreateAccount(t, e, member, "member")
	if err := e.JoinCompany(context.Background(), member, code); err != nil {
		t.Fatalf("JoinCompany: %v", err)
	}
	if err := e.UpdateUserRole(context.Background(), owner, member, models.RoleMember); err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}
	if err := e.SwitchActiveCompany(context.Background(), member, 1); err != nil {
		t.Fatalf("SwitchActiveCompany: %v", err)
	}

	if err := e.RemoveColleague(context.Background(), owner, member); err != nil {
		t.Fatalf("RemoveColleague: %v", err)
	}

	// member had no other membership, so its active company is cleared.
	if err := e.store.Tx(context.Background(), func(tx store.Tx) error {
		acct, ok := tx.GetAccount(member)
		if !ok {
			t.Fatal("expected member's account to still exist")
		}
		if acct.ActiveCompanyID != nil {
			t.Fatalf("expected no active company after removal, got %d", *acct.ActiveCompanyID)
		}
		return nil
	}); err != nil {
		t.Fatalf("Tx: %v", err)
	}

	// member has no memberships left, so nothing (including
	// SwitchActiveCompany) can find a company for it anymore.
	err := e.SwitchActiveCompany(context.Background(), member, 1)
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted, got %v", err)
	}
}
