package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/tradecircle/backend/pkg/store"
)

func TestCreateCompanySlugUniqueness(t *testing.T) {
	e := newTestEngine(t)
	alice := testIdentity("alice")
	bob := testIdentity("bob")
	mustCreateAccount(t, e, alice, "Alice")
	mustCreateAccount(t, e, bob, "Bob")

	if err := e.CreateCompany(context.Background(), alice, "Acme Signs", "acme", "Rotterdam"); err != nil {
		t.Fatalf("CreateCompany(alice): %v", err)
	}
	err := e.CreateCompany(context.Background(), bob, "Acme Copy", "acme", "Utrecht")
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestCreateCompanySetsActiveCompany(t *testing.T) {
	e := newTestEngine(t)
	alice := testIdentity("alice")
	companyID := mustCreateCompany(t, e, alice, "alice")
	if companyID == 0 {
		t.Fatal("expected non-zero company id")
	}
}

func TestUpdateCompanyProfileRequiresManage(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	installer := testIdentity("installer")
	mustCreateCompany(t, e, owner, "owner")

	code, err := e.GenerateInviteCode(context.Background(), owner, 5)
	if err != nil {
		t.Fatalf("GenerateInviteCode: %v", err)
	}
	mustCreateAccount(t, e, installer, "installer")
	if err := e.JoinCompany(context.Background(), installer, code); err != nil {
		t.Fatalf("JoinCompany: %v", err)
	}
	// The joiner's active company is this one, but its role is Pending, so
	// UpdateCompanyProfile must fail with permission, not silently no-op.
	err = e.UpdateCompanyProfile(context.Background(), installer, "New Name", "new-slug", "Loc", "", false, "")
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted for a Pending caller, got %v", err)
	}
}

func TestSwitchActiveCompanyRejectsPendingMembership(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	joiner := testIdentity("joiner")
	companyID := mustCreateCompany(t, e, owner, "owner")

	code, err := e.GenerateInviteCode(context.Background(), owner, 5)
	if err != nil {
		t.Fatalf("GenerateInviteCode: %v", err)
	}
	mustCreateAccount(t, e, joiner, "joiner")
	if err := e.JoinCompany(context.Background(), joiner, code); err != nil {
		t.Fatalf("JoinCompany: %v", err)
	}

	err = e.SwitchActiveCompany(context.Background(), joiner, companyID)
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted switching into a Pending membership, got %v", err)
	}
}

func TestDeleteCompanyRequiresOwner(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	admin := testIdentity("admin")
	companyID := mustCreateCompany(t, e, owner, "owner")

	code, err := e.GenerateInviteCode(context.Background(), owner, 5)
	if err != nil {
		t.Fatalf("GenerateInviteCode: %v", err)
	}
	mustCreateAccount(t, e, admin, "admin")
	if err := e.JoinCompany(context.Background(), admin, code); err != nil {
		t.Fatalf("JoinCompany: %v", err)
	}
	if err := e.UpdateUserRole(context.Background(), owner, admin, "admin"); err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}

	err = e.DeleteCompany(context.Background(), admin)
	if !errors.Is(err, ErrOnlyOwnerCanDoThis) {
		t.Fatalf("expected ErrOnlyOwnerCanDoThis for an Admin, got %v", err)
	}

	if err := e.DeleteCompany(context.Background(), owner); err != nil {
		t.Fatalf("DeleteCompany(owner): %v", err)
	}

	// The company is gone: switching to it now fails.
	if err := e.SwitchActiveCompany(context.Background(), owner, companyID); err == nil {
		t.Fatal("expected an error switching into a deleted company")
	}

	// The Company row itself must be gone, not just unreachable via
	// membership — otherwise its slug stays squatted forever.
	err = e.store.Tx(context.Background(), func(tx store.Tx) error {
		if _, ok := tx.GetCompany(companyID); ok {
			t.Fatal("expected the Company row to be deleted")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
}
