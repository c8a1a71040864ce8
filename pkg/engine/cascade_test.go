package engine

import (
	"context"
	"testing"

	"github.com/tradecircle/backend/pkg/store"
)

func TestDeleteCompanyCascadesConnections(t *testing.T) {
	e := newTestEngine(t)
	a := testIdentity("a")
	b := testIdentity("b")
	companyA := mustCreateCompany(t, e, a, "a")
	companyB := mustCreateCompany(t, e, b, "b")

	if err := e.RequestConnection(context.Background(), a, companyB, "hi"); err != nil {
		t.Fatalf("RequestConnection: %v", err)
	}
	// b's managers got a NotificationConnectionRequested scoped to
	// companyB; verify it exists before company A is deleted.
	notifsBefore, err := e.ListNotifications(context.Background(), b, companyB)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(notifsBefore) == 0 {
		t.Fatal("expected at least one notification before delete_company")
	}

	if err := e.DeleteCompany(context.Background(), a); err != nil {
		t.Fatalf("DeleteCompany: %v", err)
	}

	// The connection and the Company row itself are gone.
	err = e.store.Tx(context.Background(), func(tx store.Tx) error {
		if _, ok := tx.GetConnectionByPair(companyA, companyB); ok {
			t.Fatal("expected the connection to be cascade-deleted")
		}
		if _, ok := tx.GetCompany(companyA); ok {
			t.Fatal("expected the Company row to be cascade-deleted")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}

	// a's account has no active company anymore, so it can't act as a
	// company at all: RequestConnection must now fail.
	err = e.RequestConnection(context.Background(), a, companyB, "again")
	if err == nil {
		t.Fatal("expected an error requesting a connection with no active company")
	}
}

func TestDeleteCompanyRemovesNotificationsForFormerMembers(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	member := testIdentity("member")
	companyID := mustCreateCompany(t, e, owner, "owner")

	code, err := e.GenerateInviteCode(context.Background(), owner, 5)
	if err != nil {
		t.Fatalf("GenerateInviteCode: %v", err)
	}
	mustCreateAccount(t, e, member, "member")
	if err := e.JoinCompany(context.Background(), member, code); err != nil {
		t.Fatalf("JoinCompany: %v", err)
	}

	// RemoveColleague deletes member's Membership row and then notifies
	// member, so by the time the company is deleted, member is no longer
	// enumerable via ListMembershipsByCompany.
	if err := e.RemoveColleague(context.Background(), owner, member); err != nil {
		t.Fatalf("RemoveColleague: %v", err)
	}

	err = e.store.Tx(context.Background(), func(tx store.Tx) error {
		notifs := tx.ListNotificationsByCompany(companyID)
		if len(notifs) == 0 {
			t.Fatal("expected the removal notification to still exist before delete_company")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}

	if err := e.DeleteCompany(context.Background(), owner); err != nil {
		t.Fatalf("DeleteCompany: %v", err)
	}

	err = e.store.Tx(context.Background(), func(tx store.Tx) error {
		if notifs := tx.ListNotificationsByCompany(companyID); len(notifs) != 0 {
			t.Fatalf("expected no orphaned notifications after delete_company, got %d", len(notifs))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
}

func TestDeleteCompanyCascadesOwnedAndForeignProjects(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	partner := testIdentity("partner")
	ownerCo := mustCreateCompany(t, e, owner, "owner")
	partnerCo := mustCreateCompany(t, e, partner, "partner")
	mustAccept(t, e, owner, partner, ownerCo, partnerCo)

	if err := e.CreateProject(context.Background(), owner, "Storefront", ""); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := e.InviteToProject(context.Background(), owner, 1, partnerCo); err != nil {
		t.Fatalf("InviteToProject: %v", err)
	}
	if err := e.AcceptProjectInvite(context.Background(), partner, 1); err != nil {
		t.Fatalf("AcceptProjectInvite: %v", err)
	}

	// Deleting the non-owner company should drop its ProjectMember row
	// but leave the project (owned by ownerCo) alone.
	if err := e.DeleteCompany(context.Background(), partner); err != nil {
		t.Fatalf("DeleteCompany(partner): %v", err)
	}
	err := e.store.Tx(context.Background(), func(tx store.Tx) error {
		if _, ok := tx.GetProject(1); !ok {
			t.Fatal("expected the owner's project to survive a foreign member's deletion")
		}
		if _, ok := tx.GetProjectMember(1, partnerCo); ok {
			t.Fatal("expected the foreign ProjectMember row to be removed")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}

	// Deleting the owning company removes the project entirely.
	if err := e.DeleteCompany(context.Background(), owner); err != nil {
		t.Fatalf("DeleteCompany(owner): %v", err)
	}
	err = e.store.Tx(context.Background(), func(tx store.Tx) error {
		if _, ok := tx.GetProject(1); ok {
			t.Fatal("expected the owned project to be cascade-deleted")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
}
