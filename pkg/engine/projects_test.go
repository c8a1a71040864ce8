package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/tradecircle/backend/pkg/identity"
)

func mustAccept(t *testing.T, e *Engine, a, b identity.ID, companyA, companyB uint64) {
	t.Helper()
	if err := e.RequestConnection(context.Background(), a, companyB, ""); err != nil {
		t.Fatalf("RequestConnection: %v", err)
	}
	if err := e.AcceptConnection(context.Background(), b, companyA); err != nil {
		t.Fatalf("AcceptConnection: %v", err)
	}
}

func TestInviteToProjectRequiresAcceptedConnection(t *testing.T) {
	e := newTestEngine(t)
	owner := testIdentity("owner")
	partner := testIdentity("partner")
	ownerCo := mustCreateCompany(t, e, owner, "owner")
	partnerCo := mustCreateCompany(t, e, partner, "partner")

	if err := e.CreateProject(context.Background(), owner, "Storefront", "new signage"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	err := e.InviteToProject(context.Background(), owner, 1, partnerCo)
	if !errors.Is(err, ErrNoAcceptedConnection) {
		t.Fatalf("expected ErrNoAcceptedConnection, got %v", err)
	}

	mustAccept(t, e, owner, partner, ownerCo, partnerCo)

	if err := e.InviteToProject(context.Background(), owner, 1, partnerCo); err != nil {
		t.Fatalf("InviteToProject: %v", err)
	}
	if err := e.AcceptProjectInvite(context.Background(), partner, 1); err != nil {
		t.Fatalf("AcceptProjectInvite: %v", err)
	}
}

func TestOnlyOwnerCompanyCanManageProject(t *testing.T) {
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

	err := e.KickFromProject(context.Background(), partner, 1, ownerCo)
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted for a non-owner-company kick, got %v", err)
	}
	err = e.DeleteProject(context.Background(), partner, 1)
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted for a non-owner-company delete, got %v", err)
	}

	if err := e.KickFromProject(context.Background(), owner, 1, partnerCo); err != nil {
		t.Fatalf("KickFromProject: %v", err)
	}
	if err := e.DeleteProject(context.Background(), owner, 1); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
}
