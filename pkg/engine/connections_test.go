package engine

import (
	"context"
	"errors"
	"testing"
)

func TestRequestAndAcceptConnection(t *testing.T) {
	e := newTestEngine(t)
	a := testIdentity("a")
	b := testIdentity("b")
	companyA := mustCreateCompany(t, e, a, "a")
	companyB := mustCreateCompany(t, e, b, "b")

	if err := e.RequestConnection(context.Background(), a, companyB, "let's collaborate"); err != nil {
		t.Fatalf("RequestConnection: %v", err)
	}

	// The requester can't accept its own outgoing request.
	err := e.AcceptConnection(context.Background(), a, companyB)
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted for requester accepting own request, got %v", err)
	}

	if err := e.AcceptConnection(context.Background(), b, companyA); err != nil {
		t.Fatalf("AcceptConnection(b): %v", err)
	}

	// Duplicate requests once accepted must conflict.
	err = e.RequestConnection(context.Background(), a, companyB, "again")
	if !errors.Is(err, ErrConnectionAlreadyExists) {
		t.Fatalf("expected ErrConnectionAlreadyExists, got %v", err)
	}
}

func TestCancelRequestOnlyByRequester(t *testing.T) {
	e := newTestEngine(t)
	a := testIdentity("a")
	b := testIdentity("b")
	companyA := mustCreateCompany(t, e, a, "a")
	companyB := mustCreateCompany(t, e, b, "b")

	if err := e.RequestConnection(context.Background(), a, companyB, ""); err != nil {
		t.Fatalf("RequestConnection: %v", err)
	}

	err := e.CancelRequest(context.Background(), b, companyA)
	if !errors.Is(err, ErrOnlyRequesterCanCancel) {
		t.Fatalf("expected ErrOnlyRequesterCanCancel, got %v", err)
	}

	if err := e.CancelRequest(context.Background(), a, companyB); err != nil {
		t.Fatalf("CancelRequest(a): %v", err)
	}

	// Now that it's gone, either side can request fresh.
	if err := e.RequestConnection(context.Background(), b, companyA, "fresh start"); err != nil {
		t.Fatalf("RequestConnection after cancel: %v", err)
	}
}

func TestBlockCompanyGhostsFutureRequests(t *testing.T) {
	e := newTestEngine(t)
	a := testIdentity("a")
	b := testIdentity("b")
	companyA := mustCreateCompany(t, e, a, "a")
	companyB := mustCreateCompany(t, e, b, "b")

	if err := e.BlockCompany(context.Background(), a, companyB); err != nil {
		t.Fatalf("BlockCompany: %v", err)
	}

	// b tries to connect to a; since a's block already exists on this
	// pair, the request must succeed silently and write nothing.
	if err := e.RequestConnection(context.Background(), b, companyA, "hi"); err != nil {
		t.Fatalf("RequestConnection into a block must ghost, not error: %v", err)
	}

	// b believes the request went through; it should find no pending
	// request or acceptance possible, since nothing was actually written.
	err := e.AcceptConnection(context.Background(), a, companyB)
	if !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending (still blocked, no pending row), got %v", err)
	}

	// Blocking again from the same side is idempotent.
	if err := e.BlockCompany(context.Background(), a, companyB); err != nil {
		t.Fatalf("idempotent BlockCompany: %v", err)
	}

	// Only the blocker can unblock.
	err = e.UnblockCompany(context.Background(), b, companyA)
	if !errors.Is(err, ErrOnlyBlockerCanUnblock) {
		t.Fatalf("expected ErrOnlyBlockerCanUnblock, got %v", err)
	}

	if err := e.UnblockCompany(context.Background(), a, companyB); err != nil {
		t.Fatalf("UnblockCompany: %v", err)
	}

	// The pair is clean again.
	if err := e.RequestConnection(context.Background(), b, companyA, "second try"); err != nil {
		t.Fatalf("RequestConnection after unblock: %v", err)
	}
}

func TestCannotConnectOrBlockSelf(t *testing.T) {
	e := newTestEngine(t)
	a := testIdentity("a")
	companyA := mustCreateCompany(t, e, a, "a")

	if err := e.RequestConnection(context.Background(), a, companyA, ""); !errors.Is(err, ErrCannotConnectToSelf) {
		t.Fatalf("expected ErrCannotConnectToSelf, got %v", err)
	}
	if err := e.BlockCompany(context.Background(), a, companyA); !errors.Is(err, ErrCannotBlockSelf) {
		t.Fatalf("expected ErrCannotBlockSelf, got %v", err)
	}
}
