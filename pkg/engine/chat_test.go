package engine

import (
	"context"
	"errors"
	"testing"
)

func TestSendConnectionChatRequiresAcceptedParty(t *testing.T) {
	e := newTestEngine(t)
	a := testIdentity("a")
	b := testIdentity("b")
	outsider := testIdentity("outsider")
	companyA := mustCreateCompany(t, e, a, "a")
	companyB := mustCreateCompany(t, e, b, "b")
	mustCreateCompany(t, e, outsider, "outsider")

	if err := e.RequestConnection(context.Background(), a, companyB, ""); err != nil {
		t.Fatalf("RequestConnection: %v", err)
	}
	if err := e.AcceptConnection(context.Background(), b, companyA); err != nil {
		t.Fatalf("AcceptConnection: %v", err)
	}

	conns := listConnectionsForTest(t, e, companyA)
	if len(conns) != 1 {
		t.Fatalf("expected exactly one connection, got %d", len(conns))
	}
	connID := conns[0]

	if err := e.SendConnectionChat(context.Background(), a, connID, "hello"); err != nil {
		t.Fatalf("SendConnectionChat(a): %v", err)
	}

	err := e.SendConnectionChat(context.Background(), outsider, connID, "hi")
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted for a non-party sender, got %v", err)
	}

	if err := e.BlockCompany(context.Background(), a, companyB); err != nil {
		t.Fatalf("BlockCompany: %v", err)
	}
	err = e.SendConnectionChat(context.Background(), b, connID, "still there?")
	if !errors.Is(err, ErrBlockedConnection) {
		t.Fatalf("expected ErrBlockedConnection after a block, got %v", err)
	}
}

func TestSendConnectionChatValidatesText(t *testing.T) {
	e := newTestEngine(t)
	a := testIdentity("a")
	b := testIdentity("b")
	companyA := mustCreateCompany(t, e, a, "a")
	companyB := mustCreateCompany(t, e, b, "b")
	if err := e.RequestConnection(context.Background(), a, companyB, ""); err != nil {
		t.Fatalf("RequestConnection: %v", err)
	}
	if err := e.AcceptConnection(context.Background(), b, companyA); err != nil {
		t.Fatalf("AcceptConnection: %v", err)
	}
	conns := listConnectionsForTest(t, e, companyA)

	err := e.SendConnectionChat(context.Background(), a, conns[0], "   ")
	if !errors.Is(err, ErrChatTextEmpty) {
		t.Fatalf("expected ErrChatTextEmpty for a whitespace-only message, got %v", err)
	}
}
