package engine

import (
	"context"
	"errors"
	"testing"
)

func TestMarkNotificationReadRequiresRecipient(t *testing.T) {
	e := newTestEngine(t)
	a := testIdentity("a")
	b := testIdentity("b")
	mustCreateCompany(t, e, a, "a")
	companyB := mustCreateCompany(t, e, b, "b")

	if err := e.RequestConnection(context.Background(), a, companyB, ""); err != nil {
		t.Fatalf("RequestConnection: %v", err)
	}

	notifs, err := e.ListNotifications(context.Background(), b, companyB)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(notifs) != 1 {
		t.Fatalf("expected b's owner to get exactly one notification, got %d", len(notifs))
	}
	n := notifs[0]
	if n.IsRead {
		t.Fatal("expected a freshly emitted notification to start unread")
	}

	// a is not the recipient and can't mark it read.
	err = e.MarkNotificationRead(context.Background(), a, n.ID)
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted for a non-recipient, got %v", err)
	}

	if err := e.MarkNotificationRead(context.Background(), b, n.ID); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}
	notifs, err = e.ListNotifications(context.Background(), b, companyB)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if !notifs[0].IsRead {
		t.Fatal("expected the notification to be marked read")
	}

	err = e.MarkNotificationRead(context.Background(), b, 9999)
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound for an unknown ID, got %v", err)
	}
}

func TestMarkAllAndClearNotifications(t *testing.T) {
	e := newTestEngine(t)
	a := testIdentity("a")
	b := testIdentity("b")
	c := testIdentity("c")
	mustCreateCompany(t, e, a, "a")
	companyB := mustCreateCompany(t, e, b, "b")
	mustCreateCompany(t, e, c, "c")

	if err := e.RequestConnection(context.Background(), a, companyB, ""); err != nil {
		t.Fatalf("RequestConnection(a->b): %v", err)
	}
	if err := e.RequestConnection(context.Background(), c, companyB, ""); err != nil {
		t.Fatalf("RequestConnection(c->b): %v", err)
	}

	notifs, err := e.ListNotifications(context.Background(), b, companyB)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(notifs) != 2 {
		t.Fatalf("expected two connection-request notifications, got %d", len(notifs))
	}

	if err := e.MarkAllNotificationsRead(context.Background(), b, companyB); err != nil {
		t.Fatalf("MarkAllNotificationsRead: %v", err)
	}
	notifs, err = e.ListNotifications(context.Background(), b, companyB)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	for _, n := range notifs {
		if !n.IsRead {
			t.Fatal("expected every notification to be read after MarkAllNotificationsRead")
		}
	}

	if err := e.ClearNotifications(context.Background(), b, companyB); err != nil {
		t.Fatalf("ClearNotifications: %v", err)
	}
	notifs, err = e.ListNotifications(context.Background(), b, companyB)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(notifs) != 0 {
		t.Fatalf("expected read notifications to be cleared, got %d remaining", len(notifs))
	}
}
