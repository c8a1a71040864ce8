package engine

import (
	"context"
	"errors"
	"testing"
)

func TestCreateAccount(t *testing.T) {
	e := newTestEngine(t)
	alice := testIdentity("alice")

	if err := e.CreateAccount(context.Background(), alice, "Alice Anderson", "Alice", "alice@example.com"); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	err := e.CreateAccount(context.Background(), alice, "Alice Anderson", "Alice", "alice@example.com")
	if !errors.Is(err, ErrAccountAlreadyExists) {
		t.Fatalf("expected ErrAccountAlreadyExists, got %v", err)
	}
}

func TestCreateAccountValidation(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name     string
		fullName string
		nickname string
		email    string
		wantErr  *Error
	}{
		{"empty full name", "", "nick", "a@example.com", ErrFullNameEmpty},
		{"empty nickname", "Full Name", "", "a@example.com", ErrNicknameEmpty},
		{"empty email", "Full Name", "nick", "", ErrEmailEmpty},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := testIdentity(tt.name)
			err := e.CreateAccount(context.Background(), id, tt.fullName, tt.nickname, tt.email)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("case %d: expected %v, got %v", i, tt.wantErr, err)
			}
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	e := newTestEngine(t)
	alice := testIdentity("alice")
	mustCreateAccount(t, e, alice, "Alice")

	if err := e.UpdateProfile(context.Background(), alice, "Al", "al@example.com"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	err := e.UpdateProfile(context.Background(), testIdentity("ghost"), "X", "x@example.com")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound for unknown caller, got %v", err)
	}
}
