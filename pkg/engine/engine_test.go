package engine

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/tradecircle/backend/pkg/clock"
	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/store"
	"github.com/tradecircle/backend/pkg/store/memory"
)

// fakeCodes returns a fixed sequence of invite codes, letting tests
// exercise GenerateInviteCode's rejection-sampling loop deterministically
// instead of depending on crypto/rand.
type fakeCodes struct {
	codes []string
	next  int
}

func (f *fakeCodes) New() (string, error) {
	c := f.codes[f.next%len(f.codes)]
	f.next++
	return c, nil
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(memory.New(), clock.NewFake(1_700_000_000_000_000), &fakeCodes{codes: []string{
		"AAAA-AAAA-AAAA-AAAA",
		"BBBB-BBBB-BBBB-BBBB",
		"CCCC-CCCC-CCCC-CCCC",
		"DDDD-DDDD-DDDD-DDDD",
	}})
}

// testIdentity derives a stable, distinct identity per label so tests
// read as named actors instead of raw byte arrays.
func testIdentity(label string) identity.ID {
	return identity.ID(sha256.Sum256([]byte("test|" + label)))
}

func mustCreateAccount(t *testing.T, e *Engine, id identity.ID, fullName string) {
	t.Helper()
	if err := e.CreateAccount(context.Background(), id, fullName, fullName, fullName+"@example.com"); err != nil {
		t.Fatalf("CreateAccount(%s): %v", fullName, err)
	}
}

// mustCreateCompany creates the account and its first company in one
// step and returns the resulting company ID (the account's freshly
// created company always becomes its active company).
func mustCreateCompany(t *testing.T, e *Engine, id identity.ID, label string) uint64 {
	t.Helper()
	mustCreateAccount(t, e, id, label)
	if err := e.CreateCompany(context.Background(), id, label+" Co", label+"-co", "Rotterdam"); err != nil {
		t.Fatalf("CreateCompany(%s): %v", label, err)
	}
	var companyID uint64
	if err := e.run(context.Background(), id, func(_ store.Tx, ac *AuthContext) error {
		companyID = ac.Company.ID
		return nil
	}); err != nil {
		t.Fatalf("resolve company for %s: %v", label, err)
	}
	return companyID
}

// listConnectionsForTest returns the connection IDs a company is party
// to, going through a throwaway Tx rather than exposing store internals
// from the engine's own API.
func listConnectionsForTest(t *testing.T, e *Engine, companyID uint64) []uint64 {
	t.Helper()
	var ids []uint64
	err := e.store.Tx(context.Background(), func(tx store.Tx) error {
		for _, c := range tx.ListConnectionsByCompany(companyID) {
			ids = append(ids, c.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("listConnectionsForTest: %v", err)
	}
	return ids
}
