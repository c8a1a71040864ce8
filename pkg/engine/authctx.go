package engine

import (
	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/models"
	"github.com/tradecircle/backend/pkg/store"
)

// AuthContext is resolved fresh at the start of every operation:
// identity -> account -> active membership -> role. It never outlives
// the Tx it was built from.
type AuthContext struct {
	Identity   identity.ID
	Account    *models.Account
	Company    *models.Company    // nil if AccountOnly
	Membership *models.Membership // nil if AccountOnly
}

// AccountOnly reports whether the caller has no active company context.
func (ac *AuthContext) AccountOnly() bool { return ac.Membership == nil }

func (ac *AuthContext) IsOwner() bool {
	return ac.Membership != nil && ac.Membership.Role == models.RoleOwner
}

func (ac *AuthContext) CanManage() bool {
	return ac.Membership != nil && ac.Membership.Role.CanManage()
}

func (ac *AuthContext) IsActiveMember() bool {
	return ac.Membership != nil && !ac.Membership.Role.IsPending()
}

func (ac *AuthContext) IsInternal() bool {
	return ac.Membership != nil && ac.Membership.Role.IsInternal()
}

// ActiveCompanyID returns the caller's active company, or 0 if none.
func (ac *AuthContext) ActiveCompanyID() uint64 {
	if ac.Company == nil {
		return 0
	}
	return ac.Company.ID
}

func resolveAuthContext(tx store.Tx, id identity.ID) (*AuthContext, error) {
	account, ok := tx.GetAccount(id)
	if !ok {
		return nil, ErrAccountNotFound
	}
	ac := &AuthContext{Identity: id, Account: account}
	if account.ActiveCompanyID == nil {
		return ac, nil
	}
	company, ok := tx.GetCompany(*account.ActiveCompanyID)
	if !ok {
		return ac, nil
	}
	membership, ok := tx.GetMembership(id, company.ID)
	if !ok {
		return ac, nil
	}
	ac.Company = company
	ac.Membership = membership
	return ac, nil
}

// requireCanManage is the recurring "requires can_manage on active
// company" gate used by most mutating operations.
func requireCanManage(ac *AuthContext) error {
	if !ac.CanManage() {
		return ErrNotPermitted
	}
	return nil
}

func requireOwner(ac *AuthContext) error {
	if !ac.IsOwner() {
		return ErrOnlyOwnerCanDoThis
	}
	return nil
}
