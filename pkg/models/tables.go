// Package models holds the eleven persisted row types of the domain
// engine and the small enums they reference. Nothing in this package
// touches storage or transactions; it is pure data plus the invariants
// that are cheap to express as Go types (nullable fields as pointers,
// canonical ordering left to the engine).
package models

import "github.com/tradecircle/backend/pkg/identity"

// Account is one row per identity that has completed sign-up.
type Account struct {
	Identity        identity.ID
	FullName        string
	Nickname        string
	Email           string
	ActiveCompanyID *uint64
	CreatedAt       int64 // microseconds since epoch
}

// Company is a sign-shop style small business in the directory.
type Company struct {
	ID         uint64
	Name       string
	Slug       string
	Location   string
	Bio        string
	KVKNumber  string
	IsPublic   bool
	CreatedAt  int64
}

// Capability is a 1:1 row of equipment/service flags for a Company.
type Capability struct {
	CompanyID       uint64
	CanInstall      bool
	HasCNC          bool
	HasLargeFormat  bool
	HasBucketTruck  bool
}

// Membership relates an identity to a company with a role.
type Membership struct {
	ID        uint64
	Identity  identity.ID
	CompanyID uint64
	Role      Role
	JoinedAt  int64
}

// InviteCode allows redemption into a Pending Membership.
type InviteCode struct {
	Code          string
	CompanyID     uint64
	CreatedBy     identity.ID
	MaxUses       uint32
	UsesRemaining uint32
	CreatedAt     int64
}

// Connection is the canonicalized pairwise company relation.
// CompanyA is always < CompanyB.
type Connection struct {
	ID                 uint64
	CompanyA           uint64
	CompanyB           uint64
	Status             ConnectionStatus
	RequestedBy        identity.ID
	RequestedByCompany uint64
	InitialMessage     string
	BlockingCompanyID  *uint64
	CreatedAt          int64
	UpdatedAt          int64
}

// Other returns the company on the far side of the pair from company.
// Panics if company is not part of the connection — callers are expected
// to have already established membership via IsParty.
func (c Connection) Other(company uint64) uint64 {
	switch company {
	case c.CompanyA:
		return c.CompanyB
	case c.CompanyB:
		return c.CompanyA
	default:
		panic("connection: company is not a party to this connection")
	}
}

func (c Connection) IsParty(company uint64) bool {
	return c.CompanyA == company || c.CompanyB == company
}

// ConnectionChat is a message exchanged within a Connection.
type ConnectionChat struct {
	ID           uint64
	ConnectionID uint64
	Sender       identity.ID
	Text         string
	CreatedAt    int64
}

// Project is a multi-company collaboration owned by one company.
type Project struct {
	ID             uint64
	OwnerCompanyID uint64
	Name           string
	Description    string
	CreatedAt      int64
}

// ProjectMember relates a company to a Project with a lifecycle status.
type ProjectMember struct {
	ID         uint64
	ProjectID  uint64
	CompanyID  uint64
	Status     ProjectMemberStatus
	InvitedAt  int64
	UpdatedAt  int64
}

// ProjectChat is a message sent within a Project by an Accepted member's
// company.
type ProjectChat struct {
	ID        uint64
	ProjectID uint64
	Sender    identity.ID
	Text      string
	CreatedAt int64
}

// Notification is a typed, recipient-scoped event record.
type Notification struct {
	ID               uint64
	RecipientIdentity identity.ID
	CompanyID        uint64
	Type             NotificationType
	Title            string
	Body             string
	IsRead           bool
	CreatedAt        int64
}
