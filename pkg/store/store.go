// Package store defines the transactional KV interface the domain engine
// is written against: row-level CRUD with unique/secondary indexes over
// all eleven tables, wrapped in a serializable transaction. Two concrete
// backends implement it: store/memory (an in-process reference store
// used by the engine's own test suite and by cmd/server in development)
// and store/postgres (a lib/pq backed SQL store for production).
package store

import (
	"context"

	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/models"
)

// Store opens transactions. Every operation the engine exposes runs
// inside exactly one Tx.
type Store interface {
	Tx(ctx context.Context, fn func(Tx) error) error
}

// Tx is a single serializable transaction over all eleven tables. A Tx
// must not be retained past the call to fn that received it.
type Tx interface {
	// Accounts
	GetAccount(id identity.ID) (*models.Account, bool)
	PutAccount(a *models.Account)

	// Companies
	GetCompany(id uint64) (*models.Company, bool)
	GetCompanyBySlug(slug string) (*models.Company, bool)
	PutCompany(c *models.Company)
	DeleteCompany(id uint64)
	NextCompanyID() uint64

	// Capabilities
	GetCapability(companyID uint64) (*models.Capability, bool)
	PutCapability(c *models.Capability)
	DeleteCapability(companyID uint64)

	// Memberships
	GetMembership(id identity.ID, companyID uint64) (*models.Membership, bool)
	GetMembershipByID(id uint64) (*models.Membership, bool)
	PutMembership(m *models.Membership)
	DeleteMembership(id uint64)
	ListMembershipsByCompany(companyID uint64) []*models.Membership
	ListMembershipsByIdentity(id identity.ID) []*models.Membership
	NextMembershipID() uint64

	// Invite codes
	GetInviteCode(code string) (*models.InviteCode, bool)
	PutInviteCode(c *models.InviteCode)
	DeleteInviteCode(code string)
	ListInviteCodesByCompany(companyID uint64) []*models.InviteCode

	// Connections
	GetConnection(id uint64) (*models.Connection, bool)
	GetConnectionByPair(companyA, companyB uint64) (*models.Connection, bool)
	PutConnection(c *models.Connection)
	DeleteConnection(id uint64)
	ListConnectionsByCompany(companyID uint64) []*models.Connection
	NextConnectionID() uint64

	// Connection chat
	PutConnectionChat(c *models.ConnectionChat)
	ListConnectionChatsByConnection(connectionID uint64) []*models.ConnectionChat
	DeleteConnectionChatsByConnection(connectionID uint64)
	NextConnectionChatID() uint64

	// Projects
	GetProject(id uint64) (*models.Project, bool)
	PutProject(p *models.Project)
	DeleteProject(id uint64)
	NextProjectID() uint64

	// Project members
	GetProjectMember(projectID, companyID uint64) (*models.ProjectMember, bool)
	PutProjectMember(m *models.ProjectMember)
	DeleteProjectMember(id uint64)
	ListProjectMembersByProject(projectID uint64) []*models.ProjectMember
	ListProjectMembersByCompany(companyID uint64) []*models.ProjectMember
	NextProjectMemberID() uint64

	// Project chat
	PutProjectChat(c *models.ProjectChat)
	ListProjectChatsByProject(projectID uint64) []*models.ProjectChat
	DeleteProjectChatsByProject(projectID uint64)
	NextProjectChatID() uint64

	// Notifications
	GetNotification(id uint64) (*models.Notification, bool)
	PutNotification(n *models.Notification)
	DeleteNotification(id uint64)
	ListNotificationsByRecipientCompany(recipient identity.ID, companyID uint64) []*models.Notification
	ListNotificationsByCompany(companyID uint64) []*models.Notification
	NextNotificationID() uint64

	// Accounts scan, used only by cascade (find every account with a
	// given active_company_id). There is no dedicated index for this;
	// it is only ever walked during a company deletion.
	ListAccountsByActiveCompany(companyID uint64) []*models.Account
}
