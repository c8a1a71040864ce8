// Package memory is the in-process reference implementation of
// store.Store. It holds every table as a Go map guarded by a single
// mutex, giving strict serializability for free: a Tx holds the lock for
// its entire lifetime, so no two operations ever interleave. Only
// company slugs, (identity, company) membership pairs, canonical
// connection pairs and (project, company) member pairs are indexed; the
// List* lookups (by company, by identity, by recipient, by project) scan
// the whole table.
package memory

import (
	"context"
	"sync"

	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/models"
	"github.com/tradecircle/backend/pkg/store"
)

// Store is the in-memory backend. Zero value is not usable; use New().
type Store struct {
	mu sync.Mutex

	accounts map[identity.ID]*models.Account

	companies     map[uint64]*models.Company
	companyBySlug map[string]uint64
	nextCompanyID uint64

	capabilities map[uint64]*models.Capability

	memberships       map[uint64]*models.Membership
	membershipByPair  map[membershipKey]uint64
	nextMembershipID  uint64

	inviteCodes map[string]*models.InviteCode

	connections      map[uint64]*models.Connection
	connectionByPair map[pairKey]uint64
	nextConnectionID uint64

	connectionChats       map[uint64]*models.ConnectionChat
	nextConnectionChatID  uint64

	projects      map[uint64]*models.Project
	nextProjectID uint64

	projectMembers      map[uint64]*models.ProjectMember
	projectMemberByPair map[projectMemberKey]uint64
	nextProjectMemberID uint64

	projectChats      map[uint64]*models.ProjectChat
	nextProjectChatID uint64

	notifications      map[uint64]*models.Notification
	nextNotificationID uint64
}

type membershipKey struct {
	id  identity.ID
	cid uint64
}

type pairKey struct {
	a, b uint64
}

type projectMemberKey struct {
	projectID, companyID uint64
}

func New() *Store {
	return &Store{
		accounts:            make(map[identity.ID]*models.Account),
		companies:           make(map[uint64]*models.Company),
		companyBySlug:       make(map[string]uint64),
		capabilities:        make(map[uint64]*models.Capability),
		memberships:         make(map[uint64]*models.Membership),
		membershipByPair:    make(map[membershipKey]uint64),
		inviteCodes:         make(map[string]*models.InviteCode),
		connections:         make(map[uint64]*models.Connection),
		connectionByPair:    make(map[pairKey]uint64),
		connectionChats:     make(map[uint64]*models.ConnectionChat),
		projects:            make(map[uint64]*models.Project),
		projectMembers:      make(map[uint64]*models.ProjectMember),
		projectMemberByPair: make(map[projectMemberKey]uint64),
		projectChats:        make(map[uint64]*models.ProjectChat),
		notifications:       make(map[uint64]*models.Notification),
	}
}

// Tx runs fn while holding the store's lock. fn's returned error is
// propagated as-is; no writes are undone since callers validate before
// mutating (see pkg/engine), so no store mutation ever happens on a path
// that later fails.
func (s *Store) Tx(_ context.Context, fn func(store.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&tx{s: s})
}

type tx struct {
	s *Store
}

func (t *tx) GetAccount(id identity.ID) (*models.Account, bool) {
	a, ok := t.s.accounts[id]
	return a, ok
}

func (t *tx) PutAccount(a *models.Account) {
	cp := *a
	t.s.accounts[a.Identity] = &cp
}

func (t *tx) ListAccountsByActiveCompany(companyID uint64) []*models.Account {
	var out []*models.Account
	for _, a := range t.s.accounts {
		if a.ActiveCompanyID != nil && *a.ActiveCompanyID == companyID {
			out = append(out, a)
		}
	}
	return out
}

func (t *tx) GetCompany(id uint64) (*models.Company, bool) {
	c, ok := t.s.companies[id]
	return c, ok
}

func (t *tx) GetCompanyBySlug(slug string) (*models.Company, bool) {
	id, ok := t.s.companyBySlug[slug]
	if !ok {
		return nil, false
	}
	return t.GetCompany(id)
}

func (t *tx) PutCompany(c *models.Company) {
	if existing, ok := t.s.companies[c.ID]; ok && existing.Slug != c.Slug {
		delete(t.s.companyBySlug, existing.Slug)
	}
	cp := *c
	t.s.companies[c.ID] = &cp
	t.s.companyBySlug[c.Slug] = c.ID
}

func (t *tx) DeleteCompany(id uint64) {
	if c, ok := t.s.companies[id]; ok {
		delete(t.s.companyBySlug, c.Slug)
	}
	delete(t.s.companies, id)
}

func (t *tx) NextCompanyID() uint64 {
	t.s.nextCompanyID++
	return t.s.nextCompanyID
}

func (t *tx) GetCapability(companyID uint64) (*models.Capability, bool) {
	c, ok := t.s.capabilities[companyID]
	return c, ok
}

func (t *tx) PutCapability(c *models.Capability) {
	cp := *c
	t.s.capabilities[c.CompanyID] = &cp
}

func (t *tx) DeleteCapability(companyID uint64) {
	delete(t.s.capabilities, companyID)
}

func (t *tx) GetMembership(id identity.ID, companyID uint64) (*models.Membership, bool) {
	mid, ok := t.s.membershipByPair[membershipKey{id: id, cid: companyID}]
	if !ok {
		return nil, false
	}
	return t.GetMembershipByID(mid)
}

func (t *tx) GetMembershipByID(id uint64) (*models.Membership, bool) {
	m, ok := t.s.memberships[id]
	return m, ok
}

func (t *tx) PutMembership(m *models.Membership) {
	cp := *m
	t.s.memberships[m.ID] = &cp
	t.s.membershipByPair[membershipKey{id: m.Identity, cid: m.CompanyID}] = m.ID
}

func (t *tx) DeleteMembership(id uint64) {
	if m, ok := t.s.memberships[id]; ok {
		delete(t.s.membershipByPair, membershipKey{id: m.Identity, cid: m.CompanyID})
	}
	delete(t.s.memberships, id)
}

func (t *tx) ListMembershipsByCompany(companyID uint64) []*models.Membership {
	var out []*models.Membership
	for _, m := range t.s.memberships {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	return out
}

func (t *tx) ListMembershipsByIdentity(id identity.ID) []*models.Membership {
	var out []*models.Membership
	for _, m := range t.s.memberships {
		if m.Identity == id {
			out = append(out, m)
		}
	}
	return out
}

func (t *tx) NextMembershipID() uint64 {
	t.s.nextMembershipID++
	return t.s.nextMembershipID
}

func (t *tx) GetInviteCode(code string) (*models.InviteCode, bool) {
	c, ok := t.s.inviteCodes[code]
	return c, ok
}

func (t *tx) PutInviteCode(c *models.InviteCode) {
	cp := *c
	t.s.inviteCodes[c.Code] = &cp
}

func (t *tx) DeleteInviteCode(code string) {
	delete(t.s.inviteCodes, code)
}

func (t *tx) ListInviteCodesByCompany(companyID uint64) []*models.InviteCode {
	var out []*models.InviteCode
	for _, c := range t.s.inviteCodes {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out
}

func canonicalPair(a, b uint64) pairKey {
	if a < b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

func (t *tx) GetConnection(id uint64) (*models.Connection, bool) {
	c, ok := t.s.connections[id]
	return c, ok
}

func (t *tx) GetConnectionByPair(companyA, companyB uint64) (*models.Connection, bool) {
	id, ok := t.s.connectionByPair[canonicalPair(companyA, companyB)]
	if !ok {
		return nil, false
	}
	return t.GetConnection(id)
}

func (t *tx) PutConnection(c *models.Connection) {
	cp := *c
	t.s.connections[c.ID] = &cp
	t.s.connectionByPair[canonicalPair(c.CompanyA, c.CompanyB)] = c.ID
}

func (t *tx) DeleteConnection(id uint64) {
	if c, ok := t.s.connections[id]; ok {
		delete(t.s.connectionByPair, canonicalPair(c.CompanyA, c.CompanyB))
	}
	delete(t.s.connections, id)
}

func (t *tx) ListConnectionsByCompany(companyID uint64) []*models.Connection {
	var out []*models.Connection
	for _, c := range t.s.connections {
		if c.IsParty(companyID) {
			out = append(out, c)
		}
	}
	return out
}

func (t *tx) NextConnectionID() uint64 {
	t.s.nextConnectionID++
	return t.s.nextConnectionID
}

func (t *tx) PutConnectionChat(c *models.ConnectionChat) {
	cp := *c
	t.s.connectionChats[c.ID] = &cp
}

func (t *tx) ListConnectionChatsByConnection(connectionID uint64) []*models.ConnectionChat {
	var out []*models.ConnectionChat
	for _, c := range t.s.connectionChats {
		if c.ConnectionID == connectionID {
			out = append(out, c)
		}
	}
	return out
}

func (t *tx) DeleteConnectionChatsByConnection(connectionID uint64) {
	for id, c := range t.s.connectionChats {
		if c.ConnectionID == connectionID {
			delete(t.s.connectionChats, id)
		}
	}
}

func (t *tx) NextConnectionChatID() uint64 {
	t.s.nextConnectionChatID++
	return t.s.nextConnectionChatID
}

func (t *tx) GetProject(id uint64) (*models.Project, bool) {
	p, ok := t.s.projects[id]
	return p, ok
}

func (t *tx) PutProject(p *models.Project) {
	cp := *p
	t.s.projects[p.ID] = &cp
}

func (t *tx) DeleteProject(id uint64) {
	delete(t.s.projects, id)
}

func (t *tx) NextProjectID() uint64 {
	t.s.nextProjectID++
	return t.s.nextProjectID
}

func (t *tx) GetProjectMember(projectID, companyID uint64) (*models.ProjectMember, bool) {
	id, ok := t.s.projectMemberByPair[projectMemberKey{projectID: projectID, companyID: companyID}]
	if !ok {
		return nil, false
	}
	m, ok := t.s.projectMembers[id]
	return m, ok
}

func (t *tx) PutProjectMember(m *models.ProjectMember) {
	cp := *m
	t.s.projectMembers[m.ID] = &cp
	t.s.projectMemberByPair[projectMemberKey{projectID: m.ProjectID, companyID: m.CompanyID}] = m.ID
}

func (t *tx) DeleteProjectMember(id uint64) {
	if m, ok := t.s.projectMembers[id]; ok {
		delete(t.s.projectMemberByPair, projectMemberKey{projectID: m.ProjectID, companyID: m.CompanyID})
	}
	delete(t.s.projectMembers, id)
}

func (t *tx) ListProjectMembersByProject(projectID uint64) []*models.ProjectMember {
	var out []*models.ProjectMember
	for _, m := range t.s.projectMembers {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out
}

func (t *tx) ListProjectMembersByCompany(companyID uint64) []*models.ProjectMember {
	var out []*models.ProjectMember
	for _, m := range t.s.projectMembers {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	return out
}

func (t *tx) NextProjectMemberID() uint64 {
	t.s.nextProjectMemberID++
	return t.s.nextProjectMemberID
}

func (t *tx) PutProjectChat(c *models.ProjectChat) {
	cp := *c
	t.s.projectChats[c.ID] = &cp
}

func (t *tx) ListProjectChatsByProject(projectID uint64) []*models.ProjectChat {
	var out []*models.ProjectChat
	for _, c := range t.s.projectChats {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out
}

func (t *tx) DeleteProjectChatsByProject(projectID uint64) {
	for id, c := range t.s.projectChats {
		if c.ProjectID == projectID {
			delete(t.s.projectChats, id)
		}
	}
}

func (t *tx) NextProjectChatID() uint64 {
	t.s.nextProjectChatID++
	return t.s.nextProjectChatID
}

func (t *tx) GetNotification(id uint64) (*models.Notification, bool) {
	n, ok := t.s.notifications[id]
	return n, ok
}

func (t *tx) PutNotification(n *models.Notification) {
	cp := *n
	t.s.notifications[n.ID] = &cp
}

func (t *tx) DeleteNotification(id uint64) {
	delete(t.s.notifications, id)
}

func (t *tx) ListNotificationsByRecipientCompany(recipient identity.ID, companyID uint64) []*models.Notification {
	var out []*models.Notification
	for _, n := range t.s.notifications {
		if n.RecipientIdentity == recipient && n.CompanyID == companyID {
			out = append(out, n)
		}
	}
	return out
}

func (t *tx) ListNotificationsByCompany(companyID uint64) []*models.Notification {
	var out []*models.Notification
	for _, n := range t.s.notifications {
		if n.CompanyID == companyID {
			out = append(out, n)
		}
	}
	return out
}

func (t *tx) NextNotificationID() uint64 {
	t.s.nextNotificationID++
	return t.s.nextNotificationID
}
