package engine

import (
	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/store"
)

// This file centralizes cascade deletion: a small set of declarative
// functions invoked whenever a parent row disappears, kept out of the
// per-operation handlers since the combinatorics of deleting a company
// touch nearly every table and scattering that logic across handlers
// would make it unmaintainable.

// cascadeDeleteConnection removes every ConnectionChat row belonging to
// connectionID, then the Connection itself.
func cascadeDeleteConnection(tx store.Tx, connectionID uint64) {
	tx.DeleteConnectionChatsByConnection(connectionID)
	tx.DeleteConnection(connectionID)
}

// cascadeDeleteProject removes every ProjectMember and ProjectChat row
// for projectID, then the Project itself.
func cascadeDeleteProject(tx store.Tx, projectID uint64) {
	for _, m := range tx.ListProjectMembersByProject(projectID) {
		tx.DeleteProjectMember(m.ID)
	}
	tx.DeleteProjectChatsByProject(projectID)
	tx.DeleteProject(projectID)
}

// cascadeDeleteCompany implements the full company deletion fan-out:
// Capability, Memberships, InviteCodes, Connections (+ their chats),
// owned Projects (recursively cascaded), foreign ProjectMember rows,
// scoped Notifications, active_company_id references, and finally the
// Company row itself. ProjectChat rows sent by the company's members in
// projects it did not own are not deleted.
func cascadeDeleteCompany(tx store.Tx, companyID uint64) {
	tx.DeleteCapability(companyID)

	deleteNotificationsForCompany(tx, companyID)

	for _, code := range tx.ListInviteCodesByCompany(companyID) {
		tx.DeleteInviteCode(code.Code)
	}

	for _, conn := range tx.ListConnectionsByCompany(companyID) {
		cascadeDeleteConnection(tx, conn.ID)
	}

	for _, pm := range tx.ListProjectMembersByCompany(companyID) {
		project, ok := tx.GetProject(pm.ProjectID)
		if ok && project.OwnerCompanyID == companyID {
			continue // handled by the owned-project sweep below
		}
		tx.DeleteProjectMember(pm.ID)
	}

	for _, pm := range tx.ListProjectMembersByCompany(companyID) {
		project, ok := tx.GetProject(pm.ProjectID)
		if ok && project.OwnerCompanyID == companyID {
			cascadeDeleteProject(tx, project.ID)
		}
	}

	for _, acct := range tx.ListAccountsByActiveCompany(companyID) {
		acct.ActiveCompanyID = nil
		tx.PutAccount(acct)
	}

	for _, m := range tx.ListMembershipsByCompany(companyID) {
		tx.DeleteMembership(m.ID)
	}

	tx.DeleteCompany(companyID)
}

// deleteNotificationsForCompany removes every notification scoped to
// companyID regardless of whether its recipient is still a member —
// a notification sent to a colleague who was removed before the
// company itself was deleted must not survive as an orphan.
func deleteNotificationsForCompany(tx store.Tx, companyID uint64) {
	for _, n := range tx.ListNotificationsByCompany(companyID) {
		tx.DeleteNotification(n.ID)
	}
}

// reassignActiveCompanyOnRemoval keeps an account's active company
// pointer valid: when a membership is deleted and it was the account's
// active company, switch to any remaining non-Pending membership
// (smallest id), else null.
func reassignActiveCompanyOnRemoval(tx store.Tx, id identity.ID, removedCompanyID uint64) {
	account, ok := tx.GetAccount(id)
	if !ok || account.ActiveCompanyID == nil || *account.ActiveCompanyID != removedCompanyID {
		return
	}
	var best *uint64
	var bestMembershipID uint64
	for _, m := range tx.ListMembershipsByIdentity(id) {
		if m.Role.IsPending() {
			continue
		}
		cid := m.CompanyID
		if best == nil || m.ID < bestMembershipID {
			best = &cid
			bestMembershipID = m.ID
		}
	}
	account.ActiveCompanyID = best
	tx.PutAccount(account)
}
