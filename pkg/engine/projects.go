package engine

import (
	"context"
	"fmt"

	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/models"
	"github.com/tradecircle/backend/pkg/store"
	"github.com/tradecircle/backend/pkg/validate"
)

// CreateProject creates a new project owned by caller's active company,
// with caller's company as its first accepted member.
func (e *Engine) CreateProject(ctx context.Context, caller identity.ID, name, description string) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		name = validate.Trimmed(name)
		description = validate.Trimmed(description)
		if err := requireNonEmptyMax(name, validate.MaxProjectName, ErrProjectNameEmpty, ErrProjectNameTooLong); err != nil {
			return err
		}
		if err := requireMax(description, validate.MaxProjectDescription, ErrProjectDescriptionTooLong); err != nil {
			return err
		}

		now := e.clock.NowMicros()
		project := &models.Project{
			ID:             tx.NextProjectID(),
			OwnerCompanyID: ac.Company.ID,
			Name:           name,
			Description:    description,
			CreatedAt:      now,
		}
		tx.PutProject(project)
		tx.PutProjectMember(&models.ProjectMember{
			ID:        tx.NextProjectMemberID(),
			ProjectID: project.ID,
			CompanyID: ac.Company.ID,
			Status:    models.ProjectMemberAccepted,
			InvitedAt: now,
			UpdatedAt: now,
		})
		return nil
	})
}

// InviteToProject invites targetCompanyID to a project owned by
// caller's active company. Requires an accepted connection between the
// two companies.
func (e *Engine) InviteToProject(ctx context.Context, caller identity.ID, projectID, targetCompanyID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		project, ok := tx.GetProject(projectID)
		if !ok {
			return ErrProjectNotFound
		}
		if project.OwnerCompanyID != ac.Company.ID {
			return ErrOnlyOwnerCompanyCanInvite
		}
		if targetCompanyID == ac.Company.ID {
			return ErrCannotInviteOwnCompany
		}
		conn, ok := tx.GetConnectionByPair(ac.Company.ID, targetCompanyID)
		if !ok || conn.Status != models.ConnectionAccepted {
			return ErrNoAcceptedConnection
		}

		now := e.clock.NowMicros()
		existing, ok := tx.GetProjectMember(projectID, targetCompanyID)
		if ok {
			switch existing.Status {
			case models.ProjectMemberInvited, models.ProjectMemberAccepted:
				return ErrAlreadyInvited
			default:
				existing.Status = models.ProjectMemberInvited
				existing.UpdatedAt = now
				tx.PutProjectMember(existing)
			}
		} else {
			tx.PutProjectMember(&models.ProjectMember{
				ID:        tx.NextProjectMemberID(),
				ProjectID: projectID,
				CompanyID: targetCompanyID,
				Status:    models.ProjectMemberInvited,
				InvitedAt: now,
				UpdatedAt: now,
			})
		}

		e.notifyManagers(tx, targetCompanyID, models.NotificationProjectInvite,
			"Project invitation", fmt.Sprintf("%s invited you to project %q", ac.Company.Name, project.Name))
		return nil
	})
}

// AcceptProjectInvite accepts a pending invite to projectID on behalf
// of caller's active company.
func (e *Engine) AcceptProjectInvite(ctx context.Context, caller identity.ID, projectID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		project, pm, err := requireInvitedMember(tx, projectID, ac)
		if err != nil {
			return err
		}
		pm.Status = models.ProjectMemberAccepted
		pm.UpdatedAt = e.clock.NowMicros()
		tx.PutProjectMember(pm)

		e.notifyManagers(tx, project.OwnerCompanyID, models.NotificationProjectAccepted,
			"Project invite accepted", fmt.Sprintf("%s joined project %q", ac.Company.Name, project.Name))
		return nil
	})
}

// DeclineProjectInvite declines a pending invite to projectID on behalf
// of caller's active company.
func (e *Engine) DeclineProjectInvite(ctx context.Context, caller identity.ID, projectID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		project, pm, err := requireInvitedMember(tx, projectID, ac)
		if err != nil {
			return err
		}
		pm.Status = models.ProjectMemberDeclined
		pm.UpdatedAt = e.clock.NowMicros()
		tx.PutProjectMember(pm)

		e.notifyManagers(tx, project.OwnerCompanyID, models.NotificationProjectDeclined,
			"Project invite declined", fmt.Sprintf("%s declined project %q", ac.Company.Name, project.Name))
		return nil
	})
}

func requireInvitedMember(tx store.Tx, projectID uint64, ac *AuthContext) (*models.Project, *models.ProjectMember, error) {
	project, ok := tx.GetProject(projectID)
	if !ok {
		return nil, nil, ErrProjectNotFound
	}
	pm, ok := tx.GetProjectMember(projectID, ac.Company.ID)
	if !ok || pm.Status != models.ProjectMemberInvited {
		return nil, nil, ErrNoPendingInvite
	}
	return project, pm, nil
}

// KickFromProject removes targetCompanyID from projectID. Only the
// project's owner company may call it.
func (e *Engine) KickFromProject(ctx context.Context, caller identity.ID, projectID, targetCompanyID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		project, ok := tx.GetProject(projectID)
		if !ok {
			return ErrProjectNotFound
		}
		if project.OwnerCompanyID != ac.Company.ID {
			return ErrNotPermitted
		}
		if targetCompanyID == ac.Company.ID {
			return ErrCannotKickSelf
		}
		pm, ok := tx.GetProjectMember(projectID, targetCompanyID)
		if !ok {
			return ErrTargetNotInCompany
		}
		pm.Status = models.ProjectMemberKicked
		pm.UpdatedAt = e.clock.NowMicros()
		tx.PutProjectMember(pm)

		e.notifyManagers(tx, targetCompanyID, models.NotificationProjectKicked,
			"Removed from project", fmt.Sprintf("You were removed from project %q", project.Name))
		return nil
	})
}

// LeaveProject removes caller's active company from projectID. The
// owner company cannot leave its own project; it must delete it.
func (e *Engine) LeaveProject(ctx context.Context, caller identity.ID, projectID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		project, ok := tx.GetProject(projectID)
		if !ok {
			return ErrProjectNotFound
		}
		if project.OwnerCompanyID == ac.Company.ID {
			return ErrOwnerCannotLeave
		}
		pm, ok := tx.GetProjectMember(projectID, ac.Company.ID)
		if !ok {
			return ErrNotAcceptedMember
		}
		pm.Status = models.ProjectMemberLeft
		pm.UpdatedAt = e.clock.NowMicros()
		tx.PutProjectMember(pm)

		e.notifyManagers(tx, project.OwnerCompanyID, models.NotificationProjectLeft,
			"Company left project", fmt.Sprintf("%s left project %q", ac.Company.Name, project.Name))
		return nil
	})
}

// DeleteProject permanently removes projectID and its members and
// chat history. Only the owner company may call it.
func (e *Engine) DeleteProject(ctx context.Context, caller identity.ID, projectID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		project, ok := tx.GetProject(projectID)
		if !ok {
			return ErrProjectNotFound
		}
		if project.OwnerCompanyID != ac.Company.ID {
			return ErrNotPermitted
		}
		cascadeDeleteProject(tx, projectID)
		return nil
	})
}
