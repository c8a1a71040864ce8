package engine

import (
	"context"

	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/models"
	"github.com/tradecircle/backend/pkg/store"
	"github.com/tradecircle/backend/pkg/validate"
)

// CreateCompany registers a new company owned by caller and makes it
// caller's active company.
func (e *Engine) CreateCompany(ctx context.Context, caller identity.ID, name, slug, location string) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		name = validate.Trimmed(name)
		slug = validate.NormalizeSlug(slug)
		location = validate.Trimmed(location)

		if err := requireNonEmptyMax(name, validate.MaxCompanyName, ErrCompanyNameEmpty, ErrCompanyNameTooLong); err != nil {
			return err
		}
		if !validate.NotEmpty(slug) {
			return ErrSlugEmpty
		}
		if !validate.ValidSlug(slug) {
			return ErrSlugInvalid
		}
		if !validate.MaxLen(slug, validate.MaxSlug) {
			return ErrSlugTooLong
		}
		if err := requireNonEmptyMax(location, validate.MaxLocation, ErrLocationEmpty, ErrLocationTooLong); err != nil {
			return err
		}
		if _, taken := tx.GetCompanyBySlug(slug); taken {
			return ErrSlugTaken
		}

		now := e.clock.NowMicros()
		company := &models.Company{
			ID:        tx.NextCompanyID(),
			Name:      name,
			Slug:      slug,
			Location:  location,
			CreatedAt: now,
		}
		tx.PutCompany(company)
		tx.PutCapability(&models.Capability{CompanyID: company.ID})

		membership := &models.Membership{
			ID:        tx.NextMembershipID(),
			Identity:  caller,
			CompanyID: company.ID,
			Role:      models.RoleOwner,
			JoinedAt:  now,
		}
		tx.PutMembership(membership)

		ac.Account.ActiveCompanyID = &company.ID
		tx.PutAccount(ac.Account)
		return nil
	})
}

// UpdateCompanyProfile rewrites caller's active company's public
// profile fields. Requires a can-manage role.
func (e *Engine) UpdateCompanyProfile(ctx context.Context, caller identity.ID, name, slug, location, bio string, isPublic bool, kvkNumber string) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		name = validate.Trimmed(name)
		slug = validate.NormalizeSlug(slug)
		location = validate.Trimmed(location)
		bio = validate.Trimmed(bio)
		kvkNumber = validate.Trimmed(kvkNumber)

		if err := requireNonEmptyMax(name, validate.MaxCompanyName, ErrCompanyNameEmpty, ErrCompanyNameTooLong); err != nil {
			return err
		}
		if !validate.NotEmpty(slug) {
			return ErrSlugEmpty
		}
		if !validate.ValidSlug(slug) {
			return ErrSlugInvalid
		}
		if !validate.MaxLen(slug, validate.MaxSlug) {
			return ErrSlugTooLong
		}
		if err := requireNonEmptyMax(location, validate.MaxLocation, ErrLocationEmpty, ErrLocationTooLong); err != nil {
			return err
		}
		if err := requireMax(bio, validate.MaxBio, ErrBioTooLong); err != nil {
			return err
		}
		if err := requireMax(kvkNumber, validate.MaxKVKNumber, ErrKVKTooLong); err != nil {
			return err
		}
		if existing, taken := tx.GetCompanyBySlug(slug); taken && existing.ID != ac.Company.ID {
			return ErrSlugTaken
		}

		c := ac.Company
		c.Name, c.Slug, c.Location, c.Bio, c.IsPublic, c.KVKNumber = name, slug, location, bio, isPublic, kvkNumber
		tx.PutCompany(c)
		return nil
	})
}

// UpdateCapabilities overwrites the capability flags of caller's active
// company. Requires a can-manage role.
func (e *Engine) UpdateCapabilities(ctx context.Context, caller identity.ID, canInstall, hasCNC, hasLargeFormat, hasBucketTruck bool) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireCanManage(ac); err != nil {
			return err
		}
		tx.PutCapability(&models.Capability{
			CompanyID:      ac.Company.ID,
			CanInstall:     canInstall,
			HasCNC:         hasCNC,
			HasLargeFormat: hasLargeFormat,
			HasBucketTruck: hasBucketTruck,
		})
		return nil
	})
}

// SwitchActiveCompany makes companyID caller's active company. Rejected
// if caller has no accepted membership in that company.
func (e *Engine) SwitchActiveCompany(ctx context.Context, caller identity.ID, companyID uint64) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		m, ok := tx.GetMembership(caller, companyID)
		if !ok || m.Role.IsPending() {
			return ErrNotPermitted
		}
		ac.Account.ActiveCompanyID = &companyID
		tx.PutAccount(ac.Account)
		return nil
	})
}

// DeleteCompany permanently removes caller's active company and
// everything scoped to it. Only the owner may call it, and it succeeds
// unconditionally regardless of remaining non-owner memberships (see
// DESIGN.md).
func (e *Engine) DeleteCompany(ctx context.Context, caller identity.ID) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		if err := requireOwner(ac); err != nil {
			return err
		}
		audit(caller, ac.Company.ID, "delete_company", ac.Company.Name)
		cascadeDeleteCompany(tx, ac.Company.ID)
		return nil
	})
}
