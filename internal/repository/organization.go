// internal/repository/organization.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *model.Organization) error {
	if err := r.db.WithContext(ctx).Create(org).Error; err != nil {
		return fmt.Errorf("failed to create organization: %w", translateError(err, domain.ErrOrganizationNotFound))
	}
	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	return findByID[model.Organization](ctx, r.db, id, domain.ErrOrganizationNotFound)
}

func (r *OrganizationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Organization, error) {
	orgs, err := findByIDs[model.Organization](ctx, r.db, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find organizations: %w", err)
	}
	return orgs, nil
}

// FindAll returns all organizations ordered by name
func (r *OrganizationRepository) FindAll(ctx context.Context) ([]model.Organization, error) {
	var orgs []model.Organization
	result := r.db.WithContext(ctx).Order("name ASC").Find(&orgs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find all organizations: %w", result.Error)
	}
	return orgs, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateFields[model.Organization](ctx, r.db, id, fields, domain.ErrOrganizationNotFound)
}

// Delete removes the organization and its contacts. It refuses while any
// outreach or meeting still points at the organization.
func (r *OrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findByID[model.Organization](ctx, tx, id, domain.ErrOrganizationNotFound); err != nil {
			return err
		}

		inUse, err := referenced(tx, "organization_id = ?", id)
		if err != nil {
			return err
		}
		if inUse {
			return domain.ErrOrganizationInUse
		}

		if err := tx.Where("organization_id = ?", id).Delete(&model.Contact{}).Error; err != nil {
			return fmt.Errorf("failed to delete contacts: %w", err)
		}
		if err := tx.Delete(&model.Organization{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete organization: %w", err)
		}
		return nil
	})
}

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", translateError(err, domain.ErrContactNotFound))
	}
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Contact, error) {
	return findByID[model.Contact](ctx, r.db, id, domain.ErrContactNotFound)
}

func (r *ContactRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Contact, error) {
	contacts, err := findByIDs[model.Contact](ctx, r.db, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find contacts: %w", err)
	}
	return contacts, nil
}

// FindByOrganization lists contacts ordered by name. A nil organization id
// lists every contact.
func (r *ContactRepository) FindByOrganization(ctx context.Context, orgID *uuid.UUID) ([]model.Contact, error) {
	query := r.db.WithContext(ctx)
	if orgID != nil {
		query = query.Where("organization_id = ?", *orgID)
	}

	var contacts []model.Contact
	if err := query.Order("name ASC").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to find contacts: %w", err)
	}
	return contacts, nil
}

func (r *ContactRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateFields[model.Contact](ctx, r.db, id, fields, domain.ErrContactNotFound)
}

// Delete removes a contact nothing refers to.
func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findByID[model.Contact](ctx, tx, id, domain.ErrContactNotFound); err != nil {
			return err
		}

		inUse, err := referenced(tx, "contact_id = ?", id)
		if err != nil {
			return err
		}
		if inUse {
			return domain.ErrContactInUse
		}

		if err := tx.Delete(&model.Contact{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete contact: %w", err)
		}
		return nil
	})
}

// referenced reports whether any outreach or meeting matches the condition.
func referenced(tx *gorm.DB, query string, id uuid.UUID) (bool, error) {
	outreach, err := count[model.Outreach](tx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to count outreach: %w", err)
	}
	if outreach > 0 {
		return true, nil
	}

	meetings, err := count[model.Meeting](tx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to count meetings: %w", err)
	}
	return meetings > 0, nil
}
