package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/audit"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/google/uuid"
)

// DirectoryService manages the organizations and contacts that trips reach
// out to.
type DirectoryService struct {
	base
}

func NewDirectoryService(store *repository.Store, logger audit.Logger) *DirectoryService {
	return &DirectoryService{base: newBase(store, logger)}
}

type CreateOrganizationInput struct {
	Name    string `json:"name" validate:"required"`
	Website string `json:"website" validate:"omitempty,url"`
	Notes   string `json:"notes"`
}

func (s *DirectoryService) CreateOrganization(ctx context.Context, input CreateOrganizationInput) (*model.Organization, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	org := &model.Organization{Name: input.Name, Website: input.Website, Notes: input.Notes}
	if err := s.store.Organizations.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	s.record(ctx, model.ActionCreate, model.EntityOrganization, org.ID, map[string]any{"name": org.Name})
	return org, nil
}

// OrganizationWithContacts is an organization and everyone on file there.
type OrganizationWithContacts struct {
	model.Organization
	Contacts []model.Contact `json:"contacts"`
}

func (s *DirectoryService) GetOrganization(ctx context.Context, id uuid.UUID) (*OrganizationWithContacts, error) {
	org, err := s.store.Organizations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	contacts, err := s.store.Contacts.FindByOrganization(ctx, &id)
	if err != nil {
		return nil, err
	}
	return &OrganizationWithContacts{Organization: *org, Contacts: contacts}, nil
}

func (s *DirectoryService) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	return s.store.Organizations.FindAll(ctx)
}

type UpdateOrganizationInput struct {
	Name    *string `json:"name" validate:"omitnil,min=1"`
	Website *string `json:"website" validate:"omitempty,url"`
	Notes   *string `json:"notes"`
}

func (s *DirectoryService) UpdateOrganization(ctx context.Context, id uuid.UUID, input UpdateOrganizationInput) (*model.Organization, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	setIf(fields, "name", input.Name)
	setIf(fields, "website", input.Website)
	setIf(fields, "notes", input.Notes)

	if err := s.store.Organizations.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("updating organization: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityOrganization, id, fields)
	return s.store.Organizations.FindByID(ctx, id)
}

// DeleteOrganization removes the organization and its contacts unless some
// outreach or meeting still refers to it.
func (s *DirectoryService) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Organizations.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting organization: %w", err)
	}

	s.record(ctx, model.ActionDelete, model.EntityOrganization, id, nil)
	return nil
}

type CreateContactInput struct {
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	Email          string    `json:"email" validate:"required,email"`
	Title          string    `json:"title"`
	Phone          string    `json:"phone"`
}

func (s *DirectoryService) CreateContact(ctx context.Context, input CreateContactInput) (*model.Contact, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.store.Organizations.FindByID(ctx, input.OrganizationID); err != nil {
		return nil, err
	}

	contact := &model.Contact{
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		Email:          input.Email,
		Title:          input.Title,
		Phone:          input.Phone,
	}
	if err := s.store.Contacts.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	s.record(ctx, model.ActionCreate, model.EntityContact, contact.ID, map[string]any{
		"organization_id": contact.OrganizationID,
		"name":            contact.Name,
	})
	return contact, nil
}

func (s *DirectoryService) GetContact(ctx context.Context, id uuid.UUID) (*model.Contact, error) {
	return s.store.Contacts.FindByID(ctx, id)
}

// ListContacts lists every contact, or only those at one organization.
func (s *DirectoryService) ListContacts(ctx context.Context, organizationID *uuid.UUID) ([]model.Contact, error) {
	return s.store.Contacts.FindByOrganization(ctx, organizationID)
}

type UpdateContactInput struct {
	Name  *string `json:"name" validate:"omitnil,min=1"`
	Email *string `json:"email" validate:"omitnil,email"`
	Title *string `json:"title"`
	Phone *string `json:"phone"`
}

func (s *DirectoryService) UpdateContact(ctx context.Context, id uuid.UUID, input UpdateContactInput) (*model.Contact, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	setIf(fields, "name", input.Name)
	setIf(fields, "email", input.Email)
	setIf(fields, "title", input.Title)
	setIf(fields, "phone", input.Phone)

	if err := s.store.Contacts.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("updating contact: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityContact, id, fields)
	return s.store.Contacts.FindByID(ctx, id)
}

func (s *DirectoryService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Contacts.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	s.record(ctx, model.ActionDelete, model.EntityContact, id, nil)
	return nil
}
