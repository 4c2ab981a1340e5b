package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/audit"
	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/google/uuid"
)

type ExpertService struct {
	base
}

func NewExpertService(store *repository.Store, logger audit.Logger) *ExpertService {
	return &ExpertService{base: newBase(store, logger)}
}

type CreateExpertInput struct {
	ProjectID      uuid.UUID           `json:"project_id" validate:"required"`
	NetworkGroupID *uuid.UUID          `json:"network_group_id"`
	Name           string              `json:"name" validate:"required"`
	Biography      string              `json:"biography"`
	Cost           *float64            `json:"cost" validate:"omitnil,gte=0"`
	CostCurrency   string              `json:"cost_currency"`
	Email          string              `json:"email" validate:"omitempty,email"`
	Phone          string              `json:"phone"`
	Notes          string              `json:"notes"`
	Network        string              `json:"network"`
	Status         *model.ExpertStatus `json:"status" validate:"omitnil,enum"`
}

// CreateExpert adds an expert to a project. New experts start in
// "pending review" unless a status is given.
func (s *ExpertService) CreateExpert(ctx context.Context, input CreateExpertInput) (*model.Expert, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.store.Projects.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}
	if err := s.checkGroup(ctx, input.ProjectID, input.NetworkGroupID); err != nil {
		return nil, err
	}

	expert := &model.Expert{
		ProjectID:      input.ProjectID,
		NetworkGroupID: input.NetworkGroupID,
		Name:           input.Name,
		Biography:      input.Biography,
		Cost:           input.Cost,
		CostCurrency:   input.CostCurrency,
		Email:          input.Email,
		Phone:          input.Phone,
		Notes:          input.Notes,
		Network:        input.Network,
		Status:         model.ExpertPendingReview,
	}
	if input.Status != nil {
		expert.Status = *input.Status
	}

	if err := s.store.Experts.Create(ctx, expert); err != nil {
		return nil, fmt.Errorf("creating expert: %w", err)
	}

	s.record(ctx, model.ActionCreate, model.EntityExpert, expert.ID, map[string]any{
		"project_id": expert.ProjectID,
		"name":       expert.Name,
		"status":     expert.Status,
	})
	return expert, nil
}

// checkGroup verifies an optional network group exists within the project.
func (s *ExpertService) checkGroup(ctx context.Context, projectID uuid.UUID, groupID *uuid.UUID) error {
	if groupID == nil {
		return nil
	}
	group, err := s.store.NetworkGroups.FindByID(ctx, *groupID)
	if err != nil {
		return err
	}
	if group.ProjectID != projectID {
		return domain.ErrGroupProjectMismatch
	}
	return nil
}

func (s *ExpertService) GetExpert(ctx context.Context, id uuid.UUID) (*model.Expert, error) {
	return s.store.Experts.FindByID(ctx, id)
}

func (s *ExpertService) ListExperts(ctx context.Context, projectID uuid.UUID, status *model.ExpertStatus) ([]model.Expert, error) {
	if status != nil && !status.IsValid() {
		return nil, domain.Invalid("status", fmt.Sprintf("%q is not an allowed value", *status))
	}
	if _, err := s.store.Projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.store.Experts.FindByProject(ctx, projectID, status)
}

// ExpertStatusCounts tallies a project's experts. Every status is present.
type ExpertStatusCounts struct {
	Counts map[model.ExpertStatus]int64 `json:"counts"`
	Total  int64                        `json:"total"`
}

func (s *ExpertService) GetExpertStatusCounts(ctx context.Context, projectID uuid.UUID) (*ExpertStatusCounts, error) {
	if _, err := s.store.Projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	raw, err := s.store.Experts.CountByStatus(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := &ExpertStatusCounts{Counts: make(map[model.ExpertStatus]int64, len(model.ExpertStatuses))}
	for _, status := range model.ExpertStatuses {
		out.Counts[status] = raw[status]
		out.Total += raw[status]
	}
	return out, nil
}

type UpdateExpertInput struct {
	NetworkGroupID *uuid.UUID          `json:"network_group_id"`
	Name           *string             `json:"name" validate:"omitnil,min=1"`
	Biography      *string             `json:"biography"`
	Cost           *float64            `json:"cost" validate:"omitnil,gte=0"`
	CostCurrency   *string             `json:"cost_currency"`
	Email          *string             `json:"email" validate:"omitempty,email"`
	Phone          *string             `json:"phone"`
	Notes          *string             `json:"notes"`
	Network        *string             `json:"network"`
	Status         *model.ExpertStatus `json:"status" validate:"omitnil,enum"`
}

func (s *ExpertService) UpdateExpert(ctx context.Context, id uuid.UUID, input UpdateExpertInput) (*model.Expert, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.NetworkGroupID != nil {
		expert, err := s.store.Experts.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.checkGroup(ctx, expert.ProjectID, input.NetworkGroupID); err != nil {
			return nil, err
		}
	}

	fields := make(map[string]any)
	setIf(fields, "network_group_id", input.NetworkGroupID)
	setIf(fields, "name", input.Name)
	setIf(fields, "biography", input.Biography)
	setIf(fields, "cost", input.Cost)
	setIf(fields, "cost_currency", input.CostCurrency)
	setIf(fields, "email", input.Email)
	setIf(fields, "phone", input.Phone)
	setIf(fields, "notes", input.Notes)
	setIf(fields, "network", input.Network)
	setIf(fields, "status", input.Status)

	if err := s.store.Experts.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("updating expert: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityExpert, id, fields)
	return s.store.Experts.FindByID(ctx, id)
}

type UpdateExpertStatusInput struct {
	Status model.ExpertStatus `json:"status" validate:"required,enum"`
}

func (s *ExpertService) UpdateExpertStatus(ctx context.Context, id uuid.UUID, input UpdateExpertStatusInput) (uuid.UUID, error) {
	if err := validateInput(input); err != nil {
		return uuid.Nil, err
	}

	fields := map[string]any{"status": input.Status}
	if err := s.store.Experts.Update(ctx, id, fields); err != nil {
		return uuid.Nil, fmt.Errorf("updating expert status: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityExpert, id, fields)
	return id, nil
}

// DeleteExpert removes the expert and every call scheduled with them.
func (s *ExpertService) DeleteExpert(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Experts.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting expert: %w", err)
	}

	s.record(ctx, model.ActionDelete, model.EntityExpert, id, nil)
	return nil
}
