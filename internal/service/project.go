package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/audit"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/google/uuid"
)

type ProjectService struct {
	base
}

func NewProjectService(store *repository.Store, logger audit.Logger) *ProjectService {
	return &ProjectService{base: newBase(store, logger)}
}

type CreateProjectInput struct {
	Name              string  `json:"name" validate:"required"`
	Description       string  `json:"description"`
	Analyst           string  `json:"analyst"`
	ResearchAssociate string  `json:"research_associate"`
	StartDate         *string `json:"start_date" validate:"omitnil,datetime=2006-01-02"`
}

func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*model.Project, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:              input.Name,
		Description:       input.Description,
		Analyst:           input.Analyst,
		ResearchAssociate: input.ResearchAssociate,
		StartDate:         input.StartDate,
	}
	if err := s.store.Projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.record(ctx, model.ActionCreate, model.EntityProject, project.ID, map[string]any{"name": project.Name})
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return s.store.Projects.FindByID(ctx, id)
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.store.Projects.FindAll(ctx)
}

type UpdateProjectInput struct {
	Name              *string `json:"name" validate:"omitnil,min=1"`
	Description       *string `json:"description"`
	Analyst           *string `json:"analyst"`
	ResearchAssociate *string `json:"research_associate"`
	StartDate         *string `json:"start_date" validate:"omitnil,datetime=2006-01-02"`
}

func (in UpdateProjectInput) fields() map[string]any {
	f := make(map[string]any)
	setIf(f, "name", in.Name)
	setIf(f, "description", in.Description)
	setIf(f, "analyst", in.Analyst)
	setIf(f, "research_associate", in.ResearchAssociate)
	setIf(f, "start_date", in.StartDate)
	return f
}

func (s *ProjectService) UpdateProject(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*model.Project, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	fields := input.fields()
	if err := s.store.Projects.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityProject, id, fields)
	return s.store.Projects.FindByID(ctx, id)
}

// DeleteProject removes the project with all of its calls, experts and
// network groups.
func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	s.record(ctx, model.ActionDelete, model.EntityProject, id, nil)
	return nil
}

type CreateNetworkGroupInput struct {
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Email       string    `json:"email" validate:"omitempty,email"`
}

func (s *ProjectService) CreateNetworkGroup(ctx context.Context, input CreateNetworkGroupInput) (*model.ExpertNetworkGroup, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.store.Projects.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	group := &model.ExpertNetworkGroup{
		ProjectID:   input.ProjectID,
		Name:        input.Name,
		Description: input.Description,
		Email:       input.Email,
	}
	if err := s.store.NetworkGroups.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("creating network group: %w", err)
	}

	s.record(ctx, model.ActionCreate, model.EntityNetworkGroup, group.ID, map[string]any{
		"project_id": group.ProjectID,
		"name":       group.Name,
	})
	return group, nil
}

func (s *ProjectService) GetNetworkGroup(ctx context.Context, id uuid.UUID) (*model.ExpertNetworkGroup, error) {
	return s.store.NetworkGroups.FindByID(ctx, id)
}

func (s *ProjectService) ListNetworkGroups(ctx context.Context, projectID uuid.UUID) ([]model.ExpertNetworkGroup, error) {
	if _, err := s.store.Projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.store.NetworkGroups.FindByProject(ctx, projectID)
}

type UpdateNetworkGroupInput struct {
	Name        *string `json:"name" validate:"omitnil,min=1"`
	Description *string `json:"description"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

func (s *ProjectService) UpdateNetworkGroup(ctx context.Context, id uuid.UUID, input UpdateNetworkGroupInput) (*model.ExpertNetworkGroup, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	setIf(fields, "name", input.Name)
	setIf(fields, "description", input.Description)
	setIf(fields, "email", input.Email)

	if err := s.store.NetworkGroups.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("updating network group: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityNetworkGroup, id, fields)
	return s.store.NetworkGroups.FindByID(ctx, id)
}

// DeleteNetworkGroup refuses while the group still has experts.
func (s *ProjectService) DeleteNetworkGroup(ctx context.Context, id uuid.UUID) error {
	if err := s.store.NetworkGroups.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting network group: %w", err)
	}

	s.record(ctx, model.ActionDelete, model.EntityNetworkGroup, id, nil)
	return nil
}
