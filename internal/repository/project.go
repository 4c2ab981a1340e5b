// internal/repository/project.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", translateError(err, domain.ErrProjectNotFound))
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return findByID[model.Project](ctx, r.db, id, domain.ErrProjectNotFound)
}

// FindAll returns all projects ordered by name
func (r *ProjectRepository) FindAll(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to find projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateFields[model.Project](ctx, r.db, id, fields, domain.ErrProjectNotFound)
}

// Delete removes the project together with its calls, experts and network
// groups.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findByID[model.Project](ctx, tx, id, domain.ErrProjectNotFound); err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&model.Call{}).Error; err != nil {
			return fmt.Errorf("failed to delete calls: %w", err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Expert{}).Error; err != nil {
			return fmt.Errorf("failed to delete experts: %w", err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.ExpertNetworkGroup{}).Error; err != nil {
			return fmt.Errorf("failed to delete network groups: %w", err)
		}
		if err := tx.Delete(&model.Project{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

type NetworkGroupRepository struct {
	db *gorm.DB
}

func NewNetworkGroupRepository(db *gorm.DB) *NetworkGroupRepository {
	return &NetworkGroupRepository{db: db}
}

func (r *NetworkGroupRepository) Create(ctx context.Context, group *model.ExpertNetworkGroup) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return fmt.Errorf("failed to create network group: %w", translateError(err, domain.ErrNetworkGroupNotFound))
	}
	return nil
}

func (r *NetworkGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ExpertNetworkGroup, error) {
	return findByID[model.ExpertNetworkGroup](ctx, r.db, id, domain.ErrNetworkGroupNotFound)
}

func (r *NetworkGroupRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]model.ExpertNetworkGroup, error) {
	var groups []model.ExpertNetworkGroup
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("name ASC").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to find network groups: %w", err)
	}
	return groups, nil
}

func (r *NetworkGroupRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateFields[model.ExpertNetworkGroup](ctx, r.db, id, fields, domain.ErrNetworkGroupNotFound)
}

// Delete removes an empty network group. A group that still has experts is
// left untouched and ErrNetworkGroupHasExperts is returned.
func (r *NetworkGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findByID[model.ExpertNetworkGroup](ctx, tx, id, domain.ErrNetworkGroupNotFound); err != nil {
			return err
		}

		experts, err := count[model.Expert](tx, "network_group_id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to count experts: %w", err)
		}
		if experts > 0 {
			return domain.ErrNetworkGroupHasExperts
		}

		if err := tx.Delete(&model.ExpertNetworkGroup{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete network group: %w", err)
		}
		return nil
	})
}
