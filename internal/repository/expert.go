// internal/repository/expert.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpertRepository struct {
	db *gorm.DB
}

func NewExpertRepository(db *gorm.DB) *ExpertRepository {
	return &ExpertRepository{db: db}
}

func (r *ExpertRepository) Create(ctx context.Context, expert *model.Expert) error {
	if err := r.db.WithContext(ctx).Create(expert).Error; err != nil {
		return fmt.Errorf("failed to create expert: %w", translateError(err, domain.ErrExpertNotFound))
	}
	return nil
}

func (r *ExpertRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Expert, error) {
	return findByID[model.Expert](ctx, r.db, id, domain.ErrExpertNotFound)
}

// FindByIDs returns the experts that exist among ids, in no particular order.
func (r *ExpertRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Expert, error) {
	experts, err := findByIDs[model.Expert](ctx, r.db, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find experts: %w", err)
	}
	return experts, nil
}

// FindByProject lists a project's experts, optionally narrowed to one status.
func (r *ExpertRepository) FindByProject(ctx context.Context, projectID uuid.UUID, status *model.ExpertStatus) ([]model.Expert, error) {
	query := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var experts []model.Expert
	if err := query.Order("name ASC").Find(&experts).Error; err != nil {
		return nil, fmt.Errorf("failed to find experts: %w", err)
	}
	return experts, nil
}

// CountByStatus returns how many of a project's experts are in each status.
// Statuses with no experts are absent from the map.
func (r *ExpertRepository) CountByStatus(ctx context.Context, projectID uuid.UUID) (map[model.ExpertStatus]int64, error) {
	var rows []struct {
		Status model.ExpertStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Expert{}).
		Select("status, COUNT(*) AS count").
		Where("project_id = ?", projectID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count experts by status: %w", err)
	}

	counts := make(map[model.ExpertStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *ExpertRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateFields[model.Expert](ctx, r.db, id, fields, domain.ErrExpertNotFound)
}

// Delete removes the expert and every call scheduled with them.
func (r *ExpertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findByID[model.Expert](ctx, tx, id, domain.ErrExpertNotFound); err != nil {
			return err
		}

		if err := tx.Where("expert_id = ?", id).Delete(&model.Call{}).Error; err != nil {
			return fmt.Errorf("failed to delete calls: %w", err)
		}
		if err := tx.Delete(&model.Expert{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete expert: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
