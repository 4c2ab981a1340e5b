// internal/repository/call.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CallFilter narrows a call listing. Nil fields are ignored.
type CallFilter struct {
	ProjectID *uuid.UUID
	ExpertID  *uuid.UUID
	Status    *model.EngagementStatus
}

type CallRepository struct {
	db *gorm.DB
}

func NewCallRepository(db *gorm.DB) *CallRepository {
	return &CallRepository{db: db}
}

func (r *CallRepository) Create(ctx context.Context, call *model.Call) error {
	if err := r.db.WithContext(ctx).Create(call).Error; err != nil {
		return fmt.Errorf("failed to create call: %w", translateError(err, domain.ErrCallNotFound))
	}
	return nil
}

func (r *CallRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Call, error) {
	return findByID[model.Call](ctx, r.db, id, domain.ErrCallNotFound)
}

func (r *CallRepository) Find(ctx context.Context, filter CallFilter) ([]model.Call, error) {
	query := r.db.WithContext(ctx)
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.ExpertID != nil {
		query = query.Where("expert_id = ?", *filter.ExpertID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var calls []model.Call
	if err := query.Find(&calls).Error; err != nil {
		return nil, fmt.Errorf("failed to find calls: %w", err)
	}
	return calls, nil
}

func (r *CallRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateFields[model.Call](ctx, r.db, id, fields, domain.ErrCallNotFound)
}

func (r *CallRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.Call](ctx, r.db, id, domain.ErrCallNotFound)
}
