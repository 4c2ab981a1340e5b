// internal/repository/activity_log.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLogRepository handles database operations for activity logs
type ActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{
		db: db,
	}
}

// Create inserts a new activity log entry
func (r *ActivityLogRepository) Create(ctx context.Context, log *model.ActivityLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}

	result := r.db.WithContext(ctx).Create(log)
	if result.Error != nil {
		return fmt.Errorf("failed to create activity log: %w", result.Error)
	}

	return nil
}

// FindByID retrieves an activity log entry by its ID
func (r *ActivityLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ActivityLog, error) {
	return findByID[model.ActivityLog](ctx, r.db, id, domain.ErrActivityLogNotFound)
}

// QueryParams holds parameters for querying activity logs
type QueryParams struct {
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	ActorID    *uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	Limit      int
	Offset     int
}

// DefaultQueryLimit caps a query that does not ask for a limit.
const DefaultQueryLimit = 100

// Query retrieves activity logs matching params, newest first, along with
// the total number of matches.
func (r *ActivityLogRepository) Query(ctx context.Context, params QueryParams) ([]model.ActivityLog, int64, error) {
	var logs []model.ActivityLog
	var count int64

	query := r.db.WithContext(ctx).Model(&model.ActivityLog{})

	if params.Action != "" {
		query = query.Where("action = ?", params.Action)
	}
	if params.EntityType != "" {
		query = query.Where("entity_type = ?", params.EntityType)
	}
	if params.EntityID != nil {
		query = query.Where("entity_id = ?", *params.EntityID)
	}
	if params.ActorID != nil {
		query = query.Where("actor_id = ?", *params.ActorID)
	}
	if !params.StartTime.IsZero() {
		query = query.Where("timestamp >= ?", params.StartTime)
	}
	if !params.EndTime.IsZero() {
		query = query.Where("timestamp <= ?", params.EndTime)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	query = query.Limit(limit)
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	result := query.Order("timestamp DESC").Find(&logs)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to query activity logs: %w", result.Error)
	}

	return logs, count, nil
}
