package service

import (
	"context"
	"time"

	"github.com/dangerclosesec/fieldwork/internal/audit"
	"github.com/dangerclosesec/fieldwork/internal/auth"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/google/uuid"
)

// Ensure ActivityLogService implements the audit.Logger interface
var _ audit.Logger = (*ActivityLogService)(nil)

// ActivityLogService writes and reads the activity log
type ActivityLogService struct {
	repo *repository.ActivityLogRepository
	now  func() time.Time
}

// NewActivityLogService creates a new ActivityLogService
func NewActivityLogService(repo *repository.ActivityLogRepository) *ActivityLogService {
	return &ActivityLogService{
		repo: repo,
		now:  time.Now,
	}
}

// LogCreate logs a record creation
func (s *ActivityLogService) LogCreate(ctx context.Context, entityType string, entityID uuid.UUID, attributes map[string]any) error {
	return s.write(ctx, model.ActionCreate, entityType, entityID, attributes)
}

// LogUpdate logs the fields changed on a record
func (s *ActivityLogService) LogUpdate(ctx context.Context, entityType string, entityID uuid.UUID, changes map[string]any) error {
	return s.write(ctx, model.ActionUpdate, entityType, entityID, changes)
}

// LogDelete logs a record deletion
func (s *ActivityLogService) LogDelete(ctx context.Context, entityType string, entityID uuid.UUID, details map[string]any) error {
	return s.write(ctx, model.ActionDelete, entityType, entityID, details)
}

func (s *ActivityLogService) write(ctx context.Context, action, entityType string, entityID uuid.UUID, data map[string]any) error {
	info := audit.RequestInfoFromContext(ctx)
	log := &model.ActivityLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Context:    model.JSONMap(data),
		Timestamp:  s.now().UTC(),
		RequestID:  info.RequestID,
		ClientIP:   info.ClientIP,
		UserAgent:  info.UserAgent,
	}
	if userID, ok := auth.UserIDFromContext(ctx); ok {
		log.ActorID = &userID
	}

	return s.repo.Create(ctx, log)
}

// GetActivityLogs retrieves entries matching params with the total match count
func (s *ActivityLogService) GetActivityLogs(ctx context.Context, params repository.QueryParams) ([]model.ActivityLog, int64, error) {
	return s.repo.Query(ctx, params)
}

// GetActivityLogByID retrieves a single entry
func (s *ActivityLogService) GetActivityLogByID(ctx context.Context, id uuid.UUID) (*model.ActivityLog, error) {
	return s.repo.FindByID(ctx, id)
}
