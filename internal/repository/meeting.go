// internal/repository/meeting.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MeetingFilter narrows a meeting listing. Nil fields are ignored.
type MeetingFilter struct {
	TripID *uuid.UUID
	Status *model.EngagementStatus
}

type MeetingRepository struct {
	db *gorm.DB
}

func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

func (r *MeetingRepository) Create(ctx context.Context, meeting *model.Meeting) error {
	if err := r.db.WithContext(ctx).Create(meeting).Error; err != nil {
		return fmt.Errorf("failed to create meeting: %w", translateError(err, domain.ErrMeetingNotFound))
	}
	return nil
}

func (r *MeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	return findByID[model.Meeting](ctx, r.db, id, domain.ErrMeetingNotFound)
}

func (r *MeetingRepository) Find(ctx context.Context, filter MeetingFilter) ([]model.Meeting, error) {
	query := r.db.WithContext(ctx)
	if filter.TripID != nil {
		query = query.Where("trip_id = ?", *filter.TripID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var meetings []model.Meeting
	if err := query.Order("created_at ASC").Find(&meetings).Error; err != nil {
		return nil, fmt.Errorf("failed to find meetings: %w", err)
	}
	return meetings, nil
}

func (r *MeetingRepository) FindByOutreach(ctx context.Context, outreachID uuid.UUID) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if err := r.db.WithContext(ctx).Where("outreach_id = ?", outreachID).Find(&meetings).Error; err != nil {
		return nil, fmt.Errorf("failed to find meetings: %w", err)
	}
	return meetings, nil
}

// ExistsForOutreach reports whether at least one meeting was created from
// the outreach.
func (r *MeetingRepository) ExistsForOutreach(ctx context.Context, outreachID uuid.UUID) (bool, error) {
	n, err := count[model.Meeting](r.db.WithContext(ctx), "outreach_id = ?", outreachID)
	if err != nil {
		return false, fmt.Errorf("failed to count meetings: %w", err)
	}
	return n > 0, nil
}

// DeleteByOutreach removes every meeting created from the outreach and
// returns how many were removed.
func (r *MeetingRepository) DeleteByOutreach(ctx context.Context, outreachID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("outreach_id = ?", outreachID).Delete(&model.Meeting{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete meetings: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *MeetingRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateFields[model.Meeting](ctx, r.db, id, fields, domain.ErrMeetingNotFound)
}

func (r *MeetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.Meeting](ctx, r.db, id, domain.ErrMeetingNotFound)
}
