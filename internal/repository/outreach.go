// internal/repository/outreach.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutreachRepository struct {
	db *gorm.DB
}

func NewOutreachRepository(db *gorm.DB) *OutreachRepository {
	return &OutreachRepository{db: db}
}

func (r *OutreachRepository) Create(ctx context.Context, outreach *model.Outreach) error {
	if err := r.db.WithContext(ctx).Create(outreach).Error; err != nil {
		return fmt.Errorf("failed to create outreach: %w", translateError(err, domain.ErrOutreachNotFound))
	}
	return nil
}

func (r *OutreachRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Outreach, error) {
	return findByID[model.Outreach](ctx, r.db, id, domain.ErrOutreachNotFound)
}

// LockByID loads the outreach with a row lock held until the surrounding
// transaction ends. SQLite ignores the lock clause.
func (r *OutreachRepository) LockByID(ctx context.Context, id uuid.UUID) (*model.Outreach, error) {
	var outreach model.Outreach
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&outreach, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, domain.ErrOutreachNotFound)
	}
	return &outreach, nil
}

func (r *OutreachRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Outreach, error) {
	outreach, err := findByIDs[model.Outreach](ctx, r.db, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find outreach: %w", err)
	}
	return outreach, nil
}

// FindByTrip lists a trip's outreach, newest outreach date first, optionally
// narrowed to one response.
func (r *OutreachRepository) FindByTrip(ctx context.Context, tripID uuid.UUID, response *model.OutreachResponse) ([]model.Outreach, error) {
	query := r.db.WithContext(ctx).Where("trip_id = ?", tripID)
	if response != nil {
		query = query.Where("response = ?", *response)
	}

	var outreach []model.Outreach
	if err := query.Order("outreach_date DESC").Order("created_at DESC").Find(&outreach).Error; err != nil {
		return nil, fmt.Errorf("failed to find outreach: %w", err)
	}
	return outreach, nil
}

// CountByResponse returns how many of a trip's outreach records carry each
// response. Responses with no records are absent from the map.
func (r *OutreachRepository) CountByResponse(ctx context.Context, tripID uuid.UUID) (map[model.OutreachResponse]int64, error) {
	var rows []struct {
		Response model.OutreachResponse
		Count    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Outreach{}).
		Select("response, COUNT(*) AS count").
		Where("trip_id = ?", tripID).
		Group("response").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count outreach by response: %w", err)
	}

	counts := make(map[model.OutreachResponse]int64, len(rows))
	for _, row := range rows {
		counts[row.Response] = row.Count
	}
	return counts, nil
}

func (r *OutreachRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateFields[model.Outreach](ctx, r.db, id, fields, domain.ErrOutreachNotFound)
}

// Delete removes the outreach together with every meeting created from it
// and reports how many meetings went with it.
func (r *OutreachRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findByID[model.Outreach](ctx, tx, id, domain.ErrOutreachNotFound); err != nil {
			return err
		}

		result := tx.Where("outreach_id = ?", id).Delete(&model.Meeting{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete meetings: %w", result.Error)
		}
		removed = result.RowsAffected

		if err := tx.Delete(&model.Outreach{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete outreach: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("transaction failed: %w", err)
	}
	return removed, nil
}
