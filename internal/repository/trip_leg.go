// internal/repository/trip_leg.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LegOrder assigns a new position to one leg.
type LegOrder struct {
	ID    uuid.UUID `json:"id" validate:"required"`
	Order int       `json:"order" validate:"min=1"`
}

type TripLegRepository struct {
	db *gorm.DB
}

func NewTripLegRepository(db *gorm.DB) *TripLegRepository {
	return &TripLegRepository{db: db}
}

// Create appends the leg to its trip. The order is one past the current
// highest order, or 1 for the first leg; any order set by the caller is
// ignored.
func (r *TripLegRepository) Create(ctx context.Context, leg *model.TripLeg) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		if err := tx.Model(&model.TripLeg{}).
			Select("COALESCE(MAX(leg_order), 0)").
			Where("trip_id = ?", leg.TripID).
			Scan(&maxOrder).Error; err != nil {
			return fmt.Errorf("failed to read leg order: %w", err)
		}

		leg.Order = maxOrder + 1
		if err := tx.Create(leg).Error; err != nil {
			return translateError(err, domain.ErrTripLegNotFound)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create trip leg: %w", err)
	}
	return nil
}

func (r *TripLegRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TripLeg, error) {
	return findByID[model.TripLeg](ctx, r.db, id, domain.ErrTripLegNotFound)
}

// FindByTrip lists the trip's legs by ascending order
func (r *TripLegRepository) FindByTrip(ctx context.Context, tripID uuid.UUID) ([]model.TripLeg, error) {
	var legs []model.TripLeg
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("leg_order ASC").
		Order("created_at ASC").
		Find(&legs).Error; err != nil {
		return nil, fmt.Errorf("failed to find trip legs: %w", err)
	}
	return legs, nil
}

func (r *TripLegRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateFields[model.TripLeg](ctx, r.db, id, fields, domain.ErrTripLegNotFound)
}

func (r *TripLegRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.TripLeg](ctx, r.db, id, domain.ErrTripLegNotFound)
}

// Reorder overwrites the order of each listed leg. Either every leg is
// updated or none is: an id that is not a leg of tripID aborts the whole
// batch with ErrTripLegNotFound.
func (r *TripLegRepository) Reorder(ctx context.Context, tripID uuid.UUID, orders []LegOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			result := tx.Model(&model.TripLeg{}).
				Where("id = ? AND trip_id = ?", o.ID, tripID).
				Update("leg_order", o.Order)
			if result.Error != nil {
				return fmt.Errorf("failed to reorder trip leg %s: %w", o.ID, result.Error)
			}
			if result.RowsAffected == 0 {
				return domain.ErrTripLegNotFound
			}
		}
		return nil
	})
}
