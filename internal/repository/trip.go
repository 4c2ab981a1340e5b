// internal/repository/trip.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) Create(ctx context.Context, trip *model.Trip) error {
	if err := r.db.WithContext(ctx).Create(trip).Error; err != nil {
		return fmt.Errorf("failed to create trip: %w", translateError(err, domain.ErrTripNotFound))
	}
	return nil
}

func (r *TripRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	return findByID[model.Trip](ctx, r.db, id, domain.ErrTripNotFound)
}

// FindAll returns every trip, most recently created first
func (r *TripRepository) FindAll(ctx context.Context) ([]model.Trip, error) {
	var trips []model.Trip
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&trips).Error; err != nil {
		return nil, fmt.Errorf("failed to find trips: %w", err)
	}
	return trips, nil
}

func (r *TripRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateFields[model.Trip](ctx, r.db, id, fields, domain.ErrTripNotFound)
}

// Delete removes the trip with its meetings, outreach, legs and lodging.
func (r *TripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findByID[model.Trip](ctx, tx, id, domain.ErrTripNotFound); err != nil {
			return err
		}

		children := []struct {
			name  string
			model any
		}{
			{"meetings", &model.Meeting{}},
			{"outreach", &model.Outreach{}},
			{"trip legs", &model.TripLeg{}},
			{"lodging", &model.Lodging{}},
		}
		for _, child := range children {
			if err := tx.Where("trip_id = ?", id).Delete(child.model).Error; err != nil {
				return fmt.Errorf("failed to delete %s: %w", child.name, err)
			}
		}

		if err := tx.Delete(&model.Trip{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete trip: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
