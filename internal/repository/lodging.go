// internal/repository/lodging.go
package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LodgingRepository struct {
	db *gorm.DB
}

func NewLodgingRepository(db *gorm.DB) *LodgingRepository {
	return &LodgingRepository{db: db}
}

func (r *LodgingRepository) Create(ctx context.Context, lodging *model.Lodging) error {
	if err := r.db.WithContext(ctx).Create(lodging).Error; err != nil {
		return fmt.Errorf("failed to create lodging: %w", translateError(err, domain.ErrLodgingNotFound))
	}
	return nil
}

func (r *LodgingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Lodging, error) {
	return findByID[model.Lodging](ctx, r.db, id, domain.ErrLodgingNotFound)
}

// FindByTrip lists the trip's lodging by the start of each stay, legacy
// single-date records included. Records with no date sort last.
func (r *LodgingRepository) FindByTrip(ctx context.Context, tripID uuid.UUID) ([]model.Lodging, error) {
	var lodgings []model.Lodging
	if err := r.db.WithContext(ctx).Where("trip_id = ?", tripID).Find(&lodgings).Error; err != nil {
		return nil, fmt.Errorf("failed to find lodging: %w", err)
	}

	sort.SliceStable(lodgings, func(i, j int) bool {
		si, _, oki := lodgings[i].Span()
		sj, _, okj := lodgings[j].Span()
		if oki != okj {
			return oki
		}
		if si != sj {
			return si < sj
		}
		return lodgings[i].Name < lodgings[j].Name
	})
	return lodgings, nil
}

func (r *LodgingRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateFields[model.Lodging](ctx, r.db, id, fields, domain.ErrLodgingNotFound)
}

func (r *LodgingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.Lodging](ctx, r.db, id, domain.ErrLodgingNotFound)
}
