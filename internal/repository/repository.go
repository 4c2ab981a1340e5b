// internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes translated into domain errors.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// Store groups every repository over one database handle. Repositories
// obtained from a Store inside Transaction share that transaction.
type Store struct {
	db *gorm.DB

	Users         *UserRepository
	ActivityLogs  *ActivityLogRepository
	Projects      *ProjectRepository
	NetworkGroups *NetworkGroupRepository
	Experts       *ExpertRepository
	Calls         *CallRepository
	Organizations *OrganizationRepository
	Contacts      *ContactRepository
	Trips         *TripRepository
	Outreach      *OutreachRepository
	Meetings      *MeetingRepository
	TripLegs      *TripLegRepository
	Lodging       *LodgingRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		ActivityLogs:  NewActivityLogRepository(db),
		Projects:      NewProjectRepository(db),
		NetworkGroups: NewNetworkGroupRepository(db),
		Experts:       NewExpertRepository(db),
		Calls:         NewCallRepository(db),
		Organizations: NewOrganizationRepository(db),
		Contacts:      NewContactRepository(db),
		Trips:         NewTripRepository(db),
		Outreach:      NewOutreachRepository(db),
		Meetings:      NewMeetingRepository(db),
		TripLegs:      NewTripLegRepository(db),
		Lodging:       NewLodgingRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single database
// transaction. The transaction commits only if fn returns nil.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// DB returns the underlying database connection
func (s *Store) DB() *gorm.DB {
	return s.db
}

// AutoMigrate creates or updates every table from the model definitions.
// Postgres deployments use the SQL migrations instead.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.ActivityLog{},
		&model.Project{},
		&model.ExpertNetworkGroup{},
		&model.Expert{},
		&model.Call{},
		&model.Organization{},
		&model.Contact{},
		&model.Trip{},
		&model.Outreach{},
		&model.Meeting{},
		&model.TripLeg{},
		&model.Lodging{},
	); err != nil {
		return fmt.Errorf("failed to auto-migrate schema: %w", err)
	}
	return nil
}

// translateError maps driver errors onto domain errors. notFound is returned
// for a missing record.
func translateError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: duplicate value", domain.ErrInvariantViolation)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: references a missing or protected record", domain.ErrInvariantViolation)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s references a missing or protected record", domain.ErrInvariantViolation, pgErr.ConstraintName)
		case pgUniqueViolation:
			return fmt.Errorf("%w: duplicate value for %s", domain.ErrInvariantViolation, pgErr.ConstraintName)
		}
	}
	return err
}

func findByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, notFound error) (*T, error) {
	var rec T
	if err := db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, translateError(err, notFound)
	}
	return &rec, nil
}

func findByIDs[T any](ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]T, error) {
	var recs []T
	if len(ids) == 0 {
		return recs, nil
	}
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// updateFields writes only the given columns. An empty set still verifies
// the record exists.
func updateFields[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, fields map[string]any, notFound error) error {
	if len(fields) == 0 {
		_, err := findByID[T](ctx, db, id, notFound)
		return err
	}

	result := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return translateError(result.Error, notFound)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, notFound error) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return translateError(result.Error, notFound)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

func count[T any](tx *gorm.DB, query string, args ...any) (int64, error) {
	var n int64
	if err := tx.Model(new(T)).Where(query, args...).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
