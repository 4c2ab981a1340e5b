package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/audit"
	"github.com/dangerclosesec/fieldwork/internal/auth"
	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/itinerary"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// TripService manages trips and their travel plans: legs and lodging.
type TripService struct {
	base
}

func NewTripService(store *repository.Store, logger audit.Logger) *TripService {
	return &TripService{base: newBase(store, logger)}
}

type CreateTripInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	StartDate   *string `json:"start_date" validate:"omitnil,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitnil,datetime=2006-01-02"`
}

// CreateTrip records a trip owned by the signed-in user.
func (s *TripService) CreateTrip(ctx context.Context, input CreateTripInput) (*model.Trip, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := checkSpan(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	trip := &model.Trip{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedBy:   userID,
	}
	if err := s.store.Trips.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("creating trip: %w", err)
	}

	s.record(ctx, model.ActionCreate, model.EntityTrip, trip.ID, map[string]any{"name": trip.Name})
	return trip, nil
}

func (s *TripService) GetTrip(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	return s.store.Trips.FindByID(ctx, id)
}

func (s *TripService) ListTrips(ctx context.Context) ([]model.Trip, error) {
	return s.store.Trips.FindAll(ctx)
}

type UpdateTripInput struct {
	Name        *string `json:"name" validate:"omitnil,min=1"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date" validate:"omitnil,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitnil,datetime=2006-01-02"`
}

func (s *TripService) UpdateTrip(ctx context.Context, id uuid.UUID, input UpdateTripInput) (*model.Trip, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.StartDate != nil || input.EndDate != nil {
		current, err := s.store.Trips.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := checkSpan(coalesce(input.StartDate, current.StartDate), coalesce(input.EndDate, current.EndDate)); err != nil {
			return nil, err
		}
	}

	fields := make(map[string]any)
	setIf(fields, "name", input.Name)
	setIf(fields, "description", input.Description)
	setIf(fields, "start_date", input.StartDate)
	setIf(fields, "end_date", input.EndDate)

	if err := s.store.Trips.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("updating trip: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityTrip, id, fields)
	return s.store.Trips.FindByID(ctx, id)
}

// DeleteTrip removes the trip with its meetings, outreach, legs and lodging.
func (s *TripService) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting trip: %w", err)
	}

	s.record(ctx, model.ActionDelete, model.EntityTrip, id, nil)
	return nil
}

// Itinerary is a trip laid out day by day.
type Itinerary struct {
	Trip model.Trip      `json:"trip"`
	Days []itinerary.Day `json:"days"`
}

func (s *TripService) GetItinerary(ctx context.Context, tripID uuid.UUID) (*Itinerary, error) {
	trip, err := s.store.Trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	var (
		legs     []model.TripLeg
		lodgings []model.Lodging
		meetings []model.Meeting
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		legs, err = s.store.TripLegs.FindByTrip(gctx, tripID)
		return err
	})
	g.Go(func() error {
		var err error
		lodgings, err = s.store.Lodging.FindByTrip(gctx, tripID)
		return err
	})
	g.Go(func() error {
		var err error
		meetings, err = s.store.Meetings.Find(gctx, repository.MeetingFilter{TripID: &tripID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading itinerary: %w", err)
	}

	return &Itinerary{
		Trip: *trip,
		Days: itinerary.Build(*trip, legs, lodgings, meetings),
	}, nil
}

type CreateTripLegInput struct {
	TripID         uuid.UUID            `json:"trip_id" validate:"required"`
	StartCity      string               `json:"start_city" validate:"required"`
	EndCity        string               `json:"end_city" validate:"required"`
	Transportation model.Transportation `json:"transportation" validate:"required,enum"`
	Date           *string              `json:"date" validate:"omitnil,datetime=2006-01-02"`
	Notes          string               `json:"notes"`
}

// CreateTripLeg appends a leg after the trip's current last leg.
func (s *TripService) CreateTripLeg(ctx context.Context, input CreateTripLegInput) (*model.TripLeg, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.store.Trips.FindByID(ctx, input.TripID); err != nil {
		return nil, err
	}

	leg := &model.TripLeg{
		TripID:         input.TripID,
		StartCity:      input.StartCity,
		EndCity:        input.EndCity,
		Transportation: input.Transportation,
		Date:           input.Date,
		Notes:          input.Notes,
	}
	if err := s.store.TripLegs.Create(ctx, leg); err != nil {
		return nil, fmt.Errorf("creating trip leg: %w", err)
	}

	s.record(ctx, model.ActionCreate, model.EntityTripLeg, leg.ID, map[string]any{
		"trip_id": leg.TripID,
		"order":   leg.Order,
	})
	return leg, nil
}

func (s *TripService) ListTripLegs(ctx context.Context, tripID uuid.UUID) ([]model.TripLeg, error) {
	if _, err := s.store.Trips.FindByID(ctx, tripID); err != nil {
		return nil, err
	}
	return s.store.TripLegs.FindByTrip(ctx, tripID)
}

type UpdateTripLegInput struct {
	StartCity      *string               `json:"start_city" validate:"omitnil,min=1"`
	EndCity        *string               `json:"end_city" validate:"omitnil,min=1"`
	Transportation *model.Transportation `json:"transportation" validate:"omitnil,enum"`
	Date           *string               `json:"date" validate:"omitnil,datetime=2006-01-02"`
	Notes          *string               `json:"notes"`
}

// UpdateTripLeg edits a leg in place. Its position changes only through
// ReorderTripLegs.
func (s *TripService) UpdateTripLeg(ctx context.Context, id uuid.UUID, input UpdateTripLegInput) (*model.TripLeg, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	setIf(fields, "start_city", input.StartCity)
	setIf(fields, "end_city", input.EndCity)
	setIf(fields, "transportation", input.Transportation)
	setIf(fields, "date", input.Date)
	setIf(fields, "notes", input.Notes)

	if err := s.store.TripLegs.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("updating trip leg: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityTripLeg, id, fields)
	return s.store.TripLegs.FindByID(ctx, id)
}

func (s *TripService) DeleteTripLeg(ctx context.Context, id uuid.UUID) error {
	if err := s.store.TripLegs.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting trip leg: %w", err)
	}

	s.record(ctx, model.ActionDelete, model.EntityTripLeg, id, nil)
	return nil
}

type ReorderTripLegsInput struct {
	Legs []repository.LegOrder `json:"legs" validate:"dive"`
}

// ReorderTripLegs overwrites the order of each listed leg in one step. Legs
// not listed keep their order.
func (s *TripService) ReorderTripLegs(ctx context.Context, tripID uuid.UUID, input ReorderTripLegsInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	if _, err := s.store.Trips.FindByID(ctx, tripID); err != nil {
		return err
	}

	if err := s.store.TripLegs.Reorder(ctx, tripID, input.Legs); err != nil {
		return fmt.Errorf("reordering trip legs: %w", err)
	}

	for _, l := range input.Legs {
		s.record(ctx, model.ActionUpdate, model.EntityTripLeg, l.ID, map[string]any{"order": l.Order})
	}
	return nil
}

type CreateLodgingInput struct {
	TripID    uuid.UUID `json:"trip_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	StartDate string    `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string    `json:"end_date" validate:"required,datetime=2006-01-02"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Notes     string    `json:"notes"`
}

// CreateLodging records a stay. A start after the end is accepted; such a
// stay covers no nights on the itinerary.
func (s *TripService) CreateLodging(ctx context.Context, input CreateLodgingInput) (*model.Lodging, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := checkSpan(&input.StartDate, &input.EndDate); err != nil {
		return nil, err
	}
	if _, err := s.store.Trips.FindByID(ctx, input.TripID); err != nil {
		return nil, err
	}

	lodging := &model.Lodging{
		TripID:    input.TripID,
		Name:      input.Name,
		StartDate: &input.StartDate,
		EndDate:   &input.EndDate,
		Address:   input.Address,
		City:      input.City,
		Notes:     input.Notes,
	}
	if err := s.store.Lodging.Create(ctx, lodging); err != nil {
		return nil, fmt.Errorf("creating lodging: %w", err)
	}

	s.record(ctx, model.ActionCreate, model.EntityLodging, lodging.ID, map[string]any{
		"trip_id": lodging.TripID,
		"name":    lodging.Name,
	})
	return lodging, nil
}

func (s *TripService) ListLodging(ctx context.Context, tripID uuid.UUID) ([]model.Lodging, error) {
	if _, err := s.store.Trips.FindByID(ctx, tripID); err != nil {
		return nil, err
	}
	return s.store.Lodging.FindByTrip(ctx, tripID)
}

type UpdateLodgingInput struct {
	Name      *string `json:"name" validate:"omitnil,min=1"`
	StartDate *string `json:"start_date" validate:"omitnil,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitnil,datetime=2006-01-02"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	Notes     *string `json:"notes"`
}

func (s *TripService) UpdateLodging(ctx context.Context, id uuid.UUID, input UpdateLodgingInput) (*model.Lodging, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.StartDate != nil || input.EndDate != nil {
		current, err := s.store.Lodging.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		start := coalesce(current.StartDate, current.Date)
		if err := checkSpan(coalesce(input.StartDate, start), coalesce(input.EndDate, current.EndDate)); err != nil {
			return nil, err
		}
	}

	fields := make(map[string]any)
	setIf(fields, "name", input.Name)
	setIf(fields, "start_date", input.StartDate)
	setIf(fields, "end_date", input.EndDate)
	setIf(fields, "address", input.Address)
	setIf(fields, "city", input.City)
	setIf(fields, "notes", input.Notes)

	if err := s.store.Lodging.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("updating lodging: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityLodging, id, fields)
	return s.store.Lodging.FindByID(ctx, id)
}

func (s *TripService) DeleteLodging(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Lodging.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting lodging: %w", err)
	}

	s.record(ctx, model.ActionDelete, model.EntityLodging, id, nil)
	return nil
}

// checkSpan rejects a date range longer than itinerary.MaxSpanDays. Open or
// inverted ranges pass.
func checkSpan(start, end *string) error {
	if start == nil || end == nil {
		return nil
	}
	if n, ok := itinerary.SpanDays(*start, *end); ok && n > itinerary.MaxSpanDays {
		return domain.Invalid("end_date", fmt.Sprintf("must be within %d days of start_date", itinerary.MaxSpanDays))
	}
	return nil
}

// coalesce returns the first non-nil value.
func coalesce(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
