package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/fieldwork/internal/audit"
	"github.com/dangerclosesec/fieldwork/internal/auth"
	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/metrics"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// OutreachService tracks attempts to reach contacts for a trip and keeps
// meetings consistent with each outreach's response.
type OutreachService struct {
	base
}

func NewOutreachService(store *repository.Store, logger audit.Logger) *OutreachService {
	return &OutreachService{base: newBase(store, logger)}
}

type CreateOutreachInput struct {
	TripID         uuid.UUID              `json:"trip_id" validate:"required"`
	ContactID      uuid.UUID              `json:"contact_id" validate:"required"`
	OrganizationID uuid.UUID              `json:"organization_id" validate:"required"`
	OutreachDate   string                 `json:"outreach_date" validate:"required,datetime=2006-01-02"`
	Notes          string                 `json:"notes"`
	Proposed       *model.ProposedMeeting `json:"proposed_meeting"`
}

// CreateOutreach records that the signed-in user reached out. The response
// starts as pending.
func (s *OutreachService) CreateOutreach(ctx context.Context, input CreateOutreachInput) (*model.Outreach, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.store.Trips.FindByID(ctx, input.TripID); err != nil {
		return nil, err
	}
	if _, err := s.store.Contacts.FindByID(ctx, input.ContactID); err != nil {
		return nil, err
	}
	if _, err := s.store.Organizations.FindByID(ctx, input.OrganizationID); err != nil {
		return nil, err
	}

	outreach := &model.Outreach{
		TripID:         input.TripID,
		ContactID:      input.ContactID,
		OrganizationID: input.OrganizationID,
		OutreachDate:   input.OutreachDate,
		ReachedOutBy:   userID,
		Response:       model.ResponsePending,
		Notes:          input.Notes,
	}
	if input.Proposed != nil {
		outreach.Proposed = *input.Proposed
	}

	if err := s.store.Outreach.Create(ctx, outreach); err != nil {
		return nil, fmt.Errorf("creating outreach: %w", err)
	}

	s.record(ctx, model.ActionCreate, model.EntityOutreach, outreach.ID, map[string]any{
		"trip_id":         outreach.TripID,
		"contact_id":      outreach.ContactID,
		"organization_id": outreach.OrganizationID,
	})
	return outreach, nil
}

func (s *OutreachService) GetOutreach(ctx context.Context, id uuid.UUID) (*OutreachDetail, error) {
	outreach, err := s.store.Outreach.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := s.join(ctx, []model.Outreach{*outreach})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ListOutreach returns a trip's outreach with contacts and organizations,
// most recent outreach date first.
func (s *OutreachService) ListOutreach(ctx context.Context, tripID uuid.UUID, response *model.OutreachResponse) ([]OutreachDetail, error) {
	if response != nil && !response.IsValid() {
		return nil, domain.Invalid("response", fmt.Sprintf("%q is not an allowed value", *response))
	}
	if _, err := s.store.Trips.FindByID(ctx, tripID); err != nil {
		return nil, err
	}

	records, err := s.store.Outreach.FindByTrip(ctx, tripID, response)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, records)
}

func (s *OutreachService) join(ctx context.Context, records []model.Outreach) ([]OutreachDetail, error) {
	var (
		contacts []model.Contact
		orgs     []model.Organization
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contacts, err = s.store.Contacts.FindByIDs(gctx, keys(records, func(o model.Outreach) uuid.UUID { return o.ContactID }))
		return err
	})
	g.Go(func() error {
		var err error
		orgs, err = s.store.Organizations.FindByIDs(gctx, keys(records, func(o model.Outreach) uuid.UUID { return o.OrganizationID }))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading outreach references: %w", err)
	}

	return joinOutreach(records,
		index(contacts, func(c model.Contact) uuid.UUID { return c.ID }),
		index(orgs, func(o model.Organization) uuid.UUID { return o.ID }),
	), nil
}

type UpdateOutreachInput struct {
	OutreachDate *string                `json:"outreach_date" validate:"omitnil,datetime=2006-01-02"`
	Notes        *string                `json:"notes"`
	Proposed     *model.ProposedMeeting `json:"proposed_meeting"`
}

// UpdateOutreach edits the outreach details. The response changes only
// through UpdateOutreachResponse.
func (s *OutreachService) UpdateOutreach(ctx context.Context, id uuid.UUID, input UpdateOutreachInput) (*model.Outreach, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	setIf(fields, "outreach_date", input.OutreachDate)
	setIf(fields, "notes", input.Notes)
	if p := input.Proposed; p != nil {
		fields["proposed_address"] = p.Address
		fields["proposed_city"] = p.City
		fields["proposed_state"] = p.State
		fields["proposed_zip"] = p.Zip
		fields["proposed_date_time"] = p.DateTime
	}

	if err := s.store.Outreach.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("updating outreach: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityOutreach, id, fields)
	return s.store.Outreach.FindByID(ctx, id)
}

type UpdateOutreachResponseInput struct {
	Response     model.OutreachResponse `json:"response" validate:"required,enum"`
	ResponseDate *string                `json:"response_date" validate:"omitnil,datetime=2006-01-02"`
	Notes        *string                `json:"notes"`
}

// UpdateOutreachResponse sets the contact's response. Moving to anything
// other than meeting_scheduled first deletes the meetings created from this
// outreach, in the same transaction. Moving to meeting_scheduled does not
// create a meeting; SyncMeetings does that.
func (s *OutreachService) UpdateOutreachResponse(ctx context.Context, id uuid.UUID, input UpdateOutreachResponseInput) (uuid.UUID, error) {
	if err := validateInput(input); err != nil {
		return uuid.Nil, err
	}

	fields := map[string]any{"response": input.Response}
	setIf(fields, "response_date", input.ResponseDate)
	setIf(fields, "notes", input.Notes)

	var removed int64
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Outreach.FindByID(ctx, id); err != nil {
			return err
		}

		if input.Response != model.ResponseMeetingScheduled {
			n, err := tx.Meetings.DeleteByOutreach(ctx, id)
			if err != nil {
				return err
			}
			removed = n
		}

		return tx.Outreach.Update(ctx, id, fields)
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("updating outreach response: %w", err)
	}

	if removed > 0 {
		metrics.MeetingsRemoved.Add(float64(removed))
		fields["meetings_removed"] = removed
	}
	s.record(ctx, model.ActionUpdate, model.EntityOutreach, id, fields)
	return id, nil
}

// DeleteOutreach removes the outreach and every meeting created from it.
func (s *OutreachService) DeleteOutreach(ctx context.Context, id uuid.UUID) error {
	removed, err := s.store.Outreach.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting outreach: %w", err)
	}

	if removed > 0 {
		metrics.MeetingsRemoved.Add(float64(removed))
	}
	s.record(ctx, model.ActionDelete, model.EntityOutreach, id, map[string]any{"meetings_removed": removed})
	return nil
}

// OutreachSummary tallies a trip's outreach. Every response is present.
type OutreachSummary struct {
	Counts map[model.OutreachResponse]int64 `json:"counts"`
	Total  int64                            `json:"total"`
}

func (s *OutreachService) GetOutreachSummary(ctx context.Context, tripID uuid.UUID) (*OutreachSummary, error) {
	if _, err := s.store.Trips.FindByID(ctx, tripID); err != nil {
		return nil, err
	}

	raw, err := s.store.Outreach.CountByResponse(ctx, tripID)
	if err != nil {
		return nil, err
	}

	out := &OutreachSummary{Counts: make(map[model.OutreachResponse]int64, len(model.OutreachResponses))}
	for _, r := range model.OutreachResponses {
		out.Counts[r] = raw[r]
		out.Total += raw[r]
	}
	return out, nil
}
