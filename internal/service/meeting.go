package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dangerclosesec/fieldwork/internal/audit"
	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/metrics"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// placeholder for a meeting whose place or time is not yet known
	tbd = "TBD"

	meetingTitlePrefix = "Meeting with "
)

type MeetingService struct {
	base
	notifier Notifier
}

func NewMeetingService(store *repository.Store, logger audit.Logger, notifier Notifier) *MeetingService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &MeetingService{base: newBase(store, logger), notifier: notifier}
}

type CreateMeetingInput struct {
	TripID         uuid.UUID `json:"trip_id" validate:"required"`
	OutreachID     uuid.UUID `json:"outreach_id" validate:"required"`
	ContactID      uuid.UUID `json:"contact_id" validate:"required"`
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
	Title          string    `json:"title" validate:"required"`
	ScheduledDate  string    `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime  string    `json:"scheduled_time" validate:"required"`
	Duration       *int      `json:"duration" validate:"omitnil,gt=0"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Zip            string    `json:"zip"`
	Notes          string    `json:"notes"`
}

// CreateMeeting schedules a meeting from an outreach. The meeting is inserted
// and the outreach marked meeting_scheduled as of today in one transaction.
// The contact is then emailed; a failed email does not undo the meeting.
func (s *MeetingService) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*model.Meeting, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	outreach, err := s.store.Outreach.FindByID(ctx, input.OutreachID)
	if err != nil {
		return nil, err
	}
	switch {
	case outreach.TripID != input.TripID:
		return nil, domain.ErrOutreachTripMismatch
	case outreach.ContactID != input.ContactID:
		return nil, domain.ErrOutreachContactMismatch
	case outreach.OrganizationID != input.OrganizationID:
		return nil, domain.ErrOutreachOrgMismatch
	}
	contact, err := s.store.Contacts.FindByID(ctx, input.ContactID)
	if err != nil {
		return nil, err
	}
	org, err := s.store.Organizations.FindByID(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}

	meeting := &model.Meeting{
		TripID:         input.TripID,
		OutreachID:     input.OutreachID,
		ContactID:      input.ContactID,
		OrganizationID: input.OrganizationID,
		Title:          input.Title,
		ScheduledDate:  input.ScheduledDate,
		ScheduledTime:  input.ScheduledTime,
		Duration:       input.Duration,
		Address:        input.Address,
		City:           input.City,
		State:          input.State,
		Zip:            input.Zip,
		Notes:          input.Notes,
		Status:         model.StatusScheduled,
	}

	today := s.today()
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Meetings.Create(ctx, meeting); err != nil {
			return err
		}
		return tx.Outreach.Update(ctx, outreach.ID, map[string]any{
			"response":      model.ResponseMeetingScheduled,
			"response_date": today,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("creating meeting: %w", err)
	}

	metrics.MeetingsCreated.WithLabelValues(metrics.SourceManual).Inc()
	s.record(ctx, model.ActionCreate, model.EntityMeeting, meeting.ID, map[string]any{
		"trip_id":     meeting.TripID,
		"outreach_id": meeting.OutreachID,
		"title":       meeting.Title,
	})
	s.notifyContact(ctx, *meeting, *contact, *org)
	return meeting, nil
}

func (s *MeetingService) notifyContact(ctx context.Context, meeting model.Meeting, contact model.Contact, org model.Organization) {
	if err := s.notifier.MeetingScheduled(ctx, meeting, contact, org); err != nil {
		metrics.NotificationsFailed.WithLabelValues("meeting_scheduled").Inc()
		slog.WarnContext(ctx, "failed to send meeting notification",
			"meeting_id", meeting.ID,
			"to", contact.Email,
			"error", err,
		)
	}
}

func (s *MeetingService) GetMeeting(ctx context.Context, id uuid.UUID) (*MeetingDetail, error) {
	meeting, err := s.store.Meetings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := s.join(ctx, []model.Meeting{*meeting})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ListMeetings returns meetings with their contact, organization and
// outreach, earliest first. When a trip is given the status filter is
// ignored.
func (s *MeetingService) ListMeetings(ctx context.Context, filter repository.MeetingFilter) ([]MeetingDetail, error) {
	if filter.TripID != nil {
		filter.Status = nil
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, domain.Invalid("status", fmt.Sprintf("%q is not an allowed value", *filter.Status))
	}

	meetings, err := s.store.Meetings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, meetings)
}

func (s *MeetingService) join(ctx context.Context, meetings []model.Meeting) ([]MeetingDetail, error) {
	var (
		contacts []model.Contact
		orgs     []model.Organization
		outreach []model.Outreach
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contacts, err = s.store.Contacts.FindByIDs(gctx, keys(meetings, func(m model.Meeting) uuid.UUID { return m.ContactID }))
		return err
	})
	g.Go(func() error {
		var err error
		orgs, err = s.store.Organizations.FindByIDs(gctx, keys(meetings, func(m model.Meeting) uuid.UUID { return m.OrganizationID }))
		return err
	})
	g.Go(func() error {
		var err error
		outreach, err = s.store.Outreach.FindByIDs(gctx, keys(meetings, func(m model.Meeting) uuid.UUID { return m.OutreachID }))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading meeting references: %w", err)
	}

	return joinMeetings(meetings,
		index(contacts, func(c model.Contact) uuid.UUID { return c.ID }),
		index(orgs, func(o model.Organization) uuid.UUID { return o.ID }),
		index(outreach, func(o model.Outreach) uuid.UUID { return o.ID }),
	), nil
}

type UpdateMeetingInput struct {
	Title         *string                 `json:"title" validate:"omitnil,min=1"`
	ScheduledDate *string                 `json:"scheduled_date" validate:"omitnil,datetime=2006-01-02"`
	ScheduledTime *string                 `json:"scheduled_time" validate:"omitnil,min=1"`
	Duration      *int                    `json:"duration" validate:"omitnil,gt=0"`
	Address       *string                 `json:"address"`
	City          *string                 `json:"city"`
	State         *string                 `json:"state"`
	Zip           *string                 `json:"zip"`
	Notes         *string                 `json:"notes"`
	Status        *model.EngagementStatus `json:"status" validate:"omitnil,enum"`
}

func (s *MeetingService) UpdateMeeting(ctx context.Context, id uuid.UUID, input UpdateMeetingInput) (*model.Meeting, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	setIf(fields, "title", input.Title)
	setIf(fields, "scheduled_date", input.ScheduledDate)
	setIf(fields, "scheduled_time", input.ScheduledTime)
	setIf(fields, "duration", input.Duration)
	setIf(fields, "address", input.Address)
	setIf(fields, "city", input.City)
	setIf(fields, "state", input.State)
	setIf(fields, "zip", input.Zip)
	setIf(fields, "notes", input.Notes)
	setIf(fields, "status", input.Status)

	if err := s.store.Meetings.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("updating meeting: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityMeeting, id, fields)
	return s.store.Meetings.FindByID(ctx, id)
}

func (s *MeetingService) UpdateMeetingStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (uuid.UUID, error) {
	if err := validateInput(input); err != nil {
		return uuid.Nil, err
	}

	fields := map[string]any{"status": input.Status}
	if err := s.store.Meetings.Update(ctx, id, fields); err != nil {
		return uuid.Nil, fmt.Errorf("updating meeting status: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityMeeting, id, fields)
	return id, nil
}

// DeleteMeeting removes a single meeting. The outreach it came from keeps
// its response; SyncMeetings will recreate the meeting if that response is
// still meeting_scheduled.
func (s *MeetingService) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Meetings.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting meeting: %w", err)
	}

	s.record(ctx, model.ActionDelete, model.EntityMeeting, id, nil)
	return nil
}

// SyncMeetings creates the missing meeting for every outreach of the trip
// whose response is meeting_scheduled. Each outreach is repaired in its own
// transaction that locks the outreach row and re-checks for an existing
// meeting, so repeated or concurrent runs create nothing new. It returns the meetings it created.
func (s *MeetingService) SyncMeetings(ctx context.Context, tripID uuid.UUID) ([]model.Meeting, error) {
	if _, err := s.store.Trips.FindByID(ctx, tripID); err != nil {
		return nil, err
	}

	scheduled := model.ResponseMeetingScheduled
	records, err := s.store.Outreach.FindByTrip(ctx, tripID, &scheduled)
	if err != nil {
		return nil, err
	}

	orgs, err := s.store.Organizations.FindByIDs(ctx, keys(records, func(o model.Outreach) uuid.UUID { return o.OrganizationID }))
	if err != nil {
		return nil, err
	}
	orgByID := index(orgs, func(o model.Organization) uuid.UUID { return o.ID })

	created := []model.Meeting{}
	for _, o := range records {
		org, ok := orgByID[o.OrganizationID]
		if !ok {
			slog.WarnContext(ctx, "skipping outreach with missing organization",
				"outreach_id", o.ID,
				"organization_id", o.OrganizationID,
			)
			continue
		}

		meeting := meetingFromOutreach(o, org)
		var inserted bool
		err := s.store.Transaction(ctx, func(tx *repository.Store) error {
			// concurrent syncs of the same outreach queue here
			locked, err := tx.Outreach.LockByID(ctx, o.ID)
			if err != nil {
				return err
			}
			if locked.Response != model.ResponseMeetingScheduled {
				return nil
			}
			exists, err := tx.Meetings.ExistsForOutreach(ctx, o.ID)
			if err != nil || exists {
				return err
			}
			if err := tx.Meetings.Create(ctx, &meeting); err != nil {
				return err
			}
			inserted = true
			return nil
		})
		if err != nil {
			return created, fmt.Errorf("syncing meeting for outreach %s: %w", o.ID, err)
		}
		if !inserted {
			continue
		}

		metrics.MeetingsCreated.WithLabelValues(metrics.SourceSync).Inc()
		s.record(ctx, model.ActionCreate, model.EntityMeeting, meeting.ID, map[string]any{
			"trip_id":     meeting.TripID,
			"outreach_id": meeting.OutreachID,
			"source":      metrics.SourceSync,
		})
		created = append(created, meeting)
	}

	slog.InfoContext(ctx, "synced meetings from outreach",
		"trip_id", tripID,
		"scheduled_outreach", len(records),
		"created", len(created),
	)
	return created, nil
}

// meetingFromOutreach fills a meeting from what the contact proposed.
func meetingFromOutreach(o model.Outreach, org model.Organization) model.Meeting {
	date, clock := proposedSchedule(o)

	address := strings.TrimSpace(o.Proposed.Address)
	if address == "" {
		address = tbd
	}

	return model.Meeting{
		TripID:         o.TripID,
		OutreachID:     o.ID,
		ContactID:      o.ContactID,
		OrganizationID: o.OrganizationID,
		Title:          meetingTitlePrefix + org.Name,
		ScheduledDate:  date,
		ScheduledTime:  clock,
		Address:        address,
		City:           o.Proposed.City,
		State:          o.Proposed.State,
		Zip:            o.Proposed.Zip,
		Status:         model.StatusScheduled,
	}
}

// proposedSchedule uses the proposed date and time when they parse.
// Otherwise the meeting lands on the response date, or failing that the
// outreach date, with the time to be decided.
func proposedSchedule(o model.Outreach) (date, clock string) {
	if t, ok := model.ParseMeetingTime(o.Proposed.DateTime); ok {
		return t.Format(model.DateLayout), t.Format("15:04")
	}

	if o.ResponseDate != nil && *o.ResponseDate != "" {
		return *o.ResponseDate, tbd
	}
	return o.OutreachDate, tbd
}
