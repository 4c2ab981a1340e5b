package service_test

import (
	"context"
	"testing"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/dangerclosesec/fieldwork/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOutreachRequiresUser(t *testing.T) {
	h := newHarness(t)
	svc := service.NewOutreachService(h.store, h.activity)
	trip, org, contact := h.tripWithContact(t)

	_, err := svc.CreateOutreach(context.Background(), service.CreateOutreachInput{
		TripID: trip.ID, ContactID: contact.ID, OrganizationID: org.ID, OutreachDate: "2024-03-01",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.CreateOutreach(h.ctx, service.CreateOutreachInput{
		TripID: trip.ID, ContactID: uuid.New(), OrganizationID: org.ID, OutreachDate: "2024-03-01",
	})
	assert.ErrorIs(t, err, domain.ErrContactNotFound)

	_, err = svc.CreateOutreach(h.ctx, service.CreateOutreachInput{
		TripID: trip.ID, ContactID: contact.ID, OrganizationID: org.ID, OutreachDate: "March 1st",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"outreach_date": "must be a date formatted YYYY-MM-DD"}, verr.Fields)
}

func TestOutreachSummaryAndFilter(t *testing.T) {
	h := newHarness(t)
	svc := service.NewOutreachService(h.store, h.activity)
	trip, org, contact := h.tripWithContact(t)

	create := func(date string, response model.OutreachResponse) uuid.UUID {
		o, err := svc.CreateOutreach(h.ctx, service.CreateOutreachInput{
			TripID: trip.ID, ContactID: contact.ID, OrganizationID: org.ID, OutreachDate: date,
		})
		require.NoError(t, err)
		if response != model.ResponsePending {
			_, err = svc.UpdateOutreachResponse(h.ctx, o.ID, service.UpdateOutreachResponseInput{Response: response})
			require.NoError(t, err)
		}
		return o.ID
	}
	create("2024-03-01", model.ResponsePending)
	create("2024-03-02", model.ResponseInterested)
	create("2024-03-04", model.ResponseInterested)
	create("2024-03-03", model.ResponseNoResponse)

	summary, err := svc.GetOutreachSummary(h.ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), summary.Total)
	assert.Equal(t, map[model.OutreachResponse]int64{
		model.ResponsePending:          1,
		model.ResponseInterested:       2,
		model.ResponseNotInterested:    0,
		model.ResponseNoResponse:       1,
		model.ResponseMeetingScheduled: 0,
	}, summary.Counts)

	interested := model.ResponseInterested
	list, err := svc.ListOutreach(h.ctx, trip.ID, &interested)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-03-04", list[0].OutreachDate)
	assert.Equal(t, "2024-03-02", list[1].OutreachDate)

	bogus := model.OutreachResponse("maybe later")
	_, err = svc.ListOutreach(h.ctx, trip.ID, &bogus)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.GetOutreachSummary(h.ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestDeleteOutreachRemovesMeetings(t *testing.T) {
	h := newHarness(t)
	outreachSvc, meetingSvc := newMeetingServices(t, h, nil)
	trip, org, contact := h.tripWithContact(t)

	o, err := outreachSvc.CreateOutreach(h.ctx, service.CreateOutreachInput{
		TripID: trip.ID, ContactID: contact.ID, OrganizationID: org.ID, OutreachDate: "2024-03-01",
	})
	require.NoError(t, err)
	_, err = meetingSvc.CreateMeeting(h.ctx, service.CreateMeetingInput{
		TripID: trip.ID, OutreachID: o.ID, ContactID: contact.ID, OrganizationID: org.ID,
		Title: "Kickoff", ScheduledDate: "2024-03-10", ScheduledTime: "10:00",
	})
	require.NoError(t, err)

	require.NoError(t, outreachSvc.DeleteOutreach(h.ctx, o.ID))

	meetings, err := meetingSvc.ListMeetings(h.ctx, repository.MeetingFilter{TripID: &trip.ID})
	require.NoError(t, err)
	assert.Empty(t, meetings)

	assert.ErrorIs(t, outreachSvc.DeleteOutreach(h.ctx, o.ID), domain.ErrOutreachNotFound)
}

func TestUpdateOutreachResponseKeepsMeetingWhenStillScheduled(t *testing.T) {
	h := newHarness(t)
	outreachSvc, meetingSvc := newMeetingServices(t, h, nil)
	trip, org, contact := h.tripWithContact(t)

	o, err := outreachSvc.CreateOutreach(h.ctx, service.CreateOutreachInput{
		TripID: trip.ID, ContactID: contact.ID, OrganizationID: org.ID, OutreachDate: "2024-03-01",
	})
	require.NoError(t, err)
	m, err := meetingSvc.CreateMeeting(h.ctx, service.CreateMeetingInput{
		TripID: trip.ID, OutreachID: o.ID, ContactID: contact.ID, OrganizationID: org.ID,
		Title: "Kickoff", ScheduledDate: "2024-03-10", ScheduledTime: "10:00",
	})
	require.NoError(t, err)

	_, err = outreachSvc.UpdateOutreachResponse(h.ctx, o.ID, service.UpdateOutreachResponseInput{
		Response:     model.ResponseMeetingScheduled,
		ResponseDate: strPtr("2024-03-06"),
	})
	require.NoError(t, err)

	_, err = meetingSvc.GetMeeting(h.ctx, m.ID)
	assert.NoError(t, err)

	_, err = outreachSvc.UpdateOutreachResponse(h.ctx, uuid.New(), service.UpdateOutreachResponseInput{
		Response: model.ResponseNotInterested,
	})
	assert.ErrorIs(t, err, domain.ErrOutreachNotFound)
}

func strPtr(s string) *string { return &s }

func TestOutreachRejectsMalformedProposedTime(t *testing.T) {
	h := newHarness(t)
	svc := service.NewOutreachService(h.store, h.activity)
	trip, org, contact := h.tripWithContact(t)

	_, err := svc.CreateOutreach(h.ctx, service.CreateOutreachInput{
		TripID: trip.ID, ContactID: contact.ID, OrganizationID: org.ID, OutreachDate: "2024-03-01",
		Proposed: &model.ProposedMeeting{DateTime: "next tuesday"},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "proposed_meeting.date_time")

	o, err := svc.CreateOutreach(h.ctx, service.CreateOutreachInput{
		TripID: trip.ID, ContactID: contact.ID, OrganizationID: org.ID, OutreachDate: "2024-03-01",
		Proposed: &model.ProposedMeeting{City: "Chicago"},
	})
	require.NoError(t, err)

	_, err = svc.UpdateOutreach(h.ctx, o.ID, service.UpdateOutreachInput{
		Proposed: &model.ProposedMeeting{DateTime: "2024-03-05 2pm"},
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "proposed_meeting.date_time")

	got, err := svc.UpdateOutreach(h.ctx, o.ID, service.UpdateOutreachInput{
		Proposed: &model.ProposedMeeting{DateTime: "2024-03-05T14:00:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05T14:00:00", got.Proposed.DateTime)
}
