package repository_test

import (
	"context"
	"testing"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/dangerclosesec/fieldwork/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tripFixture struct {
	trip     *model.Trip
	org      *model.Organization
	contact  *model.Contact
	outreach *model.Outreach
	meeting  *model.Meeting
}

func seedTrip(t *testing.T, store *repository.Store) tripFixture {
	t.Helper()
	ctx := context.Background()

	f := tripFixture{
		trip: &model.Trip{Name: "Boston", CreatedBy: uuid.New()},
		org:  &model.Organization{Name: "Acme"},
	}
	require.NoError(t, store.Trips.Create(ctx, f.trip))
	require.NoError(t, store.Organizations.Create(ctx, f.org))

	f.contact = &model.Contact{OrganizationID: f.org.ID, Name: "Jo", Email: "jo@acme.test"}
	require.NoError(t, store.Contacts.Create(ctx, f.contact))

	f.outreach = &model.Outreach{
		TripID:         f.trip.ID,
		ContactID:      f.contact.ID,
		OrganizationID: f.org.ID,
		OutreachDate:   "2024-03-01",
		ReachedOutBy:   f.trip.CreatedBy,
		Response:       model.ResponseMeetingScheduled,
	}
	require.NoError(t, store.Outreach.Create(ctx, f.outreach))

	f.meeting = &model.Meeting{
		TripID:         f.trip.ID,
		OutreachID:     f.outreach.ID,
		ContactID:      f.contact.ID,
		OrganizationID: f.org.ID,
		Title:          "Meeting with Acme",
		ScheduledDate:  "2024-03-10",
		ScheduledTime:  "10:00",
		Status:         model.StatusScheduled,
	}
	require.NoError(t, store.Meetings.Create(ctx, f.meeting))
	return f
}

func TestTripLegOrdering(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	tripID := uuid.New()

	first := &model.TripLeg{TripID: tripID, StartCity: "NYC", EndCity: "BOS", Transportation: model.TransportTrain, Order: 42}
	require.NoError(t, store.TripLegs.Create(ctx, first))
	assert.Equal(t, 1, first.Order, "caller supplied order is ignored")

	second := &model.TripLeg{TripID: tripID, StartCity: "BOS", EndCity: "PVD", Transportation: model.TransportCar}
	require.NoError(t, store.TripLegs.Create(ctx, second))
	assert.Equal(t, 2, second.Order)

	// legs ordered [1, 3] get 4 next
	require.NoError(t, store.TripLegs.Update(ctx, second.ID, map[string]any{"leg_order": 3}))
	third := &model.TripLeg{TripID: tripID, StartCity: "PVD", EndCity: "NYC", Transportation: model.TransportBus}
	require.NoError(t, store.TripLegs.Create(ctx, third))
	assert.Equal(t, 4, third.Order)

	otherTrip := &model.TripLeg{TripID: uuid.New(), StartCity: "SFO", EndCity: "LAX", Transportation: model.TransportFlight}
	require.NoError(t, store.TripLegs.Create(ctx, otherTrip))
	assert.Equal(t, 1, otherTrip.Order)
}

func TestTripLegReorder(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	tripID := uuid.New()

	var legs []*model.TripLeg
	for _, city := range []string{"A", "B", "C"} {
		leg := &model.TripLeg{TripID: tripID, StartCity: city, EndCity: city + "'", Transportation: model.TransportCar}
		require.NoError(t, store.TripLegs.Create(ctx, leg))
		legs = append(legs, leg)
	}

	require.NoError(t, store.TripLegs.Reorder(ctx, tripID, []repository.LegOrder{
		{ID: legs[0].ID, Order: 3},
		{ID: legs[2].ID, Order: 1},
	}))

	got, err := store.TripLegs.FindByTrip(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"C", "B", "A"}, []string{got[0].StartCity, got[1].StartCity, got[2].StartCity})

	t.Run("unknown leg writes nothing", func(t *testing.T) {
		err := store.TripLegs.Reorder(ctx, tripID, []repository.LegOrder{
			{ID: legs[1].ID, Order: 9},
			{ID: uuid.New(), Order: 1},
		})
		assert.ErrorIs(t, err, domain.ErrTripLegNotFound)

		leg, err := store.TripLegs.FindByID(ctx, legs[1].ID)
		require.NoError(t, err)
		assert.Equal(t, 2, leg.Order)
	})

	t.Run("leg from another trip is not found", func(t *testing.T) {
		err := store.TripLegs.Reorder(ctx, uuid.New(), []repository.LegOrder{{ID: legs[0].ID, Order: 1}})
		assert.ErrorIs(t, err, domain.ErrTripLegNotFound)
	})
}

func TestTripDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	f := seedTrip(t, store)

	leg := &model.TripLeg{TripID: f.trip.ID, StartCity: "NYC", EndCity: "BOS", Transportation: model.TransportTrain}
	require.NoError(t, store.TripLegs.Create(ctx, leg))
	lodging := &model.Lodging{TripID: f.trip.ID, Name: "Inn", StartDate: testutil.Ptr("2024-03-09"), EndDate: testutil.Ptr("2024-03-11")}
	require.NoError(t, store.Lodging.Create(ctx, lodging))

	require.NoError(t, store.Trips.Delete(ctx, f.trip.ID))

	_, err := store.Meetings.FindByID(ctx, f.meeting.ID)
	assert.ErrorIs(t, err, domain.ErrMeetingNotFound)
	_, err = store.Outreach.FindByID(ctx, f.outreach.ID)
	assert.ErrorIs(t, err, domain.ErrOutreachNotFound)
	_, err = store.TripLegs.FindByID(ctx, leg.ID)
	assert.ErrorIs(t, err, domain.ErrTripLegNotFound)
	_, err = store.Lodging.FindByID(ctx, lodging.ID)
	assert.ErrorIs(t, err, domain.ErrLodgingNotFound)

	_, err = store.Contacts.FindByID(ctx, f.contact.ID)
	assert.NoError(t, err, "directory records outlive trips")
}

func TestOutreachDeleteRemovesMeetings(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	f := seedTrip(t, store)

	removed, err := store.Outreach.Delete(ctx, f.outreach.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	exists, err := store.Meetings.ExistsForOutreach(ctx, f.outreach.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Outreach.Delete(ctx, f.outreach.ID)
	assert.ErrorIs(t, err, domain.ErrOutreachNotFound)
}

func TestOrganizationAndContactGuards(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	f := seedTrip(t, store)

	assert.ErrorIs(t, store.Organizations.Delete(ctx, f.org.ID), domain.ErrOrganizationInUse)
	assert.ErrorIs(t, store.Contacts.Delete(ctx, f.contact.ID), domain.ErrContactInUse)

	_, err := store.Outreach.Delete(ctx, f.outreach.ID)
	require.NoError(t, err)

	require.NoError(t, store.Organizations.Delete(ctx, f.org.ID))
	_, err = store.Contacts.FindByID(ctx, f.contact.ID)
	assert.ErrorIs(t, err, domain.ErrContactNotFound, "contacts go with their organization")
}

func TestOutreachQueries(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	f := seedTrip(t, store)

	later := &model.Outreach{
		TripID:         f.trip.ID,
		ContactID:      f.contact.ID,
		OrganizationID: f.org.ID,
		OutreachDate:   "2024-03-05",
		ReachedOutBy:   f.trip.CreatedBy,
		Response:       model.ResponsePending,
	}
	require.NoError(t, store.Outreach.Create(ctx, later))

	all, err := store.Outreach.FindByTrip(ctx, f.trip.ID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, later.ID, all[0].ID, "newest outreach date first")

	pending := model.ResponsePending
	filtered, err := store.Outreach.FindByTrip(ctx, f.trip.ID, &pending)
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	counts, err := store.Outreach.CountByResponse(ctx, f.trip.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[model.ResponsePending])
	assert.Equal(t, int64(1), counts[model.ResponseMeetingScheduled])
}

func TestLodgingSortedByStay(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	tripID := uuid.New()

	for _, l := range []model.Lodging{
		{TripID: tripID, Name: "Late", StartDate: testutil.Ptr("2024-03-12"), EndDate: testutil.Ptr("2024-03-13")},
		{TripID: tripID, Name: "Legacy", Date: testutil.Ptr("2024-03-10")},
		{TripID: tripID, Name: "Undated"},
		{TripID: tripID, Name: "Early", StartDate: testutil.Ptr("2024-03-09"), EndDate: testutil.Ptr("2024-03-10")},
	} {
		require.NoError(t, store.Lodging.Create(ctx, &l))
	}

	got, err := store.Lodging.FindByTrip(ctx, tripID)
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, l := range got {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Early", "Legacy", "Late", "Undated"}, names)
}

func TestOutreachLockByID(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	f := seedTrip(t, store)

	err := store.Transaction(ctx, func(tx *repository.Store) error {
		got, err := tx.Outreach.LockByID(ctx, f.outreach.ID)
		require.NoError(t, err)
		assert.Equal(t, f.outreach.ID, got.ID)
		assert.Equal(t, model.ResponseMeetingScheduled, got.Response)

		_, err = tx.Outreach.LockByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrOutreachNotFound)
		return nil
	})
	require.NoError(t, err)
}
