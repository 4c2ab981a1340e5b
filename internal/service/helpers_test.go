package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dangerclosesec/fieldwork/internal/auth"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/dangerclosesec/fieldwork/internal/service"
	"github.com/dangerclosesec/fieldwork/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type harness struct {
	ctx      context.Context
	userID   uuid.UUID
	store    *repository.Store
	activity *service.ActivityLogService
}

func newHarness(t *testing.T) harness {
	t.Helper()
	store := testutil.NewStore(t)
	userID := uuid.New()
	return harness{
		ctx:      auth.WithUserID(context.Background(), userID),
		userID:   userID,
		store:    store,
		activity: service.NewActivityLogService(store.ActivityLogs),
	}
}

// tripWithContact creates a trip plus an organization with one contact.
func (h harness) tripWithContact(t *testing.T) (*model.Trip, *model.Organization, *model.Contact) {
	t.Helper()
	trip := &model.Trip{Name: "Chicago", CreatedBy: h.userID}
	require.NoError(t, h.store.Trips.Create(h.ctx, trip))
	org := &model.Organization{Name: "Acme"}
	require.NoError(t, h.store.Organizations.Create(h.ctx, org))
	contact := &model.Contact{OrganizationID: org.ID, Name: "Jo", Email: "jo@acme.test"}
	require.NoError(t, h.store.Contacts.Create(h.ctx, contact))
	return trip, org, contact
}
