package service_test

import (
	"testing"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryGuards(t *testing.T) {
	h := newHarness(t)
	directory := service.NewDirectoryService(h.store, h.activity)
	outreachSvc := service.NewOutreachService(h.store, h.activity)

	org, err := directory.CreateOrganization(h.ctx, service.CreateOrganizationInput{Name: "Acme", Website: "https://acme.test"})
	require.NoError(t, err)
	contact, err := directory.CreateContact(h.ctx, service.CreateContactInput{OrganizationID: org.ID, Name: "Jo", Email: "jo@acme.test"})
	require.NoError(t, err)

	_, err = directory.CreateContact(h.ctx, service.CreateContactInput{OrganizationID: uuid.New(), Name: "Sam", Email: "sam@acme.test"})
	assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)

	_, err = directory.CreateContact(h.ctx, service.CreateContactInput{OrganizationID: org.ID, Name: "Sam", Email: "not-an-email"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be a valid email address", verr.Fields["email"])

	trip := &model.Trip{Name: "Chicago", CreatedBy: h.userID}
	require.NoError(t, h.store.Trips.Create(h.ctx, trip))
	o, err := outreachSvc.CreateOutreach(h.ctx, service.CreateOutreachInput{
		TripID: trip.ID, ContactID: contact.ID, OrganizationID: org.ID, OutreachDate: "2024-03-01",
	})
	require.NoError(t, err)

	err = directory.DeleteContact(h.ctx, contact.ID)
	assert.ErrorIs(t, err, domain.ErrContactInUse)
	err = directory.DeleteOrganization(h.ctx, org.ID)
	assert.ErrorIs(t, err, domain.ErrOrganizationInUse)

	require.NoError(t, outreachSvc.DeleteOutreach(h.ctx, o.ID))
	require.NoError(t, directory.DeleteOrganization(h.ctx, org.ID))

	_, err = directory.GetContact(h.ctx, contact.ID)
	assert.ErrorIs(t, err, domain.ErrContactNotFound)
}

func TestUpdateContactLeavesOmittedFields(t *testing.T) {
	h := newHarness(t)
	directory := service.NewDirectoryService(h.store, h.activity)

	org, err := directory.CreateOrganization(h.ctx, service.CreateOrganizationInput{Name: "Acme"})
	require.NoError(t, err)
	contact, err := directory.CreateContact(h.ctx, service.CreateContactInput{
		OrganizationID: org.ID, Name: "Jo", Email: "jo@acme.test", Title: "CFO",
	})
	require.NoError(t, err)

	updated, err := directory.UpdateContact(h.ctx, contact.ID, service.UpdateContactInput{Phone: strPtr("555-0100")})
	require.NoError(t, err)
	assert.Equal(t, "Jo", updated.Name)
	assert.Equal(t, "CFO", updated.Title)
	assert.Equal(t, "555-0100", updated.Phone)

	_, err = directory.UpdateContact(h.ctx, contact.ID, service.UpdateContactInput{Name: strPtr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = directory.UpdateContact(h.ctx, uuid.New(), service.UpdateContactInput{Phone: strPtr("555-0100")})
	assert.ErrorIs(t, err, domain.ErrContactNotFound)
}
