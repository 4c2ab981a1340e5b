package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/dangerclosesec/fieldwork/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLogQuery(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	tripID := uuid.New()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []model.ActivityLog{
		{Timestamp: base, Action: model.ActionCreate, EntityType: model.EntityTrip, EntityID: tripID},
		{Timestamp: base.Add(time.Hour), Action: model.ActionUpdate, EntityType: model.EntityTrip, EntityID: tripID, Context: model.JSONMap{"name": "Boston"}},
		{Timestamp: base.Add(2 * time.Hour), Action: model.ActionCreate, EntityType: model.EntityProject, EntityID: uuid.New()},
	}
	for i := range entries {
		require.NoError(t, store.ActivityLogs.Create(ctx, &entries[i]))
		assert.NotEqual(t, uuid.Nil, entries[i].ID)
	}

	logs, total, err := store.ActivityLogs.Query(ctx, repository.QueryParams{EntityType: model.EntityTrip, EntityID: &tripID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
	assert.Equal(t, model.ActionUpdate, logs[0].Action, "newest first")
	assert.Equal(t, "Boston", logs[0].Context["name"])

	logs, total, err = store.ActivityLogs.Query(ctx, repository.QueryParams{Action: model.ActionCreate, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 1)

	got, err := store.ActivityLogs.FindByID(ctx, entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, tripID, got.EntityID)
}
