package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/mocks"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/dangerclosesec/fieldwork/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestProjectLifecycle(t *testing.T) {
	h := newHarness(t)
	projects := service.NewProjectService(h.store, h.activity)
	experts := service.NewExpertService(h.store, h.activity)
	calls := service.NewCallService(h.store, h.activity, nil)

	project, err := projects.CreateProject(h.ctx, service.CreateProjectInput{Name: "Grid storage", StartDate: strPtr("2024-02-01")})
	require.NoError(t, err)
	group, err := projects.CreateNetworkGroup(h.ctx, service.CreateNetworkGroupInput{ProjectID: project.ID, Name: "GLG"})
	require.NoError(t, err)

	expert, err := experts.CreateExpert(h.ctx, service.CreateExpertInput{
		ProjectID: project.ID, NetworkGroupID: &group.ID, Name: "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ExpertPendingReview, expert.Status)

	// a group with experts cannot be deleted
	err = projects.DeleteNetworkGroup(h.ctx, group.ID)
	assert.ErrorIs(t, err, domain.ErrNetworkGroupHasExperts)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)

	call, err := calls.CreateCall(h.ctx, service.CreateCallInput{ProjectID: project.ID, ExpertID: expert.ID, Title: "Intro"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusScheduled, call.Status)

	require.NoError(t, projects.DeleteProject(h.ctx, project.ID))

	_, err = experts.GetExpert(h.ctx, expert.ID)
	assert.ErrorIs(t, err, domain.ErrExpertNotFound)
	_, err = calls.GetCall(h.ctx, call.ID)
	assert.ErrorIs(t, err, domain.ErrCallNotFound)
	_, err = projects.GetNetworkGroup(h.ctx, group.ID)
	assert.ErrorIs(t, err, domain.ErrNetworkGroupNotFound)

	// every change was logged against the signed-in user
	logs, total, err := h.activity.GetActivityLogs(h.ctx, repository.QueryParams{EntityType: model.EntityProject})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, l := range logs {
		require.NotNil(t, l.ActorID)
		assert.Equal(t, h.userID, *l.ActorID)
	}
}

func TestExpertRules(t *testing.T) {
	h := newHarness(t)
	projects := service.NewProjectService(h.store, h.activity)
	experts := service.NewExpertService(h.store, h.activity)

	project, err := projects.CreateProject(h.ctx, service.CreateProjectInput{Name: "Batteries"})
	require.NoError(t, err)
	other, err := projects.CreateProject(h.ctx, service.CreateProjectInput{Name: "Solar"})
	require.NoError(t, err)
	foreignGroup, err := projects.CreateNetworkGroup(h.ctx, service.CreateNetworkGroupInput{ProjectID: other.ID, Name: "Guidepoint"})
	require.NoError(t, err)

	_, err = experts.CreateExpert(h.ctx, service.CreateExpertInput{ProjectID: project.ID, NetworkGroupID: &foreignGroup.ID, Name: "Ada"})
	assert.ErrorIs(t, err, domain.ErrGroupProjectMismatch)

	bogus := model.ExpertStatus("hired")
	_, err = experts.CreateExpert(h.ctx, service.CreateExpertInput{ProjectID: project.ID, Name: "Ada", Status: &bogus})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")

	maybe := model.ExpertMaybe
	for _, name := range []string{"Ada", "Grace", "Linus"} {
		_, err := experts.CreateExpert(h.ctx, service.CreateExpertInput{ProjectID: project.ID, Name: name})
		require.NoError(t, err)
	}
	e, err := experts.CreateExpert(h.ctx, service.CreateExpertInput{ProjectID: project.ID, Name: "Barbara", Status: &maybe})
	require.NoError(t, err)

	_, err = experts.UpdateExpertStatus(h.ctx, e.ID, service.UpdateExpertStatusInput{Status: model.ExpertScheduleCall})
	require.NoError(t, err)

	counts, err := experts.GetExpertStatusCounts(h.ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Total)
	assert.Equal(t, int64(3), counts.Counts[model.ExpertPendingReview])
	assert.Equal(t, int64(1), counts.Counts[model.ExpertScheduleCall])
	assert.Equal(t, int64(0), counts.Counts[model.ExpertMaybe])
	assert.Len(t, counts.Counts, len(model.ExpertStatuses))

	pending := model.ExpertPendingReview
	listed, err := experts.ListExperts(h.ctx, project.ID, &pending)
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	updated, err := experts.UpdateExpert(h.ctx, e.ID, service.UpdateExpertInput{Notes: strPtr("former CTO")})
	require.NoError(t, err)
	assert.Equal(t, "Barbara", updated.Name)
	assert.Equal(t, "former CTO", updated.Notes)
	assert.Equal(t, model.ExpertScheduleCall, updated.Status)
}

func TestCreateCallNotifiesNetworkGroup(t *testing.T) {
	h := newHarness(t)
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	projects := service.NewProjectService(h.store, h.activity)
	experts := service.NewExpertService(h.store, h.activity)
	calls := service.NewCallService(h.store, h.activity, notifier)

	project, err := projects.CreateProject(h.ctx, service.CreateProjectInput{Name: "Grid storage"})
	require.NoError(t, err)
	other, err := projects.CreateProject(h.ctx, service.CreateProjectInput{Name: "Solar"})
	require.NoError(t, err)
	group, err := projects.CreateNetworkGroup(h.ctx, service.CreateNetworkGroupInput{ProjectID: project.ID, Name: "GLG", Email: "desk@glg.test"})
	require.NoError(t, err)
	withGroup, err := experts.CreateExpert(h.ctx, service.CreateExpertInput{ProjectID: project.ID, NetworkGroupID: &group.ID, Name: "Ada"})
	require.NoError(t, err)
	direct, err := experts.CreateExpert(h.ctx, service.CreateExpertInput{ProjectID: project.ID, Name: "Grace"})
	require.NoError(t, err)

	notifier.EXPECT().
		CallScheduled(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c model.Call, e model.Expert, g model.ExpertNetworkGroup, p model.Project) error {
			assert.Equal(t, "Intro", c.Title)
			assert.Equal(t, "Ada", e.Name)
			assert.Equal(t, "desk@glg.test", g.Email)
			assert.Equal(t, "Grid storage", p.Name)
			return errors.New("mail relay down")
		})

	_, err = calls.CreateCall(h.ctx, service.CreateCallInput{
		ProjectID: project.ID, ExpertID: withGroup.ID, Title: "Intro", ScheduledDate: strPtr("2024-03-10"), ScheduledTime: "15:00",
	})
	require.NoError(t, err)

	// no group, no email
	_, err = calls.CreateCall(h.ctx, service.CreateCallInput{ProjectID: project.ID, ExpertID: direct.ID, Title: "Follow-up", ScheduledDate: strPtr("2024-03-09")})
	require.NoError(t, err)

	_, err = calls.CreateCall(h.ctx, service.CreateCallInput{ProjectID: other.ID, ExpertID: direct.ID, Title: "Wrong project"})
	assert.ErrorIs(t, err, domain.ErrExpertProjectMismatch)

	listed, err := calls.ListCalls(h.ctx, repository.CallFilter{ProjectID: &project.ID})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Follow-up", listed[0].Title)
	require.NotNil(t, listed[0].Expert)
	assert.Equal(t, "Grace", listed[0].Expert.Name)

	_, err = calls.UpdateCallStatus(h.ctx, uuid.New(), service.UpdateStatusInput{Status: model.StatusCompleted})
	assert.ErrorIs(t, err, domain.ErrCallNotFound)
}
