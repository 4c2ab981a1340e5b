package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dangerclosesec/fieldwork/internal/audit"
	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/metrics"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/google/uuid"
)

type CallService struct {
	base
	notifier Notifier
}

func NewCallService(store *repository.Store, logger audit.Logger, notifier Notifier) *CallService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &CallService{base: newBase(store, logger), notifier: notifier}
}

type CreateCallInput struct {
	ProjectID     uuid.UUID               `json:"project_id" validate:"required"`
	ExpertID      uuid.UUID               `json:"expert_id" validate:"required"`
	Title         string                  `json:"title" validate:"required"`
	ScheduledDate *string                 `json:"scheduled_date" validate:"omitnil,datetime=2006-01-02"`
	ScheduledTime string                  `json:"scheduled_time"`
	Duration      *int                    `json:"duration" validate:"omitnil,gt=0"`
	Notes         string                  `json:"notes"`
	Status        *model.EngagementStatus `json:"status" validate:"omitnil,enum"`
}

// CreateCall schedules a call with one of the project's experts and asks the
// expert's network group, when it has an address, to set it up.
func (s *CallService) CreateCall(ctx context.Context, input CreateCallInput) (*model.Call, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	project, err := s.store.Projects.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	expert, err := s.store.Experts.FindByID(ctx, input.ExpertID)
	if err != nil {
		return nil, err
	}
	if expert.ProjectID != project.ID {
		return nil, domain.ErrExpertProjectMismatch
	}

	call := &model.Call{
		ProjectID:     input.ProjectID,
		ExpertID:      input.ExpertID,
		Title:         input.Title,
		ScheduledDate: input.ScheduledDate,
		ScheduledTime: input.ScheduledTime,
		Duration:      input.Duration,
		Notes:         input.Notes,
		Status:        model.StatusScheduled,
	}
	if input.Status != nil {
		call.Status = *input.Status
	}

	if err := s.store.Calls.Create(ctx, call); err != nil {
		return nil, fmt.Errorf("creating call: %w", err)
	}

	s.record(ctx, model.ActionCreate, model.EntityCall, call.ID, map[string]any{
		"project_id": call.ProjectID,
		"expert_id":  call.ExpertID,
		"title":      call.Title,
	})
	s.notifyGroup(ctx, *call, *expert, *project)
	return call, nil
}

func (s *CallService) notifyGroup(ctx context.Context, call model.Call, expert model.Expert, project model.Project) {
	if expert.NetworkGroupID == nil {
		return
	}
	group, err := s.store.NetworkGroups.FindByID(ctx, *expert.NetworkGroupID)
	if err != nil {
		slog.WarnContext(ctx, "failed to load network group for call notification", "call_id", call.ID, "error", err)
		return
	}
	if group.Email == "" {
		return
	}

	if err := s.notifier.CallScheduled(ctx, call, expert, *group, project); err != nil {
		metrics.NotificationsFailed.WithLabelValues("call_scheduled").Inc()
		slog.WarnContext(ctx, "failed to send call notification",
			"call_id", call.ID,
			"to", group.Email,
			"error", err,
		)
	}
}

func (s *CallService) GetCall(ctx context.Context, id uuid.UUID) (*CallDetail, error) {
	call, err := s.store.Calls.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := s.join(ctx, []model.Call{*call})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ListCalls returns calls with their experts, earliest first.
func (s *CallService) ListCalls(ctx context.Context, filter repository.CallFilter) ([]CallDetail, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, domain.Invalid("status", fmt.Sprintf("%q is not an allowed value", *filter.Status))
	}

	calls, err := s.store.Calls.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, calls)
}

func (s *CallService) join(ctx context.Context, calls []model.Call) ([]CallDetail, error) {
	experts, err := s.store.Experts.FindByIDs(ctx, keys(calls, func(c model.Call) uuid.UUID { return c.ExpertID }))
	if err != nil {
		return nil, err
	}
	return joinCalls(calls, index(experts, func(e model.Expert) uuid.UUID { return e.ID })), nil
}

type UpdateCallInput struct {
	Title         *string                 `json:"title" validate:"omitnil,min=1"`
	ScheduledDate *string                 `json:"scheduled_date" validate:"omitnil,datetime=2006-01-02"`
	ScheduledTime *string                 `json:"scheduled_time"`
	Duration      *int                    `json:"duration" validate:"omitnil,gt=0"`
	Notes         *string                 `json:"notes"`
	Status        *model.EngagementStatus `json:"status" validate:"omitnil,enum"`
}

func (s *CallService) UpdateCall(ctx context.Context, id uuid.UUID, input UpdateCallInput) (*model.Call, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	setIf(fields, "title", input.Title)
	setIf(fields, "scheduled_date", input.ScheduledDate)
	setIf(fields, "scheduled_time", input.ScheduledTime)
	setIf(fields, "duration", input.Duration)
	setIf(fields, "notes", input.Notes)
	setIf(fields, "status", input.Status)

	if err := s.store.Calls.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("updating call: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityCall, id, fields)
	return s.store.Calls.FindByID(ctx, id)
}

type UpdateStatusInput struct {
	Status model.EngagementStatus `json:"status" validate:"required,enum"`
}

func (s *CallService) UpdateCallStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (uuid.UUID, error) {
	if err := validateInput(input); err != nil {
		return uuid.Nil, err
	}

	fields := map[string]any{"status": input.Status}
	if err := s.store.Calls.Update(ctx, id, fields); err != nil {
		return uuid.Nil, fmt.Errorf("updating call status: %w", err)
	}

	s.record(ctx, model.ActionUpdate, model.EntityCall, id, fields)
	return id, nil
}

func (s *CallService) DeleteCall(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Calls.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting call: %w", err)
	}

	s.record(ctx, model.ActionDelete, model.EntityCall, id, nil)
	return nil
}
