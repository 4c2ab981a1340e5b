package service

//go:generate mockgen -typed -source=./notifier.go -destination=../mocks/mock_notifier.go -package=mocks Notifier

import (
	"context"

	"github.com/dangerclosesec/fieldwork/internal/model"
)

// Notifier delivers scheduling emails. Delivery is best effort: a failure is
// logged and never undoes the scheduling itself.
type Notifier interface {
	MeetingScheduled(ctx context.Context, meeting model.Meeting, contact model.Contact, org model.Organization) error
	CallScheduled(ctx context.Context, call model.Call, expert model.Expert, group model.ExpertNetworkGroup, project model.Project) error
}

type noopNotifier struct{}

func (noopNotifier) MeetingScheduled(context.Context, model.Meeting, model.Contact, model.Organization) error {
	return nil
}

func (noopNotifier) CallScheduled(context.Context, model.Call, model.Expert, model.ExpertNetworkGroup, model.Project) error {
	return nil
}
