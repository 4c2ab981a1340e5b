package mailer

import (
	"context"

	"github.com/dangerclosesec/fieldwork/internal/email"
	"github.com/dangerclosesec/fieldwork/internal/model"
)

// Notifier sends the scheduling emails through an email.Service.
type Notifier struct {
	email *email.Service
}

func NewNotifier(s *email.Service) *Notifier {
	return &Notifier{email: s}
}

func (n *Notifier) MeetingScheduled(ctx context.Context, meeting model.Meeting, contact model.Contact, org model.Organization) error {
	return SendMeetingScheduled(ctx, n.email, meeting, contact, org)
}

func (n *Notifier) CallScheduled(ctx context.Context, call model.Call, expert model.Expert, group model.ExpertNetworkGroup, project model.Project) error {
	return SendCallScheduled(ctx, n.email, call, expert, group, project)
}
