// internal/email/mailer/call_scheduled.go
package mailer

import (
	"context"

	"github.com/dangerclosesec/fieldwork/internal/email"
	"github.com/dangerclosesec/fieldwork/internal/model"
)

// CallTemplateData contains data for the call_scheduled template
type CallTemplateData struct {
	GroupName   string
	ProjectName string
	ExpertName  string
	Title       string
	Date        string
	Time        string
	Duration    int
}

// SendCallScheduled asks the expert's network group to set up the call
func SendCallScheduled(ctx context.Context, s *email.Service, call model.Call, expert model.Expert, group model.ExpertNetworkGroup, project model.Project) error {
	data := CallTemplateData{
		GroupName:   group.Name,
		ProjectName: project.Name,
		ExpertName:  expert.Name,
		Title:       call.Title,
		Time:        call.ScheduledTime,
	}
	if call.ScheduledDate != nil {
		data.Date = *call.ScheduledDate
	}
	if call.Duration != nil {
		data.Duration = *call.Duration
	}

	return s.SendEmail(ctx, email.EmailData{
		To:           group.Email,
		Subject:      "Call request: " + expert.Name + " for " + project.Name,
		TemplateName: "call_scheduled",
		TemplateData: data,
	})
}
