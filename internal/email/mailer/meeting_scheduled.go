// internal/email/mailer/meeting_scheduled.go
package mailer

import (
	"context"
	"strings"

	"github.com/dangerclosesec/fieldwork/internal/email"
	"github.com/dangerclosesec/fieldwork/internal/model"
)

// MeetingTemplateData contains data for the meeting_scheduled template
type MeetingTemplateData struct {
	ContactName      string
	OrganizationName string
	Title            string
	Date             string
	Time             string
	Duration         int
	Location         string
}

// SendMeetingScheduled tells the contact their meeting is on the calendar
func SendMeetingScheduled(ctx context.Context, s *email.Service, meeting model.Meeting, contact model.Contact, org model.Organization) error {
	data := MeetingTemplateData{
		ContactName:      contact.Name,
		OrganizationName: org.Name,
		Title:            meeting.Title,
		Date:             meeting.ScheduledDate,
		Time:             meeting.ScheduledTime,
		Location:         location(meeting.Address, meeting.City, meeting.State, meeting.Zip),
	}
	if meeting.Duration != nil {
		data.Duration = *meeting.Duration
	}

	return s.SendEmail(ctx, email.EmailData{
		To:           contact.Email,
		Subject:      "Meeting scheduled: " + meeting.Title,
		TemplateName: "meeting_scheduled",
		TemplateData: data,
	})
}

func location(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
