package mailer

import (
	"testing"

	"github.com/dangerclosesec/fieldwork/internal/config"
	"github.com/dangerclosesec/fieldwork/internal/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingTemplate(t *testing.T) {
	svc, err := email.NewEmailService(config.Default())
	require.NoError(t, err)

	html, text, err := svc.Render("meeting_scheduled", MeetingTemplateData{
		ContactName:      "Jo",
		OrganizationName: "Acme",
		Title:            "Meeting with Acme",
		Date:             "2024-03-10",
		Time:             "10:00",
		Duration:         30,
		Location:         location("1 Main St", " ", "Boston"),
	})
	require.NoError(t, err)

	assert.Contains(t, text, "Hello Jo,")
	assert.Contains(t, text, "When:  2024-03-10 10:00 (30 minutes)")
	assert.Contains(t, text, "Where: 1 Main St, Boston")
	assert.Contains(t, html, "<td>Meeting with Acme</td>")
}

func TestCallTemplateOmitsMissingSchedule(t *testing.T) {
	svc, err := email.NewEmailService(config.Default())
	require.NoError(t, err)

	_, text, err := svc.Render("call_scheduled", CallTemplateData{
		GroupName:   "GLG",
		ProjectName: "Solar",
		ExpertName:  "Ada",
		Title:       "Intro",
	})
	require.NoError(t, err)

	assert.Contains(t, text, "Expert:    Ada")
	assert.NotContains(t, text, "Requested:")
	assert.NotContains(t, text, "Duration:")
}
