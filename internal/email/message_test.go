package email

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSendgridMessage(t *testing.T) {
	data := EmailData{
		To:           "jo@acme.test",
		From:         "trips@fieldwork.test",
		FromName:     "Fieldwork",
		ReplyTo:      "ana@fieldwork.test",
		Subject:      "Meeting scheduled",
		TemplateName: "meeting_scheduled",
	}

	m := newSendgridMessage(data, "<p>hi</p>", "hi")
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "jo@acme.test", m.Personalizations[0].To[0].Address)
	assert.Equal(t, "Fieldwork", m.From.Name)
	require.Len(t, m.Content, 2)
	assert.Equal(t, "text/plain", m.Content[0].Type)
	assert.Equal(t, "text/html", m.Content[1].Type)
	require.NotNil(t, m.ReplyTo)
	assert.Equal(t, "ana@fieldwork.test", m.ReplyTo.Address)
	assert.Equal(t, []string{"meeting_scheduled"}, m.Categories)

	data.ReplyTo = ""
	assert.Nil(t, newSendgridMessage(data, "", "").ReplyTo)
}

func TestBuildMIME(t *testing.T) {
	msg := string(buildMIME(EmailData{
		To:       "jo@acme.test",
		From:     "trips@fieldwork.test",
		FromName: "Fieldwork",
		ReplyTo:  "ana@fieldwork.test",
		Subject:  "Call scheduled",
	}, "<p>hi</p>", "hi", 42))

	assert.Contains(t, msg, "From: Fieldwork <trips@fieldwork.test>\r\n")
	assert.Contains(t, msg, "Reply-To: ana@fieldwork.test\r\n")
	assert.Contains(t, msg, "boundary=_MULTIPART_ALTERNATIVE_BOUNDARY_42")
	assert.Less(t, strings.Index(msg, "text/plain"), strings.Index(msg, "text/html"))
	assert.Contains(t, msg, base64.StdEncoding.EncodeToString([]byte("<p>hi</p>")))
	assert.Equal(t, 1, strings.Count(msg, "--_MULTIPART_ALTERNATIVE_BOUNDARY_42--"))
}
