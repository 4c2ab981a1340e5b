// internal/model/outreach.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type OutreachResponse string

const (
	ResponsePending          OutreachResponse = "pending"
	ResponseInterested       OutreachResponse = "interested"
	ResponseNotInterested    OutreachResponse = "not_interested"
	ResponseNoResponse       OutreachResponse = "no_response"
	ResponseMeetingScheduled OutreachResponse = "meeting_scheduled"
)

// OutreachResponses lists every response in display order.
var OutreachResponses = []OutreachResponse{
	ResponsePending,
	ResponseInterested,
	ResponseNotInterested,
	ResponseNoResponse,
	ResponseMeetingScheduled,
}

func (r OutreachResponse) IsValid() bool {
	switch r {
	case ResponsePending, ResponseInterested, ResponseNotInterested, ResponseNoResponse, ResponseMeetingScheduled:
		return true
	}
	return false
}

// ProposedMeeting is what the contact suggested when they replied.
type ProposedMeeting struct {
	Address  string `gorm:"type:text;not null;default:''" json:"address,omitempty"`
	City     string `gorm:"type:text;not null;default:''" json:"city,omitempty"`
	State    string `gorm:"type:text;not null;default:''" json:"state,omitempty"`
	Zip      string `gorm:"type:text;not null;default:''" json:"zip,omitempty"`
	DateTime string `gorm:"type:text;not null;default:''" json:"date_time,omitempty" validate:"omitempty,meetingtime"`
}

// MeetingTimeLayouts are the accepted shapes of a proposed date_time.
var MeetingTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseMeetingTime reads a proposed date_time in any of MeetingTimeLayouts.
// A zoned value keeps its own wall-clock time.
func ParseMeetingTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range MeetingTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type Outreach struct {
	Base
	TripID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"trip_id"`
	ContactID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"contact_id"`
	OrganizationID uuid.UUID        `gorm:"type:uuid;not null;index" json:"organization_id"`
	OutreachDate   string           `gorm:"type:text;not null" json:"outreach_date"`
	ReachedOutBy   uuid.UUID        `gorm:"type:uuid;not null" json:"reached_out_by"`
	Response       OutreachResponse `gorm:"type:text;not null;default:'pending';index" json:"response"`
	ResponseDate   *string          `gorm:"type:text" json:"response_date,omitempty"`
	Notes          string           `gorm:"type:text;not null;default:''" json:"notes,omitempty"`
	Proposed       ProposedMeeting  `gorm:"embedded;embeddedPrefix:proposed_" json:"proposed_meeting"`
}

// TableName keeps the plural used by the migrations.
func (Outreach) TableName() string {
	return "outreaches"
}
