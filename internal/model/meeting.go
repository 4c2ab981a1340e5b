// internal/model/meeting.go
package model

import "github.com/google/uuid"

type Meeting struct {
	Base
	TripID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"trip_id"`
	OutreachID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"outreach_id"`
	ContactID      uuid.UUID        `gorm:"type:uuid;not null" json:"contact_id"`
	OrganizationID uuid.UUID        `gorm:"type:uuid;not null" json:"organization_id"`
	Title          string           `gorm:"type:text;not null" json:"title"`
	ScheduledDate  string           `gorm:"type:text;not null" json:"scheduled_date"`
	ScheduledTime  string           `gorm:"type:text;not null" json:"scheduled_time"`
	Duration       *int             `json:"duration,omitempty"`
	Address        string           `gorm:"type:text;not null;default:''" json:"address,omitempty"`
	City           string           `gorm:"type:text;not null;default:''" json:"city,omitempty"`
	State          string           `gorm:"type:text;not null;default:''" json:"state,omitempty"`
	Zip            string           `gorm:"type:text;not null;default:''" json:"zip,omitempty"`
	Notes          string           `gorm:"type:text;not null;default:''" json:"notes,omitempty"`
	Status         EngagementStatus `gorm:"type:text;not null;default:'scheduled';index" json:"status"`
}

// SortKey orders meetings by "date time" using plain string comparison.
func (m Meeting) SortKey() string {
	return m.ScheduledDate + " " + m.ScheduledTime
}
