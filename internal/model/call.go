// internal/model/call.go
package model

import "github.com/google/uuid"

// EngagementStatus is shared by calls and meetings.
type EngagementStatus string

const (
	StatusScheduled EngagementStatus = "scheduled"
	StatusConfirmed EngagementStatus = "confirmed"
	StatusCompleted EngagementStatus = "completed"
	StatusCancelled EngagementStatus = "cancelled"
)

func (s EngagementStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Call struct {
	Base
	ProjectID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"project_id"`
	ExpertID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"expert_id"`
	Title         string           `gorm:"type:text;not null" json:"title"`
	ScheduledDate *string          `gorm:"type:text" json:"scheduled_date,omitempty"`
	ScheduledTime string           `gorm:"type:text;not null;default:''" json:"scheduled_time,omitempty"`
	Duration      *int             `json:"duration,omitempty"`
	Notes         string           `gorm:"type:text;not null;default:''" json:"notes,omitempty"`
	Status        EngagementStatus `gorm:"type:text;not null;default:'scheduled';index" json:"status"`
}

// SortKey orders calls by "date time" using plain string comparison.
func (c Call) SortKey() string {
	date := ""
	if c.ScheduledDate != nil {
		date = *c.ScheduledDate
	}
	return date + " " + c.ScheduledTime
}
