// internal/model/expert.go
package model

import "github.com/google/uuid"

type ExpertStatus string

const (
	ExpertRejected      ExpertStatus = "rejected"
	ExpertPendingReview ExpertStatus = "pending review"
	ExpertMaybe         ExpertStatus = "maybe"
	ExpertScheduleCall  ExpertStatus = "schedule call"
)

// ExpertStatuses lists every status in display order.
var ExpertStatuses = []ExpertStatus{ExpertRejected, ExpertPendingReview, ExpertMaybe, ExpertScheduleCall}

func (s ExpertStatus) IsValid() bool {
	switch s {
	case ExpertRejected, ExpertPendingReview, ExpertMaybe, ExpertScheduleCall:
		return true
	}
	return false
}

type Expert struct {
	Base
	ProjectID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"project_id"`
	NetworkGroupID *uuid.UUID   `gorm:"type:uuid;index" json:"network_group_id,omitempty"`
	Name           string       `gorm:"type:text;not null" json:"name"`
	Biography      string       `gorm:"type:text;not null;default:''" json:"biography,omitempty"`
	Cost           *float64     `json:"cost,omitempty"`
	CostCurrency   string       `gorm:"type:text;not null;default:''" json:"cost_currency,omitempty"`
	Email          string       `gorm:"type:text;not null;default:''" json:"email,omitempty"`
	Phone          string       `gorm:"type:text;not null;default:''" json:"phone,omitempty"`
	Notes          string       `gorm:"type:text;not null;default:''" json:"notes,omitempty"`
	Network        string       `gorm:"type:text;not null;default:''" json:"network"`
	Status         ExpertStatus `gorm:"type:text;not null;default:'pending review';index" json:"status"`
}
