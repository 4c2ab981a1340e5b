// internal/model/project.go
package model

import "github.com/google/uuid"

type Project struct {
	Base
	Name              string  `gorm:"type:text;not null" json:"name"`
	Description       string  `gorm:"type:text;not null;default:''" json:"description,omitempty"`
	Analyst           string  `gorm:"type:text;not null;default:''" json:"analyst,omitempty"`
	ResearchAssociate string  `gorm:"type:text;not null;default:''" json:"research_associate,omitempty"`
	StartDate         *string `gorm:"type:text" json:"start_date,omitempty"`
}

// ExpertNetworkGroup organizes experts within a project and carries the
// address used when asking the network to schedule a call.
type ExpertNetworkGroup struct {
	Base
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description,omitempty"`
	Email       string    `gorm:"type:text;not null;default:''" json:"email,omitempty"`
}
