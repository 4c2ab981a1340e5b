// internal/model/organization.go
package model

import "github.com/google/uuid"

type Organization struct {
	Base
	Name    string `gorm:"type:text;not null" json:"name"`
	Website string `gorm:"type:text;not null;default:''" json:"website,omitempty"`
	Notes   string `gorm:"type:text;not null;default:''" json:"notes,omitempty"`
}

type Contact struct {
	Base
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	Email          string    `gorm:"type:text;not null" json:"email"`
	Title          string    `gorm:"type:text;not null;default:''" json:"title,omitempty"`
	Phone          string    `gorm:"type:text;not null;default:''" json:"phone,omitempty"`
}
