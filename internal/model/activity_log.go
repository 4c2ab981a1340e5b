// internal/model/activity_log.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ActivityLog records a mutation of a domain record
type ActivityLog struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Timestamp  time.Time  `json:"timestamp" gorm:"index"`
	Action     string     `json:"action" gorm:"type:text;not null"`
	EntityType string     `json:"entity_type" gorm:"type:text;not null;index:idx_activity_logs_entity"`
	EntityID   uuid.UUID  `json:"entity_id" gorm:"type:uuid;not null;index:idx_activity_logs_entity"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty" gorm:"type:uuid"`
	Context    JSONMap    `json:"context,omitempty" gorm:"type:jsonb"`
	RequestID  string     `json:"request_id,omitempty"`
	ClientIP   string     `json:"client_ip,omitempty"`
	UserAgent  string     `json:"user_agent,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName specifies the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// JSONMap represents a generic map stored as JSONB in the database
type JSONMap map[string]any

// Value implements the driver.Valuer interface for JSONMap
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for JSONMap
func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion failed: failed to decode JSONB")
	}

	return json.Unmarshal(bytes, m)
}

// Activity actions
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Entity type names recorded in the activity log
const (
	EntityProject      = "project"
	EntityNetworkGroup = "expert_network_group"
	EntityExpert       = "expert"
	EntityCall         = "call"
	EntityOrganization = "organization"
	EntityContact      = "contact"
	EntityTrip         = "trip"
	EntityOutreach     = "outreach"
	EntityMeeting      = "meeting"
	EntityTripLeg      = "trip_leg"
	EntityLodging      = "lodging"
)
