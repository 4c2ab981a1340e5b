// internal/model/trip.go
package model

import "github.com/google/uuid"

type Trip struct {
	Base
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description,omitempty"`
	StartDate   *string   `gorm:"type:text" json:"start_date,omitempty"`
	EndDate     *string   `gorm:"type:text" json:"end_date,omitempty"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
}

type Transportation string

const (
	TransportFlight Transportation = "flight"
	TransportTrain  Transportation = "train"
	TransportCar    Transportation = "car"
	TransportBus    Transportation = "bus"
	TransportBoat   Transportation = "boat"
	TransportOther  Transportation = "other"
)

func (t Transportation) IsValid() bool {
	switch t {
	case TransportFlight, TransportTrain, TransportCar, TransportBus, TransportBoat, TransportOther:
		return true
	}
	return false
}

// TripLeg is one segment of travel. Order is assigned as max+1 within the
// trip on creation and only changes through an explicit reorder.
type TripLeg struct {
	Base
	TripID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"trip_id"`
	Order          int            `gorm:"column:leg_order;not null" json:"order"`
	StartCity      string         `gorm:"type:text;not null" json:"start_city"`
	EndCity        string         `gorm:"type:text;not null" json:"end_city"`
	Transportation Transportation `gorm:"type:text;not null" json:"transportation"`
	Date           *string        `gorm:"type:text" json:"date,omitempty"`
	Notes          string         `gorm:"type:text;not null;default:''" json:"notes,omitempty"`
}

// Lodging covers StartDate..EndDate inclusive. Records written before ranges
// were introduced carry only Date.
type Lodging struct {
	Base
	TripID    uuid.UUID `gorm:"type:uuid;not null;index" json:"trip_id"`
	StartDate *string   `gorm:"type:text" json:"start_date,omitempty"`
	EndDate   *string   `gorm:"type:text" json:"end_date,omitempty"`
	Date      *string   `gorm:"type:text" json:"date,omitempty"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Address   string    `gorm:"type:text;not null;default:''" json:"address,omitempty"`
	City      string    `gorm:"type:text;not null;default:''" json:"city,omitempty"`
	Notes     string    `gorm:"type:text;not null;default:''" json:"notes,omitempty"`
}

// Span returns the inclusive date range the stay covers, folding the legacy
// single date into a one-day range. ok is false when no start is known.
func (l Lodging) Span() (start, end string, ok bool) {
	switch {
	case l.StartDate != nil && *l.StartDate != "":
		start = *l.StartDate
		end = start
		if l.EndDate != nil && *l.EndDate != "" {
			end = *l.EndDate
		}
		return start, end, true
	case l.Date != nil && *l.Date != "":
		return *l.Date, *l.Date, true
	}
	return "", "", false
}
