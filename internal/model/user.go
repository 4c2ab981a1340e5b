// internal/model/user.go
package model

// User is an authenticated operator. Trips and outreach record which user
// created them.
type User struct {
	Base
	Email        string `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Name         string `gorm:"type:text;not null" json:"name"`
	PasswordHash string `gorm:"type:text;not null" json:"-"`
}
