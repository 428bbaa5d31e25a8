package model

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a UUID-based identifier for User
type UserID string

// NewUserID generates a new UUID v4 UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}

// DefaultAuth is the authentication method assigned to accounts the sync
// creates or reactivates.
const DefaultAuth = "cas"

// User is a target-system user account. IDNumber is the unique external key
// (the feed person sourcedid); Username must also be unique among accounts.
type User struct {
	ID          UserID
	IDNumber    string
	Username    string
	FirstName   string
	LastName    string
	Email       string
	URL         string
	City        string
	Country     string
	Auth        string
	Lang        string
	Description string
	Confirmed   bool
	Deleted     bool
	Suspended   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
