package store

import (
	"errors"

	"github.com/aerovital/navigator-api/schema"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already registered for this account")
)

// AeroVitalStore - the persisted state of the service. The user profile is
// the sole persisted document per account: created once at onboarding and
// afterwards read-only except full replacement.
type AeroVitalStore interface {
	Pinger
	Closer
	ProfileStore
}

// ProfileStore - user profile persistence
type ProfileStore interface {
	CreateProfile(profile schema.UserProfile) error
	GetProfile(accountNumber string) (*schema.UserProfile, error)
	ReplaceProfile(profile schema.UserProfile) error
	DeleteProfile(accountNumber string) error
}

// Pinger - ping the backing database
type Pinger interface {
	Ping() error
}

// Closer - close db connections
type Closer interface {
	Close()
}
