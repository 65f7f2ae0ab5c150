package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/crocodile/internal/common/uuid UUID

// UUID generates round identifiers
type UUID interface {
	NewUUID() string
}

// DefaultUUID generates random (version 4) UUIDs
type DefaultUUID struct{}

// New returns the default generator
func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new random UUID string
func (d *DefaultUUID) NewUUID() string {
	return uuid.NewString()
}
