package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID tags bridge sessions so their log lines can be correlated.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}
