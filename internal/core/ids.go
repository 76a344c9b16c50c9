package core

import "github.com/google/uuid"

// IDGenerator produces globally-unique identifiers for new entities.
// Injected into stores so tests can substitute deterministic sequences.
type IDGenerator func() string

// NewID is the default IDGenerator.
func NewID() string {
	return uuid.NewString()
}
