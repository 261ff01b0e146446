package store

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator supplies identifiers for new records
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random (v4) UUIDs
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceIDs issues prefix-1, prefix-2, ... and is safe for concurrent use.
// Useful where deterministic ids matter, such as tests and fixtures.
type SequenceIDs struct {
	Prefix string
	n      atomic.Uint64
}

func (s *SequenceIDs) NewID() string {
	return fmt.Sprintf("%s-%d", s.Prefix, s.n.Add(1))
}
